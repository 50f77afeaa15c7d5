package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fadedpez/eights/internal/config"
	"github.com/fadedpez/eights/internal/discord"
	"github.com/fadedpez/eights/internal/logging"
	bot "github.com/fadedpez/eights/pkg/discord"
	"github.com/fadedpez/eights/pkg/scheduler"
	"github.com/fadedpez/eights/pkg/services/session"
	"github.com/fadedpez/eights/pkg/services/statistics"
	"github.com/fadedpez/eights/pkg/storage"
)

func main() {
	logger := logging.Default

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Error loading configuration: %v", err)
		os.Exit(1)
	}
	if err := cfg.ValidateDiscord(); err != nil {
		logger.Error("Invalid configuration: %v", err)
		os.Exit(1)
	}
	if level, err := logging.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warn("Ignoring LOG_LEVEL: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo, err := storage.FromConfig(ctx, cfg, logger)
	if err != nil {
		logger.Error("Error initializing storage: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("Error closing repository: %v", err)
		}
	}()

	retention := scheduler.NewRetentionScheduler(repo, cfg.HistoryRetention, scheduler.DefaultPruneInterval)
	retention.Start(ctx)
	defer retention.Stop()

	stats := statistics.NewService(repo)
	sessions := session.NewManager(
		session.WithRecorder(stats),
		session.WithLogger(logger),
	)

	discordSession, err := discord.NewSession(cfg.Token)
	if err != nil {
		logger.Error("Error creating Discord session: %v", err)
		os.Exit(1)
	}

	b := bot.NewBot(discordSession, cfg.AppID, cfg.GuildID, sessions, stats)
	if err := b.Start(); err != nil {
		logger.Error("Error starting bot: %v", err)
		os.Exit(1)
	}

	logger.Info("Bot is running. Press Ctrl+C to exit")

	// Wait for interrupt signal to gracefully shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	if err := b.Stop(); err != nil {
		logger.Error("Error stopping bot: %v", err)
	}
}
