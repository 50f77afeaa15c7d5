package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fadedpez/eights/internal/config"
	"github.com/fadedpez/eights/internal/logging"
	"github.com/fadedpez/eights/pkg/cli"
	"github.com/fadedpez/eights/pkg/scheduler"
	"github.com/fadedpez/eights/pkg/services/session"
	"github.com/fadedpez/eights/pkg/services/statistics"
	"github.com/fadedpez/eights/pkg/storage"
)

// localPlayerID identifies the terminal player in the round history
const localPlayerID = "local"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "eights: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Logs go to a file so they do not interleave with the table
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	logFile, err := os.OpenFile(filepath.Join(cfg.DataDir, "eights.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logging.Default.SetOutput(logFile)
	logging.Default.SetLevel(level)
	logger := logging.Default

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := storage.FromConfig(ctx, cfg, logger)
	if err != nil {
		return err
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
	opts := []session.Option{
		session.WithRecorder(stats),
		session.WithLogger(logger),
	}
	if cfg.Seed != 0 {
		opts = append(opts, session.WithSeed(cfg.Seed))
	}

	start := func() *session.Session {
		return session.New(localPlayerID, cfg.PlayerName, opts...)
	}

	return cli.NewShell(os.Stdin, os.Stdout, start, stats).Run(ctx)
}
