package discord

import (
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/eights/internal/discord"
	"github.com/fadedpez/eights/internal/logging"
	"github.com/fadedpez/eights/pkg/discord/commands"
	"github.com/fadedpez/eights/pkg/services/session"
	"github.com/fadedpez/eights/pkg/services/statistics"
)

// interactionMemory is how long a handled interaction ID is remembered
const interactionMemory = 10 * time.Minute

// Bot represents the Discord bot instance
type Bot struct {
	session discord.SessionHandler
	appID   string
	guildID string // empty registers commands globally

	// One game per Discord user
	sessions *session.Manager

	statsCommand *commands.StatsCommand
	log          *logging.Logger

	// Interaction tracking to prevent duplicates
	interactionMu         sync.Mutex
	processedInteractions map[string]time.Time
	now                   func() time.Time
}

var _ commands.GameStarter = (*Bot)(nil)

// NewBot creates a new instance of the bot
func NewBot(s discord.SessionHandler, appID, guildID string, sessions *session.Manager, stats *statistics.Service) *Bot {
	bot := &Bot{
		session:               s,
		appID:                 appID,
		guildID:               guildID,
		sessions:              sessions,
		log:                   logging.Default.WithField("component", "discord"),
		processedInteractions: make(map[string]time.Time),
		now:                   time.Now,
	}
	bot.statsCommand = commands.NewStatsCommand(stats, bot)
	return bot
}

// SetLogger replaces the bot's logger
func (b *Bot) SetLogger(l *logging.Logger) {
	b.log = l
}

// Commands are the slash commands the bot registers
func (b *Bot) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "eights",
			Description: "Start a game of Crazy Eights against the computer",
		},
		b.statsCommand.Command(),
	}
}

// Start connects to Discord and registers the slash commands
func (b *Bot) Start() error {
	b.session.AddHandler(b.handleReady)
	b.session.AddHandler(b.handleInteractions)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	for _, cmd := range b.Commands() {
		if _, err := b.session.ApplicationCommandCreate(b.appID, b.guildID, cmd); err != nil {
			return fmt.Errorf("error creating command %s: %w", cmd.Name, err)
		}
		b.log.Info("Registered command /%s", cmd.Name)
	}

	return nil
}

// Stop closes the Discord connection
func (b *Bot) Stop() error {
	if err := b.session.Close(); err != nil {
		return fmt.Errorf("error closing connection: %w", err)
	}
	return nil
}

func (b *Bot) handleReady(_ *discordgo.Session, r *discordgo.Ready) {
	b.log.Info("Bot is ready: %s", r.User.Username)
}

func (b *Bot) handleInteractions(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	b.HandleInteraction(i)
}

// firstSeen records the interaction ID and reports whether it is new
func (b *Bot) firstSeen(id string) bool {
	b.interactionMu.Lock()
	defer b.interactionMu.Unlock()

	now := b.now()
	if _, processed := b.processedInteractions[id]; processed {
		return false
	}
	b.processedInteractions[id] = now

	if len(b.processedInteractions) > 100 {
		for seen, at := range b.processedInteractions {
			if now.Sub(at) > interactionMemory {
				delete(b.processedInteractions, seen)
			}
		}
	}
	return true
}
