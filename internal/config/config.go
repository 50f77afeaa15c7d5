package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Storage backends
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	// Environment
	Environment string `env:"ENVIRONMENT,default=development"` // "development" or "production"
	LogLevel    string `env:"LOG_LEVEL,default=info"`

	// Storage
	DataDir     string `env:"DATA_DIR,default=./data"`
	StorageType string `env:"STORAGE_TYPE,default=memory"`
	PostgresURL string `env:"POSTGRES_URL"`
	RedisURL    string `env:"REDIS_URL"`

	// Leaderboard cache lifetime when RedisURL is set
	CacheTTL time.Duration `env:"CACHE_TTL,default=5m"`

	// Elasticsearch round index, enabled when ESURL is set
	ESURL         string `env:"ES_URL"`
	ESUsername    string `env:"ES_USERNAME"`
	ESPassword    string `env:"ES_PASSWORD"`
	ESIndexPrefix string `env:"ES_INDEX_PREFIX,default=eights"`

	// History retention for the prune task
	HistoryRetention time.Duration `env:"HISTORY_RETENTION,default=2160h"`

	// Game
	PlayerName string `env:"PLAYER_NAME,default=Player"`
	Seed       int64  `env:"EIGHTS_SEED"`

	// Discord configuration (bot only)
	Token   string `env:"DISCORD_TOKEN"`
	AppID   string `env:"DISCORD_APP_ID"`
	GuildID string `env:"DISCORD_GUILD_ID"`
}

// Load reads the configuration from a .env file, if present, and the environment
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Only return error if file exists but couldn't be loaded
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	return FromEnv()
}

// FromEnv decodes the configuration from environment variables only
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("error decoding environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Create data directory if it doesn't exist
	if cfg.StorageType == StorageSQLite {
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

// validate checks the storage settings every front end needs
func (c *Config) validate() error {
	switch c.StorageType {
	case StorageMemory, StorageSQLite:
	case StoragePostgres:
		if c.PostgresURL == "" {
			return fmt.Errorf("POSTGRES_URL is required when STORAGE_TYPE=postgres")
		}
	default:
		return fmt.Errorf("unknown STORAGE_TYPE %q", c.StorageType)
	}
	if c.HistoryRetention < 0 {
		return fmt.Errorf("HISTORY_RETENTION must not be negative")
	}
	return nil
}

// ValidateDiscord checks the settings the Discord bot needs
func (c *Config) ValidateDiscord() error {
	if c.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.AppID == "" {
		return fmt.Errorf("DISCORD_APP_ID is required")
	}
	return nil
}

// SQLitePath is where the SQLite database lives
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "eights.db")
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
