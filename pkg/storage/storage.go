package storage

import (
	"context"
	"fmt"

	"github.com/fadedpez/eights/internal/config"
	"github.com/fadedpez/eights/internal/logging"
	"github.com/fadedpez/eights/pkg/repositories/game"
	"github.com/redis/go-redis/v9"
)

// cachePrefix namespaces the leaderboard cache keys
const cachePrefix = "eights"

// cachedStack closes the redis client along with the repositories
type cachedStack struct {
	game.Repository
	client *redis.Client
}

func (s *cachedStack) Close() error {
	err := s.Repository.Close()
	if cerr := s.client.Close(); err == nil {
		err = cerr
	}
	return err
}

// FromConfig builds the round repository the configuration asks for: the
// base store, then the Elasticsearch index and the Redis leaderboard cache
// when their URLs are set. The optional layers are skipped with a warning
// when their server cannot be reached.
func FromConfig(ctx context.Context, cfg *config.Config, log *logging.Logger) (game.Repository, error) {
	if log == nil {
		log = logging.Default
	}

	repo, err := baseRepository(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	if cfg.ESURL != "" {
		esRepo, err := game.NewElasticsearchRepository(ctx, repo, &game.ElasticsearchConfig{
			URL:         cfg.ESURL,
			Username:    cfg.ESUsername,
			Password:    cfg.ESPassword,
			IndexPrefix: cfg.ESIndexPrefix,
		})
		if err != nil {
			log.Warn("Elasticsearch unavailable, rounds will not be indexed: %v", err)
		} else {
			log.Info("Indexing rounds in Elasticsearch at %s", cfg.ESURL)
			repo = esRepo
		}
	}

	if cfg.RedisURL != "" {
		client, err := game.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn("Redis unavailable, leaderboard will not be cached: %v", err)
		} else {
			log.Info("Caching leaderboard in Redis for %s", cfg.CacheTTL)
			repo = &cachedStack{
				Repository: game.NewCachedRepository(repo, client, cachePrefix, cfg.CacheTTL),
				client:     client,
			}
		}
	}

	return repo, nil
}

func baseRepository(ctx context.Context, cfg *config.Config, log *logging.Logger) (game.Repository, error) {
	switch cfg.StorageType {
	case config.StorageSQLite:
		path := cfg.SQLitePath()
		log.Info("Initializing SQLite repository at %s", path)
		repo, err := game.NewSQLiteRepository(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite repository: %w", err)
		}
		return repo, nil
	case config.StoragePostgres:
		log.Info("Initializing PostgreSQL repository")
		repo, err := game.NewPostgresRepository(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL repository: %w", err)
		}
		return repo, nil
	case config.StorageMemory, "":
		log.Info("Using in-memory repository for round history (data will be lost on restart)")
		return game.NewMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.StorageType)
	}
}
