package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fadedpez/eights/internal/logging"
	"github.com/fadedpez/eights/pkg/entities"
	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL is how long cached statistics live
const DefaultCacheTTL = 5 * time.Minute

// CachedRepository keeps player statistics in Redis in front of a base
// repository. Statistics writes drop the cached entries.
type CachedRepository struct {
	baseRepo Repository
	client   redis.UniversalClient
	prefix   string
	ttl      time.Duration
	log      *logging.Logger
}

// NewCachedRepository wraps baseRepo with a Redis cache. A zero ttl uses DefaultCacheTTL.
func NewCachedRepository(baseRepo Repository, client redis.UniversalClient, prefix string, ttl time.Duration) *CachedRepository {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if prefix == "" {
		prefix = "eights"
	}
	return &CachedRepository{
		baseRepo: baseRepo,
		client:   client,
		prefix:   prefix,
		ttl:      ttl,
		log:      logging.Default.WithField("component", "cache"),
	}
}

// NewRedisClient parses a redis:// URL and checks the connection
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("error parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}
	return client, nil
}

func (r *CachedRepository) leaderboardKey() string { return r.prefix + ":leaderboard" }
func (r *CachedRepository) playerKey(id string) string {
	return r.prefix + ":stats:" + id
}

// SaveRoundResult delegates to the base repository
func (r *CachedRepository) SaveRoundResult(ctx context.Context, result *entities.RoundResult) error {
	return r.baseRepo.SaveRoundResult(ctx, result)
}

// GetPlayerResults delegates to the base repository
func (r *CachedRepository) GetPlayerResults(ctx context.Context, playerID string, limit int) ([]*entities.RoundResult, error) {
	return r.baseRepo.GetPlayerResults(ctx, playerID, limit)
}

// GetGameResults delegates to the base repository
func (r *CachedRepository) GetGameResults(ctx context.Context, gameID string) ([]*entities.RoundResult, error) {
	return r.baseRepo.GetGameResults(ctx, gameID)
}

// GetPlayerStatistics reads through the cache
func (r *CachedRepository) GetPlayerStatistics(ctx context.Context, playerID string) (*entities.PlayerStatistics, error) {
	var stats entities.PlayerStatistics
	if r.load(ctx, r.playerKey(playerID), &stats) {
		return &stats, nil
	}

	fresh, err := r.baseRepo.GetPlayerStatistics(ctx, playerID)
	if err != nil {
		return nil, err
	}
	r.store(ctx, r.playerKey(playerID), fresh)
	return fresh, nil
}

// GetAllPlayerStatistics reads through the cache
func (r *CachedRepository) GetAllPlayerStatistics(ctx context.Context) ([]*entities.PlayerStatistics, error) {
	var all []*entities.PlayerStatistics
	if r.load(ctx, r.leaderboardKey(), &all) {
		return all, nil
	}

	fresh, err := r.baseRepo.GetAllPlayerStatistics(ctx)
	if err != nil {
		return nil, err
	}
	r.store(ctx, r.leaderboardKey(), fresh)
	return fresh, nil
}

// UpdatePlayerStatistics updates the base repository and drops the cached entries
func (r *CachedRepository) UpdatePlayerStatistics(ctx context.Context, result *entities.RoundResult) error {
	if err := r.baseRepo.UpdatePlayerStatistics(ctx, result); err != nil {
		return err
	}

	keys := []string{r.leaderboardKey()}
	for _, pr := range result.Players {
		keys = append(keys, r.playerKey(pr.PlayerID))
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.log.Warn("Failed to invalidate cached statistics: %v", err)
	}
	return nil
}

// PruneRoundResults delegates to the base repository
func (r *CachedRepository) PruneRoundResults(ctx context.Context, before time.Time) (int64, error) {
	return r.baseRepo.PruneRoundResults(ctx, before)
}

// Close closes the base repository. The Redis client belongs to the caller.
func (r *CachedRepository) Close() error {
	return r.baseRepo.Close()
}

// load reports whether key held a value that decoded into dest
func (r *CachedRepository) load(ctx context.Context, key string, dest interface{}) bool {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		r.log.Warn("Cache read for %s failed: %v", key, err)
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		r.log.Warn("Cache entry %s is corrupt: %v", key, err)
		return false
	}
	return true
}

func (r *CachedRepository) store(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		r.log.Warn("Cannot encode %s for the cache: %v", key, err)
		return
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.log.Warn("Cache write for %s failed: %v", key, err)
	}
}
