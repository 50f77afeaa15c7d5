package game

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fadedpez/eights/pkg/entities"
)

// MemoryRepository implements Repository interface with in-memory storage
type MemoryRepository struct {
	mu sync.RWMutex
	// Rounds in the order they were saved
	rounds []*entities.RoundResult
	// Map of playerID to statistics
	statistics map[string]*entities.PlayerStatistics
}

// NewMemoryRepository creates a new in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		statistics: make(map[string]*entities.PlayerStatistics),
	}
}

// SaveRoundResult stores a round result
func (r *MemoryRepository) SaveRoundResult(ctx context.Context, result *entities.RoundResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rounds = append(r.rounds, copyRound(result))
	return nil
}

// GetPlayerResults retrieves the most recent rounds a player took part in
func (r *MemoryRepository) GetPlayerResults(ctx context.Context, playerID string, limit int) ([]*entities.RoundResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := []*entities.RoundResult{}
	for _, round := range r.rounds {
		if round.Player(playerID) != nil {
			results = append(results, copyRound(round))
		}
	}
	return newestFirst(results, limit), nil
}

// GetGameResults retrieves every round of a game in round order
func (r *MemoryRepository) GetGameResults(ctx context.Context, gameID string) ([]*entities.RoundResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := []*entities.RoundResult{}
	for _, round := range r.rounds {
		if round.GameID == gameID {
			results = append(results, copyRound(round))
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Round < results[j].Round
	})
	return results, nil
}

// GetPlayerStatistics retrieves statistics for a specific player
func (r *MemoryRepository) GetPlayerStatistics(ctx context.Context, playerID string) (*entities.PlayerStatistics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats, ok := r.statistics[playerID]
	if !ok {
		return emptyStatistics(playerID), nil
	}
	out := *stats
	return &out, nil
}

// GetAllPlayerStatistics retrieves statistics for every player, ordered by player ID
func (r *MemoryRepository) GetAllPlayerStatistics(ctx context.Context) ([]*entities.PlayerStatistics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*entities.PlayerStatistics, 0, len(r.statistics))
	for _, stats := range r.statistics {
		out := *stats
		all = append(all, &out)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].PlayerID < all[j].PlayerID
	})
	return all, nil
}

// UpdatePlayerStatistics folds a round into each of its players' statistics
func (r *MemoryRepository) UpdatePlayerStatistics(ctx context.Context, result *entities.RoundResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, pr := range result.Players {
		stats, ok := r.statistics[pr.PlayerID]
		if !ok {
			stats = emptyStatistics(pr.PlayerID)
			r.statistics[pr.PlayerID] = stats
		}
		stats.Apply(result, pr)
	}
	return nil
}

// PruneRoundResults drops rounds completed before the cutoff
func (r *MemoryRepository) PruneRoundResults(ctx context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.rounds[:0]
	var removed int64
	for _, round := range r.rounds {
		if round.CompletedAt.Before(before) {
			removed++
			continue
		}
		kept = append(kept, round)
	}
	r.rounds = kept
	return removed, nil
}

// Close is a no-op for the in-memory repository
func (r *MemoryRepository) Close() error {
	return nil
}
