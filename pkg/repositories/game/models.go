package game

import (
	"sort"

	"github.com/fadedpez/eights/pkg/entities"
)

// copyRound returns a deep copy so stored rounds cannot be changed by callers
func copyRound(r *entities.RoundResult) *entities.RoundResult {
	out := *r
	out.Players = make([]*entities.PlayerResult, 0, len(r.Players))
	for _, p := range r.Players {
		pr := *p
		out.Players = append(out.Players, &pr)
	}
	return &out
}

// newestFirst sorts rounds by completion time, newest first, and applies limit.
// A limit of zero or less keeps everything.
func newestFirst(results []*entities.RoundResult, limit int) []*entities.RoundResult {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CompletedAt.After(results[j].CompletedAt)
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// emptyStatistics is returned for a player with no recorded rounds
func emptyStatistics(playerID string) *entities.PlayerStatistics {
	return &entities.PlayerStatistics{PlayerID: playerID}
}
