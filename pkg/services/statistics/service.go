package statistics

import (
	"context"
	"sort"
	"time"

	"github.com/fadedpez/eights/internal/types"
	"github.com/fadedpez/eights/pkg/entities"
	"github.com/fadedpez/eights/pkg/repositories/game"
)

// DefaultPageSize is the leaderboard page size used when none is given
const DefaultPageSize = 10

// Service records finished rounds and builds leaderboards from player statistics
type Service struct {
	repository game.Repository
}

// NewService creates a new statistics service
func NewService(repository game.Repository) *Service {
	return &Service{
		repository: repository,
	}
}

// PlayerRank represents a player's statistics with ranking information
type PlayerRank struct {
	*entities.PlayerStatistics
	Rank          int     `json:"rank"`
	WinRate       float64 `json:"win_rate"`
	AveragePoints float64 `json:"average_points"`
	IsTopWinner   bool    `json:"is_top_winner"`
	IsTopPlayer   bool    `json:"is_top_player"`
}

// Leaderboard represents a paginated leaderboard of player statistics
type Leaderboard struct {
	Players        []*PlayerRank `json:"players"`
	TotalPlayers   int           `json:"total_players"`
	CurrentPage    int           `json:"current_page"`
	TotalPages     int           `json:"total_pages"`
	PlayersPerPage int           `json:"players_per_page"`
	LastUpdated    time.Time     `json:"last_updated"`
}

// RecordRound stores a finished round and folds it into each player's statistics
func (s *Service) RecordRound(ctx context.Context, result *entities.RoundResult) error {
	if result == nil || result.ID == "" || len(result.Players) == 0 {
		return types.NewGameError(types.ErrInvalidInput, "round result is incomplete")
	}
	if err := s.repository.SaveRoundResult(ctx, result); err != nil {
		return types.WrapError(types.ErrDatabaseError, "failed to save round result", err)
	}
	if err := s.repository.UpdatePlayerStatistics(ctx, result); err != nil {
		return types.WrapError(types.ErrDatabaseError, "failed to update player statistics", err)
	}
	return nil
}

// GetLeaderboard ranks every player who has finished a round: highest win rate
// first, then most rounds won, then fewest points charged
func (s *Service) GetLeaderboard(ctx context.Context, page, playersPerPage int) (*Leaderboard, error) {
	if page < 1 {
		page = 1
	}
	if playersPerPage < 1 {
		playersPerPage = DefaultPageSize
	}

	ranks, err := s.rankAll(ctx)
	if err != nil {
		return nil, err
	}

	// Calculate pagination
	totalPlayers := len(ranks)
	totalPages := (totalPlayers + playersPerPage - 1) / playersPerPage
	if page > totalPages && totalPages > 0 {
		page = totalPages
	}

	start := (page - 1) * playersPerPage
	end := start + playersPerPage
	if end > totalPlayers {
		end = totalPlayers
	}

	currentPagePlayers := []*PlayerRank{}
	if start < totalPlayers {
		currentPagePlayers = ranks[start:end]
	}

	return &Leaderboard{
		Players:        currentPagePlayers,
		TotalPlayers:   totalPlayers,
		CurrentPage:    page,
		TotalPages:     totalPages,
		PlayersPerPage: playersPerPage,
		LastUpdated:    time.Now(),
	}, nil
}

func (s *Service) rankAll(ctx context.Context) ([]*PlayerRank, error) {
	allStats, err := s.repository.GetAllPlayerStatistics(ctx)
	if err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "failed to load player statistics", err)
	}

	ranks := make([]*PlayerRank, 0, len(allStats))
	for _, stats := range allStats {
		// Skip players with no rounds
		if stats.RoundsPlayed == 0 {
			continue
		}
		ranks = append(ranks, &PlayerRank{
			PlayerStatistics: stats,
			WinRate:          stats.WinRate(),
			AveragePoints:    stats.AveragePoints(),
		})
	}

	sort.SliceStable(ranks, func(i, j int) bool {
		a, b := ranks[i], ranks[j]
		if a.WinRate != b.WinRate {
			return a.WinRate > b.WinRate
		}
		if a.RoundsWon != b.RoundsWon {
			return a.RoundsWon > b.RoundsWon
		}
		return a.PointsCharged < b.PointsCharged
	})

	if len(ranks) > 0 {
		ranks[0].IsTopWinner = true

		mostRoundsIdx := 0
		for i := 1; i < len(ranks); i++ {
			if ranks[i].RoundsPlayed > ranks[mostRoundsIdx].RoundsPlayed {
				mostRoundsIdx = i
			}
		}
		ranks[mostRoundsIdx].IsTopPlayer = true
	}

	for i := range ranks {
		ranks[i].Rank = i + 1
	}
	return ranks, nil
}

// GetPlayerSummary returns a player's statistics with their leaderboard rank.
// A player with no finished rounds has rank 0.
func (s *Service) GetPlayerSummary(ctx context.Context, playerID string) (*PlayerRank, error) {
	ranks, err := s.rankAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, rank := range ranks {
		if rank.PlayerID == playerID {
			return rank, nil
		}
	}

	stats, err := s.repository.GetPlayerStatistics(ctx, playerID)
	if err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "failed to load player statistics", err)
	}
	return &PlayerRank{PlayerStatistics: stats}, nil
}

// GetRecentRounds returns up to n of the player's most recent rounds
func (s *Service) GetRecentRounds(ctx context.Context, playerID string, n int) ([]*entities.RoundResult, error) {
	rounds, err := s.repository.GetPlayerResults(ctx, playerID, n)
	if err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "failed to load recent rounds", err)
	}
	return rounds, nil
}
