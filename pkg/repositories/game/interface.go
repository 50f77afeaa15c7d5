package game

import (
	"context"
	"time"

	"github.com/fadedpez/eights/pkg/entities"
)

//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_game

// Repository defines storage operations for round history and player statistics
type Repository interface {
	// Round results
	SaveRoundResult(ctx context.Context, result *entities.RoundResult) error
	GetPlayerResults(ctx context.Context, playerID string, limit int) ([]*entities.RoundResult, error)
	GetGameResults(ctx context.Context, gameID string) ([]*entities.RoundResult, error)

	// Statistics
	GetPlayerStatistics(ctx context.Context, playerID string) (*entities.PlayerStatistics, error)
	GetAllPlayerStatistics(ctx context.Context) ([]*entities.PlayerStatistics, error)
	UpdatePlayerStatistics(ctx context.Context, result *entities.RoundResult) error

	// PruneRoundResults deletes rounds completed before the cutoff and returns
	// how many were removed. Statistics are kept.
	PruneRoundResults(ctx context.Context, before time.Time) (int64, error)

	// Close closes any resources used by the repository
	Close() error
}
