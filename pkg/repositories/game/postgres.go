package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fadedpez/eights/pkg/entities"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL schema, applied on connect
const postgresSchemaSQL = `
CREATE TABLE IF NOT EXISTS round_results (
	id TEXT PRIMARY KEY,
	game_id TEXT NOT NULL,
	round INTEGER NOT NULL,
	kind TEXT NOT NULL,
	multiplier INTEGER NOT NULL,
	jack_count INTEGER NOT NULL DEFAULT 0,
	game_over BOOLEAN NOT NULL DEFAULT FALSE,
	completed_at TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_round_results_game ON round_results(game_id);
CREATE INDEX IF NOT EXISTS idx_round_results_completed ON round_results(completed_at);

CREATE TABLE IF NOT EXISTS player_results (
	id BIGSERIAL PRIMARY KEY,
	round_id TEXT NOT NULL REFERENCES round_results(id) ON DELETE CASCADE,
	seat INTEGER NOT NULL,
	player_id TEXT NOT NULL,
	name TEXT NOT NULL,
	computer BOOLEAN NOT NULL DEFAULT FALSE,
	outcome TEXT NOT NULL,
	points_charged INTEGER NOT NULL,
	total_points INTEGER NOT NULL,
	cards_left INTEGER NOT NULL,
	game_winner BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE INDEX IF NOT EXISTS idx_player_results_player ON player_results(player_id);

CREATE TABLE IF NOT EXISTS player_statistics (
	player_id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	rounds_played INTEGER NOT NULL DEFAULT 0,
	rounds_won INTEGER NOT NULL DEFAULT 0,
	rounds_lost INTEGER NOT NULL DEFAULT 0,
	deadlocks INTEGER NOT NULL DEFAULT 0,
	games_played INTEGER NOT NULL DEFAULT 0,
	games_won INTEGER NOT NULL DEFAULT 0,
	points_charged BIGINT NOT NULL DEFAULT 0,
	jack_bonuses INTEGER NOT NULL DEFAULT 0,
	last_played TIMESTAMPTZ NOT NULL
);`

// PostgresRepository implements the Repository interface on a pgx connection pool
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository connects to url and makes sure the schema exists
func NewPostgresRepository(ctx context.Context, url string) (*PostgresRepository, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error creating schema: %w", err)
	}

	return &PostgresRepository{pool: pool}, nil
}

// SaveRoundResult stores a round and its player rows in one transaction
func (r *PostgresRepository) SaveRoundResult(ctx context.Context, result *entities.RoundResult) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO round_results (
			id, game_id, round, kind, multiplier, jack_count, game_over, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		result.ID, result.GameID, result.Round, string(result.Kind), result.Multiplier,
		result.JackCount, result.GameOver, result.CompletedAt)
	if err != nil {
		return fmt.Errorf("error inserting round %s: %w", result.ID, err)
	}

	batch := &pgx.Batch{}
	for seat, pr := range result.Players {
		batch.Queue(`
			INSERT INTO player_results (
				round_id, seat, player_id, name, computer, outcome,
				points_charged, total_points, cards_left, game_winner
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			result.ID, seat, pr.PlayerID, pr.Name, pr.Computer, string(pr.Outcome),
			pr.PointsCharged, pr.TotalPoints, pr.CardsLeft, pr.GameWinner)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("error inserting player results: %w", err)
	}

	return tx.Commit(ctx)
}

// GetPlayerResults retrieves the most recent rounds a player took part in
func (r *PostgresRepository) GetPlayerResults(ctx context.Context, playerID string, limit int) ([]*entities.RoundResult, error) {
	query := `
		SELECT id, game_id, round, kind, multiplier, jack_count, game_over, completed_at
		FROM round_results
		WHERE id IN (SELECT round_id FROM player_results WHERE player_id = $1)
		ORDER BY completed_at DESC`
	args := []any{playerID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	return r.queryRounds(ctx, query, args...)
}

// GetGameResults retrieves every round of a game in round order
func (r *PostgresRepository) GetGameResults(ctx context.Context, gameID string) ([]*entities.RoundResult, error) {
	return r.queryRounds(ctx, `
		SELECT id, game_id, round, kind, multiplier, jack_count, game_over, completed_at
		FROM round_results
		WHERE game_id = $1
		ORDER BY round`, gameID)
}

func (r *PostgresRepository) queryRounds(ctx context.Context, query string, args ...any) ([]*entities.RoundResult, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entities.RoundResult, error) {
		var round entities.RoundResult
		var kind string
		err := row.Scan(&round.ID, &round.GameID, &round.Round, &kind, &round.Multiplier,
			&round.JackCount, &round.GameOver, &round.CompletedAt)
		round.Kind = entities.RoundKind(kind)
		return &round, err
	})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return []*entities.RoundResult{}, nil
	}

	byID := make(map[string]*entities.RoundResult, len(results))
	ids := make([]string, 0, len(results))
	for _, round := range results {
		byID[round.ID] = round
		ids = append(ids, round.ID)
	}

	rows, err = r.pool.Query(ctx, `
		SELECT round_id, player_id, name, computer, outcome, points_charged, total_points, cards_left, game_winner
		FROM player_results
		WHERE round_id = ANY($1)
		ORDER BY round_id, seat`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var roundID, outcome string
		var pr entities.PlayerResult
		if err := rows.Scan(&roundID, &pr.PlayerID, &pr.Name, &pr.Computer, &outcome,
			&pr.PointsCharged, &pr.TotalPoints, &pr.CardsLeft, &pr.GameWinner); err != nil {
			return nil, err
		}
		pr.Outcome = entities.Outcome(outcome)
		byID[roundID].Players = append(byID[roundID].Players, &pr)
	}
	return results, rows.Err()
}

// GetPlayerStatistics retrieves statistics for a specific player
func (r *PostgresRepository) GetPlayerStatistics(ctx context.Context, playerID string) (*entities.PlayerStatistics, error) {
	stats, err := scanStatistics(r.pool.QueryRow(ctx, selectStatisticsSQL+" WHERE player_id = $1", playerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return emptyStatistics(playerID), nil
	}
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// GetAllPlayerStatistics retrieves statistics for every player, ordered by player ID
func (r *PostgresRepository) GetAllPlayerStatistics(ctx context.Context) ([]*entities.PlayerStatistics, error) {
	rows, err := r.pool.Query(ctx, selectStatisticsSQL+" ORDER BY player_id")
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entities.PlayerStatistics, error) {
		return scanStatistics(row)
	})
}

// UpdatePlayerStatistics folds a round into each of its players' statistics
func (r *PostgresRepository) UpdatePlayerStatistics(ctx context.Context, result *entities.RoundResult) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, pr := range result.Players {
		stats, err := scanStatistics(tx.QueryRow(ctx, selectStatisticsSQL+" WHERE player_id = $1 FOR UPDATE", pr.PlayerID))
		if errors.Is(err, pgx.ErrNoRows) {
			stats = emptyStatistics(pr.PlayerID)
		} else if err != nil {
			return err
		}

		stats.Apply(result, pr)
		_, err = tx.Exec(ctx, `
			INSERT INTO player_statistics (
				player_id, name, rounds_played, rounds_won, rounds_lost, deadlocks,
				games_played, games_won, points_charged, jack_bonuses, last_played
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (player_id) DO UPDATE SET
				name = EXCLUDED.name,
				rounds_played = EXCLUDED.rounds_played,
				rounds_won = EXCLUDED.rounds_won,
				rounds_lost = EXCLUDED.rounds_lost,
				deadlocks = EXCLUDED.deadlocks,
				games_played = EXCLUDED.games_played,
				games_won = EXCLUDED.games_won,
				points_charged = EXCLUDED.points_charged,
				jack_bonuses = EXCLUDED.jack_bonuses,
				last_played = EXCLUDED.last_played`,
			stats.PlayerID, stats.Name, stats.RoundsPlayed, stats.RoundsWon, stats.RoundsLost,
			stats.Deadlocks, stats.GamesPlayed, stats.GamesWon, stats.PointsCharged,
			stats.JackBonuses, stats.LastPlayed)
		if err != nil {
			return fmt.Errorf("error saving statistics for %s: %w", pr.PlayerID, err)
		}
	}

	return tx.Commit(ctx)
}

// PruneRoundResults deletes rounds completed before the cutoff; player rows cascade
func (r *PostgresRepository) PruneRoundResults(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, "DELETE FROM round_results WHERE completed_at < $1", before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Close closes the connection pool
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}
