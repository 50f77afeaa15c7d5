package game

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fadedpez/eights/pkg/db/migrations"
	"github.com/fadedpez/eights/pkg/entities"
	_ "github.com/mattn/go-sqlite3"
)

const (
	selectRoundSQL = `
	SELECT id, game_id, round, kind, multiplier, jack_count, game_over, completed_at
	FROM round_results`

	selectPlayersSQL = `
	SELECT round_id, player_id, name, computer, outcome, points_charged, total_points, cards_left, game_winner
	FROM player_results`

	selectStatisticsSQL = `
	SELECT player_id, name, rounds_played, rounds_won, rounds_lost, deadlocks,
		games_played, games_won, points_charged, jack_bonuses, last_played
	FROM player_statistics`

	upsertStatisticsSQL = `
	INSERT INTO player_statistics (
		player_id, name, rounds_played, rounds_won, rounds_lost, deadlocks,
		games_played, games_won, points_charged, jack_bonuses, last_played
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(player_id) DO UPDATE SET
		name = excluded.name,
		rounds_played = excluded.rounds_played,
		rounds_won = excluded.rounds_won,
		rounds_lost = excluded.rounds_lost,
		deadlocks = excluded.deadlocks,
		games_played = excluded.games_played,
		games_won = excluded.games_won,
		points_charged = excluded.points_charged,
		jack_bonuses = excluded.jack_bonuses,
		last_played = excluded.last_played`
)

// SQLiteRepository implements the Repository interface using SQLite
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens dbPath, which may be ":memory:", and applies the
// embedded migrations
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("error creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	// SQLite allows a single writer; an in-memory database is also per connection
	db.SetMaxOpenConns(1)

	migrator := migrations.NewMigrator(db, migrations.Embedded())
	if _, err := migrator.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// SaveRoundResult stores a round and its player rows in one transaction
func (r *SQLiteRepository) SaveRoundResult(ctx context.Context, result *entities.RoundResult) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO round_results (
			id, game_id, round, kind, multiplier, jack_count, game_over, completed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = tx.ExecContext(ctx, query,
		result.ID, result.GameID, result.Round, string(result.Kind), result.Multiplier,
		result.JackCount, result.GameOver, result.CompletedAt.UTC())
	if err != nil {
		return fmt.Errorf("error inserting round %s: %w", result.ID, err)
	}

	for seat, pr := range result.Players {
		query := `
			INSERT INTO player_results (
				round_id, seat, player_id, name, computer, outcome,
				points_charged, total_points, cards_left, game_winner
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

		_, err = tx.ExecContext(ctx, query,
			result.ID, seat, pr.PlayerID, pr.Name, pr.Computer, string(pr.Outcome),
			pr.PointsCharged, pr.TotalPoints, pr.CardsLeft, pr.GameWinner)
		if err != nil {
			return fmt.Errorf("error inserting player result: %w", err)
		}
	}

	return tx.Commit()
}

// GetPlayerResults retrieves the most recent rounds a player took part in
func (r *SQLiteRepository) GetPlayerResults(ctx context.Context, playerID string, limit int) ([]*entities.RoundResult, error) {
	query := selectRoundSQL + `
		WHERE id IN (SELECT round_id FROM player_results WHERE player_id = ?)
		ORDER BY completed_at DESC`
	args := []interface{}{playerID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	return r.queryRounds(ctx, query, args...)
}

// GetGameResults retrieves every round of a game in round order
func (r *SQLiteRepository) GetGameResults(ctx context.Context, gameID string) ([]*entities.RoundResult, error) {
	return r.queryRounds(ctx, selectRoundSQL+" WHERE game_id = ? ORDER BY round", gameID)
}

func (r *SQLiteRepository) queryRounds(ctx context.Context, query string, args ...interface{}) ([]*entities.RoundResult, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []*entities.RoundResult{}
	byID := make(map[string]*entities.RoundResult)
	for rows.Next() {
		var round entities.RoundResult
		var kind string
		if err := rows.Scan(&round.ID, &round.GameID, &round.Round, &kind, &round.Multiplier,
			&round.JackCount, &round.GameOver, &round.CompletedAt); err != nil {
			return nil, err
		}
		round.Kind = entities.RoundKind(kind)
		results = append(results, &round)
		byID[round.ID] = &round
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if len(results) == 0 {
		return results, nil
	}
	if err := r.loadPlayers(ctx, byID); err != nil {
		return nil, err
	}
	return results, nil
}

// loadPlayers attaches the player rows, in seat order, to each round in byID
func (r *SQLiteRepository) loadPlayers(ctx context.Context, byID map[string]*entities.RoundResult) error {
	ids := make([]interface{}, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	query := selectPlayersSQL + " WHERE round_id IN (" + placeholders + ") ORDER BY round_id, seat"

	rows, err := r.db.QueryContext(ctx, query, ids...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var roundID, outcome string
		var pr entities.PlayerResult
		if err := rows.Scan(&roundID, &pr.PlayerID, &pr.Name, &pr.Computer, &outcome,
			&pr.PointsCharged, &pr.TotalPoints, &pr.CardsLeft, &pr.GameWinner); err != nil {
			return err
		}
		pr.Outcome = entities.Outcome(outcome)
		if round, ok := byID[roundID]; ok {
			round.Players = append(round.Players, &pr)
		}
	}
	return rows.Err()
}

// GetPlayerStatistics retrieves statistics for a specific player
func (r *SQLiteRepository) GetPlayerStatistics(ctx context.Context, playerID string) (*entities.PlayerStatistics, error) {
	stats, err := scanStatistics(r.db.QueryRowContext(ctx, selectStatisticsSQL+" WHERE player_id = ?", playerID))
	if err == sql.ErrNoRows {
		return emptyStatistics(playerID), nil
	}
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// GetAllPlayerStatistics retrieves statistics for every player, ordered by player ID
func (r *SQLiteRepository) GetAllPlayerStatistics(ctx context.Context) ([]*entities.PlayerStatistics, error) {
	rows, err := r.db.QueryContext(ctx, selectStatisticsSQL+" ORDER BY player_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	all := []*entities.PlayerStatistics{}
	for rows.Next() {
		stats, err := scanStatistics(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, stats)
	}
	return all, rows.Err()
}

// UpdatePlayerStatistics folds a round into each of its players' statistics
func (r *SQLiteRepository) UpdatePlayerStatistics(ctx context.Context, result *entities.RoundResult) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, pr := range result.Players {
		stats, err := scanStatistics(tx.QueryRowContext(ctx, selectStatisticsSQL+" WHERE player_id = ?", pr.PlayerID))
		if err == sql.ErrNoRows {
			stats = emptyStatistics(pr.PlayerID)
		} else if err != nil {
			return err
		}

		stats.Apply(result, pr)
		_, err = tx.ExecContext(ctx, upsertStatisticsSQL,
			stats.PlayerID, stats.Name, stats.RoundsPlayed, stats.RoundsWon, stats.RoundsLost,
			stats.Deadlocks, stats.GamesPlayed, stats.GamesWon, stats.PointsCharged,
			stats.JackBonuses, stats.LastPlayed.UTC())
		if err != nil {
			return fmt.Errorf("error saving statistics for %s: %w", pr.PlayerID, err)
		}
	}

	return tx.Commit()
}

// PruneRoundResults deletes rounds completed before the cutoff
func (r *SQLiteRepository) PruneRoundResults(ctx context.Context, before time.Time) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	cutoff := before.UTC()
	_, err = tx.ExecContext(ctx, `
		DELETE FROM player_results
		WHERE round_id IN (SELECT id FROM round_results WHERE completed_at < ?)`, cutoff)
	if err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM round_results WHERE completed_at < ?", cutoff)
	if err != nil {
		return 0, err
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	return removed, tx.Commit()
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStatistics(row rowScanner) (*entities.PlayerStatistics, error) {
	var stats entities.PlayerStatistics
	err := row.Scan(&stats.PlayerID, &stats.Name, &stats.RoundsPlayed, &stats.RoundsWon,
		&stats.RoundsLost, &stats.Deadlocks, &stats.GamesPlayed, &stats.GamesWon,
		&stats.PointsCharged, &stats.JackBonuses, &stats.LastPlayed)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
