package entities

import "time"

// RoundKind says how a round finished
type RoundKind string

const (
	RoundGoOut    RoundKind = "GO_OUT"
	RoundDeadlock RoundKind = "DEADLOCK"
)

// Outcome is a player's result for one round
type Outcome string

// IsWin returns true if this outcome represents a win
func (o Outcome) IsWin() bool {
	return o == OutcomeWin
}

// Common outcome constants
const (
	OutcomeWin      Outcome = "WIN"
	OutcomeLoss     Outcome = "LOSS"
	OutcomeDeadlock Outcome = "DEADLOCK"
)

// RoundResult is the persisted record of a finished round
type RoundResult struct {
	ID          string          `json:"id"`
	GameID      string          `json:"game_id"`
	Round       int             `json:"round"`
	Kind        RoundKind       `json:"kind"`
	Multiplier  int             `json:"multiplier"`
	JackCount   int             `json:"jack_count"`
	GameOver    bool            `json:"game_over"`
	CompletedAt time.Time       `json:"completed_at"`
	Players     []*PlayerResult `json:"players"`
}

// PlayerResult is one player's side of a RoundResult
type PlayerResult struct {
	PlayerID      string  `json:"player_id"`
	Name          string  `json:"name"`
	Computer      bool    `json:"computer"`
	Outcome       Outcome `json:"outcome"`
	PointsCharged int     `json:"points_charged"` // negative for a Jack bonus
	TotalPoints   int     `json:"total_points"`
	CardsLeft     int     `json:"cards_left"`
	GameWinner    bool    `json:"game_winner"`
}

// Player returns the result for playerID, or nil
func (r *RoundResult) Player(playerID string) *PlayerResult {
	for _, p := range r.Players {
		if p.PlayerID == playerID {
			return p
		}
	}
	return nil
}
