package game

import (
	"time"

	"github.com/fadedpez/eights/pkg/entities"
)

// ESRoundDocument represents a round result document in Elasticsearch
type ESRoundDocument struct {
	RoundID     string           `json:"round_id"`
	GameID      string           `json:"game_id"`
	Round       int              `json:"round"`
	Kind        string           `json:"kind"` // "GO_OUT" or "DEADLOCK"
	Multiplier  int              `json:"multiplier"`
	JackCount   int              `json:"jack_count"`
	GameOver    bool             `json:"game_over"`
	CompletedAt time.Time        `json:"completed_at"`
	Players     []ESPlayerResult `json:"players"`
}

// ESPlayerResult represents a player result in Elasticsearch
type ESPlayerResult struct {
	PlayerID      string `json:"player_id"`
	Name          string `json:"name"`
	Computer      bool   `json:"computer"`
	Outcome       string `json:"outcome"`
	PointsCharged int    `json:"points_charged"`
	TotalPoints   int    `json:"total_points"`
	CardsLeft     int    `json:"cards_left"`
	GameWinner    bool   `json:"game_winner"`
}

// ESPlayerStatistics is the per-player document kept next to the rounds
type ESPlayerStatistics struct {
	entities.PlayerStatistics
	WinRate     float64   `json:"win_rate"`
	LastUpdated time.Time `json:"last_updated"`
}

// NewESRoundDocument converts a round result to its document form
func NewESRoundDocument(r *entities.RoundResult) *ESRoundDocument {
	doc := &ESRoundDocument{
		RoundID:     r.ID,
		GameID:      r.GameID,
		Round:       r.Round,
		Kind:        string(r.Kind),
		Multiplier:  r.Multiplier,
		JackCount:   r.JackCount,
		GameOver:    r.GameOver,
		CompletedAt: r.CompletedAt,
		Players:     make([]ESPlayerResult, 0, len(r.Players)),
	}
	for _, p := range r.Players {
		doc.Players = append(doc.Players, ESPlayerResult{
			PlayerID:      p.PlayerID,
			Name:          p.Name,
			Computer:      p.Computer,
			Outcome:       string(p.Outcome),
			PointsCharged: p.PointsCharged,
			TotalPoints:   p.TotalPoints,
			CardsLeft:     p.CardsLeft,
			GameWinner:    p.GameWinner,
		})
	}
	return doc
}

// ToRoundResult converts the document back into a round result
func (d *ESRoundDocument) ToRoundResult() *entities.RoundResult {
	r := &entities.RoundResult{
		ID:          d.RoundID,
		GameID:      d.GameID,
		Round:       d.Round,
		Kind:        entities.RoundKind(d.Kind),
		Multiplier:  d.Multiplier,
		JackCount:   d.JackCount,
		GameOver:    d.GameOver,
		CompletedAt: d.CompletedAt,
		Players:     make([]*entities.PlayerResult, 0, len(d.Players)),
	}
	for _, p := range d.Players {
		r.Players = append(r.Players, &entities.PlayerResult{
			PlayerID:      p.PlayerID,
			Name:          p.Name,
			Computer:      p.Computer,
			Outcome:       entities.Outcome(p.Outcome),
			PointsCharged: p.PointsCharged,
			TotalPoints:   p.TotalPoints,
			CardsLeft:     p.CardsLeft,
			GameWinner:    p.GameWinner,
		})
	}
	return r
}
