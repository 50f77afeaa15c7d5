package entities

import "time"

// PlayerStatistics represents aggregated statistics for a player across rounds
type PlayerStatistics struct {
	PlayerID      string    `json:"player_id"`
	Name          string    `json:"name"`
	RoundsPlayed  int       `json:"rounds_played"`
	RoundsWon     int       `json:"rounds_won"`
	RoundsLost    int       `json:"rounds_lost"`
	Deadlocks     int       `json:"deadlocks"`
	GamesPlayed   int       `json:"games_played"`
	GamesWon      int       `json:"games_won"`
	PointsCharged int64     `json:"points_charged"`
	JackBonuses   int       `json:"jack_bonuses"`
	LastPlayed    time.Time `json:"last_played"`
}

// WinRate calculates the player's round win rate as a percentage
func (s *PlayerStatistics) WinRate() float64 {
	if s.RoundsPlayed == 0 {
		return 0.0
	}
	return float64(s.RoundsWon) / float64(s.RoundsPlayed) * 100.0
}

// AveragePoints is the mean points charged per round
func (s *PlayerStatistics) AveragePoints() float64 {
	if s.RoundsPlayed == 0 {
		return 0.0
	}
	return float64(s.PointsCharged) / float64(s.RoundsPlayed)
}

// Apply folds one round into the statistics
func (s *PlayerStatistics) Apply(round *RoundResult, player *PlayerResult) {
	if s.PlayerID == "" {
		s.PlayerID = player.PlayerID
	}
	if player.Name != "" {
		s.Name = player.Name
	}

	s.RoundsPlayed++
	switch player.Outcome {
	case OutcomeWin:
		s.RoundsWon++
	case OutcomeLoss:
		s.RoundsLost++
	case OutcomeDeadlock:
		s.Deadlocks++
	}

	s.PointsCharged += int64(player.PointsCharged)
	if player.Outcome == OutcomeWin && round.JackCount > 0 {
		s.JackBonuses++
	}

	if round.GameOver {
		s.GamesPlayed++
		if player.GameWinner {
			s.GamesWon++
		}
	}

	if round.CompletedAt.After(s.LastPlayed) {
		s.LastPlayed = round.CompletedAt
	}
}
