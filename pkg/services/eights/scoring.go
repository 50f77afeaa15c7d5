package eights

import (
	"fmt"
	"time"

	"github.com/fadedpez/eights/pkg/entities"
	"github.com/google/uuid"
)

// RoundOutcome describes how a round ended and what it cost each player
type RoundOutcome struct {
	Round      int
	Kind       entities.RoundKind
	Winner     int // -1 for a deadlock
	JackCount  int
	Multiplier int
	Charges    [Seats]int // points added to each seat this round
	Totals     [Seats]int
	GameOver   bool
	GameWinner int // -1 unless GameOver
	Message    string
	Record     *entities.RoundResult
}

// CheckRoundOver ends the round when a hand is empty or when neither player
// can move and nothing can be drawn. It reports whether the round is over.
func (g *Game) CheckRoundOver() bool {
	if !g.running {
		return true
	}

	for seat, p := range g.players {
		if !p.HasCards() {
			g.finishGoOut(seat)
			return true
		}
	}

	if g.deck.IsEmpty() && len(g.table) < 2 && !g.HasLegalPlay(HumanSeat) && !g.HasLegalPlay(ComputerSeat) {
		g.finishDeadlock()
		return true
	}

	return false
}

func (g *Game) finishGoOut(winner int) {
	loser := other(winner)
	jacks := TrailingJacks(g.table)

	outcome := RoundOutcome{
		Round:      g.roundNumber,
		Kind:       entities.RoundGoOut,
		Winner:     winner,
		JackCount:  jacks,
		Multiplier: g.multiplier,
	}
	outcome.Charges[loser] = g.players[loser].HandPoints() * g.multiplier
	outcome.Charges[winner] = JackBonus * jacks * g.multiplier

	g.charge(&outcome)

	w, l := g.players[winner].Name, g.players[loser].Name
	if outcome.GameOver {
		outcome.Message = g.gameOverMessage(outcome.GameWinner)
	} else {
		jackText := ""
		if jacks > 0 {
			plural := ""
			if jacks > 1 {
				plural = "s"
			}
			jackText = fmt.Sprintf(" %s finished with %d Jack%s (-%d points)!", w, jacks, plural, -outcome.Charges[winner])
		}
		outcome.Message = fmt.Sprintf("Round %d over! %s wins!%s %s gets %d points (x%d multiplier). Total score: %s",
			g.roundNumber, w, jackText, l, outcome.Charges[loser], g.multiplier, g.scoreLine())
	}

	g.endRound(outcome)
}

func (g *Game) finishDeadlock() {
	outcome := RoundOutcome{
		Round:      g.roundNumber,
		Kind:       entities.RoundDeadlock,
		Winner:     -1,
		Multiplier: g.multiplier,
	}
	for seat := range g.players {
		outcome.Charges[seat] = g.players[other(seat)].HandPoints() * g.multiplier
	}

	g.charge(&outcome)

	if outcome.GameOver {
		outcome.Message = g.gameOverMessage(outcome.GameWinner)
	} else {
		h, c := g.players[HumanSeat], g.players[ComputerSeat]
		outcome.Message = fmt.Sprintf("Round %d deadlocked! Both players get points: %s +%d, %s +%d. Total score: %s",
			g.roundNumber, h.Name, outcome.Charges[HumanSeat], c.Name, outcome.Charges[ComputerSeat], g.scoreLine())
	}

	g.endRound(outcome)
}

// charge applies the round's charges and decides whether the game is over
func (g *Game) charge(outcome *RoundOutcome) {
	for seat, p := range g.players {
		p.Points += outcome.Charges[seat]
		outcome.Totals[seat] = p.Points
	}

	outcome.GameWinner = -1
	over := false
	for _, total := range outcome.Totals {
		if total > GameOverThreshold {
			over = true
		}
	}
	if !over {
		return
	}

	outcome.GameOver = true
	switch {
	case outcome.Totals[HumanSeat] < outcome.Totals[ComputerSeat]:
		outcome.GameWinner = HumanSeat
	case outcome.Totals[ComputerSeat] < outcome.Totals[HumanSeat]:
		outcome.GameWinner = ComputerSeat
	case outcome.Winner >= 0:
		outcome.GameWinner = outcome.Winner
	default:
		outcome.GameWinner = HumanSeat
	}
}

func (g *Game) endRound(outcome RoundOutcome) {
	g.running = false
	g.hints = Hints{}
	g.obligation = NoObligation{}
	g.roundEndMessage = outcome.Message
	if outcome.GameOver {
		g.gameOver = true
		g.gameWinner = outcome.GameWinner
	}

	outcome.Record = g.buildRecord(outcome)
	g.lastOutcome = &outcome

	g.log.Info("%s", outcome.Message)
	g.observer.RoundEnded(outcome)
}

func (g *Game) buildRecord(outcome RoundOutcome) *entities.RoundResult {
	record := &entities.RoundResult{
		ID:          uuid.NewString(),
		GameID:      g.id,
		Round:       outcome.Round,
		Kind:        outcome.Kind,
		Multiplier:  outcome.Multiplier,
		JackCount:   outcome.JackCount,
		GameOver:    outcome.GameOver,
		CompletedAt: time.Now().UTC(),
	}

	for seat, p := range g.players {
		result := entities.OutcomeDeadlock
		if outcome.Kind == entities.RoundGoOut {
			result = entities.OutcomeLoss
			if seat == outcome.Winner {
				result = entities.OutcomeWin
			}
		}
		record.Players = append(record.Players, &entities.PlayerResult{
			PlayerID:      p.ID,
			Name:          p.Name,
			Computer:      p.Computer,
			Outcome:       result,
			PointsCharged: outcome.Charges[seat],
			TotalPoints:   outcome.Totals[seat],
			CardsLeft:     p.HandSize(),
			GameWinner:    outcome.GameOver && seat == outcome.GameWinner,
		})
	}

	return record
}

func (g *Game) scoreLine() string {
	h, c := g.players[HumanSeat], g.players[ComputerSeat]
	return fmt.Sprintf("%s %d, %s %d", h.Name, h.Points, c.Name, c.Points)
}

func (g *Game) gameOverMessage(winner int) string {
	return fmt.Sprintf("Game Over! %s wins! Final score: %s", g.players[winner].Name, g.scoreLine())
}
