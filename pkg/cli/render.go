package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fadedpez/eights/pkg/entities"
	"github.com/fadedpez/eights/pkg/services/eights"
	"github.com/fadedpez/eights/pkg/services/session"
	"github.com/fadedpez/eights/pkg/services/statistics"
	"github.com/pterm/pterm"
)

// logLines is how much of the session log is shown under the table
const logLines = 5

// cardString renders a card with red suits coloured
func cardString(c entities.Card) string {
	switch c.Suit {
	case entities.Hearts, entities.Diamonds:
		return c.Rank.Short() + pterm.LightRed(c.Suit.Glyph())
	default:
		return c.Rank.Short() + c.Suit.Glyph()
	}
}

func effectTag(effect eights.Effect) string {
	switch effect.Kind {
	case eights.EffectDraw:
		return pterm.Yellow(fmt.Sprintf(" [draws %d]", effect.Cards))
	case eights.EffectSkip:
		return pterm.Yellow(" [skipped]")
	}
	return ""
}

// renderTable draws the whole table state for the human
func renderTable(snap session.Snapshot) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  Deck %d | Pile %d\n",
		pterm.Bold.Sprintf("Round %d x%d", snap.Round, snap.Multiplier), snap.DeckSize, snap.PileSize)
	fmt.Fprintf(&b, "%s: %d cards, %d points%s\n",
		snap.Names[eights.ComputerSeat], snap.ComputerCards, snap.Scores[eights.ComputerSeat], effectTag(snap.Effects[eights.ComputerSeat]))
	fmt.Fprintf(&b, "%s: %d cards, %d points%s\n",
		snap.Names[eights.HumanSeat], len(snap.Hand), snap.Scores[eights.HumanSeat], effectTag(snap.Effects[eights.HumanSeat]))

	if snap.HasTop {
		fmt.Fprintf(&b, "Top: %s", cardString(snap.Top))
		if snap.Obligation != nil && snap.Obligation.Kind() != eights.KindNone {
			fmt.Fprintf(&b, " (%s)", snap.Obligation.String())
		}
		b.WriteString("\n")
	} else {
		b.WriteString("Top: empty table, anything goes\n")
	}

	if len(snap.Hand) > 0 {
		staged := make(map[int]bool, len(snap.Staged))
		for _, idx := range snap.Staged {
			staged[idx] = true
		}
		data := pterm.TableData{{"#", "Card", ""}}
		for i, card := range snap.Hand {
			mark := ""
			switch {
			case staged[i]:
				mark = pterm.Cyan("staged")
			case snap.Playable[i]:
				mark = pterm.Green("playable")
			}
			data = append(data, []string{strconv.Itoa(i + 1), cardString(card), mark})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return "", fmt.Errorf("failed to render hand: %w", err)
		}
		b.WriteString(table)
		b.WriteString("\n")
	}

	if n := len(snap.Log); n > 0 {
		for _, msg := range snap.Log[max(0, n-logLines):] {
			b.WriteString(pterm.Gray("  " + msg))
			b.WriteString("\n")
		}
	}

	switch {
	case snap.GameOver:
		b.WriteString(pterm.Bold.Sprintf("Game over. %s wins the game. Type 'new' to play again.", snap.Names[snap.GameWinner]))
		b.WriteString("\n")
	case !snap.Running:
		b.WriteString(pterm.Bold.Sprint("Type 'next' for the next round."))
		b.WriteString("\n")
	case snap.OwnsSix:
		b.WriteString(pterm.Yellow("Cover your six or draw.\n"))
	case snap.MustDraw:
		b.WriteString(pterm.Yellow("No legal play, you must draw.\n"))
	}

	return b.String(), nil
}

// renderLeaderboard draws the leaderboard page as a table
func renderLeaderboard(lb *statistics.Leaderboard) (string, error) {
	if lb.TotalPlayers == 0 {
		return "No finished rounds yet.\n", nil
	}
	data := pterm.TableData{{"Rank", "Player", "Rounds", "Won", "Win rate", "Points", "Games won"}}
	for _, p := range lb.Players {
		name := p.Name
		if name == "" {
			name = p.PlayerID
		}
		data = append(data, []string{
			strconv.Itoa(p.Rank),
			name,
			strconv.Itoa(p.RoundsPlayed),
			strconv.Itoa(p.RoundsWon),
			fmt.Sprintf("%.1f%%", p.WinRate),
			strconv.FormatInt(p.PointsCharged, 10),
			fmt.Sprintf("%d/%d", p.GamesWon, p.GamesPlayed),
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", fmt.Errorf("failed to render leaderboard: %w", err)
	}
	return table + "\n", nil
}
