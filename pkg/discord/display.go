package discord

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/eights/internal/discord"
	"github.com/fadedpez/eights/pkg/entities"
	"github.com/fadedpez/eights/pkg/services/eights"
	"github.com/fadedpez/eights/pkg/services/session"
)

// Component IDs for the game view
const (
	stageSelectID = "eights_stage"
	playID        = "eights_play"
	suitPrefix    = "eights_suit_"
	drawID        = "eights_draw"
	passID        = "eights_pass"
	clearID       = "eights_clear"
	nextRoundID   = "eights_next"
	newGameID     = "eights_new"
)

// maxSelectOptions is Discord's limit on options in one select menu
const maxSelectOptions = 25

// logLines is how much of the session log the view shows
const logLines = 6

var suitEmoji = map[entities.Suit]string{
	entities.Hearts:   "♥️",
	entities.Diamonds: "♦️",
	entities.Clubs:    "♣️",
	entities.Spades:   "♠️",
}

func formatCard(card entities.Card) string {
	return card.Rank.Short() + suitEmoji[card.Suit]
}

func formatCards(cards []entities.Card) string {
	parts := make([]string, 0, len(cards))
	for _, card := range cards {
		parts = append(parts, formatCard(card))
	}
	return strings.Join(parts, " ")
}

// renderGame builds the private game view. notice, if set, is shown above it.
func renderGame(snap session.Snapshot, notice string) *discord.Response {
	resp := discord.NewEphemeralResponse(notice, gameComponents(snap))
	return resp.WithEmbeds(gameEmbed(snap))
}

func gameEmbed(snap session.Snapshot) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🎴 Crazy Eights | Round %d | x%d", snap.Round, snap.Multiplier),
		Color: 0x2E8B57,
	}

	computer := fmt.Sprintf("%d cards\n%d points%s", snap.ComputerCards, snap.Scores[eights.ComputerSeat], effectBadge(snap.Effects[eights.ComputerSeat]))
	you := fmt.Sprintf("%d cards\n%d points%s", len(snap.Hand), snap.Scores[eights.HumanSeat], effectBadge(snap.Effects[eights.HumanSeat]))
	embed.Fields = append(embed.Fields,
		&discordgo.MessageEmbedField{Name: "🤖 " + snap.Names[eights.ComputerSeat], Value: computer, Inline: true},
		&discordgo.MessageEmbedField{Name: "🙂 " + snap.Names[eights.HumanSeat], Value: you, Inline: true},
		&discordgo.MessageEmbedField{Name: "Table", Value: tableLine(snap), Inline: false},
		&discordgo.MessageEmbedField{Name: "Your hand", Value: handLine(snap), Inline: false},
	)

	if n := len(snap.Log); n > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Log",
			Value: strings.Join(snap.Log[max(0, n-logLines):], "\n"),
		})
	}

	switch {
	case snap.GameOver:
		embed.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Game over. %s wins the game.", snap.Names[snap.GameWinner])}
	case !snap.Running:
		embed.Footer = &discordgo.MessageEmbedFooter{Text: snap.RoundEndMessage}
	case snap.OwnsSix:
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "Cover your six or draw"}
	case snap.MustDraw:
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "No legal play, you must draw"}
	}

	return embed
}

func effectBadge(effect eights.Effect) string {
	switch effect.Kind {
	case eights.EffectDraw:
		return fmt.Sprintf("\n📥 +%d", effect.Cards)
	case eights.EffectSkip:
		return "\n⏭️ skipped"
	}
	return ""
}

func tableLine(snap session.Snapshot) string {
	if !snap.HasTop {
		return fmt.Sprintf("Empty, play anything | 🂠 %d in deck", snap.DeckSize)
	}
	line := fmt.Sprintf("Top: **%s** | 🂠 %d in deck | %d on the pile", formatCard(snap.Top), snap.DeckSize, snap.PileSize)
	if snap.Obligation != nil && snap.Obligation.Kind() != eights.KindNone {
		line += "\nNow: " + snap.Obligation.String()
	}
	return line
}

func handLine(snap session.Snapshot) string {
	if len(snap.Hand) == 0 {
		return "No cards"
	}
	staged := stagedSet(snap)
	parts := make([]string, 0, len(snap.Hand))
	for i, card := range snap.Hand {
		label := formatCard(card)
		if staged[i] {
			label = "__" + label + "__"
		} else if snap.Playable[i] {
			label = "**" + label + "**"
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, " ")
}

func stagedSet(snap session.Snapshot) map[int]bool {
	staged := make(map[int]bool, len(snap.Staged))
	for _, idx := range snap.Staged {
		staged[idx] = true
	}
	return staged
}

func gameComponents(snap session.Snapshot) []discordgo.MessageComponent {
	if snap.GameOver {
		return []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "New Game", Style: discordgo.SuccessButton, CustomID: newGameID},
			}},
		}
	}
	if !snap.Running {
		return []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Next Round", Style: discordgo.SuccessButton, CustomID: nextRoundID},
			}},
		}
	}

	staged := stagedSet(snap)
	options := make([]discordgo.SelectMenuOption, 0, min(len(snap.Hand), maxSelectOptions))
	for i, card := range snap.Hand {
		if i == maxSelectOptions {
			break
		}
		description := ""
		switch {
		case staged[i]:
			description = "Staged, pick again to unstage"
		case snap.Playable[i]:
			description = "Playable"
		}
		options = append(options, discordgo.SelectMenuOption{
			Label:       fmt.Sprintf("%d. %s", i+1, card.Name()),
			Value:       strconv.Itoa(i),
			Description: description,
		})
	}

	rank, hasStaged := snap.StagedRank()
	rows := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:    discordgo.StringSelectMenu,
				CustomID:    stageSelectID,
				Placeholder: "Stage a card",
				MaxValues:   1,
				Options:     options,
			},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Play", Style: discordgo.PrimaryButton, CustomID: playID, Disabled: !hasStaged || rank == entities.Jack},
			discordgo.Button{Label: "Draw", Style: discordgo.SecondaryButton, CustomID: drawID},
			discordgo.Button{Label: "Pass", Style: discordgo.SecondaryButton, CustomID: passID},
			discordgo.Button{Label: "Clear", Style: discordgo.DangerButton, CustomID: clearID, Disabled: !hasStaged},
		}},
	}

	if hasStaged && rank == entities.Jack {
		suits := make([]discordgo.MessageComponent, 0, len(entities.Suits))
		for _, suit := range entities.Suits {
			suits = append(suits, discordgo.Button{
				Label:    "Play as " + suit.Name(),
				Style:    discordgo.PrimaryButton,
				CustomID: suitPrefix + string(suit),
				Emoji:    &discordgo.ComponentEmoji{Name: suitEmoji[suit]},
			})
		}
		rows = append(rows, discordgo.ActionsRow{Components: suits})
	}

	return rows
}
