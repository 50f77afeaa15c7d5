package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/eights/internal/discord"
	"github.com/fadedpez/eights/pkg/services/statistics"
)

// Component IDs owned by the stats command
const (
	statsPagePrefix = "stats_page_"
	statsPlayID     = "stats_play"
)

// StatsCommand handles the /eights-stats command for displaying the leaderboard
type StatsCommand struct {
	statisticsService *statistics.Service
	gameStarter       GameStarter // For starting new games
	pageSize          int
}

// GameStarter starts a game for the user behind an interaction
type GameStarter interface {
	StartGame(i *discordgo.InteractionCreate) error
}

// NewStatsCommand creates a new stats command handler
func NewStatsCommand(statisticsService *statistics.Service, gameStarter GameStarter) *StatsCommand {
	return &StatsCommand{
		statisticsService: statisticsService,
		gameStarter:       gameStarter,
		pageSize:          statistics.DefaultPageSize,
	}
}

// Command returns the command definition for the stats command
func (c *StatsCommand) Command() *discordgo.ApplicationCommand {
	minPage := float64(1)
	return &discordgo.ApplicationCommand{
		Name:        "eights-stats",
		Description: "View the Crazy Eights leaderboard",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "page",
				Description: "Leaderboard page",
				Type:        discordgo.ApplicationCommandOptionInteger,
				MinValue:    &minPage,
			},
		},
	}
}

// Handle handles the stats command
func (c *StatsCommand) Handle(s discord.SessionHandler, i *discordgo.InteractionCreate, userID string) error {
	page := 1
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "page" {
			page = int(opt.IntValue())
		}
	}

	resp, err := c.leaderboardResponse(context.Background(), page, userID)
	if err != nil {
		return discord.SendErrorResponse(s, i, err)
	}
	return discord.SendResponse(s, i, resp)
}

// HandleComponentInteraction handles button clicks on the leaderboard. It
// returns false for components that belong to someone else.
func (c *StatsCommand) HandleComponentInteraction(s discord.SessionHandler, i *discordgo.InteractionCreate, userID string) (bool, error) {
	customID := i.MessageComponentData().CustomID

	switch {
	case strings.HasPrefix(customID, statsPagePrefix):
		page, err := strconv.Atoi(strings.TrimPrefix(customID, statsPagePrefix))
		if err != nil {
			return true, discord.SendErrorResponse(s, i, fmt.Errorf("bad page in %q", customID))
		}
		resp, err := c.leaderboardResponse(context.Background(), page, userID)
		if err != nil {
			return true, discord.SendErrorResponse(s, i, err)
		}
		return true, discord.UpdateResponse(s, i, resp)
	case customID == statsPlayID:
		return true, c.gameStarter.StartGame(i)
	default:
		return false, nil
	}
}

func (c *StatsCommand) leaderboardResponse(ctx context.Context, page int, userID string) (*discord.Response, error) {
	leaderboard, err := c.statisticsService.GetLeaderboard(ctx, page, c.pageSize)
	if err != nil {
		return nil, err
	}
	summary, err := c.statisticsService.GetPlayerSummary(ctx, userID)
	if err != nil {
		return nil, err
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Previous",
					Style:    discordgo.SecondaryButton,
					CustomID: statsPagePrefix + strconv.Itoa(leaderboard.CurrentPage-1),
					Disabled: leaderboard.CurrentPage <= 1,
					Emoji: &discordgo.ComponentEmoji{
						Name: "⬅️",
					},
				},
				discordgo.Button{
					Label:    "Refresh",
					Style:    discordgo.SecondaryButton,
					CustomID: statsPagePrefix + strconv.Itoa(leaderboard.CurrentPage),
					Emoji: &discordgo.ComponentEmoji{
						Name: "🔄",
					},
				},
				discordgo.Button{
					Label:    "Next",
					Style:    discordgo.SecondaryButton,
					CustomID: statsPagePrefix + strconv.Itoa(leaderboard.CurrentPage+1),
					Disabled: leaderboard.CurrentPage >= leaderboard.TotalPages,
					Emoji: &discordgo.ComponentEmoji{
						Name: "➡️",
					},
				},
				discordgo.Button{
					Label:    "Play Crazy Eights",
					Style:    discordgo.SuccessButton,
					CustomID: statsPlayID,
					Emoji: &discordgo.ComponentEmoji{
						Name: "🃏",
					},
				},
			},
		},
	}

	return discord.NewResponse("", components).WithEmbeds(createLeaderboardEmbed(leaderboard, summary)), nil
}

// createLeaderboardEmbed creates an embed for the leaderboard
func createLeaderboardEmbed(leaderboard *statistics.Leaderboard, summary *statistics.PlayerRank) *discordgo.MessageEmbed {
	description := fmt.Sprintf("Showing page %d of %d (%d total players)",
		leaderboard.CurrentPage, max(leaderboard.TotalPages, 1), leaderboard.TotalPlayers)
	if leaderboard.TotalPlayers == 0 {
		description = "Nobody has finished a round yet. Start one with /eights"
	}

	fields := make([]*discordgo.MessageEmbedField, 0, len(leaderboard.Players)+1)
	for _, player := range leaderboard.Players {
		rankEmoji := ""
		switch player.Rank {
		case 1:
			rankEmoji = "👑 "
		case 2:
			rankEmoji = "🥈 "
		case 3:
			rankEmoji = "🥉 "
		default:
			rankEmoji = fmt.Sprintf("%d. ", player.Rank)
		}

		specialIndicators := ""
		if player.IsTopPlayer {
			specialIndicators += " 🏆"
		}

		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%s%s%s", rankEmoji, displayName(player), specialIndicators),
			Value:  playerLine(player),
			Inline: false,
		})
	}

	if summary != nil && summary.RoundsPlayed == 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "You",
			Value: "No finished rounds yet",
		})
	} else if summary != nil {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("You (#%d)", summary.Rank),
			Value: playerLine(summary),
		})
	}

	return &discordgo.MessageEmbed{
		Title:       "🎴 Crazy Eights Leaderboard 🎴",
		Description: description,
		Color:       0x00ff00,
		Fields:      fields,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "👑 = Best win rate | 🏆 = Most rounds played | fewer points is better",
		},
		Timestamp: leaderboard.LastUpdated.Format(time.RFC3339),
	}
}

func displayName(player *statistics.PlayerRank) string {
	if player.Name != "" {
		return player.Name
	}
	return player.PlayerID
}

func playerLine(player *statistics.PlayerRank) string {
	record := fmt.Sprintf("%dW-%dL-%dD", player.RoundsWon, player.RoundsLost, player.Deadlocks)
	line := fmt.Sprintf(
		"**Rounds:** %d | **Record:** %s | **Win Rate:** %.1f%%\n**Points:** %d (%.1f avg) | **Games won:** %d of %d",
		player.RoundsPlayed, record, player.WinRate, player.PointsCharged, player.AveragePoints, player.GamesWon, player.GamesPlayed,
	)
	if player.JackBonuses > 0 {
		line += fmt.Sprintf(" | **Jack bonuses:** %d", player.JackBonuses)
	}
	return line
}
