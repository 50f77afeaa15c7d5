package commands

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/eights/pkg/entities"
	"github.com/fadedpez/eights/pkg/services/statistics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStatsCommand_Command tests the Command method of StatsCommand
func TestStatsCommand_Command(t *testing.T) {
	cmd := NewStatsCommand(nil, nil)

	command := cmd.Command()

	assert.Equal(t, "eights-stats", command.Name)
	require.Len(t, command.Options, 1)
	assert.Equal(t, "page", command.Options[0].Name)
	assert.Equal(t, discordgo.ApplicationCommandOptionInteger, command.Options[0].Type)
}

func TestCreateLeaderboardEmbed(t *testing.T) {
	leaderboard := &statistics.Leaderboard{
		Players: []*statistics.PlayerRank{
			{
				PlayerStatistics: &entities.PlayerStatistics{PlayerID: "a", Name: "Alice", RoundsPlayed: 4, RoundsWon: 3, RoundsLost: 1, PointsCharged: 12, GamesPlayed: 1, GamesWon: 1, JackBonuses: 2},
				Rank:             1,
				WinRate:          75,
				AveragePoints:    3,
				IsTopWinner:      true,
			},
			{
				PlayerStatistics: &entities.PlayerStatistics{PlayerID: "computer", RoundsPlayed: 6, RoundsWon: 1, RoundsLost: 4, Deadlocks: 1, PointsCharged: 90},
				Rank:             4,
				WinRate:          100.0 / 6,
				AveragePoints:    15,
				IsTopPlayer:      true,
			},
		},
		TotalPlayers: 4,
		CurrentPage:  1,
		TotalPages:   2,
		LastUpdated:  time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC),
	}

	testCases := []struct {
		name     string
		summary  *statistics.PlayerRank
		lastName string
	}{
		{"ranked player", leaderboard.Players[0], "You (#1)"},
		{"new player", &statistics.PlayerRank{PlayerStatistics: &entities.PlayerStatistics{PlayerID: "x"}}, "You"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			embed := createLeaderboardEmbed(leaderboard, tc.summary)

			assert.Equal(t, "Showing page 1 of 2 (4 total players)", embed.Description)
			assert.Equal(t, "2024-03-01T10:00:00Z", embed.Timestamp)
			require.Len(t, embed.Fields, 3)
			assert.Equal(t, "👑 Alice", embed.Fields[0].Name)
			assert.Equal(t, "**Rounds:** 4 | **Record:** 3W-1L-0D | **Win Rate:** 75.0%\n**Points:** 12 (3.0 avg) | **Games won:** 1 of 1 | **Jack bonuses:** 2", embed.Fields[0].Value)
			assert.Equal(t, "4. computer 🏆", embed.Fields[1].Name, "falls back to the player ID")
			assert.Equal(t, tc.lastName, embed.Fields[2].Name)
		})
	}
}

func TestCreateLeaderboardEmbedEmpty(t *testing.T) {
	embed := createLeaderboardEmbed(&statistics.Leaderboard{CurrentPage: 1}, nil)

	assert.Equal(t, "Nobody has finished a round yet. Start one with /eights", embed.Description)
	assert.Empty(t, embed.Fields)
}
