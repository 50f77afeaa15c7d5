package statistics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fadedpez/eights/internal/types"
	"github.com/fadedpez/eights/pkg/entities"
	mock_game "github.com/fadedpez/eights/pkg/repositories/game/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	repo    *mock_game.MockRepository
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = mock_game.NewMockRepository(gomock.NewController(s.T()))
	s.service = NewService(s.repo)
}

func stats(id string, played, won int, points int64) *entities.PlayerStatistics {
	return &entities.PlayerStatistics{PlayerID: id, Name: id, RoundsPlayed: played, RoundsWon: won, PointsCharged: points}
}

func round() *entities.RoundResult {
	return &entities.RoundResult{
		ID:          "r1",
		GameID:      "g1",
		Round:       1,
		Kind:        entities.RoundGoOut,
		Multiplier:  1,
		CompletedAt: time.Now(),
		Players: []*entities.PlayerResult{
			{PlayerID: "human", Outcome: entities.OutcomeWin},
			{PlayerID: "computer", Outcome: entities.OutcomeLoss, PointsCharged: 12},
		},
	}
}

func (s *ServiceTestSuite) TestRecordRound() {
	// Setup
	r := round()
	gomock.InOrder(
		s.repo.EXPECT().SaveRoundResult(s.ctx, r).Return(nil),
		s.repo.EXPECT().UpdatePlayerStatistics(s.ctx, r).Return(nil),
	)

	// Execute
	err := s.service.RecordRound(s.ctx, r)

	// Assert
	s.NoError(err)
}

func (s *ServiceTestSuite) TestRecordRoundErrors() {
	s.Run("incomplete round", func() {
		err := s.service.RecordRound(s.ctx, &entities.RoundResult{ID: "r1"})
		s.True(types.IsGameError(err, types.ErrInvalidInput))
	})

	s.Run("save fails", func() {
		r := round()
		s.repo.EXPECT().SaveRoundResult(s.ctx, r).Return(errors.New("disk full"))

		err := s.service.RecordRound(s.ctx, r)

		s.True(types.IsGameError(err, types.ErrDatabaseError))
		s.ErrorContains(err, "disk full")
	})

	s.Run("statistics fail", func() {
		r := round()
		s.repo.EXPECT().SaveRoundResult(s.ctx, r).Return(nil)
		s.repo.EXPECT().UpdatePlayerStatistics(s.ctx, r).Return(errors.New("locked"))

		err := s.service.RecordRound(s.ctx, r)

		s.True(types.IsGameError(err, types.ErrDatabaseError))
	})
}

func (s *ServiceTestSuite) TestLeaderboardOrdering() {
	// Setup
	s.repo.EXPECT().GetAllPlayerStatistics(s.ctx).Return([]*entities.PlayerStatistics{
		stats("idle", 0, 0, 0),
		stats("half-small", 2, 1, 10),
		stats("best", 4, 3, 40),
		stats("half-big", 10, 5, 90),
		stats("half-big-cheap", 10, 5, 60),
	}, nil)

	// Execute
	board, err := s.service.GetLeaderboard(s.ctx, 1, 10)

	// Assert
	s.Require().NoError(err)
	s.Equal(4, board.TotalPlayers, "players without rounds are left out")
	s.Equal(1, board.TotalPages)

	var order []string
	for _, p := range board.Players {
		order = append(order, p.PlayerID)
	}
	s.Equal([]string{"best", "half-big-cheap", "half-big", "half-small"}, order)
	s.Equal(75.0, board.Players[0].WinRate)
	s.Equal(10.0, board.Players[0].AveragePoints)
	s.True(board.Players[0].IsTopWinner)
	s.True(board.Players[1].IsTopPlayer, "first of the players with most rounds")
	s.False(board.Players[2].IsTopPlayer)
	s.Equal(4, board.Players[3].Rank)
}

func (s *ServiceTestSuite) TestLeaderboardPagination() {
	all := []*entities.PlayerStatistics{
		stats("a", 1, 1, 0), stats("b", 2, 1, 0), stats("c", 3, 1, 0),
	}

	testCases := []struct {
		name     string
		page     int
		perPage  int
		expected []string
		current  int
		pages    int
	}{
		{"first page", 1, 2, []string{"a", "b"}, 1, 2},
		{"last page", 2, 2, []string{"c"}, 2, 2},
		{"past the end clamps", 9, 2, []string{"c"}, 2, 2},
		{"defaults", 0, 0, []string{"a", "b", "c"}, 1, 1},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.repo.EXPECT().GetAllPlayerStatistics(s.ctx).Return(all, nil)

			board, err := s.service.GetLeaderboard(s.ctx, tc.page, tc.perPage)

			s.Require().NoError(err)
			var got []string
			for _, p := range board.Players {
				got = append(got, p.PlayerID)
			}
			s.Equal(tc.expected, got)
			s.Equal(tc.current, board.CurrentPage)
			s.Equal(tc.pages, board.TotalPages)
		})
	}
}

func (s *ServiceTestSuite) TestEmptyLeaderboard() {
	s.repo.EXPECT().GetAllPlayerStatistics(s.ctx).Return(nil, nil)

	board, err := s.service.GetLeaderboard(s.ctx, 1, 5)

	s.Require().NoError(err)
	s.NotNil(board.Players)
	s.Empty(board.Players)
	s.Zero(board.TotalPages)
}

func (s *ServiceTestSuite) TestPlayerSummary() {
	s.Run("ranked player", func() {
		s.repo.EXPECT().GetAllPlayerStatistics(s.ctx).Return([]*entities.PlayerStatistics{
			stats("computer", 4, 3, 10), stats("human", 4, 1, 30),
		}, nil)

		summary, err := s.service.GetPlayerSummary(s.ctx, "human")

		s.Require().NoError(err)
		s.Equal(2, summary.Rank)
		s.Equal(25.0, summary.WinRate)
	})

	s.Run("new player", func() {
		s.repo.EXPECT().GetAllPlayerStatistics(s.ctx).Return(nil, nil)
		s.repo.EXPECT().GetPlayerStatistics(s.ctx, "new").Return(&entities.PlayerStatistics{PlayerID: "new"}, nil)

		summary, err := s.service.GetPlayerSummary(s.ctx, "new")

		s.Require().NoError(err)
		s.Zero(summary.Rank)
		s.Equal("new", summary.PlayerID)
	})
}

func (s *ServiceTestSuite) TestGetRecentRounds() {
	r := round()
	s.repo.EXPECT().GetPlayerResults(s.ctx, "human", 3).Return([]*entities.RoundResult{r}, nil)

	rounds, err := s.service.GetRecentRounds(s.ctx, "human", 3)

	s.Require().NoError(err)
	s.Equal([]*entities.RoundResult{r}, rounds)
}
