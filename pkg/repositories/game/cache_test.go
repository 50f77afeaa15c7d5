package game

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fadedpez/eights/pkg/entities"
	mock_game "github.com/fadedpez/eights/pkg/repositories/game/mock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CacheTestSuite struct {
	suite.Suite
	ctx    context.Context
	redis  *miniredis.Miniredis
	client *redis.Client
	base   *mock_game.MockRepository
	repo   *CachedRepository
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

func (s *CacheTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.redis = miniredis.RunT(s.T())
	s.client = redis.NewClient(&redis.Options{Addr: s.redis.Addr()})
	s.base = mock_game.NewMockRepository(gomock.NewController(s.T()))
	s.repo = NewCachedRepository(s.base, s.client, "test", time.Minute)
}

func (s *CacheTestSuite) TearDownTest() {
	s.client.Close()
}

func leaderboard() []*entities.PlayerStatistics {
	return []*entities.PlayerStatistics{
		{PlayerID: "computer", Name: "Computer", RoundsPlayed: 3, RoundsWon: 1},
		{PlayerID: "human", Name: "Player", RoundsPlayed: 3, RoundsWon: 2},
	}
}

func (s *CacheTestSuite) TestLeaderboardIsReadThrough() {
	// Setup
	s.base.EXPECT().GetAllPlayerStatistics(gomock.Any()).Return(leaderboard(), nil).Times(1)

	// Execute
	first, err := s.repo.GetAllPlayerStatistics(s.ctx)
	s.Require().NoError(err)
	second, err := s.repo.GetAllPlayerStatistics(s.ctx)
	s.Require().NoError(err)

	// Assert
	s.Equal(leaderboard(), first)
	s.Equal(first, second)
	s.True(s.redis.Exists("test:leaderboard"))
	s.Equal(time.Minute, s.redis.TTL("test:leaderboard"))
}

func (s *CacheTestSuite) TestEntriesExpire() {
	s.base.EXPECT().GetAllPlayerStatistics(gomock.Any()).Return(leaderboard(), nil).Times(2)

	_, err := s.repo.GetAllPlayerStatistics(s.ctx)
	s.Require().NoError(err)
	s.redis.FastForward(2 * time.Minute)
	_, err = s.repo.GetAllPlayerStatistics(s.ctx)
	s.Require().NoError(err)
}

func (s *CacheTestSuite) TestUpdateInvalidates() {
	// Setup
	round := roundFixture("r1", "g1", 1, baseTime, entities.OutcomeWin)
	s.base.EXPECT().GetAllPlayerStatistics(gomock.Any()).Return(leaderboard(), nil).Times(2)
	s.base.EXPECT().GetPlayerStatistics(gomock.Any(), "human").Return(leaderboard()[1], nil).Times(1)
	s.base.EXPECT().UpdatePlayerStatistics(gomock.Any(), round).Return(nil)

	_, err := s.repo.GetAllPlayerStatistics(s.ctx)
	s.Require().NoError(err)
	_, err = s.repo.GetPlayerStatistics(s.ctx, "human")
	s.Require().NoError(err)
	s.True(s.redis.Exists("test:stats:human"))

	// Execute
	s.Require().NoError(s.repo.UpdatePlayerStatistics(s.ctx, round))

	// Assert
	s.False(s.redis.Exists("test:leaderboard"))
	s.False(s.redis.Exists("test:stats:human"))
	_, err = s.repo.GetAllPlayerStatistics(s.ctx)
	s.NoError(err)
}

func (s *CacheTestSuite) TestCorruptEntryFallsBack() {
	s.Require().NoError(s.redis.Set("test:stats:human", "{not json"))
	s.base.EXPECT().GetPlayerStatistics(gomock.Any(), "human").Return(leaderboard()[1], nil)

	stats, err := s.repo.GetPlayerStatistics(s.ctx, "human")

	s.Require().NoError(err)
	s.Equal(2, stats.RoundsWon)
}

func (s *CacheTestSuite) TestRedisDownFallsBack() {
	s.redis.Close()
	s.base.EXPECT().GetAllPlayerStatistics(gomock.Any()).Return(leaderboard(), nil)

	all, err := s.repo.GetAllPlayerStatistics(s.ctx)

	s.Require().NoError(err)
	s.Len(all, 2)
}

func (s *CacheTestSuite) TestWritesAndHistoryPassThrough() {
	round := roundFixture("r1", "g1", 1, baseTime, entities.OutcomeWin)
	s.base.EXPECT().SaveRoundResult(gomock.Any(), round).Return(nil)
	s.base.EXPECT().GetPlayerResults(gomock.Any(), "human", 5).Return([]*entities.RoundResult{round}, nil)
	s.base.EXPECT().GetGameResults(gomock.Any(), "g1").Return([]*entities.RoundResult{round}, nil)
	s.base.EXPECT().PruneRoundResults(gomock.Any(), baseTime).Return(int64(3), nil)
	s.base.EXPECT().Close().Return(nil)

	s.NoError(s.repo.SaveRoundResult(s.ctx, round))
	results, err := s.repo.GetPlayerResults(s.ctx, "human", 5)
	s.NoError(err)
	s.Len(results, 1)
	results, err = s.repo.GetGameResults(s.ctx, "g1")
	s.NoError(err)
	s.Len(results, 1)
	removed, err := s.repo.PruneRoundResults(s.ctx, baseTime)
	s.NoError(err)
	s.Equal(int64(3), removed)
	s.NoError(s.repo.Close())
}
