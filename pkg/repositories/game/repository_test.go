package game

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fadedpez/eights/pkg/entities"
	"github.com/stretchr/testify/suite"
)

var baseTime = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// roundFixture builds a two-player round between "human" and "computer"
func roundFixture(id, gameID string, round int, at time.Time, humanOutcome entities.Outcome) *entities.RoundResult {
	result := &entities.RoundResult{
		ID:          id,
		GameID:      gameID,
		Round:       round,
		Kind:        entities.RoundGoOut,
		Multiplier:  1,
		CompletedAt: at,
	}
	human := &entities.PlayerResult{PlayerID: "human", Name: "Player", Outcome: humanOutcome}
	computer := &entities.PlayerResult{PlayerID: "computer", Name: "Computer", Computer: true}

	switch humanOutcome {
	case entities.OutcomeWin:
		computer.Outcome = entities.OutcomeLoss
		computer.PointsCharged = 30
		computer.CardsLeft = 3
	case entities.OutcomeLoss:
		computer.Outcome = entities.OutcomeWin
		human.PointsCharged = 12
		human.CardsLeft = 2
	case entities.OutcomeDeadlock:
		result.Kind = entities.RoundDeadlock
		computer.Outcome = entities.OutcomeDeadlock
		human.PointsCharged = 15
		computer.PointsCharged = 9
		human.CardsLeft = 2
		computer.CardsLeft = 3
	}
	human.TotalPoints = human.PointsCharged
	computer.TotalPoints = computer.PointsCharged
	result.Players = []*entities.PlayerResult{human, computer}
	return result
}

// normalize strips driver-specific time locations so results compare with Equal
func normalize(results []*entities.RoundResult) []*entities.RoundResult {
	for _, r := range results {
		r.CompletedAt = r.CompletedAt.UTC()
	}
	return results
}

func ids(results []*entities.RoundResult) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.ID)
	}
	return out
}

// RepositoryTestSuite runs the same behaviour checks against every Repository
type RepositoryTestSuite struct {
	suite.Suite
	ctx     context.Context
	newRepo func() (Repository, error)
	repo    Repository
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	repo, err := s.newRepo()
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RepositoryTestSuite) TearDownTest() {
	if s.repo != nil {
		s.NoError(s.repo.Close())
	}
}

func (s *RepositoryTestSuite) saveAll(rounds ...*entities.RoundResult) {
	for _, r := range rounds {
		s.Require().NoError(s.repo.SaveRoundResult(s.ctx, r))
	}
}

func (s *RepositoryTestSuite) TestPlayerResultsNewestFirst() {
	// Setup
	r1 := roundFixture("r1", "g1", 1, baseTime, entities.OutcomeWin)
	r2 := roundFixture("r2", "g1", 2, baseTime.Add(time.Hour), entities.OutcomeLoss)
	r3 := roundFixture("r3", "g2", 1, baseTime.Add(2*time.Hour), entities.OutcomeDeadlock)
	s.saveAll(r1, r2, r3)

	// Execute
	limited, err := s.repo.GetPlayerResults(s.ctx, "human", 2)
	s.Require().NoError(err)
	all, err := s.repo.GetPlayerResults(s.ctx, "computer", 0)
	s.Require().NoError(err)

	// Assert
	s.Equal([]string{"r3", "r2"}, ids(limited))
	s.Equal([]*entities.RoundResult{r3, r2}, normalize(limited))
	s.Equal([]string{"r3", "r2", "r1"}, ids(all))
}

func (s *RepositoryTestSuite) TestUnknownPlayerHasNoResults() {
	s.saveAll(roundFixture("r1", "g1", 1, baseTime, entities.OutcomeWin))

	results, err := s.repo.GetPlayerResults(s.ctx, "nobody", 10)

	s.NoError(err)
	s.NotNil(results)
	s.Empty(results)
}

func (s *RepositoryTestSuite) TestGameResultsInRoundOrder() {
	// Setup
	s.saveAll(
		roundFixture("b", "g1", 2, baseTime.Add(time.Hour), entities.OutcomeLoss),
		roundFixture("x", "g2", 1, baseTime, entities.OutcomeWin),
		roundFixture("a", "g1", 1, baseTime, entities.OutcomeWin),
	)

	// Execute
	results, err := s.repo.GetGameResults(s.ctx, "g1")

	// Assert
	s.Require().NoError(err)
	s.Equal([]string{"a", "b"}, ids(results))
	s.Len(results[0].Players, 2)
	s.Equal("human", results[0].Players[0].PlayerID)
}

func (s *RepositoryTestSuite) TestStatistics() {
	// Setup
	win := roundFixture("r1", "g1", 1, baseTime, entities.OutcomeWin)
	win.JackCount = 1
	win.Players[0].PointsCharged = -20
	deadlock := roundFixture("r2", "g1", 2, baseTime.Add(time.Hour), entities.OutcomeDeadlock)
	deadlock.GameOver = true
	deadlock.Players[1].GameWinner = true

	// Execute
	s.Require().NoError(s.repo.UpdatePlayerStatistics(s.ctx, win))
	s.Require().NoError(s.repo.UpdatePlayerStatistics(s.ctx, deadlock))
	human, err := s.repo.GetPlayerStatistics(s.ctx, "human")
	s.Require().NoError(err)
	computer, err := s.repo.GetPlayerStatistics(s.ctx, "computer")
	s.Require().NoError(err)

	// Assert
	s.Equal("Player", human.Name)
	s.Equal(2, human.RoundsPlayed)
	s.Equal(1, human.RoundsWon)
	s.Equal(1, human.Deadlocks)
	s.Equal(1, human.GamesPlayed)
	s.Zero(human.GamesWon)
	s.Equal(int64(-5), human.PointsCharged)
	s.Equal(1, human.JackBonuses)
	s.True(human.LastPlayed.Equal(baseTime.Add(time.Hour)))

	s.Equal(1, computer.RoundsLost)
	s.Equal(1, computer.GamesWon)
	s.Equal(int64(39), computer.PointsCharged)
	s.Zero(computer.JackBonuses)
}

func (s *RepositoryTestSuite) TestUnknownPlayerStatistics() {
	stats, err := s.repo.GetPlayerStatistics(s.ctx, "nobody")

	s.NoError(err)
	s.Equal("nobody", stats.PlayerID)
	s.Zero(stats.RoundsPlayed)
}

func (s *RepositoryTestSuite) TestAllPlayerStatistics() {
	empty, err := s.repo.GetAllPlayerStatistics(s.ctx)
	s.Require().NoError(err)
	s.Empty(empty)

	s.Require().NoError(s.repo.UpdatePlayerStatistics(s.ctx, roundFixture("r1", "g1", 1, baseTime, entities.OutcomeWin)))

	all, err := s.repo.GetAllPlayerStatistics(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("computer", all[0].PlayerID)
	s.Equal("human", all[1].PlayerID)
	s.Equal(1, all[1].RoundsWon)
}

func (s *RepositoryTestSuite) TestPruneRoundResults() {
	// Setup
	old := roundFixture("old", "g1", 1, baseTime, entities.OutcomeWin)
	recent := roundFixture("recent", "g1", 2, baseTime.Add(48*time.Hour), entities.OutcomeLoss)
	s.saveAll(old, recent)
	s.Require().NoError(s.repo.UpdatePlayerStatistics(s.ctx, old))

	// Execute
	removed, err := s.repo.PruneRoundResults(s.ctx, baseTime.Add(24*time.Hour))

	// Assert
	s.Require().NoError(err)
	s.Equal(int64(1), removed)
	remaining, err := s.repo.GetGameResults(s.ctx, "g1")
	s.Require().NoError(err)
	s.Equal([]string{"recent"}, ids(remaining))

	stats, err := s.repo.GetPlayerStatistics(s.ctx, "human")
	s.Require().NoError(err)
	s.Equal(1, stats.RoundsPlayed, "statistics survive pruning")

	again, err := s.repo.PruneRoundResults(s.ctx, baseTime.Add(24*time.Hour))
	s.NoError(err)
	s.Zero(again)
}

func TestMemoryRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{newRepo: func() (Repository, error) {
		return NewMemoryRepository(), nil
	}})
}

func TestSQLiteRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{newRepo: func() (Repository, error) {
		return NewSQLiteRepository(":memory:")
	}})
}

func TestPostgresRepository(t *testing.T) {
	url := os.Getenv("POSTGRES_TEST_URL")
	if url == "" {
		t.Skip("POSTGRES_TEST_URL not set")
	}

	suite.Run(t, &RepositoryTestSuite{newRepo: func() (Repository, error) {
		ctx := context.Background()
		repo, err := NewPostgresRepository(ctx, url)
		if err != nil {
			return nil, err
		}
		if _, err := repo.pool.Exec(ctx, "TRUNCATE round_results, player_results, player_statistics"); err != nil {
			repo.Close()
			return nil, err
		}
		return repo, nil
	}})
}

func TestMemoryRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	round := roundFixture("r1", "g1", 1, baseTime, entities.OutcomeWin)
	if err := repo.SaveRoundResult(ctx, round); err != nil {
		t.Fatal(err)
	}

	round.Players[0].Name = "changed"
	results, _ := repo.GetGameResults(ctx, "g1")
	results[0].Players[1].Name = "changed too"
	again, _ := repo.GetGameResults(ctx, "g1")

	if again[0].Players[0].Name != "Player" || again[0].Players[1].Name != "Computer" {
		t.Errorf("stored round was modified: %+v %+v", again[0].Players[0], again[0].Players[1])
	}
}
