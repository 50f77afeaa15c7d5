package session

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/fadedpez/eights/internal/logging"
	"github.com/fadedpez/eights/internal/types"
	"github.com/fadedpez/eights/pkg/entities"
	"github.com/fadedpez/eights/pkg/games/common"
	"github.com/fadedpez/eights/pkg/services/computer"
	"github.com/fadedpez/eights/pkg/services/eights"
)

// DefaultLogLimit is how many messages a session keeps
const DefaultLogLimit = 50

// Recorder stores finished rounds
type Recorder interface {
	RecordRound(ctx context.Context, result *entities.RoundResult) error
}

// Option configures a Session
type Option func(*Session)

// WithRecorder records every finished round, typically through the statistics service
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithSeed makes shuffles and the computer's choices repeatable
func WithSeed(seed int64) Option {
	return func(s *Session) { s.seed = seed }
}

// WithLogLimit bounds the message log
func WithLogLimit(n int) Option {
	return func(s *Session) { s.logLimit = n }
}

// WithLogger sets the logger passed down to the game and the computer
func WithLogger(l *logging.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithComputerOptions tunes the computer opponent
func WithComputerOptions(opts ...computer.Option) Option {
	return func(s *Session) { s.computerOpts = append(s.computerOpts, opts...) }
}

// WithClock replaces time.Now for effect expiry
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

type activeEffect struct {
	effect eights.Effect
	until  time.Time
}

// Session is one human's game against the computer as a front end sees it:
// a staging area for same-rank plays, a message log and round recording.
// It is safe for concurrent use.
type Session struct {
	mu sync.Mutex

	playerID string
	game     *eights.Game
	staged   []int

	messages []string
	logLimit int
	effects  [eights.Seats]activeEffect
	ended    []*entities.RoundResult

	recorder     Recorder
	seed         int64
	logger       *logging.Logger
	computerOpts []computer.Option
	now          func() time.Time
}

// New deals the first round of a new game for the player
func New(playerID, name string, opts ...Option) *Session {
	s := &Session{
		playerID: playerID,
		logLimit: DefaultLogLimit,
		seed:     time.Now().UnixNano(),
		logger:   logging.Default,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithField("player", playerID)

	strategyOpts := append([]computer.Option{computer.WithLogger(s.logger)}, s.computerOpts...)
	s.game = eights.NewGame(
		eights.WithPlayers(common.NewPlayer(playerID, name), common.NewComputer("computer", "Computer")),
		eights.WithRand(rand.New(rand.NewSource(s.seed))),
		eights.WithStrategy(computer.New(rand.New(rand.NewSource(s.seed+1)), strategyOpts...)),
		eights.WithObserver(&observer{s: s}),
		eights.WithLogger(s.logger),
	)
	s.game.StartGame()
	s.addMessage("Round 1 begins. You play first.")

	return s
}

// PlayerID returns the human player's ID
func (s *Session) PlayerID() string {
	return s.playerID
}

// GameID returns the ID of the underlying game
func (s *Session) GameID() string {
	return s.game.ID()
}

// checkHumanTurn rejects staging while the human cannot act
func (s *Session) checkHumanTurn() error {
	if !s.game.IsRunning() {
		if s.game.IsGameOver() {
			return types.NewGameError(types.ErrGameOver, "the game is over")
		}
		return types.NewGameError(types.ErrRoundOver, "the round is over")
	}
	if s.game.CurrentSeat() != eights.HumanSeat {
		return types.NewGameError(types.ErrNotPlayerTurn, "it is not your turn")
	}
	return nil
}

// Stage adds the card at index to the cards to be played together. The first
// staged card must be playable; later ones must share its rank.
func (s *Session) Stage(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.stage(index); err != nil {
		return s.reject(err)
	}
	return nil
}

func (s *Session) stage(index int) error {
	if err := s.checkHumanTurn(); err != nil {
		return err
	}
	hand := s.game.Hand(eights.HumanSeat)
	if index < 0 || index >= len(hand) {
		return types.Errorf(types.ErrInvalidIndex, "card %d is not in your hand", index+1)
	}
	for _, staged := range s.staged {
		if staged == index {
			return types.Errorf(types.ErrInvalidIndex, "%s is already staged", hand[index])
		}
	}

	card := hand[index]
	if len(s.staged) == 0 {
		if !s.game.CanPlay(card, eights.HumanSeat) {
			return types.Errorf(types.ErrIllegalPlay, "cannot play %s on %s", card, s.describeTop())
		}
	} else if first := hand[s.staged[0]]; first.Rank != card.Rank {
		return types.Errorf(types.ErrMixedRanks, "can only stage cards of the same rank, staged rank is %s", first.Rank.Name())
	}

	s.staged = append(s.staged, index)
	s.addMessage(fmt.Sprintf("Staged %s", card))
	return nil
}

// Unstage removes the card at index from the staging area
func (s *Session) Unstage(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, staged := range s.staged {
		if staged != index {
			continue
		}
		if i == 0 && len(s.staged) > 1 {
			// The new first card has to be playable on its own
			s.staged = nil
			s.addMessage("Cleared all staged cards")
			return nil
		}
		s.staged = append(s.staged[:i], s.staged[i+1:]...)
		s.addMessage(fmt.Sprintf("Unstaged %s", s.game.Hand(eights.HumanSeat)[index]))
		return nil
	}
	return s.reject(types.Errorf(types.ErrInvalidIndex, "card %d is not staged", index+1))
}

// StageAllOfRank stages the card at index followed by every other card of its rank
func (s *Session) StageAllOfRank(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.staged = nil
	if err := s.stage(index); err != nil {
		return s.reject(err)
	}
	hand := s.game.Hand(eights.HumanSeat)
	for i, card := range hand {
		if i != index && card.Rank == hand[index].Rank {
			if err := s.stage(i); err != nil {
				return s.reject(err)
			}
		}
	}
	return nil
}

// ClearStaged empties the staging area
func (s *Session) ClearStaged() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.staged) > 0 {
		s.staged = nil
		s.addMessage("Cleared all staged cards")
	}
}

// Staged returns the staged hand indices in play order
func (s *Session) Staged() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.staged...)
}

// Finish plays the staged cards. suit is required when Jacks are staged. The
// turn then passes to the computer unless the human has an open six to cover.
func (s *Session) Finish(ctx context.Context, suit entities.Suit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.flush(ctx)

	if len(s.staged) == 0 {
		return s.reject(types.NewGameError(types.ErrNothingStaged, "no cards staged to play"))
	}
	hand := s.game.Hand(eights.HumanSeat)
	if hand[s.staged[0]].Rank == entities.Jack && !suit.Valid() {
		return s.reject(types.NewGameError(types.ErrSuitRequired, "choose a suit for the Jack"))
	}

	indices := s.staged
	s.staged = nil
	if _, err := s.game.PlayCards(eights.HumanSeat, indices, suit); err != nil {
		return s.reject(err)
	}

	if !s.game.IsRunning() {
		return nil
	}
	if six, ok := s.game.Obligation().(eights.SixCover); ok && six.Owner == eights.HumanSeat {
		s.addMessage("Cover your six: play a six, a card of its suit or a Jack, or draw")
		return nil
	}
	if err := s.game.EndPlayerTurn(); err != nil {
		return s.reject(err)
	}
	return nil
}

// Draw takes one card: the forced draw when blocked, the optional draw
// otherwise, or a draw towards covering an open six
func (s *Session) Draw(ctx context.Context) (entities.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.flush(ctx)

	card, err := s.game.DrawOneCard(eights.HumanSeat)
	if err != nil {
		return entities.Card{}, s.reject(err)
	}
	s.addMessage(fmt.Sprintf("You drew %s", card))
	return card, nil
}

// Pass ends the human's turn without playing further
func (s *Session) Pass(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.flush(ctx)

	if err := s.game.EndPlayerTurn(); err != nil {
		return s.reject(err)
	}
	s.staged = nil
	return nil
}

// NextRound deals the next round after one has finished
func (s *Session) NextRound(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.flush(ctx)

	if err := s.game.StartNewRound(); err != nil {
		return s.reject(err)
	}
	s.staged = nil
	s.effects = [eights.Seats]activeEffect{}
	s.addMessage(fmt.Sprintf("Round %d begins. You play first.", s.game.RoundNumber()))
	return nil
}

// Log returns the message log, oldest first
func (s *Session) Log() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.messages...)
}

// reject logs a refused command for the player and returns err
func (s *Session) reject(err error) error {
	var gameErr *types.GameError
	if types.As(err, &gameErr) {
		s.addMessage(upperFirst(gameErr.Message))
	} else {
		s.addMessage(err.Error())
	}
	return err
}

func (s *Session) addMessage(msg string) {
	s.messages = append(s.messages, msg)
	if s.logLimit > 0 && len(s.messages) > s.logLimit {
		s.messages = append([]string(nil), s.messages[len(s.messages)-s.logLimit:]...)
	}
}

// flush reports the computer's suit choice and records finished rounds
func (s *Session) flush(ctx context.Context) {
	if s.game.Hints().ComputerChoosingSuit {
		if lock, ok := s.game.Obligation().(eights.SuitLock); ok {
			s.addMessage(fmt.Sprintf("Computer chose %s", lock.Suit.Name()))
		}
		s.game.ClearComputerChoosingSuit()
	}

	ended := s.ended
	s.ended = nil
	if s.recorder == nil {
		return
	}
	for _, record := range ended {
		if err := s.recorder.RecordRound(ctx, record); err != nil {
			s.logger.Error("Failed to record round %d: %v", record.Round, err)
		}
	}
}

func (s *Session) describeTop() string {
	top, ok := s.game.TopCard()
	if !ok {
		return "an empty table"
	}
	return top.String()
}

func upperFirst(msg string) string {
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
