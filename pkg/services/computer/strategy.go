package computer

import (
	"math/rand"
	"time"

	"github.com/fadedpez/eights/internal/logging"
	"github.com/fadedpez/eights/pkg/entities"
	"github.com/fadedpez/eights/pkg/services/eights"
)

// DefaultDrawChance is how often the computer takes its optional draw
const DefaultDrawChance = 0.5

// Engine is the part of the game the computer plays through
type Engine interface {
	Hand(seat int) []entities.Card
	TopCard() (entities.Card, bool)
	Obligation() eights.Obligation
	CanPlay(card entities.Card, seat int) bool
	HasLegalPlay(seat int) bool
	IsRunning() bool
	DeckSize() int
	OptionalDrawUsed() bool

	PlayCards(seat int, indices []int, chosen entities.Suit) ([]entities.Card, error)
	DrawOneCard(seat int) (entities.Card, error)
	DrawUntilPlayable(seat int) bool
	DrawUntilSixCovered(seat int) bool
}

var _ Engine = (*eights.Game)(nil)

// Strategy is the scripted computer opponent
type Strategy struct {
	rng        *rand.Rand
	candidates []Candidate
	drawChance float64
	log        *logging.Logger
}

var _ eights.Strategy = (*Strategy)(nil)

// Option configures a Strategy
type Option func(*Strategy)

// WithCandidates replaces the play priority
func WithCandidates(c []Candidate) Option {
	return func(s *Strategy) { s.candidates = c }
}

// WithDrawChance sets the probability of taking the optional draw
func WithDrawChance(p float64) Option {
	return func(s *Strategy) { s.drawChance = p }
}

func WithLogger(l *logging.Logger) Option {
	return func(s *Strategy) { s.log = l }
}

// New creates the computer player. A nil source is seeded from the clock.
func New(r *rand.Rand, opts ...Option) *Strategy {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Strategy{
		rng:        r,
		candidates: DefaultCandidates(),
		drawChance: DefaultDrawChance,
		log:        logging.Default,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TakeTurn plays the computer's turn on g
func (s *Strategy) TakeTurn(g *eights.Game, seat int) {
	s.Play(g, seat)
}

// Play runs one turn for seat: cover an own six first, draw when blocked,
// maybe take the optional draw, then play by priority. Playing a 6 keeps the
// turn going until it is covered.
func (s *Strategy) Play(e Engine, seat int) {
	forced := false

	for e.IsRunning() && len(e.Hand(seat)) > 0 {
		if six, ok := e.Obligation().(eights.SixCover); ok && six.Owner == seat {
			if !s.coverSix(e, seat) {
				return
			}
			continue
		}

		if !e.HasLegalPlay(seat) {
			if forced {
				return
			}
			forced = true
			if !e.DrawUntilPlayable(seat) {
				s.log.Debug("Computer has nothing to play")
				return
			}
			continue
		}

		if !forced && !e.OptionalDrawUsed() && e.DeckSize() > 0 && s.rng.Float64() < s.drawChance {
			if card, err := e.DrawOneCard(seat); err == nil {
				s.log.Debug("Computer takes its optional draw: %s", card)
			}
		}

		name, move, ok := s.Choose(s.view(e, seat))
		if !ok {
			s.log.Debug("Computer keeps back a six it cannot cover")
			return
		}
		played, err := e.PlayCards(seat, move.Indices, move.Suit)
		if err != nil {
			s.log.Error("Computer play %q rejected: %v", name, err)
			return
		}
		if played[0].Rank != entities.Six {
			return
		}
	}
}

// coverSix plays the first card covering the computer's open six, drawing for
// one if none is held. It returns false when the turn should stop.
func (s *Strategy) coverSix(e Engine, seat int) bool {
	hand := e.Hand(seat)
	for i, c := range hand {
		if !e.CanPlay(c, seat) {
			continue
		}
		suit := entities.NoSuit
		if c.Rank == entities.Jack {
			suit = ChooseSuit(without(hand, i))
		}
		played, err := e.PlayCards(seat, []int{i}, suit)
		if err != nil {
			s.log.Error("Computer could not cover its six: %v", err)
			return false
		}
		return played[0].Rank == entities.Six
	}

	return e.DrawUntilSixCovered(seat)
}

// Choose returns the first candidate move for v
func (s *Strategy) Choose(v View) (string, Move, bool) {
	for _, c := range s.candidates {
		move, ok := c.Choose(v)
		if !ok {
			continue
		}
		if len(move.Indices) > 0 && v.Hand[move.Indices[0]].Rank == entities.Jack && !move.Suit.Valid() {
			move.Suit = ChooseSuit(without(v.Hand, move.Indices...))
		}
		return c.Name, move, true
	}
	return "", Move{}, false
}

func (s *Strategy) view(e Engine, seat int) View {
	top, ok := e.TopCard()
	return View{
		Hand:    e.Hand(seat),
		Top:     top,
		HasTop:  ok,
		CanPlay: func(c entities.Card) bool { return e.CanPlay(c, seat) },
	}
}
