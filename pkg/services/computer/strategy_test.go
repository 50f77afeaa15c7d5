package computer

import (
	"io"
	"math/rand"
	"testing"

	"github.com/fadedpez/eights/internal/logging"
	"github.com/fadedpez/eights/internal/types"
	"github.com/fadedpez/eights/pkg/entities"
	"github.com/fadedpez/eights/pkg/services/eights"
	"github.com/stretchr/testify/suite"
)

const seat = eights.ComputerSeat

// fakeEngine applies only the rules the strategy reacts to: legality, sixes
// and drawing from the end of deck.
type fakeEngine struct {
	hand         []entities.Card
	top          entities.Card
	ob           eights.Obligation
	deck         []entities.Card
	optionalUsed bool
	plays        [][]entities.Card
	suits        []entities.Suit
	draws        int
}

func (f *fakeEngine) Hand(int) []entities.Card       { return append([]entities.Card(nil), f.hand...) }
func (f *fakeEngine) TopCard() (entities.Card, bool) { return f.top, true }
func (f *fakeEngine) Obligation() eights.Obligation  { return f.ob }
func (f *fakeEngine) IsRunning() bool                { return true }
func (f *fakeEngine) DeckSize() int                  { return len(f.deck) }
func (f *fakeEngine) OptionalDrawUsed() bool         { return f.optionalUsed }

func (f *fakeEngine) CanPlay(card entities.Card, s int) bool {
	return eights.Legal(card, s, f.top, true, f.ob)
}

func (f *fakeEngine) HasLegalPlay(s int) bool {
	for _, card := range f.hand {
		if f.CanPlay(card, s) {
			return true
		}
	}
	return false
}

func (f *fakeEngine) PlayCards(s int, indices []int, chosen entities.Suit) ([]entities.Card, error) {
	if !f.CanPlay(f.hand[indices[0]], s) {
		return nil, types.NewGameError(types.ErrIllegalPlay, "illegal")
	}
	played := make([]entities.Card, 0, len(indices))
	drop := map[int]bool{}
	for _, idx := range indices {
		played = append(played, f.hand[idx])
		drop[idx] = true
	}
	var kept []entities.Card
	for i, card := range f.hand {
		if !drop[i] {
			kept = append(kept, card)
		}
	}
	f.hand = kept
	f.top = played[len(played)-1]
	f.plays = append(f.plays, played)
	f.suits = append(f.suits, chosen)

	if f.top.Rank == entities.Six {
		f.ob = eights.SixCover{Owner: s, Suit: f.top.Suit, Chain: len(played)}
	} else {
		f.ob = eights.NoObligation{}
	}
	return played, nil
}

func (f *fakeEngine) draw() (entities.Card, bool) {
	if len(f.deck) == 0 {
		return entities.Card{}, false
	}
	card := f.deck[len(f.deck)-1]
	f.deck = f.deck[:len(f.deck)-1]
	f.hand = append(f.hand, card)
	f.draws++
	return card, true
}

func (f *fakeEngine) DrawOneCard(int) (entities.Card, error) {
	card, ok := f.draw()
	if !ok {
		return entities.Card{}, types.NewGameError(types.ErrDeckEmpty, "empty")
	}
	f.optionalUsed = true
	return card, nil
}

func (f *fakeEngine) DrawUntilPlayable(s int) bool {
	card, ok := f.draw()
	return ok && f.CanPlay(card, s)
}

func (f *fakeEngine) DrawUntilSixCovered(int) bool {
	six := f.ob.(eights.SixCover)
	for i := 0; i < eights.SixCoverDrawLimit; i++ {
		card, ok := f.draw()
		if !ok {
			return false
		}
		if eights.CoversSix(card, six.Suit) {
			return true
		}
	}
	return false
}

type StrategyTestSuite struct {
	suite.Suite
	quiet *logging.Logger
}

func TestStrategySuite(t *testing.T) {
	suite.Run(t, new(StrategyTestSuite))
}

func (s *StrategyTestSuite) SetupTest() {
	s.quiet = logging.NewLogger(logging.ERROR)
	s.quiet.SetOutput(io.Discard)
}

func (s *StrategyTestSuite) strategy(drawChance float64) *Strategy {
	return New(rand.New(rand.NewSource(1)), WithDrawChance(drawChance), WithLogger(s.quiet))
}

func (s *StrategyTestSuite) TestPlaysHighestPriority() {
	// Setup
	engine := &fakeEngine{
		hand: []entities.Card{c(entities.Three, entities.Hearts), c(entities.Eight, entities.Hearts)},
		top:  c(entities.Nine, entities.Hearts),
		ob:   eights.NoObligation{},
		deck: []entities.Card{c(entities.King, entities.Spades)},
	}

	// Execute
	s.strategy(0).Play(engine, seat)

	// Assert
	s.Equal([][]entities.Card{{c(entities.Eight, entities.Hearts)}}, engine.plays)
	s.Zero(engine.draws)
}

func (s *StrategyTestSuite) TestCoversItsSixes() {
	// Setup
	engine := &fakeEngine{
		hand: []entities.Card{c(entities.Six, entities.Hearts), c(entities.Six, entities.Clubs), c(entities.King, entities.Clubs)},
		top:  c(entities.Nine, entities.Hearts),
		ob:   eights.NoObligation{},
	}

	// Execute
	s.strategy(0).Play(engine, seat)

	// Assert
	s.Equal([][]entities.Card{
		{c(entities.Six, entities.Hearts)},
		{c(entities.Six, entities.Clubs)},
		{c(entities.King, entities.Clubs)},
	}, engine.plays)
	s.Empty(engine.hand)
	s.Equal(eights.KindNone, engine.ob.Kind())
}

func (s *StrategyTestSuite) TestDrawsForAnOpenSix() {
	// Setup
	engine := &fakeEngine{
		hand: []entities.Card{c(entities.Two, entities.Clubs)},
		top:  c(entities.Six, entities.Hearts),
		ob:   eights.SixCover{Owner: seat, Suit: entities.Hearts, Chain: 1},
		deck: []entities.Card{c(entities.Four, entities.Hearts), c(entities.Five, entities.Diamonds)},
	}

	// Execute
	s.strategy(0).Play(engine, seat)

	// Assert
	s.Equal(2, engine.draws)
	s.Equal([][]entities.Card{{c(entities.Four, entities.Hearts)}}, engine.plays)
	s.Equal([]entities.Card{c(entities.Two, entities.Clubs), c(entities.Five, entities.Diamonds)}, engine.hand)
}

func (s *StrategyTestSuite) TestBlockedDrawsOnce() {
	testCases := []struct {
		name  string
		deck  []entities.Card
		plays int
		hand  int
	}{
		{"drawn card is played", []entities.Card{c(entities.Nine, entities.Clubs)}, 1, 1},
		{"drawn card is kept", []entities.Card{c(entities.Nine, entities.Clubs), c(entities.King, entities.Spades)}, 0, 2},
		{"nothing to draw", nil, 0, 1},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			// Setup
			engine := &fakeEngine{
				hand: []entities.Card{c(entities.Two, entities.Clubs)},
				top:  c(entities.Nine, entities.Hearts),
				ob:   eights.NoObligation{},
				deck: tc.deck,
			}

			// Execute
			s.strategy(1).Play(engine, seat)

			// Assert
			s.Len(engine.plays, tc.plays)
			s.Len(engine.hand, tc.hand)
			s.False(engine.optionalUsed, "no optional draw after a forced one")
		})
	}
}

func (s *StrategyTestSuite) TestOptionalDraw() {
	// Setup
	engine := &fakeEngine{
		hand: []entities.Card{c(entities.Three, entities.Hearts)},
		top:  c(entities.Nine, entities.Hearts),
		ob:   eights.NoObligation{},
		deck: []entities.Card{c(entities.King, entities.Spades)},
	}

	// Execute
	s.strategy(1).Play(engine, seat)

	// Assert
	s.True(engine.optionalUsed)
	s.Equal([][]entities.Card{{c(entities.Three, entities.Hearts)}}, engine.plays)
	s.Equal([]entities.Card{c(entities.King, entities.Spades)}, engine.hand)
}

func (s *StrategyTestSuite) TestJackNamesSuit() {
	// Setup
	engine := &fakeEngine{
		hand: []entities.Card{c(entities.Jack, entities.Spades), c(entities.Two, entities.Diamonds), c(entities.Three, entities.Diamonds), c(entities.Four, entities.Clubs)},
		top:  c(entities.Nine, entities.Hearts),
		ob:   eights.NoObligation{},
	}

	// Execute
	s.strategy(0).Play(engine, seat)

	// Assert
	s.Equal([]entities.Suit{entities.Diamonds}, engine.suits)
}

func (s *StrategyTestSuite) TestCustomCandidates() {
	// Setup
	engine := &fakeEngine{
		hand: []entities.Card{c(entities.Three, entities.Hearts), c(entities.Eight, entities.Hearts)},
		top:  c(entities.Nine, entities.Hearts),
		ob:   eights.NoObligation{},
	}
	lowest := Candidate{Name: "first-legal", Choose: first(func(View, entities.Card) bool { return true })}

	// Execute
	New(rand.New(rand.NewSource(1)), WithCandidates([]Candidate{lowest}), WithDrawChance(0), WithLogger(s.quiet)).Play(engine, seat)

	// Assert
	s.Equal([][]entities.Card{{c(entities.Three, entities.Hearts)}}, engine.plays)
}
