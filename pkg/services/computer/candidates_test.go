package computer

import (
	"testing"

	"github.com/fadedpez/eights/pkg/entities"
	"github.com/fadedpez/eights/pkg/services/eights"
	"github.com/stretchr/testify/assert"
)

func c(rank entities.Rank, suit entities.Suit) entities.Card {
	return entities.NewCard(rank, suit)
}

func viewOf(top entities.Card, hand ...entities.Card) View {
	return View{
		Hand:   hand,
		Top:    top,
		HasTop: true,
		CanPlay: func(card entities.Card) bool {
			return eights.Legal(card, eights.ComputerSeat, top, true, eights.NoObligation{})
		},
	}
}

func TestChoosePriority(t *testing.T) {
	nineHearts := c(entities.Nine, entities.Hearts)
	testCases := []struct {
		name     string
		view     View
		rule     string
		expected Move
	}{
		{
			name:     "goes out on Jacks",
			view:     viewOf(c(entities.Five, entities.Clubs), c(entities.Jack, entities.Spades), c(entities.Jack, entities.Hearts)),
			rule:     "jacks-out",
			expected: Move{Indices: []int{0, 1}, Suit: entities.Hearts},
		},
		{
			name:     "eights lead with the legal one",
			view:     viewOf(nineHearts, c(entities.Eight, entities.Clubs), c(entities.Three, entities.Diamonds), c(entities.Eight, entities.Hearts)),
			rule:     "eights",
			expected: Move{Indices: []int{2, 0}},
		},
		{
			name:     "aces before sevens",
			view:     viewOf(nineHearts, c(entities.Seven, entities.Clubs), c(entities.Seven, entities.Hearts), c(entities.Ace, entities.Hearts), c(entities.Three, entities.Hearts)),
			rule:     "aces",
			expected: Move{Indices: []int{2}},
		},
		{
			name:     "sevens as a group",
			view:     viewOf(nineHearts, c(entities.Seven, entities.Clubs), c(entities.Seven, entities.Hearts), c(entities.Three, entities.Hearts)),
			rule:     "sevens",
			expected: Move{Indices: []int{1, 0}},
		},
		{
			name:     "pairs on the top rank",
			view:     viewOf(c(entities.Five, entities.Hearts), c(entities.Five, entities.Clubs), c(entities.Five, entities.Diamonds), c(entities.King, entities.Spades)),
			rule:     "top-rank-group",
			expected: Move{Indices: []int{0, 1}},
		},
		{
			name:     "suit before rank",
			view:     viewOf(nineHearts, c(entities.Nine, entities.Clubs), c(entities.Two, entities.Hearts)),
			rule:     "suit-match",
			expected: Move{Indices: []int{1}},
		},
		{
			name:     "rank match",
			view:     viewOf(nineHearts, c(entities.Two, entities.Clubs), c(entities.Nine, entities.Spades)),
			rule:     "rank-match",
			expected: Move{Indices: []int{1}},
		},
		{
			name:     "six with a cover in hand",
			view:     viewOf(nineHearts, c(entities.Six, entities.Hearts), c(entities.Two, entities.Hearts)),
			rule:     "suit-match",
			expected: Move{Indices: []int{0}},
		},
		{
			name:     "Jack names the strongest suit left",
			view:     viewOf(nineHearts, c(entities.Jack, entities.Spades), c(entities.Two, entities.Diamonds), c(entities.Three, entities.Diamonds), c(entities.Four, entities.Clubs)),
			rule:     "jack",
			expected: Move{Indices: []int{0}, Suit: entities.Diamonds},
		},
		{
			name:     "Jack group names a suit from the cards it leaves",
			view:     viewOf(c(entities.Jack, entities.Clubs), c(entities.Jack, entities.Spades), c(entities.Jack, entities.Hearts), c(entities.Two, entities.Diamonds)),
			rule:     "top-rank-group",
			expected: Move{Indices: []int{0, 1}, Suit: entities.Diamonds},
		},
		{
			name:     "suit-matching Jack still names a suit",
			view:     viewOf(nineHearts, c(entities.Jack, entities.Hearts), c(entities.Two, entities.Clubs)),
			rule:     "suit-match",
			expected: Move{Indices: []int{0}, Suit: entities.Clubs},
		},
	}

	s := New(nil)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Execute
			rule, move, ok := s.Choose(tc.view)

			// Assert
			assert.True(t, ok)
			assert.Equal(t, tc.rule, rule)
			assert.Equal(t, tc.expected, move)
		})
	}
}

func TestChooseHoldsBackUncoverableSix(t *testing.T) {
	view := viewOf(c(entities.Nine, entities.Hearts), c(entities.Six, entities.Hearts), c(entities.King, entities.Clubs))

	_, _, ok := New(nil).Choose(view)

	assert.False(t, ok, "6♥ cannot be covered by K♣")
}

func TestChooseSuit(t *testing.T) {
	testCases := []struct {
		name     string
		hand     []entities.Card
		expected entities.Suit
	}{
		{"empty hand", nil, entities.Hearts},
		{"majority", []entities.Card{c(entities.Two, entities.Clubs), c(entities.Three, entities.Clubs), c(entities.Four, entities.Diamonds)}, entities.Clubs},
		{"held Jacks count", []entities.Card{c(entities.Jack, entities.Clubs)}, entities.Clubs},
		{"Jacks count like any card", []entities.Card{c(entities.Jack, entities.Spades), c(entities.Two, entities.Spades), c(entities.Four, entities.Diamonds)}, entities.Spades},
		{"tie prefers diamonds over spades", []entities.Card{c(entities.Two, entities.Spades), c(entities.Three, entities.Diamonds)}, entities.Diamonds},
		{"tie prefers hearts", []entities.Card{c(entities.Two, entities.Clubs), c(entities.Three, entities.Hearts)}, entities.Hearts},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ChooseSuit(tc.hand))
		})
	}
}
