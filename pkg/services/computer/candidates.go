package computer

import (
	"github.com/fadedpez/eights/pkg/entities"
)

// View is what a candidate sees of the computer's turn
type View struct {
	Hand    []entities.Card
	Top     entities.Card
	HasTop  bool
	CanPlay func(entities.Card) bool
}

// Move is a play chosen by a candidate: hand indices in play order, and the
// suit to name when they are Jacks.
type Move struct {
	Indices []int
	Suit    entities.Suit
}

// Candidate is one rule of the computer's play priority. Choose returns false
// when the rule does not apply to the hand.
type Candidate struct {
	Name   string
	Choose func(View) (Move, bool)
}

// DefaultCandidates returns the play priority, first match wins
func DefaultCandidates() []Candidate {
	return []Candidate{
		{Name: "jacks-out", Choose: jacksOut},
		{Name: "eights", Choose: groupOf(entities.Eight)},
		{Name: "aces", Choose: groupOf(entities.Ace)},
		{Name: "sevens", Choose: groupOf(entities.Seven)},
		{Name: "top-rank-group", Choose: topRankGroup},
		{Name: "single-seven", Choose: singleSeven},
		{Name: "suit-match", Choose: first(func(v View, c entities.Card) bool { return v.HasTop && c.Suit == v.Top.Suit })},
		{Name: "rank-match", Choose: first(func(v View, c entities.Card) bool { return v.HasTop && c.Rank == v.Top.Rank })},
		{Name: "jack", Choose: jack},
		{Name: "any", Choose: first(func(View, entities.Card) bool { return true })},
	}
}

// jacksOut goes out on a hand made only of Jacks for the bonus
func jacksOut(v View) (Move, bool) {
	if len(v.Hand) == 0 || !v.CanPlay(v.Hand[0]) {
		return Move{}, false
	}
	indices := make([]int, 0, len(v.Hand))
	for i, c := range v.Hand {
		if c.Rank != entities.Jack {
			return Move{}, false
		}
		indices = append(indices, i)
	}
	return Move{Indices: indices, Suit: ChooseSuit(nil)}, true
}

// groupOf plays every card of rank, leading with one that is legal
func groupOf(rank entities.Rank) func(View) (Move, bool) {
	return func(v View) (Move, bool) {
		indices := indicesOfRank(v.Hand, rank)
		for pos, idx := range indices {
			if v.CanPlay(v.Hand[idx]) {
				indices[0], indices[pos] = indices[pos], indices[0]
				return Move{Indices: indices}, true
			}
		}
		return Move{}, false
	}
}

// topRankGroup plays two or more cards matching the top card's rank
func topRankGroup(v View) (Move, bool) {
	if !v.HasTop {
		return Move{}, false
	}
	indices := indicesOfRank(v.Hand, v.Top.Rank)
	if len(indices) < 2 || !v.CanPlay(v.Hand[indices[0]]) {
		return Move{}, false
	}
	return Move{Indices: indices}, true
}

func singleSeven(v View) (Move, bool) {
	for i, c := range v.Hand {
		if c.Rank == entities.Seven && v.CanPlay(c) {
			return Move{Indices: []int{i}}, true
		}
	}
	return Move{}, false
}

func jack(v View) (Move, bool) {
	for i, c := range v.Hand {
		if c.Rank == entities.Jack && v.CanPlay(c) {
			return Move{Indices: []int{i}, Suit: ChooseSuit(without(v.Hand, i))}, true
		}
	}
	return Move{}, false
}

// first plays the first legal card that matches, skipping sixes the rest of
// the hand could not cover
func first(match func(View, entities.Card) bool) func(View) (Move, bool) {
	return func(v View) (Move, bool) {
		for i, c := range v.Hand {
			if !match(v, c) || !v.CanPlay(c) {
				continue
			}
			if c.Rank == entities.Six && !coverable(v.Hand, i) {
				continue
			}
			return Move{Indices: []int{i}}, true
		}
		return Move{}, false
	}
}

// coverable reports whether another card in hand could cover the six at idx
func coverable(hand []entities.Card, idx int) bool {
	six := hand[idx]
	for j, c := range hand {
		if j == idx {
			continue
		}
		if c.Rank == entities.Six || c.Suit == six.Suit || c.Rank == entities.Jack {
			return true
		}
	}
	return false
}

// ChooseSuit names the suit the computer holds most of in hand, the cards
// being played left out. Ties go Hearts, Diamonds, Clubs, Spades.
func ChooseSuit(hand []entities.Card) entities.Suit {
	counts := make(map[entities.Suit]int, len(entities.Suits))
	for _, c := range hand {
		counts[c.Suit]++
	}

	best := entities.Suits[0]
	for _, suit := range entities.Suits[1:] {
		if counts[suit] > counts[best] {
			best = suit
		}
	}
	return best
}

func indicesOfRank(hand []entities.Card, rank entities.Rank) []int {
	var indices []int
	for i, c := range hand {
		if c.Rank == rank {
			indices = append(indices, i)
		}
	}
	return indices
}

// without returns hand minus the cards at indices
func without(hand []entities.Card, indices ...int) []entities.Card {
	drop := make(map[int]bool, len(indices))
	for _, idx := range indices {
		drop[idx] = true
	}
	rest := make([]entities.Card, 0, len(hand))
	for i, c := range hand {
		if !drop[i] {
			rest = append(rest, c)
		}
	}
	return rest
}
