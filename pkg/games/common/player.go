package common

import (
	"sort"

	"github.com/fadedpez/eights/pkg/entities"
)

// Player represents a seat at the table. Points carry over between rounds.
type Player struct {
	ID       string
	Name     string
	Computer bool
	Hand     []entities.Card
	Points   int
}

// NewPlayer creates a new player with the given ID and display name
func NewPlayer(id, name string) *Player {
	return &Player{
		ID:   id,
		Name: name,
		Hand: make([]entities.Card, 0),
	}
}

// NewComputer creates the scripted opponent
func NewComputer(id, name string) *Player {
	p := NewPlayer(id, name)
	p.Computer = true
	return p
}

// ClearHand removes all cards from the player's hand. Points are kept.
func (p *Player) ClearHand() {
	p.Hand = []entities.Card{}
}

// Reset clears hand and points for a new game
func (p *Player) Reset() {
	p.ClearHand()
	p.Points = 0
}

// AddCard adds a card to the end of the player's hand
func (p *Player) AddCard(card entities.Card) {
	p.Hand = append(p.Hand, card)
}

// GetHand returns the player's current hand
func (p *Player) GetHand() []entities.Card {
	return p.Hand
}

// HandSize returns how many cards the player holds
func (p *Player) HandSize() int {
	return len(p.Hand)
}

// HasCards reports whether the hand is not empty
func (p *Player) HasCards() bool {
	return len(p.Hand) > 0
}

// HandPoints sums the point value of every card still held
func (p *Player) HandPoints() int {
	total := 0
	for _, c := range p.Hand {
		total += c.Points()
	}
	return total
}

// RemoveCards takes the cards at indices out of the hand and returns them in
// the order the indices were given. Indices must be valid and distinct.
func (p *Player) RemoveCards(indices []int) []entities.Card {
	removed := make([]entities.Card, len(indices))
	for i, idx := range indices {
		removed[i] = p.Hand[idx]
	}

	drop := make(map[int]bool, len(indices))
	for _, idx := range indices {
		drop[idx] = true
	}
	kept := make([]entities.Card, 0, len(p.Hand)-len(indices))
	for i, c := range p.Hand {
		if !drop[i] {
			kept = append(kept, c)
		}
	}
	p.Hand = kept

	return removed
}

// InsertCards undoes RemoveCards: cards go back to their original indices
func (p *Player) InsertCards(indices []int, cards []entities.Card) {
	type placed struct {
		idx  int
		card entities.Card
	}
	order := make([]placed, len(indices))
	for i, idx := range indices {
		order[i] = placed{idx: idx, card: cards[i]}
	}
	sort.Slice(order, func(i, j int) bool { return order[i].idx < order[j].idx })

	for _, pl := range order {
		p.Hand = append(p.Hand, entities.Card{})
		copy(p.Hand[pl.idx+1:], p.Hand[pl.idx:])
		p.Hand[pl.idx] = pl.card
	}
}

// CountSuit returns how many cards of suit are held, ignoring Jacks
func (p *Player) CountSuit(suit entities.Suit) int {
	n := 0
	for _, c := range p.Hand {
		if c.Suit == suit && c.Rank != entities.Jack {
			n++
		}
	}
	return n
}
