package entities

import (
	"math/rand"
	"time"
)

// DeckSize is the number of cards in a full deck
const DeckSize = 52

// Deck is an ordered stack of cards. The top of the deck is the end of Cards.
type Deck struct {
	Cards []Card
}

// NewDeck creates a new deck of 52 cards, one of each rank and suit, in a fixed
// order: suits Hearts, Diamonds, Clubs, Spades, each Ace through King.
func NewDeck() *Deck {
	cards := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, NewCard(rank, suit))
		}
	}

	return &Deck{Cards: cards}
}

// Shuffle permutes the deck uniformly. A nil source falls back to a time seed.
func (d *Deck) Shuffle(r *rand.Rand) {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	r.Shuffle(len(d.Cards), func(i, j int) {
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	})
}

// Draw removes and returns the top card. ok is false when the deck is empty.
func (d *Deck) Draw() (card Card, ok bool) {
	if len(d.Cards) == 0 {
		return Card{}, false
	}
	card = d.Cards[len(d.Cards)-1]
	d.Cards = d.Cards[:len(d.Cards)-1]
	return card, true
}

// Add puts cards back into the deck, the last one ending on top
func (d *Deck) Add(cards ...Card) {
	d.Cards = append(d.Cards, cards...)
}

// Len returns the number of cards left
func (d *Deck) Len() int {
	return len(d.Cards)
}

// IsEmpty reports whether nothing is left to draw
func (d *Deck) IsEmpty() bool {
	return len(d.Cards) == 0
}
