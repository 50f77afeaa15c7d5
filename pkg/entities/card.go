package entities

import (
	"fmt"
	"strings"
)

// Suit represents a card suit

type Suit string

const (
	Hearts   Suit = "HEARTS"
	Diamonds Suit = "DIAMONDS"
	Clubs    Suit = "CLUBS"
	Spades   Suit = "SPADES"

	// NoSuit is used where a suit choice is optional and was not made
	NoSuit Suit = ""
)

// Suits lists every suit in generation order, which is also the tie-break
// preference order when choosing a suit.
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

var suitGlyphs = map[Suit]string{
	Hearts:   "♥",
	Diamonds: "♦",
	Clubs:    "♣",
	Spades:   "♠",
}

// Glyph returns the suit symbol
func (s Suit) Glyph() string {
	if g, ok := suitGlyphs[s]; ok {
		return g
	}
	return "?"
}

// Name returns the suit in title case, e.g. "Hearts"
func (s Suit) Name() string {
	if s == NoSuit {
		return "none"
	}
	return string(s[0]) + strings.ToLower(string(s[1:]))
}

// Valid reports whether s is one of the four suits
func (s Suit) Valid() bool {
	_, ok := suitGlyphs[s]
	return ok
}

// ParseSuit accepts a full name ("hearts"), a letter ("h") or a glyph ("♥")
func ParseSuit(in string) (Suit, error) {
	in = strings.TrimSpace(in)
	for _, s := range Suits {
		if strings.EqualFold(in, string(s)) || strings.EqualFold(in, string(s)[:1]) || in == s.Glyph() {
			return s, nil
		}
	}
	return NoSuit, fmt.Errorf("unknown suit %q", in)
}

// Rank represents a card rank, 1 (Ace) through 13 (King)

type Rank int

const (
	Ace   Rank = 1
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

// Ranks lists every rank in generation order
var Ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

var rankNames = map[Rank]string{
	Ace:   "Ace",
	Jack:  "Jack",
	Queen: "Queen",
	King:  "King",
}

// Short returns "A", "2" … "10", "J", "Q", "K"
func (r Rank) Short() string {
	if name, ok := rankNames[r]; ok {
		return name[:1]
	}
	return fmt.Sprintf("%d", int(r))
}

// Name returns "Ace", "2" … "10", "Jack", "Queen", "King"
func (r Rank) Name() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return fmt.Sprintf("%d", int(r))
}

// Valid reports whether r is in 1..13
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// Card represents a playing card. Cards are values and never change once dealt.

type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// NewCard creates a new card

func NewCard(rank Rank, suit Suit) Card {
	return Card{
		Rank: rank,
		Suit: suit,
	}
}

// Valid reports whether both rank and suit are in range
func (c Card) Valid() bool {
	return c.Rank.Valid() && c.Suit.Valid()
}

// Points is what the card costs when it is left in a hand at the end of a round.
// 2 through 9 are free, 10 Q K cost 10, an Ace 15 and a Jack 20.
func (c Card) Points() int {
	switch {
	case c.Rank == Jack:
		return 20
	case c.Rank == Ace:
		return 15
	case c.Rank == Ten || c.Rank == Queen || c.Rank == King:
		return 10
	default:
		return 0
	}
}

// String returns the short form of the card, e.g. "J♠"
func (c Card) String() string {
	return c.Rank.Short() + c.Suit.Glyph()
}

// Name returns the long form of the card, e.g. "Jack of Spades"
func (c Card) Name() string {
	return fmt.Sprintf("%s of %s", c.Rank.Name(), c.Suit.Name())
}
