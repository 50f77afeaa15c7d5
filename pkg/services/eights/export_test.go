package eights

import "github.com/fadedpez/eights/pkg/entities"

// DeckCards returns a copy of the undrawn cards
func (g *Game) DeckCards() []entities.Card {
	return append([]entities.Card(nil), g.deck.Cards...)
}
