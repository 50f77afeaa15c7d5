package eights

import (
	"github.com/fadedpez/eights/internal/types"
	"github.com/fadedpez/eights/pkg/entities"
)

// DrawOneCard draws a single card for seat. Which draw it is depends on the
// turn: covering an own six, a forced draw, or the once-per-turn optional draw.
func (g *Game) DrawOneCard(seat int) (entities.Card, error) {
	if err := g.checkTurn(seat); err != nil {
		return entities.Card{}, err
	}
	name := g.players[seat].Name

	if six, ok := g.obligation.(SixCover); ok && six.Owner == seat {
		if g.HasLegalPlay(seat) {
			return entities.Card{}, types.NewGameError(types.ErrSixObligation, "you already hold a card that covers your six")
		}
		card, ok := g.drawInto(seat, true)
		if !ok {
			return entities.Card{}, types.NewGameError(types.ErrDeckEmpty, "nothing left to draw")
		}
		g.log.Debug("%s drew %s trying to cover a six", name, card)
		g.updateMustDraw()
		return card, nil
	}

	if g.hints.MustDraw {
		card, ok := g.drawInto(seat, true)
		if !ok {
			return entities.Card{}, types.NewGameError(types.ErrDeckEmpty, "nothing left to draw")
		}
		g.hints.MustDraw = false
		g.log.Debug("%s had no play and drew %s", name, card)
		return card, nil
	}

	if g.hints.OptionalDrawUsed {
		return entities.Card{}, types.NewGameError(types.ErrDrawUsed, "you have already drawn this turn")
	}
	if g.turnPlayed {
		return entities.Card{}, types.NewGameError(types.ErrTurnComplete, "you have already played this turn")
	}
	if g.deck.IsEmpty() {
		return entities.Card{}, types.NewGameError(types.ErrDeckEmpty, "the deck is empty")
	}

	card, _ := g.drawInto(seat, false)
	g.hints.OptionalDrawUsed = true
	g.log.Debug("%s drew %s", name, card)
	return card, nil
}

// DrawUntilPlayable draws exactly one card for a player with no legal play,
// recycling the pile first if the deck is empty. It reports whether the drawn
// card can be played.
func (g *Game) DrawUntilPlayable(seat int) bool {
	if g.checkTurn(seat) != nil {
		return false
	}

	card, ok := g.drawInto(seat, true)
	if !ok {
		g.log.Info("%s cannot draw and loses the turn", g.players[seat].Name)
		return false
	}
	return g.CanPlay(card, seat)
}

// DrawUntilSixCovered draws for the owner of an open six until a card that
// covers it turns up, at most SixCoverDrawLimit times.
func (g *Game) DrawUntilSixCovered(seat int) bool {
	if g.checkTurn(seat) != nil {
		return false
	}
	six, ok := g.obligation.(SixCover)
	if !ok || six.Owner != seat {
		return false
	}

	for i := 0; i < SixCoverDrawLimit; i++ {
		card, ok := g.drawInto(seat, true)
		if !ok {
			break
		}
		if CoversSix(card, six.Suit) {
			g.log.Debug("%s covered the six after %d draw(s)", g.players[seat].Name, i+1)
			return true
		}
	}

	g.log.Info("%s could not find a card to cover the six", g.players[seat].Name)
	return false
}

// RecycleTablePile shuffles every table card except the top back into the
// deck and raises the point multiplier. It needs at least two cards on the table.
func (g *Game) RecycleTablePile() bool {
	if len(g.table) < 2 {
		return false
	}

	top := g.table[len(g.table)-1]
	g.deck.Add(g.table[:len(g.table)-1]...)
	g.table = []entities.Card{top}
	g.deck.Shuffle(g.rng)
	g.multiplier++

	g.log.Info("Table pile reshuffled into the deck, multiplier now x%d", g.multiplier)
	g.observer.PileRecycled(g.multiplier)
	return true
}

// drawInto moves the top deck card into seat's hand
func (g *Game) drawInto(seat int, recycle bool) (entities.Card, bool) {
	if g.deck.IsEmpty() && (!recycle || !g.RecycleTablePile()) {
		return entities.Card{}, false
	}

	card, ok := g.deck.Draw()
	if !ok {
		return entities.Card{}, false
	}
	g.players[seat].AddCard(card)
	g.observer.CardsDrawn(seat, 1)
	return card, true
}

// forceDraw draws up to n cards for a penalty and returns how many were drawn
func (g *Game) forceDraw(seat, n int) int {
	drawn := 0
	for drawn < n {
		if _, ok := g.drawInto(seat, true); !ok {
			break
		}
		drawn++
	}
	return drawn
}

// canDraw reports whether a forced draw could still produce a card
func (g *Game) canDraw() bool {
	return !g.deck.IsEmpty() || len(g.table) >= 2
}
