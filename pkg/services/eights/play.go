package eights

import (
	"github.com/fadedpez/eights/internal/types"
	"github.com/fadedpez/eights/pkg/entities"
)

// PlayCards plays the cards at indices from seat's hand onto the table, in the
// order given. All cards must share a rank and the first must be legal. chosen
// is the suit named for a Jack; NoSuit keeps the suit of the Jack itself.
// A rejected play leaves the game unchanged.
func (g *Game) PlayCards(seat int, indices []int, chosen entities.Suit) ([]entities.Card, error) {
	if err := g.checkTurn(seat); err != nil {
		return nil, err
	}

	six, sixOpen := g.obligation.(SixCover)
	ownsSix := sixOpen && six.Owner == seat
	if g.turnPlayed && !ownsSix {
		return nil, types.NewGameError(types.ErrTurnComplete, "you have already played this turn")
	}

	player := g.players[seat]
	if len(indices) == 0 {
		return nil, types.NewGameError(types.ErrInvalidIndex, "no cards selected")
	}
	seen := make(map[int]bool, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(player.Hand) {
			return nil, types.Errorf(types.ErrInvalidIndex, "card %d is not in your hand", idx+1)
		}
		if seen[idx] {
			return nil, types.Errorf(types.ErrInvalidIndex, "card %d selected twice", idx+1)
		}
		seen[idx] = true
	}

	first := player.Hand[indices[0]]
	for _, idx := range indices[1:] {
		if player.Hand[idx].Rank != first.Rank {
			return nil, types.NewGameError(types.ErrMixedRanks, "cards played together must share a rank")
		}
	}
	if !g.CanPlay(first, seat) {
		return nil, types.Errorf(types.ErrIllegalPlay, "%s cannot be played on %s", first, g.describeTop())
	}

	cards := player.RemoveCards(indices)
	tableLen := len(g.table)
	previous := g.obligation
	g.table = append(g.table, cards...)

	if err := g.applyEffects(seat, cards, chosen); err != nil {
		g.table = g.table[:tableLen]
		g.obligation = previous
		player.InsertCards(indices, cards)
		if types.CodeOf(err) == types.ErrSixObligation {
			g.log.Warn("%s played into an open six they do not own", player.Name)
			if card, ok := g.drawInto(seat, true); ok {
				g.log.Debug("%s drew %s as a penalty", player.Name, card)
			}
		}
		return nil, err
	}

	g.turnPlayed = true
	g.hints.MustDraw = false
	if six, ok := g.obligation.(SixCover); ok && six.Owner == seat {
		g.updateMustDraw()
	}
	if cards[0].Rank == entities.Jack && g.isComputer(seat) {
		g.hints.ComputerChoosingSuit = true
	}

	g.log.Debug("%s played %v, obligation now %s", player.Name, cards, g.obligation)
	g.observer.CardsPlayed(seat, append([]entities.Card(nil), cards...))
	g.CheckRoundOver()

	return cards, nil
}

// applyEffects resolves the obligation left by cards, all of one rank.
// The last card placed is the top of the pile.
func (g *Game) applyEffects(seat int, cards []entities.Card, chosen entities.Suit) error {
	top := cards[len(cards)-1]
	n := len(cards)

	if six, ok := g.obligation.(SixCover); ok && top.Rank != entities.Six {
		if six.Owner != seat {
			return types.NewGameError(types.ErrSixObligation, "only the player who laid the six may cover it")
		}
		g.obligation = NoObligation{}
	}

	if lock, ok := g.obligation.(SuitLock); ok && top.Rank != entities.Jack && top.Suit == lock.Suit {
		g.obligation = NoObligation{}
	}

	switch top.Rank {
	case entities.Eight:
		g.addDraw(2*n, true)
	case entities.Seven:
		g.addDraw(n, false)
	case entities.Ace:
		g.addSkip()
	case entities.Six:
		chain := n
		if six, ok := g.obligation.(SixCover); ok {
			chain += six.Chain
		}
		g.obligation = SixCover{Owner: seat, Suit: top.Suit, Chain: chain}
	case entities.Jack:
		suit := top.Suit
		if chosen.Valid() {
			suit = chosen
		}
		g.obligation = SuitLock{Suit: suit}
	}

	return nil
}

func (g *Game) addDraw(cards int, skip bool) {
	if pending, ok := g.obligation.(DrawPenalty); ok {
		pending.Cards += cards
		pending.Skip = pending.Skip || skip
		g.obligation = pending
		return
	}
	if _, ok := g.obligation.(SkipTurn); ok {
		skip = true
	}
	g.obligation = DrawPenalty{Cards: cards, Skip: skip}
}

func (g *Game) addSkip() {
	if pending, ok := g.obligation.(DrawPenalty); ok {
		pending.Skip = true
		g.obligation = pending
		return
	}
	g.obligation = SkipTurn{}
}

func (g *Game) describeTop() string {
	top, ok := g.TopCard()
	if !ok {
		return "an empty table"
	}
	if g.obligation.Kind() == KindSuitLock || g.obligation.Kind() == KindSixCover {
		return top.String() + " (" + g.obligation.String() + ")"
	}
	return top.String()
}
