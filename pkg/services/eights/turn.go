package eights

import (
	"github.com/fadedpez/eights/internal/types"
)

// EndPlayerTurn hands play to the opponent. The computer's whole turn runs
// before this returns, after which any effect aimed at the human has been applied.
func (g *Game) EndPlayerTurn() error {
	if err := g.checkRunning(); err != nil {
		return err
	}

	seat := g.current
	if g.hints.MustDraw {
		return types.NewGameError(types.ErrMustDraw, "you have no legal play and must draw")
	}
	if six, ok := g.obligation.(SixCover); ok && six.Owner == seat && g.HasLegalPlay(seat) {
		return types.NewGameError(types.ErrSixObligation, "you hold a card that covers your six")
	}
	if !g.turnPlayed && g.HasLegalPlay(seat) {
		return types.NewGameError(types.ErrPlayRequired, "you have a legal play")
	}

	g.advanceTurn()
	return nil
}

// advanceTurn passes play to the next player and resolves any pending draw or
// skip against them. It recurses through the computer's turn.
func (g *Game) advanceTurn() {
	if g.CheckRoundOver() {
		return
	}

	outgoing := g.current
	g.current = other(outgoing)
	g.beginTurn()
	g.notifyEffect(outgoing, EffectNone, 0)

	skip := false
	switch ob := g.obligation.(type) {
	case DrawPenalty:
		g.notifyEffect(g.current, EffectDraw, ob.Cards)
		drawn := g.forceDraw(g.current, ob.Cards)
		if drawn < ob.Cards {
			g.log.Info("%s could only draw %d of %d penalty cards", g.players[g.current].Name, drawn, ob.Cards)
		}
		g.obligation = NoObligation{}
		skip = ob.Skip
	case SkipTurn:
		g.obligation = NoObligation{}
		skip = true
	}

	if skip {
		g.notifyEffect(g.current, EffectSkip, 0)
		g.log.Debug("%s loses the turn", g.players[g.current].Name)
		g.current = other(g.current)
		g.beginTurn()
	}

	if g.CheckRoundOver() {
		return
	}

	if g.isComputer(g.current) {
		g.strategy.TakeTurn(g, g.current)
		if g.running {
			g.advanceTurn()
		}
		return
	}

	g.updateMustDraw()
}
