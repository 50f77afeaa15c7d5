package eights

import (
	"time"

	"github.com/fadedpez/eights/pkg/entities"
)

// EffectDisplay is how long a front end should show a player effect indicator
const EffectDisplay = 3 * time.Second

// EffectKind is the transient effect a player is subject to
type EffectKind string

const (
	EffectNone EffectKind = ""
	EffectDraw EffectKind = "DRAW"
	EffectSkip EffectKind = "SKIP"
)

// Effect describes an indicator to show next to a player
type Effect struct {
	Kind     EffectKind
	Cards    int
	Duration time.Duration
}

// Observer is told about things a front end may want to show. Calls are made
// synchronously from inside engine commands and must not call back into the game.
type Observer interface {
	// PlayerEffect reports that seat became subject to, or was cleared of, an effect
	PlayerEffect(seat int, effect Effect)
	CardsPlayed(seat int, cards []entities.Card)
	CardsDrawn(seat int, count int)
	PileRecycled(multiplier int)
	RoundEnded(outcome RoundOutcome)
}

// NopObserver ignores every notification. Embed it to implement only some methods.
type NopObserver struct{}

func (NopObserver) PlayerEffect(int, Effect)         {}
func (NopObserver) CardsPlayed(int, []entities.Card) {}
func (NopObserver) CardsDrawn(int, int)              {}
func (NopObserver) PileRecycled(int)                 {}
func (NopObserver) RoundEnded(RoundOutcome)          {}

// Observers fans notifications out to several observers in order
type Observers []Observer

func (o Observers) PlayerEffect(seat int, effect Effect) {
	for _, ob := range o {
		ob.PlayerEffect(seat, effect)
	}
}

func (o Observers) CardsPlayed(seat int, cards []entities.Card) {
	for _, ob := range o {
		ob.CardsPlayed(seat, cards)
	}
}

func (o Observers) CardsDrawn(seat int, count int) {
	for _, ob := range o {
		ob.CardsDrawn(seat, count)
	}
}

func (o Observers) PileRecycled(multiplier int) {
	for _, ob := range o {
		ob.PileRecycled(multiplier)
	}
}

func (o Observers) RoundEnded(outcome RoundOutcome) {
	for _, ob := range o {
		ob.RoundEnded(outcome)
	}
}
