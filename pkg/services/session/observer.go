package session

import (
	"fmt"
	"strings"

	"github.com/fadedpez/eights/pkg/entities"
	"github.com/fadedpez/eights/pkg/services/eights"
)

// observer turns engine notifications into log messages. It runs while the
// session mutex is held and only touches session state.
type observer struct {
	s *Session
}

func (o *observer) who(seat int) string {
	if seat == eights.HumanSeat {
		return "You"
	}
	return "Computer"
}

func (o *observer) PlayerEffect(seat int, effect eights.Effect) {
	o.s.effects[seat] = activeEffect{effect: effect, until: o.s.now().Add(effect.Duration)}

	switch effect.Kind {
	case eights.EffectDraw:
		o.s.addMessage(fmt.Sprintf("%s must draw %d %s", o.who(seat), effect.Cards, cardWord(effect.Cards)))
	case eights.EffectSkip:
		if seat == eights.HumanSeat {
			o.s.addMessage("You are skipped")
		} else {
			o.s.addMessage("Computer is skipped")
		}
	}
}

func (o *observer) CardsPlayed(seat int, cards []entities.Card) {
	names := make([]string, 0, len(cards))
	for _, c := range cards {
		names = append(names, c.String())
	}
	o.s.addMessage(fmt.Sprintf("%s played %s", o.who(seat), strings.Join(names, ", ")))
}

func (o *observer) CardsDrawn(seat int, count int) {
	// The human's own draws are reported with the card by Session.Draw
	if seat == eights.HumanSeat {
		return
	}
	o.s.addMessage(fmt.Sprintf("Computer drew %d %s", count, cardWord(count)))
}

func (o *observer) PileRecycled(multiplier int) {
	o.s.addMessage(fmt.Sprintf("The table pile was shuffled back into the deck. Multiplier is now x%d", multiplier))
}

func (o *observer) RoundEnded(outcome eights.RoundOutcome) {
	o.s.addMessage(outcome.Message)
	if outcome.Record != nil {
		o.s.ended = append(o.s.ended, outcome.Record)
	}
}

func cardWord(n int) string {
	if n == 1 {
		return "card"
	}
	return "cards"
}
