package eights

import (
	"fmt"

	"github.com/fadedpez/eights/pkg/entities"
)

const (
	HumanSeat    = 0 // The human always sits at seat 0 and starts every round
	ComputerSeat = 1

	Seats             = 2
	HandSize          = 5   // Cards dealt to each player at the start of a round
	GameOverThreshold = 125 // The game ends once any total exceeds this
	SixCoverDrawLimit = 10  // Most cards drawn in one attempt to cover a six
	JackBonus         = -20 // Per Jack in the final play, times the multiplier
)

// ObligationKind names the open obligation variant
type ObligationKind string

const (
	KindNone     ObligationKind = "NONE"
	KindDraw     ObligationKind = "DRAW"
	KindSkip     ObligationKind = "SKIP"
	KindSixCover ObligationKind = "SIX_COVER"
	KindSuitLock ObligationKind = "SUIT_LOCK"
)

// Obligation is the single open obligation left by the most recent play.
// It is one of NoObligation, DrawPenalty, SkipTurn, SixCover or SuitLock.
type Obligation interface {
	Kind() ObligationKind
	String() string
	isObligation()
}

// NoObligation means the next play only has to match the top card
type NoObligation struct{}

// DrawPenalty makes the next player draw Cards cards, and lose the turn if Skip is set
type DrawPenalty struct {
	Cards int
	Skip  bool
}

// SkipTurn makes the next player lose their turn
type SkipTurn struct{}

// SixCover is an open six. Only Owner may play, and only a 6, a card of Suit or a Jack.
type SixCover struct {
	Owner int
	Suit  entities.Suit
	Chain int
}

// SuitLock restricts plays to Suit or a Jack
type SuitLock struct {
	Suit entities.Suit
}

func (NoObligation) Kind() ObligationKind { return KindNone }
func (DrawPenalty) Kind() ObligationKind  { return KindDraw }
func (SkipTurn) Kind() ObligationKind     { return KindSkip }
func (SixCover) Kind() ObligationKind     { return KindSixCover }
func (SuitLock) Kind() ObligationKind     { return KindSuitLock }

func (NoObligation) isObligation() {}
func (DrawPenalty) isObligation()  {}
func (SkipTurn) isObligation()     {}
func (SixCover) isObligation()     {}
func (SuitLock) isObligation()     {}

func (NoObligation) String() string { return "none" }

func (d DrawPenalty) String() string {
	if d.Skip {
		return fmt.Sprintf("draw %d and skip", d.Cards)
	}
	return fmt.Sprintf("draw %d", d.Cards)
}

func (SkipTurn) String() string { return "skip" }

func (s SixCover) String() string {
	return fmt.Sprintf("cover %d six(es) with a 6, a %s or a Jack", s.Chain, s.Suit.Name())
}

func (s SuitLock) String() string {
	return fmt.Sprintf("%s or a Jack", s.Suit.Name())
}

// Legal reports whether seat may play card onto a pile whose top is top
// (hasTop false for an empty table) while ob is open. The checks run in order:
// empty table, open six, Jack, suit lock, suit or rank match.
func Legal(card entities.Card, seat int, top entities.Card, hasTop bool, ob Obligation) bool {
	if !hasTop {
		return true
	}

	if six, ok := ob.(SixCover); ok {
		if seat != six.Owner {
			return false
		}
		return card.Rank == entities.Six || card.Suit == six.Suit || card.Rank == entities.Jack
	}

	if card.Rank == entities.Jack {
		return true
	}

	if lock, ok := ob.(SuitLock); ok {
		return card.Suit == lock.Suit
	}

	return card.Suit == top.Suit || card.Rank == top.Rank
}

// CoversSix reports whether card may close a six of suit
func CoversSix(card entities.Card, suit entities.Suit) bool {
	return card.Rank == entities.Six || card.Suit == suit || card.Rank == entities.Jack
}

// TrailingJacks counts the Jacks at the top of the pile
func TrailingJacks(pile []entities.Card) int {
	n := 0
	for i := len(pile) - 1; i >= 0 && pile[i].Rank == entities.Jack; i-- {
		n++
	}
	return n
}

func other(seat int) int {
	return 1 - seat
}

func validSeat(seat int) bool {
	return seat == HumanSeat || seat == ComputerSeat
}
