package eights

import (
	"math/rand"
	"time"

	"github.com/fadedpez/eights/internal/logging"
	"github.com/fadedpez/eights/internal/types"
	"github.com/fadedpez/eights/pkg/entities"
	"github.com/fadedpez/eights/pkg/games/common"
	"github.com/google/uuid"
)

// Strategy plays the computer's turn. TakeTurn runs synchronously and may call
// any engine command for seat; it returns once the computer is done for the turn.
type Strategy interface {
	TakeTurn(g *Game, seat int)
}

// Hints are presentation flags. They never affect legality.
type Hints struct {
	ComputerChoosingSuit bool
	MustDraw             bool
	OptionalDrawUsed     bool
}

// Game is one human-versus-computer session: deck, table pile, both players
// and the open obligation. It is not safe for concurrent use.
type Game struct {
	id       string
	players  [Seats]*common.Player
	deck     *entities.Deck
	table    []entities.Card
	rng      *rand.Rand
	observer Observer
	strategy Strategy
	log      *logging.Logger

	obligation Obligation
	hints      Hints

	roundNumber     int
	multiplier      int
	current         int
	turnPlayed      bool
	running         bool
	gameOver        bool
	gameWinner      int
	roundEndMessage string
	lastOutcome     *RoundOutcome
}

// Option configures a Game
type Option func(*Game)

// WithRand sets the random source used for every shuffle
func WithRand(r *rand.Rand) Option {
	return func(g *Game) { g.rng = r }
}

// WithObserver sets who is told about effects, plays, draws and round ends
func WithObserver(o Observer) Option {
	return func(g *Game) { g.observer = o }
}

// WithStrategy installs the computer player. Without one the computer seat is
// driven through the same commands as the human seat.
func WithStrategy(s Strategy) Option {
	return func(g *Game) { g.strategy = s }
}

// WithPlayers replaces the default "Player" and "Computer" seats
func WithPlayers(human, computer *common.Player) Option {
	return func(g *Game) {
		g.players[HumanSeat] = human
		g.players[ComputerSeat] = computer
	}
}

// WithLogger sets the logger; the default is logging.Default
func WithLogger(l *logging.Logger) Option {
	return func(g *Game) { g.log = l }
}

// WithID fixes the game ID instead of generating one
func WithID(id string) Option {
	return func(g *Game) { g.id = id }
}

// NewGame creates a game. Call StartGame to deal the first round.
func NewGame(opts ...Option) *Game {
	g := &Game{
		id:         uuid.NewString(),
		observer:   NopObserver{},
		log:        logging.Default,
		obligation: NoObligation{},
		multiplier: 1,
		gameWinner: -1,
		deck:       &entities.Deck{},
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.players[HumanSeat] == nil {
		g.players[HumanSeat] = common.NewPlayer("human", "Player")
	}
	if g.players[ComputerSeat] == nil {
		g.players[ComputerSeat] = common.NewComputer("computer", "Computer")
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g.log = g.log.WithField("game", g.id)

	return g
}

// StartGame resets both totals and deals round 1
func (g *Game) StartGame() {
	for _, p := range g.players {
		p.Reset()
	}
	g.roundNumber = 1
	g.gameOver = false
	g.gameWinner = -1
	g.lastOutcome = nil
	g.startRound()
	g.log.Info("Game started: %s vs %s", g.players[HumanSeat].Name, g.players[ComputerSeat].Name)
}

// StartNewRound deals the next round. Totals carry over.
func (g *Game) StartNewRound() error {
	if g.gameOver {
		return types.NewGameError(types.ErrGameOver, "the game is over, start a new game")
	}
	if g.running {
		return types.NewGameError(types.ErrRoundInProgress, "the current round is still being played")
	}

	g.roundNumber++
	g.startRound()
	g.log.Info("Round %d starts", g.roundNumber)
	return nil
}

func (g *Game) startRound() {
	g.deck = entities.NewDeck()
	g.deck.Shuffle(g.rng)
	g.table = nil
	g.obligation = NoObligation{}
	g.hints = Hints{}
	g.multiplier = 1
	g.roundEndMessage = ""

	for _, p := range g.players {
		p.ClearHand()
	}
	for i := 0; i < HandSize; i++ {
		for _, p := range g.players {
			if card, ok := g.deck.Draw(); ok {
				p.AddCard(card)
			}
		}
	}

	g.running = true
	g.current = HumanSeat
	g.turnPlayed = false
	g.updateMustDraw()
}

// beginTurn resets the per-turn flags for the player about to act
func (g *Game) beginTurn() {
	g.turnPlayed = false
	g.hints.OptionalDrawUsed = false
	g.hints.MustDraw = false
}

func (g *Game) isComputer(seat int) bool {
	return seat == ComputerSeat && g.strategy != nil
}

// updateMustDraw flags a player who cannot play but can still draw
func (g *Game) updateMustDraw() {
	if g.isComputer(g.current) || !g.running {
		g.hints.MustDraw = false
		return
	}
	g.hints.MustDraw = !g.HasLegalPlay(g.current) && g.canDraw()
}

func (g *Game) checkRunning() error {
	if g.gameOver {
		return types.NewGameError(types.ErrGameOver, "the game is over")
	}
	if !g.running {
		return types.NewGameError(types.ErrRoundOver, "the round is over")
	}
	return nil
}

func (g *Game) checkTurn(seat int) error {
	if err := g.checkRunning(); err != nil {
		return err
	}
	if seat != g.current {
		return types.Errorf(types.ErrNotPlayerTurn, "it is %s's turn", g.players[g.current].Name)
	}
	return nil
}

func (g *Game) notifyEffect(seat int, kind EffectKind, cards int) {
	effect := Effect{Kind: kind, Cards: cards}
	if kind != EffectNone {
		effect.Duration = EffectDisplay
	}
	g.observer.PlayerEffect(seat, effect)
}

// ID returns the game ID
func (g *Game) ID() string {
	return g.id
}

// CanPlay reports whether seat may play card right now
func (g *Game) CanPlay(card entities.Card, seat int) bool {
	top, ok := g.TopCard()
	return Legal(card, seat, top, ok, g.obligation)
}

// HasLegalPlay reports whether any card in seat's hand is playable
func (g *Game) HasLegalPlay(seat int) bool {
	if !validSeat(seat) {
		return false
	}
	for _, c := range g.players[seat].Hand {
		if g.CanPlay(c, seat) {
			return true
		}
	}
	return false
}

// Player returns a snapshot of the player at seat
func (g *Game) Player(seat int) common.Player {
	p := *g.players[seat]
	p.Hand = append([]entities.Card(nil), p.Hand...)
	return p
}

// Hand returns a copy of seat's hand
func (g *Game) Hand(seat int) []entities.Card {
	return append([]entities.Card(nil), g.players[seat].Hand...)
}

// DeckSize returns the cards left to draw
func (g *Game) DeckSize() int {
	return g.deck.Len()
}

// TablePile returns a copy of the table pile, top card last
func (g *Game) TablePile() []entities.Card {
	return append([]entities.Card(nil), g.table...)
}

// TopCard returns the card plays must match; ok is false on an empty table
func (g *Game) TopCard() (entities.Card, bool) {
	if len(g.table) == 0 {
		return entities.Card{}, false
	}
	return g.table[len(g.table)-1], true
}

// Obligation returns the open obligation
func (g *Game) Obligation() Obligation {
	return g.obligation
}

// Hints returns the presentation flags
func (g *Game) Hints() Hints {
	return g.hints
}

// ClearComputerChoosingSuit is called by a front end once it has shown the
// computer's suit choice
func (g *Game) ClearComputerChoosingSuit() {
	g.hints.ComputerChoosingSuit = false
}

func (g *Game) IsRunning() bool         { return g.running }
func (g *Game) IsGameOver() bool        { return g.gameOver }
func (g *Game) RoundEndMessage() string { return g.roundEndMessage }
func (g *Game) MustDraw() bool          { return g.hints.MustDraw }
func (g *Game) OptionalDrawUsed() bool  { return g.hints.OptionalDrawUsed }
func (g *Game) RoundNumber() int        { return g.roundNumber }
func (g *Game) Multiplier() int         { return g.multiplier }
func (g *Game) CurrentSeat() int        { return g.current }
func (g *Game) PlayedThisTurn() bool    { return g.turnPlayed }

// GameWinner returns the seat that won the game once it is over
func (g *Game) GameWinner() (int, bool) {
	return g.gameWinner, g.gameOver
}

// LastOutcome returns how the most recent round ended, or nil
func (g *Game) LastOutcome() *RoundOutcome {
	return g.lastOutcome
}
