package session

import (
	"github.com/fadedpez/eights/pkg/entities"
	"github.com/fadedpez/eights/pkg/services/eights"
)

// Snapshot is everything a front end needs to draw the table
type Snapshot struct {
	GameID     string
	Round      int
	Multiplier int
	Running    bool
	GameOver   bool

	Names  [eights.Seats]string
	Scores [eights.Seats]int

	Hand          []entities.Card
	Playable      []bool
	Staged        []int
	ComputerCards int
	DeckSize      int
	PileSize      int
	Top           entities.Card
	HasTop        bool
	Obligation    eights.Obligation

	MustDraw         bool
	OptionalDrawUsed bool
	PlayedThisTurn   bool
	OwnsSix          bool

	// Effects holds the indicators still showing; EffectNone otherwise
	Effects [eights.Seats]eights.Effect

	RoundEndMessage string
	GameWinner      int // -1 unless GameOver
	Log             []string
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.game
	snap := Snapshot{
		GameID:           g.ID(),
		Round:            g.RoundNumber(),
		Multiplier:       g.Multiplier(),
		Running:          g.IsRunning(),
		GameOver:         g.IsGameOver(),
		Hand:             g.Hand(eights.HumanSeat),
		Staged:           append([]int(nil), s.staged...),
		ComputerCards:    len(g.Hand(eights.ComputerSeat)),
		DeckSize:         g.DeckSize(),
		PileSize:         len(g.TablePile()),
		Obligation:       g.Obligation(),
		MustDraw:         g.MustDraw(),
		OptionalDrawUsed: g.OptionalDrawUsed(),
		PlayedThisTurn:   g.PlayedThisTurn(),
		RoundEndMessage:  g.RoundEndMessage(),
		GameWinner:       -1,
		Log:              append([]string(nil), s.messages...),
	}
	snap.Top, snap.HasTop = g.TopCard()

	for seat := 0; seat < eights.Seats; seat++ {
		p := g.Player(seat)
		snap.Names[seat] = p.Name
		snap.Scores[seat] = p.Points

		if active := s.effects[seat]; active.effect.Kind != eights.EffectNone && s.now().Before(active.until) {
			snap.Effects[seat] = active.effect
		}
	}

	snap.Playable = make([]bool, len(snap.Hand))
	for i, card := range snap.Hand {
		snap.Playable[i] = snap.Running && g.CanPlay(card, eights.HumanSeat)
	}

	if six, ok := snap.Obligation.(eights.SixCover); ok {
		snap.OwnsSix = six.Owner == eights.HumanSeat
	}
	if winner, ok := g.GameWinner(); ok {
		snap.GameWinner = winner
	}

	return snap
}

// StagedRank is the rank being staged, if any
func (snap Snapshot) StagedRank() (entities.Rank, bool) {
	if len(snap.Staged) == 0 {
		return 0, false
	}
	return snap.Hand[snap.Staged[0]].Rank, true
}
