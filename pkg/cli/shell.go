package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fadedpez/eights/internal/types"
	"github.com/fadedpez/eights/pkg/entities"
	"github.com/fadedpez/eights/pkg/services/session"
	"github.com/fadedpez/eights/pkg/services/statistics"
	"github.com/pterm/pterm"
)

const helpText = `Commands:
  stage N        stage card N (cards of one rank can be staged together)
  unstage N      take card N back
  all N          stage card N and every other card of its rank
  clear          unstage everything
  play [N...] [suit]
                 play the staged cards, staging N... first; name a suit for Jacks
  draw           draw a card
  pass           end your turn
  next           deal the next round
  new            start a new game
  stats          show the leaderboard and your last rounds
  help           show this help
  quit           leave`

// Shell is a line-oriented terminal front end for one session
type Shell struct {
	in       *bufio.Scanner
	out      io.Writer
	start    func() *session.Session
	session  *session.Session
	stats    *statistics.Service
	playerID string
}

// NewShell creates a shell reading commands from in. start deals a new game;
// stats may be nil when nothing is recorded.
func NewShell(in io.Reader, out io.Writer, start func() *session.Session, stats *statistics.Service) *Shell {
	sh := &Shell{
		in:    bufio.NewScanner(in),
		out:   out,
		start: start,
		stats: stats,
	}
	sh.session = start()
	sh.playerID = sh.session.PlayerID()
	return sh
}

// Session is the game being played
func (sh *Shell) Session() *session.Session {
	return sh.session
}

// Run renders the table and executes commands until quit or end of input
func (sh *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(sh.out, pterm.Bold.Sprint("Crazy Eights. Type 'help' for commands."))
	if err := sh.render(); err != nil {
		return err
	}

	for {
		fmt.Fprint(sh.out, "> ")
		if !sh.in.Scan() {
			return sh.in.Err()
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		quit, err := sh.Execute(ctx, sh.in.Text())
		if quit {
			fmt.Fprintln(sh.out, "Bye.")
			return nil
		}
		if err != nil && !isGameError(err) {
			// Game errors already show up in the session log
			fmt.Fprintln(sh.out, pterm.Error.Sprint(err.Error()))
		}
		if err := sh.render(); err != nil {
			return err
		}
	}
}

// Execute runs one command line. It reports whether the shell should exit.
func (sh *Shell) Execute(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprintln(sh.out, helpText)
		return false, nil
	case "stage", "s":
		idx, err := cardIndex(args)
		if err != nil {
			return false, err
		}
		return false, sh.session.Stage(idx)
	case "unstage", "u":
		idx, err := cardIndex(args)
		if err != nil {
			return false, err
		}
		return false, sh.session.Unstage(idx)
	case "all", "a":
		idx, err := cardIndex(args)
		if err != nil {
			return false, err
		}
		return false, sh.session.StageAllOfRank(idx)
	case "clear", "c":
		sh.session.ClearStaged()
		return false, nil
	case "play", "p":
		return false, sh.play(ctx, args)
	case "draw", "d":
		_, err := sh.session.Draw(ctx)
		return false, err
	case "pass":
		return false, sh.session.Pass(ctx)
	case "next", "n":
		return false, sh.session.NextRound(ctx)
	case "new":
		sh.session = sh.start()
		return false, nil
	case "stats":
		return false, sh.showStats(ctx)
	default:
		return false, fmt.Errorf("unknown command %q, type 'help'", cmd)
	}
}

// play stages any card numbers in args, then plays with the named suit
func (sh *Shell) play(ctx context.Context, args []string) error {
	suit := entities.NoSuit
	for _, arg := range args {
		if n, err := strconv.Atoi(arg); err == nil {
			if err := sh.session.Stage(n - 1); err != nil {
				sh.session.ClearStaged()
				return err
			}
			continue
		}
		parsed, err := entities.ParseSuit(arg)
		if err != nil {
			return err
		}
		suit = parsed
	}
	return sh.session.Finish(ctx, suit)
}

func (sh *Shell) showStats(ctx context.Context) error {
	if sh.stats == nil {
		return fmt.Errorf("statistics are not recorded in this mode")
	}
	lb, err := sh.stats.GetLeaderboard(ctx, 1, statistics.DefaultPageSize)
	if err != nil {
		return err
	}
	table, err := renderLeaderboard(lb)
	if err != nil {
		return err
	}
	fmt.Fprint(sh.out, table)

	rounds, err := sh.stats.GetRecentRounds(ctx, sh.playerID, 5)
	if err != nil {
		return err
	}
	for _, r := range rounds {
		if p := r.Player(sh.playerID); p != nil {
			fmt.Fprintf(sh.out, "  Round %d: %s, %d points (total %d)\n", r.Round, strings.ToLower(string(p.Outcome)), p.PointsCharged, p.TotalPoints)
		}
	}
	return nil
}

func (sh *Shell) render() error {
	view, err := renderTable(sh.session.Snapshot())
	if err != nil {
		return err
	}
	fmt.Fprint(sh.out, view)
	return nil
}

// cardIndex turns the 1-based card number in args into a hand index
func cardIndex(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected one card number")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%q is not a card number", args[0])
	}
	return n - 1, nil
}

func isGameError(err error) bool {
	var gameErr *types.GameError
	return types.As(err, &gameErr)
}
