// Package cli is the terminal front end: the GM types narration, the
// simulated players answer in turn.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/louisbranch/gmtrainer/internal/errors"
	"github.com/louisbranch/gmtrainer/internal/game"
	"github.com/louisbranch/gmtrainer/internal/scenario"
)

// UI drives a practice session over a line-based reader and writer.
type UI struct {
	orc *game.Orchestrator
	scn *scenario.Scenario
	in  *bufio.Scanner
	out io.Writer
}

// New builds a terminal UI reading GM input from in and writing the
// transcript to out.
func New(orc *game.Orchestrator, scn *scenario.Scenario, in io.Reader, out io.Writer) *UI {
	return &UI{orc: orc, scn: scn, in: bufio.NewScanner(in), out: out}
}

// Run starts a session with the scenario's opening narration, then loops:
// players act in order, the GM narrates the next round. It returns when the
// input stream ends or the context is cancelled. Provider trouble is
// reported and the GM is prompted again; the session keeps its committed
// turns.
func (u *UI) Run(ctx context.Context) error {
	session, err := u.orc.Begin(ctx, u.scn.Name, u.scn.Narration)
	if err != nil {
		return err
	}
	u.printf("GM: %s\n", u.scn.Narration)

	for {
		if err := u.runRound(ctx, session); err != nil {
			return err
		}

		narration, ok := u.readNarration(ctx)
		if !ok {
			return u.in.Err()
		}
		if _, err := u.orc.Advance(ctx, session, game.GM(), narration); err != nil {
			return err
		}
	}
}

// runRound has each player act once, printing responses as they commit.
// A recoverable provider failure ends the round early and hands the table
// back to the GM.
func (u *UI) runRound(ctx context.Context, session *game.Session) error {
	for _, p := range u.orc.Roster() {
		turn, err := u.orc.Advance(ctx, session, p, "")
		if err != nil {
			if errors.IsRecoverable(errors.GetCode(err)) {
				u.printf("(%s could not respond: %v)\n", p.PlayerName, err)
				return nil
			}
			return err
		}
		u.printf("%s\n", turn.Line())
	}
	return nil
}

// readNarration prompts until the GM enters a non-blank line. It reports
// ok=false when input ends.
func (u *UI) readNarration(ctx context.Context) (string, bool) {
	for {
		if ctx.Err() != nil {
			return "", false
		}
		u.printf("GM: ")
		if !u.in.Scan() {
			return "", false
		}
		line := strings.TrimSpace(u.in.Text())
		if line != "" {
			return line, true
		}
	}
}

func (u *UI) printf(format string, args ...any) {
	fmt.Fprintf(u.out, format, args...)
}
