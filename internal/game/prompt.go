package game

import (
	"fmt"
	"strings"
)

// Window bounds how much turn history is replayed into a player prompt.
// The zero Window replays everything.
type Window struct {
	// MaxTurns caps the number of turns included in a prompt. When the
	// log is longer, the opening narration is kept so the scenario
	// framing survives, followed by the most recent turns.
	MaxTurns int
}

func windowTurns(turns []Turn, w Window) []Turn {
	if w.MaxTurns <= 0 || len(turns) <= w.MaxTurns {
		return turns
	}
	if w.MaxTurns == 1 {
		return turns[len(turns)-1:]
	}
	kept := make([]Turn, 0, w.MaxTurns)
	kept = append(kept, turns[0])
	kept = append(kept, turns[len(turns)-(w.MaxTurns-1):]...)
	return kept
}

// playerPrompt is the speaker-labeled history a player sees before acting.
// It is a pure function of the committed turns, so prompt assembly never
// races turn commits.
func playerPrompt(turns []Turn, w Window) string {
	turns = windowTurns(turns, w)
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		lines = append(lines, t.Line())
	}
	return strings.Join(lines, "\n")
}

// systemPrompt carries the out-of-band player instructions: who they are,
// who sits with them, and the response rules.
func systemPrompt(p Participant, roster []Participant) string {
	others := make([]string, 0, len(roster))
	for _, other := range roster {
		if other.PlayerName == p.PlayerName {
			continue
		}
		others = append(others, fmt.Sprintf("%s, playing %s", other.PlayerName, other.Character.DisplayDetails()))
	}
	return fmt.Sprintf(systemPromptFormat, p.PlayerName, p.Character.DisplayDetails(), strings.Join(others, "\n"))
}

const systemPromptFormat = `You, %s, are playing a tabletop RPG. Your character is %s. Your fellow player-characters are:
%s
The Game Master (GM) of the session will describe a scenario to you.
You will:
1. Ask questions of the GM. (optional)
2. Talk with your fellow players. (optional)
3. Declaratively state what you want your character to do. (mandatory)

Always follow these further instructions:
No yapping or preambles.
No saying more than one logical thing at a time.
No assuming that you possess any skills, items, or knowledge without confirming by asking the GM.
No describing any game scenario elements that aren't about your character.
No describing other character's.
Never surround outputs with asterisks, *like this*.`
