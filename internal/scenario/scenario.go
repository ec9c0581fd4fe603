// Package scenario defines practice scenarios: the opening narration the GM
// starts from and the roster of simulated players at the table. Scenarios
// are either the built-in default or loaded from a Lua script.
package scenario

import (
	"github.com/louisbranch/gmtrainer/internal/game"
)

// Scenario is the setup for one practice session.
type Scenario struct {
	Name      string
	Narration string
	Roster    []game.Participant
}

const defaultNarration = "The year is 1651. You and your companions woke up dawn and traveled " +
	"into the foothills of the mountains of Tenerife, the most important of the Canary Islands. " +
	"Now you stand before a cave whose opening is as tall as two men and as wide as a wagon. " +
	"You've been told that before these islands were conquered by the Spanish, the indigenous " +
	"Guanches (who still exist) would bury their mummified dead in caverns like this."

// Default returns the built-in Tenerife cave scenario with the stock roster.
func Default() *Scenario {
	return &Scenario{
		Name:      "tenerife-cave",
		Narration: defaultNarration,
		Roster:    game.DefaultRoster(),
	}
}
