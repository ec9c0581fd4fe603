// Package game holds the practice-session domain: characters, turns,
// sessions, and the orchestrator that advances them.
package game

import (
	"fmt"
	"strings"
)

// Character is a player character sheet.
type Character struct {
	Name   string
	Class  string
	Level  int
	Spells []string
}

// DisplayDetails renders the sheet as the multi-line block embedded in
// player prompts.
func (c Character) DisplayDetails() string {
	lines := []string{c.Name, fmt.Sprintf("Level %d %s", c.Level, c.Class)}
	if len(c.Spells) > 0 {
		lines = append(lines, "Spells:"+strings.Join(c.Spells, ", "))
	}
	return strings.Join(lines, "\n")
}
