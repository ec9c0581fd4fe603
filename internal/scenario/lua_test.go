package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/louisbranch/gmtrainer/internal/errors"
)

func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestDefaultScenario(t *testing.T) {
	t.Parallel()

	s := Default()
	if s.Name != "tenerife-cave" {
		t.Fatalf("name = %q", s.Name)
	}
	if !strings.Contains(s.Narration, "Tenerife") || !strings.Contains(s.Narration, "Guanches") {
		t.Fatalf("narration = %q", s.Narration)
	}
	if len(s.Roster) != 2 {
		t.Fatalf("roster = %d players, want 2", len(s.Roster))
	}
	if s.Roster[0].PlayerName != "Alice" || s.Roster[1].PlayerName != "Bob" {
		t.Fatalf("roster = %+v", s.Roster)
	}
}

func TestLoadScenarioScript(t *testing.T) {
	t.Parallel()

	path := writeScript(t, "chapel.lua", `
local s = Scenario.new("ruined chapel", "You stand before a ruined chapel.")
s:player("Carol", "Mira", "cleric", 4, {"Bless", "Sanctuary"})
s:player("Dave", "Torvald", "fighter", 1)
return s
`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Name != "ruined chapel" {
		t.Errorf("name = %q", s.Name)
	}
	if s.Narration != "You stand before a ruined chapel." {
		t.Errorf("narration = %q", s.Narration)
	}
	if len(s.Roster) != 2 {
		t.Fatalf("roster = %d players, want 2", len(s.Roster))
	}
	mira := s.Roster[0].Character
	if mira.Name != "Mira" || mira.Class != "cleric" || mira.Level != 4 {
		t.Errorf("first character = %+v", mira)
	}
	if len(mira.Spells) != 2 || mira.Spells[0] != "Bless" {
		t.Errorf("spells = %v", mira.Spells)
	}
	if spells := s.Roster[1].Character.Spells; len(spells) != 0 {
		t.Errorf("second character spells = %v, want none", spells)
	}
}

func TestLoadFallsBackToScriptFilename(t *testing.T) {
	t.Parallel()

	path := writeScript(t, "crypt.lua", `
return Scenario.new("", "A crypt door stands ajar.")
`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Name != "crypt" {
		t.Fatalf("name = %q, want %q", s.Name, "crypt")
	}
	if len(s.Roster) != 2 {
		t.Fatalf("roster = %d players, want stock roster", len(s.Roster))
	}
}

func TestLoadRejectsBadScripts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "syntax error", body: `this is not lua`},
		{name: "no return value", body: `local s = Scenario.new("x", "y")`},
		{name: "wrong return type", body: `return 42`},
		{name: "runtime error", body: `error("boom")`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := writeScript(t, "bad.lua", tc.body)
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != errors.CodeConfigInvalidScenario {
				t.Fatalf("code = %s, want %s", got, errors.CodeConfigInvalidScenario)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.lua"))
	if got := errors.GetCode(err); got != errors.CodeConfigInvalidScenario {
		t.Fatalf("code = %s, want %s", got, errors.CodeConfigInvalidScenario)
	}
}
