package scenario

import (
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"

	"github.com/louisbranch/gmtrainer/internal/errors"
	"github.com/louisbranch/gmtrainer/internal/game"
)

const scenarioTypeName = "scenario"

// Load runs a Lua scenario script and returns the scenario it builds.
//
// Scripts call the Scenario constructor, seat players, and return the
// scenario userdata:
//
//	local s = Scenario.new("ruined chapel", [[You stand before...]])
//	s:player("Carol", "Mira", "cleric", 4, {"Bless", "Sanctuary"})
//	return s
//
// A script that seats no players gets the stock roster.
func Load(path string) (*Scenario, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	registerScenarioType(state)
	registerScenarioConstructor(state)

	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, errors.Wrap(errors.CodeConfigInvalidScenario, "load scenario script", err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, errors.Wrap(errors.CodeConfigInvalidScenario, "run scenario script", err)
	}

	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, errors.New(errors.CodeConfigInvalidScenario, "scenario script must return a Scenario")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	scenario, ok := ud.(*Scenario)
	if !ok || scenario == nil {
		return nil, errors.New(errors.CodeConfigInvalidScenario, "scenario script returned invalid Scenario")
	}

	if strings.TrimSpace(scenario.Narration) == "" {
		return nil, errors.New(errors.CodeConfigInvalidScenario, "scenario narration is required")
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if len(scenario.Roster) == 0 {
		scenario.Roster = game.DefaultRoster()
	}
	return scenario, nil
}

func registerScenarioType(state *lua.State) {
	lua.NewMetaTable(state, scenarioTypeName)
	state.NewTable()
	lua.SetFunctions(state, scenarioMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func registerScenarioConstructor(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, scenarioConstructor, 0)
	state.SetGlobal("Scenario")
}

var scenarioConstructor = []lua.RegistryFunction{
	{Name: "new", Function: scenarioNew},
}

var scenarioMethods = []lua.RegistryFunction{
	{Name: "player", Function: scenarioPlayer},
}

func scenarioNew(state *lua.State) int {
	name := lua.OptString(state, 1, "")
	narration := lua.CheckString(state, 2)
	scenario := &Scenario{Name: name, Narration: narration}
	state.PushUserData(scenario)
	lua.SetMetaTableNamed(state, scenarioTypeName)
	return 1
}

// scenarioPlayer seats one player:
// s:player(player_name, character_name, class, level, {spells...})
func scenarioPlayer(state *lua.State) int {
	scenario := checkScenario(state)
	playerName := lua.CheckString(state, 2)
	characterName := lua.CheckString(state, 3)
	class := lua.CheckString(state, 4)
	level := lua.CheckInteger(state, 5)
	spells := optionalStrings(state, 6)

	scenario.Roster = append(scenario.Roster, game.NewPlayer(playerName, game.Character{
		Name:   characterName,
		Class:  class,
		Level:  level,
		Spells: spells,
	}))
	return 0
}

func checkScenario(state *lua.State) *Scenario {
	ud := lua.CheckUserData(state, 1, scenarioTypeName)
	if scenario, ok := ud.(*Scenario); ok && scenario != nil {
		return scenario
	}
	lua.ArgumentError(state, 1, "scenario expected")
	return nil
}

func optionalStrings(state *lua.State, index int) []string {
	if state.IsNoneOrNil(index) || state.TypeOf(index) != lua.TypeTable {
		return nil
	}
	index = state.AbsIndex(index)
	var out []string
	for i := 1; ; i++ {
		state.RawGetInt(index, i)
		if state.TypeOf(-1) == lua.TypeNil {
			state.Pop(1)
			break
		}
		if value, ok := state.ToString(-1); ok {
			out = append(out, value)
		}
		state.Pop(1)
	}
	return out
}
