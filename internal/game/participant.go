package game

// SpeakerGM labels turns entered by the human Game Master.
const SpeakerGM = "GM"

// Participant is one seat at the table. The zero PlayerName marks the GM
// seat; every other participant is an LLM-simulated player with a character.
type Participant struct {
	PlayerName string
	Character  Character
}

// GM returns the Game Master participant.
func GM() Participant {
	return Participant{}
}

// NewPlayer returns a simulated player participant.
func NewPlayer(playerName string, pc Character) Participant {
	return Participant{PlayerName: playerName, Character: pc}
}

// IsGM reports whether the participant is the Game Master seat.
func (p Participant) IsGM() bool {
	return p.PlayerName == ""
}

// Speaker returns the label turns by this participant carry in the log.
// Players speak as their character, not as themselves.
func (p Participant) Speaker() string {
	if p.IsGM() {
		return SpeakerGM
	}
	return p.Character.Name
}

// DefaultRoster returns the stock table: Alice playing Arvak and Bob
// playing Bolzar.
func DefaultRoster() []Participant {
	return []Participant{
		NewPlayer("Alice", Character{Name: "Arvak", Class: "fighter", Level: 2}),
		NewPlayer("Bob", Character{
			Name:   "Bolzar",
			Class:  "mage",
			Level:  3,
			Spells: []string{"Witchbolt", "Protective Aura", "Levitate", "Sleep"},
		}),
	}
}
