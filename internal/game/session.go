package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Turn is one committed utterance in a session. Turns are immutable and
// strictly ordered by Seq.
type Turn struct {
	SessionID string
	Seq       int
	Speaker   string
	Text      string
	At        time.Time
}

// Line renders the turn the way prompts and transcripts show it.
func (t Turn) Line() string {
	return t.Speaker + ": " + t.Text
}

// Session is one practice run: an id, the scenario it plays, and the
// ordered turns committed so far. All derived state is replayed from Turns.
type Session struct {
	ID           string
	ScenarioName string
	Turns        []Turn
}

// NewSession creates a session with a time-ordered unique id.
func NewSession(scenarioName string) (*Session, error) {
	uid, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}
	return &Session{ID: uid.String(), ScenarioName: scenarioName}, nil
}

// NextSeq returns the sequence number the next committed turn takes.
func (s *Session) NextSeq() int {
	return len(s.Turns)
}
