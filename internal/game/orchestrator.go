package game

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/gmtrainer/internal/errors"
	"github.com/louisbranch/gmtrainer/internal/llm"
	"github.com/louisbranch/gmtrainer/internal/storage"
	"github.com/louisbranch/gmtrainer/internal/telemetry"
)

// OrchestratorConfig wires the orchestrator's collaborators.
type OrchestratorConfig struct {
	Sessions  storage.SessionStore
	Turns     storage.TurnLog
	Telemetry *telemetry.Emitter
	Client    llm.Client
	// Roster is the seated players. Empty falls back to DefaultRoster.
	Roster []Participant
	Window Window
	// Clock overrides time.Now for deterministic tests.
	Clock func() time.Time
}

// Orchestrator advances practice sessions turn by turn. Every turn is
// persisted before it becomes part of the session; a failed turn leaves
// the session exactly where it was.
type Orchestrator struct {
	sessions  storage.SessionStore
	turns     storage.TurnLog
	telemetry *telemetry.Emitter
	client    llm.Client
	roster    []Participant
	window    Window
	now       func() time.Time
}

// NewOrchestrator builds an orchestrator from cfg.
func NewOrchestrator(cfg OrchestratorConfig) *Orchestrator {
	roster := cfg.Roster
	if len(roster) == 0 {
		roster = DefaultRoster()
	}
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	return &Orchestrator{
		sessions:  cfg.Sessions,
		turns:     cfg.Turns,
		telemetry: cfg.Telemetry,
		client:    cfg.Client,
		roster:    roster,
		window:    cfg.Window,
		now:       now,
	}
}

// Roster returns the seated players in acting order.
func (o *Orchestrator) Roster() []Participant {
	out := make([]Participant, len(o.roster))
	copy(out, o.roster)
	return out
}

// Begin creates a session for the named scenario and commits the opening
// narration as the GM's first turn.
func (o *Orchestrator) Begin(ctx context.Context, scenarioName, narration string) (*Session, error) {
	session, err := NewSession(scenarioName)
	if err != nil {
		return nil, err
	}
	record := storage.SessionRecord{
		ID:           session.ID,
		ScenarioName: scenarioName,
		StartedAt:    o.now().UTC(),
	}
	if err := o.sessions.PutSession(ctx, record); err != nil {
		return nil, errors.Wrap(errors.CodeStorageUnavailable, "create session", err)
	}
	o.emit(ctx, session.ID, telemetry.KindSessionStarted, scenarioName)

	if _, err := o.Advance(ctx, session, GM(), narration); err != nil {
		return nil, err
	}
	return session, nil
}

// Resume rebuilds a session and its committed turns from the store.
func (o *Orchestrator) Resume(ctx context.Context, sessionID string) (*Session, error) {
	record, err := o.sessions.GetSession(ctx, sessionID)
	if err != nil {
		if stderrors.Is(err, storage.ErrNotFound) {
			return nil, errors.Newf(errors.CodeNotFound, "session %s not found", sessionID)
		}
		return nil, errors.Wrap(errors.CodeStorageUnavailable, "load session", err)
	}
	records, err := o.turns.ListTurns(ctx, sessionID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeStorageUnavailable, "load turns", err)
	}
	session := &Session{ID: record.ID, ScenarioName: record.ScenarioName}
	for _, r := range records {
		session.Turns = append(session.Turns, Turn{
			SessionID: r.SessionID,
			Seq:       r.Seq,
			Speaker:   r.Speaker,
			Text:      r.Text,
			At:        r.CreatedAt,
		})
	}
	return session, nil
}

// Advance commits one turn. The GM seat records gmInput verbatim; a player
// seat builds its prompt from the committed turns and asks the LLM client.
// On any failure the session is unchanged and no turn is committed.
func (o *Orchestrator) Advance(ctx context.Context, session *Session, p Participant, gmInput string) (Turn, error) {
	if session == nil || session.ID == "" {
		return Turn{}, errors.New(errors.CodeSessionEmptyID, "session id is required")
	}

	var text string
	if p.IsGM() {
		text = strings.TrimSpace(gmInput)
		if text == "" {
			return Turn{}, fmt.Errorf("gm narration is required")
		}
	} else {
		if !o.seated(p) {
			return Turn{}, errors.Newf(errors.CodeParticipantNotFound, "player %s is not at the table", p.PlayerName)
		}
		res, err := o.client.Generate(ctx, llm.Request{
			System: systemPrompt(p, o.roster),
			Prompt: playerPrompt(session.Turns, o.window),
		})
		if err != nil {
			o.emit(ctx, session.ID, telemetry.KindProviderFailure, fmt.Sprintf("%s: %v", p.PlayerName, err))
			return Turn{}, err
		}
		text = res.Text
	}

	turn := Turn{
		SessionID: session.ID,
		Seq:       session.NextSeq(),
		Speaker:   p.Speaker(),
		Text:      text,
		At:        o.now().UTC(),
	}
	record := storage.TurnRecord{
		SessionID: turn.SessionID,
		Seq:       turn.Seq,
		Speaker:   turn.Speaker,
		Text:      turn.Text,
		CreatedAt: turn.At,
	}
	if err := o.turns.AppendTurn(ctx, record); err != nil {
		return Turn{}, errors.Wrap(errors.CodeStorageUnavailable, "append turn", err)
	}
	session.Turns = append(session.Turns, turn)
	o.emit(ctx, session.ID, telemetry.KindTurnCommitted, turn.Speaker)
	return turn, nil
}

// RunRound has every player act once in roster order. It returns the turns
// committed so far when a player fails mid-round; committed turns stay
// committed, the failed player's turn does not exist.
func (o *Orchestrator) RunRound(ctx context.Context, session *Session) ([]Turn, error) {
	turns := make([]Turn, 0, len(o.roster))
	for _, p := range o.roster {
		turn, err := o.Advance(ctx, session, p, "")
		if err != nil {
			return turns, err
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

func (o *Orchestrator) seated(p Participant) bool {
	for _, other := range o.roster {
		if other.PlayerName == p.PlayerName {
			return true
		}
	}
	return false
}

// emit is best effort; telemetry never blocks a turn.
func (o *Orchestrator) emit(ctx context.Context, sessionID, kind, detail string) {
	_ = o.telemetry.Emit(ctx, storage.TelemetryEvent{
		SessionID: sessionID,
		Kind:      kind,
		Detail:    detail,
	})
}
