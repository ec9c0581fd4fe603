// Package storage defines the persistence interfaces for session logs.
//
// The trainer keeps an audit-style log: sessions and their turns are written
// once and never updated or deleted. Implementations (e.g., SQLite) live in
// subpackages.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// SessionRecord captures one practice session.
type SessionRecord struct {
	ID           string
	ScenarioName string
	StartedAt    time.Time
}

// TurnRecord captures one committed turn within a session.
// Records are immutable once written; append is the only mutation.
type TurnRecord struct {
	SessionID string
	Seq       int
	Speaker   string
	Text      string
	CreatedAt time.Time
}

// TelemetryEvent captures one operational event for later review.
type TelemetryEvent struct {
	ID        string
	SessionID string
	Kind      string
	Detail    string
	Timestamp time.Time
}

// SessionStore persists session metadata records.
type SessionStore interface {
	PutSession(ctx context.Context, record SessionRecord) error
	GetSession(ctx context.Context, id string) (SessionRecord, error)
	ListSessions(ctx context.Context) ([]SessionRecord, error)
}

// TurnLog appends and replays the ordered turn log for a session.
type TurnLog interface {
	// AppendTurn writes one turn. It fails if (session, seq) already exists;
	// turns are never reordered or deleted.
	AppendTurn(ctx context.Context, record TurnRecord) error
	// ListTurns returns all committed turns for a session in seq order.
	ListTurns(ctx context.Context, sessionID string) ([]TurnRecord, error)
}

// TelemetryStore persists telemetry events.
type TelemetryStore interface {
	AppendTelemetryEvent(ctx context.Context, event TelemetryEvent) error
}
