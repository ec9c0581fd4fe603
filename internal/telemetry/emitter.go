// Package telemetry records operational events to the session log store.
package telemetry

import (
	"context"
	"time"

	"github.com/louisbranch/gmtrainer/internal/platform/id"
	"github.com/louisbranch/gmtrainer/internal/storage"
)

// Event kinds emitted by the turn orchestrator.
const (
	KindSessionStarted  = "session.started"
	KindTurnCommitted   = "turn.committed"
	KindProviderFailure = "provider.failure"
)

// Emitter records operational telemetry events.
type Emitter struct {
	store storage.TelemetryStore
	clock func() time.Time
}

// NewEmitter creates a new telemetry emitter.
func NewEmitter(store storage.TelemetryStore) *Emitter {
	return &Emitter{store: store, clock: time.Now}
}

// Emit records a telemetry event. It is a no-op when the store is nil.
// Missing ids and timestamps are filled in.
func (e *Emitter) Emit(ctx context.Context, evt storage.TelemetryEvent) error {
	if e == nil || e.store == nil {
		return nil
	}
	if evt.ID == "" {
		generated, err := id.NewID()
		if err != nil {
			return err
		}
		evt.ID = generated
	}
	if evt.Timestamp.IsZero() {
		if e.clock == nil {
			evt.Timestamp = time.Now().UTC()
		} else {
			evt.Timestamp = e.clock().UTC()
		}
	}
	return e.store.AppendTelemetryEvent(ctx, evt)
}
