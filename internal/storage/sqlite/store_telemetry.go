package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/gmtrainer/internal/storage"
)

// AppendTelemetryEvent persists one telemetry event row.
func (s *Store) AppendTelemetryEvent(ctx context.Context, event storage.TelemetryEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	event.ID = strings.TrimSpace(event.ID)
	if event.ID == "" {
		return fmt.Errorf("telemetry event id is required")
	}
	event.Kind = strings.TrimSpace(event.Kind)
	if event.Kind == "" {
		return fmt.Errorf("telemetry event kind is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO telemetry_events (id, session_id, kind, detail, timestamp)
VALUES (?, ?, ?, ?, ?)`,
		event.ID,
		event.SessionID,
		event.Kind,
		event.Detail,
		toMillis(event.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("insert telemetry event: %w", err)
	}
	return nil
}
