package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/gmtrainer/internal/storage"
)

// AppendTurn writes one turn row. Append is the only mutation the turn log
// supports; the (session_id, seq) primary key rejects duplicates so committed
// turns can never be reordered or overwritten.
func (s *Store) AppendTurn(ctx context.Context, record storage.TurnRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	normalized, err := normalizeTurnRecord(record)
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO turns (session_id, seq, speaker, text, created_at)
VALUES (?, ?, ?, ?, ?)`,
		normalized.SessionID,
		normalized.Seq,
		normalized.Speaker,
		normalized.Text,
		toMillis(normalized.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert turn: %w", err)
	}
	return nil
}

// ListTurns returns all committed turns for a session in seq order.
func (s *Store) ListTurns(ctx context.Context, sessionID string) ([]storage.TurnRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT session_id, seq, speaker, text, created_at
FROM turns WHERE session_id = ? ORDER BY seq`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query turns: %w", err)
	}
	defer rows.Close()

	var records []storage.TurnRecord
	for rows.Next() {
		var record storage.TurnRecord
		var createdAt int64
		if err := rows.Scan(&record.SessionID, &record.Seq, &record.Speaker, &record.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("scan turn row: %w", err)
		}
		record.CreatedAt = fromMillis(createdAt)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate turn rows: %w", err)
	}
	return records, nil
}

func normalizeTurnRecord(record storage.TurnRecord) (storage.TurnRecord, error) {
	record.SessionID = strings.TrimSpace(record.SessionID)
	if record.SessionID == "" {
		return storage.TurnRecord{}, fmt.Errorf("session id is required")
	}
	if record.Seq < 0 {
		return storage.TurnRecord{}, fmt.Errorf("turn seq must not be negative")
	}
	record.Speaker = strings.TrimSpace(record.Speaker)
	if record.Speaker == "" {
		return storage.TurnRecord{}, fmt.Errorf("turn speaker is required")
	}
	if record.Text == "" {
		return storage.TurnRecord{}, fmt.Errorf("turn text is required")
	}
	if record.CreatedAt.IsZero() {
		return storage.TurnRecord{}, fmt.Errorf("turn timestamp is required")
	}
	return record, nil
}
