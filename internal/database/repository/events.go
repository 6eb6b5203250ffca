package repository

import (
	"context"
	"database/sql"
)

// EventRepo handles journaled input events.
type EventRepo struct{ db *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

func (r *EventRepo) Append(ctx context.Context, ev InputEvent) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO input_events(recording_id, seq, kind, source, x, y, button, touches, at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, ev.RecordingID, ev.Seq, ev.Kind, ev.Source, ev.X, ev.Y, ev.Button, ev.Touches, ev.At)
	return err
}

// ListByRecording returns the events of a recording in seq order.
func (r *EventRepo) ListByRecording(ctx context.Context, recordingID string) ([]InputEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT recording_id, seq, kind, source, x, y, button, touches, at
	FROM input_events WHERE recording_id = ? ORDER BY seq ASC
	`, recordingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []InputEvent
	for rows.Next() {
		var ev InputEvent
		if err := rows.Scan(&ev.RecordingID, &ev.Seq, &ev.Kind, &ev.Source, &ev.X, &ev.Y, &ev.Button, &ev.Touches, &ev.At); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (r *EventRepo) Count(ctx context.Context, recordingID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM input_events WHERE recording_id = ?`, recordingID).Scan(&n)
	return n, err
}
