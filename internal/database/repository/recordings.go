package repository

import (
	"context"
	"database/sql"
)

// RecordingRepo handles recordings.
type RecordingRepo struct{ db *sql.DB }

func NewRecordingRepo(db *sql.DB) *RecordingRepo { return &RecordingRepo{db: db} }

func (r *RecordingRepo) Create(ctx context.Context, rec Recording) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO recordings(id, label, created_at) VALUES (?, ?, ?)
	`, rec.ID, rec.Label, rec.CreatedAt)
	return err
}

func (r *RecordingRepo) Get(ctx context.Context, id string) (*Recording, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, label, created_at FROM recordings WHERE id = ?`, id)
	var rec Recording
	if err := row.Scan(&rec.ID, &rec.Label, &rec.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// List returns recordings newest first.
func (r *RecordingRepo) List(ctx context.Context) ([]Recording, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, label, created_at FROM recordings ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Recording
	for rows.Next() {
		var rec Recording
		if err := rows.Scan(&rec.ID, &rec.Label, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *RecordingRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM recordings WHERE id = ?`, id)
	return err
}
