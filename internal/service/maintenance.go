package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/draggable/internal/database"
)

// MaintenanceService houses destructive journal actions surfaced through the CLI.
type MaintenanceService struct {
	DB *sql.DB
}

// Reset wipes every recording. It keeps the schema intact.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	if err := database.WithTx(s.DB, func(tx *sql.Tx) error {
		for _, t := range []string{"input_events", "recordings"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("reset table %s: %w", t, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	return nil
}

// Prune keeps the newest keep recordings and deletes the rest. It returns the
// number of recordings removed.
func (s *MaintenanceService) Prune(ctx context.Context, keep int) (int, error) {
	if s.DB == nil {
		return 0, fmt.Errorf("maintenance: db not configured")
	}
	if keep < 0 {
		return 0, fmt.Errorf("maintenance: keep must be >= 0, got %d", keep)
	}
	var removed int64
	err := database.WithTx(s.DB, func(tx *sql.Tx) error {
		stale := `SELECT id FROM recordings ORDER BY created_at DESC, id LIMIT -1 OFFSET ?`
		if _, err := tx.ExecContext(ctx, `DELETE FROM input_events WHERE recording_id IN (`+stale+`)`, keep); err != nil {
			return fmt.Errorf("prune events: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM recordings WHERE id IN (`+stale+`)`, keep)
		if err != nil {
			return fmt.Errorf("prune recordings: %w", err)
		}
		removed, err = res.RowsAffected()
		return err
	})
	return int(removed), err
}
