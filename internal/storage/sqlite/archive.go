package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/andrzm/docchat/internal/core"
	"github.com/andrzm/docchat/pkg/log"
)

// ArchiveRepo persists completed turns to the interactions table. It backs
// the CSV logbook with a queryable copy; both are written best-effort.
type ArchiveRepo struct {
	db *sql.DB
}

func NewArchiveRepo(db *sql.DB) *ArchiveRepo {
	return &ArchiveRepo{db: db}
}

func (r *ArchiveRepo) Record(ctx context.Context, it core.Interaction) error {
	query := `INSERT INTO interactions (created_at, user_id, session_id, user_input, answer, history)
	          VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		it.Timestamp.UTC(), it.UserID, it.SessionID, it.UserInput, it.Answer, it.History)
	if err != nil {
		return fmt.Errorf("failed to insert interaction: %w", err)
	}
	return nil
}

func (r *ArchiveRepo) ListBySession(ctx context.Context, sessionID string, limit int) ([]core.Interaction, error) {
	query := `SELECT id, created_at, user_id, session_id, user_input, answer, history
	          FROM interactions WHERE session_id = ? ORDER BY id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query interactions: %w", err)
	}
	defer rows.Close()

	var records []core.Interaction
	for rows.Next() {
		var it core.Interaction
		if err := rows.Scan(&it.ID, &it.Timestamp, &it.UserID, &it.SessionID,
			&it.UserInput, &it.Answer, &it.History); err != nil {
			return nil, fmt.Errorf("failed to scan interaction: %w", err)
		}
		records = append(records, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// The query returned newest-first; flip back to chronological order.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	log.FromCtx(ctx).Debug().Int("count", len(records)).Msg("loaded archived interactions")
	return records, nil
}
