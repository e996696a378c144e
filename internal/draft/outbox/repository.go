package outbox

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

// Repository reads and marks outbox rows for the drain worker. Rows are
// inserted by the pick recorder inside its own transaction.
type Repository struct {
	sqlDB *sql.DB
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{sqlDB: sqlDB}
}

const fetchUnsentSQL = `
SELECT id, event_type, payload, created_at
FROM draft_outbox
WHERE sent_at IS NULL
ORDER BY created_at
LIMIT $1`

func (r *Repository) FetchUnsent(ctx context.Context, limit int32) ([]OutboxEvent, error) {
	rows, err := r.sqlDB.QueryContext(ctx, fetchUnsentSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unsent outbox events: %w", err)
	}
	defer rows.Close()

	var events []OutboxEvent
	for rows.Next() {
		var e OutboxEvent
		var payload pqtype.NullRawMessage
		if err := rows.Scan(&e.ID, &e.EventType, &payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan outbox event: %w", err)
		}
		if payload.Valid {
			e.Payload = payload.RawMessage
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

const markSentSQL = `
UPDATE draft_outbox
SET sent_at = NOW()
WHERE id = $1 AND sent_at IS NULL`

func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID) error {
	if _, err := r.sqlDB.ExecContext(ctx, markSentSQL, id); err != nil {
		return fmt.Errorf("failed to mark outbox event as sent: %w", err)
	}
	return nil
}
