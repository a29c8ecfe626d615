package postgresql

import (
	"context"

	"github.com/fastybox/forwarding/internal/db"
	"github.com/fastybox/forwarding/internal/repository"
)

type HistoryRepo struct {
	db db.DB
}

func NewHistoryRepo(db db.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

func (r *HistoryRepo) CreateTx(ctx context.Context, tx db.Tx, entry *repository.StatusHistoryEntry) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO request_status_history (
            forward_request_id, status, notes, created_by, created_at
        ) VALUES ($1, $2, $3, $4, $5)
    `, entry.ForwardRequestID, entry.Status, entry.Notes, entry.CreatedBy, entry.CreatedAt)
	return err
}

// GetByRequestID returns entries in insertion order. The trailing id sort
// keeps entries written in the same millisecond stable.
func (r *HistoryRepo) GetByRequestID(ctx context.Context, requestID int64) ([]*repository.StatusHistoryEntry, error) {
	var entries []*repository.StatusHistoryEntry
	err := r.db.Select(ctx, &entries, `
        SELECT * FROM request_status_history
        WHERE forward_request_id = $1
        ORDER BY created_at ASC, id ASC
    `, requestID)
	return entries, err
}
