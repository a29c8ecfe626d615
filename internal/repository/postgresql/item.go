package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"

	"github.com/fastybox/forwarding/internal/db"
	"github.com/fastybox/forwarding/internal/repository"
)

type ItemRepo struct {
	db db.DB
}

func NewItemRepo(db db.DB) *ItemRepo {
	return &ItemRepo{db: db}
}

func (r *ItemRepo) CreateTx(ctx context.Context, tx db.Tx, item *repository.ForwardItem) error {
	return tx.ExecQueryRow(ctx, `
        INSERT INTO forward_items (
            forward_request_id, name, url, vendor,
            declared_weight, declared_length, declared_width, declared_height,
            actual_weight, actual_length, actual_width, actual_height,
            declared_value, notes, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
        RETURNING id
    `, item.ForwardRequestID, item.Name, item.URL, item.Vendor,
		item.DeclaredWeight, item.DeclaredLength, item.DeclaredWidth, item.DeclaredHeight,
		item.ActualWeight, item.ActualLength, item.ActualWidth, item.ActualHeight,
		item.DeclaredValue, item.Notes, item.CreatedAt).Scan(&item.ID)
}

func (r *ItemRepo) GetByIDTx(ctx context.Context, tx db.Tx, requestID, itemID int64) (*repository.ForwardItem, error) {
	var item repository.ForwardItem
	err := tx.Get(ctx, &item, `
        SELECT * FROM forward_items
        WHERE id = $1 AND forward_request_id = $2 AND deleted_at IS NULL
    `, itemID, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *ItemRepo) ListByRequest(ctx context.Context, requestID int64) ([]*repository.ForwardItem, error) {
	var items []*repository.ForwardItem
	err := r.db.Select(ctx, &items, `
        SELECT * FROM forward_items
        WHERE forward_request_id = $1 AND deleted_at IS NULL
        ORDER BY id ASC
    `, requestID)
	return items, err
}

func (r *ItemRepo) ListByRequestTx(ctx context.Context, tx db.Tx, requestID int64) ([]*repository.ForwardItem, error) {
	var items []*repository.ForwardItem
	err := tx.Select(ctx, &items, `
        SELECT * FROM forward_items
        WHERE forward_request_id = $1 AND deleted_at IS NULL
        ORDER BY id ASC
    `, requestID)
	return items, err
}

func (r *ItemRepo) SoftDeleteTx(ctx context.Context, tx db.Tx, itemID int64, at time.Time) error {
	tag, err := tx.Exec(ctx, `
        UPDATE forward_items SET deleted_at = $1
        WHERE id = $2 AND deleted_at IS NULL
    `, at, itemID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *ItemRepo) SoftDeleteByRequestTx(ctx context.Context, tx db.Tx, requestID int64, at time.Time) error {
	_, err := tx.Exec(ctx, `
        UPDATE forward_items SET deleted_at = $1
        WHERE forward_request_id = $2 AND deleted_at IS NULL
    `, at, requestID)
	return err
}
