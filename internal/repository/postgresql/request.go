package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/shopspring/decimal"

	"github.com/fastybox/forwarding/internal/db"
	"github.com/fastybox/forwarding/internal/repository"
)

// ErrDuplicateTrackingCode is returned when an insert trips the unique
// index on tracking_code. Callers regenerate the code and retry.
var ErrDuplicateTrackingCode = errors.New("duplicate tracking code")

const pgUniqueViolation = "23505"

const requestColumns = `
        r.id, r.user_id, r.tracking_code, r.status, r.notes,
        r.shipping_address_id, r.estimated_total, r.final_total,
        r.original_carrier, r.original_tracking_number,
        r.created_at, r.created_by, r.modified_at, r.modified_by,
        r.deleted_at, r.deleted_by,
        COALESCE((
            SELECT SUM(p.amount) FROM payments p
            WHERE p.forward_request_id = r.id AND p.status = 'succeeded'
        ), 0) AS total_paid`

type RequestRepo struct {
	db db.DB
}

func NewRequestRepo(db db.DB) *RequestRepo {
	return &RequestRepo{db: db}
}

func (r *RequestRepo) CreateTx(ctx context.Context, tx db.Tx, req *repository.ForwardRequest) error {
	err := tx.ExecQueryRow(ctx, `
        INSERT INTO forward_requests (
            user_id, tracking_code, status, notes, shipping_address_id,
            estimated_total, final_total, original_carrier, original_tracking_number,
            created_at, created_by
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id
    `, req.UserID, req.TrackingCode, req.Status, req.Notes, req.ShippingAddressID,
		req.EstimatedTotal, req.FinalTotal, req.OriginalCarrier, req.OriginalTrackingNumber,
		req.CreatedAt, req.CreatedBy).Scan(&req.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateTrackingCode
		}
		return fmt.Errorf("insert forward request: %w", err)
	}
	return nil
}

func (r *RequestRepo) GetByID(ctx context.Context, id int64) (*repository.ForwardRequest, error) {
	var req repository.ForwardRequest
	err := r.db.Get(ctx, &req, `
        SELECT`+requestColumns+`
        FROM forward_requests r
        WHERE r.id = $1 AND r.deleted_at IS NULL
    `, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &req, nil
}

// GetByIDTx locks the request row for the duration of the transaction so
// that concurrent item mutations and status changes on the same request
// serialize instead of racing.
func (r *RequestRepo) GetByIDTx(ctx context.Context, tx db.Tx, id int64) (*repository.ForwardRequest, error) {
	var req repository.ForwardRequest
	err := tx.Get(ctx, &req, `
        SELECT`+requestColumns+`
        FROM forward_requests r
        WHERE r.id = $1 AND r.deleted_at IS NULL
        FOR UPDATE OF r
    `, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepo) TrackingCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.ExecQueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM forward_requests WHERE tracking_code = $1)", code,
	).Scan(&exists)
	return exists, err
}

func (r *RequestRepo) UpdateTx(ctx context.Context, tx db.Tx, req *repository.ForwardRequest) error {
	tag, err := tx.Exec(ctx, `
        UPDATE forward_requests
        SET
            status = $1,
            notes = $2,
            shipping_address_id = $3,
            estimated_total = $4,
            final_total = $5,
            original_carrier = $6,
            original_tracking_number = $7,
            modified_at = $8,
            modified_by = $9
        WHERE id = $10 AND deleted_at IS NULL
    `, req.Status, req.Notes, req.ShippingAddressID, req.EstimatedTotal, req.FinalTotal,
		req.OriginalCarrier, req.OriginalTrackingNumber, req.ModifiedAt, req.ModifiedBy, req.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *RequestRepo) SetEstimatedTotalTx(ctx context.Context, tx db.Tx, id int64, total decimal.Decimal, actor string) error {
	tag, err := tx.Exec(ctx, `
        UPDATE forward_requests
        SET estimated_total = $1, modified_at = $2, modified_by = $3
        WHERE id = $4 AND deleted_at IS NULL
    `, total, time.Now().UTC(), actor, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *RequestRepo) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*repository.ForwardRequest, error) {
	var reqs []*repository.ForwardRequest
	err := r.db.Select(ctx, &reqs, `
        SELECT`+requestColumns+`
        FROM forward_requests r
        WHERE r.user_id = $1 AND r.deleted_at IS NULL
        ORDER BY r.created_at DESC
        LIMIT $2 OFFSET $3
    `, userID, pageSize, (page-1)*pageSize)
	return reqs, err
}

func (r *RequestRepo) List(ctx context.Context, page, pageSize int, status *repository.RequestStatus) ([]*repository.ForwardRequest, error) {
	query := `
        SELECT` + requestColumns + `
        FROM forward_requests r
        WHERE r.deleted_at IS NULL`
	args := []interface{}{}

	if status != nil {
		query += " AND r.status = $1"
		args = append(args, *status)
	}

	query += fmt.Sprintf(" ORDER BY r.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, pageSize, (page-1)*pageSize)

	var reqs []*repository.ForwardRequest
	err := r.db.Select(ctx, &reqs, query, args...)
	return reqs, err
}

func (r *RequestRepo) SoftDeleteTx(ctx context.Context, tx db.Tx, id int64, actor string, at time.Time) error {
	tag, err := tx.Exec(ctx, `
        UPDATE forward_requests
        SET deleted_at = $1, deleted_by = $2
        WHERE id = $3 AND deleted_at IS NULL
    `, at, actor, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}
