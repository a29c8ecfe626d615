package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/shopspring/decimal"

	"github.com/fastybox/forwarding/internal/db"
	"github.com/fastybox/forwarding/internal/repository"
)

type PaymentRepo struct {
	db db.DB
}

func NewPaymentRepo(db db.DB) *PaymentRepo {
	return &PaymentRepo{db: db}
}

func (r *PaymentRepo) Create(ctx context.Context, p *repository.Payment) error {
	return r.db.ExecQueryRow(ctx, `
        INSERT INTO payments (
            forward_request_id, user_id, amount, status, type,
            transaction_id, intent_id, payment_method, notes, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id
    `, p.ForwardRequestID, p.UserID, p.Amount, p.Status, p.Type,
		p.TransactionID, p.IntentID, p.PaymentMethod, p.Notes, p.CreatedAt).Scan(&p.ID)
}

// GetByReferenceTx matches either the checkout session reference or the
// gateway intent reference. The gateway reports the same payment under
// both ids depending on event type.
func (r *PaymentRepo) GetByReferenceTx(ctx context.Context, tx db.Tx, ref string) (*repository.Payment, error) {
	var p repository.Payment
	err := tx.Get(ctx, &p, `
        SELECT * FROM payments
        WHERE transaction_id = $1 OR intent_id = $1
        FOR UPDATE
    `, ref)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepo) UpdateTx(ctx context.Context, tx db.Tx, p *repository.Payment) error {
	tag, err := tx.Exec(ctx, `
        UPDATE payments
        SET
            status = $1,
            transaction_id = $2,
            intent_id = $3,
            notes = $4,
            modified_at = $5,
            modified_by = $6
        WHERE id = $7
    `, p.Status, p.TransactionID, p.IntentID, p.Notes, p.ModifiedAt, p.ModifiedBy, p.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *PaymentRepo) SumSucceededTx(ctx context.Context, tx db.Tx, requestID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := tx.ExecQueryRow(ctx, `
        SELECT COALESCE(SUM(amount), 0) FROM payments
        WHERE forward_request_id = $1 AND status = 'succeeded'
    `, requestID).Scan(&total)
	return total, err
}

func (r *PaymentRepo) ListByRequest(ctx context.Context, requestID int64) ([]*repository.Payment, error) {
	var payments []*repository.Payment
	err := r.db.Select(ctx, &payments, `
        SELECT * FROM payments
        WHERE forward_request_id = $1
        ORDER BY created_at DESC
    `, requestID)
	return payments, err
}
