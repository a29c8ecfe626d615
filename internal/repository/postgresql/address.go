package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"github.com/fastybox/forwarding/internal/db"
	"github.com/fastybox/forwarding/internal/repository"
)

type AddressRepo struct {
	db db.DB
}

func NewAddressRepo(db db.DB) *AddressRepo {
	return &AddressRepo{db: db}
}

func (r *AddressRepo) GetByIDForUser(ctx context.Context, id int64, userID string) (*repository.Address, error) {
	var addr repository.Address
	err := r.db.Get(ctx, &addr, `
        SELECT * FROM addresses
        WHERE id = $1 AND user_id = $2
    `, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &addr, nil
}
