package postgresql

import (
	"context"

	"github.com/fastybox/forwarding/internal/db"
	"github.com/fastybox/forwarding/internal/repository"
)

type RateRepo struct {
	db db.DB
}

func NewRateRepo(db db.DB) *RateRepo {
	return &RateRepo{db: db}
}

func (r *RateRepo) ActiveShippingRates(ctx context.Context) ([]*repository.ShippingRate, error) {
	var rates []*repository.ShippingRate
	err := r.db.Select(ctx, &rates, `
        SELECT * FROM shipping_rates
        WHERE is_active
        ORDER BY min_weight ASC
    `)
	return rates, err
}

func (r *RateRepo) ActiveCustomsRates(ctx context.Context) ([]*repository.CustomsRate, error) {
	var rates []*repository.CustomsRate
	err := r.db.Select(ctx, &rates, `
        SELECT * FROM customs_rates
        WHERE is_active
        ORDER BY category ASC
    `)
	return rates, err
}
