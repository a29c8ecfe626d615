package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fastybox/forwarding/internal/repository"
)

type RateSource interface {
	ActiveShippingRates(ctx context.Context) ([]*repository.ShippingRate, error)
	ActiveCustomsRates(ctx context.Context) ([]*repository.CustomsRate, error)
}

// RateCache keeps the active rate tables in memory. Rates change through
// an administrative path outside this process, so a staleness window is
// acceptable; maxAge bounds it.
type RateCache struct {
	source RateSource
	maxAge time.Duration
	logger *zap.Logger

	mu       sync.RWMutex
	shipping []*repository.ShippingRate
	customs  []*repository.CustomsRate
	loadedAt time.Time
}

func NewRateCache(source RateSource, maxAge time.Duration, logger *zap.Logger) *RateCache {
	return &RateCache{
		source: source,
		maxAge: maxAge,
		logger: logger,
	}
}

func (c *RateCache) Refresh(ctx context.Context) error {
	shipping, err := c.source.ActiveShippingRates(ctx)
	if err != nil {
		return err
	}
	customs, err := c.source.ActiveCustomsRates(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.shipping = shipping
	c.customs = customs
	c.loadedAt = time.Now()
	c.mu.Unlock()

	c.logger.Debug("rate cache refreshed",
		zap.Int("shipping_rates", len(shipping)),
		zap.Int("customs_rates", len(customs)))
	return nil
}

// Rates returns both tables, refreshing first when stale. A failed
// refresh falls back to the previous snapshot; the calculator has its own
// defaults when even that is empty.
func (c *RateCache) Rates(ctx context.Context) ([]*repository.ShippingRate, []*repository.CustomsRate) {
	c.mu.RLock()
	stale := time.Since(c.loadedAt) > c.maxAge
	c.mu.RUnlock()

	if stale {
		if err := c.Refresh(ctx); err != nil {
			c.logger.Warn("rate cache refresh failed, serving previous snapshot", zap.Error(err))
		}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.shipping, c.customs
}
