// Package gateway is the outbound payment-processor boundary. The core
// only needs a checkout session with an external reference; the wire
// protocol behind it stays out of the domain.
package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CheckoutParams struct {
	RequestID    int64
	TrackingCode string
	UserID       string
	Amount       decimal.Decimal
	Currency     string
	Description  string
	PaymentType  string
}

type Session struct {
	ID          string
	RedirectURL string
}

type Gateway interface {
	CreateCheckoutSession(ctx context.Context, p CheckoutParams) (*Session, error)
}

// StubGateway issues deterministic-looking session references without
// talking to a real processor. Used in development and tests; the webhook
// endpoint still exercises the full reconciliation path.
type StubGateway struct {
	logger *zap.Logger
}

func NewStubGateway(logger *zap.Logger) *StubGateway {
	return &StubGateway{logger: logger}
}

func (g *StubGateway) CreateCheckoutSession(ctx context.Context, p CheckoutParams) (*Session, error) {
	select {
	case <-time.After(50 * time.Millisecond):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	session := &Session{
		ID:          "cs_" + uuid.NewString(),
		RedirectURL: fmt.Sprintf("https://checkout.example.com/pay/%s", p.TrackingCode),
	}

	g.logger.Info("stub checkout session created",
		zap.String("session_id", session.ID),
		zap.Int64("request_id", p.RequestID),
		zap.String("amount", p.Amount.StringFixed(2)),
		zap.String("type", p.PaymentType))

	return session, nil
}
