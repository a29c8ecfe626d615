// Package payment bridges gateway-reported payment outcomes into the
// request lifecycle.
package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fastybox/forwarding/internal/db"
	"github.com/fastybox/forwarding/internal/forwarding"
	"github.com/fastybox/forwarding/internal/gateway"
	"github.com/fastybox/forwarding/internal/metrics"
	"github.com/fastybox/forwarding/internal/repository"
)

const DefaultGatewayTimeout = 5 * time.Second

type PaymentRepository interface {
	Create(ctx context.Context, p *repository.Payment) error
	GetByReferenceTx(ctx context.Context, tx db.Tx, ref string) (*repository.Payment, error)
	UpdateTx(ctx context.Context, tx db.Tx, p *repository.Payment) error
	SumSucceededTx(ctx context.Context, tx db.Tx, requestID int64) (decimal.Decimal, error)
	ListByRequest(ctx context.Context, requestID int64) ([]*repository.Payment, error)
}

type RequestRepository interface {
	GetByID(ctx context.Context, id int64) (*repository.ForwardRequest, error)
	GetByIDTx(ctx context.Context, tx db.Tx, id int64) (*repository.ForwardRequest, error)
}

// LifecycleAdvancer is the single status-write path owned by the
// forwarding service.
type LifecycleAdvancer interface {
	ApplyStatusTx(ctx context.Context, tx db.Tx, req *repository.ForwardRequest, status repository.RequestStatus, notes, actorID string) error
}

type Notifier interface {
	PaymentConfirmed(ctx context.Context, tx db.Tx, p *repository.Payment) error
}

type Service struct {
	db             db.DB
	payments       PaymentRepository
	requests       RequestRepository
	lifecycle      LifecycleAdvancer
	gateway        gateway.Gateway
	notifier       Notifier
	gatewayTimeout time.Duration
	currency       string
	logger         *zap.Logger
}

type Deps struct {
	DB             db.DB
	Payments       PaymentRepository
	Requests       RequestRepository
	Lifecycle      LifecycleAdvancer
	Gateway        gateway.Gateway
	Notifier       Notifier
	GatewayTimeout time.Duration
	Currency       string
	Logger         *zap.Logger
}

func NewService(d Deps) *Service {
	if d.GatewayTimeout <= 0 {
		d.GatewayTimeout = DefaultGatewayTimeout
	}
	if d.Currency == "" {
		d.Currency = "usd"
	}
	return &Service{
		db:             d.DB,
		payments:       d.Payments,
		requests:       d.Requests,
		lifecycle:      d.Lifecycle,
		gateway:        d.Gateway,
		notifier:       d.Notifier,
		gatewayTimeout: d.GatewayTimeout,
		currency:       d.Currency,
		logger:         d.Logger,
	}
}

// Checkout is what the caller needs to send the payer to the processor.
type Checkout struct {
	Payment     *repository.Payment
	RedirectURL string
}

// InitiateCheckout opens a gateway session and records the Pending
// payment carrying its reference. This is the only place a payment row
// is created; status changes afterwards come exclusively from gateway
// events.
func (s *Service) InitiateCheckout(ctx context.Context, requestID int64, amount decimal.Decimal, typ repository.PaymentType, payerID string) (*Checkout, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", forwarding.ErrValidation)
	}
	switch typ {
	case repository.PaymentTypeInitial, repository.PaymentTypeAdditional, repository.PaymentTypeComplete:
	default:
		return nil, fmt.Errorf("%w: unknown payment type %q", forwarding.ErrValidation, typ)
	}

	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, forwarding.ErrNotFound
		}
		return nil, err
	}
	if req.UserID != payerID {
		return nil, forwarding.ErrNotFound
	}

	description := fmt.Sprintf("Payment for shipment #%s (%s)", req.TrackingCode, typ)

	gwCtx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
	defer cancel()

	session, err := s.gateway.CreateCheckoutSession(gwCtx, gateway.CheckoutParams{
		RequestID:    requestID,
		TrackingCode: req.TrackingCode,
		UserID:       payerID,
		Amount:       amount,
		Currency:     s.currency,
		Description:  description,
		PaymentType:  string(typ),
	})
	if err != nil {
		// The caller needs to know checkout never started.
		return nil, fmt.Errorf("%w: create checkout session: %v", forwarding.ErrExternal, err)
	}

	method := "Stripe"
	p := &repository.Payment{
		ForwardRequestID: requestID,
		UserID:           payerID,
		Amount:           amount,
		Status:           repository.PaymentPending,
		Type:             typ,
		TransactionID:    session.ID,
		PaymentMethod:    &method,
		Notes:            &description,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("record pending payment: %w", err)
	}

	return &Checkout{Payment: p, RedirectURL: session.RedirectURL}, nil
}

// RecordGatewayOutcome applies a webhook-reported outcome. The payment is
// looked up by the session reference first and the intent reference
// second; the gateway reports the same payment under either id depending
// on event type. Safe under duplicate delivery: re-applying the same
// outcome changes nothing and the automatic transitions are guarded by
// the request's current status.
func (s *Service) RecordGatewayOutcome(ctx context.Context, sessionRef, intentRef string, outcome repository.PaymentStatus) (*repository.Payment, error) {
	var result *repository.Payment

	err := db.InTx(ctx, s.db, func(tx db.Tx) error {
		p, err := s.lookupTx(ctx, tx, sessionRef, intentRef)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		actor := forwarding.SystemActor
		p.Status = outcome
		p.ModifiedAt = &now
		p.ModifiedBy = &actor
		if outcome == repository.PaymentSucceeded && intentRef != "" {
			p.IntentID = &intentRef
		}

		if err := s.payments.UpdateTx(ctx, tx, p); err != nil {
			return fmt.Errorf("update payment: %w", err)
		}

		if outcome == repository.PaymentSucceeded {
			if err := s.advanceLifecycleTx(ctx, tx, p); err != nil {
				return err
			}
			if err := s.notifier.PaymentConfirmed(ctx, tx, p); err != nil {
				s.logger.Warn("failed to enqueue payment confirmation",
					zap.Int64("payment_id", p.ID), zap.Error(err))
			}
		}

		result = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch outcome {
	case repository.PaymentSucceeded:
		metrics.PaymentsSucceededTotal.Inc()
	case repository.PaymentFailed:
		metrics.PaymentsFailedTotal.Inc()
	}

	return result, nil
}

// UpdatePaymentStatus handles intent-only gateway events that carry no
// session reference.
func (s *Service) UpdatePaymentStatus(ctx context.Context, ref string, status repository.PaymentStatus) (*repository.Payment, error) {
	return s.RecordGatewayOutcome(ctx, ref, "", status)
}

func (s *Service) PaymentsForRequest(ctx context.Context, requestID int64) ([]*repository.Payment, error) {
	return s.payments.ListByRequest(ctx, requestID)
}

func (s *Service) lookupTx(ctx context.Context, tx db.Tx, sessionRef, intentRef string) (*repository.Payment, error) {
	if sessionRef != "" {
		p, err := s.payments.GetByReferenceTx(ctx, tx, sessionRef)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, repository.ErrObjectNotFound) {
			return nil, err
		}
	}
	if intentRef != "" {
		p, err := s.payments.GetByReferenceTx(ctx, tx, intentRef)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, repository.ErrObjectNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: no payment for session %q or intent %q",
		forwarding.ErrNotFound, sessionRef, intentRef)
}

// advanceLifecycleTx performs the two payment-driven transitions. All
// other progression is staff-driven.
func (s *Service) advanceLifecycleTx(ctx context.Context, tx db.Tx, p *repository.Payment) error {
	req, err := s.requests.GetByIDTx(ctx, tx, p.ForwardRequestID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			// Payment outlives a deleted request; keep the money trail,
			// skip the transition.
			s.logger.Warn("payment references missing request",
				zap.Int64("payment_id", p.ID),
				zap.Int64("request_id", p.ForwardRequestID))
			return nil
		}
		return err
	}

	switch {
	case p.Type == repository.PaymentTypeInitial && req.Status == repository.StatusDraft:
		return s.lifecycle.ApplyStatusTx(ctx, tx, req,
			repository.StatusAwaitingArrival, "Initial payment received", forwarding.SystemActor)

	case (p.Type == repository.PaymentTypeAdditional || p.Type == repository.PaymentTypeComplete) &&
		req.Status == repository.StatusAwaitingPayment:
		totalPaid, err := s.payments.SumSucceededTx(ctx, tx, req.ID)
		if err != nil {
			return fmt.Errorf("sum succeeded payments: %w", err)
		}
		if req.FinalTotal.IsPositive() && totalPaid.GreaterThanOrEqual(req.FinalTotal) {
			return s.lifecycle.ApplyStatusTx(ctx, tx, req,
				repository.StatusProcessing, "Automatically moved to processing after payment completed", forwarding.SystemActor)
		}
	}
	return nil
}
