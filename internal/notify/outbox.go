// Package notify hands domain events to the notification pipeline. The
// hand-off is an outbox row written inside the triggering transaction; a
// background publisher drains rows to the broker, so slow or broken
// delivery never touches the caller.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fastybox/forwarding/internal/db"
	"github.com/fastybox/forwarding/internal/repository"
)

const (
	EventRequestCreated   = "request_created"
	EventStatusChanged    = "status_changed"
	EventPaymentConfirmed = "payment_confirmed"
)

const DefaultTopic = "forwarding_notifications"

type OutboxRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, task *repository.OutboxTask) error
}

type Outbox struct {
	repo  OutboxRepository
	topic string
}

func NewOutbox(repo OutboxRepository, topic string) *Outbox {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Outbox{repo: repo, topic: topic}
}

func (o *Outbox) RequestCreated(ctx context.Context, tx db.Tx, req *repository.ForwardRequest) error {
	return o.enqueue(ctx, tx, repository.NotificationPayload{
		Event:        EventRequestCreated,
		RequestID:    req.ID,
		TrackingCode: req.TrackingCode,
		UserID:       req.UserID,
		Status:       req.Status,
		OccurredAt:   time.Now().UTC(),
	})
}

func (o *Outbox) StatusChanged(ctx context.Context, tx db.Tx, req *repository.ForwardRequest, notes string) error {
	return o.enqueue(ctx, tx, repository.NotificationPayload{
		Event:        EventStatusChanged,
		RequestID:    req.ID,
		TrackingCode: req.TrackingCode,
		UserID:       req.UserID,
		Status:       req.Status,
		Notes:        notes,
		OccurredAt:   time.Now().UTC(),
	})
}

func (o *Outbox) PaymentConfirmed(ctx context.Context, tx db.Tx, p *repository.Payment) error {
	amount := p.Amount
	return o.enqueue(ctx, tx, repository.NotificationPayload{
		Event:      EventPaymentConfirmed,
		RequestID:  p.ForwardRequestID,
		UserID:     p.UserID,
		Amount:     &amount,
		OccurredAt: time.Now().UTC(),
	})
}

func (o *Outbox) enqueue(ctx context.Context, tx db.Tx, payload repository.NotificationPayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}
	return o.repo.CreateTx(ctx, tx, &repository.OutboxTask{
		Payload: raw,
		Topic:   o.topic,
	})
}
