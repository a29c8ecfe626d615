package repository

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TaskStatus string

const (
	TaskStatusCreated    TaskStatus = "CREATED"
	TaskStatusProcessing TaskStatus = "PROCESSING"
	TaskStatusFailed     TaskStatus = "FAILED"
	TaskStatusDone       TaskStatus = "DONE"
)

type OutboxTask struct {
	ID          uuid.UUID       `db:"id"`
	Status      TaskStatus      `db:"status"`
	Payload     json.RawMessage `db:"payload"`
	Topic       string          `db:"topic"`
	Attempts    int             `db:"attempts"`
	LastError   *string         `db:"last_error"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
	CompletedAt *time.Time      `db:"completed_at"`
}

// NotificationPayload is the JSON body handed to the notification topic.
// The consumer side turns these into customer emails.
type NotificationPayload struct {
	Event        string           `json:"event"`
	RequestID    int64            `json:"request_id"`
	TrackingCode string           `json:"tracking_code,omitempty"`
	UserID       string           `json:"user_id,omitempty"`
	Status       RequestStatus    `json:"status,omitempty"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	Notes        string           `json:"notes,omitempty"`
	OccurredAt   time.Time        `json:"occurred_at"`
}
