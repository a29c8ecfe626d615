package repository

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrObjectNotFound = errors.New("not found")

type RequestStatus string

const (
	StatusDraft               RequestStatus = "draft"
	StatusAwaitingArrival     RequestStatus = "awaiting_arrival"
	StatusReceivedInWarehouse RequestStatus = "received_in_warehouse"
	StatusInReview            RequestStatus = "in_review"
	StatusDocumentsRequired   RequestStatus = "documents_required"
	StatusAwaitingPayment     RequestStatus = "awaiting_payment"
	StatusProcessing          RequestStatus = "processing"
	StatusInTransitToMexico   RequestStatus = "in_transit_to_mexico"
	StatusDelivered           RequestStatus = "delivered"
	StatusCancelled           RequestStatus = "cancelled"
)

// IsTerminal reports whether no further transitions are expected.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

func (s RequestStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusAwaitingArrival, StatusReceivedInWarehouse,
		StatusInReview, StatusDocumentsRequired, StatusAwaitingPayment,
		StatusProcessing, StatusInTransitToMexico, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentSucceeded  PaymentStatus = "succeeded"
	PaymentFailed     PaymentStatus = "failed"
	PaymentRefunded   PaymentStatus = "refunded"
)

type PaymentType string

const (
	PaymentTypeInitial    PaymentType = "initial"
	PaymentTypeAdditional PaymentType = "additional"
	PaymentTypeComplete   PaymentType = "complete"
)

type ForwardRequest struct {
	ID                     int64           `db:"id"`
	UserID                 string          `db:"user_id"`
	TrackingCode           string          `db:"tracking_code"`
	Status                 RequestStatus   `db:"status"`
	Notes                  *string         `db:"notes"`
	ShippingAddressID      *int64          `db:"shipping_address_id"`
	EstimatedTotal         decimal.Decimal `db:"estimated_total"`
	FinalTotal             decimal.Decimal `db:"final_total"`
	OriginalCarrier        *string         `db:"original_carrier"`
	OriginalTrackingNumber *string         `db:"original_tracking_number"`
	CreatedAt              time.Time       `db:"created_at"`
	CreatedBy              *string         `db:"created_by"`
	ModifiedAt             *time.Time      `db:"modified_at"`
	ModifiedBy             *string         `db:"modified_by"`
	DeletedAt              *time.Time      `db:"deleted_at"`
	DeletedBy              *string         `db:"deleted_by"`

	// TotalPaid is a read-side aggregate over succeeded payments, filled
	// by the repository query. It is never written back.
	TotalPaid decimal.Decimal `db:"total_paid"`
}

// IsPaidInFull requires a staff-reviewed FinalTotal; a zero final total
// means review has not happened yet.
func (r *ForwardRequest) IsPaidInFull() bool {
	return r.FinalTotal.IsPositive() && r.TotalPaid.GreaterThanOrEqual(r.FinalTotal)
}

type ForwardItem struct {
	ID               int64            `db:"id"`
	ForwardRequestID int64            `db:"forward_request_id"`
	Name             string           `db:"name"`
	URL              *string          `db:"url"`
	Vendor           *string          `db:"vendor"`
	DeclaredWeight   *decimal.Decimal `db:"declared_weight"`
	DeclaredLength   *decimal.Decimal `db:"declared_length"`
	DeclaredWidth    *decimal.Decimal `db:"declared_width"`
	DeclaredHeight   *decimal.Decimal `db:"declared_height"`
	ActualWeight     *decimal.Decimal `db:"actual_weight"`
	ActualLength     *decimal.Decimal `db:"actual_length"`
	ActualWidth      *decimal.Decimal `db:"actual_width"`
	ActualHeight     *decimal.Decimal `db:"actual_height"`
	DeclaredValue    decimal.Decimal  `db:"declared_value"`
	Notes            *string          `db:"notes"`
	CreatedAt        time.Time        `db:"created_at"`
	DeletedAt        *time.Time       `db:"deleted_at"`
}

type Payment struct {
	ID               int64           `db:"id"`
	ForwardRequestID int64           `db:"forward_request_id"`
	UserID           string          `db:"user_id"`
	Amount           decimal.Decimal `db:"amount"`
	Status           PaymentStatus   `db:"status"`
	Type             PaymentType     `db:"type"`
	TransactionID    string          `db:"transaction_id"`
	IntentID         *string         `db:"intent_id"`
	PaymentMethod    *string         `db:"payment_method"`
	Notes            *string         `db:"notes"`
	CreatedAt        time.Time       `db:"created_at"`
	ModifiedAt       *time.Time      `db:"modified_at"`
	ModifiedBy       *string         `db:"modified_by"`
}

type StatusHistoryEntry struct {
	ID               int64         `db:"id"`
	ForwardRequestID int64         `db:"forward_request_id"`
	Status           RequestStatus `db:"status"`
	Notes            string        `db:"notes"`
	CreatedBy        string        `db:"created_by"`
	CreatedAt        time.Time     `db:"created_at"`
}

type Attachment struct {
	ID            int64     `db:"id"`
	ForwardItemID int64     `db:"forward_item_id"`
	FileName      string    `db:"file_name"`
	FilePath      string    `db:"file_path"`
	ContentType   string    `db:"content_type"`
	SizeBytes     int64     `db:"size_bytes"`
	CreatedAt     time.Time `db:"created_at"`
}

type Address struct {
	ID         int64     `db:"id"`
	UserID     string    `db:"user_id"`
	Line1      string    `db:"line1"`
	Line2      *string   `db:"line2"`
	City       string    `db:"city"`
	State      string    `db:"state"`
	PostalCode string    `db:"postal_code"`
	Country    string    `db:"country"`
	CreatedAt  time.Time `db:"created_at"`
}

type ShippingRate struct {
	ID              int64           `db:"id"`
	Name            string          `db:"name"`
	MinWeight       decimal.Decimal `db:"min_weight"`
	MaxWeight       decimal.Decimal `db:"max_weight"`
	BaseRate        decimal.Decimal `db:"base_rate"`
	AdditionalPerKg decimal.Decimal `db:"additional_per_kg"`
	IsActive        bool            `db:"is_active"`
}

type CustomsRate struct {
	ID             int64           `db:"id"`
	Name           string          `db:"name"`
	Category       string          `db:"category"`
	RatePercentage decimal.Decimal `db:"rate_percentage"`
	MinimumFee     decimal.Decimal `db:"minimum_fee"`
	IsActive       bool            `db:"is_active"`
}
