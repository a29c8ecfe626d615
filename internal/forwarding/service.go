// Package forwarding owns the forward-request lifecycle: creation,
// item management, status progression and the audit trail behind it.
package forwarding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fastybox/forwarding/internal/db"
	"github.com/fastybox/forwarding/internal/metrics"
	"github.com/fastybox/forwarding/internal/pricing"
	"github.com/fastybox/forwarding/internal/repository"
	"github.com/fastybox/forwarding/internal/repository/postgresql"
)

// SystemActor marks automated transitions in the status history.
const SystemActor = "system"

const (
	maxNameLen   = 200
	maxURLLen    = 500
	maxVendorLen = 150
	maxNotesLen  = 500
)

type RequestRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, req *repository.ForwardRequest) error
	GetByID(ctx context.Context, id int64) (*repository.ForwardRequest, error)
	GetByIDTx(ctx context.Context, tx db.Tx, id int64) (*repository.ForwardRequest, error)
	TrackingCodeExists(ctx context.Context, code string) (bool, error)
	UpdateTx(ctx context.Context, tx db.Tx, req *repository.ForwardRequest) error
	SetEstimatedTotalTx(ctx context.Context, tx db.Tx, id int64, total decimal.Decimal, actor string) error
	ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*repository.ForwardRequest, error)
	List(ctx context.Context, page, pageSize int, status *repository.RequestStatus) ([]*repository.ForwardRequest, error)
	SoftDeleteTx(ctx context.Context, tx db.Tx, id int64, actor string, at time.Time) error
}

type ItemRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, item *repository.ForwardItem) error
	GetByIDTx(ctx context.Context, tx db.Tx, requestID, itemID int64) (*repository.ForwardItem, error)
	ListByRequest(ctx context.Context, requestID int64) ([]*repository.ForwardItem, error)
	ListByRequestTx(ctx context.Context, tx db.Tx, requestID int64) ([]*repository.ForwardItem, error)
	SoftDeleteTx(ctx context.Context, tx db.Tx, itemID int64, at time.Time) error
	SoftDeleteByRequestTx(ctx context.Context, tx db.Tx, requestID int64, at time.Time) error
}

type HistoryRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, entry *repository.StatusHistoryEntry) error
	GetByRequestID(ctx context.Context, requestID int64) ([]*repository.StatusHistoryEntry, error)
}

type AddressRepository interface {
	GetByIDForUser(ctx context.Context, id int64, userID string) (*repository.Address, error)
}

type AttachmentRepository interface {
	ListByItemTx(ctx context.Context, tx db.Tx, itemID int64) ([]*repository.Attachment, error)
	DeleteByItemTx(ctx context.Context, tx db.Tx, itemID int64) error
}

type PaymentLister interface {
	ListByRequest(ctx context.Context, requestID int64) ([]*repository.Payment, error)
}

// RateProvider supplies the active rate tables (see cache.RateCache).
type RateProvider interface {
	Rates(ctx context.Context) ([]*repository.ShippingRate, []*repository.CustomsRate)
}

// Notifier enqueues customer notifications inside the caller's
// transaction. Enqueue failures are logged by the service, never
// propagated: a lost email must not fail the domain operation.
type Notifier interface {
	RequestCreated(ctx context.Context, tx db.Tx, req *repository.ForwardRequest) error
	StatusChanged(ctx context.Context, tx db.Tx, req *repository.ForwardRequest, notes string) error
}

// FileStore deletes stored attachment blobs. Best effort.
type FileStore interface {
	Delete(ctx context.Context, path string) error
}

type Service struct {
	db          db.DB
	requests    RequestRepository
	items       ItemRepository
	history     HistoryRepository
	addresses   AddressRepository
	attachments AttachmentRepository
	payments    PaymentLister
	rates       RateProvider
	notifier    Notifier
	files       FileStore
	tracking    *trackingCodeGenerator
	logger      *zap.Logger
}

type Deps struct {
	DB          db.DB
	Requests    RequestRepository
	Items       ItemRepository
	History     HistoryRepository
	Addresses   AddressRepository
	Attachments AttachmentRepository
	Payments    PaymentLister
	Rates       RateProvider
	Notifier    Notifier
	Files       FileStore
	Logger      *zap.Logger
}

func NewService(d Deps) *Service {
	return &Service{
		db:          d.DB,
		requests:    d.Requests,
		items:       d.Items,
		history:     d.History,
		addresses:   d.Addresses,
		attachments: d.Attachments,
		payments:    d.Payments,
		rates:       d.Rates,
		notifier:    d.Notifier,
		files:       d.Files,
		tracking:    newTrackingCodeGenerator(),
		logger:      d.Logger,
	}
}

type ItemInput struct {
	Name           string
	URL            string
	Vendor         string
	DeclaredWeight *decimal.Decimal
	DeclaredLength *decimal.Decimal
	DeclaredWidth  *decimal.Decimal
	DeclaredHeight *decimal.Decimal
	DeclaredValue  decimal.Decimal
	Notes          string
}

type CreateRequestInput struct {
	Notes                  string
	OriginalCarrier        string
	OriginalTrackingNumber string
	Items                  []ItemInput
}

type UpdateRequestInput struct {
	Notes                  string
	ShippingAddressID      *int64
	OriginalCarrier        string
	OriginalTrackingNumber string
}

// RequestDetail is the fully loaded view of a request.
type RequestDetail struct {
	Request  *repository.ForwardRequest
	Items    []*repository.ForwardItem
	Payments []*repository.Payment
	History  []*repository.StatusHistoryEntry
	Address  *repository.Address
}

// CreateRequest allocates a tracking code, prices the declared items and
// persists the new draft with its first history entry, all in one
// transaction. The unique index on tracking_code is the cross-process
// backstop for the in-process generator lock.
func (s *Service) CreateRequest(ctx context.Context, ownerID string, in CreateRequestInput) (*repository.ForwardRequest, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, fmt.Errorf("%w: owner id is required", ErrValidation)
	}

	items := make([]*repository.ForwardItem, 0, len(in.Items))
	for _, itemIn := range in.Items {
		item, err := sanitizeItem(itemIn)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	shippingRates, customsRates := s.rates.Rates(ctx)
	estimated := pricing.EstimatedTotal(items, shippingRates, customsRates)

	now := time.Now().UTC()
	req := &repository.ForwardRequest{
		UserID:                 ownerID,
		Status:                 repository.StatusDraft,
		Notes:                  optionalString(in.Notes, maxNotesLen),
		EstimatedTotal:         estimated,
		OriginalCarrier:        optionalString(in.OriginalCarrier, maxVendorLen),
		OriginalTrackingNumber: optionalString(in.OriginalTrackingNumber, maxVendorLen),
		CreatedAt:              now,
		CreatedBy:              &ownerID,
	}

	for attempt := 0; attempt < trackingCodeAttempts; attempt++ {
		code, err := s.tracking.generate(ctx, s.requests.TrackingCodeExists)
		if err != nil {
			return nil, err
		}
		req.TrackingCode = code

		err = db.InTx(ctx, s.db, func(tx db.Tx) error {
			if err := s.requests.CreateTx(ctx, tx, req); err != nil {
				return err
			}
			for _, item := range items {
				item.ForwardRequestID = req.ID
				item.CreatedAt = now
				if err := s.items.CreateTx(ctx, tx, item); err != nil {
					return fmt.Errorf("insert item: %w", err)
				}
			}
			if err := s.history.CreateTx(ctx, tx, &repository.StatusHistoryEntry{
				ForwardRequestID: req.ID,
				Status:           repository.StatusDraft,
				Notes:            "Request created",
				CreatedBy:        ownerID,
				CreatedAt:        now,
			}); err != nil {
				return fmt.Errorf("insert history: %w", err)
			}
			if err := s.notifier.RequestCreated(ctx, tx, req); err != nil {
				s.logger.Warn("failed to enqueue request-created notification",
					zap.Int64("request_id", req.ID), zap.Error(err))
			}
			return nil
		})
		if errors.Is(err, postgresql.ErrDuplicateTrackingCode) {
			// Another process won the race on this candidate.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		metrics.RequestsCreatedTotal.Inc()
		return req, nil
	}

	return nil, fmt.Errorf("%w: tracking code space exhausted after %d attempts", ErrConflict, trackingCodeAttempts)
}

// AddItem appends one declared content line and reprices the request.
// The request row stays locked for the whole read-price-write sequence so
// concurrent additions to the same request serialize.
func (s *Service) AddItem(ctx context.Context, requestID int64, ownerID string, in ItemInput) (*repository.ForwardItem, error) {
	item, err := sanitizeItem(in)
	if err != nil {
		return nil, err
	}

	err = db.InTx(ctx, s.db, func(tx db.Tx) error {
		req, err := s.requests.GetByIDTx(ctx, tx, requestID)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return ErrNotFound
			}
			return err
		}
		if req.UserID != ownerID {
			return ErrNotFound
		}
		if req.Status.IsTerminal() {
			return fmt.Errorf("%w: request %s is closed", ErrValidation, req.TrackingCode)
		}

		item.ForwardRequestID = requestID
		item.CreatedAt = time.Now().UTC()
		if err := s.items.CreateTx(ctx, tx, item); err != nil {
			return fmt.Errorf("insert item: %w", err)
		}

		return s.repriceTx(ctx, tx, requestID, ownerID)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem deletes one item with its attachments and reprices the
// request. Missing request or item reports false, not an error.
func (s *Service) RemoveItem(ctx context.Context, requestID int64, ownerID string, itemID int64) (bool, error) {
	var removed bool
	var orphanedFiles []string

	err := db.InTx(ctx, s.db, func(tx db.Tx) error {
		req, err := s.requests.GetByIDTx(ctx, tx, requestID)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return nil
			}
			return err
		}
		if req.UserID != ownerID {
			return nil
		}
		if req.Status.IsTerminal() {
			return fmt.Errorf("%w: request %s is closed", ErrValidation, req.TrackingCode)
		}

		item, err := s.items.GetByIDTx(ctx, tx, requestID, itemID)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return nil
			}
			return err
		}

		attachments, err := s.attachments.ListByItemTx(ctx, tx, item.ID)
		if err != nil {
			return fmt.Errorf("list attachments: %w", err)
		}
		for _, a := range attachments {
			orphanedFiles = append(orphanedFiles, a.FilePath)
		}
		if err := s.attachments.DeleteByItemTx(ctx, tx, item.ID); err != nil {
			return fmt.Errorf("delete attachments: %w", err)
		}

		if err := s.items.SoftDeleteTx(ctx, tx, item.ID, time.Now().UTC()); err != nil {
			return fmt.Errorf("delete item: %w", err)
		}

		removed = true
		return s.repriceTx(ctx, tx, requestID, ownerID)
	})
	if err != nil {
		return false, err
	}

	// Blob deletion is best effort; orphaned files are a storage-GC
	// concern, not a reason to fail the removal.
	for _, path := range orphanedFiles {
		if err := s.files.Delete(ctx, path); err != nil {
			s.logger.Warn("failed to delete attachment file",
				zap.String("path", path), zap.Error(err))
		}
	}

	return removed, nil
}

// repriceTx recomputes the estimated total from the remaining items.
// Caller must hold the request row lock.
func (s *Service) repriceTx(ctx context.Context, tx db.Tx, requestID int64, actor string) error {
	items, err := s.items.ListByRequestTx(ctx, tx, requestID)
	if err != nil {
		return fmt.Errorf("list items: %w", err)
	}

	shippingRates, customsRates := s.rates.Rates(ctx)
	total := pricing.EstimatedTotal(items, shippingRates, customsRates)

	if err := s.requests.SetEstimatedTotalTx(ctx, tx, requestID, total, actor); err != nil {
		return fmt.Errorf("update estimated total: %w", err)
	}
	return nil
}

// UpdateStatus force-sets the status (staff decides which transitions
// make sense) and appends exactly one history entry. Returns false when
// the request does not exist.
func (s *Service) UpdateStatus(ctx context.Context, requestID int64, status repository.RequestStatus, notes, actorID string) (bool, error) {
	if !status.Valid() {
		return false, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	found := false
	err := db.InTx(ctx, s.db, func(tx db.Tx) error {
		req, err := s.requests.GetByIDTx(ctx, tx, requestID)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return nil
			}
			return err
		}
		found = true

		if err := s.ApplyStatusTx(ctx, tx, req, status, notes, actorID); err != nil {
			return err
		}

		if err := s.notifier.StatusChanged(ctx, tx, req, notes); err != nil {
			s.logger.Warn("failed to enqueue status-changed notification",
				zap.Int64("request_id", req.ID), zap.Error(err))
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("update status: %w", err)
	}
	return found, nil
}

// ApplyStatusTx is the single write path for status changes: it mutates
// the locked request row and appends the history entry in the caller's
// transaction. Payment reconciliation uses it for the automatic
// transitions.
func (s *Service) ApplyStatusTx(ctx context.Context, tx db.Tx, req *repository.ForwardRequest, status repository.RequestStatus, notes, actorID string) error {
	now := time.Now().UTC()
	req.Status = status
	req.ModifiedAt = &now
	req.ModifiedBy = &actorID

	if err := s.requests.UpdateTx(ctx, tx, req); err != nil {
		return fmt.Errorf("persist status: %w", err)
	}

	metrics.StatusTransitionsTotal.WithLabelValues(string(status)).Inc()

	return s.history.CreateTx(ctx, tx, &repository.StatusHistoryEntry{
		ForwardRequestID: req.ID,
		Status:           status,
		Notes:            strings.TrimSpace(notes),
		CreatedBy:        actorID,
		CreatedAt:        now,
	})
}

// AssignShippingAddress links an address to a request; both must belong
// to the owner.
func (s *Service) AssignShippingAddress(ctx context.Context, requestID int64, ownerID string, addressID int64) (bool, error) {
	if _, err := s.addresses.GetByIDForUser(ctx, addressID, ownerID); err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return false, nil
		}
		return false, err
	}

	ok := false
	err := db.InTx(ctx, s.db, func(tx db.Tx) error {
		req, err := s.requests.GetByIDTx(ctx, tx, requestID)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return nil
			}
			return err
		}
		if req.UserID != ownerID {
			return nil
		}

		now := time.Now().UTC()
		req.ShippingAddressID = &addressID
		req.ModifiedAt = &now
		req.ModifiedBy = &ownerID
		if err := s.requests.UpdateTx(ctx, tx, req); err != nil {
			return err
		}
		ok = true
		return nil
	})
	return ok, err
}

// UpdateRequest edits the owner-mutable fields and reprices.
func (s *Service) UpdateRequest(ctx context.Context, requestID int64, ownerID string, in UpdateRequestInput) (*repository.ForwardRequest, error) {
	var updated *repository.ForwardRequest
	err := db.InTx(ctx, s.db, func(tx db.Tx) error {
		req, err := s.requests.GetByIDTx(ctx, tx, requestID)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return ErrNotFound
			}
			return err
		}
		if req.UserID != ownerID {
			return ErrNotFound
		}
		if req.Status.IsTerminal() {
			return fmt.Errorf("%w: request %s is closed", ErrValidation, req.TrackingCode)
		}

		now := time.Now().UTC()
		req.Notes = optionalString(in.Notes, maxNotesLen)
		req.ShippingAddressID = in.ShippingAddressID
		req.OriginalCarrier = optionalString(in.OriginalCarrier, maxVendorLen)
		req.OriginalTrackingNumber = optionalString(in.OriginalTrackingNumber, maxVendorLen)
		req.ModifiedAt = &now
		req.ModifiedBy = &ownerID

		if err := s.requests.UpdateTx(ctx, tx, req); err != nil {
			return err
		}
		if err := s.repriceTx(ctx, tx, requestID, ownerID); err != nil {
			return err
		}
		updated = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteRequest soft-deletes a request and its items. Only the owner or
// an administrator may do this; anyone else sees the same false as a
// missing request.
func (s *Service) DeleteRequest(ctx context.Context, requestID int64, actorID string, isAdmin bool) (bool, error) {
	deleted := false
	err := db.InTx(ctx, s.db, func(tx db.Tx) error {
		req, err := s.requests.GetByIDTx(ctx, tx, requestID)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return nil
			}
			return err
		}
		if !isAdmin && req.UserID != actorID {
			return nil
		}

		now := time.Now().UTC()
		if err := s.requests.SoftDeleteTx(ctx, tx, requestID, actorID, now); err != nil {
			return err
		}
		if err := s.items.SoftDeleteByRequestTx(ctx, tx, requestID, now); err != nil {
			return err
		}
		deleted = true
		return nil
	})
	return deleted, err
}

// GetRequest loads the full request view. Administrators see any
// request, users only their own; the two failure cases are merged.
func (s *Service) GetRequest(ctx context.Context, id int64, requesterID string, isAdmin bool) (*RequestDetail, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !isAdmin && req.UserID != requesterID {
		return nil, ErrNotFound
	}

	items, err := s.items.ListByRequest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	payments, err := s.payments.ListByRequest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}
	history, err := s.history.GetByRequestID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	detail := &RequestDetail{
		Request:  req,
		Items:    items,
		Payments: payments,
		History:  history,
	}

	if req.ShippingAddressID != nil {
		addr, err := s.addresses.GetByIDForUser(ctx, *req.ShippingAddressID, req.UserID)
		if err != nil && !errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("load address: %w", err)
		}
		detail.Address = addr
	}

	return detail, nil
}

func (s *Service) ListUserRequests(ctx context.Context, userID string, page, pageSize int) ([]*repository.ForwardRequest, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.requests.ListByUser(ctx, userID, page, pageSize)
}

func (s *Service) ListRequests(ctx context.Context, page, pageSize int, status *repository.RequestStatus) ([]*repository.ForwardRequest, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.requests.List(ctx, page, pageSize, status)
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}
