package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fastybox/forwarding/internal/forwarding"
	"github.com/fastybox/forwarding/internal/metrics"
	"github.com/fastybox/forwarding/internal/repository"
)

type itemPayload struct {
	Name           string           `json:"name"`
	URL            string           `json:"url"`
	Vendor         string           `json:"vendor"`
	DeclaredWeight *decimal.Decimal `json:"declared_weight"`
	DeclaredLength *decimal.Decimal `json:"declared_length"`
	DeclaredWidth  *decimal.Decimal `json:"declared_width"`
	DeclaredHeight *decimal.Decimal `json:"declared_height"`
	DeclaredValue  decimal.Decimal  `json:"declared_value"`
	Notes          string           `json:"notes"`
}

func (p itemPayload) toInput() forwarding.ItemInput {
	return forwarding.ItemInput{
		Name:           p.Name,
		URL:            p.URL,
		Vendor:         p.Vendor,
		DeclaredWeight: p.DeclaredWeight,
		DeclaredLength: p.DeclaredLength,
		DeclaredWidth:  p.DeclaredWidth,
		DeclaredHeight: p.DeclaredHeight,
		DeclaredValue:  p.DeclaredValue,
		Notes:          p.Notes,
	}
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	return id, err == nil && id > 0
}

// respondServiceError translates domain sentinels to HTTP statuses.
func (s *Server) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, forwarding.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, forwarding.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, forwarding.ErrForbidden):
		respondError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, forwarding.ErrConflict):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, forwarding.ErrExternal):
		respondError(w, http.StatusBadGateway, "payment provider unavailable")
	default:
		op := r.Method + " " + r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, tplErr := route.GetPathTemplate(); tplErr == nil {
				op = r.Method + " " + tpl
			}
		}
		metrics.OperationErrorsTotal.WithLabelValues(op).Inc()
		s.logger.Error("request failed",
			zap.String("path", r.URL.Path), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Notes                  string        `json:"notes"`
		OriginalCarrier        string        `json:"original_carrier"`
		OriginalTrackingNumber string        `json:"original_tracking_number"`
		Items                  []itemPayload `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	in := forwarding.CreateRequestInput{
		Notes:                  body.Notes,
		OriginalCarrier:        body.OriginalCarrier,
		OriginalTrackingNumber: body.OriginalTrackingNumber,
	}
	for _, item := range body.Items {
		in.Items = append(in.Items, item.toInput())
	}

	req, err := s.forwarding.CreateRequest(r.Context(), requestUser(r).ID, in)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, req)
}

func (s *Server) handleListRequests(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 10)

	// Staff browse the whole queue, optionally narrowed by status;
	// customers only ever see their own requests.
	if user.Admin {
		var status *repository.RequestStatus
		if raw := r.URL.Query().Get("status"); raw != "" {
			st := repository.RequestStatus(raw)
			if !st.Valid() {
				respondError(w, http.StatusBadRequest, "Invalid value for 'status' parameter")
				return
			}
			status = &st
		}
		requests, err := s.forwarding.ListRequests(r.Context(), page, pageSize, status)
		if err != nil {
			s.respondServiceError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, requests)
		return
	}

	requests, err := s.forwarding.ListUserRequests(r.Context(), user.ID, page, pageSize)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, requests)
}

func (s *Server) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	user := requestUser(r)
	detail, err := s.forwarding.GetRequest(r.Context(), id, user.ID, user.Admin)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, detail)
}

func (s *Server) handleUpdateRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	var body struct {
		Notes                  string `json:"notes"`
		ShippingAddressID      *int64 `json:"shipping_address_id"`
		OriginalCarrier        string `json:"original_carrier"`
		OriginalTrackingNumber string `json:"original_tracking_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req, err := s.forwarding.UpdateRequest(r.Context(), id, requestUser(r).ID, forwarding.UpdateRequestInput{
		Notes:                  body.Notes,
		ShippingAddressID:      body.ShippingAddressID,
		OriginalCarrier:        body.OriginalCarrier,
		OriginalTrackingNumber: body.OriginalTrackingNumber,
	})
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, req)
}

func (s *Server) handleDeleteRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	user := requestUser(r)
	deleted, err := s.forwarding.DeleteRequest(r.Context(), id, user.ID, user.Admin)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Request deleted"})
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	var body itemPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := s.forwarding.AddItem(r.Context(), id, requestUser(r).ID, body.toInput())
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}
	itemID, ok := pathID(r, "itemID")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	removed, err := s.forwarding.RemoveItem(r.Context(), id, requestUser(r).ID, itemID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	if !removed {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Item removed"})
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	if !user.Admin {
		respondError(w, http.StatusForbidden, "forbidden")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	var body struct {
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	found, err := s.forwarding.UpdateStatus(r.Context(), id, repository.RequestStatus(body.Status), body.Notes, user.ID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Status updated"})
}

func (s *Server) handleAssignAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	var body struct {
		AddressID int64 `json:"address_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.AddressID <= 0 {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	assigned, err := s.forwarding.AssignShippingAddress(r.Context(), id, requestUser(r).ID, body.AddressID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	if !assigned {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Shipping address assigned"})
}

func (s *Server) handleInitiateCheckout(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	var body struct {
		Amount decimal.Decimal `json:"amount"`
		Type   string          `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	checkout, err := s.payments.InitiateCheckout(r.Context(), id, body.Amount, repository.PaymentType(body.Type), requestUser(r).ID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"payment":      checkout.Payment,
		"redirect_url": checkout.RedirectURL,
	})
}

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	user := requestUser(r)
	// Ownership check rides on GetRequest; the payments listing itself
	// has no owner column filter.
	if _, err := s.forwarding.GetRequest(r.Context(), id, user.ID, user.Admin); err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	payments, err := s.payments.PaymentsForRequest(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, payments)
}

// gatewayEventOutcomes maps provider event types to the payment status
// they report. Unrecognized events are acknowledged and dropped so the
// provider stops retrying them.
var gatewayEventOutcomes = map[string]repository.PaymentStatus{
	"checkout.session.completed":    repository.PaymentSucceeded,
	"payment_intent.succeeded":      repository.PaymentSucceeded,
	"payment_intent.payment_failed": repository.PaymentFailed,
}

func (s *Server) handlePaymentWebhook(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Type      string `json:"type"`
		SessionID string `json:"session_id"`
		IntentID  string `json:"intent_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	outcome, known := gatewayEventOutcomes[body.Type]
	if !known {
		respondJSON(w, http.StatusOK, map[string]string{"message": "Event ignored"})
		return
	}
	if body.SessionID == "" && body.IntentID == "" {
		respondError(w, http.StatusBadRequest, "Missing payment reference")
		return
	}

	if _, err := s.payments.RecordGatewayOutcome(r.Context(), body.SessionID, body.IntentID, outcome); err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Event processed"})
}

func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
