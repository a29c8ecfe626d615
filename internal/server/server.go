//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=server_mocks
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fastybox/forwarding/internal/forwarding"
	"github.com/fastybox/forwarding/internal/payment"
	"github.com/fastybox/forwarding/internal/repository"
)

type ForwardingService interface {
	CreateRequest(ctx context.Context, ownerID string, in forwarding.CreateRequestInput) (*repository.ForwardRequest, error)
	GetRequest(ctx context.Context, id int64, requesterID string, isAdmin bool) (*forwarding.RequestDetail, error)
	ListUserRequests(ctx context.Context, userID string, page, pageSize int) ([]*repository.ForwardRequest, error)
	ListRequests(ctx context.Context, page, pageSize int, status *repository.RequestStatus) ([]*repository.ForwardRequest, error)
	UpdateRequest(ctx context.Context, requestID int64, ownerID string, in forwarding.UpdateRequestInput) (*repository.ForwardRequest, error)
	DeleteRequest(ctx context.Context, requestID int64, actorID string, isAdmin bool) (bool, error)
	AddItem(ctx context.Context, requestID int64, ownerID string, in forwarding.ItemInput) (*repository.ForwardItem, error)
	RemoveItem(ctx context.Context, requestID int64, ownerID string, itemID int64) (bool, error)
	UpdateStatus(ctx context.Context, requestID int64, status repository.RequestStatus, notes, actorID string) (bool, error)
	AssignShippingAddress(ctx context.Context, requestID int64, ownerID string, addressID int64) (bool, error)
}

type PaymentService interface {
	InitiateCheckout(ctx context.Context, requestID int64, amount decimal.Decimal, typ repository.PaymentType, payerID string) (*payment.Checkout, error)
	RecordGatewayOutcome(ctx context.Context, sessionRef, intentRef string, outcome repository.PaymentStatus) (*repository.Payment, error)
	PaymentsForRequest(ctx context.Context, requestID int64) ([]*repository.Payment, error)
}

type UserRepo interface {
	ValidateUser(ctx context.Context, username, password string) (bool, bool, error)
}

type Server struct {
	forwarding ForwardingService
	payments   PaymentService
	userRepo   UserRepo
	server     *http.Server
	logger     *zap.Logger
}

func New(fwd ForwardingService, pay PaymentService, userRepo UserRepo, logger *zap.Logger) *Server {
	return &Server{
		forwarding: fwd,
		payments:   pay,
		userRepo:   userRepo,
		logger:     logger,
	}
}

func (s *Server) Run(port string) error {
	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      s.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	s.logger.Info("http server starting", zap.String("port", port))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) Routes() http.Handler {
	router := mux.NewRouter()

	// Webhooks carry gateway signatures, not user credentials, and the
	// metrics endpoint is scraped unauthenticated.
	router.HandleFunc("/webhooks/payment", s.handlePaymentWebhook).Methods(http.MethodPost)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/").Subrouter()
	api.Use(s.basicAuthMiddleware)

	api.HandleFunc("/requests", s.handleCreateRequest).Methods(http.MethodPost)
	api.HandleFunc("/requests", s.handleListRequests).Methods(http.MethodGet)
	api.HandleFunc("/requests/{id}", s.handleGetRequest).Methods(http.MethodGet)
	api.HandleFunc("/requests/{id}", s.handleUpdateRequest).Methods(http.MethodPut)
	api.HandleFunc("/requests/{id}", s.handleDeleteRequest).Methods(http.MethodDelete)
	api.HandleFunc("/requests/{id}/items", s.handleAddItem).Methods(http.MethodPost)
	api.HandleFunc("/requests/{id}/items/{itemID}", s.handleRemoveItem).Methods(http.MethodDelete)
	api.HandleFunc("/requests/{id}/status", s.handleUpdateStatus).Methods(http.MethodPut)
	api.HandleFunc("/requests/{id}/address", s.handleAssignAddress).Methods(http.MethodPut)
	api.HandleFunc("/requests/{id}/checkout", s.handleInitiateCheckout).Methods(http.MethodPost)
	api.HandleFunc("/requests/{id}/payments", s.handleListPayments).Methods(http.MethodGet)

	return router
}

type ctxKey int

const authUserKey ctxKey = 0

type authUser struct {
	ID    string
	Admin bool
}

func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		valid, isAdmin, err := s.userRepo.ValidateUser(r.Context(), username, password)
		if err != nil || !valid {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), authUserKey, authUser{ID: username, Admin: isAdmin})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestUser(r *http.Request) authUser {
	u, _ := r.Context().Value(authUserKey).(authUser)
	return u
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
