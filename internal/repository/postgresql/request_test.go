package postgresql_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mock_database "github.com/fastybox/forwarding/internal/db/mocks"
	"github.com/fastybox/forwarding/internal/repository"
	"github.com/fastybox/forwarding/internal/repository/postgresql"
)

// stubRow satisfies pgx.Row for queries ending in RETURNING or a scalar
// SELECT.
type stubRow struct {
	vals []interface{}
	err  error
}

func (r stubRow) Scan(dest ...interface{}) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.vals[i]))
	}
	return nil
}

func testRequest() *repository.ForwardRequest {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	owner := "user-456"
	return &repository.ForwardRequest{
		UserID:         "user-456",
		TrackingCode:   "FB-20260115-12345",
		Status:         repository.StatusDraft,
		EstimatedTotal: decimal.RequireFromString("23.99"),
		FinalTotal:     decimal.Zero,
		CreatedAt:      now,
		CreatedBy:      &owner,
	}
}

func TestRequestRepo_CreateTx(t *testing.T) {
	ctx := context.Background()

	t.Run("success assigns id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewRequestRepo(mockDB)

		req := testRequest()
		mockTx.EXPECT().ExecQueryRow(
			gomock.Any(),
			gomock.Any(),
			gomock.Eq(req.UserID),
			gomock.Eq(req.TrackingCode),
			gomock.Eq(req.Status),
			gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Eq(req.CreatedAt),
			gomock.Eq(req.CreatedBy),
		).Return(stubRow{vals: []interface{}{int64(42)}})

		err := repo.CreateTx(ctx, mockTx, req)
		assert.NoError(t, err)
		assert.Equal(t, int64(42), req.ID)
	})

	t.Run("unique violation maps to duplicate code", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewRequestRepo(mockDB)

		mockTx.EXPECT().ExecQueryRow(
			gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Any(),
		).Return(stubRow{err: &pgconn.PgError{Code: "23505"}})

		err := repo.CreateTx(ctx, mockTx, testRequest())
		assert.ErrorIs(t, err, postgresql.ErrDuplicateTrackingCode)
	})
}

func TestRequestRepo_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("request found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewRequestRepo(mockDB)

		want := testRequest()
		want.ID = 1

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(int64(1))).
			DoAndReturn(func(_ context.Context, dest *repository.ForwardRequest, _ string, _ int64) error {
				*dest = *want
				return nil
			})

		got, err := repo.GetByID(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("request not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewRequestRepo(mockDB)

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgx.ErrNoRows)

		got, err := repo.GetByID(ctx, 999)
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
		assert.Nil(t, got)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewRequestRepo(mockDB)

		expectedErr := errors.New("database error")
		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(expectedErr)

		got, err := repo.GetByID(ctx, 1)
		assert.Equal(t, expectedErr, err)
		assert.Nil(t, got)
	})
}

func TestRequestRepo_TrackingCodeExists(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_database.NewMockDB(ctrl)
	repo := postgresql.NewRequestRepo(mockDB)

	mockDB.EXPECT().ExecQueryRow(gomock.Any(), gomock.Any(), gomock.Eq("FB-20260115-12345")).
		Return(stubRow{vals: []interface{}{true}})

	exists, err := repo.TrackingCodeExists(ctx, "FB-20260115-12345")
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestRequestRepo_UpdateTx(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewRequestRepo(mockDB)

		req := testRequest()
		req.ID = 1

		mockTx.EXPECT().Exec(
			gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(int64(1)),
		).Return(pgconn.CommandTag("UPDATE 1"), nil)

		err := repo.UpdateTx(ctx, mockTx, req)
		assert.NoError(t, err)
	})

	t.Run("no rows updated means deleted or missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewRequestRepo(mockDB)

		req := testRequest()
		req.ID = 1

		mockTx.EXPECT().Exec(
			gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
		).Return(pgconn.CommandTag("UPDATE 0"), nil)

		err := repo.UpdateTx(ctx, mockTx, req)
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
	})
}

func TestRequestRepo_List(t *testing.T) {
	ctx := context.Background()

	t.Run("without status filter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewRequestRepo(mockDB)

		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(10), gomock.Eq(0)).
			Return(nil)

		_, err := repo.List(ctx, 1, 10, nil)
		assert.NoError(t, err)
	})

	t.Run("with status filter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewRequestRepo(mockDB)

		status := repository.StatusAwaitingPayment
		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Eq(status), gomock.Eq(20), gomock.Eq(20)).
			Return(nil)

		_, err := repo.List(ctx, 2, 20, &status)
		assert.NoError(t, err)
	})
}

func TestRequestRepo_SoftDeleteTx(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_database.NewMockDB(ctrl)
	mockTx := mock_database.NewMockTx(ctrl)
	repo := postgresql.NewRequestRepo(mockDB)

	at := time.Now().UTC()
	mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Eq(at), gomock.Eq("staff-1"), gomock.Eq(int64(5))).
		Return(pgconn.CommandTag("UPDATE 1"), nil)

	err := repo.SoftDeleteTx(ctx, mockTx, 5, "staff-1", at)
	assert.NoError(t, err)
}
