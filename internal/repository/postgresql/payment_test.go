package postgresql_test

import (
	"context"
	"errors"
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

func testPayment() *repository.Payment {
	return &repository.Payment{
		ForwardRequestID: 1,
		UserID:           "user-456",
		Amount:           decimal.RequireFromString("23.99"),
		Status:           repository.PaymentPending,
		Type:             repository.PaymentTypeInitial,
		TransactionID:    "cs_test_123",
		CreatedAt:        time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestPaymentRepo_Create(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_database.NewMockDB(ctrl)
	repo := postgresql.NewPaymentRepo(mockDB)

	p := testPayment()
	mockDB.EXPECT().ExecQueryRow(
		gomock.Any(), gomock.Any(),
		gomock.Eq(p.ForwardRequestID), gomock.Eq(p.UserID), gomock.Eq(p.Amount),
		gomock.Eq(p.Status), gomock.Eq(p.Type), gomock.Eq(p.TransactionID),
		gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(p.CreatedAt),
	).Return(stubRow{vals: []interface{}{int64(7)}})

	err := repo.Create(ctx, p)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), p.ID)
}

func TestPaymentRepo_GetByReferenceTx(t *testing.T) {
	ctx := context.Background()

	t.Run("payment found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewPaymentRepo(mockDB)

		want := testPayment()
		want.ID = 7

		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq("cs_test_123")).
			DoAndReturn(func(_ context.Context, dest *repository.Payment, _ string, _ string) error {
				*dest = *want
				return nil
			})

		got, err := repo.GetByReferenceTx(ctx, mockTx, "cs_test_123")
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("payment not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewPaymentRepo(mockDB)

		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgx.ErrNoRows)

		got, err := repo.GetByReferenceTx(ctx, mockTx, "pi_unknown")
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
		assert.Nil(t, got)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewPaymentRepo(mockDB)

		expectedErr := errors.New("database error")
		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(expectedErr)

		got, err := repo.GetByReferenceTx(ctx, mockTx, "cs_test_123")
		assert.Equal(t, expectedErr, err)
		assert.Nil(t, got)
	})
}

func TestPaymentRepo_UpdateTx(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewPaymentRepo(mockDB)

		p := testPayment()
		p.ID = 7
		p.Status = repository.PaymentSucceeded

		mockTx.EXPECT().Exec(
			gomock.Any(), gomock.Any(),
			gomock.Eq(repository.PaymentSucceeded), gomock.Eq(p.TransactionID),
			gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(int64(7)),
		).Return(pgconn.CommandTag("UPDATE 1"), nil)

		err := repo.UpdateTx(ctx, mockTx, p)
		assert.NoError(t, err)
	})

	t.Run("payment not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewPaymentRepo(mockDB)

		p := testPayment()
		p.ID = 999

		mockTx.EXPECT().Exec(
			gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
		).Return(pgconn.CommandTag("UPDATE 0"), nil)

		err := repo.UpdateTx(ctx, mockTx, p)
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
	})
}

func TestPaymentRepo_SumSucceededTx(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_database.NewMockDB(ctrl)
	mockTx := mock_database.NewMockTx(ctrl)
	repo := postgresql.NewPaymentRepo(mockDB)

	mockTx.EXPECT().ExecQueryRow(gomock.Any(), gomock.Any(), gomock.Eq(int64(1))).
		Return(stubRow{vals: []interface{}{decimal.RequireFromString("83.99")}})

	total, err := repo.SumSucceededTx(ctx, mockTx, 1)
	assert.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("83.99")))
}

func TestPaymentRepo_ListByRequest(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_database.NewMockDB(ctrl)
	repo := postgresql.NewPaymentRepo(mockDB)

	want := testPayment()
	want.ID = 7

	mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(int64(1))).
		DoAndReturn(func(_ context.Context, dest *[]*repository.Payment, _ string, _ int64) error {
			*dest = []*repository.Payment{want}
			return nil
		})

	payments, err := repo.ListByRequest(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, payments, 1)
	assert.Equal(t, want, payments[0])
}
