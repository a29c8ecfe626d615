package postgresql_test

import (
	"context"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	mock_database "github.com/fastybox/forwarding/internal/db/mocks"
	"github.com/fastybox/forwarding/internal/repository/postgresql"
)

func TestUserRepo_CreateUser(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_database.NewMockDB(ctrl)
	repo := postgresql.NewUserRepo(mockDB)

	mockDB.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Eq("maria"), gomock.Any(), gomock.Eq(false)).
		DoAndReturn(func(_ context.Context, _ string, args ...interface{}) (pgconn.CommandTag, error) {
			hashed, ok := args[1].(string)
			require.True(t, ok)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hashed), []byte("s3cret")))
			return nil, nil
		})

	err := repo.CreateUser(ctx, "maria", "s3cret", false)
	assert.NoError(t, err)
}

func TestUserRepo_ValidateUser(t *testing.T) {
	ctx := context.Background()

	hashed, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("valid admin credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewUserRepo(mockDB)

		mockDB.EXPECT().ExecQueryRow(gomock.Any(), gomock.Any(), gomock.Eq("maria")).
			Return(stubRow{vals: []interface{}{string(hashed), true}})

		ok, isAdmin, err := repo.ValidateUser(ctx, "maria", "s3cret")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, isAdmin)
	})

	t.Run("wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewUserRepo(mockDB)

		mockDB.EXPECT().ExecQueryRow(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(stubRow{vals: []interface{}{string(hashed), false}})

		ok, isAdmin, err := repo.ValidateUser(ctx, "maria", "guess")
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, isAdmin)
	})

	t.Run("unknown user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewUserRepo(mockDB)

		mockDB.EXPECT().ExecQueryRow(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(stubRow{err: pgx.ErrNoRows})

		ok, isAdmin, err := repo.ValidateUser(ctx, "nobody", "s3cret")
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, isAdmin)
	})
}

func TestUserRepo_EnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("blank credentials disable bootstrap", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := postgresql.NewUserRepo(mock_database.NewMockDB(ctrl))
		assert.NoError(t, repo.EnsureAdmin(ctx, "", "s3cret"))
		assert.NoError(t, repo.EnsureAdmin(ctx, "admin", ""))
	})

	t.Run("existing admin is kept", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewUserRepo(mockDB)

		mockDB.EXPECT().ExecQueryRow(gomock.Any(), gomock.Any(), gomock.Eq("admin")).
			Return(stubRow{vals: []interface{}{1}})

		assert.NoError(t, repo.EnsureAdmin(ctx, "admin", "s3cret"))
	})

	t.Run("missing admin is created with admin flag", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewUserRepo(mockDB)

		mockDB.EXPECT().ExecQueryRow(gomock.Any(), gomock.Any(), gomock.Eq("admin")).
			Return(stubRow{vals: []interface{}{0}})
		mockDB.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Eq("admin"), gomock.Any(), gomock.Eq(true)).
			Return(nil, nil)

		assert.NoError(t, repo.EnsureAdmin(ctx, "admin", "s3cret"))
	})
}
