package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/fastybox/forwarding/internal/db"
)

type UserRepo struct {
	db db.DB
}

func NewUserRepo(db db.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) CreateUser(ctx context.Context, username, password string, isAdmin bool) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		"INSERT INTO users (username, password, is_admin) VALUES ($1, $2, $3)",
		username, string(hashed), isAdmin)
	return err
}

// EnsureAdmin creates the bootstrap staff account when it does not exist
// yet. Idempotent across restarts; a blank username or password disables
// the bootstrap.
func (r *UserRepo) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	var count int
	err := r.db.ExecQueryRow(ctx,
		"SELECT COUNT(*) FROM users WHERE username = $1", username,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if count > 0 {
		return nil
	}

	if err := r.CreateUser(ctx, username, password, true); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	return nil
}

// ValidateUser returns (authenticated, isAdmin). Unknown users and bad
// passwords are both reported as unauthenticated without an error.
func (r *UserRepo) ValidateUser(ctx context.Context, username, password string) (bool, bool, error) {
	var hashed string
	var isAdmin bool
	err := r.db.ExecQueryRow(ctx,
		"SELECT password, is_admin FROM users WHERE username = $1", username,
	).Scan(&hashed, &isAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, false, nil
		}
		return false, false, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)); err != nil {
		return false, false, nil
	}
	return true, isAdmin, nil
}
