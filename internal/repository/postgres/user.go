package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Prem324/bookshelf/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const pgUniqueViolation = "23505"

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

const userColumns = `id, name, email, password_hash, role, reset_code_hash, reset_code_expires_at, created_at, updated_at`

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
		&user.ResetCodeHash, &user.ResetCodeExpiresAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (model.User, error) {
	var user model.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
		&user.ResetCodeHash, &user.ResetCodeExpiresAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (name, email, password_hash, role)
			  VALUES ($1, $2, $3, $4)
			  RETURNING ` + userColumns

	var saved model.User
	err := r.db.QueryRow(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Role.OrDefault(),
	).Scan(
		&saved.ID, &saved.Name, &saved.Email, &saved.PasswordHash, &saved.Role,
		&saved.ResetCodeHash, &saved.ResetCodeExpiresAt, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return model.User{}, model.ErrEmailTaken
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return saved, nil
}

// SetResetCode stores the hash and expiry of a freshly issued OTP,
// overwriting any previous pending code.
func (r *UserRepository) SetResetCode(ctx context.Context, userID int64, codeHash string, expiresAt time.Time) error {
	query := `UPDATE users SET reset_code_hash = $2, reset_code_expires_at = $3, updated_at = NOW()
			  WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, userID, codeHash, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to set reset code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// ResetPassword replaces the password hash and clears the pending OTP in a
// single statement, making each code single-use.
func (r *UserRepository) ResetPassword(ctx context.Context, userID int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, reset_code_hash = NULL, reset_code_expires_at = NULL, updated_at = NOW()
			  WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, userID, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
