package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Prem324/bookshelf/internal/model"
)

var _ model.RefreshTokenStore = (*RefreshTokenRepository)(nil)

type RefreshTokenRepository struct {
	db *Connection
}

func NewRefreshTokenRepository(db *Connection) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token model.RefreshToken) error {
	const query = `
        INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, revoked, created_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
    `

	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}

	_, err := r.db.Exec(ctx, query,
		token.ID, token.UserID, token.TokenHash, token.ExpiresAt, token.Revoked,
	)
	if err != nil {
		return fmt.Errorf("failed to create refresh token: %w", err)
	}
	return nil
}

// Rotate revokes the live row matching oldHash and inserts next, both in
// one transaction. The conditional UPDATE is the serialization point:
// concurrent rotations of the same token race on it and exactly one sees a
// row; the rest roll back without inserting anything.
func (r *RefreshTokenRepository) Rotate(ctx context.Context, oldHash string, next model.RefreshToken) (model.RefreshToken, error) {
	const consumeQuery = `
        UPDATE refresh_tokens SET revoked = TRUE
        WHERE token_hash = $1 AND NOT revoked AND expires_at > NOW()
        RETURNING id, user_id, token_hash, expires_at, revoked, created_at
    `
	const insertQuery = `
        INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, revoked, created_at)
        VALUES ($1, $2, $3, $4, FALSE, NOW())
    `

	if next.ID == uuid.Nil {
		next.ID = uuid.New()
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.RefreshToken{}, fmt.Errorf("failed to begin rotation: %w", err)
	}
	defer tx.Rollback(ctx)

	var consumed model.RefreshToken
	err = tx.QueryRow(ctx, consumeQuery, oldHash).Scan(
		&consumed.ID, &consumed.UserID, &consumed.TokenHash,
		&consumed.ExpiresAt, &consumed.Revoked, &consumed.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.RefreshToken{}, r.classify(ctx, oldHash)
		}
		return model.RefreshToken{}, fmt.Errorf("failed to consume refresh token: %w", err)
	}

	if _, err := tx.Exec(ctx, insertQuery, next.ID, next.UserID, next.TokenHash, next.ExpiresAt); err != nil {
		return model.RefreshToken{}, fmt.Errorf("failed to persist rotated refresh token: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.RefreshToken{}, fmt.Errorf("failed to commit rotation: %w", err)
	}

	return consumed, nil
}

// classify explains why the conditional consume matched nothing. The
// distinction stays internal; callers surface one uniform error.
func (r *RefreshTokenRepository) classify(ctx context.Context, tokenHash string) error {
	const query = `SELECT revoked, expires_at FROM refresh_tokens WHERE token_hash = $1`

	var revoked bool
	var expiresAt time.Time
	err := r.db.QueryRow(ctx, query, tokenHash).Scan(&revoked, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to classify refresh token: %w", err)
	}
	if revoked {
		return model.ErrTokenRevoked
	}
	return model.ErrTokenExpired
}

// Revoke flips the revoked flag. Revoking an already revoked or unknown
// token is a no-op.
func (r *RefreshTokenRepository) Revoke(ctx context.Context, tokenHash string) error {
	const query = `UPDATE refresh_tokens SET revoked = TRUE WHERE token_hash = $1 AND NOT revoked`
	if _, err := r.db.Exec(ctx, query, tokenHash); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) RevokeAllByUser(ctx context.Context, userID int64) error {
	const query = `UPDATE refresh_tokens SET revoked = TRUE WHERE user_id = $1 AND NOT revoked`
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens by user: %w", err)
	}
	return nil
}
