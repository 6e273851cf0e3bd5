package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RefreshTokenStore is the ledger of issued refresh tokens. Rows are keyed
// by the SHA-256 hash of the raw token and are never deleted; revocation is
// a monotonic flag flip.
type RefreshTokenStore interface {
	Create(ctx context.Context, token RefreshToken) error
	// Rotate atomically revokes the live row matching oldHash and inserts
	// next in a single transaction. It fails with ErrNotFound,
	// ErrTokenRevoked or ErrTokenExpired when oldHash does not resolve to a
	// live row; concurrent rotations of the same token admit one winner.
	Rotate(ctx context.Context, oldHash string, next RefreshToken) (RefreshToken, error)
	Revoke(ctx context.Context, tokenHash string) error
	RevokeAllByUser(ctx context.Context, userID int64) error
}

// RefreshToken is a ledger row. TokenHash is the hex SHA-256 digest of the
// raw token; the raw value is never persisted.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    int64
	TokenHash string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
}

// Live reports whether the row can still be consumed for rotation.
func (t RefreshToken) Live(now time.Time) bool {
	return !t.Revoked && now.Before(t.ExpiresAt)
}
