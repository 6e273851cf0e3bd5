package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Prem324/bookshelf/internal/logger"
	"github.com/Prem324/bookshelf/internal/model"
)

// TokenService issues, rotates and validates bearer tokens. It composes
// the TokenManager (stateless codec) and the RefreshTokenStore (revocable
// ledger): access tokens live and die by their signature, refresh tokens
// additionally answer to the ledger.
type TokenService struct {
	manager    model.TokenManager
	ledger     model.RefreshTokenStore
	users      model.UserStore
	refreshTTL time.Duration
	logger     *logger.Logger
}

func NewTokenService(manager model.TokenManager, ledger model.RefreshTokenStore, users model.UserStore, refreshTTL time.Duration, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, ledger: ledger, users: users, refreshTTL: refreshTTL, logger: logger}
}

// TokenPair is the client-facing result of login and refresh.
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// Issue mints an access/refresh pair for the user and records the refresh
// token's hash in the ledger.
func (s *TokenService) Issue(ctx context.Context, user model.User) (TokenPair, error) {
	role := user.Role.OrDefault()

	access, err := s.manager.GenerateAccessToken(user.ID, role)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue access: %w", err)
	}

	refresh, err := s.manager.GenerateRefreshToken(user.ID, role)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue refresh: %w", err)
	}

	rt := model.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(refresh),
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}
	if err := s.ledger.Create(ctx, rt); err != nil {
		return TokenPair{}, fmt.Errorf("persist refresh: %w", err)
	}

	return TokenPair{Token: access, RefreshToken: refresh}, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a
// brand-new pair is issued, revocation and persistence of the replacement
// happening in one ledger transaction. Each refresh token is single-use;
// replaying a consumed one fails. Every failure mode is reported as
// model.ErrInvalidToken so callers cannot tell a revoked token from an
// unknown one.
func (s *TokenService) Refresh(ctx context.Context, presented string) (TokenPair, error) {
	identity, err := s.manager.ParseRefreshToken(presented)
	if err != nil {
		return TokenPair{}, model.ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return TokenPair{}, model.ErrInvalidToken
		}
		return TokenPair{}, fmt.Errorf("load token owner: %w", err)
	}
	role := user.Role.OrDefault()

	// Mint the replacement pair before touching the ledger so no signing
	// work happens inside the transaction.
	access, err := s.manager.GenerateAccessToken(user.ID, role)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue new access: %w", err)
	}
	refresh, err := s.manager.GenerateRefreshToken(user.ID, role)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue new refresh: %w", err)
	}

	next := model.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(refresh),
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}

	consumed, err := s.ledger.Rotate(ctx, hashToken(presented), next)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrTokenRevoked) || errors.Is(err, model.ErrTokenExpired) {
			s.logger.Info("refresh token rejected", "user_id", user.ID, "reason", err.Error())
			return TokenPair{}, model.ErrInvalidToken
		}
		return TokenPair{}, fmt.Errorf("rotate refresh: %w", err)
	}

	if consumed.UserID != user.ID {
		return TokenPair{}, model.ErrInvalidToken
	}

	return TokenPair{Token: access, RefreshToken: refresh}, nil
}

// Validate checks an access token without side effects and returns the
// caller's identity. Safe for unbounded concurrent use.
func (s *TokenService) Validate(token string) (model.Identity, error) {
	return s.manager.ParseAccessToken(token)
}

// RevokeAllForUser invalidates every live refresh token of a user.
func (s *TokenService) RevokeAllForUser(ctx context.Context, userID int64) error {
	return s.ledger.RevokeAllByUser(ctx, userID)
}

// hashToken digests a raw bearer token for ledger storage and lookup.
// Refresh tokens are high-entropy signed strings, so a fast hash is enough;
// the slow password hash is reserved for user-chosen secrets.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
