package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Prem324/bookshelf/internal/model"
)

// Claims represents JWT claims with token type, user ID and role.
// Claim names match the wire format consumed by clients: id, role, type.
type Claims struct {
	jwt.RegisteredClaims
	UserID    int64      `json:"id"`
	Role      model.Role `json:"role"`
	TokenType string     `json:"type"`
}

// JWT implements model.TokenManager backed by symmetric HMAC-SHA256.
type JWT struct {
	secretKey  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWT creates a token manager with the provided secret key and TTLs.
func NewJWT(secretKey string, accessTTL, refreshTTL time.Duration) *JWT {
	return &JWT{secretKey: secretKey, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

const (
	typeAccess  = "access"
	typeRefresh = "refresh"
)

// RefreshTTL exposes the refresh token lifetime so the ledger row expiry
// stays in sync with the claim expiry.
func (j *JWT) RefreshTTL() time.Duration {
	return j.refreshTTL
}

// GenerateAccessToken creates a short-lived access token.
func (j *JWT) GenerateAccessToken(userID int64, role model.Role) (string, error) {
	return j.sign(userID, role, typeAccess, j.accessTTL)
}

// GenerateRefreshToken creates a long-lived refresh token.
func (j *JWT) GenerateRefreshToken(userID int64, role model.Role) (string, error) {
	return j.sign(userID, role, typeRefresh, j.refreshTTL)
}

func (j *JWT) sign(userID int64, role model.Role, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    userID,
		Role:      role.OrDefault(),
		TokenType: tokenType,
	})
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", err
	}
	return signed, nil
}

// ParseAccessToken validates an access token and extracts the identity.
// Signature, structural and expiry failures all collapse to
// model.ErrInvalidToken so callers cannot probe which check failed.
func (j *JWT) ParseAccessToken(tokenString string) (model.Identity, error) {
	return j.parse(tokenString, typeAccess)
}

// ParseRefreshToken validates a refresh token and extracts the identity.
func (j *JWT) ParseRefreshToken(tokenString string) (model.Identity, error) {
	return j.parse(tokenString, typeRefresh)
}

func (j *JWT) parse(tokenString, wantType string) (model.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, model.ErrInvalidToken
		}
		return []byte(j.secretKey), nil
	})
	if err != nil || !token.Valid {
		return model.Identity{}, model.ErrInvalidToken
	}
	if claims.TokenType != wantType {
		return model.Identity{}, model.ErrInvalidToken
	}
	if claims.UserID <= 0 {
		return model.Identity{}, model.ErrInvalidToken
	}
	return model.Identity{UserID: claims.UserID, Role: claims.Role.OrDefault()}, nil
}
