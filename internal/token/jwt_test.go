package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Prem324/bookshelf/internal/model"
)

func TestJWT_AccessToken_Roundtrip(t *testing.T) {
	j := NewJWT("secret", 15*time.Minute, 7*24*time.Hour)

	access, err := j.GenerateAccessToken(42, model.RoleAdmin)
	require.NoError(t, err)

	got, err := j.ParseAccessToken(access)
	require.NoError(t, err)
	require.Equal(t, int64(42), got.UserID)
	require.Equal(t, model.RoleAdmin, got.Role)
}

func TestJWT_RefreshToken_Roundtrip(t *testing.T) {
	j := NewJWT("secret", 15*time.Minute, 7*24*time.Hour)

	refresh, err := j.GenerateRefreshToken(7, model.RoleUser)
	require.NoError(t, err)

	got, err := j.ParseRefreshToken(refresh)
	require.NoError(t, err)
	require.Equal(t, int64(7), got.UserID)
	require.Equal(t, model.RoleUser, got.Role)
}

func TestJWT_TokenType_Mismatch(t *testing.T) {
	j := NewJWT("secret", 15*time.Minute, 7*24*time.Hour)

	access, err := j.GenerateAccessToken(1, model.RoleUser)
	require.NoError(t, err)
	refresh, err := j.GenerateRefreshToken(1, model.RoleUser)
	require.NoError(t, err)

	_, err = j.ParseRefreshToken(access)
	require.ErrorIs(t, err, model.ErrInvalidToken)

	// A refresh token never passes as an access token, even when well
	// formed and unexpired.
	_, err = j.ParseAccessToken(refresh)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_ZeroTTL_ImmediatelyInvalid(t *testing.T) {
	j := NewJWT("secret", 0, 7*24*time.Hour)

	access, err := j.GenerateAccessToken(1, model.RoleUser)
	require.NoError(t, err)

	_, err = j.ParseAccessToken(access)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_WrongSecret_UniformError(t *testing.T) {
	j := NewJWT("secret", 15*time.Minute, 7*24*time.Hour)
	other := NewJWT("other-secret", 15*time.Minute, 7*24*time.Hour)

	access, err := j.GenerateAccessToken(1, model.RoleUser)
	require.NoError(t, err)

	_, sigErr := other.ParseAccessToken(access)
	require.ErrorIs(t, sigErr, model.ErrInvalidToken)

	expired := NewJWT("secret", -time.Minute, 7*24*time.Hour)
	tok, err := expired.GenerateAccessToken(1, model.RoleUser)
	require.NoError(t, err)
	_, expErr := j.ParseAccessToken(tok)
	require.ErrorIs(t, expErr, model.ErrInvalidToken)

	// Signature and expiry failures are indistinguishable.
	require.Equal(t, sigErr.Error(), expErr.Error())
}

func TestJWT_Garbage(t *testing.T) {
	j := NewJWT("secret", 15*time.Minute, 7*24*time.Hour)

	_, err := j.ParseAccessToken("not.a.token")
	require.ErrorIs(t, err, model.ErrInvalidToken)

	_, err = j.ParseAccessToken("")
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_RoleDefaulted(t *testing.T) {
	j := NewJWT("secret", 15*time.Minute, 7*24*time.Hour)

	access, err := j.GenerateAccessToken(3, "")
	require.NoError(t, err)

	got, err := j.ParseAccessToken(access)
	require.NoError(t, err)
	require.Equal(t, model.RoleUser, got.Role)
}
