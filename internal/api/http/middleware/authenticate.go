// Package middleware carries the trust boundary between the book service
// and the auth service.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Prem324/bookshelf/internal/model"
)

const identityKey = "identity"

// TokenValidator resolves an access token to an identity. Implemented by
// the auth service client.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (model.Identity, error)
}

// Authenticate requires a valid bearer token on every request and stores
// the resolved identity on the echo context. An unreachable auth service
// maps to 503, anything the auth service rejects to 401.
func Authenticate(validator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(auth, "Bearer ")
			if !found || token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"detail": "missing bearer token"})
			}

			identity, err := validator.Validate(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, model.ErrAuthUnavailable) {
					return c.JSON(http.StatusServiceUnavailable, map[string]string{"detail": model.ErrAuthUnavailable.Error()})
				}
				return c.JSON(http.StatusUnauthorized, map[string]string{"detail": model.ErrInvalidToken.Error()})
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// IdentityFromContext returns the identity stored by Authenticate.
func IdentityFromContext(c echo.Context) (model.Identity, bool) {
	identity, ok := c.Get(identityKey).(model.Identity)
	return identity, ok
}

// SetIdentity stores an identity the way Authenticate does. Intended for
// handler tests that bypass the middleware.
func SetIdentity(c echo.Context, identity model.Identity) {
	c.Set(identityKey, identity)
}
