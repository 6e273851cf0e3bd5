package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Prem324/bookshelf/internal/api/http/handler/mocks"
	"github.com/Prem324/bookshelf/internal/model"
	"github.com/Prem324/bookshelf/internal/service"
)

func newAuthContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("Register", mock.Anything, "Jane", "jane@example.com", "password123").
			Return(model.PublicUser{ID: 1, Name: "Jane", Email: "jane@example.com", Role: model.RoleUser}, nil).Once()

		c, rec := newAuthContext(http.MethodPost, "/users/register", `{"name":"Jane","email":"jane@example.com","password":"password123"}`)

		require.NoError(t, NewAuthHandler(svc).Register(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"id":1,"name":"Jane","email":"jane@example.com","role":"user"}`, rec.Body.String())
	})

	t.Run("conflict on duplicate email", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(model.PublicUser{}, model.ErrEmailTaken).Once()

		c, rec := newAuthContext(http.MethodPost, "/users/register", `{"name":"Jane","email":"jane@example.com","password":"password123"}`)

		require.NoError(t, NewAuthHandler(svc).Register(c))
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "detail")
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := mocks.NewAuthService(t)

		c, rec := newAuthContext(http.MethodPost, "/users/register", `{"name":`)

		require.NoError(t, NewAuthHandler(svc).Register(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns pair", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("Login", mock.Anything, "jane@example.com", "password123").
			Return(service.TokenPair{Token: "access", RefreshToken: "refresh"}, nil).Once()

		c, rec := newAuthContext(http.MethodPost, "/users/login", `{"email":"jane@example.com","password":"password123"}`)

		require.NoError(t, NewAuthHandler(svc).Login(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"token":"access","refresh_token":"refresh"}`, rec.Body.String())
	})

	t.Run("bad credentials", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("Login", mock.Anything, mock.Anything, mock.Anything).
			Return(service.TokenPair{}, model.ErrInvalidCredentials).Once()

		c, rec := newAuthContext(http.MethodPost, "/users/login", `{"email":"jane@example.com","password":"nope-nope"}`)

		require.NoError(t, NewAuthHandler(svc).Login(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandler_Refresh(t *testing.T) {
	t.Run("rotates", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("Refresh", mock.Anything, "refresh-old").
			Return(service.TokenPair{Token: "access-new", RefreshToken: "refresh-new"}, nil).Once()

		c, rec := newAuthContext(http.MethodPost, "/users/refresh", `{"refresh_token":"refresh-old"}`)

		require.NoError(t, NewAuthHandler(svc).Refresh(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"token":"access-new","refresh_token":"refresh-new"}`, rec.Body.String())
	})

	t.Run("rejected token", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("Refresh", mock.Anything, "stale").
			Return(service.TokenPair{}, model.ErrInvalidToken).Once()

		c, rec := newAuthContext(http.MethodPost, "/users/refresh", `{"refresh_token":"stale"}`)

		require.NoError(t, NewAuthHandler(svc).Refresh(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthHandler_Validate(t *testing.T) {
	t.Run("resolves identity", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("Validate", mock.Anything, "token-abc").
			Return(model.Identity{UserID: 42, Role: model.RoleAdmin}, nil).Once()

		c, rec := newAuthContext(http.MethodGet, "/users/validate", "")
		c.Request().Header.Set(echo.HeaderAuthorization, "Bearer token-abc")

		require.NoError(t, NewAuthHandler(svc).Validate(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"user_id":42,"role":"admin"}`, rec.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		svc := mocks.NewAuthService(t)

		c, rec := newAuthContext(http.MethodGet, "/users/validate", "")

		require.NoError(t, NewAuthHandler(svc).Validate(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthHandler_ForgotPassword(t *testing.T) {
	t.Run("sends code", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("ForgotPassword", mock.Anything, "jane@example.com").Return(nil).Once()

		c, rec := newAuthContext(http.MethodPost, "/users/forgot-password", `{"email":"jane@example.com"}`)

		require.NoError(t, NewAuthHandler(svc).ForgotPassword(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("ForgotPassword", mock.Anything, "nobody@example.com").Return(model.ErrNotFound).Once()

		c, rec := newAuthContext(http.MethodPost, "/users/forgot-password", `{"email":"nobody@example.com"}`)

		require.NoError(t, NewAuthHandler(svc).ForgotPassword(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAuthHandler_ResetPassword(t *testing.T) {
	t.Run("resets", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("ResetPassword", mock.Anything, "jane@example.com", "123456", "new-password").Return(nil).Once()

		c, rec := newAuthContext(http.MethodPost, "/users/reset-password", `{"email":"jane@example.com","otp":"123456","new_password":"new-password"}`)

		require.NoError(t, NewAuthHandler(svc).ResetPassword(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejected otp", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("ResetPassword", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(model.ErrInvalidResetRequest).Once()

		c, rec := newAuthContext(http.MethodPost, "/users/reset-password", `{"email":"jane@example.com","otp":"000000","new_password":"new-password"}`)

		require.NoError(t, NewAuthHandler(svc).ResetPassword(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
