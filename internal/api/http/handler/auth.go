package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Prem324/bookshelf/internal/model"
	"github.com/Prem324/bookshelf/internal/service"
)

// AuthService is the slice of the auth domain the HTTP layer consumes.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (model.PublicUser, error)
	Login(ctx context.Context, email, password string) (service.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (service.TokenPair, error)
	Validate(ctx context.Context, accessToken string) (model.Identity, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

type AuthHandler struct {
	service AuthService
}

func NewAuthHandler(s AuthService) *AuthHandler { return &AuthHandler{service: s} }

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"new_password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	req := new(registerRequest)
	if err := c.Bind(req); err != nil {
		return badRequest(c, "invalid payload")
	}
	user, err := h.service.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	req := new(loginRequest)
	if err := c.Bind(req); err != nil {
		return badRequest(c, "invalid payload")
	}
	pair, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, pair)
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	req := new(refreshRequest)
	if err := c.Bind(req); err != nil {
		return badRequest(c, "invalid payload")
	}
	pair, err := h.service.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, pair)
}

// Validate resolves the bearer token of the request to the identity it
// carries. The book service calls this on every authenticated request.
func (h *AuthHandler) Validate(c echo.Context) error {
	token, ok := bearerToken(c)
	if !ok {
		return errorResponse(c, model.ErrInvalidToken)
	}
	identity, err := h.service.Validate(c.Request().Context(), token)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, identity)
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	req := new(forgotPasswordRequest)
	if err := c.Bind(req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := h.service.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "password reset code sent"})
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	req := new(resetPasswordRequest)
	if err := c.Bind(req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := h.service.ResetPassword(c.Request().Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "password has been reset"})
}

func bearerToken(c echo.Context) (string, bool) {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	token, found := strings.CutPrefix(auth, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}
