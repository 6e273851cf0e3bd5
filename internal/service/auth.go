package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Prem324/bookshelf/internal/logger"
	"github.com/Prem324/bookshelf/internal/model"
	"github.com/Prem324/bookshelf/internal/otp"
)

// passwordHashCost keeps bcrypt verification around the hundred-millisecond
// mark on commodity hardware.
const passwordHashCost = 12

// Auth orchestrates registration, login, token rotation and the
// password-reset flow on top of the credential store, the token service
// and the notifier.
type Auth struct {
	users    model.UserStore
	tokens   *TokenService
	notifier model.Notifier
	logger   *logger.Logger
}

func NewAuth(users model.UserStore, tokens *TokenService, notifier model.Notifier, logger *logger.Logger) *Auth {
	return &Auth{users: users, tokens: tokens, notifier: notifier, logger: logger}
}

// Register creates a user with role "user" and returns its public view.
// Emails are case-folded before storage so look-alike accounts cannot
// coexist.
func (a *Auth) Register(ctx context.Context, name, email, password string) (model.PublicUser, error) {
	norm := normalizeEmail(email)
	if err := validateEmail(norm); err != nil {
		return model.PublicUser{}, err
	}
	if err := validatePassword(password); err != nil {
		return model.PublicUser{}, err
	}
	if strings.TrimSpace(name) == "" {
		return model.PublicUser{}, fmt.Errorf("%w: name is required", model.ErrInvalidArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return model.PublicUser{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := a.users.Create(ctx, model.User{
		Name:         strings.TrimSpace(name),
		Email:        norm,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
	})
	if err != nil {
		return model.PublicUser{}, err
	}

	a.logger.Info("user registered", "user_id", user.ID)
	return user.Public(), nil
}

// Login verifies credentials and issues an access/refresh pair. Unknown
// email and wrong password are deliberately indistinguishable.
func (a *Auth) Login(ctx context.Context, email, password string) (TokenPair, error) {
	norm := normalizeEmail(email)

	user, err := a.users.GetByEmail(ctx, norm)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return TokenPair{}, model.ErrInvalidCredentials
		}
		return TokenPair{}, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return TokenPair{}, model.ErrInvalidCredentials
	}

	pair, err := a.tokens.Issue(ctx, user)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue tokens: %w", err)
	}

	a.logger.Info("user logged in", "user_id", user.ID)
	return pair, nil
}

// Refresh rotates a refresh token.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	return a.tokens.Refresh(ctx, refreshToken)
}

// Validate resolves an access token to the caller's identity. Stateless
// and side-effect-free.
func (a *Auth) Validate(ctx context.Context, accessToken string) (model.Identity, error) {
	return a.tokens.Validate(accessToken)
}

// ForgotPassword issues a reset OTP and requests out-of-band delivery. The
// OTP state is committed before the send is attempted, so a delivery
// failure never loses the issued code.
func (a *Auth) ForgotPassword(ctx context.Context, email string) error {
	norm := normalizeEmail(email)

	user, err := a.users.GetByEmail(ctx, norm)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("load user: %w", err)
	}

	code, err := otp.Generate()
	if err != nil {
		return err
	}

	if err := a.users.SetResetCode(ctx, user.ID, otp.Hash(code), time.Now().Add(otp.TTL)); err != nil {
		return fmt.Errorf("store reset code: %w", err)
	}

	body := fmt.Sprintf("Your OTP code is %s. It expires in %d minutes.", code, int(otp.TTL.Minutes()))
	if err := a.notifier.Send(ctx, norm, "Your password reset code", body); err != nil {
		a.logger.Error("failed to send reset code", "user_id", user.ID, "error", err.Error())
		return fmt.Errorf("%w: %s", model.ErrDeliveryFailed, err)
	}

	a.logger.Info("password reset requested", "user_id", user.ID)
	return nil
}

// ResetPassword consumes a pending OTP and replaces the password. Unknown
// email, absent code, expired code and mismatched code all collapse to
// model.ErrInvalidResetRequest so the endpoint cannot be used as a
// guessing oracle. A consumed code is cleared and every live refresh token
// of the user is revoked.
func (a *Auth) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	norm := normalizeEmail(email)
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	user, err := a.users.GetByEmail(ctx, norm)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrInvalidResetRequest
		}
		return fmt.Errorf("load user: %w", err)
	}

	if user.ResetCodeHash == nil || user.ResetCodeExpiresAt == nil {
		return model.ErrInvalidResetRequest
	}
	if time.Now().After(*user.ResetCodeExpiresAt) {
		return model.ErrInvalidResetRequest
	}
	if subtle.ConstantTimeCompare([]byte(otp.Hash(code)), []byte(*user.ResetCodeHash)) != 1 {
		return model.ErrInvalidResetRequest
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), passwordHashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := a.users.ResetPassword(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	// Existing sessions were authorized by the old password.
	if err := a.tokens.RevokeAllForUser(ctx, user.ID); err != nil {
		a.logger.Error("failed to revoke sessions after reset", "user_id", user.ID, "error", err.Error())
	}

	a.logger.Info("password reset completed", "user_id", user.ID)
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if !strings.Contains(email, "@") || len(email) > 255 {
		return fmt.Errorf("%w: invalid email", model.ErrInvalidArgument)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password too short", model.ErrInvalidArgument)
	}
	return nil
}
