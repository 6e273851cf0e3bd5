package model

import (
	"context"
	"time"
)

// Role is the closed set of authorization roles.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// OrDefault returns the role itself, or RoleUser for an empty or unknown
// value. Rows written before the role column got a default may carry an
// empty string.
func (r Role) OrDefault() Role {
	if !r.Valid() {
		return RoleUser
	}
	return r
}

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	Create(ctx context.Context, user User) (User, error)
	SetResetCode(ctx context.Context, userID int64, codeHash string, expiresAt time.Time) error
	ResetPassword(ctx context.Context, userID int64, passwordHash string) error
}

// User represents a stored user with authentication material.
// ResetCodeHash and ResetCodeExpiresAt hold the pending password-reset OTP;
// both are nil when no reset is in flight.
type User struct {
	ID                 int64
	Name               string
	Email              string
	PasswordHash       string
	Role               Role
	ResetCodeHash      *string
	ResetCodeExpiresAt *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// PublicUser is the externally visible view of a user. It never carries
// password or reset-code material.
type PublicUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Public returns the safe projection of the user.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role.OrDefault()}
}
