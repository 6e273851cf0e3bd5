package model

// Identity is the verified result of token validation: who the caller is
// and what they may do.
type Identity struct {
	UserID int64 `json:"user_id"`
	Role   Role  `json:"role"`
}

// Admin reports whether the identity bypasses ownership scoping.
func (i Identity) Admin() bool {
	return i.Role == RoleAdmin
}

// TokenManager signs and verifies access/refresh tokens. Verification is
// stateless: signature plus expiry plus the embedded token type.
type TokenManager interface {
	GenerateAccessToken(userID int64, role Role) (string, error)
	GenerateRefreshToken(userID int64, role Role) (string, error)
	ParseAccessToken(token string) (Identity, error)
	ParseRefreshToken(token string) (Identity, error)
}
