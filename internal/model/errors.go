package model

import "errors"

var (
	// ErrNotFound is returned by stores when a row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken is returned on registration with a duplicate email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidArgument is returned for malformed or missing input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	// The two cases are deliberately indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is the uniform verification failure for bearer
	// tokens: bad signature, malformed, expired, wrong type, or a refresh
	// token the ledger no longer honors.
	ErrInvalidToken = errors.New("invalid token")

	// Ledger-internal states of a refresh token row. The auth engine
	// collapses all of them to ErrInvalidToken before they reach a client.
	ErrTokenRevoked = errors.New("refresh token revoked")
	ErrTokenExpired = errors.New("refresh token expired")

	// ErrInvalidResetRequest is the uniform failure of the OTP reset flow:
	// unknown email, no pending code, expired code or a mismatched code.
	ErrInvalidResetRequest = errors.New("invalid email or OTP")

	// ErrAuthUnavailable means the auth service could not be reached for
	// remote token validation.
	ErrAuthUnavailable = errors.New("auth service unavailable")

	// ErrDeliveryFailed means the outbound email provider rejected the
	// send or could not be reached.
	ErrDeliveryFailed = errors.New("failed to send email")

	// ErrStorageUnavailable means the image blob store rejected an upload
	// or is not configured.
	ErrStorageUnavailable = errors.New("image storage unavailable")

	// ErrCacheMiss is returned by caches for absent keys.
	ErrCacheMiss = errors.New("cache miss")
)
