// Package otp generates and hashes the one-time codes used by the
// password-reset flow.
package otp

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"
)

// TTL is the absolute lifetime of an issued code.
const TTL = 15 * time.Minute

var codeSpace = big.NewInt(1000000)

// Generate returns a 6-digit numeric code from a cryptographically secure
// source. Leading zeros are preserved.
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Hash returns the hex SHA-256 digest of a code. Only the digest is ever
// persisted; the short TTL and single-use consumption bound offline
// guessing, so a fast hash suffices.
func Hash(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
