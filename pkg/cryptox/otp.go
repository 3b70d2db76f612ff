package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"math/big"
	"regexp"
)

// OTP codes are 6 ASCII digits, uniform in [100000, 999999].
const (
	otpMin   = 100000
	otpRange = 900000
)

var otpPattern = regexp.MustCompile(`^\d{6}$`)

// GenerateOTPCode returns a fresh 6-digit verification code drawn from
// crypto/rand.
func GenerateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpRange))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp code: %w", err)
	}
	return fmt.Sprintf("%06d", otpMin+n.Int64()), nil
}

// IsOTPFormat reports whether s looks like a well-formed code. Callers use
// this as a cheap rejection before any store lookup.
func IsOTPFormat(s string) bool {
	return otpPattern.MatchString(s)
}

// FingerprintToken returns a deterministic SHA-256 fingerprint of a token.
// This is used to store hashed tokens in databases, allowing lookup without
// storing the original token value.
//
// The fingerprint is returned as a base64url-encoded string (43 chars).
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
