package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTL constants for the auth flows. These provide sensible
// security defaults but can be overridden per-service via config.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	// Short-lived for security - typical range is 15m to 1h.
	DefaultAccessTokenTTL = 15 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	// Longer-lived for user convenience - typical range is 7d to 30d.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Claims are the token claims used across the service. Access tokens carry
// the user's email and role so protected endpoints can authorize without a
// store lookup; refresh tokens carry only the subject.
type Claims struct {
	jwt.RegisteredClaims

	// Email of the authenticated user (access tokens only)
	Email string `json:"email,omitempty"`

	// Role is the user's role category, e.g. "Member" (access tokens only)
	Role string `json:"role,omitempty"`
}

// UserID returns the subject claim, which is the owning user's ID.
func (c *Claims) UserID() string { return c.Subject }

// NewAccessClaims builds minimally-correct access-token claims.
func NewAccessClaims(userID, email, role string, ttl time.Duration, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Email: email,
		Role:  role,
	}
}

// NewRefreshClaims builds refresh-token claims. Only the subject is carried;
// everything else about the session lives server-side in the user's
// refresh-token set.
func NewRefreshClaims(userID string, ttl time.Duration, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim. The jti
// also guarantees two tokens minted in the same second differ.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
