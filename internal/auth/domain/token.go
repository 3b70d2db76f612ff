package domain

import "time"

// MaxRefreshTokensPerUser caps the live sessions per user. Logging in past
// the cap evicts the oldest stored token.
const MaxRefreshTokensPerUser = 5

// TokenPair is what successful authentication returns: a short-lived access
// JWT and a longer-lived refresh JWT.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshToken models a stored refresh token record. Only the fingerprint of
// the JWT is persisted; validity requires both a good signature and a
// matching row here, so logout and password reset can revoke tokens before
// their natural expiry.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string // deterministic fingerprint (base64url SHA-256)
	ExpiresAt time.Time
	CreatedAt time.Time
}
