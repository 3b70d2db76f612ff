package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")
	ErrExpired    = errors.New("jwtx: token expired")
	ErrIssuer     = errors.New("jwtx: issuer mismatch")
	ErrEmptyKey   = errors.New("jwtx: signing key must not be empty")
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// HS256 signs and verifies tokens with a single HMAC-SHA256 secret. The
// service holds two of these, one per token class, so that compromise of
// one secret does not compromise the other.
type HS256 struct {
	secret []byte
	issuer string
}

// NewHS256 builds a signer/verifier around the given secret.
func NewHS256(secret []byte, issuer string) (*HS256, error) {
	if len(secret) == 0 {
		return nil, ErrEmptyKey
	}
	return &HS256{secret: secret, issuer: issuer}, nil
}

// Issuer returns the configured "iss" claim value.
func (h *HS256) Issuer() string { return h.issuer }

// Sign produces a compact HS256 JWT from the claims.
func (h *HS256) Sign(claims Claims) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	return tok.SignedString(h.secret)
}

// Verify parses and validates a token, mapping library failures onto the
// jwtx sentinels so callers can distinguish "expired" from "invalid" for
// UX messaging.
func (h *HS256) Verify(token string) (Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if h.issuer != "" {
		opts = append(opts, jwt.WithIssuer(h.issuer))
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return h.secret, nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		case errors.Is(err, jwt.ErrTokenInvalidIssuer):
			return Claims{}, ErrIssuer
		default:
			return Claims{}, ErrInvalidSig
		}
	}

	return claims, nil
}

// DecodeUnverified extracts claims WITHOUT validating the signature or
// expiry. Last-resort use only: logging out with an already-expired refresh
// token still needs to identify whose token set to clean.
func DecodeUnverified(token string) (Claims, error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Claims{}, ErrMalformed
	}
	return claims, nil
}
