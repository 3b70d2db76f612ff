package service

import (
	"time"

	"github.com/nimbuslabs/nimbus/internal/auth/domain"
	"github.com/nimbuslabs/nimbus/pkg/jwtx"
)

// TokenService issues and verifies the JWT pair. Access and refresh tokens
// use distinct signing secrets so compromise of one does not compromise the
// other; refresh validity additionally requires membership in the user's
// stored token set, checked by the orchestrator.
type TokenService struct {
	Access  *jwtx.HS256
	Refresh *jwtx.HS256

	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Now is the clock. Defaults to time.Now; tests pin it.
	Now func() time.Time
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *TokenService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return jwtx.DefaultAccessTokenTTL
}

func (s *TokenService) refreshTTL() time.Duration {
	if s.RefreshTTL > 0 {
		return s.RefreshTTL
	}
	return jwtx.DefaultRefreshTokenTTL
}

// IssueAccessToken signs a short-lived access token for the user.
func (s *TokenService) IssueAccessToken(u domain.User) (string, error) {
	claims := jwtx.NewAccessClaims(u.ID, u.Email, u.Role, s.accessTTL(), s.Access.Issuer(), s.now())
	return s.Access.Sign(claims)
}

// IssueRefreshToken signs a refresh token carrying only the user's ID, and
// returns the token with its expiry so the caller can store the fingerprint.
func (s *TokenService) IssueRefreshToken(userID string) (token string, expiresAt time.Time, err error) {
	now := s.now()
	expiresAt = now.Add(s.refreshTTL())
	claims := jwtx.NewRefreshClaims(userID, s.refreshTTL(), s.Refresh.Issuer(), now)
	token, err = s.Refresh.Sign(claims)
	return token, expiresAt, err
}

// IssuePair signs both tokens for the user.
func (s *TokenService) IssuePair(u domain.User) (domain.TokenPair, time.Time, error) {
	access, err := s.IssueAccessToken(u)
	if err != nil {
		return domain.TokenPair{}, time.Time{}, err
	}
	refresh, refreshExpiresAt, err := s.IssueRefreshToken(u.ID)
	if err != nil {
		return domain.TokenPair{}, time.Time{}, err
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, refreshExpiresAt, nil
}

// VerifyAccessToken validates an access token's signature, expiry, and
// issuer. Errors are the jwtx sentinels; jwtx.ErrExpired is distinguished
// for UX messaging.
func (s *TokenService) VerifyAccessToken(token string) (jwtx.Claims, error) {
	return s.Access.Verify(token)
}

// VerifyRefreshToken validates a refresh token cryptographically. Membership
// in the user's stored set is a separate check owned by the orchestrator.
func (s *TokenService) VerifyRefreshToken(token string) (jwtx.Claims, error) {
	return s.Refresh.Verify(token)
}

// DecodeUnverified extracts claims without signature verification. Used only
// as the logout fallback: an expired refresh token still identifies whose
// token set to clean.
func (s *TokenService) DecodeUnverified(token string) (jwtx.Claims, error) {
	return jwtx.DecodeUnverified(token)
}
