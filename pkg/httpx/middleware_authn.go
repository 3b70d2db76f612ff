package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/nimbuslabs/nimbus/pkg/jwtx"
	"github.com/nimbuslabs/nimbus/pkg/slogx"
)

// Machine-readable reasons carried on 401 responses so clients can prompt a
// re-login on expiry without string matching error messages.
const (
	ReasonTokenExpired = "TOKEN_EXPIRED"
	ReasonTokenInvalid = "TOKEN_INVALID"
)

// AuthnMiddleware verifies the Authorization bearer access token and injects
// the claims into the request context.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeAuthnError(w, "authorization header missing or invalid", ReasonTokenInvalid)
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				reason := ReasonTokenInvalid
				if errors.Is(err, jwtx.ErrExpired) {
					reason = ReasonTokenExpired
				}
				log.Warn("jwt verify failed", "err", err)
				writeAuthnError(w, "authentication failed", reason)
				return
			}

			ctx = contextWithAuth(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.UserID())
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// RFC 6750-style bearer error plus a JSON body with a machine-readable reason.
func writeAuthnError(w http.ResponseWriter, desc, reason string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, http.StatusUnauthorized, map[string]string{
		"error":  desc,
		"reason": reason,
	})
}
