package http

import (
	"errors"
	"net/http"

	"github.com/nimbuslabs/nimbus/internal/auth/service"
	"github.com/nimbuslabs/nimbus/pkg/authsdk"
	"github.com/nimbuslabs/nimbus/pkg/slogx"
)

// writeServiceError translates service-layer failures into API error
// responses. Unrecognized errors are logged and surfaced as a generic 500
// without leaking internals.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		authsdk.NewValidationError(vErr.Msg).WriteError(w)
		return
	}

	var invalid *service.InvalidCodeError
	if errors.As(err, &invalid) {
		remaining := invalid.AttemptsRemaining
		apiErr := &authsdk.APIError{
			StatusCode:        http.StatusBadRequest,
			Message:           "invalid OTP code",
			AttemptsRemaining: &remaining,
		}
		apiErr.WriteError(w)
		return
	}

	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		authsdk.ErrDuplicateEmail.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		authsdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrAccountNotFound):
		authsdk.ErrAccountNotFound.WriteError(w)
	case errors.Is(err, service.ErrSessionExpired):
		authsdk.ErrSessionExpired.WriteError(w)
	case errors.Is(err, service.ErrNoPendingSignup):
		authsdk.NewValidationError("no pending signup found for this email").WriteError(w)
	case errors.Is(err, service.ErrNoPendingReset):
		authsdk.NewValidationError("no pending password reset found for this email").WriteError(w)
	case errors.Is(err, service.ErrOtpNotFound):
		authsdk.NewValidationError("no verification code found, please request a new one").WriteError(w)
	case errors.Is(err, service.ErrOtpExpired):
		authsdk.NewValidationError("verification code has expired, please request a new one").WriteError(w)
	case errors.Is(err, service.ErrOtpAttemptsExhausted):
		authsdk.NewValidationError("too many failed attempts, please request a new code").WriteError(w)
	case errors.Is(err, service.ErrOtpAlreadyVerified):
		authsdk.NewValidationError("this code has already been verified").WriteError(w)
	case errors.Is(err, service.ErrInvalidResetRequest):
		authsdk.NewValidationError("invalid or expired password reset request").WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("unexpected service error",
			"path", r.URL.Path,
			"error", err,
		)
		authsdk.ErrServerError.WriteError(w)
	}
}
