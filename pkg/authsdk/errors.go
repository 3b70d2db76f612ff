package authsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nimbuslabs/nimbus/pkg/httpx"
)

// Machine-readable reasons attached to 401 responses so clients can
// distinguish "refresh and retry" from "re-authenticate".
const (
	ReasonTokenExpired = "TOKEN_EXPIRED"
	ReasonTokenInvalid = "TOKEN_INVALID"
)

// APIError is the error body of every non-2xx response. It implements the
// error interface and is used both by the server (to write responses) and by
// the SDK client (to surface them).
type APIError struct {
	// StatusCode is the HTTP status code for this error.
	StatusCode int `json:"-"`

	// Message is the user-facing description.
	Message string `json:"error"`

	// Reason is an optional machine-readable code (TOKEN_EXPIRED etc).
	Reason string `json:"reason,omitempty"`

	// AttemptsRemaining is set on failed OTP comparisons so the UI can show
	// how many tries are left.
	AttemptsRemaining *int `json:"attemptsRemaining,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", e.Reason, e.Message)
	}
	return e.Message
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(e)
}

// NewValidationError builds a 400 with the given message.
func NewValidationError(message string) *APIError {
	return &APIError{StatusCode: http.StatusBadRequest, Message: message}
}

// Predefined errors for the common failure modes.
var (
	// ErrDuplicateEmail is returned when signing up with an email that
	// already has an account.
	ErrDuplicateEmail = &APIError{
		StatusCode: http.StatusConflict,
		Message:    "an account with this email already exists",
	}

	// ErrInvalidCredentials is returned on login failure. Deliberately does
	// not reveal whether the email is registered.
	ErrInvalidCredentials = &APIError{
		StatusCode: http.StatusUnauthorized,
		Message:    "invalid email or password",
	}

	// ErrAccountNotFound is returned by the forgot-password flow when no
	// account exists for the email.
	ErrAccountNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Message:    "no account found for this email",
	}

	// ErrSessionExpired is returned when a refresh token is invalid, expired,
	// or has been revoked. The client should prompt a fresh login.
	ErrSessionExpired = &APIError{
		StatusCode: http.StatusUnauthorized,
		Message:    "session expired, please log in again",
		Reason:     ReasonTokenExpired,
	}

	// ErrServerError hides internal failures behind a generic message.
	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Message:    "something went wrong, please try again",
	}
)

// parseErrorResponse turns a non-2xx response body into an *APIError. Falls
// back to a generic message when the body is not the expected JSON shape.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		apiErr.StatusCode = resp.StatusCode
		return &apiErr
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("unexpected response (HTTP %d)", resp.StatusCode),
	}
}
