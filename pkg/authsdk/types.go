package authsdk

import "time"

// ============================================================================
// Shared Types
// ============================================================================

// UserInfo is the public view of a user record. The password hash is never
// part of any API response.
type UserInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// MessageResponse is a generic acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by the health endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of critical dependencies in a readiness
// probe.
type HealthChecks struct {
	Database string `json:"database"`
	Mailer   string `json:"mailer,omitempty"`
}

// ============================================================================
// Signup Flow
// ============================================================================

// SignupRequest starts the OTP-verified signup flow. No user record is
// created until the OTP is confirmed.
type SignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role,omitempty"`
}

// OtpPendingResponse is returned whenever an OTP has been issued or
// reissued. ExpiresIn is the validity window in seconds; ResendAfter is the
// advisory client-side cooldown before requesting another code.
type OtpPendingResponse struct {
	Message     string `json:"message"`
	Email       string `json:"email"`
	ExpiresIn   int    `json:"expiresIn"`
	ResendAfter int    `json:"resendAfter"`
}

// VerifyOtpRequest submits a 6-digit code for the pending signup.
type VerifyOtpRequest struct {
	Email string `json:"email"`
	Otp   string `json:"otp"`
}

// ResendOtpRequest asks for a fresh code for a pending signup.
type ResendOtpRequest struct {
	Email string `json:"email"`
}

// AuthResponse carries a user plus a freshly issued token pair. Returned on
// successful signup confirmation and on login.
type AuthResponse struct {
	Message      string   `json:"message"`
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
}

// ============================================================================
// Login / Session
// ============================================================================

// LoginRequest authenticates with email and password.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest exchanges a live refresh token for a new token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// TokenPairResponse is the result of a successful refresh.
type TokenPairResponse struct {
	Message      string `json:"message"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LogoutRequest revokes a refresh token.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// MeResponse is the body of GET /auth/me.
type MeResponse struct {
	User UserInfo `json:"user"`
}

// ============================================================================
// Forgot-Password Flow
// ============================================================================

// ForgotPasswordRequest starts the password reset flow for an existing
// account.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotVerifyResponse confirms the reset OTP was accepted. OtpTokenID is a
// reference for the client's UI state only; the reset step always re-derives
// authorization from (email, otp).
type ForgotVerifyResponse struct {
	Message    string `json:"message"`
	Email      string `json:"email"`
	OtpTokenID string `json:"otpTokenId"`
}

// ResetPasswordRequest completes the reset flow with the verified code and
// the new password.
type ResetPasswordRequest struct {
	Email           string `json:"email"`
	Otp             string `json:"otp"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}
