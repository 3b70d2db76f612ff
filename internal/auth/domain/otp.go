package domain

import "time"

// OtpPurpose distinguishes codes issued for different flows sharing the same
// email address.
type OtpPurpose string

const (
	OtpPurposeSignup        OtpPurpose = "signup"
	OtpPurposePasswordReset OtpPurpose = "password_reset"
)

const (
	// OtpTTL is the validity window of a freshly issued code.
	OtpTTL = 180 * time.Second

	// OtpMaxAttempts caps failed code comparisons per record. Once reached,
	// further attempts are rejected even with the correct code.
	OtpMaxAttempts = 5

	// OtpResendCooldown is the advisory client-side wait before requesting a
	// new code. The server does not reject early resends.
	OtpResendCooldown = 60 * time.Second

	// OtpVerifiedExtension is added to a password-reset record's expiry after
	// a successful verification, so the code does not lapse while the user
	// types their new password.
	OtpVerifiedExtension = 5 * time.Minute

	// OtpSweepGrace is how long past expiry the housekeeping sweep keeps a
	// record before deleting it.
	OtpSweepGrace = 60 * time.Second
)

// OtpRecord is a short-lived verification record. At most one live record
// exists per (email, purpose) pair.
type OtpRecord struct {
	ID        string
	Email     string
	Purpose   OtpPurpose
	Code      string // 6 ASCII digits
	Attempts  int
	Verified  bool
	Payload   []byte // JSON; signup carries the pending user, nil otherwise
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Expired reports whether the record's window has closed at the given
// instant. The boundary now == ExpiresAt still counts as expired.
func (r OtpRecord) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// SignupPayload is the pending user carried inside a signup OTP record. The
// password is hashed before it gets here, so the ledger never holds a
// plaintext password.
type SignupPayload struct {
	Name         string `json:"name"`
	PasswordHash string `json:"passwordHash"`
	Role         string `json:"role"`
}
