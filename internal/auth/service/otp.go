package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/nimbuslabs/nimbus/internal/auth/domain"
	"github.com/nimbuslabs/nimbus/internal/auth/store"
	"github.com/nimbuslabs/nimbus/pkg/cryptox"
	"github.com/nimbuslabs/nimbus/pkg/idx"
	"github.com/nimbuslabs/nimbus/pkg/slogx"
)

var (
	ErrOtpNotFound          = errors.New("otp_not_found")
	ErrOtpAlreadyVerified   = errors.New("otp_already_verified")
	ErrOtpAttemptsExhausted = errors.New("otp_attempts_exhausted")
	ErrOtpExpired           = errors.New("otp_expired")
	ErrOtpNotVerified       = errors.New("otp_not_verified")
)

// InvalidCodeError is returned on a failed code comparison. The failed
// attempt has already been persisted by the time this is returned.
type InvalidCodeError struct {
	AttemptsRemaining int
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid otp code, %d attempts remaining", e.AttemptsRemaining)
}

// OtpService is the ledger of short-lived verification codes. At most one
// live record exists per (email, purpose); issuing replaces any prior one.
type OtpService struct {
	Store store.Store

	// GenerateCode produces a fresh 6-digit code. Defaults to
	// cryptox.GenerateOTPCode; tests inject a fixed generator.
	GenerateCode func() (string, error)

	// Now is the clock. Defaults to time.Now; tests pin it.
	Now func() time.Time
}

func (s *OtpService) code() (string, error) {
	if s.GenerateCode != nil {
		return s.GenerateCode()
	}
	return cryptox.GenerateOTPCode()
}

func (s *OtpService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Issue creates a fresh record for (email, purpose), replacing any existing
// one. Sending the code is the caller's job.
func (s *OtpService) Issue(
	ctx context.Context,
	email string,
	purpose domain.OtpPurpose,
	payload []byte,
) (domain.OtpRecord, error) {
	code, err := s.code()
	if err != nil {
		return domain.OtpRecord{}, err
	}

	now := s.now().UTC()
	rec := domain.OtpRecord{
		ID:        idx.New().String(),
		Email:     email,
		Purpose:   purpose,
		Code:      code,
		Payload:   payload,
		ExpiresAt: now.Add(domain.OtpTTL),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Store.OtpTokens().UpsertOtp(ctx, rec); err != nil {
		return domain.OtpRecord{}, err
	}
	return rec, nil
}

// Verify checks a submitted code against the live record for
// (email, purpose). On a mismatch the attempt counter is incremented and
// persisted before the typed failure is returned. On a match the record is
// marked verified and returned.
func (s *OtpService) Verify(
	ctx context.Context,
	email string,
	purpose domain.OtpPurpose,
	submitted string,
) (domain.OtpRecord, error) {
	rec, err := s.Store.OtpTokens().GetOtp(ctx, email, purpose)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.OtpRecord{}, ErrOtpNotFound
		}
		return domain.OtpRecord{}, err
	}

	if rec.Verified {
		return domain.OtpRecord{}, ErrOtpAlreadyVerified
	}
	if rec.Attempts >= domain.OtpMaxAttempts {
		return domain.OtpRecord{}, ErrOtpAttemptsExhausted
	}
	if rec.Expired(s.now()) {
		return domain.OtpRecord{}, ErrOtpExpired
	}

	if subtle.ConstantTimeCompare([]byte(rec.Code), []byte(submitted)) != 1 {
		attempts, err := s.Store.OtpTokens().IncrementOtpAttempts(ctx, rec.ID)
		if err != nil {
			return domain.OtpRecord{}, err
		}
		slogx.FromContext(ctx).Info("otp verification failed",
			"purpose", string(purpose),
			"attempts", attempts,
		)
		return domain.OtpRecord{}, &InvalidCodeError{
			AttemptsRemaining: domain.OtpMaxAttempts - attempts,
		}
	}

	if err := s.Store.OtpTokens().MarkOtpVerified(ctx, rec.ID); err != nil {
		return domain.OtpRecord{}, err
	}
	rec.Verified = true
	return rec, nil
}

// Resend regenerates the code for an existing record, resetting expiry and
// the attempt counter. A verified signup record cannot be resent (the signup
// is already confirmed); a verified password-reset record is re-opened, so a
// stale verified flag cannot be replayed after a fresh code goes out.
func (s *OtpService) Resend(
	ctx context.Context,
	email string,
	purpose domain.OtpPurpose,
) (domain.OtpRecord, error) {
	rec, err := s.Store.OtpTokens().GetOtp(ctx, email, purpose)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.OtpRecord{}, ErrOtpNotFound
		}
		return domain.OtpRecord{}, err
	}

	if purpose == domain.OtpPurposeSignup && rec.Verified {
		return domain.OtpRecord{}, ErrOtpAlreadyVerified
	}

	code, err := s.code()
	if err != nil {
		return domain.OtpRecord{}, err
	}

	now := s.now().UTC()
	fresh := domain.OtpRecord{
		ID:        idx.New().String(),
		Email:     rec.Email,
		Purpose:   rec.Purpose,
		Code:      code,
		Attempts:  0,
		Verified:  false,
		Payload:   rec.Payload,
		ExpiresAt: now.Add(domain.OtpTTL),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Store.OtpTokens().UpsertOtp(ctx, fresh); err != nil {
		return domain.OtpRecord{}, err
	}
	return fresh, nil
}

// ExtendVerifiedWindow pushes the expiry of a verified record out by extra,
// so the user can finish the reset form without the code lapsing mid-flow.
func (s *OtpService) ExtendVerifiedWindow(
	ctx context.Context,
	email string,
	purpose domain.OtpPurpose,
	extra time.Duration,
) error {
	rec, err := s.Store.OtpTokens().GetOtp(ctx, email, purpose)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrOtpNotFound
		}
		return err
	}
	if !rec.Verified {
		return ErrOtpNotVerified
	}

	return s.Store.OtpTokens().ExtendOtpExpiry(ctx, rec.ID, s.now().UTC().Add(extra))
}
