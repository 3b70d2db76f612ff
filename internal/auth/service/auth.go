package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nimbuslabs/nimbus/internal/auth/domain"
	"github.com/nimbuslabs/nimbus/internal/auth/mail"
	"github.com/nimbuslabs/nimbus/internal/auth/store"
	"github.com/nimbuslabs/nimbus/pkg/cryptox"
	"github.com/nimbuslabs/nimbus/pkg/idx"
	"github.com/nimbuslabs/nimbus/pkg/slogx"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

var (
	ErrDuplicateEmail     = errors.New("duplicate_email")
	ErrAccountNotFound    = errors.New("account_not_found")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrNoPendingSignup    = errors.New("no_pending_signup")
	ErrNoPendingReset     = errors.New("no_pending_reset")
	ErrSessionExpired     = errors.New("session_expired")
	// ErrInvalidResetRequest covers every terminal reset failure: record
	// absent, code mismatch, not verified, or expired. Deliberately one
	// error so the response does not reveal which check failed.
	ErrInvalidResetRequest = errors.New("invalid_reset_request")
)

// ValidationError reports malformed or inconsistent input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// AuthService is the state machine driving signup, login, password reset,
// refresh, and logout. It composes the OTP ledger, the token service, the
// store, and the mail sender.
type AuthService struct {
	Store  store.Store
	Otp    *OtpService
	Tokens *TokenService
	Mailer mail.Sender
}

// normalizeEmail lowercases and trims so lookups and the unique index agree.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validatePassword(password, confirm string) error {
	if password == "" {
		return validationErrorf("password is required")
	}
	if len(password) < MinPasswordLength {
		return validationErrorf("password must be at least %d characters", MinPasswordLength)
	}
	if password != confirm {
		return validationErrorf("passwords do not match")
	}
	return nil
}

// ============================================================================
// Signup flow
// ============================================================================

// RequestSignup validates the pending user, issues a signup OTP carrying the
// payload, and emails the code. No user row is created yet; the send is
// awaited and a failure fails the request, since the user needs the code.
func (s *AuthService) RequestSignup(
	ctx context.Context,
	name, email, password, confirmPassword, role string,
) (domain.OtpRecord, error) {
	email = normalizeEmail(email)

	if name == "" {
		return domain.OtpRecord{}, validationErrorf("name is required")
	}
	if email == "" {
		return domain.OtpRecord{}, validationErrorf("email is required")
	}
	if err := validatePassword(password, confirmPassword); err != nil {
		return domain.OtpRecord{}, err
	}
	if role == "" {
		role = domain.DefaultRole
	}

	_, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err == nil {
		return domain.OtpRecord{}, ErrDuplicateEmail
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.OtpRecord{}, err
	}

	// Hash before the payload hits the ledger so the plaintext password is
	// never persisted, even transiently in the OTP record.
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.OtpRecord{}, err
	}

	payload, err := json.Marshal(domain.SignupPayload{
		Name:         name,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return domain.OtpRecord{}, err
	}

	rec, err := s.Otp.Issue(ctx, email, domain.OtpPurposeSignup, payload)
	if err != nil {
		return domain.OtpRecord{}, err
	}

	if err := s.sendOtpEmail(ctx, email, rec.Code, domain.OtpPurposeSignup, false); err != nil {
		return domain.OtpRecord{}, err
	}

	slogx.FromContext(ctx).Info("signup otp issued", "purpose", "signup")
	return rec, nil
}

// ConfirmSignup verifies the code and, in one transaction, creates the user
// from the stored payload, stores the refresh token, and deletes the OTP
// record. Ledger failures propagate without creating a user.
func (s *AuthService) ConfirmSignup(
	ctx context.Context,
	email, code string,
) (domain.User, domain.TokenPair, error) {
	email = normalizeEmail(email)

	rec, err := s.Otp.Verify(ctx, email, domain.OtpPurposeSignup, code)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	var payload domain.SignupPayload
	if err := json.Unmarshal(rec.Payload, &payload); err != nil {
		return domain.User{}, domain.TokenPair{}, fmt.Errorf("decode signup payload: %w", err)
	}

	user := domain.User{
		ID:           idx.New().String(),
		Name:         payload.Name,
		Email:        email,
		PasswordHash: payload.PasswordHash,
		Role:         payload.Role,
	}

	pair, refreshExpiresAt, err := s.Tokens.IssuePair(user)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrDuplicateEmail
			}
			return err
		}
		if err := storeRefreshToken(ctx, tx, user.ID, pair.RefreshToken, refreshExpiresAt); err != nil {
			return err
		}
		return tx.OtpTokens().DeleteOtp(ctx, email, domain.OtpPurposeSignup)
	})
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	slogx.FromContext(ctx).Info("signup completed", "user_id", user.ID)
	return user, pair, nil
}

// ResendSignupOtp reissues the code for a pending signup and emails it.
func (s *AuthService) ResendSignupOtp(ctx context.Context, email string) (domain.OtpRecord, error) {
	email = normalizeEmail(email)
	if email == "" {
		return domain.OtpRecord{}, validationErrorf("email is required")
	}

	rec, err := s.Otp.Resend(ctx, email, domain.OtpPurposeSignup)
	if err != nil {
		if errors.Is(err, ErrOtpNotFound) {
			return domain.OtpRecord{}, ErrNoPendingSignup
		}
		return domain.OtpRecord{}, err
	}

	if err := s.sendOtpEmail(ctx, email, rec.Code, domain.OtpPurposeSignup, true); err != nil {
		return domain.OtpRecord{}, err
	}
	return rec, nil
}

// ============================================================================
// Login
// ============================================================================

// Login authenticates and issues a token pair. Lookup and password failures
// collapse into one error so responses cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, domain.TokenPair, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return domain.User{}, domain.TokenPair{}, validationErrorf("email and password are required")
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.TokenPair{}, ErrInvalidCredentials
		}
		return domain.User{}, domain.TokenPair{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return domain.User{}, domain.TokenPair{}, ErrInvalidCredentials
	}

	pair, refreshExpiresAt, err := s.Tokens.IssuePair(user)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		return storeRefreshToken(ctx, tx, user.ID, pair.RefreshToken, refreshExpiresAt)
	})
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}

	return user, pair, nil
}

// ============================================================================
// Forgot-password flow
// ============================================================================

// RequestReset issues a password-reset OTP for an existing account. Unlike
// login, this flow does reveal non-existence, an intentional asymmetry.
func (s *AuthService) RequestReset(ctx context.Context, email string) (domain.OtpRecord, error) {
	email = normalizeEmail(email)
	if email == "" {
		return domain.OtpRecord{}, validationErrorf("email is required")
	}

	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.OtpRecord{}, ErrAccountNotFound
		}
		return domain.OtpRecord{}, err
	}

	rec, err := s.Otp.Issue(ctx, email, domain.OtpPurposePasswordReset, nil)
	if err != nil {
		return domain.OtpRecord{}, err
	}

	if err := s.sendOtpEmail(ctx, email, rec.Code, domain.OtpPurposePasswordReset, false); err != nil {
		return domain.OtpRecord{}, err
	}
	return rec, nil
}

// ConfirmResetOtp verifies the reset code and extends the record's window so
// the user has time to submit the new password. The returned record id is a
// client-side reference only; ResetPassword re-derives everything from
// (email, code).
func (s *AuthService) ConfirmResetOtp(ctx context.Context, email, code string) (string, error) {
	email = normalizeEmail(email)

	rec, err := s.Otp.Verify(ctx, email, domain.OtpPurposePasswordReset, code)
	if err != nil {
		return "", err
	}

	if err := s.Otp.ExtendVerifiedWindow(ctx, email, domain.OtpPurposePasswordReset, domain.OtpVerifiedExtension); err != nil {
		return "", err
	}
	return rec.ID, nil
}

// ResetPassword completes the reset. The OTP record must exist, match the
// submitted code, be verified, and be unexpired; any failure is reported as
// one generic invalid-request error. On success the password is rehashed,
// every refresh token is deleted (full session revocation), the OTP record
// is removed, and a security notification is emailed. No auto-login.
func (s *AuthService) ResetPassword(
	ctx context.Context,
	email, code, newPassword, confirmPassword string,
) error {
	email = normalizeEmail(email)
	if err := validatePassword(newPassword, confirmPassword); err != nil {
		return err
	}

	rec, err := s.Store.OtpTokens().GetOtp(ctx, email, domain.OtpPurposePasswordReset)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidResetRequest
		}
		return err
	}
	if rec.Code != code || !rec.Verified || rec.Expired(s.Otp.now()) {
		return ErrInvalidResetRequest
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidResetRequest
		}
		return err
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdatePasswordHash(ctx, user.ID, hash); err != nil {
			return err
		}
		if err := tx.RefreshTokens().DeleteAllUserRefreshTokens(ctx, user.ID); err != nil {
			return err
		}
		return tx.OtpTokens().DeleteOtp(ctx, email, domain.OtpPurposePasswordReset)
	})
	if err != nil {
		return err
	}

	// Best-effort: the reset already happened, and the user does not need
	// this email to proceed.
	if msg, err := mail.PasswordChangedMessage(email, user.Name); err == nil {
		if err := s.Mailer.Send(ctx, msg); err != nil {
			slogx.FromContext(ctx).Warn("password changed notification failed", "error", err)
		}
	}

	slogx.FromContext(ctx).Info("password reset completed", "user_id", user.ID)
	return nil
}

// ResendResetOtp reissues the reset code. The verified flag is cleared by
// the ledger so a stale verified state cannot be replayed with a new code.
func (s *AuthService) ResendResetOtp(ctx context.Context, email string) (domain.OtpRecord, error) {
	email = normalizeEmail(email)
	if email == "" {
		return domain.OtpRecord{}, validationErrorf("email is required")
	}

	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.OtpRecord{}, ErrAccountNotFound
		}
		return domain.OtpRecord{}, err
	}

	rec, err := s.Otp.Resend(ctx, email, domain.OtpPurposePasswordReset)
	if err != nil {
		if errors.Is(err, ErrOtpNotFound) {
			return domain.OtpRecord{}, ErrNoPendingReset
		}
		return domain.OtpRecord{}, err
	}

	if err := s.sendOtpEmail(ctx, email, rec.Code, domain.OtpPurposePasswordReset, true); err != nil {
		return domain.OtpRecord{}, err
	}
	return rec, nil
}

// ============================================================================
// Session refresh / logout
// ============================================================================

// Refresh rotates a refresh token: signature check, membership check, then
// atomically remove the old fingerprint and store the new one. A stolen
// token therefore replays at most once.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	claims, err := s.Tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return domain.TokenPair{}, ErrSessionExpired
	}

	fp := cryptox.FingerprintToken(refreshToken)

	var pair domain.TokenPair
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		stored, err := tx.RefreshTokens().GetRefreshTokenByHash(ctx, fp)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrSessionExpired
			}
			return err
		}
		if stored.UserID != claims.UserID() {
			return ErrSessionExpired
		}

		user, err := tx.Users().GetUserByID(ctx, stored.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrSessionExpired
			}
			return err
		}

		fresh, refreshExpiresAt, err := s.Tokens.IssuePair(user)
		if err != nil {
			return err
		}

		if err := tx.RefreshTokens().DeleteRefreshTokenByHash(ctx, fp); err != nil {
			return err
		}
		if err := storeRefreshToken(ctx, tx, user.ID, fresh.RefreshToken, refreshExpiresAt); err != nil {
			return err
		}

		pair = fresh
		return nil
	})
	if err != nil {
		return domain.TokenPair{}, err
	}

	return pair, nil
}

// Logout removes the refresh token from its owner's set. Best-effort: if
// signature verification fails (e.g. the token already expired), an
// unverified decode still locates the record to clean. Always succeeds from
// the caller's perspective.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if _, err := s.Tokens.VerifyRefreshToken(refreshToken); err != nil {
		if _, err := s.Tokens.DecodeUnverified(refreshToken); err != nil {
			// Not even decodable; nothing to clean up.
			return nil
		}
	}

	fp := cryptox.FingerprintToken(refreshToken)
	if err := s.Store.RefreshTokens().DeleteRefreshTokenByHash(ctx, fp); err != nil {
		slogx.FromContext(ctx).Warn("logout token cleanup failed", "error", err)
	}
	return nil
}

// ============================================================================
// Internals
// ============================================================================

// storeRefreshToken fingerprints the refresh JWT, inserts the record, and
// evicts the oldest tokens past the per-user cap.
func storeRefreshToken(
	ctx context.Context,
	tx store.Tx,
	userID, refreshToken string,
	expiresAt time.Time,
) error {
	rec := domain.RefreshToken{
		ID:        idx.New().String(),
		UserID:    userID,
		TokenHash: cryptox.FingerprintToken(refreshToken),
		ExpiresAt: expiresAt,
	}
	if err := tx.RefreshTokens().CreateRefreshToken(ctx, rec); err != nil {
		return err
	}

	count, err := tx.RefreshTokens().CountUserRefreshTokens(ctx, userID)
	if err != nil {
		return err
	}
	if excess := count - domain.MaxRefreshTokensPerUser; excess > 0 {
		return tx.RefreshTokens().DeleteOldestRefreshTokens(ctx, userID, excess)
	}
	return nil
}

func (s *AuthService) sendOtpEmail(
	ctx context.Context,
	email, code string,
	purpose domain.OtpPurpose,
	resend bool,
) error {
	msg, err := mail.OtpMessage(email, code, purpose, resend)
	if err != nil {
		return err
	}
	if err := s.Mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("send otp email: %w", err)
	}
	return nil
}
