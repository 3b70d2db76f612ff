package sqlite

import (
	"context"
	"time"

	"github.com/nimbuslabs/nimbus/internal/auth/domain"
	"github.com/nimbuslabs/nimbus/internal/auth/store"
)

type otpTokensRepo struct {
	db dbtx
}

const otpColumns = `id, email, purpose, code, attempts, verified, payload, expires_at, created_at, updated_at`

func (r *otpTokensRepo) GetOtp(
	ctx context.Context,
	email string,
	purpose domain.OtpPurpose,
) (domain.OtpRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+otpColumns+` FROM otp_tokens WHERE email = ? AND purpose = ?`,
		email, string(purpose))

	var rec domain.OtpRecord
	var purposeStr string
	err := row.Scan(&rec.ID, &rec.Email, &purposeStr, &rec.Code, &rec.Attempts,
		&rec.Verified, &rec.Payload, &rec.ExpiresAt, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return domain.OtpRecord{}, mapNotFound(err)
	}
	rec.Purpose = domain.OtpPurpose(purposeStr)
	return rec, nil
}

// UpsertOtp replaces any prior record for (email, purpose) in a single
// statement, so two rows for the same key can never exist.
func (r *otpTokensRepo) UpsertOtp(ctx context.Context, rec domain.OtpRecord) error {
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO otp_tokens (id, email, purpose, code, attempts, verified, payload, expires_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (email, purpose) DO UPDATE SET
		     id         = excluded.id,
		     code       = excluded.code,
		     attempts   = excluded.attempts,
		     verified   = excluded.verified,
		     payload    = excluded.payload,
		     expires_at = excluded.expires_at,
		     created_at = excluded.created_at,
		     updated_at = excluded.updated_at`,
		rec.ID, rec.Email, string(rec.Purpose), rec.Code, rec.Attempts,
		rec.Verified, rec.Payload, rec.ExpiresAt, rec.CreatedAt, rec.UpdatedAt)
	return err
}

func (r *otpTokensRepo) IncrementOtpAttempts(ctx context.Context, id string) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE otp_tokens SET attempts = attempts + 1, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), id)
	if err != nil {
		return 0, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return 0, store.ErrNotFound
	}

	var attempts int
	err = r.db.QueryRowContext(ctx,
		`SELECT attempts FROM otp_tokens WHERE id = ?`, id).Scan(&attempts)
	if err != nil {
		return 0, mapNotFound(err)
	}
	return attempts, nil
}

func (r *otpTokensRepo) MarkOtpVerified(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE otp_tokens SET verified = 1, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *otpTokensRepo) ExtendOtpExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE otp_tokens SET expires_at = ?, updated_at = ? WHERE id = ?`,
		expiresAt.UTC(), time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *otpTokensRepo) DeleteOtp(ctx context.Context, email string, purpose domain.OtpPurpose) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM otp_tokens WHERE email = ? AND purpose = ?`,
		email, string(purpose))
	return err
}

func (r *otpTokensRepo) DeleteSweepableOtps(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM otp_tokens WHERE expires_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
