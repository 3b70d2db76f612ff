package store

import (
	"context"
	"errors"
	"time"

	"github.com/nimbuslabs/nimbus/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement this.
// It exposes sub-repositories to keep concerns tidy and testable.
type Store interface {
	Users() Users
	OtpTokens() OtpTokens
	RefreshTokens() RefreshTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic (e.g., refresh
	// rotation). The caller MUST call Commit() or Rollback() on the
	// returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction. If fn returns an
	// error the transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks a user up by email, case-insensitively.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists on an email conflict.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps
	// updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error
}

type OtpTokens interface {
	// GetOtp returns the live record for (email, purpose).
	GetOtp(ctx context.Context, email string, purpose domain.OtpPurpose) (domain.OtpRecord, error)

	// UpsertOtp replaces any existing record for (email, purpose) with the
	// given one, keeping the single-record invariant.
	UpsertOtp(ctx context.Context, rec domain.OtpRecord) error

	// IncrementOtpAttempts persists a failed comparison and returns the new
	// attempt count.
	IncrementOtpAttempts(ctx context.Context, id string) (int, error)

	// MarkOtpVerified sets verified=1 and bumps updated_at.
	MarkOtpVerified(ctx context.Context, id string) error

	// ExtendOtpExpiry pushes expires_at to the given instant.
	ExtendOtpExpiry(ctx context.Context, id string, expiresAt time.Time) error

	// DeleteOtp removes the record for (email, purpose). Absence is not an
	// error.
	DeleteOtp(ctx context.Context, email string, purpose domain.OtpPurpose) error

	// DeleteSweepableOtps removes records whose expiry is older than the
	// cutoff (housekeeping).
	DeleteSweepableOtps(ctx context.Context, cutoff time.Time) (int64, error)
}

type RefreshTokens interface {
	// CreateRefreshToken stores a new refresh token record.
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetRefreshTokenByHash returns the token record by its fingerprint.
	GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error)

	// CountUserRefreshTokens returns the number of live tokens for a user.
	CountUserRefreshTokens(ctx context.Context, userID string) (int, error)

	// DeleteOldestRefreshTokens evicts the n oldest tokens for a user
	// (earliest created_at first, id as tie-break).
	DeleteOldestRefreshTokens(ctx context.Context, userID string, n int) error

	// DeleteRefreshTokenByHash removes one token by fingerprint. Absence is
	// not an error.
	DeleteRefreshTokenByHash(ctx context.Context, hash string) error

	// DeleteAllUserRefreshTokens revokes every session for a user (password
	// reset).
	DeleteAllUserRefreshTokens(ctx context.Context, userID string) error

	// DeleteExpiredRefreshTokens drops tokens past their stored expiry
	// (housekeeping). Optionally scoped to one user via userID != "".
	DeleteExpiredRefreshTokens(ctx context.Context, userID string, now time.Time) (int64, error)
}
