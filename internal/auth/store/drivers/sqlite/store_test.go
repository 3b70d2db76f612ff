package sqlite

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/nimbuslabs/nimbus/internal/auth/domain"
	"github.com/nimbuslabs/nimbus/internal/auth/store"
	"github.com/nimbuslabs/nimbus/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestUser(t *testing.T, s *Store, email string) domain.User {
	t.Helper()

	u := domain.User{
		ID:           idx.New().String(),
		Name:         "Alice",
		Email:        email,
		PasswordHash: "hash",
		Role:         domain.DefaultRole,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func TestUsersRepo(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	t.Run("create and fetch", func(t *testing.T) {
		u := newTestUser(t, s, "alice@example.com")

		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, u.Email, got.Email)
		require.False(t, got.CreatedAt.IsZero())
	})

	t.Run("email lookup is case-insensitive", func(t *testing.T) {
		got, err := s.Users().GetUserByEmail(ctx, "ALICE@Example.COM")
		require.NoError(t, err)
		require.Equal(t, "alice@example.com", got.Email)
	})

	t.Run("duplicate email rejected case-insensitively", func(t *testing.T) {
		dup := domain.User{
			ID:           idx.New().String(),
			Name:         "Imposter",
			Email:        "Alice@Example.com",
			PasswordHash: "hash",
			Role:         domain.DefaultRole,
		}
		err := s.Users().CreateUser(ctx, dup)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("missing user maps to ErrNotFound", func(t *testing.T) {
		_, err := s.Users().GetUserByID(ctx, idx.New().String())
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("update password hash", func(t *testing.T) {
		u, err := s.Users().GetUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)

		require.NoError(t, s.Users().UpdatePasswordHash(ctx, u.ID, "newhash"))

		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "newhash", got.PasswordHash)

		require.ErrorIs(t,
			s.Users().UpdatePasswordHash(ctx, idx.New().String(), "x"),
			store.ErrNotFound)
	})
}

func TestOtpTokensRepo(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	payload, err := json.Marshal(domain.SignupPayload{Name: "Bob", PasswordHash: "$argon2id$fake", Role: domain.DefaultRole})
	require.NoError(t, err)

	rec := domain.OtpRecord{
		ID:        idx.New().String(),
		Email:     "bob@example.com",
		Purpose:   domain.OtpPurposeSignup,
		Code:      "123456",
		Payload:   payload,
		ExpiresAt: time.Now().UTC().Add(domain.OtpTTL),
	}

	t.Run("upsert and fetch", func(t *testing.T) {
		require.NoError(t, s.OtpTokens().UpsertOtp(ctx, rec))

		got, err := s.OtpTokens().GetOtp(ctx, "bob@example.com", domain.OtpPurposeSignup)
		require.NoError(t, err)
		require.Equal(t, "123456", got.Code)
		require.Equal(t, 0, got.Attempts)
		require.False(t, got.Verified)

		var p domain.SignupPayload
		require.NoError(t, json.Unmarshal(got.Payload, &p))
		require.Equal(t, "Bob", p.Name)
	})

	t.Run("upsert replaces the prior record for the same key", func(t *testing.T) {
		replacement := rec
		replacement.ID = idx.New().String()
		replacement.Code = "654321"
		replacement.Attempts = 0
		require.NoError(t, s.OtpTokens().UpsertOtp(ctx, replacement))

		got, err := s.OtpTokens().GetOtp(ctx, "bob@example.com", domain.OtpPurposeSignup)
		require.NoError(t, err)
		require.Equal(t, replacement.ID, got.ID)
		require.Equal(t, "654321", got.Code)
	})

	t.Run("same email different purpose is a separate record", func(t *testing.T) {
		reset := domain.OtpRecord{
			ID:        idx.New().String(),
			Email:     "bob@example.com",
			Purpose:   domain.OtpPurposePasswordReset,
			Code:      "111111",
			ExpiresAt: time.Now().UTC().Add(domain.OtpTTL),
		}
		require.NoError(t, s.OtpTokens().UpsertOtp(ctx, reset))

		got, err := s.OtpTokens().GetOtp(ctx, "bob@example.com", domain.OtpPurposePasswordReset)
		require.NoError(t, err)
		require.Equal(t, "111111", got.Code)

		signup, err := s.OtpTokens().GetOtp(ctx, "bob@example.com", domain.OtpPurposeSignup)
		require.NoError(t, err)
		require.Equal(t, "654321", signup.Code)
	})

	t.Run("increment attempts", func(t *testing.T) {
		got, err := s.OtpTokens().GetOtp(ctx, "bob@example.com", domain.OtpPurposeSignup)
		require.NoError(t, err)

		n, err := s.OtpTokens().IncrementOtpAttempts(ctx, got.ID)
		require.NoError(t, err)
		require.Equal(t, 1, n)

		n, err = s.OtpTokens().IncrementOtpAttempts(ctx, got.ID)
		require.NoError(t, err)
		require.Equal(t, 2, n)
	})

	t.Run("mark verified and extend expiry", func(t *testing.T) {
		got, err := s.OtpTokens().GetOtp(ctx, "bob@example.com", domain.OtpPurposeSignup)
		require.NoError(t, err)

		require.NoError(t, s.OtpTokens().MarkOtpVerified(ctx, got.ID))

		newExpiry := time.Now().UTC().Add(10 * time.Minute).Truncate(time.Second)
		require.NoError(t, s.OtpTokens().ExtendOtpExpiry(ctx, got.ID, newExpiry))

		got, err = s.OtpTokens().GetOtp(ctx, "bob@example.com", domain.OtpPurposeSignup)
		require.NoError(t, err)
		require.True(t, got.Verified)
		require.WithinDuration(t, newExpiry, got.ExpiresAt, time.Second)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, s.OtpTokens().DeleteOtp(ctx, "bob@example.com", domain.OtpPurposeSignup))
		require.NoError(t, s.OtpTokens().DeleteOtp(ctx, "bob@example.com", domain.OtpPurposeSignup))

		_, err := s.OtpTokens().GetOtp(ctx, "bob@example.com", domain.OtpPurposeSignup)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("sweep deletes records past the cutoff", func(t *testing.T) {
		stale := domain.OtpRecord{
			ID:        idx.New().String(),
			Email:     "stale@example.com",
			Purpose:   domain.OtpPurposeSignup,
			Code:      "222222",
			ExpiresAt: time.Now().UTC().Add(-5 * time.Minute),
		}
		require.NoError(t, s.OtpTokens().UpsertOtp(ctx, stale))

		n, err := s.OtpTokens().DeleteSweepableOtps(ctx, time.Now().UTC().Add(-time.Minute))
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, int64(1))

		_, err = s.OtpTokens().GetOtp(ctx, "stale@example.com", domain.OtpPurposeSignup)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestRefreshTokensRepo(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	u := newTestUser(t, s, "carol@example.com")

	mkToken := func(hash string, createdAt time.Time) domain.RefreshToken {
		return domain.RefreshToken{
			ID:        idx.New().String(),
			UserID:    u.ID,
			TokenHash: hash,
			ExpiresAt: time.Now().UTC().Add(time.Hour),
			CreatedAt: createdAt,
		}
	}

	t.Run("create fetch delete", func(t *testing.T) {
		tok := mkToken("hash-1", time.Now().UTC())
		require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, tok))

		got, err := s.RefreshTokens().GetRefreshTokenByHash(ctx, "hash-1")
		require.NoError(t, err)
		require.Equal(t, u.ID, got.UserID)

		require.NoError(t, s.RefreshTokens().DeleteRefreshTokenByHash(ctx, "hash-1"))
		_, err = s.RefreshTokens().GetRefreshTokenByHash(ctx, "hash-1")
		require.ErrorIs(t, err, store.ErrNotFound)

		// absence is not an error
		require.NoError(t, s.RefreshTokens().DeleteRefreshTokenByHash(ctx, "hash-1"))
	})

	t.Run("oldest tokens are evicted first", func(t *testing.T) {
		base := time.Now().UTC().Add(-time.Hour)
		for i := 0; i < 4; i++ {
			tok := mkToken(
				"evict-"+string(rune('a'+i)),
				base.Add(time.Duration(i)*time.Minute),
			)
			require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, tok))
		}

		require.NoError(t, s.RefreshTokens().DeleteOldestRefreshTokens(ctx, u.ID, 2))

		n, err := s.RefreshTokens().CountUserRefreshTokens(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, 2, n)

		_, err = s.RefreshTokens().GetRefreshTokenByHash(ctx, "evict-a")
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = s.RefreshTokens().GetRefreshTokenByHash(ctx, "evict-b")
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = s.RefreshTokens().GetRefreshTokenByHash(ctx, "evict-d")
		require.NoError(t, err)
	})

	t.Run("delete all user tokens", func(t *testing.T) {
		require.NoError(t, s.RefreshTokens().DeleteAllUserRefreshTokens(ctx, u.ID))

		n, err := s.RefreshTokens().CountUserRefreshTokens(ctx, u.ID)
		require.NoError(t, err)
		require.Zero(t, n)
	})

	t.Run("delete expired tokens", func(t *testing.T) {
		expired := mkToken("expired-1", time.Now().UTC())
		expired.ExpiresAt = time.Now().UTC().Add(-time.Minute)
		require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, expired))

		live := mkToken("live-1", time.Now().UTC())
		require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, live))

		n, err := s.RefreshTokens().DeleteExpiredRefreshTokens(ctx, u.ID, time.Now().UTC())
		require.NoError(t, err)
		require.Equal(t, int64(1), n)

		_, err = s.RefreshTokens().GetRefreshTokenByHash(ctx, "live-1")
		require.NoError(t, err)
	})
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	sentinel := store.ErrAlreadyExists
	err := s.WithTx(ctx, func(tx store.Tx) error {
		u := domain.User{
			ID:           idx.New().String(),
			Name:         "Ghost",
			Email:        "ghost@example.com",
			PasswordHash: "hash",
			Role:         domain.DefaultRole,
		}
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	_, err = s.Users().GetUserByEmail(ctx, "ghost@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}
