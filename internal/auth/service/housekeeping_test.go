package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/nimbuslabs/nimbus/internal/auth/domain"
	"github.com/nimbuslabs/nimbus/internal/auth/store"
	"github.com/nimbuslabs/nimbus/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestHousekeepingCleanup(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	user, _ := h.signupAndConfirm(t, "alice@example.com")

	// OTP record well past its sweep grace
	stale := domain.OtpRecord{
		ID:        idx.New().String(),
		Email:     "stale@example.com",
		Purpose:   domain.OtpPurposeSignup,
		Code:      "000000",
		ExpiresAt: time.Now().UTC().Add(-domain.OtpSweepGrace - time.Minute),
	}
	require.NoError(t, h.store.OtpTokens().UpsertOtp(ctx, stale))

	// OTP record expired but still within grace: must survive the sweep so
	// verification can report "expired" instead of "not found"
	graced := domain.OtpRecord{
		ID:        idx.New().String(),
		Email:     "graced@example.com",
		Purpose:   domain.OtpPurposeSignup,
		Code:      "000000",
		ExpiresAt: time.Now().UTC().Add(-10 * time.Second),
	}
	require.NoError(t, h.store.OtpTokens().UpsertOtp(ctx, graced))

	// expired refresh token
	require.NoError(t, h.store.RefreshTokens().CreateRefreshToken(ctx, domain.RefreshToken{
		ID:        idx.New().String(),
		UserID:    user.ID,
		TokenHash: "expired-fp",
		ExpiresAt: time.Now().UTC().Add(-time.Hour),
	}))

	hk := NewHousekeepingService(h.store, slog.New(slog.DiscardHandler), time.Hour)
	hk.cleanup()

	_, err := h.store.OtpTokens().GetOtp(ctx, "stale@example.com", domain.OtpPurposeSignup)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = h.store.OtpTokens().GetOtp(ctx, "graced@example.com", domain.OtpPurposeSignup)
	require.NoError(t, err)

	_, err = h.store.RefreshTokens().GetRefreshTokenByHash(ctx, "expired-fp")
	require.ErrorIs(t, err, store.ErrNotFound)

	// the live session from signup survives
	require.Equal(t, 1, h.tokenCount(t, user.ID))
}

func TestHousekeepingStartStop(t *testing.T) {
	h := newHarness(t)

	hk := NewHousekeepingService(h.store, slog.New(slog.DiscardHandler), time.Hour)
	hk.Start()
	hk.Stop()
}
