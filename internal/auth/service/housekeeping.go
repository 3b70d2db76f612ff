package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/nimbuslabs/nimbus/internal/auth/domain"
	"github.com/nimbuslabs/nimbus/internal/auth/store"
)

// HousekeepingService periodically deletes stale database records: OTP
// records sufficiently past expiry and refresh tokens past their stored
// expiry. Expiry itself is always evaluated lazily at verification time;
// this sweep only bounds table growth.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service with the given
// interval. If interval is 0 or negative, defaults to 1 minute.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Minute
	}

	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop to shut down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop gracefully shuts down the background worker. Blocks until any
// in-progress cleanup finishes.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// cleanup performs the actual deletions. Each is independent; a failure in
// one does not stop the others.
func (s *HousekeepingService) cleanup() {
	ctx := context.Background()
	now := time.Now().UTC()

	// OTP records get a grace period past expiry, so a just-expired code
	// still produces the specific "expired" failure instead of "not found".
	if n, err := s.Store.OtpTokens().DeleteSweepableOtps(ctx, now.Add(-domain.OtpSweepGrace)); err != nil {
		s.Logger.Error("failed to sweep otp records", "error", err)
	} else if n > 0 {
		s.Logger.Info("swept stale otp records", "count", n)
	}

	if n, err := s.Store.RefreshTokens().DeleteExpiredRefreshTokens(ctx, "", now); err != nil {
		s.Logger.Error("failed to delete expired refresh tokens", "error", err)
	} else if n > 0 {
		s.Logger.Info("deleted expired refresh tokens", "count", n)
	}
}
