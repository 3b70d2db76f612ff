package service

import (
	"context"
	"errors"
	"time"

	"github.com/nimbuslabs/nimbus/internal/auth/domain"
	"github.com/nimbuslabs/nimbus/internal/auth/store"
)

var ErrUserNotFound = errors.New("user_not_found")

// UserService serves profile reads for authenticated requests.
type UserService struct {
	Store store.Store
}

// GetUserByID fetches a user for the /me endpoint.
func (s *UserService) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}

// PruneExpiredRefreshTokens drops a user's refresh tokens whose stored
// expiry has passed, independent of explicit logout.
func (s *UserService) PruneExpiredRefreshTokens(ctx context.Context, userID string) (int64, error) {
	return s.Store.RefreshTokens().DeleteExpiredRefreshTokens(ctx, userID, time.Now())
}
