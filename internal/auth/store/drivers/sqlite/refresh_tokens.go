package sqlite

import (
	"context"
	"time"

	"github.com/nimbuslabs/nimbus/internal/auth/domain"
	"github.com/nimbuslabs/nimbus/internal/auth/store"
)

type refreshTokensRepo struct {
	db dbtx
}

func (r *refreshTokensRepo) CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.TokenHash, t.ExpiresAt.UTC(), t.CreatedAt)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *refreshTokensRepo) GetRefreshTokenByHash(
	ctx context.Context,
	hash string,
) (domain.RefreshToken, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, token_hash, expires_at, created_at
		 FROM refresh_tokens WHERE token_hash = ?`, hash)

	var t domain.RefreshToken
	err := row.Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		return domain.RefreshToken{}, mapNotFound(err)
	}
	return t, nil
}

func (r *refreshTokensRepo) CountUserRefreshTokens(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM refresh_tokens WHERE user_id = ?`, userID).Scan(&n)
	return n, err
}

func (r *refreshTokensRepo) DeleteOldestRefreshTokens(ctx context.Context, userID string, n int) error {
	if n <= 0 {
		return nil
	}
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE id IN (
		     SELECT id FROM refresh_tokens
		     WHERE user_id = ?
		     ORDER BY created_at ASC, id ASC
		     LIMIT ?
		 )`, userID, n)
	return err
}

func (r *refreshTokensRepo) DeleteRefreshTokenByHash(ctx context.Context, hash string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE token_hash = ?`, hash)
	return err
}

func (r *refreshTokensRepo) DeleteAllUserRefreshTokens(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE user_id = ?`, userID)
	return err
}

func (r *refreshTokensRepo) DeleteExpiredRefreshTokens(
	ctx context.Context,
	userID string,
	now time.Time,
) (int64, error) {
	var err error
	var res interface{ RowsAffected() (int64, error) }

	if userID == "" {
		res, err = r.db.ExecContext(ctx,
			`DELETE FROM refresh_tokens WHERE expires_at < ?`, now.UTC())
	} else {
		res, err = r.db.ExecContext(ctx,
			`DELETE FROM refresh_tokens WHERE user_id = ? AND expires_at < ?`,
			userID, now.UTC())
	}
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
