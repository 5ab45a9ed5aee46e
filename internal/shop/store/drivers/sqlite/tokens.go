package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/tradepost/internal/shop/domain"
)

type accessTokensRepo struct {
	db dbtx
}

func (r *accessTokensRepo) CreateAccessToken(ctx context.Context, t domain.AccessTokenRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO access_tokens (id, user_id, fingerprint, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Fingerprint, t.ExpiresAt.Unix(), t.CreatedAt.Unix(),
	)
	return mapConstraint(err)
}

func (r *accessTokensRepo) DeleteExpiredAccessTokens(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM access_tokens WHERE expires_at < ?`, time.Now().Unix(),
	)
	return err
}

type refreshTokensRepo struct {
	db dbtx
}

func (r *refreshTokensRepo) CreateRefreshToken(ctx context.Context, t domain.RefreshTokenRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO refresh_tokens (id, user_id, fingerprint, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Fingerprint, t.ExpiresAt.Unix(), t.CreatedAt.Unix(),
	)
	return mapConstraint(err)
}

func (r *refreshTokensRepo) GetRefreshTokenByFingerprint(
	ctx context.Context,
	fingerprint string,
) (domain.RefreshTokenRecord, error) {
	var (
		t                  domain.RefreshTokenRecord
		expiresAt, created int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, fingerprint, expires_at, created_at
		 FROM refresh_tokens WHERE fingerprint = ?`, fingerprint,
	).Scan(&t.ID, &t.UserID, &t.Fingerprint, &expiresAt, &created)
	if err != nil {
		return domain.RefreshTokenRecord{}, mapNotFound(err)
	}
	t.ExpiresAt = time.Unix(expiresAt, 0).UTC()
	t.CreatedAt = time.Unix(created, 0).UTC()
	return t, nil
}

func (r *refreshTokensRepo) DeleteRefreshToken(ctx context.Context, fingerprint string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE fingerprint = ?`, fingerprint,
	)
	return err
}

func (r *refreshTokensRepo) DeleteUserRefreshTokens(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE user_id = ?`, userID,
	)
	return err
}

func (r *refreshTokensRepo) DeleteExpiredRefreshTokens(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at < ?`, time.Now().Unix(),
	)
	return err
}
