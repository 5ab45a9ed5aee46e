package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/tradepost/internal/shop/domain"
	"github.com/aussiebroadwan/tradepost/internal/shop/store"
	"github.com/aussiebroadwan/tradepost/pkg/cryptox"
	"github.com/aussiebroadwan/tradepost/pkg/idx"
	"github.com/aussiebroadwan/tradepost/pkg/jwtx"
	"github.com/aussiebroadwan/tradepost/pkg/slogx"
)

// TokenService mints access/refresh pairs and keeps the ledger in sync.
// Access and refresh tokens are signed with distinct keys so one can
// never be presented in place of the other.
type TokenService struct {
	Store           store.Store
	AccessSigner    jwtx.Signer
	RefreshSigner   jwtx.Signer
	RefreshVerifier jwtx.Verifier
	AccessTTL       time.Duration
	RefreshTTL      time.Duration
}

// IssuePair signs a new access/refresh pair for user and persists both
// ledger rows atomically. The refresh row is what later authorizes a
// rotation; the access row is audit only.
func (s *TokenService) IssuePair(ctx context.Context, user domain.User) (domain.TokenPair, error) {
	now := time.Now()

	accessToken, err := s.AccessSigner.Sign(jwtx.NewAccessClaims(user.ID, user.Username, s.AccessTTL, now))
	if err != nil {
		return domain.TokenPair{}, err
	}
	refreshToken, err := s.RefreshSigner.Sign(jwtx.NewRefreshClaims(user.ID, s.RefreshTTL, now))
	if err != nil {
		return domain.TokenPair{}, err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		return s.persistPair(ctx, tx, user.ID, accessToken, refreshToken, now)
	})
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Rotate exchanges a refresh token for a fresh pair. The presented
// token must still have its ledger row; the row is deleted in the same
// transaction that persists the replacement, so the old token can never
// be replayed once rotation succeeds.
func (s *TokenService) Rotate(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)
	fingerprint := cryptox.FingerprintToken(refreshToken)

	if _, err := s.Store.RefreshTokens().GetRefreshTokenByFingerprint(ctx, fingerprint); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("refresh rejected, token not in ledger")
			return domain.TokenPair{}, ErrInvalidRefresh
		}
		return domain.TokenPair{}, err
	}

	claims, err := s.RefreshVerifier.Verify(refreshToken)
	if err != nil {
		l.Info("refresh rejected, verification failed", slog.String("reason", err.Error()))
		return domain.TokenPair{}, ErrInvalidRefresh
	}

	user, err := s.Store.Users().GetUserByID(ctx, claims.UserID())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// The token is genuine but its subject is gone.
			return domain.TokenPair{}, ErrUserNotFound
		}
		return domain.TokenPair{}, err
	}

	now := time.Now()
	newAccess, err := s.AccessSigner.Sign(jwtx.NewAccessClaims(user.ID, user.Username, s.AccessTTL, now))
	if err != nil {
		return domain.TokenPair{}, err
	}
	newRefresh, err := s.RefreshSigner.Sign(jwtx.NewRefreshClaims(user.ID, s.RefreshTTL, now))
	if err != nil {
		return domain.TokenPair{}, err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.RefreshTokens().DeleteRefreshToken(ctx, fingerprint); err != nil {
			return err
		}
		return s.persistPair(ctx, tx, user.ID, newAccess, newRefresh, now)
	})
	if err != nil {
		return domain.TokenPair{}, err
	}

	l.Info("refresh token rotated", slog.String("user_id", user.ID))
	return domain.TokenPair{AccessToken: newAccess, RefreshToken: newRefresh}, nil
}

// RevokeAll drops every refresh token a user holds.
func (s *TokenService) RevokeAll(ctx context.Context, userID string) error {
	return s.Store.RefreshTokens().DeleteUserRefreshTokens(ctx, userID)
}

func (s *TokenService) persistPair(
	ctx context.Context,
	tx store.Tx,
	userID, accessToken, refreshToken string,
	now time.Time,
) error {
	if err := tx.AccessTokens().CreateAccessToken(ctx, domain.AccessTokenRecord{
		ID:          idx.New().String(),
		UserID:      userID,
		Fingerprint: cryptox.FingerprintToken(accessToken),
		ExpiresAt:   now.Add(s.AccessTTL),
		CreatedAt:   now,
	}); err != nil {
		return err
	}
	return tx.RefreshTokens().CreateRefreshToken(ctx, domain.RefreshTokenRecord{
		ID:          idx.New().String(),
		UserID:      userID,
		Fingerprint: cryptox.FingerprintToken(refreshToken),
		ExpiresAt:   now.Add(s.RefreshTTL),
		CreatedAt:   now,
	})
}
