package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/tradepost/internal/shop/domain"
	"github.com/aussiebroadwan/tradepost/internal/shop/store"
	"github.com/aussiebroadwan/tradepost/internal/shop/store/drivers/sqlite"
	"github.com/aussiebroadwan/tradepost/pkg/cryptox"
	"github.com/aussiebroadwan/tradepost/pkg/idx"
	"github.com/aussiebroadwan/tradepost/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "shop.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTokenService(t *testing.T, s store.Store) *TokenService {
	t.Helper()

	accessSigner, err := jwtx.NewSignerHS256([]byte("access-secret"))
	require.NoError(t, err)
	refreshSigner, err := jwtx.NewSignerHS256([]byte("refresh-secret"))
	require.NoError(t, err)
	refreshVerifier, err := jwtx.NewVerifierHS256([]byte("refresh-secret"))
	require.NoError(t, err)

	return &TokenService{
		Store:           s,
		AccessSigner:    accessSigner,
		RefreshSigner:   refreshSigner,
		RefreshVerifier: refreshVerifier,
		AccessTTL:       jwtx.DefaultAccessTokenTTL,
		RefreshTTL:      jwtx.DefaultRefreshTokenTTL,
	}
}

func newAuthService(t *testing.T) (*AuthService, store.Store) {
	t.Helper()

	s := newTestStore(t)
	return &AuthService{Store: s, Tokens: newTokenService(t, s)}, s
}

func TestAuthService_Signup(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	t.Run("creates user with hashed password", func(t *testing.T) {
		user, err := auth.Signup(ctx, "alice1", "A@X.com", "p@ssw0rd")
		require.NoError(t, err)
		require.Equal(t, "alice1", user.Username)
		require.Equal(t, "a@x.com", user.Email, "email is lowercased")
		require.NotEqual(t, "p@ssw0rd", user.PasswordHash)
		require.NoError(t, cryptox.VerifyPassword("p@ssw0rd", user.PasswordHash))
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := auth.Signup(ctx, "alice1", "other@x.com", "p@ssw0rd")
		require.ErrorIs(t, err, ErrDuplicateUser)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := auth.Signup(ctx, "bobby1", "a@x.com", "p@ssw0rd")
		require.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("validation failure surfaces first rule", func(t *testing.T) {
		_, err := auth.Signup(ctx, "bobby1", "b@x.com", "short")
		require.Error(t, err)
		require.True(t, IsValidation(err))
		require.Equal(t, "password too short", err.Error())
	})
}

func TestAuthService_Login(t *testing.T) {
	auth, s := newAuthService(t)
	ctx := context.Background()

	_, err := auth.Signup(ctx, "alice1", "a@x.com", "p@ssw0rd")
	require.NoError(t, err)

	t.Run("unknown username", func(t *testing.T) {
		_, err := auth.Login(ctx, "nobody", "p@ssw0rd")
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := auth.Login(ctx, "alice1", "wrongpass!")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("empty fields", func(t *testing.T) {
		_, err := auth.Login(ctx, "", "p@ssw0rd")
		require.True(t, IsValidation(err))

		_, err = auth.Login(ctx, "alice1", "")
		require.True(t, IsValidation(err))
	})

	t.Run("success issues and persists a pair", func(t *testing.T) {
		pair, err := auth.Login(ctx, "alice1", "p@ssw0rd")
		require.NoError(t, err)
		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.RefreshToken)

		fp := cryptox.FingerprintToken(pair.RefreshToken)
		rec, err := s.RefreshTokens().GetRefreshTokenByFingerprint(ctx, fp)
		require.NoError(t, err)
		require.NotEmpty(t, rec.UserID)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	auth, s := newAuthService(t)
	ctx := context.Background()

	alice, err := auth.Signup(ctx, "alice1", "a@x.com", "p@ssw0rd")
	require.NoError(t, err)
	pair, err := auth.Login(ctx, "alice1", "p@ssw0rd")
	require.NoError(t, err)

	t.Run("rotation invalidates the old token", func(t *testing.T) {
		newPair, err := auth.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)
		require.NotEqual(t, pair.RefreshToken, newPair.RefreshToken)

		// old ledger row is gone
		_, err = s.RefreshTokens().GetRefreshTokenByFingerprint(ctx,
			cryptox.FingerprintToken(pair.RefreshToken))
		require.ErrorIs(t, err, store.ErrNotFound)

		// replaying the rotated-out token fails
		_, err = auth.Refresh(ctx, pair.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidRefresh)

		// the replacement still works
		_, err = auth.Refresh(ctx, newPair.RefreshToken)
		require.NoError(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := auth.Refresh(ctx, "not-a-jwt")
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := auth.Refresh(ctx, "")
		require.True(t, IsValidation(err))
	})

	t.Run("access token is not accepted as refresh", func(t *testing.T) {
		freshPair, err := auth.Login(ctx, "alice1", "p@ssw0rd")
		require.NoError(t, err)

		_, err = auth.Refresh(ctx, freshPair.AccessToken)
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("deleted user's tokens are swept with the account", func(t *testing.T) {
		ghost, err := auth.Signup(ctx, "ghost1", "g@x.com", "p@ssw0rd")
		require.NoError(t, err)
		ghostPair, err := auth.Login(ctx, "ghost1", "p@ssw0rd")
		require.NoError(t, err)

		require.NoError(t, s.Users().DeleteUser(ctx, ghost.ID))

		_, err = auth.Refresh(ctx, ghostPair.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("subject that no longer resolves", func(t *testing.T) {
		ghost, err := auth.Signup(ctx, "ghost2", "g2@x.com", "p@ssw0rd")
		require.NoError(t, err)
		ghostPair, err := auth.Login(ctx, "ghost2", "p@ssw0rd")
		require.NoError(t, err)

		// Deleting the user cascades the ledger row; restore one under a
		// surviving user to model a rotation racing the account delete.
		require.NoError(t, s.Users().DeleteUser(ctx, ghost.ID))
		require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, domain.RefreshTokenRecord{
			ID:          idx.New().String(),
			UserID:      alice.ID,
			Fingerprint: cryptox.FingerprintToken(ghostPair.RefreshToken),
			ExpiresAt:   time.Now().Add(time.Hour),
			CreatedAt:   time.Now(),
		}))

		_, err = auth.Refresh(ctx, ghostPair.RefreshToken)
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	user, err := auth.Signup(ctx, "alice1", "a@x.com", "p@ssw0rd")
	require.NoError(t, err)
	pair, err := auth.Login(ctx, "alice1", "p@ssw0rd")
	require.NoError(t, err)

	t.Run("old password must match", func(t *testing.T) {
		err := auth.ChangePassword(ctx, user.ID, "wrongpass!", "n3wP@ss!")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("new password must pass validation", func(t *testing.T) {
		err := auth.ChangePassword(ctx, user.ID, "p@ssw0rd", "weak")
		require.True(t, IsValidation(err))
	})

	t.Run("success swaps the hash", func(t *testing.T) {
		require.NoError(t, auth.ChangePassword(ctx, user.ID, "p@ssw0rd", "n3wP@ss!"))

		_, err := auth.Login(ctx, "alice1", "p@ssw0rd")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = auth.Login(ctx, "alice1", "n3wP@ss!")
		require.NoError(t, err)
	})

	t.Run("existing refresh tokens stay valid", func(t *testing.T) {
		_, err := auth.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)
	})
}

func TestHousekeeping_Cleanup(t *testing.T) {
	s := newTestStore(t)
	tokens := newTokenService(t, s)
	auth := &AuthService{Store: s, Tokens: tokens}
	ctx := context.Background()

	user, err := auth.Signup(ctx, "alice1", "a@x.com", "p@ssw0rd")
	require.NoError(t, err)

	// Issue a pair with an already-passed TTL so both rows are expired.
	expired := &TokenService{
		Store:           s,
		AccessSigner:    tokens.AccessSigner,
		RefreshSigner:   tokens.RefreshSigner,
		RefreshVerifier: tokens.RefreshVerifier,
		AccessTTL:       -time.Hour,
		RefreshTTL:      -time.Hour,
	}
	pair, err := expired.IssuePair(ctx, user)
	require.NoError(t, err)

	hk := NewHousekeepingService(s, testLogger(), time.Hour)
	hk.cleanup()

	_, err = s.RefreshTokens().GetRefreshTokenByFingerprint(ctx,
		cryptox.FingerprintToken(pair.RefreshToken))
	require.ErrorIs(t, err, store.ErrNotFound)
}
