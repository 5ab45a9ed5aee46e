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
	"github.com/aussiebroadwan/tradepost/pkg/slogx"
)

// AuthService orchestrates signup, login, refresh and password changes.
type AuthService struct {
	Store  store.Store
	Tokens *TokenService
}

// Signup validates the submitted credentials, creates the user and
// returns the stored record. No tokens are persisted here; only login
// and refresh write to the ledger.
func (s *AuthService) Signup(ctx context.Context, username, email, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	if err := ValidateSignup(username, email, password); err != nil {
		return domain.User{}, err
	}
	email = NormalizeEmail(email)

	// Pre-checks give precise duplicate messages; the store's unique
	// constraints still bound the race between concurrent signups.
	if _, err := s.Store.Users().GetUserByUsername(ctx, username); err == nil {
		return domain.User{}, ErrDuplicateUser
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}
	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return domain.User{}, ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrDuplicateUser
		}
		return domain.User{}, err
	}

	l.Info("user registered", slog.String("user_id", user.ID), slog.String("username", username))
	return user, nil
}

// Login exchanges a username/password for a token pair. An unknown
// username and a wrong password fail differently so the HTTP layer can
// keep its distinct status codes.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	if username == "" {
		return domain.TokenPair{}, &ValidationError{Message: "Username cannot be empty"}
	}
	if password == "" {
		return domain.TokenPair{}, &ValidationError{Message: "Password cannot be empty"}
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrUserNotFound
		}
		return domain.TokenPair{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("login failed, bad password", slog.String("username", username))
		return domain.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.Tokens.IssuePair(ctx, user)
	if err != nil {
		return domain.TokenPair{}, err
	}

	l.Info("login successful", slog.String("user_id", user.ID))
	return pair, nil
}

// Refresh rotates a refresh token for a new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	if refreshToken == "" {
		return domain.TokenPair{}, &ValidationError{Message: "Refresh token cannot be empty"}
	}
	return s.Tokens.Rotate(ctx, refreshToken)
}

// ChangePassword swaps a user's password after verifying the old one.
// Previously issued tokens stay valid; callers wanting revocation can
// follow up with Tokens.RevokeAll.
func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := cryptox.VerifyPassword(oldPassword, user.PasswordHash); err != nil {
		return ErrInvalidCredentials
	}
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Store.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
		return err
	}

	l.Info("password changed", slog.String("user_id", userID))
	return nil
}

// GetUserByID fetches a user by id.
func (s *AuthService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}
