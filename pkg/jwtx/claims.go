package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTL constants. Access tokens are short-lived bearer
// credentials; refresh tokens live longer so users aren't forced to
// re-enter their password every couple of hours.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = 2 * time.Hour

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Claims are the token claims used across the service. The access token
// carries the username for visibility; the refresh token only carries
// the user id in the subject.
type Claims struct {
	jwt.RegisteredClaims

	// Username of the authenticated user. Empty on refresh tokens.
	Username string `json:"username,omitempty"`
}

// NewAccessClaims builds claims for an access token.
func NewAccessClaims(userID, username string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Username: username,
	}
}

// NewRefreshClaims builds claims for a refresh token. Only the subject
// is carried; refresh tokens never hold the username.
func NewRefreshClaims(userID string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// UserID returns the subject claim.
func (c *Claims) UserID() string { return c.Subject }
