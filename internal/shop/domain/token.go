package domain

import "time"

// TokenPair is what a successful login or refresh hands back.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AccessTokenRecord is an audit row for an issued access token. Only
// the SHA-256 fingerprint is stored, never the token itself.
type AccessTokenRecord struct {
	ID          string
	UserID      string
	Fingerprint string
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// RefreshTokenRecord is the ledger row a refresh token must match to be
// accepted. Deleting the row revokes the token regardless of its JWT
// expiry.
type RefreshTokenRecord struct {
	ID          string
	UserID      string
	Fingerprint string
	ExpiresAt   time.Time
	CreatedAt   time.Time
}
