package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Typed verification failures. Callers branch on these with errors.Is
// instead of matching error message strings.
var (
	// ErrMissingKey reports a signer or verifier built without a secret.
	ErrMissingKey = errors.New("jwtx: missing signing key")

	// ErrMalformed reports a token that isn't structurally a JWT.
	ErrMalformed = errors.New("jwtx: malformed token")

	// ErrExpired reports a token past its exp claim.
	ErrExpired = errors.New("jwtx: token expired")

	// ErrInvalid reports a token that failed signature or claim checks.
	ErrInvalid = errors.New("jwtx: invalid token")
)

// Signer signs claims into compact JWT strings.
type Signer interface {
	Sign(Claims) (string, error)
}

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// HS256Signer signs tokens with a shared HMAC-SHA256 secret. The access
// and refresh tokens each get their own signer with a distinct secret,
// so one can never be presented in place of the other.
type HS256Signer struct {
	secret []byte
}

// NewSignerHS256 creates an HMAC signer. An empty secret is a
// configuration fault and is rejected here so it fails at startup
// rather than on the first request.
func NewSignerHS256(secret []byte) (*HS256Signer, error) {
	if len(secret) == 0 {
		return nil, ErrMissingKey
	}
	return &HS256Signer{secret: secret}, nil
}

// Sign takes your claims and turns them into a signed JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrMissingKey
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// HS256Verifier validates JWTs signed using HS256.
type HS256Verifier struct {
	secret []byte
}

// NewVerifierHS256 creates a verifier for tokens minted with the same
// shared secret.
func NewVerifierHS256(secret []byte) (*HS256Verifier, error) {
	if len(secret) == 0 {
		return nil, ErrMissingKey
	}
	return &HS256Verifier{secret: secret}, nil
}

// Verify validates the JWT string and returns its parsed Claims.
// Failures come back as one of the typed sentinels above.
func (v *HS256Verifier) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalid
	}

	return *claims, nil
}

// mapParseError collapses the jwt library's error tree into our typed
// sentinels. Expiry is distinguished because the HTTP layer reports it
// with a dedicated message.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	default:
		return ErrInvalid
	}
}
