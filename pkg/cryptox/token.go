package cryptox

import (
	"crypto/sha256"
	"encoding/base64"
)

// FingerprintToken returns a deterministic SHA-256 fingerprint of a
// token. The token ledger stores fingerprints rather than the raw
// bearer strings, so a leaked database dump doesn't hand out usable
// credentials while lookups stay a single indexed equality match.
//
// The fingerprint is returned as a base64url-encoded string (43 chars).
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
