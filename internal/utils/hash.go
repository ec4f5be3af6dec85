package utils

import (
	"crypto/sha256"
	"crypto/subtle"
)

// DeriveSigningKey returns the SHA-256 digest of secret. The admin session
// JWT is signed with the digest of ADMIN_PORTAL_KEY rather than the key
// itself.
//
// Example usage:
//
//	key := utils.DeriveSigningKey(cfg.App.AdminPortalKey)
func DeriveSigningKey(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	return sum[:]
}

// ConstantTimeEqual compares two secrets in time independent of where they
// differ and of their lengths. Both values are hashed first so that inputs
// of different length take the same path.
func ConstantTimeEqual(a, b string) bool {
	ha := sha256.Sum256([]byte(a))
	hb := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(ha[:], hb[:]) == 1
}
