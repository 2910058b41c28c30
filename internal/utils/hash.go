package utils

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// Hasher computes keyed HMAC-SHA256 fingerprints.
type Hasher struct {
	hashKey []byte
}

// NewHasher returns a [Hasher] keyed with hashKey.
func NewHasher(hashKey string) *Hasher {
	return &Hasher{hashKey: []byte(hashKey)}
}

// Fingerprint joins parts with "|" and returns the unpadded base64url HMAC
// of the result. Any change in any part changes the fingerprint.
//
// Example usage:
//
//	fp := hasher.Fingerprint("42", passwordHash, lastLogin, email)
func (h *Hasher) Fingerprint(parts ...string) string {
	mac := hmac.New(sha256.New, h.hashKey)
	mac.Write([]byte(strings.Join(parts, "|")))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Equal compares two fingerprints in constant time.
func (h *Hasher) Equal(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}

// MD5Hex returns the hex MD5 digest of s. It is an identifier, not a
// security primitive.
func MD5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
