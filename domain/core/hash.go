package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// Fingerprint is a hash identifying the exact content of a table or plan.
// Identical input always yields an identical fingerprint.
type Fingerprint Hash

// NewFingerprint hashes an ordered sequence of parts with a separator that
// cannot occur inside a part after escaping.
func NewFingerprint(parts []string) Fingerprint {
	var data strings.Builder
	for _, part := range parts {
		data.WriteString(escapePart(part))
		data.WriteByte(0x1e)
	}
	return Fingerprint(NewHash([]byte(data.String())))
}

// String returns the string representation
func (f Fingerprint) String() string { return Hash(f).String() }

// Equals checks if two fingerprints are equal
func (f Fingerprint) Equals(other Fingerprint) bool { return f == other }

func escapePart(s string) string {
	return strings.ReplaceAll(s, "\x1e", "\x1e\x1e")
}
