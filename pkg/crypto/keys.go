package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

const (
	// KeyMarker is the fixed prefix of every API key this service issues.
	// Downstream systems can recognize our keys without a database lookup.
	KeyMarker = "mk_"

	// PublicPrefixLen is the number of leading characters of a key that are
	// safe to display in listings and logs.
	PublicPrefixLen = 11

	// keyEntropyBytes is the random payload of a generated key (256 bits).
	keyEntropyBytes = 32
)

var randomRead = rand.Read

// HashKey returns the SHA-256 digest of a plaintext API key as a lowercase
// hex string. Keys are stored and looked up by this digest only.
func HashKey(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// ConstantTimeEqual compares two strings without leaking a length or
// prefix-match signal through timing. Every byte of the longer input is
// examined and a length mismatch is folded into the same accumulator as
// byte mismatches, so there is no early exit on either condition.
func ConstantTimeEqual(a, b string) bool {
	ab := []byte(a)
	bb := []byte(b)

	n := len(ab)
	if len(bb) > n {
		n = len(bb)
	}

	acc := len(ab) ^ len(bb)
	for i := 0; i < n; i++ {
		var x, y byte
		if i < len(ab) {
			x = ab[i]
		}
		if i < len(bb) {
			y = bb[i]
		}
		acc |= int(x ^ y)
	}

	return acc == 0
}

// GenerateKey produces a new plaintext API key and its public prefix.
// The plaintext carries 256 bits of entropy encoded as unpadded
// base64url after the key marker. The prefix is the first
// PublicPrefixLen characters (marker plus eight encoded characters),
// long enough to identify a key in a listing while leaking nothing
// about the remainder.
func GenerateKey() (plaintext string, prefix string, err error) {
	buf := make([]byte, keyEntropyBytes)
	if _, err := randomRead(buf); err != nil {
		return "", "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	plaintext = KeyMarker + base64.RawURLEncoding.EncodeToString(buf)
	return plaintext, plaintext[:PublicPrefixLen], nil
}
