package common

import (
	"crypto/rand"
	"encoding/hex"
)

// MakeRandHexString returns a hex string built from size random bytes
// (so the result is size*2 characters long). Used for opaque refresh tokens.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// WipeByteArray zeroes the buffer in place. Safe on nil.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
