package project

import (
	"crypto/sha256"
)

// Digest is a SHA-256 value, same shape as source.File.Hash.
type Digest [32]byte

// Combine hashes content followed by parts: H(content || p1 || p2 ...).
// The order of parts is significant.
func Combine(content Digest, parts ...[]byte) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
