// Package determinism provides primitives for guaranteeing deterministic output.
// Anything that is hashed, rendered or compared must iterate maps through these helpers.
package determinism

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"slices"
)

// SortedKeys returns the keys of m in ascending order
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// ContentHash is a SHA-256 hash for content integrity
type ContentHash [32]byte

// ComputeHash computes a content hash from bytes
func ComputeHash(data []byte) ContentHash {
	return sha256.Sum256(data)
}

// Hex returns the hash as a hex string
func (h ContentHash) Hex() string {
	return hex.EncodeToString(h[:])
}

// Short returns the first 12 hex characters, enough to label a snapshot
func (h ContentHash) Short() string {
	return h.Hex()[:12]
}

// String implements Stringer
func (h ContentHash) String() string {
	return h.Hex()[:16] + "..."
}

// IsZero reports whether the hash was never computed
func (h ContentHash) IsZero() bool {
	return h == ContentHash{}
}
