// Package hashutil implements the deterministic change-point hash from
// spec.md §4.1: data_hash = truncate(SHA-256(canonical_json(sorted(items))), 16 hex).
package hashutil

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sort"
)

// CanonicalJSON marshals v with map keys sorted (Go's encoding/json already
// sorts map[string]any keys) and no locale-dependent number formatting —
// float64 round-trips through Go's shortest-representation formatter, and
// null stays the literal JSON null. Kept as a named function because
// DataHash and any future raw-payload hashing (e.g. debugging) must share
// exactly one implementation, per spec.md's "must be implemented once and
// shared" note.
func CanonicalJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}

// DataHash computes the 16-hex-char deterministic hash of a set of parsed
// items. Items are first marshaled individually, then sorted by their own
// canonical JSON bytes so that the result is independent of input order
// (P1: hash_stability — permutations hash identically).
func DataHash(items []any) (string, error) {
	encoded := make([][]byte, 0, len(items))
	for _, item := range items {
		b, err := CanonicalJSON(item)
		if err != nil {
			return "", fmt.Errorf("encoding item for hash: %w", err)
		}
		encoded = append(encoded, b)
	}

	sort.Slice(encoded, func(i, j int) bool {
		return string(encoded[i]) < string(encoded[j])
	})

	// Re-join as a JSON array literal rather than re-marshaling the sorted
	// byte slices (which would re-order map keys again but is otherwise
	// equivalent) — this keeps exactly one json.Marshal call per item.
	joined := append([]byte{'['}, []byte{}...)
	for i, b := range encoded {
		if i > 0 {
			joined = append(joined, ',')
		}
		joined = append(joined, b...)
	}
	joined = append(joined, ']')

	sum := sha256.Sum256(joined)
	return fmt.Sprintf("%x", sum)[:16], nil
}
