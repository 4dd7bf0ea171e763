// Package bloom provides approximate set-membership filters: answer
// "possibly present" or "definitely absent" for a query key, trading a
// bounded false-positive rate for sub-linear memory versus an exact set.
//
// Two variants are provided. Filter is a classic flat bit array using
// Kirsch–Mitzenmacher double hashing: each key maps to k bit positions
// anywhere in the array. BlockFilter confines all k probe bits of a key
// to a single 64-bit word chosen by the key's hash, so every insert and
// lookup touches exactly one cache line at the cost of a slightly higher
// false-positive rate for the same bit budget.
//
// Both variants are insert-only: bits are set and never cleared, so a key
// that was inserted is always reported as possibly present (no false
// negatives). Neither variant supports deletion, resizing, or concurrent
// mutation, but a filter that is no longer written may be shared freely by
// concurrent readers.
package bloom

import "errors"

// Sentinel errors for programmatic handling. Creation either fully
// succeeds or fails with one of these, leaving nothing to release.
var (
	ErrZeroSize     = errors.New("filter size must be at least one bit")
	ErrZeroHashes   = errors.New("hash count must be at least one")
	ErrSizeOverflow = errors.New("filter size exceeds addressable storage")
)
