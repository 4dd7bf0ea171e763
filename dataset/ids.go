// Token ID derivation.
//
// A token corpus entry is a 16 hex character digest of a sequential
// label. Three algorithms are supported so corpora can be generated
// with different key distributions and dependency footprints.
package dataset

import (
	"fmt"
	"hash/fnv"

	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
)

// Algorithm selects the token ID hash.
type Algorithm int

// Supported ID algorithms.
const (
	AlgXXH3    Algorithm = 1 // Default, fastest
	AlgFNV1a   Algorithm = 2 // No external dependencies
	AlgBlake2b Algorithm = 3 // Best distribution
)

func (a Algorithm) valid() bool {
	return a == AlgXXH3 || a == AlgFNV1a || a == AlgBlake2b
}

// String returns the tag stored in corpus file headers.
func (a Algorithm) String() string {
	switch a {
	case AlgXXH3:
		return "xxh3"
	case AlgFNV1a:
		return "fnv1a"
	case AlgBlake2b:
		return "blake2b"
	default:
		return "unknown"
	}
}

// label is the sequential plaintext a token ID is derived from.
func label(i int) string {
	return fmt.Sprintf("token-%08d", i)
}

// id derives a 16 hex character digest of s using the given algorithm,
// or "" for an unrecognised algorithm.
func id(s string, alg Algorithm) string {
	switch alg {
	case AlgXXH3:
		return fmt.Sprintf("%016x", xxh3.HashString(s))
	case AlgFNV1a:
		h := fnv.New64a()
		h.Write([]byte(s))
		return fmt.Sprintf("%016x", h.Sum64())
	case AlgBlake2b:
		h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
		h.Write([]byte(s))
		return fmt.Sprintf("%016x", h.Sum(nil))
	default:
		return ""
	}
}
