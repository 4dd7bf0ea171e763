// Package dataset generates and persists synthetic key corpora for
// exercising membership filters. A corpus is an ordered list of string
// keys split into an insert set (fed to the filter) and a probe set
// (held out to measure false positives). Two corpus shapes are
// provided: random UUIDv4 strings, and deterministic hashed-token IDs
// derived from sequential labels with a selectable hash algorithm.
package dataset

import (
	"errors"

	"github.com/google/uuid"
)

// Sentinel errors for programmatic handling.
var (
	ErrUnknownAlgorithm = errors.New("unknown id hash algorithm")
	ErrCorruptCorpus    = errors.New("corrupt corpus file")
)

// UUIDs returns n random version-4 UUID strings. The corpus is not
// reproducible across calls; use Save/Load to reuse a drawn corpus, or
// Tokens for a deterministic one.
func UUIDs(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = uuid.NewString()
	}
	return keys
}

// Tokens returns n deterministic 16-hex-character IDs derived from
// sequential labels with the given algorithm. The same (n, alg) always
// yields the same corpus, which makes filter measurements repeatable
// without persisting anything.
func Tokens(n int, alg Algorithm) ([]string, error) {
	if !alg.valid() {
		return nil, ErrUnknownAlgorithm
	}
	keys := make([]string, n)
	for i := range keys {
		keys[i] = id(label(i), alg)
	}
	return keys, nil
}

// Split partitions keys into an insert set (the first trainPercent of
// the corpus) and a probe set (the remainder). trainPercent is clamped
// to [0, 100]. The returned slices share the backing array with keys.
func Split(keys []string, trainPercent int) (train, probe []string) {
	if trainPercent < 0 {
		trainPercent = 0
	}
	if trainPercent > 100 {
		trainPercent = 100
	}
	cut := len(keys) * trainPercent / 100
	return keys[:cut], keys[cut:]
}
