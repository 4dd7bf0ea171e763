// Package bench measures membership filters: insert and query
// throughput, empirical false-positive rate over a held-out probe set,
// and the near-collision rate over single-character variants of probe
// keys. Filters enter the harness through the bloom.Membership
// interface, so any implementation with Add/Contains can be compared,
// including third-party reference filters.
package bench

import (
	"fmt"
	"time"

	"github.com/jpl-au/bloom"
)

// collisionSampleLimit caps the probe keys expanded into variants so
// the collision pass stays cheap relative to the timed passes.
const collisionSampleLimit = 500

// Metrics holds one filter's measurements over a corpus.
type Metrics struct {
	Label             string  `json:"label"`
	InsertCount       int     `json:"insert_count"`
	InsertSeconds     float64 `json:"insert_seconds"`
	InsertOpsPerSec   float64 `json:"insert_ops_per_sec"`
	QueryCount        int     `json:"query_count"`
	QuerySeconds      float64 `json:"query_seconds"`
	QueryOpsPerSec    float64 `json:"query_ops_per_sec"`
	FalsePositiveRate float64 `json:"false_positive_rate"`
	CollisionRate     float64 `json:"collision_rate"`
	FilterBytes       int     `json:"filter_bytes"`
}

// Run inserts train into f, checks the no-false-negative invariant,
// then measures query throughput and error rates against probe. The
// probe set must be disjoint from train for the false-positive rate to
// mean anything; the harness cannot verify that cheaply and trusts the
// caller's split.
func Run(label string, f bloom.Membership, filterBytes int, train, probe []string) (Metrics, error) {
	m := Metrics{
		Label:       label,
		InsertCount: len(train),
		QueryCount:  len(probe),
		FilterBytes: filterBytes,
	}

	start := time.Now()
	for _, key := range train {
		f.Add([]byte(key))
	}
	m.InsertSeconds = time.Since(start).Seconds()
	if m.InsertSeconds > 0 {
		m.InsertOpsPerSec = float64(m.InsertCount) / m.InsertSeconds
	}

	// A filter that loses an inserted key is broken, not slow; abort
	// rather than report throughput for garbage.
	for _, key := range train {
		if !f.Contains([]byte(key)) {
			return m, fmt.Errorf("bench %s: inserted key %q reported absent", label, key)
		}
	}

	start = time.Now()
	fp := 0
	for _, key := range probe {
		if f.Contains([]byte(key)) {
			fp++
		}
	}
	m.QuerySeconds = time.Since(start).Seconds()
	if m.QuerySeconds > 0 {
		m.QueryOpsPerSec = float64(m.QueryCount) / m.QuerySeconds
	}
	if len(probe) > 0 {
		m.FalsePositiveRate = float64(fp) / float64(len(probe))
	}

	m.CollisionRate = collisionRate(f, probe)
	return m, nil
}

// collisionRate probes near-miss variants of held-out keys: a suffix
// append, a last-character replacement, and a prefix prepend. Variant
// hits expose hash families that are weak to small edits; a plain
// false-positive measurement over random keys would not catch that.
func collisionRate(f bloom.Membership, probe []string) float64 {
	sample := len(probe)
	if sample > collisionSampleLimit {
		sample = collisionSampleLimit
	}

	variants, hits := 0, 0
	record := func(v string) {
		variants++
		if f.Contains([]byte(v)) {
			hits++
		}
	}

	for _, key := range probe[:sample] {
		record(key + "X")
		if len(key) > 0 {
			record(key[:len(key)-1] + "Z")
		}
		record("X" + key)
	}

	if variants == 0 {
		return 0
	}
	return float64(hits) / float64(variants)
}
