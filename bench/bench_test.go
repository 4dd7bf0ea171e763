package bench

import (
	"bytes"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/bloom"
	"github.com/jpl-au/bloom/dataset"
)

func corpus(t *testing.T, n int) (train, probe []string) {
	t.Helper()
	keys, err := dataset.Tokens(n, dataset.AlgXXH3)
	require.NoError(t, err)
	return dataset.Split(keys, 80)
}

func TestRunStandardFilter(t *testing.T) {
	train, probe := corpus(t, 5000)

	f, err := bloom.New(uint64(10*len(train)), 7, 0, 0)
	require.NoError(t, err)
	defer f.Free()

	m, err := Run("standard", f, f.ByteLength(), train, probe)
	require.NoError(t, err)

	require.Equal(t, "standard", m.Label)
	require.Equal(t, len(train), m.InsertCount)
	require.Equal(t, len(probe), m.QueryCount)
	require.Equal(t, f.ByteLength(), m.FilterBytes)
	require.Less(t, m.FalsePositiveRate, 0.02, "FP rate out of design bounds")
	require.GreaterOrEqual(t, m.InsertSeconds, 0.0)
}

func TestRunBlockFilter(t *testing.T) {
	train, probe := corpus(t, 5000)

	f, err := bloom.NewBlock(uint64(10*len(train)), 7, 0)
	require.NoError(t, err)
	defer f.Free()

	m, err := Run("block", f, f.ByteLength(), train, probe)
	require.NoError(t, err)
	require.Less(t, m.FalsePositiveRate, 0.05)
	require.Less(t, m.CollisionRate, 0.05)
}

// brokenFilter drops every key: Run must refuse to report metrics for
// a filter that violates the no-false-negative invariant.
type brokenFilter struct{}

func (brokenFilter) Add(key []byte)           {}
func (brokenFilter) Contains(key []byte) bool { return false }

func TestRunDetectsFalseNegatives(t *testing.T) {
	train, probe := corpus(t, 100)
	_, err := Run("broken", brokenFilter{}, 0, train, probe)
	require.Error(t, err)
	require.Contains(t, err.Error(), "reported absent")
}

func TestRunEmptyProbe(t *testing.T) {
	train, _ := corpus(t, 100)

	f, err := bloom.New(4096, 5, 0, 0)
	require.NoError(t, err)

	m, err := Run("standard", f, f.ByteLength(), train, nil)
	require.NoError(t, err)
	require.Zero(t, m.FalsePositiveRate)
	require.Zero(t, m.CollisionRate)
}

func TestCompareRendersAllRows(t *testing.T) {
	rows := []Metrics{
		{Label: "standard", InsertCount: 80, QueryCount: 20, FilterBytes: 1000, InsertOpsPerSec: 1e6},
		{Label: "block", InsertCount: 80, QueryCount: 20, FilterBytes: 1024, InsertOpsPerSec: 2e6},
	}

	var buf bytes.Buffer
	Compare(&buf, rows)
	out := buf.String()

	require.Contains(t, out, "standard")
	require.Contains(t, out, "block")
	for _, name := range []string{
		"Insertion Throughput", "Query Throughput", "Filter size (bytes)",
		"False Positive Rate", "Collision Rate",
	} {
		require.Contains(t, out, name)
	}
	// Twice the baseline throughput reads as +100%.
	require.Contains(t, out, "+100.00%")
}

func TestCompareEmpty(t *testing.T) {
	var buf bytes.Buffer
	Compare(&buf, nil)
	require.Empty(t, buf.String())
}

func TestWriteJSON(t *testing.T) {
	rows := []Metrics{{Label: "standard", InsertCount: 80, FilterBytes: 1000}}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, rows))

	var decoded []Metrics
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, rows, decoded)
	require.True(t, strings.Contains(buf.String(), `"insert_count": 80`))
}
