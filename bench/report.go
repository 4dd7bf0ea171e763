// Report rendering.
//
// Compare prints a fixed-width table with one column per measured
// filter and a trailing diff column relative to the first (baseline)
// filter. WriteJSON emits the same rows machine-readably.
package bench

import (
	"fmt"
	"io"
	"math"

	json "github.com/goccy/go-json"
)

// row extraction for the comparison table.
type metricRow struct {
	name   string
	format string
	value  func(*Metrics) float64
}

var metricRows = []metricRow{
	{"Insertion Throughput (ops/sec)", "%14.0f", func(m *Metrics) float64 { return m.InsertOpsPerSec }},
	{"Insertion Time (sec)", "%14.5f", func(m *Metrics) float64 { return m.InsertSeconds }},
	{"Query Throughput (ops/sec)", "%14.0f", func(m *Metrics) float64 { return m.QueryOpsPerSec }},
	{"Query Time (sec)", "%14.5f", func(m *Metrics) float64 { return m.QuerySeconds }},
	{"Insert Count", "%14.0f", func(m *Metrics) float64 { return float64(m.InsertCount) }},
	{"Query Count", "%14.0f", func(m *Metrics) float64 { return float64(m.QueryCount) }},
	{"Filter size (bytes)", "%14.0f", func(m *Metrics) float64 { return float64(m.FilterBytes) }},
	{"False Positive Rate (%)", "%14.4f", func(m *Metrics) float64 { return m.FalsePositiveRate * 100 }},
	{"Collision Rate (%)", "%14.4f", func(m *Metrics) float64 { return m.CollisionRate * 100 }},
}

// Compare renders the comparison table for rows. The first entry is
// the baseline; every other column's diff is relative to it. A nil or
// empty slice renders nothing.
func Compare(w io.Writer, rows []Metrics) {
	if len(rows) == 0 {
		return
	}

	fmt.Fprintf(w, "%-34s", "Metric")
	for i := range rows {
		fmt.Fprintf(w, "%14s", rows[i].Label)
		if i > 0 {
			fmt.Fprintf(w, "%12s", "Diff")
		}
	}
	fmt.Fprintln(w)

	width := 34 + 14
	for i := 1; i < len(rows); i++ {
		width += 14 + 12
	}
	for i := 0; i < width; i++ {
		fmt.Fprint(w, "-")
	}
	fmt.Fprintln(w)

	for _, r := range metricRows {
		fmt.Fprintf(w, "%-34s", r.name)
		base := r.value(&rows[0])
		for i := range rows {
			v := r.value(&rows[i])
			fmt.Fprintf(w, r.format, v)
			if i > 0 {
				fmt.Fprintf(w, "%12s", diffText(base, v))
			}
		}
		fmt.Fprintln(w)
	}
}

// diffText formats the relative difference of v against base.
func diffText(base, v float64) string {
	if math.Abs(base) < 1e-12 {
		if math.Abs(v) < 1e-12 {
			return "~0.00%"
		}
		return "+Inf%"
	}
	diff := (v - base) / base * 100
	if math.Abs(diff) < 1e-9 {
		return "~0.00%"
	}
	return fmt.Sprintf("%+.2f%%", diff)
}

// WriteJSON emits the measured rows as an indented JSON array.
func WriteJSON(w io.Writer, rows []Metrics) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
