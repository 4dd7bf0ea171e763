// Capacity-math boundary tests.
//
// Sizing mistakes here are quiet and catastrophic: an off-by-one in the
// byte-length ceiling truncates the bitset and makes the top bit indexes
// write out of bounds, while a wrong power-of-two rounding breaks the
// block filter's mask arithmetic (wordMask = wordCount-1 only isolates
// the index when wordCount is a power of two).
package bloom

import (
	"math"
	"testing"
)

// TestBitsetBytes checks the ceiling division at the byte boundaries a
// filter actually hits: a 1-bit filter still needs a whole byte, 8 bits
// exactly one, 9 bits two.
func TestBitsetBytes(t *testing.T) {
	cases := []struct {
		bits uint64
		want uint64
	}{
		{0, 0},
		{1, 1},
		{7, 1},
		{8, 1},
		{9, 2},
		{63, 8},
		{64, 8},
		{65, 9},
	}
	for _, c := range cases {
		got, err := bitsetBytes(c.bits)
		if err != nil {
			t.Errorf("bitsetBytes(%d): unexpected error %v", c.bits, err)
			continue
		}
		if got != c.want {
			t.Errorf("bitsetBytes(%d) = %d, want %d", c.bits, got, c.want)
		}
	}
}

// TestBitsetBytesOverflow verifies that a bit count too large for the
// +7 rounding, or whose byte length exceeds the platform int range,
// fails with ErrSizeOverflow instead of wrapping to a tiny allocation.
func TestBitsetBytesOverflow(t *testing.T) {
	for _, bits := range []uint64{math.MaxUint64, math.MaxUint64 - 6} {
		if _, err := bitsetBytes(bits); err != ErrSizeOverflow {
			t.Errorf("bitsetBytes(%d): got %v, want ErrSizeOverflow", bits, err)
		}
	}
}

// TestWordCountFor checks the two-stage rounding: bits to words
// (ceiling), then words to the next power of two. 100 bits is the
// documented example: ceil(100/64)=2 words, already a power of two.
func TestWordCountFor(t *testing.T) {
	cases := []struct {
		bits uint64
		want uint64
	}{
		{1, 1},
		{63, 1},
		{64, 1},
		{65, 2},
		{100, 2},
		{128, 2},
		{129, 4},
		{192, 4}, // 3 words requested, rounded to 4
		{1024, 16},
	}
	for _, c := range cases {
		got, err := wordCountFor(c.bits)
		if err != nil {
			t.Errorf("wordCountFor(%d): unexpected error %v", c.bits, err)
			continue
		}
		if got != c.want {
			t.Errorf("wordCountFor(%d) = %d, want %d", c.bits, got, c.want)
		}
	}
}

// TestWordCountForOverflow verifies the guard on requests whose word
// array cannot be addressed.
func TestWordCountForOverflow(t *testing.T) {
	if _, err := wordCountFor(math.MaxUint64); err != ErrSizeOverflow {
		t.Errorf("got %v, want ErrSizeOverflow", err)
	}
}

// TestNextPow2 pins the rounding at the exact powers and their
// neighbours, where rounding bugs live.
func TestNextPow2(t *testing.T) {
	cases := []struct{ in, want uint64 }{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{4, 4},
		{5, 8},
		{1023, 1024},
		{1024, 1024},
		{1025, 2048},
		{1 << 63, 1 << 63},
		{1<<63 + 1, 0}, // no uint64 power of two can hold it
	}
	for _, c := range cases {
		if got := nextPow2(c.in); got != c.want {
			t.Errorf("nextPow2(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

// TestDimensions sanity-checks the textbook sizing formula at the
// classic design point: 1% false positives needs roughly 9.6 bits per
// key and 7 hashes.
func TestDimensions(t *testing.T) {
	sizeBits, k := Dimensions(10000, 0.01)
	if sizeBits < 95000 || sizeBits > 97000 {
		t.Errorf("sizeBits = %d, want ~95851", sizeBits)
	}
	if k != 7 {
		t.Errorf("numHashes = %d, want 7", k)
	}

	// Degenerate inputs fall back to usable values rather than zero.
	sizeBits, k = Dimensions(0, -1)
	if sizeBits == 0 || k == 0 {
		t.Errorf("degenerate inputs produced unusable dimensions %d/%d", sizeBits, k)
	}
}
