// Capacity computations for both filter variants.
//
// Sizing is kept in explicit helpers rather than inline arithmetic so the
// rounding and overflow behaviour can be pinned by tests at the boundary
// values (0, 1, 63, 64, 65, maximum representable size). Go offers no way
// to observe heap exhaustion as an error, so creation guards the
// arithmetic instead: any request whose backing store would overflow
// uint64 or exceed the platform int range fails with ErrSizeOverflow
// before anything is allocated.
package bloom

import (
	"math"
	"math/bits"
)

// bitsetBytes returns ceil(sizeBits/8), the byte length of a flat bitset.
func bitsetBytes(sizeBits uint64) (uint64, error) {
	if sizeBits > math.MaxUint64-7 {
		return 0, ErrSizeOverflow
	}
	n := (sizeBits + 7) / 8
	if n > math.MaxInt {
		return 0, ErrSizeOverflow
	}
	return n, nil
}

// wordCountFor returns the block-filter word count for a requested bit
// length: ceil(sizeBits/64), minimum one word, rounded up to the next
// power of two so the block index can be taken with a mask.
func wordCountFor(sizeBits uint64) (uint64, error) {
	if sizeBits > math.MaxUint64-63 {
		return 0, ErrSizeOverflow
	}
	words := (sizeBits + 63) / 64
	if words == 0 {
		words = 1
	}
	words = nextPow2(words)
	if words == 0 || words > math.MaxInt/8 {
		return 0, ErrSizeOverflow
	}
	return words, nil
}

// nextPow2 returns the smallest power of two >= v, or 0 when v exceeds
// the largest uint64 power of two.
func nextPow2(v uint64) uint64 {
	if v <= 1 {
		return 1
	}
	if v > 1<<63 {
		return 0
	}
	return 1 << bits.Len64(v-1)
}

// Dimensions returns the bit length and hash count that hold the
// false-positive rate fpRate for n expected insertions into a standard
// filter: m = -n·ln(p)/ln(2)², k = (m/n)·ln(2). Results are clamped to at
// least one bit and one hash.
func Dimensions(n uint64, fpRate float64) (sizeBits uint64, numHashes uint32) {
	if n == 0 {
		n = 1
	}
	if fpRate <= 0 || fpRate >= 1 {
		fpRate = 0.01
	}
	m := -float64(n) * math.Log(fpRate) / (math.Ln2 * math.Ln2)
	k := math.Round(m / float64(n) * math.Ln2)

	sizeBits = uint64(math.Ceil(m))
	if sizeBits == 0 {
		sizeBits = 1
	}
	if k < 1 {
		k = 1
	}
	return sizeBits, uint32(k)
}
