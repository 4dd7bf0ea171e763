// Standard double-hashing filter.
//
// A flat bit array of arbitrary bit length. Each key derives k bit
// positions anywhere in the array from two base digests via the
// Kirsch–Mitzenmacher construction (h1 + i·h2), which preserves the
// asymptotic false-positive behaviour of k independent hashes at the
// cost of two.
package bloom

import "math/bits"

// Membership is the operation contract shared by both filter variants.
// Add records a key; Contains reports whether the key is possibly
// present (true) or definitely absent (false).
type Membership interface {
	Add(key []byte)
	Contains(key []byte) bool
}

// Filter is a double-hashing membership filter over a flat bit array.
// The zero value is unusable; construct with New. Not safe for
// concurrent mutation.
type Filter struct {
	bits      []byte
	sizeBits  uint64
	numHashes uint32
	seed1     uint32
	seed2     uint64
}

// Compile-time interface checks for both variants.
var (
	_ Membership = (*Filter)(nil)
	_ Membership = (*BlockFilter)(nil)
)

// New returns a zero-filled filter of sizeBits bits probing numHashes
// positions per key. seed1 feeds the 32-bit base hash and seed2 the
// 64-bit stride hash; two filters agree bit-for-bit only if all four
// parameters match.
func New(sizeBits uint64, numHashes uint32, seed1 uint32, seed2 uint64) (*Filter, error) {
	if sizeBits < 1 {
		return nil, ErrZeroSize
	}
	if numHashes == 0 {
		return nil, ErrZeroHashes
	}
	byteLen, err := bitsetBytes(sizeBits)
	if err != nil {
		return nil, err
	}
	return &Filter{
		bits:      make([]byte, byteLen),
		sizeBits:  sizeBits,
		numHashes: numHashes,
		seed1:     seed1,
		seed2:     seed2,
	}, nil
}

// positions derives the base digest and stride for key. The stride is
// clamped to 1 when the 64-bit digest is a multiple of the bit length,
// because a zero stride would degrade double hashing to the same bit index
// repeated k times.
func (f *Filter) positions(key []byte) (h1, h2 uint64) {
	h1 = uint64(Hash32(key, f.seed1))
	h2 = Hash64(key, f.seed2) % f.sizeBits
	if h2 == 0 {
		h2 = 1
	}
	return h1, h2
}

// Add inserts key into the filter. Bits are only ever set, so insertion
// is monotonic: once a key is added it is reported present forever.
// A nil or freed filter and a nil key are silently ignored.
func (f *Filter) Add(key []byte) {
	if f == nil || f.bits == nil || key == nil {
		return
	}
	h1, h2 := f.positions(key)
	for i := uint64(0); i < uint64(f.numHashes); i++ {
		j := (h1 + i*h2) % f.sizeBits
		f.bits[j>>3] |= 1 << (j & 7)
	}
}

// Contains reports whether key is possibly present. False means the key
// was definitely never added. A nil or freed filter and a nil key are
// definite absence.
func (f *Filter) Contains(key []byte) bool {
	if f == nil || f.bits == nil || key == nil {
		return false
	}
	h1, h2 := f.positions(key)
	for i := uint64(0); i < uint64(f.numHashes); i++ {
		j := (h1 + i*h2) % f.sizeBits
		if f.bits[j>>3]&(1<<(j&7)) == 0 {
			return false
		}
	}
	return true
}

// AddString inserts a string key.
func (f *Filter) AddString(key string) { f.Add([]byte(key)) }

// ContainsString reports whether a string key is possibly present.
func (f *Filter) ContainsString(key string) bool { return f.Contains([]byte(key)) }

// Free releases the bit array and returns the filter to its
// uninitialized state. Safe to call repeatedly and on a zero value;
// subsequent Add calls are no-ops and Contains reports absence.
func (f *Filter) Free() {
	if f == nil {
		return
	}
	*f = Filter{}
}

// SizeBits returns the bit length requested at creation, or 0 for an
// uninitialized or freed filter.
func (f *Filter) SizeBits() uint64 { return f.sizeBits }

// ByteLength returns the backing buffer footprint in bytes.
func (f *Filter) ByteLength() int { return len(f.bits) }

// NumHashes returns k, the probe bits set per key.
func (f *Filter) NumHashes() uint32 { return f.numHashes }

// Fill returns the fraction of bits currently set, a cheap saturation
// gauge: the expected false-positive rate is roughly Fill^k.
func (f *Filter) Fill() float64 {
	if f == nil || f.sizeBits == 0 {
		return 0
	}
	var set int
	for _, b := range f.bits {
		set += bits.OnesCount8(b)
	}
	return float64(set) / float64(f.sizeBits)
}
