// Hash primitives shared by both filter variants.
//
// Hash32 is MurmurHash3 (x86, 32-bit) and Hash64 is an xxHash64-derived
// mixer. Both are chosen for speed and avalanche quality, not adversarial
// resistance; a caller who must survive hostile keys needs a keyed
// cryptographic hash, which is out of scope here.
//
// Hash64 diverges from canonical xxHash64 in how it folds the 4-byte and
// 1-byte tail groups (the mixing constants are applied to the lane before
// the xor rather than after). The digests therefore do not match the
// reference xxHash64 stream except for empty input. Filters serialized
// across implementations depend on these exact digests; see the golden
// vectors in hash_test.go before touching any constant.
package bloom

import "encoding/binary"

// MurmurHash3 x86/32 constants.
const (
	murmurC1 uint32 = 0xcc9e2d51
	murmurC2 uint32 = 0x1b873593
)

// xxHash64 primes.
const (
	prime1 uint64 = 11400714785074694791
	prime2 uint64 = 14029467366897019727
	prime3 uint64 = 1609587929392839161
	prime4 uint64 = 9650029242287828579
	prime5 uint64 = 2870177450012600261
)

// splitmix64 constants (Steele, Lea, Flood).
const (
	splitmixGamma uint64 = 0x9E3779B97F4A7C15
	splitmixMul1  uint64 = 0xBF58476D1CE4E5B9
	splitmixMul2  uint64 = 0x94D049BB133111EB
)

func rotl32(x uint32, r uint) uint32 { return x<<r | x>>(32-r) }
func rotl64(x uint64, r uint) uint64 { return x<<r | x>>(64-r) }

// Hash32 returns the MurmurHash3 x86/32 digest of data under seed. It is
// total: every byte length including zero has a defined result.
func Hash32(data []byte, seed uint32) uint32 {
	h1 := seed
	i := 0

	for ; i+4 <= len(data); i += 4 {
		k1 := binary.LittleEndian.Uint32(data[i:])
		k1 *= murmurC1
		k1 = rotl32(k1, 15)
		k1 *= murmurC2

		h1 ^= k1
		h1 = rotl32(h1, 13)
		h1 = h1*5 + 0xe6546b64
	}

	var k1 uint32
	tail := data[i:]
	switch len(tail) {
	case 3:
		k1 ^= uint32(tail[2]) << 16
		fallthrough
	case 2:
		k1 ^= uint32(tail[1]) << 8
		fallthrough
	case 1:
		k1 ^= uint32(tail[0])
		k1 *= murmurC1
		k1 = rotl32(k1, 15)
		k1 *= murmurC2
		h1 ^= k1
	}

	h1 ^= uint32(len(data))
	h1 ^= h1 >> 16
	h1 *= 0x85ebca6b
	h1 ^= h1 >> 13
	h1 *= 0xc2b2ae35
	h1 ^= h1 >> 16

	return h1
}

// Hash64 returns the 64-bit digest of data under seed. Inputs of 32 bytes
// or more run four parallel accumulators over 32-byte stripes; shorter
// inputs skip the stripe path and start from seed+prime5. The remaining
// 8-byte, 4-byte, and single-byte groups are folded with distinct mixing
// per group width, followed by a final avalanche.
func Hash64(data []byte, seed uint64) uint64 {
	var h64 uint64
	i := 0

	if len(data) >= 32 {
		v1 := seed + prime1 + prime2
		v2 := seed + prime2
		v3 := seed
		v4 := seed - prime1

		for ; i+32 <= len(data); i += 32 {
			v1 += binary.LittleEndian.Uint64(data[i:]) * prime2
			v1 = rotl64(v1, 31)
			v1 *= prime1

			v2 += binary.LittleEndian.Uint64(data[i+8:]) * prime2
			v2 = rotl64(v2, 31)
			v2 *= prime1

			v3 += binary.LittleEndian.Uint64(data[i+16:]) * prime2
			v3 = rotl64(v3, 31)
			v3 *= prime1

			v4 += binary.LittleEndian.Uint64(data[i+24:]) * prime2
			v4 = rotl64(v4, 31)
			v4 *= prime1
		}

		h64 = rotl64(v1, 1) + rotl64(v2, 7) + rotl64(v3, 12) + rotl64(v4, 18)

		for _, v := range [4]uint64{v1, v2, v3, v4} {
			v *= prime2
			v = rotl64(v, 31)
			v *= prime1
			h64 ^= v
			h64 = h64*prime1 + prime4
		}
	} else {
		h64 = seed + prime5
	}

	h64 += uint64(len(data))

	for ; i+8 <= len(data); i += 8 {
		k1 := binary.LittleEndian.Uint64(data[i:])
		k1 *= prime2
		k1 = rotl64(k1, 31)
		k1 *= prime1
		h64 ^= k1
		h64 = rotl64(h64, 27)
		h64 = h64*prime1 + prime4
	}

	if i+4 <= len(data) {
		k1 := uint64(binary.LittleEndian.Uint32(data[i:]))
		i += 4
		k1 *= prime1
		k1 = rotl64(k1, 23)
		k1 *= prime2
		h64 ^= k1
		h64 = h64*prime1 + prime4
	}

	for ; i < len(data); i++ {
		k1 := uint64(data[i])
		k1 *= prime5
		k1 = rotl64(k1, 11)
		k1 *= prime1
		h64 ^= k1
		h64 = rotl64(h64, 11)
		h64 = h64*prime1 + prime4
	}

	h64 ^= h64 >> 33
	h64 *= prime2
	h64 ^= h64 >> 29
	h64 *= prime3
	h64 ^= h64 >> 32

	return h64
}

// SplitMix64 advances state by the splitmix64 increment and returns the
// finalized value. It expands one digest into a stream of well-distributed
// words, which the block filter uses to draw k bit positions from a single
// Hash64 call instead of hashing the key k times.
func SplitMix64(state *uint64) uint64 {
	*state += splitmixGamma
	x := *state
	x = (x ^ (x >> 30)) * splitmixMul1
	x = (x ^ (x >> 27)) * splitmixMul2
	x ^= x >> 31
	return x
}
