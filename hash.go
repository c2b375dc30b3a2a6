package bloom

import (
	"math/rand/v2"

	"github.com/zeebo/xxh3"
)

// hashSeed computes the seeded xxh3 digest of data. Keying the same
// algorithm with k distinct seeds is what makes the k hash functions
// behave independently for the same input.
func hashSeed(data []byte, seed uint64) uint64 {
	return xxh3.HashSeed(data, seed)
}

// hashStringSeed computes the seeded xxh3 digest of a string.
// This avoids the allocation of converting string to []byte.
func hashStringSeed(s string, seed uint64) uint64 {
	return xxh3.HashStringSeed(s, seed)
}

// newSeeds generates k uniformly random 64-bit seeds. The seeds are drawn
// independently, never derived from one another, so the keyed hash
// invocations do not share collision structure.
func newSeeds(k uint32) []uint64 {
	seeds := make([]uint64, k)
	for i := range seeds {
		seeds[i] = rand.Uint64()
	}
	return seeds
}
