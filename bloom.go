package bloom

import (
	"fmt"
	"math/bits"
	"sync/atomic"
)

// Filter is a thread-safe bloom filter backed by a flat array of atomic
// 64-bit words. Any number of goroutines may call Add and Test concurrently
// without external locking; every operation is a bounded sequence of atomic
// word operations plus k hash computations, lock-free and non-blocking.
//
// Each of the k hash functions is the same xxh3 algorithm keyed with its own
// random seed. A digest maps to a bit via digest mod Cap(), then decomposes
// into a word index and an in-word mask.
//
// The bit count and seeds are immutable after construction. A bit, once set,
// is only ever cleared by Reset.
type Filter struct {
	bitCount uint64          // Total addressable bits, always a multiple of 64
	seeds    []uint64        // One random seed per hash function, fixed at construction
	words    []atomic.Uint64 // The bit array, bitCount/64 words
	setBits  atomic.Uint64   // Bits that transitioned 0->1 since creation or last Reset
}

// New creates a filter sized for the expected number of items at the desired
// false positive rate. Inputs are clamped, never rejected; see OptimalParams.
func New(expectedItems uint64, fpRate float64) *Filter {
	bitCount, k := OptimalParams(expectedItems, fpRate)
	return NewWithParams(bitCount, k)
}

// NewWithParams creates a filter with an explicit bit count and number of
// hash functions. bitCount is rounded up to a multiple of 64 and clamped to
// at least one word; k is clamped to at least 1. Hash seeds are generated
// fresh, so two filters built with identical parameters still hash
// differently.
func NewWithParams(bitCount uint64, k uint32) *Filter {
	words := (bitCount + WordBits - 1) / WordBits
	words = max(words, 1)
	k = max(k, 1)

	return &Filter{
		bitCount: words * WordBits,
		seeds:    newSeeds(k),
		words:    make([]atomic.Uint64, words),
	}
}

// bitPos decomposes a digest into the word index and in-word mask of the bit
// it addresses.
func (f *Filter) bitPos(digest uint64) (idx uint64, mask uint64) {
	pos := digest % f.bitCount
	return pos >> 6, 1 << (pos & 63)
}

// setBit atomically ORs one bit into its word and reports whether this call
// transitioned it from 0 to 1. Each new bit bumps the advisory counter.
func (f *Filter) setBit(digest uint64) bool {
	idx, mask := f.bitPos(digest)
	prev := f.words[idx].Or(mask)
	isNew := prev&mask == 0
	if isNew {
		f.setBits.Add(1)
	}
	return isNew
}

// checkBit atomically loads one bit.
func (f *Filter) checkBit(digest uint64) bool {
	idx, mask := f.bitPos(digest)
	return f.words[idx].Load()&mask != 0
}

// Add inserts data into the filter. Safe to call concurrently with other
// Add and Test calls. Insertion cannot fail and is idempotent.
func (f *Filter) Add(data []byte) {
	for _, seed := range f.seeds {
		f.setBit(hashSeed(data, seed))
	}
}

// AddString inserts a string into the filter without allocating.
func (f *Filter) AddString(s string) {
	for _, seed := range f.seeds {
		f.setBit(hashStringSeed(s, seed))
	}
}

// Test reports whether data might be in the filter. A false result means the
// data was definitely never added; a true result may be a false positive,
// with probability bounded by the configured rate.
//
// An Add that has returned is always visible: Test never returns false for
// an item whose insertion completed before the query began. A Test that
// overlaps an in-flight Add of the same item may observe only some of its k
// bits and return false; the filter promises no ordering across words.
func (f *Filter) Test(data []byte) bool {
	for _, seed := range f.seeds {
		if !f.checkBit(hashSeed(data, seed)) {
			return false
		}
	}
	return true
}

// TestString reports whether a string might be in the filter without
// allocating.
func (f *Filter) TestString(s string) bool {
	for _, seed := range f.seeds {
		if !f.checkBit(hashStringSeed(s, seed)) {
			return false
		}
	}
	return true
}

// TestAndAdd inserts data and reports whether it might already have been
// present before the call. The test and the insert are not one atomic
// operation across the k bits; use it for best-effort deduplication, not
// strict mutual exclusion.
func (f *Filter) TestAndAdd(data []byte) bool {
	present := true
	for _, seed := range f.seeds {
		if f.setBit(hashSeed(data, seed)) {
			present = false
		}
	}
	return present
}

// TestAndAddString is TestAndAdd for string keys, without allocating.
func (f *Filter) TestAndAddString(s string) bool {
	present := true
	for _, seed := range f.seeds {
		if f.setBit(hashStringSeed(s, seed)) {
			present = false
		}
	}
	return present
}

// Reset clears every bit and zeroes the set-bit counter, returning the
// filter to its freshly constructed state. Bit count and seeds are kept.
//
// Reset does not compose with concurrent use: callers must ensure no Add or
// Test is in flight, and none starts until Reset returns. The filter
// provides per-word atomicity only, so a racing reader could observe an
// arbitrary mix of cleared and uncleared words.
func (f *Filter) Reset() {
	for i := range f.words {
		f.words[i].Store(0)
	}
	f.setBits.Store(0)
}

// SetBits returns the number of bits that transitioned from 0 to 1 since
// creation or the last Reset. The counter is advisory: under concurrent
// inserts of colliding bits it may slightly under-count, and it is never
// consulted for correctness. It is monotonically non-decreasing between
// resets.
func (f *Filter) SetBits() uint64 {
	return f.setBits.Load()
}

// Cap returns the capacity of the filter in bits.
func (f *Filter) Cap() uint64 {
	return f.bitCount
}

// K returns the number of hash functions used.
func (f *Filter) K() uint32 {
	return uint32(len(f.seeds))
}

// Seeds returns a copy of the filter's hash seeds.
func (f *Filter) Seeds() []uint64 {
	seeds := make([]uint64, len(f.seeds))
	copy(seeds, f.seeds)
	return seeds
}

// EstimatedFillRatio returns the exact proportion of bits currently set,
// by popcounting the words.
func (f *Filter) EstimatedFillRatio() float64 {
	var set uint64
	for i := range f.words {
		set += uint64(bits.OnesCount64(f.words[i].Load()))
	}
	return float64(set) / float64(f.bitCount)
}

// EstimatedFalsePositiveRate estimates the current false positive rate from
// the fill ratio: a query for an absent item passes when all k of its bits
// happen to be set, so the rate is approximately fill^k.
func (f *Filter) EstimatedFalsePositiveRate() float64 {
	fill := f.EstimatedFillRatio()
	rate := 1.0
	for range f.seeds {
		rate *= fill
	}
	return rate
}

// String returns a compact diagnostic rendering of the filter.
func (f *Filter) String() string {
	return fmt.Sprintf("Bloom{bits: %d, k: %d, set: %d}",
		f.bitCount, len(f.seeds), f.SetBits())
}
