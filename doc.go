// Package bloom provides a thread-safe bloom filter built on lock-free
// atomic bit operations.
//
// A bloom filter is a space-efficient probabilistic data structure that tests
// whether an element is a member of a set. False positive matches are
// possible, but false negatives are not – if the filter says an element is
// not present, it definitely is not. If it says an element might be present,
// it could be a false positive.
//
// # Architecture
//
// The filter is a flat array of 64-bit words, each an independent
// sync/atomic.Uint64. Inserts set bits with atomic OR
// ([sync/atomic.Uint64.Or], Go 1.23+) and queries read them with atomic
// loads, so any number of goroutines can Add and Test concurrently without
// external locking. No operation blocks, and nothing is ever reallocated
// after construction.
//
// The k hash functions are one algorithm, k keys: a single xxh3 hash keyed
// with k independent random seeds generated at construction. Each seeded
// digest maps to a bit position via modulo over the bit count. Seeding is
// what makes the k invocations behave independently; the seeds are drawn
// from a uniform source and never derived from each other.
//
// # Choosing Parameters
//
// Use [New] with your expected number of items and desired false positive
// rate:
//
//	// Filter for 1 million items with 1% false positive rate
//	f := bloom.New(1_000_000, 0.01)
//
// [New] derives the optimal bit count and number of hash functions, rounding
// the bit array up to whole 64-bit words. Inputs are clamped rather than
// rejected, so construction never fails. Very small filters (up to around a
// hundred items) are dominated by the word-rounding floor and achieve a lower
// false positive rate than requested. For explicit control over the
// parameters, use [NewWithParams].
//
// # Concurrency
//
// Add and Test are safe to call concurrently, on the same or different
// items. Once an Add has returned, every subsequent Test of that item
// returns true – the filter has no false negatives. A Test racing an
// in-flight Add of the same item may see only some of its k bits and return
// false; visibility of a multi-bit insert is not atomic.
//
// [Filter.Reset] is the exception: it clears the words one store at a time
// and must not overlap any other operation. Callers are responsible for
// quiescing the filter around a reset.
//
// [Filter.TestAndAdd] is not a single atomic operation – there is a race
// window between the test and the add. Use it for best-effort deduplication,
// not strict mutual exclusion.
//
// # Memory Usage
//
// For a filter sized for n items with false positive rate p:
//
//	memory_bits ≈ -n * ln(p) / (ln(2))²
//
// Example: 1 million items at 1% FP rate ≈ 1.2 MB
//
// # Serialization
//
// [Filter.MarshalBinary] and [UnmarshalBinary] snapshot a filter to a
// versioned binary format, including its seeds (which are random per
// construction and cannot be re-derived). Snapshotting a filter with writers
// in flight yields a usable but not point-in-time image; quiesce first if
// that matters.
//
// # References
//
//   - Less Hashing, Same Performance: https://www.eecs.harvard.edu/~michaelm/postscripts/rsa2008.pdf
//   - Bloom filter analysis: https://en.wikipedia.org/wiki/Bloom_filter
package bloom
