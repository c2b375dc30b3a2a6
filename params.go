package bloom

import "math"

const (
	// WordBits is the number of bits per atomic word.
	WordBits = 64
	// ln2 is the natural logarithm of 2.
	ln2 = 0.6931471805599453
	// ln2Squared is ln(2)^2.
	ln2Squared = 0.4804530139182014
)

// OptimalParams calculates the optimal bloom filter parameters for the
// expected number of items and desired false positive rate. It returns the
// total bit count, rounded up to a multiple of 64 so the bit array can be
// represented as whole atomic words, and the number of hash functions (k).
//
// All inputs are clamped into valid ranges rather than rejected: zero items
// becomes one item, and rates outside (0, 1) are pulled back inside. A filter
// is always constructible.
//
// k is derived from the raw bit count before word rounding. Small filters are
// dominated by the 64-bit rounding floor and come out with a lower empirical
// false positive rate than requested; deriving k from the rounded count would
// additionally inflate k for those filters with no benefit.
func OptimalParams(expectedItems uint64, fpRate float64) (bitCount uint64, k uint32) {
	if expectedItems == 0 {
		expectedItems = 1
	}
	if fpRate <= 0 {
		fpRate = 0.0001 // default to 0.01%
	}
	if fpRate >= 1 {
		fpRate = 0.99
	}

	// Optimal raw bit count: -n * ln(p) / ln(2)^2
	m := math.Ceil(-float64(expectedItems) * math.Log(fpRate) / ln2Squared)
	if m < 1 {
		m = 1
	}

	// Round up to whole 64-bit words
	words := (uint64(m) + WordBits - 1) / WordBits
	bitCount = words * WordBits

	// Optimal k: (m/n) * ln(2)
	k = uint32(math.Round(ln2 * m / float64(expectedItems)))
	k = max(k, 1)

	return bitCount, k
}

// EstimateFalsePositiveRate estimates the analytic false positive rate for a
// filter of bitCount bits and k hash functions after itemsAdded insertions.
// Formula: (1 - e^(-kn/m))^k
func EstimateFalsePositiveRate(bitCount uint64, k uint32, itemsAdded uint64) float64 {
	m := float64(bitCount)
	n := float64(itemsAdded)
	kf := float64(k)

	if m == 0 || n == 0 {
		return 0
	}

	return math.Pow(1-math.Exp(-kf*n/m), kf)
}
