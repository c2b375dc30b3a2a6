package bloom_test

import (
	"fmt"
	"sync"

	"github.com/mbver/bloom"
)

// This example demonstrates basic bloom filter usage for membership testing.
func Example() {
	// Create a filter for 10,000 items with 1% false positive rate
	f := bloom.New(10_000, 0.01)

	// Add some items
	f.Add([]byte("apple"))
	f.Add([]byte("banana"))
	f.Add([]byte("cherry"))

	// Test membership
	fmt.Println("apple:", f.Test([]byte("apple")))   // true (added)
	fmt.Println("banana:", f.Test([]byte("banana"))) // true (added)
	fmt.Println("grape:", f.Test([]byte("grape")))   // false (not added)

	// Output:
	// apple: true
	// banana: true
	// grape: false
}

// This example shows how to use string keys without allocation overhead.
func Example_stringKeys() {
	f := bloom.New(10_000, 0.01)

	// AddString and TestString avoid allocating when you have string keys
	f.AddString("user:12345")
	f.AddString("user:67890")

	fmt.Println("user:12345 exists:", f.TestString("user:12345"))
	fmt.Println("user:99999 exists:", f.TestString("user:99999"))

	// Output:
	// user:12345 exists: true
	// user:99999 exists: false
}

// This example demonstrates concurrent use: the filter is safe for Add and
// Test from any number of goroutines without external locking.
func Example_concurrent() {
	f := bloom.New(100_000, 0.01)

	var wg sync.WaitGroup

	// Spawn multiple writers
	for i := range 4 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := range 1000 {
				f.AddString(fmt.Sprintf("worker-%d-item-%d", id, j))
			}
		}(i)
	}

	// Spawn multiple readers (can run concurrently with writers)
	for i := range 4 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := range 1000 {
				_ = f.TestString(fmt.Sprintf("worker-%d-item-%d", id, j))
			}
		}(i)
	}

	wg.Wait()
	fmt.Println("worker-0-item-0 present:", f.TestString("worker-0-item-0"))

	// Output:
	// worker-0-item-0 present: true
}

// This example shows the filter's sizing for a given target.
func Example_statistics() {
	f := bloom.New(10_000, 0.01)

	fmt.Printf("Capacity: %d bits\n", f.Cap())
	fmt.Printf("Hash functions (k): %d\n", f.K())

	// Output:
	// Capacity: 95872 bits
	// Hash functions (k): 7
}

func ExampleNew() {
	// Create a filter sized for 1 million items with 1% false positive rate.
	// The filter automatically calculates optimal size and hash functions.
	f := bloom.New(1_000_000, 0.01)

	f.Add([]byte("hello"))
	fmt.Println(f.Test([]byte("hello")))

	// Output:
	// true
}

func ExampleFilter_Reset() {
	f := bloom.New(1_000, 0.01)

	f.AddString("ephemeral")
	f.Reset() // requires that no Add or Test is in flight

	fmt.Println("present after reset:", f.TestString("ephemeral"))
	fmt.Println("set bits after reset:", f.SetBits())

	// Output:
	// present after reset: false
	// set bits after reset: 0
}

func ExampleOptimalParams() {
	// Calculate optimal parameters for your use case
	bitCount, k := bloom.OptimalParams(1_000_000, 0.01)

	fmt.Printf("For 1M items at 1%% FP rate:\n")
	fmt.Printf("  Bits: %d\n", bitCount)
	fmt.Printf("  Hash functions (k): %d\n", k)

	// Output:
	// For 1M items at 1% FP rate:
	//   Bits: 9585088
	//   Hash functions (k): 7
}

func ExampleEstimateFalsePositiveRate() {
	// Estimate the false positive rate for given parameters
	rate := bloom.EstimateFalsePositiveRate(64_000, 7, 5_000)
	fmt.Printf("Estimated FP rate: %.1f%%\n", rate*100)

	// Output:
	// Estimated FP rate: 0.2%
}
