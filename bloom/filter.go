// Package bloom tracks already-seen sources during batch runs.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter is a probabilistic seen-set over source identifiers
// (canonical URLs, transcript IDs). Test may report a source as seen
// when it was not, at the configured false positive rate; it never
// misses a source that was added. Not safe for concurrent use.
type Filter struct {
	set *bloom.BloomFilter
}

// NewFilter sizes a filter for n expected sources at the given false
// positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{set: bloom.NewWithEstimates(n, fpRate)}
}

// Add records a source as seen.
func (f *Filter) Add(source string) {
	f.set.AddString(source)
}

// Test reports whether the source may have been seen.
func (f *Filter) Test(source string) bool {
	return f.set.TestString(source)
}

// TestAndAdd records the source and reports whether it had been seen
// before this call.
func (f *Filter) TestAndAdd(source string) bool {
	return f.set.TestAndAddString(source)
}

// EstimatedCount approximates how many distinct sources were added.
func (f *Filter) EstimatedCount() uint {
	return uint(f.set.ApproximatedSize())
}
