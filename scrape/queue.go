package scrape

import (
	"github.com/fwojciec/webseed"
	"github.com/fwojciec/webseed/bloom"
)

// Queue sizing for the Bloom filter seen-set.
const (
	// queueExpectedSources is the expected batch size for Bloom filter sizing.
	queueExpectedSources = 10000
	// queueFalsePositiveRate is the acceptable false positive rate for deduplication.
	queueFalsePositiveRate = 0.01
)

// Queue admits batch sources in input order, skipping later duplicates
// and sources matching the ignore filter. Duplicate detection uses the
// canonical cache key, so trailing-slash and fragment variants of one
// URL count as the same source.
type Queue struct {
	seen   *bloom.Filter
	filter *webseed.SourceFilter
}

// NewQueue creates a Queue. The filter may be nil to admit everything
// not already seen.
func NewQueue(filter *webseed.SourceFilter) *Queue {
	return &Queue{
		seen:   bloom.NewFilter(queueExpectedSources, queueFalsePositiveRate),
		filter: filter,
	}
}

// Admit reports whether the source should be processed. When it should
// not, the returned reason is "duplicate" or "ignored".
func (q *Queue) Admit(source string) (bool, string) {
	if q.filter.Excluded(source) {
		return false, "ignored"
	}
	if q.seen.TestAndAdd(webseed.CacheKey(source)) {
		return false, "duplicate"
	}
	return true, ""
}
