// Package bloom provides item deduplication using Bloom filters.
package bloom

import (
	"fmt"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/autoextract"
)

// ItemFilter tracks extracted items already seen across runs.
// False positives are possible; false negatives are not.
type ItemFilter struct {
	f *bloom.BloomFilter
}

// NewItemFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewItemFilter(n uint, fpRate float64) *ItemFilter {
	return &ItemFilter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// fingerprint collapses an item to a stable key. Href and title are
// hashed separately so shifting a boundary between them cannot collide.
func fingerprint(item autoextract.Item) string {
	return fmt.Sprintf("%x:%x", xxhash.Sum64String(item.Href), xxhash.Sum64String(item.Title))
}

// Add records an item in the filter.
func (f *ItemFilter) Add(item autoextract.Item) {
	f.f.AddString(fingerprint(item))
}

// Seen returns true if the item might have been added before.
func (f *ItemFilter) Seen(item autoextract.Item) bool {
	return f.f.TestString(fingerprint(item))
}

// AddIfNew records the item and reports whether it was new.
func (f *ItemFilter) AddIfNew(item autoextract.Item) bool {
	return !f.f.TestAndAddString(fingerprint(item))
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *ItemFilter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
