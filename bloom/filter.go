// Package bloom tracks the legacy pages already visited during an import
// using github.com/bits-and-blooms/bloom/v3.
package bloom

import (
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter remembers page URLs. URLs that differ only in their fragment or a
// trailing slash are treated as the same page.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected pages
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a page URL.
func (f *Filter) Add(url string) {
	f.f.AddString(PageKey(url))
}

// TestAndAdd records url and reports whether it was possibly seen before.
func (f *Filter) TestAndAdd(url string) bool {
	return f.f.TestAndAddString(PageKey(url))
}

// Test returns true if the page might have been recorded.
// False positives are possible; false negatives are not.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(PageKey(url))
}

// EstimatedCount returns the approximate number of recorded pages.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

// PageKey normalizes url to the key under which its page is recorded.
func PageKey(url string) string {
	if i := strings.IndexByte(url, '#'); i >= 0 {
		url = url[:i]
	}
	if trimmed := strings.TrimRight(url, "/"); !strings.HasSuffix(trimmed, ":") {
		url = trimmed
	}
	return url
}
