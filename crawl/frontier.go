package crawl

import (
	"sync"

	"github.com/fwojciec/folio/bloom"
)

// Frontier is the queue of legacy pages still to visit during link
// discovery. Pages are visited breadth-first, in discovery order, and each
// page is queued at most once. It is safe for concurrent use.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue []string
}

// NewFrontier creates a new Frontier sized for n expected pages with the
// given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{seen: bloom.NewFilter(n, fpRate)}
}

// Push queues url. Returns false if the page was already queued or visited.
// URLs differing only by fragment or trailing slash are the same page.
func (f *Frontier) Push(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.seen.TestAndAdd(url) {
		return false
	}
	f.queue = append(f.queue, bloom.PageKey(url))
	return true
}

// Pop returns the oldest queued page.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue[0] = ""
	f.queue = f.queue[1:]
	return url, true
}

// Len returns the number of queued pages.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen returns true if the page has been queued.
func (f *Frontier) Seen(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(url)
}
