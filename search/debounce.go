package search

import (
	"sync"
	"time"

	"github.com/fwojciec/folio"
)

// DefaultDebounce is the settle interval before a typed query is evaluated.
const DefaultDebounce = 200 * time.Millisecond

// Debouncer defers a call until no new call has been scheduled for the
// wait interval. Scheduling stops the previous timer, and a superseded
// callback that already started firing is recognized by its sequence number
// and dropped.
type Debouncer struct {
	clock folio.Clock
	wait  time.Duration

	mu    sync.Mutex
	timer folio.Timer
	seq   uint64
}

// NewDebouncer returns a Debouncer using clock.
func NewDebouncer(clock folio.Clock, wait time.Duration) *Debouncer {
	return &Debouncer{clock: clock, wait: wait}
}

// Schedule arranges for f to run after the wait interval, superseding any
// previously scheduled call.
func (d *Debouncer) Schedule(f func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = d.clock.AfterFunc(d.wait, func() {
		d.mu.Lock()
		current := seq == d.seq
		if current {
			d.timer = nil
		}
		d.mu.Unlock()

		if current {
			f()
		}
	})
}

// Cancel drops the scheduled call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
