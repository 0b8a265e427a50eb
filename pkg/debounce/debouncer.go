package debounce

import (
	"sync"
	"time"
)

// Debouncer coalesces repeated work scheduled under the same key into a
// single execution. Scheduling a key that already has a pending timer
// cancels and replaces it, so only the last function within the window runs.
//
// This replaces ad-hoc per-field timer bookkeeping: every dataset the
// persistence scheduler mirrors shares one Debouncer keyed by dataset name.
type Debouncer struct {
	mu      sync.Mutex
	pending map[string]*pendingCall
}

type pendingCall struct {
	timer *time.Timer
	fn    func()
}

func New() *Debouncer {
	return &Debouncer{
		pending: make(map[string]*pendingCall),
	}
}

// Schedule runs fn after delay, replacing any pending call for the same key.
func (d *Debouncer) Schedule(key string, delay time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if call, ok := d.pending[key]; ok {
		call.timer.Stop()
	}

	call := &pendingCall{fn: fn}
	call.timer = time.AfterFunc(delay, func() {
		d.mu.Lock()
		if d.pending[key] == call {
			delete(d.pending, key)
		}
		d.mu.Unlock()
		fn()
	})
	d.pending[key] = call
}

// Cancel drops any pending call for key without running it.
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if call, ok := d.pending[key]; ok {
		call.timer.Stop()
		delete(d.pending, key)
	}
}

// Flush runs the pending call for key immediately, if any.
func (d *Debouncer) Flush(key string) {
	d.mu.Lock()
	call, ok := d.pending[key]
	if ok {
		call.timer.Stop()
		delete(d.pending, key)
	}
	d.mu.Unlock()

	if ok {
		call.fn()
	}
}

// FlushAll synchronously runs every pending call. Must be invoked on
// teardown so the last batch of debounced writes is not lost.
func (d *Debouncer) FlushAll() {
	d.mu.Lock()
	calls := make([]*pendingCall, 0, len(d.pending))
	for key, call := range d.pending {
		call.timer.Stop()
		calls = append(calls, call)
		delete(d.pending, key)
	}
	d.mu.Unlock()

	for _, call := range calls {
		call.fn()
	}
}

// Pending reports how many keys currently have a scheduled call.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}
