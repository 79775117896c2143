// file: viewstate/debounce.go
package viewstate

import (
	"context"
	"sync"
	"time"
)

// Debouncer runs at most one pending call per key: scheduling a key again
// before its delay elapses replaces the pending call.
type Debouncer struct {
	mu     sync.Mutex
	delay  time.Duration
	timers map[string]*time.Timer
	ctx    context.Context
	cancel context.CancelFunc
}

// NewDebouncer returns a debouncer whose calls receive a context derived from
// parent that is cancelled by Stop.
func NewDebouncer(parent context.Context, delay time.Duration) *Debouncer {
	ctx, cancel := context.WithCancel(parent)
	return &Debouncer{
		delay:  delay,
		timers: make(map[string]*time.Timer),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Schedule arranges for fn to run after the delay unless key is scheduled
// again first.
func (d *Debouncer) Schedule(key string, fn func(ctx context.Context)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ctx.Err() != nil {
		return
	}
	if t, ok := d.timers[key]; ok {
		t.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.timers[key] != timer {
			d.mu.Unlock()
			return
		}
		delete(d.timers, key)
		d.mu.Unlock()
		fn(d.ctx)
	})
	d.timers[key] = timer
}

// Cancel drops key's pending call, if any.
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.timers[key]; ok {
		t.Stop()
		delete(d.timers, key)
	}
}

// Pending reports how many calls are waiting.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.timers)
}

// Stop drops every pending call and cancels calls in flight.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	for key, t := range d.timers {
		t.Stop()
		delete(d.timers, key)
	}
	d.mu.Unlock()
	d.cancel()
}
