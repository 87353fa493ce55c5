package watcher

import (
	"slices"
	"sync"
	"time"
)

// Debouncer coalesces bursts of changed paths into a single callback.
// Each Add restarts the window; the callback receives the distinct paths in sorted order.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[string]struct{}
	timer    *time.Timer
	window   time.Duration
	callback func(paths []string)
	stopped  bool
}

// NewDebouncer creates a new debouncer with the given window and callback.
func NewDebouncer(window time.Duration, callback func(paths []string)) *Debouncer {
	return &Debouncer{
		pending:  make(map[string]struct{}),
		window:   window,
		callback: callback,
	}
}

// Add records a changed path and restarts the window.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.pending[path] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// fire is called when the window expires. The callback runs on its own goroutine.
func (d *Debouncer) fire() {
	paths := d.take()
	if len(paths) > 0 && d.callback != nil {
		go d.callback(paths)
	}
}

// Flush delivers pending paths immediately and waits for the callback to return.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil && !d.timer.Stop() {
		// Already fired; let that delivery stand.
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()

	paths := d.take()
	if len(paths) > 0 && d.callback != nil {
		d.callback(paths)
	}
}

// Stop discards pending paths and ignores later additions.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	clear(d.pending)
}

func (d *Debouncer) take() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.timer = nil
	if len(d.pending) == 0 {
		return nil
	}

	paths := make([]string, 0, len(d.pending))
	for p := range d.pending {
		paths = append(paths, p)
	}
	clear(d.pending)
	slices.Sort(paths)

	return paths
}
