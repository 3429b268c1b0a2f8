package feed

import (
	"sync"
	"time"
)

const defaultDebounceDelay = 300 * time.Millisecond

// Debouncer decouples a raw search term from the committed one: every update
// cancels the pending commit and reschedules it, so a burst of keystrokes
// commits exactly once with the final term.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	stopped bool
	commit  func(term string)
}

// NewDebouncer creates a debouncer that calls commit once input settles
func NewDebouncer(delay time.Duration, commit func(term string)) *Debouncer {
	if delay <= 0 {
		delay = defaultDebounceDelay
	}
	return &Debouncer{delay: delay, commit: commit}
}

// Update replaces the pending term and restarts the settle delay
func (d *Debouncer) Update(term string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		stopped := d.stopped
		d.mu.Unlock()
		if stopped {
			return
		}
		d.commit(term)
	})
}

// Stop cancels any pending commit. The debouncer is dead afterwards; a commit
// must never fire once the owning session has gone away.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// ActivationGuard suppresses rapid repeated activations: at most one effective
// trigger per window. Double-clicks and overlapping pointer events collapse
// into a single dispatch.
type ActivationGuard struct {
	mu     sync.Mutex
	window time.Duration
	last   time.Time
	now    func() time.Time
}

// NewActivationGuard creates a guard with the given minimum trigger spacing
func NewActivationGuard(window time.Duration) *ActivationGuard {
	if window <= 0 {
		window = defaultDebounceDelay
	}
	return &ActivationGuard{window: window, now: time.Now}
}

// Allow reports whether this activation should dispatch
func (g *ActivationGuard) Allow() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if !g.last.IsZero() && now.Sub(g.last) < g.window {
		return false
	}
	g.last = now
	return true
}
