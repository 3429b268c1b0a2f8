package feed

import (
	"sync"
	"sync/atomic"
	"time"

	model "listing-feed/internal/models"
)

// tickFloor bounds redraw cost: the scheduler never ticks faster than this
const tickFloor = 5 * time.Second

// TimerEntry is the derived countdown record for one auction listing
type TimerEntry struct {
	ListingID      string
	EndTime        time.Time
	UpdateInterval time.Duration
}

// updateIntervalFor picks the refresh cadence from the remaining time:
// imminent auctions refresh often, distant ones rarely.
func updateIntervalFor(remaining time.Duration) time.Duration {
	switch {
	case remaining < time.Minute:
		return 5 * time.Second
	case remaining < 5*time.Minute:
		return 15 * time.Second
	case remaining < time.Hour:
		return 60 * time.Second
	default:
		return 300 * time.Second
	}
}

// TimerEntries derives the countdown candidate set from a filtered listing
// collection: active auctions with a future end time.
func TimerEntries(listings []model.Listing, now time.Time) []TimerEntry {
	var entries []TimerEntry
	for _, l := range listings {
		if l.Auction == nil || !l.IsActive(now) {
			continue
		}
		entries = append(entries, TimerEntry{
			ListingID:      l.ID,
			EndTime:        l.Auction.EndTime,
			UpdateInterval: updateIntervalFor(l.Auction.EndTime.Sub(now)),
		})
	}
	return entries
}

// CountdownEngine runs the single periodic countdown timer. Exactly one ticker
// exists at a time; it is replaced wholesale when the minimum interval across
// the candidate set changes, and removed when no candidates remain. Ticks
// carry no payload: subscribers treat them purely as redraw triggers.
type CountdownEngine struct {
	mu       sync.Mutex
	floor    time.Duration
	interval time.Duration
	stop     chan struct{}
	alive    bool
	subs     map[int]chan struct{}
	nextSub  int
	ticks    atomic.Uint64
}

// NewCountdownEngine creates a stopped engine with no candidates
func NewCountdownEngine() *CountdownEngine {
	return &CountdownEngine{
		floor: tickFloor,
		alive: true,
		subs:  make(map[int]chan struct{}),
	}
}

// SetCandidates replaces the candidate set. The scheduler adopts the minimum
// update interval across candidates, floored; with no candidates no periodic
// timer runs at all.
func (e *CountdownEngine) SetCandidates(entries []TimerEntry) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.alive {
		return
	}

	if len(entries) == 0 {
		e.stopTickerLocked()
		e.interval = 0
		return
	}

	min := entries[0].UpdateInterval
	for _, entry := range entries[1:] {
		if entry.UpdateInterval < min {
			min = entry.UpdateInterval
		}
	}
	if min < e.floor {
		min = e.floor
	}

	if e.stop != nil && min == e.interval {
		return
	}

	e.stopTickerLocked()
	e.interval = min
	stop := make(chan struct{})
	e.stop = stop
	go e.run(min, stop)
}

func (e *CountdownEngine) run(interval time.Duration, stop chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			e.tick()
		}
	}
}

// tick checks liveness before touching shared state: a tick that fires during
// teardown must not mutate anything the consumer already abandoned.
func (e *CountdownEngine) tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.alive {
		return
	}

	e.ticks.Add(1)
	for _, ch := range e.subs {
		select {
		case ch <- struct{}{}:
		default: // slow subscriber, drop rather than block the scheduler
		}
	}
}

// Ticks returns the monotonically increasing tick counter
func (e *CountdownEngine) Ticks() uint64 {
	return e.ticks.Load()
}

// Interval returns the active refresh cadence, zero when no timer runs
func (e *CountdownEngine) Interval() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.interval
}

// Subscribe registers a tick observer. The returned cancel func must be
// called on teardown; the channel is never closed by the engine.
func (e *CountdownEngine) Subscribe() (<-chan struct{}, func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextSub
	e.nextSub++
	ch := make(chan struct{}, 1)
	e.subs[id] = ch

	cancel := func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subs, id)
	}
	return ch, cancel
}

// Stop cancels the timer permanently. Safe to call more than once.
func (e *CountdownEngine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.alive {
		return
	}
	e.alive = false
	e.interval = 0
	e.stopTickerLocked()
}

func (e *CountdownEngine) stopTickerLocked() {
	if e.stop != nil {
		close(e.stop)
		e.stop = nil
	}
}
