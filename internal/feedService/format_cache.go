package feed

import (
	"fmt"
	"sync"
	"time"
)

const defaultFormatCacheSize = 256

// FormatCache is a read-through cache of remaining-time labels keyed by the
// raw end-time string. It is constructed per feed session, not hidden in a
// package singleton, so its lifetime is owned by the session that uses it.
type FormatCache struct {
	mu      sync.Mutex
	cap     int
	entries map[string]cachedLabel
}

type cachedLabel struct {
	label   string
	expires time.Time
}

// NewFormatCache creates a cache holding at most capacity entries
func NewFormatCache(capacity int) *FormatCache {
	if capacity <= 0 {
		capacity = defaultFormatCacheSize
	}
	return &FormatCache{
		cap:     capacity,
		entries: make(map[string]cachedLabel),
	}
}

// lookup returns the cached label if not yet expired, else recomputes and
// refreshes the entry with the TTL the compute func chooses.
func (c *FormatCache) lookup(key string, now time.Time, compute func() (string, time.Duration)) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok && now.Before(e.expires) {
		return e.label
	}

	label, ttl := compute()
	if len(c.entries) >= c.cap {
		c.sweepLocked(now)
	}
	c.entries[key] = cachedLabel{label: label, expires: now.Add(ttl)}
	return label
}

// sweepLocked drops expired entries, then arbitrary ones until below capacity
func (c *FormatCache) sweepLocked(now time.Time) {
	for key, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, key)
		}
	}
	for key := range c.entries {
		if len(c.entries) < c.cap {
			break
		}
		delete(c.entries, key)
	}
}

// Len returns the number of cached labels
func (c *FormatCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// FormatTimeRemaining renders the countdown label for an auction end time,
// using the coarsest non-zero unit. Each granularity caches for as long as
// its label can stay accurate; ended auctions are cached longest.
func FormatTimeRemaining(cache *FormatCache, endTime, now time.Time) string {
	if endTime.IsZero() {
		// terminal display state for unparseable end times, never retried soon
		return cache.lookup("invalid", now, func() (string, time.Duration) {
			return "Invalid time", 5 * time.Minute
		})
	}

	key := endTime.UTC().Format(time.RFC3339Nano)
	return cache.lookup(key, now, func() (string, time.Duration) {
		diff := endTime.Sub(now)
		if diff <= 0 {
			return "Ended", 5 * time.Minute
		}

		days := int(diff.Hours()) / 24
		hours := int(diff.Hours()) % 24
		minutes := int(diff.Minutes()) % 60

		switch {
		case days > 0:
			return fmt.Sprintf("%dd %dh", days, hours), 5 * time.Minute
		case hours > 0:
			return fmt.Sprintf("%dh %dm", hours, minutes), time.Minute
		case minutes > 0:
			return fmt.Sprintf("%dm", minutes), 30 * time.Second
		default:
			return "Soon", 10 * time.Second
		}
	})
}
