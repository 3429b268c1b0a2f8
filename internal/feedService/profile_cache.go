package feed

import (
	"container/list"
	"sync"

	model "listing-feed/internal/models"
)

// ProfileCache keeps the N most-recently-seen seller profiles so browsing
// many pages does not grow memory without bound.
type ProfileCache struct {
	mu    sync.Mutex
	cap   int
	ll    *list.List
	index map[string]*list.Element
}

// NewProfileCache creates a cache bounded to capacity profiles
func NewProfileCache(capacity int) *ProfileCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &ProfileCache{
		cap:   capacity,
		ll:    list.New(),
		index: make(map[string]*list.Element),
	}
}

// Get returns the cached profile and marks it most recently seen
func (c *ProfileCache) Get(username string) (model.SellerProfile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[username]
	if !ok {
		return model.SellerProfile{}, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(model.SellerProfile), true
}

// Put inserts or refreshes a profile, evicting the least recently seen one
// when the cache is full.
func (c *ProfileCache) Put(p model.SellerProfile) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.index[p.Username]; ok {
		el.Value = p
		c.ll.MoveToFront(el)
		return
	}

	c.index[p.Username] = c.ll.PushFront(p)
	if c.ll.Len() > c.cap {
		oldest := c.ll.Back()
		if oldest != nil {
			c.ll.Remove(oldest)
			delete(c.index, oldest.Value.(model.SellerProfile).Username)
		}
	}
}

// Len returns the number of cached profiles
func (c *ProfileCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
