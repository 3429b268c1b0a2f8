package repository

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"listing-feed/internal/feederrors"
	model "listing-feed/internal/models"
)

// MarketplaceDB defines the read surface the feed engine consumes. Listings,
// users, profiles, orders and subscriptions are owned by the backend; this
// interface is the boundary the engine sees.
type MarketplaceDB interface {
	GetListings() ([]model.Listing, error)
	GetListing(listingID string) (model.Listing, error)
	GetPopularTags(limit int) ([]model.TagCount, error)
	GetUser(username string) (model.User, error)
	GetSellerProfile(username string) (model.SellerProfile, error)
	GetOrdersBySeller(seller string) ([]model.Order, error)
	IsSubscribed(buyer, seller string) (bool, error)
	Revision() uint64
}

// MemoryRepo is a concurrency-safe in-memory implementation of MarketplaceDB
type MemoryRepo struct {
	mu            sync.RWMutex
	listings      map[string]model.Listing
	listingOrder  []string // insertion order, so GetListings is deterministic
	users         map[string]model.User
	profiles      map[string]model.SellerProfile
	orders        []model.Order
	subscriptions map[string][]string // key: buyer -> value: sellers subscribed to
	revision      uint64
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		listings:      make(map[string]model.Listing),
		users:         make(map[string]model.User),
		profiles:      make(map[string]model.SellerProfile),
		subscriptions: make(map[string][]string),
	}
}

// GetListings returns all listings in insertion order
func (r *MemoryRepo) GetListings() ([]model.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listings := make([]model.Listing, 0, len(r.listingOrder))
	for _, id := range r.listingOrder {
		if l, ok := r.listings[id]; ok {
			listings = append(listings, l)
		}
	}
	return listings, nil
}

// GetListing returns a single listing by ID
func (r *MemoryRepo) GetListing(listingID string) (model.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.listings[listingID]
	if !ok {
		return model.Listing{}, fmt.Errorf("get listing %s: %w", listingID, feederrors.ErrListingNotFound)
	}
	return l, nil
}

// GetPopularTags counts tag usage across active listings and returns the top
// `limit` tags by descending count, ties broken by tag name.
func (r *MemoryRepo) GetPopularTags(limit int) ([]model.TagCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := time.Now().UTC()
	counts := make(map[string]int)
	for _, l := range r.listings {
		if !l.IsActive(now) {
			continue
		}
		for _, tag := range l.Tags {
			counts[tag]++
		}
	}

	tags := make([]model.TagCount, 0, len(counts))
	for tag, count := range counts {
		tags = append(tags, model.TagCount{Tag: tag, Count: count})
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Tag < tags[j].Tag
	})

	if limit > 0 && limit < len(tags) {
		tags = tags[:limit]
	}
	return tags, nil
}

// GetUser returns an account by username
func (r *MemoryRepo) GetUser(username string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return model.User{}, fmt.Errorf("get user %s: %w", username, feederrors.ErrUserNotFound)
	}
	return u, nil
}

// GetSellerProfile returns the public profile for a seller
func (r *MemoryRepo) GetSellerProfile(username string) (model.SellerProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[username]
	if !ok {
		return model.SellerProfile{}, fmt.Errorf("get profile %s: %w", username, feederrors.ErrProfileNotFound)
	}
	return p, nil
}

// GetOrdersBySeller returns all orders where the given user is the seller
func (r *MemoryRepo) GetOrdersBySeller(seller string) ([]model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []model.Order
	for _, o := range r.orders {
		if o.Seller == seller {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

// IsSubscribed reports whether buyer has an active subscription to seller
func (r *MemoryRepo) IsSubscribed(buyer, seller string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.subscriptions[buyer] {
		if s == seller {
			return true, nil
		}
	}
	return false, nil
}

// Revision returns a counter bumped on every write, used by the feed engine to
// invalidate its memoized filter results.
func (r *MemoryRepo) Revision() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.revision
}

// AddListing inserts or replaces a listing
func (r *MemoryRepo) AddListing(l model.Listing) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.listings[l.ID]; !exists {
		r.listingOrder = append(r.listingOrder, l.ID)
	}
	r.listings[l.ID] = l
	r.revision++
}

// RemoveListing deletes a listing. Unknown IDs are a no-op.
func (r *MemoryRepo) RemoveListing(listingID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.listings[listingID]; !exists {
		return
	}
	delete(r.listings, listingID)
	for i, id := range r.listingOrder {
		if id == listingID {
			r.listingOrder = append(r.listingOrder[:i], r.listingOrder[i+1:]...)
			break
		}
	}
	r.revision++
}

// AddUser inserts or replaces an account
func (r *MemoryRepo) AddUser(u model.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.Username] = u
	r.revision++
}

// AddSellerProfile inserts or replaces a seller profile
func (r *MemoryRepo) AddSellerProfile(p model.SellerProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.Username] = p
	r.revision++
}

// AddOrder appends an order to the order history
func (r *MemoryRepo) AddOrder(o model.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, o)
	r.revision++
}

// AddSubscription records that buyer is subscribed to seller (idempotent)
func (r *MemoryRepo) AddSubscription(buyer, seller string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.subscriptions[buyer] {
		if s == seller {
			return
		}
	}
	r.subscriptions[buyer] = append(r.subscriptions[buyer], seller)
	r.revision++
}
