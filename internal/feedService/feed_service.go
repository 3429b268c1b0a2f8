package feed

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"listing-feed/internal/feederrors"
	model "listing-feed/internal/models"
	"listing-feed/internal/repository"
	"listing-feed/utils"
)

const (
	defaultPageSize     = 40
	defaultMarkupFactor = 1.1
	profileCacheSize    = 100
	failureReasonLimit  = 120
)

// Options tunes the feed engine. Zero values fall back to defaults.
type Options struct {
	PageSize     int
	MarkupFactor float64
}

// FeedService turns the raw listing collection plus a filter state into the
// browse page a viewer sees: filtered, sorted, paginated, enriched with seller
// data and premium locking, with live auction countdowns on the side.
type FeedService struct {
	repo      repository.MarketplaceDB
	countdown *CountdownEngine
	profiles  *ProfileCache
	formats   *FormatCache
	pageSize  int
	markup    float64
	now       func() time.Time

	mu      sync.Mutex
	memoKey string
	memoRev uint64
	memo    []model.Listing
}

// NewFeedService creates a new FeedService instance
func NewFeedService(repo repository.MarketplaceDB, opts Options) *FeedService {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	markup := opts.MarkupFactor
	if markup <= 0 {
		markup = defaultMarkupFactor
	}

	return &FeedService{
		repo:      repo,
		countdown: NewCountdownEngine(),
		profiles:  NewProfileCache(profileCacheSize),
		formats:   NewFormatCache(0),
		pageSize:  pageSize,
		markup:    markup,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Countdown exposes the engine's countdown scheduler for tick subscribers
func (s *FeedService) CountdownEngine() *CountdownEngine {
	return s.countdown
}

// PageSize returns the fixed page size of the feed
func (s *FeedService) PageSize() int {
	return s.pageSize
}

// Close tears down the background countdown scheduler
func (s *FeedService) Close() {
	s.countdown.Stop()
}

// BrowsePage is one page of filtered, sorted, enriched results
type BrowsePage struct {
	Listings   []ListingView        `json:"listings"`
	Counts     model.CategoryCounts `json:"counts"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	Total      int                  `json:"total"`
	TotalPages int                  `json:"total_pages"`
}

// ListingView is a single listing as the viewer sees it. Locked premium
// listings keep their slot in the feed but withhold content.
type ListingView struct {
	ID               string               `json:"id"`
	Title            string               `json:"title"`
	Description      string               `json:"description,omitempty"`
	Price            float64              `json:"price"`
	MarkedUpPrice    float64              `json:"marked_up_price"`
	PriceLabel       string               `json:"price_label"`
	Tags             []string             `json:"tags,omitempty"`
	Seller           string               `json:"seller"`
	IsPremium        bool                 `json:"is_premium"`
	HoursWorn        *float64             `json:"hours_worn,omitempty"`
	Auction          *model.Auction       `json:"auction,omitempty"`
	Date             time.Time            `json:"date"`
	Locked           bool                 `json:"locked"`
	Blurred          bool                 `json:"blurred"`
	DetailPath       string               `json:"detail_path"`
	CanPurchase      bool                 `json:"can_purchase"`
	SellerProfile    *model.SellerProfile `json:"seller_profile,omitempty"`
	SellerSalesCount int                  `json:"seller_sales_count"`
	SellerVerified   bool                 `json:"seller_verified"`
	Failed           bool                 `json:"failed,omitempty"`
	FailureReason    string               `json:"failure_reason,omitempty"`
}

// BrowseListings runs the full pipeline for one viewer and filter state.
// An empty viewer means an anonymous session: premium content stays locked.
func (s *FeedService) BrowseListings(viewer string, fs model.FilterState) (BrowsePage, error) {
	filtered, err := s.filteredListings(fs)
	if err != nil {
		return BrowsePage{}, fmt.Errorf("service: failed to filter listings: %w", err)
	}

	counts, err := s.CategoryCounts()
	if err != nil {
		return BrowsePage{}, fmt.Errorf("service: failed to count categories: %w", err)
	}

	total := len(filtered)
	totalPages := (total + s.pageSize - 1) / s.pageSize
	page := clampPage(fs.Page, total, s.pageSize)
	slice := paginate(filtered, page, s.pageSize)

	viewerRole := s.viewerRole(viewer)
	views := make([]ListingView, 0, len(slice))
	for _, l := range slice {
		views = append(views, s.listingView(l, viewer, viewerRole))
	}

	return BrowsePage{
		Listings:   views,
		Counts:     counts,
		Page:       page,
		PageSize:   s.pageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// CategoryCounts partitions the active set independently of the current
// filters, so header counts stay stable while the user adjusts them.
func (s *FeedService) CategoryCounts() (model.CategoryCounts, error) {
	listings, err := s.repo.GetListings()
	if err != nil {
		return model.CategoryCounts{}, fmt.Errorf("service: failed to load listings: %w", err)
	}

	now := s.now()
	var counts model.CategoryCounts
	for _, l := range listings {
		if !l.IsActive(now) {
			continue
		}
		counts.All++
		switch {
		case l.Auction != nil:
			counts.Auction++
		case l.IsPremium:
			counts.Premium++
		default:
			counts.Standard++
		}
	}
	return counts, nil
}

// PopularTags returns the top tags across active listings. A failing tag
// lookup degrades to an empty result so the main feed is never blocked.
func (s *FeedService) PopularTags(limit int) []model.TagCount {
	tags, err := s.repo.GetPopularTags(limit)
	if err != nil {
		utils.Warn("service: popular tags unavailable", map[string]any{"error": err.Error()})
		return []model.TagCount{}
	}
	if tags == nil {
		tags = []model.TagCount{}
	}
	return tags
}

// CountdownView is the live remaining-time label for one auction listing
type CountdownView struct {
	ListingID      string `json:"listing_id"`
	Label          string `json:"label"`
	UpdateInterval int64  `json:"update_interval_ms"`
}

// Countdown returns the formatted remaining time for one auction listing
func (s *FeedService) Countdown(listingID string) (CountdownView, error) {
	if listingID == "" {
		return CountdownView{}, fmt.Errorf("service: %w - empty listing ID", feederrors.ErrListingNotFound)
	}

	l, err := s.repo.GetListing(listingID)
	if err != nil {
		return CountdownView{}, fmt.Errorf("service: failed to get listing %s: %w", listingID, err)
	}
	if l.Auction == nil {
		return CountdownView{}, fmt.Errorf("service: %w - listing %s", feederrors.ErrNotAuction, listingID)
	}

	now := s.now()
	return CountdownView{
		ListingID:      listingID,
		Label:          FormatTimeRemaining(s.formats, l.Auction.EndTime, now),
		UpdateInterval: updateIntervalFor(l.Auction.EndTime.Sub(now)).Milliseconds(),
	}, nil
}

// filteredListings returns the filtered and sorted active set, memoized on
// (repository revision, filter key). Page changes hit the memo; any change to
// the filtered set also refreshes the countdown candidates.
func (s *FeedService) filteredListings(fs model.FilterState) ([]model.Listing, error) {
	rev := s.repo.Revision()
	key := fs.Key()

	s.mu.Lock()
	if s.memo != nil && s.memoKey == key && s.memoRev == rev {
		cached := s.memo
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	listings, err := s.repo.GetListings()
	if err != nil {
		return nil, err
	}

	now := s.now()
	filtered := applyFilters(listings, fs, now)
	sortListings(filtered, fs.SortBy)

	s.mu.Lock()
	s.memo = filtered
	s.memoKey = key
	s.memoRev = rev
	s.mu.Unlock()

	s.countdown.SetCandidates(TimerEntries(filtered, now))
	return filtered, nil
}

// applyFilters runs the staged filter pipeline over the raw collection
func applyFilters(listings []model.Listing, fs model.FilterState, now time.Time) []model.Listing {
	term := strings.ToLower(strings.TrimSpace(fs.SearchTerm))

	filtered := make([]model.Listing, 0, len(listings))
	for _, l := range listings {
		if !l.IsActive(now) {
			continue
		}
		if !matchesCategory(l, fs.Category) {
			continue
		}
		if term != "" && !matchesSearch(l, term) {
			continue
		}
		price := l.EffectivePrice()
		if fs.MinPrice != nil && price < *fs.MinPrice {
			continue
		}
		if fs.MaxPrice != nil && price > *fs.MaxPrice {
			continue
		}
		hours := 0.0
		if l.HoursWorn != nil {
			hours = *l.HoursWorn
		}
		if !fs.HourRange.Contains(hours) {
			continue
		}
		filtered = append(filtered, l)
	}
	return filtered
}

func matchesCategory(l model.Listing, c model.Category) bool {
	switch c {
	case model.CategoryPremium:
		return l.IsPremium && l.Auction == nil
	case model.CategoryStandard:
		return !l.IsPremium && l.Auction == nil
	case model.CategoryAuction:
		return l.Auction != nil
	default:
		return true
	}
}

// matchesSearch does a case-insensitive substring match against title,
// description, tags and seller. Any single match passes the listing.
func matchesSearch(l model.Listing, term string) bool {
	if strings.Contains(strings.ToLower(l.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(l.Description), term) {
		return true
	}
	if strings.Contains(strings.ToLower(l.Seller), term) {
		return true
	}
	for _, tag := range l.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// sortListings orders the filtered set in place. All orderings tie-break on
// listing ID so the result is deterministic across platforms.
func sortListings(listings []model.Listing, key model.SortKey) {
	switch key {
	case model.SortPriceAsc:
		sort.SliceStable(listings, func(i, j int) bool {
			pi, pj := listings[i].EffectivePrice(), listings[j].EffectivePrice()
			if pi != pj {
				return pi < pj
			}
			return listings[i].ID < listings[j].ID
		})
	case model.SortPriceDesc:
		sort.SliceStable(listings, func(i, j int) bool {
			pi, pj := listings[i].EffectivePrice(), listings[j].EffectivePrice()
			if pi != pj {
				return pi > pj
			}
			return listings[i].ID < listings[j].ID
		})
	case model.SortEndingSoon:
		sort.SliceStable(listings, func(i, j int) bool {
			ai, aj := listings[i].Auction, listings[j].Auction
			switch {
			case ai != nil && aj == nil:
				return true
			case ai == nil && aj != nil:
				return false
			case ai != nil && aj != nil:
				if !ai.EndTime.Equal(aj.EndTime) {
					return ai.EndTime.Before(aj.EndTime)
				}
			}
			return listings[i].ID < listings[j].ID
		})
	default: // newest
		sort.SliceStable(listings, func(i, j int) bool {
			if !listings[i].Date.Equal(listings[j].Date) {
				return listings[i].Date.After(listings[j].Date)
			}
			return listings[i].ID < listings[j].ID
		})
	}
}

// clampPage folds out-of-range pages back into [0, lastPage]
func clampPage(page, total, size int) int {
	if page < 0 {
		return 0
	}
	if total == 0 {
		return 0
	}
	last := (total - 1) / size
	if page > last {
		return last
	}
	return page
}

func paginate(listings []model.Listing, page, size int) []model.Listing {
	start := page * size
	if start >= len(listings) {
		return nil
	}
	end := start + size
	if end > len(listings) {
		end = len(listings)
	}
	return listings[start:end]
}

// viewerRole resolves the viewer's role; unknown or anonymous viewers browse
// with no purchase affordances.
func (s *FeedService) viewerRole(viewer string) model.Role {
	if viewer == "" {
		return ""
	}
	u, err := s.repo.GetUser(viewer)
	if err != nil {
		if !errors.Is(err, feederrors.ErrUserNotFound) {
			utils.Warn("service: viewer lookup failed", map[string]any{"viewer": viewer, "error": err.Error()})
		}
		return ""
	}
	return u.Role
}

// listingView derives the per-viewer view of one listing. Derivation errors
// are contained here: a panic yields a sanitized placeholder for this listing
// only, never aborting the rest of the page.
func (s *FeedService) listingView(l model.Listing, viewer string, viewerRole model.Role) (view ListingView) {
	defer func() {
		if rec := recover(); rec != nil {
			utils.Error("service: listing view derivation failed", map[string]any{
				"listing_id": l.ID,
				"error":      fmt.Sprint(rec),
			})
			view = failedListingView(l.ID, rec)
		}
	}()

	locked := s.isLocked(l, viewer)

	view = ListingView{
		ID:               l.ID,
		Title:            l.Title,
		Price:            l.Price,
		MarkedUpPrice:    markedUpPrice(l.Price, s.markup),
		PriceLabel:       formatPrice(l.EffectivePrice()),
		Tags:             l.Tags,
		Seller:           l.Seller,
		IsPremium:        l.IsPremium,
		HoursWorn:        l.HoursWorn,
		Auction:          l.Auction,
		Date:             l.Date,
		Locked:           locked,
		Blurred:          locked,
		DetailPath:       fmt.Sprintf("/listings/%s", l.ID),
		CanPurchase:      viewerRole == model.RoleBuyer && !locked,
		SellerSalesCount: s.sellerSalesCount(l.Seller),
		SellerVerified:   s.sellerVerified(l.Seller),
		SellerProfile:    s.sellerProfile(l.Seller),
	}

	if locked {
		// withhold full content; click-through goes to the subscribe page
		view.Description = ""
		view.DetailPath = fmt.Sprintf("/sellers/%s/subscribe", l.Seller)
	} else {
		view.Description = l.Description
	}
	return view
}

// isLocked reports whether a premium listing withholds content from viewer
func (s *FeedService) isLocked(l model.Listing, viewer string) bool {
	if !l.IsPremium {
		return false
	}
	if viewer == "" {
		return true
	}
	if viewer == l.Seller {
		return false
	}
	subscribed, err := s.repo.IsSubscribed(viewer, l.Seller)
	if err != nil {
		utils.Warn("service: subscription lookup failed", map[string]any{
			"viewer": viewer,
			"seller": l.Seller,
			"error":  err.Error(),
		})
		return true
	}
	return !subscribed
}

// sellerProfile reads through the bounded profile cache
func (s *FeedService) sellerProfile(username string) *model.SellerProfile {
	if p, ok := s.profiles.Get(username); ok {
		return &p
	}
	p, err := s.repo.GetSellerProfile(username)
	if err != nil {
		if !errors.Is(err, feederrors.ErrProfileNotFound) {
			utils.Warn("service: profile lookup failed", map[string]any{"seller": username, "error": err.Error()})
		}
		return nil
	}
	s.profiles.Put(p)
	return &p
}

func (s *FeedService) sellerSalesCount(seller string) int {
	orders, err := s.repo.GetOrdersBySeller(seller)
	if err != nil {
		utils.Warn("service: order lookup failed", map[string]any{"seller": seller, "error": err.Error()})
		return 0
	}
	count := 0
	for _, o := range orders {
		if o.Status == model.OrderCompleted {
			count++
		}
	}
	return count
}

func (s *FeedService) sellerVerified(seller string) bool {
	u, err := s.repo.GetUser(seller)
	if err != nil {
		return false
	}
	return u.IsVerified()
}

// markedUpPrice derives the display price, rounded to 2 decimals
func markedUpPrice(price, factor float64) float64 {
	marked := price * factor
	if math.IsNaN(marked) || math.IsInf(marked, 0) {
		return 0
	}
	return math.Round(marked*100) / 100
}

// formatPrice renders a price label; malformed values degrade to a safe label
func formatPrice(price float64) string {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return "Price Error"
	}
	if price < 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", price)
}

func failedListingView(id string, rec any) ListingView {
	return ListingView{
		ID:            id,
		Title:         "Unavailable",
		PriceLabel:    "Price Error",
		Failed:        true,
		FailureReason: sanitizeReason(fmt.Sprint(rec)),
	}
}

// sanitizeReason strips control characters and bounds the length so a
// malformed record cannot smuggle junk into the response.
func sanitizeReason(reason string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return ' '
		}
		return r
	}, reason)
	if len(cleaned) > failureReasonLimit {
		cleaned = cleaned[:failureReasonLimit]
	}
	return cleaned
}
