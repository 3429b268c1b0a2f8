package models

import (
	"fmt"
	"listing-feed/internal/feederrors"
	"math"
	"strconv"
	"strings"
)

// Category selects which slice of the active set the feed shows
type Category string

const (
	CategoryAll      Category = "all"
	CategoryStandard Category = "standard"
	CategoryPremium  Category = "premium"
	CategoryAuction  Category = "auction"
)

// ParseCategory maps a raw query value to a Category. Empty means all.
func ParseCategory(raw string) (Category, error) {
	switch Category(strings.ToLower(raw)) {
	case "", CategoryAll:
		return CategoryAll, nil
	case CategoryStandard:
		return CategoryStandard, nil
	case CategoryPremium:
		return CategoryPremium, nil
	case CategoryAuction:
		return CategoryAuction, nil
	default:
		return "", fmt.Errorf("%w - unknown category %q", feederrors.ErrInvalidFilter, raw)
	}
}

// SortKey selects the feed ordering
type SortKey string

const (
	SortNewest     SortKey = "newest"
	SortPriceAsc   SortKey = "priceAsc"
	SortPriceDesc  SortKey = "priceDesc"
	SortEndingSoon SortKey = "endingSoon"
)

// ParseSortKey maps a raw query value to a SortKey. Empty means newest.
func ParseSortKey(raw string) (SortKey, error) {
	switch SortKey(raw) {
	case "", SortNewest:
		return SortNewest, nil
	case SortPriceAsc:
		return SortPriceAsc, nil
	case SortPriceDesc:
		return SortPriceDesc, nil
	case SortEndingSoon:
		return SortEndingSoon, nil
	default:
		return "", fmt.Errorf("%w - unknown sort key %q", feederrors.ErrInvalidFilter, raw)
	}
}

// HourRange is one of the fixed hours-worn buckets
type HourRange struct {
	Label string
	Min   float64
	Max   float64
}

var (
	HourRangeAny = HourRange{Label: "any", Min: 0, Max: math.Inf(1)}
	HourRange12  = HourRange{Label: "12+", Min: 12, Max: math.Inf(1)}
	HourRange24  = HourRange{Label: "24+", Min: 24, Max: math.Inf(1)}
	HourRange48  = HourRange{Label: "48+", Min: 48, Max: math.Inf(1)}
)

// ParseHourRange maps a raw query value to one of the fixed buckets. Empty means any.
func ParseHourRange(raw string) (HourRange, error) {
	switch strings.ToLower(raw) {
	case "", HourRangeAny.Label:
		return HourRangeAny, nil
	case HourRange12.Label:
		return HourRange12, nil
	case HourRange24.Label:
		return HourRange24, nil
	case HourRange48.Label:
		return HourRange48, nil
	default:
		return HourRange{}, fmt.Errorf("%w - unknown hour range %q", feederrors.ErrInvalidFilter, raw)
	}
}

// Contains reports whether the given hours-worn value falls inside the bucket
func (r HourRange) Contains(hours float64) bool {
	return hours >= r.Min && hours <= r.Max
}

// FilterState is the full browse filter, ephemeral per session. SearchTerm is
// the committed (debounced) term, not the raw keystroke value.
type FilterState struct {
	Category   Category
	SearchTerm string
	MinPrice   *float64
	MaxPrice   *float64
	HourRange  HourRange
	SortBy     SortKey
	Page       int
}

// DefaultFilterState returns the filter a fresh browse session starts with
func DefaultFilterState() FilterState {
	return FilterState{
		Category:  CategoryAll,
		HourRange: HourRangeAny,
		SortBy:    SortNewest,
		Page:      0,
	}
}

// ResetPage returns a copy with the page rewound to the first one. Callers use
// it whenever any other filter field changes.
func (f FilterState) ResetPage() FilterState {
	f.Page = 0
	return f
}

// Key is a stable identity for the filter fields that affect filtering and
// sorting. Page is deliberately excluded: paging reuses the same filtered set.
func (f FilterState) Key() string {
	var b strings.Builder
	b.WriteString(string(f.Category))
	b.WriteByte('|')
	b.WriteString(strings.ToLower(f.SearchTerm))
	b.WriteByte('|')
	if f.MinPrice != nil {
		b.WriteString(strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	b.WriteByte('|')
	if f.MaxPrice != nil {
		b.WriteString(strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	b.WriteByte('|')
	b.WriteString(f.HourRange.Label)
	b.WriteByte('|')
	b.WriteString(string(f.SortBy))
	return b.String()
}
