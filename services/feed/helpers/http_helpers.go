package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"listing-feed/internal/feederrors"
	model "listing-feed/internal/models"
	"listing-feed/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// ParseFilterState turns the raw browse query into a typed FilterState.
// Unknown enum values and malformed prices surface as ErrInvalidFilter.
func ParseFilterState(q BrowseQuery) (model.FilterState, error) {
	category, err := model.ParseCategory(q.Category)
	if err != nil {
		return model.FilterState{}, err
	}
	sortBy, err := model.ParseSortKey(q.Sort)
	if err != nil {
		return model.FilterState{}, err
	}
	hourRange, err := model.ParseHourRange(q.Hours)
	if err != nil {
		return model.FilterState{}, err
	}
	minPrice, err := parsePrice(q.MinPrice, "min_price")
	if err != nil {
		return model.FilterState{}, err
	}
	maxPrice, err := parsePrice(q.MaxPrice, "max_price")
	if err != nil {
		return model.FilterState{}, err
	}
	if q.Page < 0 {
		return model.FilterState{}, fmt.Errorf("%w - negative page %d", feederrors.ErrInvalidPage, q.Page)
	}

	return model.FilterState{
		Category:   category,
		SearchTerm: q.Search,
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		HourRange:  hourRange,
		SortBy:     sortBy,
		Page:       q.Page,
	}, nil
}

func parsePrice(raw, field string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w - malformed %s %q", feederrors.ErrInvalidFilter, field, raw)
	}
	return &v, nil
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, feederrors.ErrListingNotFound):
		return http.StatusNotFound, "listing not found"
	case errors.Is(err, feederrors.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, feederrors.ErrInvalidFilter):
		return http.StatusBadRequest, "invalid filter"
	case errors.Is(err, feederrors.ErrInvalidPage):
		return http.StatusBadRequest, "invalid page"
	case errors.Is(err, feederrors.ErrNotAuction):
		return http.StatusBadRequest, "listing is not an auction"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
