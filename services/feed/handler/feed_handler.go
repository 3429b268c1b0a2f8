package handler

import (
	"fmt"
	"net/http"
	"strconv"

	feed "listing-feed/internal/feedService"
	model "listing-feed/internal/models"
	"listing-feed/internal/stream"
	"listing-feed/services/feed/helpers"
	"listing-feed/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const defaultTagLimit = 10

type FeedServiceInterface interface {
	BrowseListings(viewer string, fs model.FilterState) (feed.BrowsePage, error)
	CategoryCounts() (model.CategoryCounts, error)
	PopularTags(limit int) []model.TagCount
	Countdown(listingID string) (feed.CountdownView, error)
}

type FeedHandler struct {
	service  FeedServiceInterface
	manager  *stream.Manager
	upgrader websocket.Upgrader
}

func NewFeedHandler(service FeedServiceInterface, manager *stream.Manager) *FeedHandler {
	return &FeedHandler{
		service: service,
		manager: manager,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// viewer resolves the browsing account from the session header. Auth itself
// lives upstream; an absent header means an anonymous session.
func viewer(c *gin.Context) string {
	return c.GetHeader("X-Username")
}

// BrowseListingsHandler handles GET /listings
func (h *FeedHandler) BrowseListingsHandler(c *gin.Context) {
	var query helpers.BrowseQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		helpers.HandleBindError(c, "BrowseListingsHandler", err)
		return
	}

	fs, err := helpers.ParseFilterState(query)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, err, message)
		utils.Warn("BrowseListingsHandler: invalid filter", map[string]any{"error": err.Error()})
		return
	}

	page, err := h.service.BrowseListings(viewer(c), fs)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("BrowseListingsHandler: failed to browse listings", map[string]any{
			"handler": "BrowseListingsHandler",
			"viewer":  viewer(c),
			"error":   err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, page, "listings retrieved successfully")
	helpers.LogSuccess("BrowseListingsHandler", "listings retrieved successfully", map[string]any{
		"viewer":   viewer(c),
		"category": string(fs.Category),
		"sort":     string(fs.SortBy),
		"page":     page.Page,
		"total":    page.Total,
	})
}

// CategoryCountsHandler handles GET /listings/counts
func (h *FeedHandler) CategoryCountsHandler(c *gin.Context) {
	counts, err := h.service.CategoryCounts()
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("CategoryCountsHandler: error counting categories", map[string]any{"error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, counts, "category counts retrieved successfully")
	helpers.LogSuccess("CategoryCountsHandler", "category counts retrieved successfully", map[string]any{
		"all": counts.All,
	})
}

// PopularTagsHandler handles GET /tags/popular. A failing tag source degrades
// to an empty list; the endpoint never blocks the main feed flow with a 5xx.
func (h *FeedHandler) PopularTagsHandler(c *gin.Context) {
	limit := defaultTagLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	tags := h.service.PopularTags(limit)

	utils.JSONResponse(c, http.StatusOK, tags, "popular tags retrieved successfully")
	helpers.LogSuccess("PopularTagsHandler", "popular tags retrieved successfully", map[string]any{
		"limit": limit,
		"count": len(tags),
	})
}

// CountdownHandler handles GET /listings/:listing_id/countdown
func (h *FeedHandler) CountdownHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	view, err := h.service.Countdown(listingID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("CountdownHandler: countdown error", map[string]any{"listing_id": listingID, "error": err.Error()})
		return
	}

	resp := helpers.CountdownResponse{
		ListingID:      view.ListingID,
		Label:          view.Label,
		UpdateInterval: view.UpdateInterval,
	}

	utils.JSONResponse(c, http.StatusOK, resp, "countdown retrieved successfully")
	helpers.LogSuccess("CountdownHandler", "countdown retrieved successfully", map[string]any{
		"listing_id": listingID,
		"label":      view.Label,
	})
}

// TickStreamHandler handles GET /ws/ticks, upgrading to a live browse session
func (h *FeedHandler) TickStreamHandler(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.Warn("TickStreamHandler: upgrade failed", map[string]any{"error": err.Error()})
		return
	}

	client := stream.NewClient(utils.GenerateID(), viewer(c), conn, h.service)
	h.manager.Serve(client)
}
