package integrationtests

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	feed "listing-feed/internal/feedService"
	model "listing-feed/internal/models"
	"listing-feed/internal/repository"
	"listing-feed/internal/server"
	"listing-feed/internal/stream"

	"github.com/gin-gonic/gin"
)

// SetupTestRouter initializes the router with an in-memory repository for integration testing.
func SetupTestRouter(t *testing.T) (*gin.Engine, *repository.MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepo()
	service := feed.NewFeedService(repo, feed.Options{})
	t.Cleanup(service.Close)

	manager := stream.NewManager(service)
	router := server.SetupRouter(service, manager)
	return router, repo
}

// SetupTestRouterWithListings initializes the router and seeds the repo with listings.
func SetupTestRouterWithListings(t *testing.T, listings ...model.Listing) (*gin.Engine, *repository.MemoryRepo) {
	t.Helper()
	router, repo := SetupTestRouter(t)
	for _, l := range listings {
		repo.AddListing(l)
	}
	return router, repo
}

// ExecuteRequestAndParse executes a GET request on the given router and parses the response
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, url, username string) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", url, nil)
	if username != "" {
		req.Header.Set("X-Username", username)
	}
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}

	return resp, w
}

func hoursPtr(h float64) *float64 { return &h }

func activeAuction(endIn time.Duration, highestBid *float64) *model.Auction {
	return &model.Auction{
		StartingPrice: 10,
		EndTime:       time.Now().UTC().Add(endIn),
		Status:        model.AuctionActive,
		HighestBid:    highestBid,
	}
}
