package stream

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	feed "listing-feed/internal/feedService"
	model "listing-feed/internal/models"
)

// fakeBrowser records the filter states it was asked to browse with
type fakeBrowser struct {
	mu    sync.Mutex
	calls []model.FilterState
	page  feed.BrowsePage
	err   error
}

func (f *fakeBrowser) BrowseListings(viewer string, fs model.FilterState) (feed.BrowsePage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fs)
	return f.page, f.err
}

func (f *fakeBrowser) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeBrowser) lastCall(t *testing.T) model.FilterState {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.calls)
	return f.calls[len(f.calls)-1]
}

func receiveMessage(t *testing.T, c *Client) serverMessage {
	t.Helper()
	select {
	case payload := <-c.Send:
		var msg serverMessage
		require.NoError(t, json.Unmarshal(payload, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a server message")
		return serverMessage{}
	}
}

func TestClient_ApplyFilter(t *testing.T) {
	t.Parallel()

	browser := &fakeBrowser{page: feed.BrowsePage{Page: 0, Total: 1}}
	c := NewClient("c1", "bee", nil, browser)

	// advance past the first page so the reset is observable
	c.mu.Lock()
	c.filter.Page = 3
	c.mu.Unlock()

	c.handleMessage(clientMessage{
		Type:     "filter",
		Category: "auction",
		Sort:     "priceAsc",
		Hours:    "12+",
		MinPrice: "5",
		MaxPrice: "50",
	})

	fs := browser.lastCall(t)
	require.Equal(t, model.CategoryAuction, fs.Category)
	require.Equal(t, model.SortPriceAsc, fs.SortBy)
	require.Equal(t, model.HourRange12, fs.HourRange)
	require.Equal(t, 5.0, *fs.MinPrice)
	require.Equal(t, 50.0, *fs.MaxPrice)
	require.Equal(t, 0, fs.Page)

	msg := receiveMessage(t, c)
	require.Equal(t, "page", msg.Type)
	require.Equal(t, 1, msg.Data.Total)
}

func TestClient_ApplyFilter_InvalidEnum(t *testing.T) {
	t.Parallel()

	browser := &fakeBrowser{}
	c := NewClient("c1", "bee", nil, browser)

	c.handleMessage(clientMessage{Type: "filter", Category: "bogus"})

	require.Equal(t, 0, browser.callCount())
	msg := receiveMessage(t, c)
	require.Equal(t, "error", msg.Type)
	require.NotEmpty(t, msg.Error)
}

func TestClient_PageMessage(t *testing.T) {
	t.Parallel()

	browser := &fakeBrowser{}
	c := NewClient("c1", "bee", nil, browser)

	c.handleMessage(clientMessage{Type: "page", Page: 2})

	require.Equal(t, 2, browser.lastCall(t).Page)
}

func TestClient_SearchIsDebounced(t *testing.T) {
	t.Parallel()

	browser := &fakeBrowser{}
	c := NewClient("c1", "bee", nil, browser)

	for _, term := range []string{"b", "bo", "boo", "boot"} {
		c.handleMessage(clientMessage{Type: "search", Term: term})
		time.Sleep(20 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return browser.callCount() == 1
	}, time.Second, 10*time.Millisecond)

	fs := browser.lastCall(t)
	require.Equal(t, "boot", fs.SearchTerm)
	require.Equal(t, 0, fs.Page)

	// no trailing commits after the burst settled
	time.Sleep(400 * time.Millisecond)
	require.Equal(t, 1, browser.callCount())
}

func TestClient_OpenListing(t *testing.T) {
	t.Parallel()

	browser := &fakeBrowser{page: feed.BrowsePage{
		Listings: []feed.ListingView{
			{ID: "listing1", DetailPath: "/listings/listing1"},
			{ID: "listing2", DetailPath: "/sellers/hal/subscribe"},
		},
	}}
	c := NewClient("c1", "bee", nil, browser)

	c.handleMessage(clientMessage{Type: "open", ListingID: "listing2"})

	msg := receiveMessage(t, c)
	require.Equal(t, "nav", msg.Type)
	require.Equal(t, "/sellers/hal/subscribe", msg.Path)

	// a double-click inside the activation window dispatches only once
	c.handleMessage(clientMessage{Type: "open", ListingID: "listing2"})
	require.Equal(t, 1, browser.callCount())
}

func TestClient_OpenListing_NotOnPage(t *testing.T) {
	t.Parallel()

	browser := &fakeBrowser{page: feed.BrowsePage{}}
	c := NewClient("c1", "bee", nil, browser)

	c.handleMessage(clientMessage{Type: "open", ListingID: "ghost"})

	msg := receiveMessage(t, c)
	require.Equal(t, "error", msg.Type)
}

func TestClient_UnknownMessageType(t *testing.T) {
	t.Parallel()

	browser := &fakeBrowser{}
	c := NewClient("c1", "bee", nil, browser)

	c.handleMessage(clientMessage{Type: "dance"})

	msg := receiveMessage(t, c)
	require.Equal(t, "error", msg.Type)
	require.Contains(t, msg.Error, "dance")
}

func TestParseOptionalPrice(t *testing.T) {
	t.Parallel()

	v, err := parseOptionalPrice("")
	require.NoError(t, err)
	require.Nil(t, v)

	v, err = parseOptionalPrice("12.5")
	require.NoError(t, err)
	require.Equal(t, 12.5, *v)

	_, err = parseOptionalPrice("abc")
	require.Error(t, err)
}
