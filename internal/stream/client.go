package stream

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	feed "listing-feed/internal/feedService"
	model "listing-feed/internal/models"
	"listing-feed/utils"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// clientMessage is what a browse session sends over the socket
type clientMessage struct {
	Type      string `json:"type"`
	Term      string `json:"term,omitempty"`
	Category  string `json:"category,omitempty"`
	Sort      string `json:"sort,omitempty"`
	Hours     string `json:"hours,omitempty"`
	MinPrice  string `json:"min_price,omitempty"`
	MaxPrice  string `json:"max_price,omitempty"`
	Page      int    `json:"page,omitempty"`
	ListingID string `json:"listing_id,omitempty"`
}

// serverMessage is what the session receives: browse pages, navigation
// targets, errors, and payload-free countdown ticks.
type serverMessage struct {
	Type  string           `json:"type"`
	Data  *feed.BrowsePage `json:"data,omitempty"`
	Path  string           `json:"path,omitempty"`
	Error string           `json:"error,omitempty"`
}

// Client is one live browse session over a WebSocket. Search input is
// debounced server-side; listing-open events pass through an activation guard
// so a double-click dispatches at most once.
type Client struct {
	ID     string
	Viewer string
	Conn   *websocket.Conn
	Send   chan []byte

	browser   Browser
	debouncer *feed.Debouncer
	guard     *feed.ActivationGuard

	mu     sync.Mutex
	filter model.FilterState
	alive  bool
}

// NewClient creates a browse session with the default filter state
func NewClient(id, viewer string, conn *websocket.Conn, browser Browser) *Client {
	c := &Client{
		ID:      id,
		Viewer:  viewer,
		Conn:    conn,
		Send:    make(chan []byte, 64),
		browser: browser,
		guard:   feed.NewActivationGuard(0),
		filter:  model.DefaultFilterState(),
		alive:   true,
	}
	c.debouncer = feed.NewDebouncer(0, c.commitSearch)
	return c
}

// StartReadPump starts the read pump for this client
func (c *Client) StartReadPump(unregister chan<- *Client) {
	go c.readPump(unregister)
}

func (c *Client) readPump(unregister chan<- *Client) {
	defer func() {
		unregister <- c
	}()

	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				utils.Warn("stream: read error", map[string]any{"client_id": c.ID, "error": err.Error()})
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.sendError("malformed message")
			continue
		}
		c.handleMessage(msg)
	}
}

func (c *Client) handleMessage(msg clientMessage) {
	switch msg.Type {
	case "search":
		// raw keystrokes settle through the debouncer before committing
		c.debouncer.Update(msg.Term)
	case "filter":
		c.applyFilter(msg)
	case "page":
		c.mu.Lock()
		c.filter.Page = msg.Page
		fs := c.filter
		c.mu.Unlock()
		c.pushPage(fs)
	case "open":
		c.openListing(msg.ListingID)
	default:
		c.sendError(fmt.Sprintf("unknown message type %q", msg.Type))
	}
}

// applyFilter replaces the non-search filter fields. Any change resets the
// page to the first one.
func (c *Client) applyFilter(msg clientMessage) {
	category, err := model.ParseCategory(msg.Category)
	if err != nil {
		c.sendError(err.Error())
		return
	}
	sortBy, err := model.ParseSortKey(msg.Sort)
	if err != nil {
		c.sendError(err.Error())
		return
	}
	hourRange, err := model.ParseHourRange(msg.Hours)
	if err != nil {
		c.sendError(err.Error())
		return
	}
	minPrice, err := parseOptionalPrice(msg.MinPrice)
	if err != nil {
		c.sendError(err.Error())
		return
	}
	maxPrice, err := parseOptionalPrice(msg.MaxPrice)
	if err != nil {
		c.sendError(err.Error())
		return
	}

	c.mu.Lock()
	c.filter.Category = category
	c.filter.SortBy = sortBy
	c.filter.HourRange = hourRange
	c.filter.MinPrice = minPrice
	c.filter.MaxPrice = maxPrice
	c.filter = c.filter.ResetPage()
	fs := c.filter
	c.mu.Unlock()

	c.pushPage(fs)
}

// commitSearch is the debouncer's commit target; it runs after input settles
func (c *Client) commitSearch(term string) {
	c.mu.Lock()
	if !c.alive {
		c.mu.Unlock()
		return
	}
	c.filter.SearchTerm = term
	c.filter = c.filter.ResetPage()
	fs := c.filter
	c.mu.Unlock()

	c.pushPage(fs)
}

// openListing resolves a listing click to a navigation target. Locked
// listings navigate to the seller's subscribe page instead of the detail page.
func (c *Client) openListing(listingID string) {
	if !c.guard.Allow() {
		return
	}

	c.mu.Lock()
	fs := c.filter
	c.mu.Unlock()

	page, err := c.browser.BrowseListings(c.Viewer, fs)
	if err != nil {
		c.sendError("listing unavailable")
		return
	}
	for _, view := range page.Listings {
		if view.ID == listingID {
			c.send(serverMessage{Type: "nav", Path: view.DetailPath})
			return
		}
	}
	c.sendError("listing not on current page")
}

func (c *Client) pushPage(fs model.FilterState) {
	page, err := c.browser.BrowseListings(c.Viewer, fs)
	if err != nil {
		utils.Warn("stream: browse failed", map[string]any{"client_id": c.ID, "error": err.Error()})
		c.sendError("browse failed")
		return
	}
	c.send(serverMessage{Type: "page", Data: &page})
}

func (c *Client) sendError(message string) {
	c.send(serverMessage{Type: "error", Error: message})
}

func (c *Client) send(msg serverMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	c.enqueue(payload)
}

// enqueue hands a payload to the write pump without blocking. It reports
// false when the session's buffer is full, and silently drops payloads for a
// session already torn down.
func (c *Client) enqueue(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.alive {
		return true
	}
	select {
	case c.Send <- payload:
		return true
	default:
		return false
	}
}

// teardown is called by the manager exactly once when the session closes
func (c *Client) teardown() {
	c.debouncer.Stop()

	c.mu.Lock()
	if c.alive {
		c.alive = false
		close(c.Send)
	}
	c.mu.Unlock()

	c.Conn.Close()
}

// writePump pumps messages from the Send channel to the websocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func parseOptionalPrice(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q", raw)
	}
	return &v, nil
}
