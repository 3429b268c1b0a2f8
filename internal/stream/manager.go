package stream

import (
	"sync"

	feed "listing-feed/internal/feedService"
	model "listing-feed/internal/models"
	"listing-feed/utils"
)

// Browser is the slice of the feed engine a browse session needs
type Browser interface {
	BrowseListings(viewer string, fs model.FilterState) (feed.BrowsePage, error)
}

// Manager owns all live browse sessions. Registration, removal and tick
// fan-out all go through its run loop, so session bookkeeping needs no
// locking beyond the client set itself.
type Manager struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	browser    Browser
}

// NewManager creates a session manager over the given feed engine
func NewManager(browser Browser) *Manager {
	return &Manager{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		browser:    browser,
	}
}

// Run starts the manager's main loop. This should run in a goroutine.
func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.addClient(client)
		case client := <-m.unregister:
			m.removeClient(client)
		case payload := <-m.broadcast:
			m.fanOut(payload)
		}
	}
}

// RegisterClient adds a session and starts its write pump
func (m *Manager) RegisterClient(client *Client) {
	m.register <- client
}

// UnregisterClient tears a session down
func (m *Manager) UnregisterClient(client *Client) {
	m.unregister <- client
}

// Serve registers a session and starts its read pump
func (m *Manager) Serve(client *Client) {
	m.RegisterClient(client)
	client.StartReadPump(m.unregister)
}

// Broadcast sends a payload to every live session
func (m *Manager) Broadcast(payload []byte) {
	m.broadcast <- payload
}

// ClientCount returns the number of live sessions
func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

func (m *Manager) addClient(client *Client) {
	m.mu.Lock()
	m.clients[client] = true
	m.mu.Unlock()

	utils.Info("stream: session opened", map[string]any{"client_id": client.ID, "viewer": client.Viewer})
	go client.writePump()
}

func (m *Manager) removeClient(client *Client) {
	m.mu.Lock()
	if !m.clients[client] {
		m.mu.Unlock()
		return
	}
	delete(m.clients, client)
	m.mu.Unlock()

	client.teardown()
	utils.Info("stream: session closed", map[string]any{"client_id": client.ID})
}

func (m *Manager) fanOut(payload []byte) {
	m.mu.RLock()
	clients := make([]*Client, 0, len(m.clients))
	for c := range m.clients {
		clients = append(clients, c)
	}
	m.mu.RUnlock()

	for _, client := range clients {
		if !client.enqueue(payload) {
			// slow session, drop it rather than block the rest
			go m.UnregisterClient(client)
		}
	}
}
