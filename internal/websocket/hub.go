package websocket

import (
	"encoding/json"
	"sync"
)

// LedgerUpdate is pushed to every connected dashboard client after a
// committed balance change.
type LedgerUpdate struct {
	AccountType string `json:"account_type"` // "bank_account" or "program_area"
	Name        string `json:"name"`
	Balance     string `json:"balance"`
}

type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
}

// BroadcastLedger fans the update out to all clients; slow clients are
// skipped rather than blocked on.
func (h *Hub) BroadcastLedger(update LedgerUpdate) {
	payload, _ := json.Marshal(update)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
		}
	}
}
