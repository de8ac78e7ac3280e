// internal/ws/hub.go
package ws

import (
	"context"
	"sync"
	"time"

	domain "tripdesk-service/internal/domain/opportunity"

	"go.uber.org/zap"
)

// Event is the wire shape pushed to dashboard clients.
type Event struct {
	Type          string      `json:"type"`
	OpportunityID int64       `json:"opportunity_id,omitempty"`
	Payload       interface{} `json:"payload,omitempty"`
	At            time.Time   `json:"at"`
}

// Hub fans alert events out to every connected dashboard. Slow clients are
// dropped rather than allowed to back-pressure the scanner.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	broadcast  chan Event

	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 256),
		logger:     logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- event:
				default:
					h.logger.Warn("dropping slow websocket client")
					go func(c *Client) { h.unregister <- c }(client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastAlert pushes a freshly injected deadline alert task.
func (h *Hub) BroadcastAlert(opportunityID int64, task domain.Task) {
	select {
	case h.broadcast <- Event{
		Type:          "deadline_alert",
		OpportunityID: opportunityID,
		Payload:       task,
		At:            time.Now(),
	}:
	default:
		h.logger.Warn("websocket broadcast buffer full, dropping alert",
			zap.Int64("opportunity_id", opportunityID),
		)
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
}
