// Package ws pushes point-event notices to connected clients so the frontend
// can refresh the leaderboard without polling.
package ws

import (
	"encoding/json"
	"sync"

	"community_backend/internal/domain"
	"community_backend/internal/logger"
)

// PointsRecorded is the notice broadcast after a scored action lands in the
// ledger. Clients refetch the leaderboard when they see one.
type PointsRecorded struct {
	Type   string            `json:"type"` // always "points_recorded"
	UserID int64             `json:"user_id"`
	Kind   domain.ActionKind `json:"action_kind"`
	Points int64             `json:"points"`
}

// Hub tracks connected clients and fans notices out to them. Slow clients
// are dropped rather than allowed to block the broadcast.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast queues the notice on every connected client.
func (h *Hub) Broadcast(notice PointsRecorded) {
	notice.Type = "points_recorded"
	payload, err := json.Marshal(notice)
	if err != nil {
		logger.Error("failed to marshal ws notice", "error", err)
		return
	}

	h.mu.RLock()
	var dropped []*Client
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			// client is not draining its queue
			dropped = append(dropped, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range dropped {
		logger.Warn("dropping slow ws client", "user_id", c.UserID)
		h.unregister(c)
	}
}
