package memory

import (
	"context"
	"sync"

	"wattline/contexts/telemetry/notification-service/ports"
)

// Hub is the in-memory subscriber hub used by tests. Connect registers a
// fake subscriber; delivered messages are recorded per owner.
type Hub struct {
	mu          sync.Mutex
	subscribers map[int64]int
	delivered   map[int64][]ports.AlertMessage
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[int64]int),
		delivered:   make(map[int64][]ports.AlertMessage),
	}
}

func (h *Hub) Connect(ownerID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers[ownerID]++
}

func (h *Hub) Broadcast(_ context.Context, msg ports.AlertMessage) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	count := h.subscribers[msg.OwnerID]
	for i := 0; i < count; i++ {
		h.delivered[msg.OwnerID] = append(h.delivered[msg.OwnerID], msg)
	}
	return count
}

func (h *Hub) Delivered(ownerID int64) []ports.AlertMessage {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]ports.AlertMessage(nil), h.delivered[ownerID]...)
}
