package websocketadapter

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"wattline/contexts/telemetry/notification-service/ports"
)

// Hub tracks live websocket subscribers per owner and fans alerts out to
// them. A write failure evicts the connection; the client is expected to
// reconnect.
type Hub struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu          sync.RWMutex
	subscribers map[int64]map[string]*websocket.Conn
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Alerts are same-origin in deployment; the gateway enforces
			// origin policy upstream.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		subscribers: make(map[int64]map[string]*websocket.Conn),
	}
}

// SubscribeHandler upgrades GET /ws/alerts?owner_id= to a websocket and
// registers the connection until the peer disconnects.
func (h *Hub) SubscribeHandler(w http.ResponseWriter, r *http.Request) {
	ownerID, err := strconv.ParseInt(r.URL.Query().Get("owner_id"), 10, 64)
	if err != nil || ownerID <= 0 {
		http.Error(w, "invalid owner_id", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed",
			"event", "notification_upgrade_failed",
			"module", "telemetry/notification-service",
			"layer", "adapter",
			"error", err,
		)
		return
	}

	subscriberID := uuid.NewString()
	h.add(ownerID, subscriberID, conn)
	h.logger.Info("subscriber connected",
		"event", "notification_subscriber_connected",
		"module", "telemetry/notification-service",
		"layer", "adapter",
		"owner_id", ownerID,
		"subscriber_id", subscriberID,
	)

	// Block on reads so we notice the peer going away. Subscribers never
	// send application data; any read result other than an error is
	// discarded.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.remove(ownerID, subscriberID)
	conn.Close()
	h.logger.Info("subscriber disconnected",
		"event", "notification_subscriber_disconnected",
		"module", "telemetry/notification-service",
		"layer", "adapter",
		"owner_id", ownerID,
		"subscriber_id", subscriberID,
	)
}

func (h *Hub) Broadcast(_ context.Context, msg ports.AlertMessage) int {
	h.mu.RLock()
	conns := make(map[string]*websocket.Conn, len(h.subscribers[msg.OwnerID]))
	for id, conn := range h.subscribers[msg.OwnerID] {
		conns[id] = conn
	}
	h.mu.RUnlock()

	delivered := 0
	for id, conn := range conns {
		if err := conn.WriteJSON(msg); err != nil {
			h.logger.Warn("subscriber write failed, evicting",
				"event", "notification_subscriber_evicted",
				"module", "telemetry/notification-service",
				"layer", "adapter",
				"owner_id", msg.OwnerID,
				"subscriber_id", id,
				"error", err,
			)
			h.remove(msg.OwnerID, id)
			conn.Close()
			continue
		}
		delivered++
	}
	return delivered
}

func (h *Hub) add(ownerID int64, subscriberID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subscribers[ownerID] == nil {
		h.subscribers[ownerID] = make(map[string]*websocket.Conn)
	}
	h.subscribers[ownerID][subscriberID] = conn
}

func (h *Hub) remove(ownerID int64, subscriberID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subscribers[ownerID], subscriberID)
	if len(h.subscribers[ownerID]) == 0 {
		delete(h.subscribers, ownerID)
	}
}
