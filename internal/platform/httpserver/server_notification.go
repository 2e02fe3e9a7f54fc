package httpserver

import (
	"log/slog"

	websocketadapter "wattline/contexts/telemetry/notification-service/adapters/websocket"
)

// NotificationServer fronts the alert websocket endpoint.
type NotificationServer struct {
	*server
	hub *websocketadapter.Hub
}

func NewNotification(hub *websocketadapter.Hub, logger *slog.Logger, addr string) *NotificationServer {
	s := &NotificationServer{
		server: newServer(addr, logger),
		hub:    hub,
	}
	s.registerRoutes()
	return s
}

func (s *NotificationServer) registerRoutes() {
	s.mux.HandleFunc("GET /ws/alerts", s.hub.SubscribeHandler)
}
