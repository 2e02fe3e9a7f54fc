package notificationservice

import (
	"log/slog"

	"wattline/contexts/telemetry/notification-service/adapters/memory"
	"wattline/contexts/telemetry/notification-service/application/workers"
	"wattline/contexts/telemetry/notification-service/ports"
)

// Module is the composition surface for the notification service.
type Module struct {
	Consumer workers.AlertConsumer
	Hub      *memory.Hub
}

type Dependencies struct {
	Hub        ports.SubscriberHub
	Subscriber ports.EventSubscriber
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Consumer: workers.AlertConsumer{
			Subscriber: deps.Subscriber,
			Hub:        deps.Hub,
			Logger:     deps.Logger,
		},
	}
}

// NewInMemoryModule wires the service against the in-memory hub for tests.
func NewInMemoryModule(subscriber ports.EventSubscriber, logger *slog.Logger) Module {
	hub := memory.NewHub()
	module := NewModule(Dependencies{
		Hub:        hub,
		Subscriber: subscriber,
		Logger:     logger,
	})
	module.Hub = hub
	return module
}
