package monitoringservice

import (
	"log/slog"

	httpadapter "wattline/contexts/telemetry/monitoring-service/adapters/http"
	"wattline/contexts/telemetry/monitoring-service/adapters/memory"
	"wattline/contexts/telemetry/monitoring-service/application/queries"
	"wattline/contexts/telemetry/monitoring-service/application/workers"
	"wattline/contexts/telemetry/monitoring-service/ports"
)

// Module is the composition surface for the monitoring service. Runtime
// wiring consumes Handler and the consumers; the stores are exposed for
// tests.
type Module struct {
	Handler         httpadapter.Handler
	DeviceConsumer  workers.DeviceEventsConsumer
	ReadingConsumer workers.ReadingConsumer
	MappingStore    *memory.MappingStore
	ReadingStore    *memory.ReadingStore
}

type Dependencies struct {
	Mappings   ports.MappingRepository
	Readings   ports.ReadingRepository
	Limits     ports.LimitFetcher
	Publisher  ports.EventPublisher
	Subscriber ports.EventSubscriber
	ReplicaID  int
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	handler := httpadapter.Handler{
		ListConsumptions: queries.ListConsumptionsUseCase{
			Readings: deps.Readings,
			Logger:   deps.Logger,
		},
		Logger: deps.Logger,
	}

	deviceConsumer := workers.DeviceEventsConsumer{
		Subscriber: deps.Subscriber,
		Mappings:   deps.Mappings,
		Readings:   deps.Readings,
		Logger:     deps.Logger,
	}
	readingConsumer := workers.ReadingConsumer{
		Subscriber: deps.Subscriber,
		Mappings:   deps.Mappings,
		Readings:   deps.Readings,
		Limits:     deps.Limits,
		Publisher:  deps.Publisher,
		ReplicaID:  deps.ReplicaID,
		Logger:     deps.Logger,
	}

	return Module{
		Handler:         handler,
		DeviceConsumer:  deviceConsumer,
		ReadingConsumer: readingConsumer,
	}
}

// NewInMemoryModule wires the service against in-memory adapters for tests
// and local development.
func NewInMemoryModule(limits ports.LimitFetcher, publisher ports.EventPublisher, subscriber ports.EventSubscriber, replicaID int, logger *slog.Logger) Module {
	mappingStore := memory.NewMappingStore()
	readingStore := memory.NewReadingStore()
	module := NewModule(Dependencies{
		Mappings:   mappingStore,
		Readings:   readingStore,
		Limits:     limits,
		Publisher:  publisher,
		Subscriber: subscriber,
		ReplicaID:  replicaID,
		Logger:     logger,
	})
	module.MappingStore = mappingStore
	module.ReadingStore = readingStore
	return module
}
