package registryservice

import (
	"log/slog"

	httpadapter "wattline/contexts/device-fleet/registry-service/adapters/http"
	"wattline/contexts/device-fleet/registry-service/adapters/memory"
	"wattline/contexts/device-fleet/registry-service/application/commands"
	"wattline/contexts/device-fleet/registry-service/application/queries"
	"wattline/contexts/device-fleet/registry-service/application/workers"
	"wattline/contexts/device-fleet/registry-service/ports"
)

// Module is the composition surface for the registry service. Runtime
// wiring consumes Handler and the consumers; the stores are exposed for
// tests.
type Module struct {
	Handler          httpadapter.Handler
	IdentityConsumer workers.IdentityEventsConsumer
	ProfileConsumer  workers.ProfileEventsConsumer
	Store            *memory.Store
	OwnerStore       *memory.OwnerStore
}

type Dependencies struct {
	Devices    ports.DeviceRepository
	Owners     ports.OwnerRepository
	Publisher  ports.EventPublisher
	Subscriber ports.EventSubscriber
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	handler := httpadapter.Handler{
		AddDevice: commands.AddDeviceUseCase{
			Devices:   deps.Devices,
			Owners:    deps.Owners,
			Publisher: deps.Publisher,
			Logger:    deps.Logger,
		},
		EditDevice: commands.EditDeviceUseCase{
			Devices: deps.Devices,
			Logger:  deps.Logger,
		},
		DeleteDevice: commands.DeleteDeviceUseCase{
			Devices:   deps.Devices,
			Publisher: deps.Publisher,
			Logger:    deps.Logger,
		},
		ListDevices: queries.ListDevicesUseCase{
			Devices: deps.Devices,
			Logger:  deps.Logger,
		},
		ListOwnerDevices: queries.ListOwnerDevicesUseCase{
			Devices: deps.Devices,
			Logger:  deps.Logger,
		},
		GetDeviceLimit: queries.GetDeviceLimitUseCase{
			Devices: deps.Devices,
			Logger:  deps.Logger,
		},
		Logger: deps.Logger,
	}

	identityConsumer := workers.IdentityEventsConsumer{
		Subscriber: deps.Subscriber,
		Owners:     deps.Owners,
		Logger:     deps.Logger,
	}
	profileConsumer := workers.ProfileEventsConsumer{
		Subscriber: deps.Subscriber,
		Devices:    deps.Devices,
		Owners:     deps.Owners,
		Logger:     deps.Logger,
	}

	return Module{
		Handler:          handler,
		IdentityConsumer: identityConsumer,
		ProfileConsumer:  profileConsumer,
	}
}

// NewInMemoryModule wires the service against in-memory adapters for tests
// and local development.
func NewInMemoryModule(publisher ports.EventPublisher, subscriber ports.EventSubscriber, logger *slog.Logger) Module {
	store := memory.NewStore()
	ownerStore := memory.NewOwnerStore()
	module := NewModule(Dependencies{
		Devices:    store,
		Owners:     ownerStore,
		Publisher:  publisher,
		Subscriber: subscriber,
		Logger:     logger,
	})
	module.Store = store
	module.OwnerStore = ownerStore
	return module
}
