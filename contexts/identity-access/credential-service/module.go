package credentialservice

import (
	"log/slog"

	httpadapter "wattline/contexts/identity-access/credential-service/adapters/http"
	"wattline/contexts/identity-access/credential-service/adapters/memory"
	"wattline/contexts/identity-access/credential-service/application/commands"
	"wattline/contexts/identity-access/credential-service/application/workers"
	"wattline/contexts/identity-access/credential-service/ports"
)

// Module is the composition surface for the credential service. Runtime
// wiring consumes Handler and Consumer; Store is exposed for tests.
type Module struct {
	Handler  httpadapter.Handler
	Consumer workers.ProfileEventsConsumer
	Store    *memory.Store
}

type Dependencies struct {
	Credentials ports.CredentialRepository
	Profiles    ports.ProfileCreator
	Publisher   ports.EventPublisher
	Subscriber  ports.EventSubscriber
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	handler := httpadapter.Handler{
		Register: commands.RegisterAccountUseCase{
			Credentials: deps.Credentials,
			Profiles:    deps.Profiles,
			Publisher:   deps.Publisher,
			Logger:      deps.Logger,
		},
		Update: commands.UpdateCredentialUseCase{
			Credentials: deps.Credentials,
			Logger:      deps.Logger,
		},
		Delete: commands.DeleteCredentialUseCase{
			Credentials: deps.Credentials,
			Logger:      deps.Logger,
		},
		Logger: deps.Logger,
	}

	consumer := workers.ProfileEventsConsumer{
		Subscriber:  deps.Subscriber,
		Credentials: deps.Credentials,
		Logger:      deps.Logger,
	}

	return Module{Handler: handler, Consumer: consumer}
}

// NewInMemoryModule wires the service against in-memory adapters for tests
// and local development.
func NewInMemoryModule(profiles ports.ProfileCreator, publisher ports.EventPublisher, subscriber ports.EventSubscriber, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Credentials: store,
		Profiles:    profiles,
		Publisher:   publisher,
		Subscriber:  subscriber,
		Logger:      logger,
	})
	module.Store = store
	return module
}
