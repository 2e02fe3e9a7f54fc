package profileservice

import (
	"log/slog"

	httpadapter "wattline/contexts/identity-access/profile-service/adapters/http"
	"wattline/contexts/identity-access/profile-service/adapters/memory"
	"wattline/contexts/identity-access/profile-service/application/commands"
	"wattline/contexts/identity-access/profile-service/application/queries"
	"wattline/contexts/identity-access/profile-service/ports"
)

// Module is the composition surface for the profile service.
type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Profiles    ports.ProfileRepository
	Credentials ports.CredentialDeleter
	Publisher   ports.EventPublisher
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	handler := httpadapter.Handler{
		CreateProfile: commands.CreateProfileUseCase{
			Profiles: deps.Profiles,
			Logger:   deps.Logger,
		},
		EditProfile: commands.EditProfileUseCase{
			Profiles:  deps.Profiles,
			Publisher: deps.Publisher,
			Logger:    deps.Logger,
		},
		DeleteAccount: commands.DeleteAccountUseCase{
			Profiles:    deps.Profiles,
			Credentials: deps.Credentials,
			Publisher:   deps.Publisher,
			Logger:      deps.Logger,
		},
		GetProfile: queries.GetProfileUseCase{
			Profiles: deps.Profiles,
			Logger:   deps.Logger,
		},
		ListProfiles: queries.ListProfilesUseCase{
			Profiles: deps.Profiles,
			Logger:   deps.Logger,
		},
		Logger: deps.Logger,
	}
	return Module{Handler: handler}
}

// NewInMemoryModule wires the service against in-memory adapters for tests
// and local development.
func NewInMemoryModule(credentials ports.CredentialDeleter, publisher ports.EventPublisher, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Profiles:    store,
		Credentials: credentials,
		Publisher:   publisher,
		Logger:      logger,
	})
	module.Store = store
	return module
}
