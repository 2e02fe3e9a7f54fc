package queries

import (
	"context"
	"log/slog"

	"wattline/contexts/identity-access/profile-service/domain/entities"
	"wattline/contexts/identity-access/profile-service/ports"
)

type ListProfilesUseCase struct {
	Profiles ports.ProfileRepository
	Logger   *slog.Logger
}

func (u ListProfilesUseCase) Execute(ctx context.Context) ([]entities.Profile, error) {
	return u.Profiles.List(ctx)
}
