package queries

import (
	"context"
	"log/slog"

	"wattline/contexts/identity-access/profile-service/domain/entities"
	domainerrors "wattline/contexts/identity-access/profile-service/domain/errors"
	"wattline/contexts/identity-access/profile-service/ports"
)

type GetProfileUseCase struct {
	Profiles ports.ProfileRepository
	Logger   *slog.Logger
}

func (u GetProfileUseCase) Execute(ctx context.Context, credentialID int64) (entities.Profile, error) {
	profile, exists, err := u.Profiles.GetByCredentialID(ctx, credentialID)
	if err != nil {
		return entities.Profile{}, err
	}
	if !exists {
		return entities.Profile{}, domainerrors.ErrProfileNotFound
	}
	return profile, nil
}
