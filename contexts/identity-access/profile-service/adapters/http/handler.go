package httpadapter

import (
	"context"
	"log/slog"

	"wattline/contexts/identity-access/profile-service/application/commands"
	"wattline/contexts/identity-access/profile-service/application/queries"
	"wattline/contexts/identity-access/profile-service/domain/entities"
	httptransport "wattline/contexts/identity-access/profile-service/transport/http"
)

type Handler struct {
	CreateProfile commands.CreateProfileUseCase
	EditProfile   commands.EditProfileUseCase
	DeleteAccount commands.DeleteAccountUseCase
	GetProfile    queries.GetProfileUseCase
	ListProfiles  queries.ListProfilesUseCase
	Logger        *slog.Logger
}

func (h Handler) CreateProfileHandler(ctx context.Context, req httptransport.CreateProfileRequest) (httptransport.ProfileDTO, error) {
	profile, err := h.CreateProfile.Execute(ctx, commands.CreateProfileCommand{
		CredentialID: req.CredentialID,
		Username:     req.Username,
		Email:        req.Email,
		Role:         req.Role,
	})
	if err != nil {
		return httptransport.ProfileDTO{}, err
	}
	return toDTO(profile), nil
}

func (h Handler) EditProfileHandler(ctx context.Context, req httptransport.EditProfileRequest) (httptransport.ProfileDTO, error) {
	profile, err := h.EditProfile.Execute(ctx, commands.EditProfileCommand{
		CredentialID: req.CredentialID,
		Username:     req.Username,
		Email:        req.Email,
		Role:         req.Role,
	})
	if err != nil {
		return httptransport.ProfileDTO{}, err
	}
	return toDTO(profile), nil
}

func (h Handler) DeleteAccountHandler(ctx context.Context, credentialID int64) error {
	return h.DeleteAccount.Execute(ctx, credentialID)
}

func (h Handler) GetProfileHandler(ctx context.Context, credentialID int64) (httptransport.ProfileDTO, error) {
	profile, err := h.GetProfile.Execute(ctx, credentialID)
	if err != nil {
		return httptransport.ProfileDTO{}, err
	}
	return toDTO(profile), nil
}

func (h Handler) ListProfilesHandler(ctx context.Context) (httptransport.ListProfilesResponse, error) {
	profiles, err := h.ListProfiles.Execute(ctx)
	if err != nil {
		return httptransport.ListProfilesResponse{}, err
	}
	items := make([]httptransport.ProfileDTO, 0, len(profiles))
	for _, profile := range profiles {
		items = append(items, toDTO(profile))
	}
	return httptransport.ListProfilesResponse{Profiles: items}, nil
}

func toDTO(profile entities.Profile) httptransport.ProfileDTO {
	return httptransport.ProfileDTO{
		ProfileID:    profile.ProfileID,
		CredentialID: profile.CredentialID,
		Username:     profile.Username,
		Email:        profile.Email,
		Role:         profile.Role,
	}
}
