package commands

import (
	"context"
	"log/slog"
	"strings"

	application "wattline/contexts/identity-access/profile-service/application"
	"wattline/contexts/identity-access/profile-service/domain/entities"
	domainerrors "wattline/contexts/identity-access/profile-service/domain/errors"
	"wattline/contexts/identity-access/profile-service/ports"
	"wattline/internal/shared/events"
)

type EditProfileCommand struct {
	CredentialID int64
	Username     string
	Email        string
	Role         string
}

// EditProfileUseCase updates the local profile synchronously and then
// propagates denormalized copies via best-effort broadcasts: the credential
// service refreshes username/email, the device registry refreshes its
// display-name cache. There is no read-back confirmation; the update is
// eventually consistent, not atomic. Uniqueness is evaluated against this
// service's table only, so concurrent edits racing on uniqueness are not
// serialized.
type EditProfileUseCase struct {
	Profiles  ports.ProfileRepository
	Publisher ports.EventPublisher
	Logger    *slog.Logger
}

func (u EditProfileUseCase) Execute(ctx context.Context, cmd EditProfileCommand) (entities.Profile, error) {
	logger := application.ResolveLogger(u.Logger)

	profile, exists, err := u.Profiles.GetByCredentialID(ctx, cmd.CredentialID)
	if err != nil {
		return entities.Profile{}, err
	}
	if !exists {
		return entities.Profile{}, domainerrors.ErrProfileNotFound
	}

	if cmd.Username != "" && cmd.Username != profile.Username {
		if other, taken, err := u.Profiles.GetByUsername(ctx, cmd.Username); err != nil {
			return entities.Profile{}, err
		} else if taken && other.CredentialID != cmd.CredentialID {
			return entities.Profile{}, domainerrors.ErrUsernameExists
		}
		profile.Username = cmd.Username
	}
	if cmd.Email != "" && cmd.Email != profile.Email {
		if other, taken, err := u.Profiles.GetByEmail(ctx, cmd.Email); err != nil {
			return entities.Profile{}, err
		} else if taken && other.CredentialID != cmd.CredentialID {
			return entities.Profile{}, domainerrors.ErrEmailExists
		}
		profile.Email = cmd.Email
	}
	if strings.TrimSpace(cmd.Role) != "" {
		profile.Role = cmd.Role
	}

	if err := u.Profiles.Update(ctx, profile); err != nil {
		return entities.Profile{}, err
	}

	u.broadcast(ctx, logger, events.TopicProfileCRUD, events.TypeUpdateAuthProfile, events.AuthProfileUpdated{
		CredentialID: profile.CredentialID,
		Username:     profile.Username,
		Email:        profile.Email,
	})
	u.broadcast(ctx, logger, events.TopicProfileCRUD, events.TypeUpdateUserInDevices, events.UserInDevicesUpdated{
		OwnerID:     profile.CredentialID,
		DisplayName: profile.Username,
	})

	logger.Info("profile edited",
		"event", "edit_profile_committed",
		"module", "identity-access/profile-service",
		"layer", "application",
		"credential_id", profile.CredentialID,
	)
	return profile, nil
}

func (u EditProfileUseCase) broadcast(ctx context.Context, logger *slog.Logger, topic string, eventType string, payload any) {
	envelope, err := events.New(eventType, senderName, payload)
	if err == nil {
		err = u.Publisher.Publish(ctx, topic, envelope)
	}
	if err != nil {
		logger.Warn("profile broadcast failed, downstream state may drift",
			"event", "edit_profile_broadcast_failed",
			"module", "identity-access/profile-service",
			"layer", "application",
			"event_type", eventType,
			"error", err.Error(),
		)
	}
}
