package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "wattline/contexts/identity-access/profile-service/application"
	"wattline/contexts/identity-access/profile-service/domain/entities"
	domainerrors "wattline/contexts/identity-access/profile-service/domain/errors"
	"wattline/contexts/identity-access/profile-service/ports"
)

const senderName = "profile-service"

type CreateProfileCommand struct {
	CredentialID int64
	Username     string
	Email        string
	Role         string
}

// CreateProfileUseCase serves the register saga's synchronous
// create-profile step. Creation is idempotent on credential id: the
// credential service retries after partial failures, and a replayed create
// must not produce a second profile.
type CreateProfileUseCase struct {
	Profiles ports.ProfileRepository
	Logger   *slog.Logger
}

func (u CreateProfileUseCase) Execute(ctx context.Context, cmd CreateProfileCommand) (entities.Profile, error) {
	logger := application.ResolveLogger(u.Logger)

	if cmd.CredentialID <= 0 ||
		strings.TrimSpace(cmd.Username) == "" ||
		strings.TrimSpace(cmd.Email) == "" ||
		strings.TrimSpace(cmd.Role) == "" {
		return entities.Profile{}, domainerrors.ErrMissingFields
	}

	existing, exists, err := u.Profiles.GetByCredentialID(ctx, cmd.CredentialID)
	if err != nil {
		return entities.Profile{}, err
	}
	if exists {
		logger.Info("profile already exists, create replayed",
			"event", "create_profile_replayed",
			"module", "identity-access/profile-service",
			"layer", "application",
			"credential_id", cmd.CredentialID,
		)
		return existing, nil
	}

	// Uniqueness is checked against this table only; a conflict here is
	// what makes the credential service compensate its half of the saga.
	if _, taken, err := u.Profiles.GetByUsername(ctx, cmd.Username); err != nil {
		return entities.Profile{}, err
	} else if taken {
		return entities.Profile{}, domainerrors.ErrUsernameExists
	}
	if _, taken, err := u.Profiles.GetByEmail(ctx, cmd.Email); err != nil {
		return entities.Profile{}, err
	} else if taken {
		return entities.Profile{}, domainerrors.ErrEmailExists
	}

	profile, err := u.Profiles.Create(ctx, entities.Profile{
		CredentialID: cmd.CredentialID,
		Username:     cmd.Username,
		Email:        cmd.Email,
		Role:         cmd.Role,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return entities.Profile{}, err
	}

	logger.Info("profile created",
		"event", "create_profile_committed",
		"module", "identity-access/profile-service",
		"layer", "application",
		"credential_id", cmd.CredentialID,
		"profile_id", profile.ProfileID,
	)
	return profile, nil
}
