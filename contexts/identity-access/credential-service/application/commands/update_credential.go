package commands

import (
	"context"
	"log/slog"
	"strings"

	application "wattline/contexts/identity-access/credential-service/application"
	"wattline/contexts/identity-access/credential-service/domain/entities"
	domainerrors "wattline/contexts/identity-access/credential-service/domain/errors"
	"wattline/contexts/identity-access/credential-service/ports"
)

type UpdateCredentialCommand struct {
	CredentialID int64
	Username     string
	Email        string
	PasswordHash string
}

// UpdateCredentialUseCase applies partial credential updates. Empty fields
// are left untouched; changed username/email are checked for uniqueness
// against this service's table only.
type UpdateCredentialUseCase struct {
	Credentials ports.CredentialRepository
	Logger      *slog.Logger
}

func (u UpdateCredentialUseCase) Execute(ctx context.Context, cmd UpdateCredentialCommand) (entities.Credential, error) {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(cmd.Username) == "" &&
		strings.TrimSpace(cmd.Email) == "" &&
		cmd.PasswordHash == "" {
		return entities.Credential{}, domainerrors.ErrNothingToUpdate
	}

	credential, exists, err := u.Credentials.GetByID(ctx, cmd.CredentialID)
	if err != nil {
		return entities.Credential{}, err
	}
	if !exists {
		return entities.Credential{}, domainerrors.ErrCredentialNotFound
	}

	if cmd.Username != "" && cmd.Username != credential.Username {
		if _, taken, err := u.Credentials.GetByUsername(ctx, cmd.Username); err != nil {
			return entities.Credential{}, err
		} else if taken {
			return entities.Credential{}, domainerrors.ErrUsernameExists
		}
		credential.Username = cmd.Username
	}
	if cmd.Email != "" && cmd.Email != credential.Email {
		if _, taken, err := u.Credentials.GetByEmail(ctx, cmd.Email); err != nil {
			return entities.Credential{}, err
		} else if taken {
			return entities.Credential{}, domainerrors.ErrEmailExists
		}
		credential.Email = cmd.Email
	}
	if cmd.PasswordHash != "" {
		credential.PasswordHash = cmd.PasswordHash
	}

	if err := u.Credentials.Update(ctx, credential); err != nil {
		return entities.Credential{}, err
	}

	logger.Info("credential updated",
		"event", "credential_updated",
		"module", "identity-access/credential-service",
		"layer", "application",
		"credential_id", credential.CredentialID,
	)
	return credential, nil
}
