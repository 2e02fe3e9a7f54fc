package commands

import (
	"context"
	"log/slog"

	application "wattline/contexts/identity-access/credential-service/application"
	domainerrors "wattline/contexts/identity-access/credential-service/domain/errors"
	"wattline/contexts/identity-access/credential-service/ports"
)

// DeleteCredentialUseCase serves the delete-account saga's synchronous
// credential-delete step. A missing credential is a 404 to the caller; the
// profile service decides whether that aborts its saga.
type DeleteCredentialUseCase struct {
	Credentials ports.CredentialRepository
	Logger      *slog.Logger
}

func (u DeleteCredentialUseCase) Execute(ctx context.Context, credentialID int64) error {
	logger := application.ResolveLogger(u.Logger)

	existed, err := u.Credentials.Delete(ctx, credentialID)
	if err != nil {
		return err
	}
	if !existed {
		return domainerrors.ErrCredentialNotFound
	}

	logger.Info("credential deleted",
		"event", "credential_deleted",
		"module", "identity-access/credential-service",
		"layer", "application",
		"credential_id", credentialID,
	)
	return nil
}
