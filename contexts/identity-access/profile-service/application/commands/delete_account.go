package commands

import (
	"context"
	"log/slog"

	application "wattline/contexts/identity-access/profile-service/application"
	domainerrors "wattline/contexts/identity-access/profile-service/domain/errors"
	"wattline/contexts/identity-access/profile-service/ports"
	"wattline/internal/shared/events"
)

// DeleteAccountUseCase runs the delete-account saga. The synchronous
// credential delete must succeed before the local profile row is removed:
// if it fails, the whole operation aborts and the profile is preserved, so
// no profile is ever orphaned without a credential. Device-registry cleanup
// is broadcast after local commit and is not part of the abort path.
type DeleteAccountUseCase struct {
	Profiles    ports.ProfileRepository
	Credentials ports.CredentialDeleter
	Publisher   ports.EventPublisher
	Logger      *slog.Logger
}

func (u DeleteAccountUseCase) Execute(ctx context.Context, credentialID int64) error {
	logger := application.ResolveLogger(u.Logger)

	_, exists, err := u.Profiles.GetByCredentialID(ctx, credentialID)
	if err != nil {
		return err
	}
	if !exists {
		return domainerrors.ErrProfileNotFound
	}

	if err := u.Credentials.DeleteCredential(ctx, credentialID); err != nil {
		logger.Error("delete account aborted, credential delete failed",
			"event", "delete_account_aborted",
			"module", "identity-access/profile-service",
			"layer", "application",
			"credential_id", credentialID,
			"error", err.Error(),
		)
		return err
	}

	if _, err := u.Profiles.DeleteByCredentialID(ctx, credentialID); err != nil {
		return err
	}

	u.broadcast(ctx, logger, events.TypeDeleteAuth, events.AuthDeleted{CredentialID: credentialID})
	u.broadcast(ctx, logger, events.TypeDeleteDeviceUser, events.DeviceUserDeleted{OwnerID: credentialID})

	logger.Info("account deleted",
		"event", "delete_account_committed",
		"module", "identity-access/profile-service",
		"layer", "application",
		"credential_id", credentialID,
	)
	return nil
}

func (u DeleteAccountUseCase) broadcast(ctx context.Context, logger *slog.Logger, eventType string, payload any) {
	envelope, err := events.New(eventType, senderName, payload)
	if err == nil {
		err = u.Publisher.Publish(ctx, events.TopicProfileCRUD, envelope)
	}
	if err != nil {
		// Devices may stay assigned to a deleted owner until manual
		// remediation; there is no automatic reconciliation.
		logger.Warn("delete broadcast failed, downstream state may drift",
			"event", "delete_account_broadcast_failed",
			"module", "identity-access/profile-service",
			"layer", "application",
			"event_type", eventType,
			"error", err.Error(),
		)
	}
}
