package workers

import (
	"context"
	"log/slog"

	application "wattline/contexts/identity-access/credential-service/application"
	"wattline/contexts/identity-access/credential-service/ports"
	"wattline/internal/shared/events"
)

// ProfileEventsConsumer applies profile-crud broadcasts to the credential
// table. Handlers are idempotent: a missing record on update or delete is a
// benign replay, logged and acknowledged, never returned to the bus layer.
type ProfileEventsConsumer struct {
	Subscriber  ports.EventSubscriber
	Credentials ports.CredentialRepository
	Logger      *slog.Logger
}

func (c ProfileEventsConsumer) Start(ctx context.Context) error {
	return c.Subscriber.Subscribe(ctx, events.TopicProfileCRUD, c.handle)
}

func (c ProfileEventsConsumer) handle(ctx context.Context, envelope events.Envelope) error {
	switch envelope.Type {
	case events.TypeUpdateAuthProfile:
		return c.handleProfileUpdated(ctx, envelope)
	case events.TypeDeleteAuth:
		return c.handleAuthDeleted(ctx, envelope)
	default:
		// Other profile-crud events are addressed to the device registry.
		return nil
	}
}

func (c ProfileEventsConsumer) handleProfileUpdated(ctx context.Context, envelope events.Envelope) error {
	logger := application.ResolveLogger(c.Logger)

	var payload events.AuthProfileUpdated
	if err := envelope.Payload(&payload); err != nil {
		return err
	}

	credential, exists, err := c.Credentials.GetByID(ctx, payload.CredentialID)
	if err != nil {
		return err
	}
	if !exists {
		logger.Info("profile update for unknown credential ignored",
			"event", "credential_profile_update_skipped",
			"module", "identity-access/credential-service",
			"layer", "worker",
			"credential_id", payload.CredentialID,
		)
		return nil
	}

	if payload.Username != "" {
		credential.Username = payload.Username
	}
	if payload.Email != "" {
		credential.Email = payload.Email
	}
	if err := c.Credentials.Update(ctx, credential); err != nil {
		return err
	}

	logger.Info("credential synced from profile update",
		"event", "credential_profile_update_applied",
		"module", "identity-access/credential-service",
		"layer", "worker",
		"credential_id", payload.CredentialID,
	)
	return nil
}

func (c ProfileEventsConsumer) handleAuthDeleted(ctx context.Context, envelope events.Envelope) error {
	logger := application.ResolveLogger(c.Logger)

	var payload events.AuthDeleted
	if err := envelope.Payload(&payload); err != nil {
		return err
	}

	existed, err := c.Credentials.Delete(ctx, payload.CredentialID)
	if err != nil {
		return err
	}
	if !existed {
		// The delete-account saga removes the credential synchronously
		// before this event arrives; replay and race are both expected.
		logger.Info("delete_auth for missing credential ignored",
			"event", "credential_delete_auth_noop",
			"module", "identity-access/credential-service",
			"layer", "worker",
			"credential_id", payload.CredentialID,
		)
		return nil
	}

	logger.Info("credential removed by delete_auth event",
		"event", "credential_delete_auth_applied",
		"module", "identity-access/credential-service",
		"layer", "worker",
		"credential_id", payload.CredentialID,
	)
	return nil
}
