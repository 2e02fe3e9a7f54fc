package workers

import (
	"context"
	"log/slog"

	application "wattline/contexts/device-fleet/registry-service/application"
	"wattline/contexts/device-fleet/registry-service/domain/entities"
	"wattline/contexts/device-fleet/registry-service/ports"
	"wattline/internal/shared/events"
)

// ProfileEventsConsumer applies profile-crud broadcasts to the registry:
// display-name refreshes and owner deletions. Deleting an owner never
// deletes devices; they are reassigned to the unassigned sentinel.
type ProfileEventsConsumer struct {
	Subscriber ports.EventSubscriber
	Devices    ports.DeviceRepository
	Owners     ports.OwnerRepository
	Logger     *slog.Logger
}

func (c ProfileEventsConsumer) Start(ctx context.Context) error {
	return c.Subscriber.Subscribe(ctx, events.TopicProfileCRUD, c.handle)
}

func (c ProfileEventsConsumer) handle(ctx context.Context, envelope events.Envelope) error {
	switch envelope.Type {
	case events.TypeUpdateUserInDevices:
		return c.handleUserUpdated(ctx, envelope)
	case events.TypeDeleteDeviceUser:
		return c.handleUserDeleted(ctx, envelope)
	default:
		// Other profile-crud events are addressed to the credential service.
		return nil
	}
}

func (c ProfileEventsConsumer) handleUserUpdated(ctx context.Context, envelope events.Envelope) error {
	logger := application.ResolveLogger(c.Logger)

	var payload events.UserInDevicesUpdated
	if err := envelope.Payload(&payload); err != nil {
		return err
	}

	_, exists, err := c.Owners.Get(ctx, payload.OwnerID)
	if err != nil {
		return err
	}
	if !exists {
		logger.Info("display-name refresh for unknown owner ignored",
			"event", "registry_owner_update_skipped",
			"module", "device-fleet/registry-service",
			"layer", "worker",
			"owner_id", payload.OwnerID,
		)
		return nil
	}

	if err := c.Owners.Upsert(ctx, entities.Owner{
		OwnerID:     payload.OwnerID,
		DisplayName: payload.DisplayName,
	}); err != nil {
		return err
	}

	logger.Info("owner display name refreshed",
		"event", "registry_owner_update_applied",
		"module", "device-fleet/registry-service",
		"layer", "worker",
		"owner_id", payload.OwnerID,
	)
	return nil
}

func (c ProfileEventsConsumer) handleUserDeleted(ctx context.Context, envelope events.Envelope) error {
	logger := application.ResolveLogger(c.Logger)

	var payload events.DeviceUserDeleted
	if err := envelope.Payload(&payload); err != nil {
		return err
	}

	reassigned, err := c.Devices.ReassignOwner(ctx, payload.OwnerID, entities.UnassignedOwnerID)
	if err != nil {
		return err
	}
	if _, err := c.Owners.Delete(ctx, payload.OwnerID); err != nil {
		return err
	}

	// Zero reassigned rows is the replay / no-devices case; still fine.
	logger.Info("owner removed, devices unassigned",
		"event", "registry_owner_unassigned",
		"module", "device-fleet/registry-service",
		"layer", "worker",
		"owner_id", payload.OwnerID,
		"devices_unassigned", reassigned,
	)
	return nil
}
