package workers

import (
	"context"
	"log/slog"

	application "wattline/contexts/device-fleet/registry-service/application"
	"wattline/contexts/device-fleet/registry-service/domain/entities"
	"wattline/contexts/device-fleet/registry-service/ports"
	"wattline/internal/shared/events"
)

// IdentityEventsConsumer projects new accounts into the registry's owner
// table. Upsert keeps the handler idempotent under redelivery.
type IdentityEventsConsumer struct {
	Subscriber ports.EventSubscriber
	Owners     ports.OwnerRepository
	Logger     *slog.Logger
}

func (c IdentityEventsConsumer) Start(ctx context.Context) error {
	return c.Subscriber.Subscribe(ctx, events.TopicIdentityEvents, c.handle)
}

func (c IdentityEventsConsumer) handle(ctx context.Context, envelope events.Envelope) error {
	if envelope.Type != events.TypeAddOwner {
		return nil
	}

	logger := application.ResolveLogger(c.Logger)

	var payload events.OwnerAdded
	if err := envelope.Payload(&payload); err != nil {
		return err
	}

	if err := c.Owners.Upsert(ctx, entities.Owner{
		OwnerID:     payload.OwnerID,
		DisplayName: payload.Username,
	}); err != nil {
		return err
	}

	logger.Info("owner projected from identity event",
		"event", "registry_owner_projected",
		"module", "device-fleet/registry-service",
		"layer", "worker",
		"owner_id", payload.OwnerID,
	)
	return nil
}
