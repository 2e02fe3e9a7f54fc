package ports

import (
	"context"

	"wattline/contexts/device-fleet/registry-service/domain/entities"
	"wattline/internal/shared/events"
)

// DeviceRepository owns device persistence. Lookup methods report existence
// explicitly so callers can distinguish "absent" from failure.
type DeviceRepository interface {
	GetByID(ctx context.Context, deviceID int64) (entities.Device, bool, error)
	List(ctx context.Context) ([]entities.Device, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]entities.Device, error)
	Create(ctx context.Context, device entities.Device) (entities.Device, error)
	Update(ctx context.Context, device entities.Device) error
	// Delete reports whether a row existed.
	Delete(ctx context.Context, deviceID int64) (bool, error)
	// ReassignOwner moves every device of ownerID to newOwnerID and returns
	// how many rows changed. Zero rows is a benign no-op for consumers.
	ReassignOwner(ctx context.Context, ownerID, newOwnerID int64) (int64, error)
}

// OwnerRepository owns the projection of accounts that the identity
// broadcasts feed.
type OwnerRepository interface {
	Get(ctx context.Context, ownerID int64) (entities.Owner, bool, error)
	Upsert(ctx context.Context, owner entities.Owner) error
	// Delete reports whether a row existed.
	Delete(ctx context.Context, ownerID int64) (bool, error)
}

// EventHandler matches the platform bus handler signature.
type EventHandler = func(ctx context.Context, envelope events.Envelope) error

type EventPublisher interface {
	Publish(ctx context.Context, topic string, envelope events.Envelope) error
}

type EventSubscriber interface {
	Subscribe(ctx context.Context, topic string, handler EventHandler) error
}
