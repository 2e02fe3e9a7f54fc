package ports

import (
	"context"
	"time"

	"wattline/contexts/telemetry/monitoring-service/domain/entities"
	"wattline/internal/shared/events"
)

// MappingRepository owns the device-to-owner projection.
type MappingRepository interface {
	GetByDeviceID(ctx context.Context, deviceID int64) (entities.DeviceMapping, bool, error)
	Create(ctx context.Context, mapping entities.DeviceMapping) error
	// Delete reports whether a row existed.
	Delete(ctx context.Context, deviceID int64) (bool, error)
}

// ReadingRepository owns persisted telemetry samples.
type ReadingRepository interface {
	Insert(ctx context.Context, reading entities.Reading) (entities.Reading, error)
	ListByOwnerAndDay(ctx context.Context, ownerID int64, day time.Time) ([]entities.Reading, error)
	// DeleteByDevice cascades a device removal and returns how many
	// readings were dropped.
	DeleteByDevice(ctx context.Context, deviceID int64) (int64, error)
}

// LimitFetcher is the registry read-API collaborator that resolves a
// device's consumption threshold.
type LimitFetcher interface {
	DeviceLimit(ctx context.Context, deviceID int64) (float64, error)
}

// EventHandler matches the platform bus handler signature.
type EventHandler = func(ctx context.Context, envelope events.Envelope) error

type EventPublisher interface {
	Publish(ctx context.Context, topic string, envelope events.Envelope) error
}

type EventSubscriber interface {
	Subscribe(ctx context.Context, topic string, handler EventHandler) error
	SubscribeKeyed(ctx context.Context, topic string, key string, handler EventHandler) error
}
