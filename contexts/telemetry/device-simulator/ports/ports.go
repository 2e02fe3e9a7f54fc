package ports

import (
	"context"

	"wattline/internal/shared/events"
)

// SimulatedDevice is what the simulator needs to know about a registered
// device.
type SimulatedDevice struct {
	DeviceID int64
	OwnerID  int64
}

// DeviceCatalog lists registered devices from the registry read API.
type DeviceCatalog interface {
	ListDevices(ctx context.Context) ([]SimulatedDevice, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, envelope events.Envelope) error
}
