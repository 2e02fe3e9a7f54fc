package workers

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	application "wattline/contexts/telemetry/monitoring-service/application"
	"wattline/contexts/telemetry/monitoring-service/domain/entities"
	"wattline/contexts/telemetry/monitoring-service/ports"
	"wattline/internal/shared/events"
)

// DeviceEventsConsumer keeps the device-to-owner projection in sync with
// registry broadcasts. add_device is deduplicated on device id; a replayed
// event never creates a second mapping. delete_device drops the mapping and
// cascades the device's readings.
type DeviceEventsConsumer struct {
	Subscriber ports.EventSubscriber
	Mappings   ports.MappingRepository
	Readings   ports.ReadingRepository
	Logger     *slog.Logger
}

func (c DeviceEventsConsumer) Start(ctx context.Context) error {
	return c.Subscriber.Subscribe(ctx, events.TopicDeviceCRUD, c.handle)
}

func (c DeviceEventsConsumer) handle(ctx context.Context, envelope events.Envelope) error {
	switch envelope.Type {
	case events.TypeAddDevice:
		return c.handleDeviceAdded(ctx, envelope)
	case events.TypeDeleteDevice:
		return c.handleDeviceDeleted(ctx, envelope)
	default:
		return nil
	}
}

func (c DeviceEventsConsumer) handleDeviceAdded(ctx context.Context, envelope events.Envelope) error {
	logger := application.ResolveLogger(c.Logger)

	var payload events.DeviceAdded
	if err := envelope.Payload(&payload); err != nil {
		return err
	}

	_, exists, err := c.Mappings.GetByDeviceID(ctx, payload.DeviceID)
	if err != nil {
		return err
	}
	if exists {
		logger.Info("add_device replay ignored",
			"event", "monitoring_mapping_replayed",
			"module", "telemetry/monitoring-service",
			"layer", "worker",
			"device_id", payload.DeviceID,
		)
		return nil
	}

	if err := c.Mappings.Create(ctx, entities.DeviceMapping{
		MappingKey: uuid.NewString(),
		DeviceID:   payload.DeviceID,
		OwnerID:    payload.OwnerID,
	}); err != nil {
		return err
	}

	logger.Info("device mapping created",
		"event", "monitoring_mapping_created",
		"module", "telemetry/monitoring-service",
		"layer", "worker",
		"device_id", payload.DeviceID,
		"owner_id", payload.OwnerID,
	)
	return nil
}

func (c DeviceEventsConsumer) handleDeviceDeleted(ctx context.Context, envelope events.Envelope) error {
	logger := application.ResolveLogger(c.Logger)

	var payload events.DeviceDeleted
	if err := envelope.Payload(&payload); err != nil {
		return err
	}

	existed, err := c.Mappings.Delete(ctx, payload.DeviceID)
	if err != nil {
		return err
	}
	dropped, err := c.Readings.DeleteByDevice(ctx, payload.DeviceID)
	if err != nil {
		return err
	}

	if !existed {
		logger.Info("delete_device for unknown mapping ignored",
			"event", "monitoring_mapping_delete_noop",
			"module", "telemetry/monitoring-service",
			"layer", "worker",
			"device_id", payload.DeviceID,
		)
		return nil
	}

	logger.Info("device mapping removed",
		"event", "monitoring_mapping_deleted",
		"module", "telemetry/monitoring-service",
		"layer", "worker",
		"device_id", payload.DeviceID,
		"readings_dropped", dropped,
	)
	return nil
}
