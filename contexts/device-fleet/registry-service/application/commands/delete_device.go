package commands

import (
	"context"
	"log/slog"

	application "wattline/contexts/device-fleet/registry-service/application"
	domainerrors "wattline/contexts/device-fleet/registry-service/domain/errors"
	"wattline/contexts/device-fleet/registry-service/ports"
	"wattline/internal/shared/events"
)

type DeleteDeviceUseCase struct {
	Devices   ports.DeviceRepository
	Publisher ports.EventPublisher
	Logger    *slog.Logger
}

func (u DeleteDeviceUseCase) Execute(ctx context.Context, deviceID int64) error {
	logger := application.ResolveLogger(u.Logger)

	existed, err := u.Devices.Delete(ctx, deviceID)
	if err != nil {
		return err
	}
	if !existed {
		return domainerrors.ErrDeviceNotFound
	}

	logger.Info("device removed",
		"event", "delete_device_committed",
		"module", "device-fleet/registry-service",
		"layer", "application",
		"device_id", deviceID,
	)

	// Best-effort broadcast so monitoring drops its mapping and readings.
	envelope, err := events.New(events.TypeDeleteDevice, senderName, events.DeviceDeleted{DeviceID: deviceID})
	if err == nil {
		err = u.Publisher.Publish(ctx, events.TopicDeviceCRUD, envelope)
	}
	if err != nil {
		logger.Error("delete_device broadcast failed",
			"event", "delete_device_broadcast_failed",
			"module", "device-fleet/registry-service",
			"layer", "application",
			"device_id", deviceID,
			"error", err,
		)
	}
	return nil
}
