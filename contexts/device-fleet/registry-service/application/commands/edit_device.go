package commands

import (
	"context"
	"log/slog"

	application "wattline/contexts/device-fleet/registry-service/application"
	"wattline/contexts/device-fleet/registry-service/domain/entities"
	domainerrors "wattline/contexts/device-fleet/registry-service/domain/errors"
	"wattline/contexts/device-fleet/registry-service/ports"
)

type EditDeviceCommand struct {
	DeviceID       int64
	Name           string
	Status         string
	MaxConsumption float64
}

type EditDeviceUseCase struct {
	Devices ports.DeviceRepository
	Logger  *slog.Logger
}

func (u EditDeviceUseCase) Execute(ctx context.Context, cmd EditDeviceCommand) (entities.Device, error) {
	logger := application.ResolveLogger(u.Logger)

	device, exists, err := u.Devices.GetByID(ctx, cmd.DeviceID)
	if err != nil {
		return entities.Device{}, err
	}
	if !exists {
		return entities.Device{}, domainerrors.ErrDeviceNotFound
	}

	if cmd.Name != "" {
		device.Name = cmd.Name
	}
	if cmd.Status != "" {
		device.Status = cmd.Status
	}
	if cmd.MaxConsumption > 0 {
		device.MaxConsumption = cmd.MaxConsumption
	}

	if err := u.Devices.Update(ctx, device); err != nil {
		return entities.Device{}, err
	}

	logger.Info("device updated",
		"event", "edit_device_committed",
		"module", "device-fleet/registry-service",
		"layer", "application",
		"device_id", device.DeviceID,
	)
	return device, nil
}
