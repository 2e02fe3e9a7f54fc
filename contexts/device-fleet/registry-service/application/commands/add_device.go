package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "wattline/contexts/device-fleet/registry-service/application"
	"wattline/contexts/device-fleet/registry-service/domain/entities"
	domainerrors "wattline/contexts/device-fleet/registry-service/domain/errors"
	"wattline/contexts/device-fleet/registry-service/ports"
	"wattline/internal/shared/events"
)

const senderName = "registry-service"

type AddDeviceCommand struct {
	OwnerID        int64
	Name           string
	Status         string
	MaxConsumption float64
}

// AddDeviceUseCase registers a device. A missing owner projection is
// self-healed: identity broadcasts are best-effort, so a device create may
// arrive before (or instead of) the add_owner event.
type AddDeviceUseCase struct {
	Devices   ports.DeviceRepository
	Owners    ports.OwnerRepository
	Publisher ports.EventPublisher
	Logger    *slog.Logger
}

func (u AddDeviceUseCase) Execute(ctx context.Context, cmd AddDeviceCommand) (entities.Device, error) {
	logger := application.ResolveLogger(u.Logger)

	if cmd.OwnerID <= 0 || strings.TrimSpace(cmd.Name) == "" || cmd.MaxConsumption <= 0 {
		return entities.Device{}, domainerrors.ErrMissingFields
	}

	_, exists, err := u.Owners.Get(ctx, cmd.OwnerID)
	if err != nil {
		return entities.Device{}, err
	}
	if !exists {
		if err := u.Owners.Upsert(ctx, entities.Owner{OwnerID: cmd.OwnerID}); err != nil {
			return entities.Device{}, err
		}
		logger.Warn("owner projection missing, created from device registration",
			"event", "registry_owner_self_healed",
			"module", "device-fleet/registry-service",
			"layer", "application",
			"owner_id", cmd.OwnerID,
		)
	}

	status := cmd.Status
	if status == "" {
		status = "active"
	}

	device, err := u.Devices.Create(ctx, entities.Device{
		OwnerID:        cmd.OwnerID,
		Name:           cmd.Name,
		Status:         status,
		MaxConsumption: cmd.MaxConsumption,
		CreatedAt:      time.Now().UTC(),
	})
	if err != nil {
		return entities.Device{}, err
	}

	logger.Info("device registered",
		"event", "add_device_committed",
		"module", "device-fleet/registry-service",
		"layer", "application",
		"device_id", device.DeviceID,
		"owner_id", device.OwnerID,
	)

	u.broadcastDeviceAdded(ctx, logger, device)
	return device, nil
}

// broadcastDeviceAdded is best-effort: the local commit stands even when
// the broker is unreachable.
func (u AddDeviceUseCase) broadcastDeviceAdded(ctx context.Context, logger *slog.Logger, device entities.Device) {
	envelope, err := events.New(events.TypeAddDevice, senderName, events.DeviceAdded{
		DeviceID: device.DeviceID,
		OwnerID:  device.OwnerID,
	})
	if err == nil {
		err = u.Publisher.Publish(ctx, events.TopicDeviceCRUD, envelope)
	}
	if err != nil {
		logger.Error("add_device broadcast failed",
			"event", "add_device_broadcast_failed",
			"module", "device-fleet/registry-service",
			"layer", "application",
			"device_id", device.DeviceID,
			"error", err,
		)
	}
}
