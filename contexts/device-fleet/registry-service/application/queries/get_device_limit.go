package queries

import (
	"context"
	"log/slog"

	domainerrors "wattline/contexts/device-fleet/registry-service/domain/errors"
	"wattline/contexts/device-fleet/registry-service/ports"
)

// GetDeviceLimitUseCase serves the monitoring service's threshold lookup.
type GetDeviceLimitUseCase struct {
	Devices ports.DeviceRepository
	Logger  *slog.Logger
}

func (u GetDeviceLimitUseCase) Execute(ctx context.Context, deviceID int64) (float64, error) {
	device, exists, err := u.Devices.GetByID(ctx, deviceID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, domainerrors.ErrDeviceNotFound
	}
	return device.MaxConsumption, nil
}
