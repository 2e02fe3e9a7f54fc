package queries

import (
	"context"
	"log/slog"

	"wattline/contexts/device-fleet/registry-service/domain/entities"
	"wattline/contexts/device-fleet/registry-service/ports"
)

type ListDevicesUseCase struct {
	Devices ports.DeviceRepository
	Logger  *slog.Logger
}

func (u ListDevicesUseCase) Execute(ctx context.Context) ([]entities.Device, error) {
	return u.Devices.List(ctx)
}

type ListOwnerDevicesUseCase struct {
	Devices ports.DeviceRepository
	Logger  *slog.Logger
}

func (u ListOwnerDevicesUseCase) Execute(ctx context.Context, ownerID int64) ([]entities.Device, error) {
	return u.Devices.ListByOwner(ctx, ownerID)
}
