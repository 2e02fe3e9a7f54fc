package httpadapter

import (
	"context"
	"log/slog"

	"wattline/contexts/device-fleet/registry-service/application/commands"
	"wattline/contexts/device-fleet/registry-service/application/queries"
	"wattline/contexts/device-fleet/registry-service/domain/entities"
	httptransport "wattline/contexts/device-fleet/registry-service/transport/http"
)

type Handler struct {
	AddDevice        commands.AddDeviceUseCase
	EditDevice       commands.EditDeviceUseCase
	DeleteDevice     commands.DeleteDeviceUseCase
	ListDevices      queries.ListDevicesUseCase
	ListOwnerDevices queries.ListOwnerDevicesUseCase
	GetDeviceLimit   queries.GetDeviceLimitUseCase
	Logger           *slog.Logger
}

func (h Handler) AddDeviceHandler(ctx context.Context, req httptransport.AddDeviceRequest) (httptransport.DeviceDTO, error) {
	device, err := h.AddDevice.Execute(ctx, commands.AddDeviceCommand{
		OwnerID:        req.OwnerID,
		Name:           req.Name,
		Status:         req.Status,
		MaxConsumption: req.MaxConsumption,
	})
	if err != nil {
		return httptransport.DeviceDTO{}, err
	}
	return toDTO(device), nil
}

func (h Handler) EditDeviceHandler(ctx context.Context, deviceID int64, req httptransport.EditDeviceRequest) (httptransport.DeviceDTO, error) {
	device, err := h.EditDevice.Execute(ctx, commands.EditDeviceCommand{
		DeviceID:       deviceID,
		Name:           req.Name,
		Status:         req.Status,
		MaxConsumption: req.MaxConsumption,
	})
	if err != nil {
		return httptransport.DeviceDTO{}, err
	}
	return toDTO(device), nil
}

func (h Handler) DeleteDeviceHandler(ctx context.Context, deviceID int64) error {
	return h.DeleteDevice.Execute(ctx, deviceID)
}

func (h Handler) ListDevicesHandler(ctx context.Context) (httptransport.ListDevicesResponse, error) {
	devices, err := h.ListDevices.Execute(ctx)
	if err != nil {
		return httptransport.ListDevicesResponse{}, err
	}
	return toListResponse(devices), nil
}

func (h Handler) ListOwnerDevicesHandler(ctx context.Context, ownerID int64) (httptransport.ListDevicesResponse, error) {
	devices, err := h.ListOwnerDevices.Execute(ctx, ownerID)
	if err != nil {
		return httptransport.ListDevicesResponse{}, err
	}
	return toListResponse(devices), nil
}

func (h Handler) DeviceLimitHandler(ctx context.Context, deviceID int64) (httptransport.DeviceLimitResponse, error) {
	limit, err := h.GetDeviceLimit.Execute(ctx, deviceID)
	if err != nil {
		return httptransport.DeviceLimitResponse{}, err
	}
	return httptransport.DeviceLimitResponse{MaxConsumption: limit}, nil
}

func toDTO(device entities.Device) httptransport.DeviceDTO {
	return httptransport.DeviceDTO{
		DeviceID:       device.DeviceID,
		OwnerID:        device.OwnerID,
		Name:           device.Name,
		Status:         device.Status,
		MaxConsumption: device.MaxConsumption,
	}
}

func toListResponse(devices []entities.Device) httptransport.ListDevicesResponse {
	items := make([]httptransport.DeviceDTO, 0, len(devices))
	for _, device := range devices {
		items = append(items, toDTO(device))
	}
	return httptransport.ListDevicesResponse{Devices: items}
}
