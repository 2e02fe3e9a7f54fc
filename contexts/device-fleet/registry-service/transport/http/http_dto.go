package httptransport

type AddDeviceRequest struct {
	OwnerID        int64   `json:"owner_id"`
	Name           string  `json:"name"`
	Status         string  `json:"status,omitempty"`
	MaxConsumption float64 `json:"max_consumption"`
}

type EditDeviceRequest struct {
	Name           string  `json:"name,omitempty"`
	Status         string  `json:"status,omitempty"`
	MaxConsumption float64 `json:"max_consumption,omitempty"`
}

type DeviceDTO struct {
	DeviceID       int64   `json:"device_id"`
	OwnerID        int64   `json:"owner_id"`
	Name           string  `json:"name"`
	Status         string  `json:"status"`
	MaxConsumption float64 `json:"max_consumption"`
}

type ListDevicesResponse struct {
	Devices []DeviceDTO `json:"devices"`
}

// DeviceLimitResponse is the contract the monitoring service reads.
type DeviceLimitResponse struct {
	MaxConsumption float64 `json:"maxConsumption"`
}

type StatusResponse struct {
	OK string `json:"ok"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
