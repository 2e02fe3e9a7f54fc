package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"wattline/contexts/telemetry/device-simulator/ports"
	"wattline/internal/shared/collab"
)

const requestTimeout = 5 * time.Second

// RegistryClient fetches the device catalog from the registry read API.
type RegistryClient struct {
	baseURL string
	client  *http.Client
}

func NewRegistryClient(baseURL string) *RegistryClient {
	return &RegistryClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

type deviceListResponse struct {
	Devices []struct {
		DeviceID int64 `json:"device_id"`
		OwnerID  int64 `json:"owner_id"`
	} `json:"devices"`
}

func (c *RegistryClient) ListDevices(ctx context.Context) ([]ports.SimulatedDevice, error) {
	url := c.baseURL + "/api/fleet/v1/devices"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build list-devices request: %w", err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call registry service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, collab.NewError(resp.StatusCode, respBody)
	}

	var payload deviceListResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode list-devices response: %w", err)
	}

	devices := make([]ports.SimulatedDevice, 0, len(payload.Devices))
	for _, device := range payload.Devices {
		devices = append(devices, ports.SimulatedDevice{
			DeviceID: device.DeviceID,
			OwnerID:  device.OwnerID,
		})
	}
	return devices, nil
}
