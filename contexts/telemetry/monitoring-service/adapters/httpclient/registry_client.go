package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"wattline/internal/shared/collab"
)

const requestTimeout = 5 * time.Second

// RegistryClient resolves device consumption limits from the registry read
// API.
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

type deviceLimitResponse struct {
	MaxConsumption float64 `json:"maxConsumption"`
}

func (c *RegistryClient) DeviceLimit(ctx context.Context, deviceID int64) (float64, error) {
	url := fmt.Sprintf("%s/api/fleet/v1/devices/%d/max", c.baseURL, deviceID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("build device-limit request: %w", err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("call registry service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return 0, collab.NewError(resp.StatusCode, respBody)
	}

	var payload deviceLimitResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("decode device-limit response: %w", err)
	}
	return payload.MaxConsumption, nil
}
