package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"wattline/contexts/identity-access/credential-service/ports"
	"wattline/internal/shared/collab"
)

const requestTimeout = 5 * time.Second

// ProfileClient is the synchronous profile-service collaborator. Any
// non-201 response is returned as a *collab.Error so the register saga can
// propagate the collaborator's status and body verbatim.
type ProfileClient struct {
	baseURL string
	client  *http.Client
}

func NewProfileClient(baseURL string) *ProfileClient {
	return &ProfileClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

func (c *ProfileClient) CreateProfile(ctx context.Context, req ports.CreateProfileRequest) error {
	body, err := json.Marshal(map[string]any{
		"credential_id": req.CredentialID,
		"username":      req.Username,
		"email":         req.Email,
		"role":          req.Role,
	})
	if err != nil {
		return fmt.Errorf("marshal create-profile request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/profiles/v1/profiles", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build create-profile request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("call profile service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return collab.NewError(resp.StatusCode, respBody)
	}
	return nil
}
