package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"wattline/internal/shared/collab"
)

const requestTimeout = 5 * time.Second

// CredentialClient is the synchronous credential-service collaborator used
// by the delete-account saga. Any non-200 response is returned as a
// *collab.Error so the caller sees the collaborator's status and body
// verbatim.
type CredentialClient struct {
	baseURL string
	client  *http.Client
}

func NewCredentialClient(baseURL string) *CredentialClient {
	return &CredentialClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

func (c *CredentialClient) DeleteCredential(ctx context.Context, credentialID int64) error {
	url := fmt.Sprintf("%s/api/identity/v1/credentials/%d", c.baseURL, credentialID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("build delete-credential request: %w", err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("call credential service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return collab.NewError(resp.StatusCode, respBody)
	}
	return nil
}
