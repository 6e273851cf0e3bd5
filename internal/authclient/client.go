// Package authclient validates access tokens against the auth service.
// The book service holds no signing secret; every request's identity is
// resolved through this client.
package authclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Prem324/bookshelf/internal/model"
)

const validateTimeout = 5 * time.Second

// Client calls the auth service's validate endpoint.
type Client struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: validateTimeout},
	}
}

// Validate resolves an access token to the identity it carries. A token
// the auth service rejects yields model.ErrInvalidToken; an unreachable
// auth service yields model.ErrAuthUnavailable.
func (c *Client) Validate(ctx context.Context, token string) (model.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users/validate", nil)
	if err != nil {
		return model.Identity{}, fmt.Errorf("failed to build validate request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return model.Identity{}, fmt.Errorf("%w: %w", model.ErrAuthUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized:
		return model.Identity{}, model.ErrInvalidToken
	case resp.StatusCode >= 500:
		return model.Identity{}, fmt.Errorf("%w: status %d", model.ErrAuthUnavailable, resp.StatusCode)
	default:
		return model.Identity{}, model.ErrInvalidToken
	}

	var identity model.Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return model.Identity{}, fmt.Errorf("failed to decode validate response: %w", err)
	}
	if identity.UserID <= 0 {
		return model.Identity{}, model.ErrInvalidToken
	}

	return identity, nil
}
