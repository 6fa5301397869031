package gitea

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"prnotify/internal/domain"
)

// Client is the Gitea user directory. Only the email lookup is needed:
// webhook payloads carry anonymized noreply addresses, the directory holds
// the real ones.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type userResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// LookupEmail fetches the authoritative email for a username via
// GET /users/{username}. A 404 maps to domain.ErrNotFound.
func (c *Client) LookupEmail(ctx context.Context, username string) (string, error) {
	reqURL := c.baseURL + "/users/" + url.PathEscape(username)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "token "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gitea user lookup: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("gitea user %q: %w", username, domain.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gitea user lookup returned %d: %s", resp.StatusCode, body)
	}

	var u userResponse
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return "", fmt.Errorf("gitea user lookup decode: %w", err)
	}
	return u.Email, nil
}
