package slackapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"prnotify/internal/domain"
	"prnotify/internal/domain/identity"
	"prnotify/internal/domain/notify"
)

const defaultBaseURL = "https://slack.com/api"

// Client covers the two Slack Web API calls the notifier needs:
// users.lookupByEmail and chat.postMessage.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(token string) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type lookupByEmailResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	User  struct {
		ID string `json:"id"`
	} `json:"user"`
}

func (c *Client) LookupByEmail(ctx context.Context, email string) (identity.ChatUser, error) {
	reqURL := c.baseURL + "/users.lookupByEmail?email=" + url.QueryEscape(email)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return identity.ChatUser{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return identity.ChatUser{}, fmt.Errorf("slack user lookup: %w", err)
	}
	defer resp.Body.Close()

	var out lookupByEmailResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return identity.ChatUser{}, fmt.Errorf("slack user lookup decode: %w", err)
	}
	if !out.OK {
		if out.Error == "users_not_found" {
			return identity.ChatUser{}, fmt.Errorf("slack user for %q: %w", email, domain.ErrNotFound)
		}
		return identity.ChatUser{}, fmt.Errorf("slack user lookup: %s", out.Error)
	}

	return identity.ChatUser{ID: out.User.ID}, nil
}

type block struct {
	Type string     `json:"type"`
	Text *blockText `json:"text,omitempty"`
}

type blockText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type postMessageRequest struct {
	Channel  string  `json:"channel"`
	ThreadTS string  `json:"thread_ts,omitempty"`
	Blocks   []block `json:"blocks"`
}

type postMessageResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	TS    string `json:"ts"`
}

// Post sends the rendered message via chat.postMessage. An empty threadTS
// starts a new thread; the returned ts is the posted message's timestamp,
// which for a root post becomes the thread id.
func (c *Client) Post(ctx context.Context, channel string, msg notify.Message, threadTS string) (string, error) {
	payload := postMessageRequest{
		Channel:  channel,
		ThreadTS: threadTS,
		Blocks:   buildBlocks(msg),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat.postMessage", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("slack post: %w", err)
	}
	defer resp.Body.Close()

	var out postMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("slack post decode: %w", err)
	}
	if !out.OK {
		return "", fmt.Errorf("slack post: %s", out.Error)
	}
	return out.TS, nil
}

func buildBlocks(msg notify.Message) []block {
	blocks := make([]block, 0, len(msg.Sections)+1)
	if msg.Header != "" {
		blocks = append(blocks, block{
			Type: "header",
			Text: &blockText{Type: "plain_text", Text: msg.Header},
		})
	}
	for _, section := range msg.Sections {
		blocks = append(blocks, block{
			Type: "section",
			Text: &blockText{Type: "mrkdwn", Text: section},
		})
	}
	return blocks
}
