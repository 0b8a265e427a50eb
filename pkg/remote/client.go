package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"ai-canvas-be/internal/entity"

	"github.com/cenkalti/backoff/v5"
)

// Client talks to the remote canvas backend. Transient failures (5xx, 429,
// network errors) are retried with exponential backoff up to a fixed attempt
// cap; other HTTP errors fail immediately.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	maxTries   uint
}

type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (used by tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithMaxTries overrides the retry attempt cap.
func WithMaxTries(n uint) Option {
	return func(c *Client) { c.maxTries = n }
}

func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxTries: 4,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchChats returns the user's chats as known to the remote backend.
func (c *Client) FetchChats(ctx context.Context, userId string) ([]*entity.Chat, error) {
	var chats []*entity.Chat
	err := c.doJSON(ctx, http.MethodGet, "/users/"+url.PathEscape(userId)+"/chats", nil, &chats)
	return chats, err
}

// FetchMessages returns the user's messages, each tagged with its chat_id.
func (c *Client) FetchMessages(ctx context.Context, userId string) ([]*entity.ChatMessage, error) {
	var messages []*entity.ChatMessage
	err := c.doJSON(ctx, http.MethodGet, "/users/"+url.PathEscape(userId)+"/messages", nil, &messages)
	return messages, err
}

// FetchArtifacts returns the user's artifacts with their full version lists.
func (c *Client) FetchArtifacts(ctx context.Context, userId string) ([]*entity.Artifact, error) {
	var artifacts []*entity.Artifact
	err := c.doJSON(ctx, http.MethodGet, "/users/"+url.PathEscape(userId)+"/artifacts", nil, &artifacts)
	return artifacts, err
}

// FetchUser returns the remote user record, or nil when the backend has none.
func (c *Client) FetchUser(ctx context.Context, userId string) (*entity.UserPreferences, error) {
	var prefs *entity.UserPreferences
	err := c.doJSON(ctx, http.MethodGet, "/users/"+url.PathEscape(userId), nil, &prefs)
	return prefs, err
}

// UpsertUser creates or replaces the remote user record.
func (c *Client) UpsertUser(ctx context.Context, userId string, prefs *entity.UserPreferences) error {
	return c.doJSON(ctx, http.MethodPut, "/users/"+url.PathEscape(userId), prefs, nil)
}

// UploadChat pushes one chat to the remote backend.
func (c *Client) UploadChat(ctx context.Context, userId string, chat *entity.Chat) error {
	return c.doJSON(ctx, http.MethodPost, "/users/"+url.PathEscape(userId)+"/chats", chat, nil)
}

// UploadMessage pushes one message to the remote backend.
func (c *Client) UploadMessage(ctx context.Context, userId string, msg *entity.ChatMessage) error {
	return c.doJSON(ctx, http.MethodPost, "/users/"+url.PathEscape(userId)+"/messages", msg, nil)
}

// UploadArtifact pushes one artifact to the remote backend.
func (c *Client) UploadArtifact(ctx context.Context, userId string, artifact *entity.Artifact) error {
	return c.doJSON(ctx, http.MethodPost, "/users/"+url.PathEscape(userId)+"/artifacts", artifact, nil)
}

// UpdateArtifactVersions replaces the stored version list of one artifact.
func (c *Client) UpdateArtifactVersions(ctx context.Context, artifactId string, versions []entity.ArtifactVersion) error {
	var res struct {
		Success bool   `json:"success"`
		Error   string `json:"error,omitempty"`
	}
	path := "/artifacts/" + url.PathEscape(artifactId) + "/versions"
	if err := c.doJSON(ctx, http.MethodPut, path, versions, &res); err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("update versions for artifact %s rejected: %s", artifactId, res.Error)
	}
	return nil
}

// doJSON performs one JSON request with retry. out may be nil when the
// response body is irrelevant.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
	}

	operation := func() ([]byte, error) {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err // network errors are retriable
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return nil, fmt.Errorf("%s %s: transient status %d", method, path, resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			return nil, backoff.Permanent(fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, data))
		}

		return data, nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 300 * time.Millisecond
	bo.MaxInterval = 5 * time.Second

	data, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(c.maxTries),
	)
	if err != nil {
		return err
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response of %s %s: %w", method, path, err)
		}
	}
	return nil
}
