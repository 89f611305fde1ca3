package network

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cbodonnell/flipmatch/pkg/api/handlers"
	"github.com/cbodonnell/flipmatch/pkg/state"
)

// HTTPClient issues game commands against the REST API.
type HTTPClient struct {
	serverURL string
	client    *http.Client
}

// NewHTTPClient creates a new HTTP client.
func NewHTTPClient(serverURL string) *HTTPClient {
	return &HTTPClient{
		serverURL: strings.TrimSuffix(serverURL, "/"),
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

func (c *HTTPClient) StartGame(ctx context.Context, rows, columns int) (*state.View, error) {
	view := &state.View{}
	req := handlers.StartGameRequest{Rows: rows, Columns: columns}
	if err := c.do(ctx, http.MethodPost, "/games", req, view); err != nil {
		return nil, err
	}
	return view, nil
}

func (c *HTTPClient) SelectCard(ctx context.Context, cardID int) (*state.View, error) {
	view := &state.View{}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/cards/%d/select", cardID), nil, view); err != nil {
		return nil, err
	}
	return view, nil
}

func (c *HTTPClient) SaveGame(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/games/save", nil, nil)
}

func (c *HTTPClient) LoadGame(ctx context.Context) (bool, *state.View, error) {
	resp := handlers.LoadGameResponse{}
	if err := c.do(ctx, http.MethodPost, "/games/load", nil, &resp); err != nil {
		return false, nil, err
	}
	return resp.Loaded, resp.View, nil
}

func (c *HTTPClient) EndGame(ctx context.Context) (*state.View, error) {
	view := &state.View{}
	if err := c.do(ctx, http.MethodPost, "/games/end", nil, view); err != nil {
		return nil, err
	}
	return view, nil
}

func (c *HTTPClient) CurrentGame(ctx context.Context) (*state.View, error) {
	view := &state.View{}
	if err := c.do(ctx, http.MethodGet, "/games/current", nil, view); err != nil {
		return nil, err
	}
	return view, nil
}

func (c *HTTPClient) Resumable(ctx context.Context) (bool, error) {
	resp := handlers.ResumableResponse{}
	if err := c.do(ctx, http.MethodGet, "/games/resumable", nil, &resp); err != nil {
		return false, err
	}
	return resp.Resumable, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.serverURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errResp := handlers.ErrorResponse{}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
			errResp.Error = http.StatusText(resp.StatusCode)
		}
		return &StatusError{StatusCode: resp.StatusCode, Message: errResp.Error}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %v", err)
	}
	return nil
}
