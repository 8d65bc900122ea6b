package daemon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iudanet/fieldsync/internal/client/capture"
	"github.com/iudanet/fieldsync/internal/client/conflict"
	"github.com/iudanet/fieldsync/internal/models"
	"github.com/iudanet/fieldsync/pkg/api"
)

// ErrNotFound is returned by ObserverClient for 404 responses
var ErrNotFound = errors.New("not found")

// ObserverClient talks to the observer API of a running daemon.
// Its methods mirror App so the CLI can use either.
type ObserverClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewObserverClient creates a client for the observer listening on addr (host:port)
func NewObserverClient(addr string) *ObserverClient {
	base := addr
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	return &ObserverClient{
		baseURL:    strings.TrimRight(base, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Close is a no-op
func (c *ObserverClient) Close() error {
	return nil
}

// Status returns the daemon status
func (c *ObserverClient) Status(ctx context.Context) (*Status, error) {
	var st Status
	if err := c.do(ctx, http.MethodGet, "/api/v1/status", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Pending returns queued records
func (c *ObserverClient) Pending(ctx context.Context) ([]*models.OfflineRecord, error) {
	var records []*models.OfflineRecord
	if err := c.do(ctx, http.MethodGet, "/api/v1/pending", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Sync asks the daemon for a manual drain. The drain runs in the daemon,
// so no outcome is returned.
func (c *ObserverClient) Sync(ctx context.Context) (*models.SyncOutcome, error) {
	if err := c.do(ctx, http.MethodPost, "/api/v1/sync", nil, nil); err != nil {
		return nil, err
	}
	return nil, nil
}

// Conflicts returns open conflicts
func (c *ObserverClient) Conflicts(ctx context.Context) ([]*models.ConflictItem, error) {
	var items []*models.ConflictItem
	if err := c.do(ctx, http.MethodGet, "/api/v1/conflicts", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Resolve applies a manual resolution
func (c *ObserverClient) Resolve(ctx context.Context, id string, req ResolveRequest) (*conflict.Resolution, error) {
	var res conflict.Resolution
	path := "/api/v1/conflicts/" + url.PathEscape(id) + "/resolve"
	if err := c.do(ctx, http.MethodPost, path, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Dismiss drops a conflict
func (c *ObserverClient) Dismiss(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/conflicts/"+url.PathEscape(id), nil, nil)
}

// SubmitComplaint queues a complaint in the daemon
func (c *ObserverClient) SubmitComplaint(ctx context.Context, complaint models.Complaint) (*capture.Receipt, error) {
	var receipt capture.Receipt
	if err := c.do(ctx, http.MethodPost, "/api/v1/complaints", complaint, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// AttachMedia queues an attachment in the daemon
func (c *ObserverClient) AttachMedia(ctx context.Context, m models.MediaAttachment) (*capture.Receipt, error) {
	var receipt capture.Receipt
	if err := c.do(ctx, http.MethodPost, "/api/v1/media", m, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// RefreshConfig asks the daemon to refresh cached configuration
func (c *ObserverClient) RefreshConfig(ctx context.Context) (int, error) {
	var resp struct {
		Keys int `json:"keys"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/config/refresh", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Keys, nil
}

// Config returns a cached configuration value
func (c *ObserverClient) Config(ctx context.Context, key string) ([]byte, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/v1/config/"+url.PathEscape(key), nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// ConfigKeys returns cached configuration keys
func (c *ObserverClient) ConfigKeys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := c.do(ctx, http.MethodGet, "/api/v1/config", nil, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

func (c *ObserverClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("daemon is not reachable: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		var errResp api.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		switch resp.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrNotFound, errResp.Message)
		case http.StatusServiceUnavailable:
			return fmt.Errorf("%w: %s", ErrDegraded, errResp.Message)
		}
		return fmt.Errorf("daemon error (%d): %s", resp.StatusCode, errResp.Message)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
