package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/fieldsync/pkg/api"
)

// DefaultTimeout таймаут HTTP клиента по умолчанию
const DefaultTimeout = 30 * time.Second

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return NewClientWithTimeout(baseURL, DefaultTimeout)
}

// NewClientWithTimeout создает API клиент с заданным таймаутом
func NewClientWithTimeout(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		},
	}
}

// BaseURL returns the server address the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SubmitComplaint отправляет жалобу на сервер
func (c *Client) SubmitComplaint(ctx context.Context, req api.Complaint) (*api.SubmitResponse, error) {
	var resp api.SubmitResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/complaints", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("submit complaint request failed: %w", err)
	}
	return &resp, nil
}

// FetchComplaint получает авторитетную версию жалобы по business key
func (c *Client) FetchComplaint(ctx context.Context, businessKey string) (*api.ComplaintResponse, error) {
	var resp api.ComplaintResponse
	path := "/api/v1/complaints/" + url.PathEscape(businessKey)
	err := c.doRequest(ctx, http.MethodGet, path, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch complaint request failed: %w", err)
	}
	return &resp, nil
}

// UpdateComplaint обновляет поля жалобы на сервере
func (c *Client) UpdateComplaint(ctx context.Context, businessKey string, req api.UpdateComplaintRequest) (*api.ComplaintResponse, error) {
	var resp api.ComplaintResponse
	path := "/api/v1/complaints/" + url.PathEscape(businessKey)
	err := c.doRequest(ctx, http.MethodPatch, path, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("update complaint request failed: %w", err)
	}
	return &resp, nil
}

// UploadMedia загружает вложение
func (c *Client) UploadMedia(ctx context.Context, req api.MediaUploadRequest) (*api.MediaUploadResponse, error) {
	var resp api.MediaUploadResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/media", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("upload media request failed: %w", err)
	}
	return &resp, nil
}

// FetchConfig получает конфигурацию для offline-кеша
func (c *Client) FetchConfig(ctx context.Context) (*api.ConfigResponse, error) {
	var resp api.ConfigResponse
	err := c.doRequest(ctx, http.MethodGet, "/api/v1/config", nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch config request failed: %w", err)
	}
	return &resp, nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	endpoint := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(ctx, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %w", ErrRemoteUnavailable, err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, respBody)
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// classifyTransportError отделяет отсутствие сети от зависшего сервера.
// Таймаут означает, что сервер достижим, но не ответил вовремя.
func classifyTransportError(ctx context.Context, err error) error {
	// Отмена вызывающей стороной (shutdown) не является ошибкой сервера
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %w", ErrNetworkUnavailable, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
	}
	return fmt.Errorf("%w: %w", ErrNetworkUnavailable, err)
}

// statusError maps a non-2xx status to the error taxonomy
func statusError(statusCode int, respBody []byte) error {
	var kind error
	switch {
	case statusCode == http.StatusNotFound:
		kind = ErrNotFound
	case statusCode == http.StatusTooManyRequests || statusCode >= 500:
		kind = ErrRemoteUnavailable
	default:
		kind = ErrRemoteRejected
	}

	var errResp api.ErrorResponse
	if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
		return fmt.Errorf("%w: server error (%d): %s", kind, statusCode, errResp.Message)
	}
	return fmt.Errorf("%w: request failed with status %d: %s", kind, statusCode, strings.TrimSpace(string(respBody)))
}
