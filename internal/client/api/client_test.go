package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/fieldsync/pkg/api"
)

// TestNewClient проверяет создание нового клиента
func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080/"
	client := NewClient(baseURL)

	assert.NotNil(t, client)
	assert.Equal(t, "http://localhost:8080", client.BaseURL())
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)

	assert.Equal(t, DefaultTimeout, NewClientWithTimeout(baseURL, 0).httpClient.Timeout)
}

// TestClient_SubmitComplaint проверяет успешную отправку жалобы
func TestClient_SubmitComplaint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Проверяем метод и путь
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/complaints", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var req api.Complaint
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "CMP-1", req.BusinessKey)
		assert.Equal(t, "Broken street light", req.Description)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(api.SubmitResponse{
			Success: true,
			Created: true,
			ID:      "srv-1",
			Complaint: &api.ComplaintResponse{
				ID:              "srv-1",
				ReferenceNumber: "REF-000001",
				Complaint:       req,
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.SubmitComplaint(context.Background(), api.Complaint{
		BusinessKey: "CMP-1",
		Description: "Broken street light",
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.True(t, resp.Created)
	assert.Equal(t, "srv-1", resp.ID)
	require.NotNil(t, resp.Complaint)
	assert.Equal(t, "REF-000001", resp.Complaint.ReferenceNumber)
}

// TestClient_FetchComplaint проверяет получение и экранирование business key
func TestClient_FetchComplaint(t *testing.T) {
	updated := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/complaints/CMP-2", r.URL.Path)

		_ = json.NewEncoder(w).Encode(api.ComplaintResponse{
			ID:        "srv-2",
			UpdatedAt: updated,
			Complaint: api.Complaint{BusinessKey: "CMP-2", Status: "assigned"},
		})
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).FetchComplaint(context.Background(), "CMP-2")
	require.NoError(t, err)
	assert.Equal(t, "assigned", resp.Status)
	assert.True(t, updated.Equal(resp.UpdatedAt))
}

// TestClient_UpdateComplaint проверяет частичное обновление
func TestClient_UpdateComplaint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/v1/complaints/CMP-3", r.URL.Path)

		var req api.UpdateComplaintRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, map[string]string{"description": "longer text"}, req.Fields)

		_ = json.NewEncoder(w).Encode(api.ComplaintResponse{
			ID:        "srv-3",
			Complaint: api.Complaint{BusinessKey: "CMP-3", Description: "longer text"},
		})
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).UpdateComplaint(context.Background(), "CMP-3",
		api.UpdateComplaintRequest{Fields: map[string]string{"description": "longer text"}})
	require.NoError(t, err)
	assert.Equal(t, "longer text", resp.Description)
}

// TestClient_UploadMediaAndConfig проверяет загрузку вложения и получение конфигурации
func TestClient_UploadMediaAndConfig(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/media":
			var req api.MediaUploadRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, []byte{1, 2, 3}, req.Data)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(api.MediaUploadResponse{ID: "m-1", Success: true})
		case "/api/v1/config":
			_ = json.NewEncoder(w).Encode(api.ConfigResponse{
				Values: map[string]json.RawMessage{"categories": json.RawMessage(`["roads"]`)},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)

	media, err := client.UploadMedia(context.Background(), api.MediaUploadRequest{
		BusinessKey: "CMP-1",
		FileName:    "a.jpg",
		Data:        []byte{1, 2, 3},
	})
	require.NoError(t, err)
	assert.Equal(t, "m-1", media.ID)

	cfg, err := client.FetchConfig(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `["roads"]`, string(cfg.Values["categories"]))
}

// TestClient_ErrorTaxonomy проверяет отображение статусов на ошибки
func TestClient_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		responseBody interface{}
		expectedErr  error
		name         string
		expectedMsg  string
		statusCode   int
	}{
		{
			name:         "validation error",
			statusCode:   http.StatusBadRequest,
			responseBody: api.ErrorResponse{Error: "bad_request", Message: "phone is invalid"},
			expectedErr:  ErrRemoteRejected,
			expectedMsg:  "server error (400): phone is invalid",
		},
		{
			name:         "not found",
			statusCode:   http.StatusNotFound,
			responseBody: api.ErrorResponse{Message: "complaint not found"},
			expectedErr:  ErrNotFound,
			expectedMsg:  "complaint not found",
		},
		{
			name:         "internal error",
			statusCode:   http.StatusInternalServerError,
			responseBody: "boom",
			expectedErr:  ErrRemoteUnavailable,
			expectedMsg:  "request failed with status 500",
		},
		{
			name:         "rate limited",
			statusCode:   http.StatusTooManyRequests,
			responseBody: api.ErrorResponse{Message: "slow down"},
			expectedErr:  ErrRemoteUnavailable,
			expectedMsg:  "slow down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				if s, ok := tt.responseBody.(string); ok {
					_, _ = w.Write([]byte(s))
					return
				}
				_ = json.NewEncoder(w).Encode(tt.responseBody)
			}))
			defer server.Close()

			_, err := NewClient(server.URL).FetchComplaint(context.Background(), "CMP-1")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Contains(t, err.Error(), tt.expectedMsg)
		})
	}
}

// TestClient_NetworkUnavailable проверяет ошибку при недоступном сервере
func TestClient_NetworkUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	_, err := NewClient(addr).SubmitComplaint(context.Background(), api.Complaint{BusinessKey: "CMP-1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetworkUnavailable)
	assert.True(t, IsRetriable(err))
}

// TestClient_Timeout проверяет, что зависший сервер считается RemoteUnavailable
func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewClientWithTimeout(server.URL, 50*time.Millisecond)
	_, err := client.FetchConfig(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRemoteUnavailable)
}

// TestClient_ContextCanceled проверяет отмену запроса вызывающей стороной
func TestClient_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(server.URL).FetchConfig(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetworkUnavailable)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestIsRetriable(t *testing.T) {
	assert.True(t, IsRetriable(ErrRemoteUnavailable))
	assert.False(t, IsRetriable(ErrRemoteRejected))
	assert.False(t, IsRetriable(ErrNotFound))
	assert.False(t, IsRetriable(errors.New("other")))
}
