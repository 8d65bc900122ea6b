package server

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientapi "github.com/iudanet/fieldsync/internal/client/api"
	"github.com/iudanet/fieldsync/internal/config"
	"github.com/iudanet/fieldsync/internal/logging"
	"github.com/iudanet/fieldsync/internal/models"
	"github.com/iudanet/fieldsync/internal/server/storage/sqlite"
	"github.com/iudanet/fieldsync/pkg/api"
)

func newTestServer(t *testing.T, mutate func(*config.Backend)) (*Server, *httptest.Server) {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	cfg := config.Default().Backend
	if mutate != nil {
		mutate(&cfg)
	}

	srv, err := New(cfg, store, "test", logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(srv.limiter.Stop)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func wireComplaint(key string) api.Complaint {
	return api.Complaint{
		CapturedAt:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		BusinessKey: key,
		Name:        "Ivan Petrov",
		Phone:       "+7 900 000-00-00",
		Description: "Street light is broken",
		Category:    "lighting",
		CapturedBy:  "op-1",
	}
}

func TestServer_ClientRoundTrip(t *testing.T) {
	ctx := context.Background()
	_, ts := newTestServer(t, nil)
	client := clientapi.NewClient(ts.URL)

	_, err := client.FetchComplaint(ctx, "CMP-1")
	require.ErrorIs(t, err, clientapi.ErrNotFound)

	submitted, err := client.SubmitComplaint(ctx, wireComplaint("CMP-1"))
	require.NoError(t, err)
	assert.True(t, submitted.Created)
	require.NotNil(t, submitted.Complaint)
	assert.Equal(t, models.StatusNew, submitted.Complaint.Status)
	assert.NotEmpty(t, submitted.Complaint.ReferenceNumber)

	// Повторная отправка после потери ответа не создает дубль
	again, err := client.SubmitComplaint(ctx, wireComplaint("CMP-1"))
	require.NoError(t, err)
	assert.False(t, again.Created)
	assert.Equal(t, submitted.ID, again.ID)

	fetched, err := client.FetchComplaint(ctx, "CMP-1")
	require.NoError(t, err)
	remote := clientapi.ComplaintFromWire(fetched)
	assert.Equal(t, "Ivan Petrov", remote.Name)
	assert.Equal(t, submitted.ID, remote.ID)

	updated, err := client.UpdateComplaint(ctx, "CMP-1", api.UpdateComplaintRequest{
		Fields: map[string]string{models.FieldStatus: models.StatusAssigned},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusAssigned, updated.Status)
	assert.True(t, updated.UpdatedAt.After(fetched.UpdatedAt))

	media, err := client.UploadMedia(ctx, api.MediaUploadRequest{
		BusinessKey: "CMP-1",
		FileName:    "photo.jpg",
		MimeType:    "image/jpeg",
		Data:        []byte{0xff, 0xd8, 0xff},
	})
	require.NoError(t, err)
	assert.True(t, media.Success)

	cfg, err := client.FetchConfig(ctx)
	require.NoError(t, err)
	assert.Contains(t, cfg.Values, "categories")
	assert.Contains(t, cfg.Values, "statuses")
}

func TestServer_ErrorTaxonomy(t *testing.T) {
	ctx := context.Background()
	_, ts := newTestServer(t, nil)
	client := clientapi.NewClient(ts.URL)

	invalid := wireComplaint("CMP-2")
	invalid.Description = ""
	_, err := client.SubmitComplaint(ctx, invalid)
	require.ErrorIs(t, err, clientapi.ErrRemoteRejected)
	assert.False(t, clientapi.IsRetriable(err))

	_, err = client.UploadMedia(ctx, api.MediaUploadRequest{BusinessKey: "CMP-none", FileName: "a.jpg", Data: []byte{1}})
	require.ErrorIs(t, err, clientapi.ErrNotFound)

	_, err = client.UpdateComplaint(ctx, "CMP-none", api.UpdateComplaintRequest{
		Fields: map[string]string{models.FieldName: "x"},
	})
	require.ErrorIs(t, err, clientapi.ErrNotFound)
}

func TestServer_RateLimit(t *testing.T) {
	ctx := context.Background()
	_, ts := newTestServer(t, func(b *config.Backend) {
		b.RateLimitRPS = 0.001
		b.RateLimitBurst = 2
	})
	client := clientapi.NewClient(ts.URL)

	_, err := client.FetchConfig(ctx)
	require.NoError(t, err)
	_, err = client.FetchConfig(ctx)
	require.NoError(t, err)

	_, err = client.FetchConfig(ctx)
	require.ErrorIs(t, err, clientapi.ErrRemoteUnavailable)
	assert.True(t, clientapi.IsRetriable(err))
}

func TestServer_Health(t *testing.T) {
	_, ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/api/v1/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_ServeShutdown(t *testing.T) {
	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	defer store.Close()

	srv, err := New(config.Default().Backend, store, "test", logging.NewNop())
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx, ln)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/api/v1/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
