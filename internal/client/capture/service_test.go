package capture

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientapi "github.com/iudanet/fieldsync/internal/client/api"
	"github.com/iudanet/fieldsync/internal/client/events"
	"github.com/iudanet/fieldsync/internal/client/storage"
	"github.com/iudanet/fieldsync/internal/client/storage/boltdb"
	"github.com/iudanet/fieldsync/internal/logging"
	"github.com/iudanet/fieldsync/internal/models"
	"github.com/iudanet/fieldsync/pkg/api"
)

func newTestService(t *testing.T, apiClient clientapi.ClientAPI) (*Service, *boltdb.Storage, *events.Bus) {
	t.Helper()

	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "queue.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	bus := events.NewBus(logging.NewNop())
	return NewService(store, apiClient, bus, "operator-1", logging.NewNop()), store, bus
}

func validComplaint() models.Complaint {
	return models.Complaint{
		BusinessKey: "CMP-1001",
		Name:        "Ivan Petrov",
		Phone:       "+79001234567",
		Address:     "Lenina 1",
		Description: "Street light is broken",
		Category:    "lighting",
	}
}

func TestSubmitComplaint_Queued(t *testing.T) {
	svc, store, bus := newTestService(t, &clientapi.ClientAPIMock{})
	ctx := context.Background()

	var notified []events.Event
	bus.Subscribe(events.QueueNonEmpty, func(_ context.Context, e events.Event) {
		notified = append(notified, e)
	})

	receipt, err := svc.SubmitComplaint(ctx, validComplaint())
	require.NoError(t, err)
	assert.True(t, receipt.Queued)
	assert.Equal(t, "CMP-1001", receipt.BusinessKey)
	assert.NotEmpty(t, receipt.RecordID)

	rec, err := store.Get(ctx, receipt.RecordID, models.RecordTypeSubmission)
	require.NoError(t, err)

	var stored models.Complaint
	require.NoError(t, json.Unmarshal(rec.Payload, &stored))
	assert.Equal(t, models.StatusNew, stored.Status)
	assert.Equal(t, "operator-1", stored.CapturedBy)

	require.Len(t, notified, 1)
	assert.Equal(t, receipt.RecordID, notified[0].RecordID)
	assert.Equal(t, models.RecordTypeSubmission, notified[0].RecordType)
}

func TestSubmitComplaint_GeneratesBusinessKey(t *testing.T) {
	svc, _, _ := newTestService(t, &clientapi.ClientAPIMock{})

	c := validComplaint()
	c.BusinessKey = ""

	receipt, err := svc.SubmitComplaint(context.Background(), c)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(receipt.BusinessKey, BusinessKeyPrefix))
}

func TestSubmitComplaint_Invalid(t *testing.T) {
	svc, store, _ := newTestService(t, &clientapi.ClientAPIMock{})
	ctx := context.Background()

	c := validComplaint()
	c.Description = ""

	_, err := svc.SubmitComplaint(ctx, c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.PendingCount)
}

func TestSubmitComplaint_StorageFailure(t *testing.T) {
	svc, store, bus := newTestService(t, &clientapi.ClientAPIMock{})
	require.NoError(t, store.Close())

	notified := 0
	bus.Subscribe(events.QueueNonEmpty, func(context.Context, events.Event) { notified++ })

	_, err := svc.SubmitComplaint(context.Background(), validComplaint())
	require.Error(t, err)
	assert.True(t, errors.Is(err, storage.ErrStorageFailure))
	assert.Zero(t, notified)
}

func TestSubmitComplaint_Degraded(t *testing.T) {
	mock := &clientapi.ClientAPIMock{
		SubmitComplaintFunc: func(_ context.Context, req api.Complaint) (*api.SubmitResponse, error) {
			return &api.SubmitResponse{
				ID:        "srv-1",
				Success:   true,
				Created:   true,
				Complaint: &api.ComplaintResponse{ID: "srv-1", ReferenceNumber: "REF-000001", Complaint: req},
			}, nil
		},
	}
	svc := NewService(nil, mock, nil, "operator-1", logging.NewNop())
	require.True(t, svc.Degraded())

	receipt, err := svc.SubmitComplaint(context.Background(), validComplaint())
	require.NoError(t, err)
	assert.False(t, receipt.Queued)
	assert.Equal(t, "srv-1", receipt.RemoteID)
	assert.Equal(t, "REF-000001", receipt.ReferenceNumber)
	require.Len(t, mock.SubmitComplaintCalls(), 1)
	assert.Equal(t, "operator-1", mock.SubmitComplaintCalls()[0].Req.CapturedBy)
}

func TestSubmitComplaint_DegradedFailure(t *testing.T) {
	mock := &clientapi.ClientAPIMock{
		SubmitComplaintFunc: func(context.Context, api.Complaint) (*api.SubmitResponse, error) {
			return nil, clientapi.ErrNetworkUnavailable
		},
	}
	svc := NewService(nil, mock, nil, "operator-1", logging.NewNop())

	_, err := svc.SubmitComplaint(context.Background(), validComplaint())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDirectSubmitFailed))
	assert.True(t, errors.Is(err, clientapi.ErrNetworkUnavailable))
}

func TestAttachMedia(t *testing.T) {
	svc, store, _ := newTestService(t, &clientapi.ClientAPIMock{})
	ctx := context.Background()

	receipt, err := svc.AttachMedia(ctx, models.MediaAttachment{
		BusinessKey: "CMP-1001",
		FileName:    "photo.jpg",
		MimeType:    "image/jpeg",
		Data:        []byte{0xFF, 0xD8, 0xFF},
	})
	require.NoError(t, err)
	assert.True(t, receipt.Queued)

	records, err := store.ListAll(ctx, models.RecordTypeMedia)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, receipt.RecordID, records[0].ID)

	_, err = svc.AttachMedia(ctx, models.MediaAttachment{BusinessKey: "CMP-1001", FileName: "empty.jpg"})
	assert.Error(t, err)
}

func TestAttachMedia_Degraded(t *testing.T) {
	mock := &clientapi.ClientAPIMock{
		UploadMediaFunc: func(context.Context, api.MediaUploadRequest) (*api.MediaUploadResponse, error) {
			return &api.MediaUploadResponse{ID: "media-1", Success: true}, nil
		},
	}
	svc := NewService(nil, mock, nil, "", logging.NewNop())

	receipt, err := svc.AttachMedia(context.Background(), models.MediaAttachment{
		BusinessKey: "CMP-1001",
		FileName:    "photo.jpg",
		Data:        []byte("img"),
	})
	require.NoError(t, err)
	assert.False(t, receipt.Queued)
	assert.Equal(t, "media-1", receipt.RemoteID)
}

func TestEnqueue_ConfigDoesNotNotify(t *testing.T) {
	svc, _, bus := newTestService(t, &clientapi.ClientAPIMock{})

	notified := 0
	bus.Subscribe(events.QueueNonEmpty, func(context.Context, events.Event) { notified++ })

	_, err := svc.Enqueue(context.Background(), models.RecordTypeConfig, []byte(`{"k":"v"}`))
	require.NoError(t, err)
	assert.Zero(t, notified)
}

func TestEnqueue_Degraded(t *testing.T) {
	svc := NewService(nil, &clientapi.ClientAPIMock{}, nil, "", logging.NewNop())

	_, err := svc.Enqueue(context.Background(), models.RecordTypeSubmission, []byte(`{}`))
	assert.True(t, errors.Is(err, storage.ErrStorageFailure))
}

func TestRefreshConfig(t *testing.T) {
	mock := &clientapi.ClientAPIMock{
		FetchConfigFunc: func(context.Context) (*api.ConfigResponse, error) {
			return &api.ConfigResponse{Values: map[string]json.RawMessage{
				"categories": json.RawMessage(`["lighting","roads"]`),
				"statuses":   json.RawMessage(`["new","closed"]`),
			}}, nil
		},
	}

	tests := []struct {
		name     string
		degraded bool
	}{
		{name: "cached in storage"},
		{name: "cached in memory", degraded: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			svc, _, _ := newTestService(t, mock)
			if tt.degraded {
				svc = NewService(nil, mock, nil, "", logging.NewNop())
			}

			n, err := svc.RefreshConfig(ctx)
			require.NoError(t, err)
			assert.Equal(t, 2, n)

			value, err := svc.Config(ctx, "categories")
			require.NoError(t, err)
			assert.JSONEq(t, `["lighting","roads"]`, string(value))

			keys, err := svc.ConfigKeys(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"categories", "statuses"}, keys)

			_, err = svc.Config(ctx, "missing")
			assert.True(t, errors.Is(err, storage.ErrConfigNotFound))
		})
	}
}

func TestRefreshConfig_Offline(t *testing.T) {
	mock := &clientapi.ClientAPIMock{
		FetchConfigFunc: func(context.Context) (*api.ConfigResponse, error) {
			return nil, clientapi.ErrNetworkUnavailable
		},
	}
	svc, store, _ := newTestService(t, mock)
	ctx := context.Background()

	require.NoError(t, store.CacheConfig(ctx, "categories", []byte(`["old"]`)))

	_, err := svc.RefreshConfig(ctx)
	require.Error(t, err)

	value, err := svc.Config(ctx, "categories")
	require.NoError(t, err)
	assert.JSONEq(t, `["old"]`, string(value))
}
