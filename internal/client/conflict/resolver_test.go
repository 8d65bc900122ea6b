package conflict

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientapi "github.com/iudanet/fieldsync/internal/client/api"
	"github.com/iudanet/fieldsync/internal/client/storage"
	"github.com/iudanet/fieldsync/internal/client/storage/boltdb"
	"github.com/iudanet/fieldsync/internal/logging"
	"github.com/iudanet/fieldsync/internal/models"
	"github.com/iudanet/fieldsync/pkg/api"
)

func newTestStore(t *testing.T) *boltdb.Storage {
	t.Helper()
	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "queue.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func enqueue(t *testing.T, store *boltdb.Storage, c models.Complaint) *models.OfflineRecord {
	t.Helper()
	ctx := context.Background()
	payload, err := json.Marshal(c)
	require.NoError(t, err)
	id, err := store.Save(ctx, models.RecordTypeSubmission, payload)
	require.NoError(t, err)
	record, err := store.Get(ctx, id, models.RecordTypeSubmission)
	require.NoError(t, err)
	return record
}

func remoteResponse(c models.Complaint, updatedAt time.Time) *api.ComplaintResponse {
	return &api.ComplaintResponse{
		ID:        "srv-" + c.BusinessKey,
		UpdatedAt: updatedAt,
		Complaint: clientapi.ComplaintToWire(&c, time.Time{}),
	}
}

func TestResolver_Detect(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	record := enqueue(t, store, baseComplaint())

	tests := []struct {
		fetch      func(ctx context.Context, key string) (*api.ComplaintResponse, error)
		name       string
		wantFields []string
		wantErr    bool
	}{
		{
			name: "remote not found",
			fetch: func(ctx context.Context, key string) (*api.ComplaintResponse, error) {
				return nil, fmt.Errorf("fetch complaint request failed: %w", clientapi.ErrNotFound)
			},
		},
		{
			name: "remote older than capture",
			fetch: func(ctx context.Context, key string) (*api.ComplaintResponse, error) {
				c := baseComplaint()
				c.Status = models.StatusClosed
				return remoteResponse(c, record.CapturedAt.Add(-time.Minute)), nil
			},
		},
		{
			name: "identical tracked fields",
			fetch: func(ctx context.Context, key string) (*api.ComplaintResponse, error) {
				c := baseComplaint()
				c.Latitude = 1.5 // не отслеживается
				return remoteResponse(c, record.CapturedAt.Add(time.Minute)), nil
			},
		},
		{
			name: "fields differ",
			fetch: func(ctx context.Context, key string) (*api.ComplaintResponse, error) {
				c := baseComplaint()
				c.Status = models.StatusAssigned
				c.Phone = "+7 000"
				return remoteResponse(c, record.CapturedAt.Add(time.Minute)), nil
			},
			wantFields: []string{models.FieldPhone, models.FieldStatus},
		},
		{
			name: "network unavailable",
			fetch: func(ctx context.Context, key string) (*api.ComplaintResponse, error) {
				return nil, clientapi.ErrNetworkUnavailable
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &clientapi.ClientAPIMock{FetchComplaintFunc: tt.fetch}
			resolver := NewResolver(mock, store, store, DefaultPolicy(), logging.NewNop())

			item, err := resolver.Detect(ctx, record)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			require.Len(t, mock.FetchComplaintCalls(), 1)
			assert.Equal(t, "CMP-100", mock.FetchComplaintCalls()[0].BusinessKey)

			if tt.wantFields == nil {
				assert.Nil(t, item)
				return
			}
			require.NotNil(t, item)
			assert.Equal(t, tt.wantFields, item.ConflictFields)
			assert.Equal(t, record.ID, item.ID)
			assert.Equal(t, record.CapturedAt, item.CapturedAt)
		})
	}
}

func TestResolver_Detect_SkipsNonSubmission(t *testing.T) {
	resolver := NewResolver(&clientapi.ClientAPIMock{}, nil, nil, DefaultPolicy(), logging.NewNop())

	item, err := resolver.Detect(context.Background(), &models.OfflineRecord{Type: models.RecordTypeMedia})
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestResolver_AutoResolve_ContentRichness(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	local := baseComplaint()
	local.Description = strings.Repeat("l", 120)
	record := enqueue(t, store, local)

	remote := baseComplaint()
	remote.Category = "remote-category" // тоже отличается, но окно мало
	mock := &clientapi.ClientAPIMock{
		FetchComplaintFunc: func(ctx context.Context, key string) (*api.ComplaintResponse, error) {
			return remoteResponse(remote, record.CapturedAt.Add(20*time.Second)), nil
		},
		UpdateComplaintFunc: func(ctx context.Context, key string, req api.UpdateComplaintRequest) (*api.ComplaintResponse, error) {
			return &api.ComplaintResponse{}, nil
		},
	}
	resolver := NewResolver(mock, store, store, DefaultPolicy(), logging.NewNop())

	item, err := resolver.Detect(ctx, record)
	require.NoError(t, err)
	require.NotNil(t, item)

	res, ok, err := resolver.AutoResolve(ctx, item)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{RuleContentRichness, RuleTemporalMerge}, res.Rules)

	calls := mock.UpdateComplaintCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "CMP-100", calls[0].BusinessKey)
	assert.Equal(t, local.Description, calls[0].Req.Fields[models.FieldDescription])
	assert.Equal(t, local.Category, calls[0].Req.Fields[models.FieldCategory])

	// Запись удалена после разрешения
	_, err = store.Get(ctx, record.ID, models.RecordTypeSubmission)
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func TestResolver_AutoResolve_WorkflowKeepsRemoteWithoutWrite(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	record := enqueue(t, store, baseComplaint())

	mock := &clientapi.ClientAPIMock{}
	resolver := NewResolver(mock, store, store, DefaultPolicy(), logging.NewNop())

	item := conflictItem(10*time.Second, func(local, remote *models.Complaint) {
		remote.Status = models.StatusResolved
	})
	item.ID = record.ID

	res, ok, err := resolver.AutoResolve(ctx, item)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, res.RemoteWrite)
	assert.Empty(t, mock.UpdateComplaintCalls())

	_, err = store.Get(ctx, record.ID, models.RecordTypeSubmission)
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func TestResolver_AutoResolve_Unresolved(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	record := enqueue(t, store, baseComplaint())

	resolver := NewResolver(&clientapi.ClientAPIMock{}, store, store, DefaultPolicy(), logging.NewNop())

	item := conflictItem(time.Hour, func(local, remote *models.Complaint) {
		remote.Phone = "+7 111"
	})
	item.ID = record.ID

	res, ok, err := resolver.AutoResolve(ctx, item)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, res)

	// Запись остается в очереди
	_, err = store.Get(ctx, record.ID, models.RecordTypeSubmission)
	assert.NoError(t, err)
}

func TestResolver_AutoResolve_WriteFailureKeepsRecord(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	record := enqueue(t, store, baseComplaint())

	mock := &clientapi.ClientAPIMock{
		UpdateComplaintFunc: func(ctx context.Context, key string, req api.UpdateComplaintRequest) (*api.ComplaintResponse, error) {
			return nil, clientapi.ErrRemoteUnavailable
		},
	}
	resolver := NewResolver(mock, store, store, DefaultPolicy(), logging.NewNop())

	item := conflictItem(10*time.Minute, func(local, remote *models.Complaint) {
		local.Description = strings.Repeat("l", 150)
	})
	item.ID = record.ID

	_, ok, err := resolver.AutoResolve(ctx, item)
	assert.ErrorIs(t, err, clientapi.ErrRemoteUnavailable)
	assert.False(t, ok)

	_, err = store.Get(ctx, record.ID, models.RecordTypeSubmission)
	assert.NoError(t, err)
}

// registerConflict ставит запись в очередь и регистрирует для нее конфликт
func registerConflict(t *testing.T, store *boltdb.Storage, resolver *Resolver) *models.ConflictItem {
	t.Helper()
	record := enqueue(t, store, baseComplaint())

	item := conflictItem(time.Hour, func(local, remote *models.Complaint) {
		local.Phone = "+7 local"
		remote.Phone = "+7 remote"
		remote.Status = models.StatusAssigned
	})
	item.ID = record.ID
	require.NoError(t, resolver.Register(context.Background(), item))
	return item
}

func TestResolver_ManualActions(t *testing.T) {
	ctx := context.Background()

	t.Run("keep local", func(t *testing.T) {
		store := newTestStore(t)
		mock := &clientapi.ClientAPIMock{
			UpdateComplaintFunc: func(ctx context.Context, key string, req api.UpdateComplaintRequest) (*api.ComplaintResponse, error) {
				return &api.ComplaintResponse{}, nil
			},
		}
		resolver := NewResolver(mock, store, store, DefaultPolicy(), logging.NewNop())
		item := registerConflict(t, store, resolver)

		res, err := resolver.ResolveLocal(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ResolutionKeepLocal, res.Strategy)
		require.Len(t, mock.UpdateComplaintCalls(), 1)
		assert.Equal(t, "+7 local", mock.UpdateComplaintCalls()[0].Req.Fields[models.FieldPhone])

		open, err := resolver.IsOpen(ctx, item.ID)
		require.NoError(t, err)
		assert.False(t, open)
	})

	t.Run("keep remote", func(t *testing.T) {
		store := newTestStore(t)
		mock := &clientapi.ClientAPIMock{}
		resolver := NewResolver(mock, store, store, DefaultPolicy(), logging.NewNop())
		item := registerConflict(t, store, resolver)

		res, err := resolver.ResolveRemote(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, "+7 remote", res.Final.Phone)
		assert.Empty(t, mock.UpdateComplaintCalls())

		_, err = store.Get(ctx, item.ID, models.RecordTypeSubmission)
		assert.ErrorIs(t, err, storage.ErrRecordNotFound)
	})

	t.Run("merge", func(t *testing.T) {
		store := newTestStore(t)
		mock := &clientapi.ClientAPIMock{
			UpdateComplaintFunc: func(ctx context.Context, key string, req api.UpdateComplaintRequest) (*api.ComplaintResponse, error) {
				return &api.ComplaintResponse{}, nil
			},
		}
		resolver := NewResolver(mock, store, store, DefaultPolicy(), logging.NewNop())
		item := registerConflict(t, store, resolver)

		_, err := resolver.ResolveMerge(ctx, item.ID, map[string]string{"unknown": "x"})
		assert.ErrorIs(t, err, ErrInvalidMerge)

		res, err := resolver.ResolveMerge(ctx, item.ID, map[string]string{models.FieldPhone: "+7 merged"})
		require.NoError(t, err)
		assert.Equal(t, "+7 merged", res.Final.Phone)
		assert.Equal(t, models.StatusAssigned, res.Final.Status)

		fields := mock.UpdateComplaintCalls()[0].Req.Fields
		assert.Equal(t, "+7 merged", fields[models.FieldPhone])
		assert.Equal(t, models.StatusAssigned, fields[models.FieldStatus])
	})

	t.Run("dismiss", func(t *testing.T) {
		store := newTestStore(t)
		resolver := NewResolver(&clientapi.ClientAPIMock{}, store, store, DefaultPolicy(), logging.NewNop())
		item := registerConflict(t, store, resolver)

		require.NoError(t, resolver.Dismiss(ctx, item.ID))

		items, err := resolver.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, items)

		// Запись остается и будет проверена при следующем drain
		_, err = store.Get(ctx, item.ID, models.RecordTypeSubmission)
		assert.NoError(t, err)
	})

	t.Run("unknown conflict", func(t *testing.T) {
		store := newTestStore(t)
		resolver := NewResolver(&clientapi.ClientAPIMock{}, store, store, DefaultPolicy(), logging.NewNop())

		_, err := resolver.ResolveLocal(ctx, "submission_missing")
		assert.ErrorIs(t, err, storage.ErrConflictNotFound)
	})
}

func TestResolver_Register_RequiresRecord(t *testing.T) {
	store := newTestStore(t)
	resolver := NewResolver(&clientapi.ClientAPIMock{}, store, store, DefaultPolicy(), logging.NewNop())

	item := conflictItem(time.Hour, func(local, remote *models.Complaint) { remote.Phone = "x" })
	item.ID = "submission_gone"

	err := resolver.Register(context.Background(), item)
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func TestResolver_RemoveFailureKeepsConflict(t *testing.T) {
	ctx := context.Background()
	item := conflictItem(time.Hour, func(local, remote *models.Complaint) { remote.Phone = "+7 remote" })
	item.ID = "submission_01"

	queue := &storage.QueueStorageMock{
		RemoveFunc: func(ctx context.Context, id string, recordType models.RecordType) error {
			return fmt.Errorf("%w: disk full", storage.ErrStorageFailure)
		},
	}
	conflicts := &storage.ConflictStorageMock{
		GetConflictFunc: func(ctx context.Context, id string) (*models.ConflictItem, error) {
			return item, nil
		},
	}
	mock := &clientapi.ClientAPIMock{
		UpdateComplaintFunc: func(ctx context.Context, key string, req api.UpdateComplaintRequest) (*api.ComplaintResponse, error) {
			return &api.ComplaintResponse{}, nil
		},
	}
	resolver := NewResolver(mock, queue, conflicts, DefaultPolicy(), logging.NewNop())

	_, err := resolver.ResolveLocal(ctx, item.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrStorageFailure)
	assert.Contains(t, err.Error(), "failed to remove resolved record")

	require.Len(t, queue.RemoveCalls(), 1)
	assert.Equal(t, item.ID, queue.RemoveCalls()[0].Id)
	assert.Equal(t, models.RecordTypeSubmission, queue.RemoveCalls()[0].RecordType)
	// конфликт не удаляется отдельно: он уходит вместе с записью
	assert.Empty(t, conflicts.DeleteConflictCalls())
}

func TestResolver_DismissStorageError(t *testing.T) {
	conflicts := &storage.ConflictStorageMock{
		DeleteConflictFunc: func(ctx context.Context, id string) error {
			return storage.ErrStorageClosed
		},
	}
	resolver := NewResolver(&clientapi.ClientAPIMock{}, &storage.QueueStorageMock{}, conflicts, DefaultPolicy(), logging.NewNop())

	err := resolver.Dismiss(context.Background(), "submission_01")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	require.Len(t, conflicts.DeleteConflictCalls(), 1)
	assert.Equal(t, "submission_01", conflicts.DeleteConflictCalls()[0].Id)
}
