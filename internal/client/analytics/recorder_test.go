package analytics

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/fieldsync/internal/client/events"
	"github.com/iudanet/fieldsync/internal/client/storage"
	"github.com/iudanet/fieldsync/internal/client/storage/boltdb"
	"github.com/iudanet/fieldsync/internal/logging"
	"github.com/iudanet/fieldsync/internal/models"
)

func openStore(t *testing.T, path string) *boltdb.Storage {
	t.Helper()
	store, err := boltdb.New(context.Background(), path)
	require.NoError(t, err)
	return store
}

func newRecorder(t *testing.T, db *boltdb.Storage) (*Recorder, *Store) {
	t.Helper()
	var (
		st    storage.AnalyticsStorage
		queue QueueStatter
	)
	if db != nil {
		st, queue = db, db
	}
	store := NewStore(st, logging.NewNop())
	require.NoError(t, store.Init(context.Background()))
	return NewRecorder(store, queue, logging.NewNop()), store
}

func TestStore_InitDefaults(t *testing.T) {
	store := NewStore(nil, logging.NewNop())

	// До Init изменения запрещены
	err := store.Update(context.Background(), func(s *models.HealthSnapshot) {})
	assert.Error(t, err)

	require.NoError(t, store.Init(context.Background()))
	assert.Equal(t, 100.0, store.Snapshot().SyncSuccessRate)
	assert.NoError(t, store.Flush(context.Background()))
}

func TestRecorder_SuccessRateClamped(t *testing.T) {
	recorder, store := newRecorder(t, nil)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, recorder.RecordSuccess(ctx))
	}
	assert.Equal(t, 100.0, store.Snapshot().SyncSuccessRate)

	require.NoError(t, recorder.RecordFailure(ctx))
	assert.Equal(t, 98.0, store.Snapshot().SyncSuccessRate)
	require.NoError(t, recorder.RecordSuccess(ctx))
	assert.Equal(t, 98.5, store.Snapshot().SyncSuccessRate)

	for i := 0; i < 100; i++ {
		require.NoError(t, recorder.RecordFailure(ctx))
	}
	assert.Equal(t, 0.0, store.Snapshot().SyncSuccessRate)
}

func TestRecorder_OfflineSession(t *testing.T) {
	recorder, store := newRecorder(t, nil)
	ctx := context.Background()
	start := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	// Повторный сигнал offline не сдвигает начало сессии
	require.NoError(t, recorder.RecordConnectivity(ctx, models.Offline(), start))
	require.NoError(t, recorder.RecordConnectivity(ctx, models.Offline(), start.Add(time.Minute)))
	require.NoError(t, recorder.RecordConnectivity(ctx, models.Online(models.ConnectionWiFi), start.Add(10*time.Minute)))

	snapshot := store.Snapshot()
	assert.Equal(t, 10*time.Minute, snapshot.TotalOfflineTime)
	assert.Equal(t, 1, snapshot.OfflineSessions)
	assert.True(t, snapshot.OfflineSince.IsZero())

	// Online без открытой сессии ничего не меняет
	require.NoError(t, recorder.RecordConnectivity(ctx, models.Online(models.ConnectionWiFi), start.Add(time.Hour)))
	assert.Equal(t, 1, store.Snapshot().OfflineSessions)
}

func TestRecorder_OfflineSessionSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.db")
	ctx := context.Background()
	start := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	db := openStore(t, path)
	recorder, _ := newRecorder(t, db)
	require.NoError(t, recorder.RecordConnectivity(ctx, models.Offline(), start))
	require.NoError(t, recorder.RecordFailure(ctx))
	require.NoError(t, db.Close())

	// Новый процесс продолжает ту же сессию
	db = openStore(t, path)
	defer db.Close()
	recorder, store := newRecorder(t, db)

	assert.Equal(t, 98.0, store.Snapshot().SyncSuccessRate)
	require.NoError(t, recorder.RecordConnectivity(ctx, models.Online(models.ConnectionEthernet), start.Add(30*time.Minute)))

	snapshot := store.Snapshot()
	assert.Equal(t, 30*time.Minute, snapshot.TotalOfflineTime)
	assert.Equal(t, 1, snapshot.OfflineSessions)
}

func TestRecorder_BusEvents(t *testing.T) {
	db := openStore(t, filepath.Join(t.TempDir(), "queue.db"))
	defer db.Close()
	ctx := context.Background()

	recorder, store := newRecorder(t, db)
	bus := events.NewBus(logging.NewNop())
	recorder.Attach(bus)
	defer recorder.Detach()

	_, err := db.Save(ctx, models.RecordTypeSubmission, []byte(`{"business_key":"CMP-1"}`))
	require.NoError(t, err)
	bus.Publish(ctx, events.Event{Kind: events.QueueNonEmpty})
	assert.Equal(t, 1, store.Snapshot().PendingOperations)
	assert.Positive(t, store.Snapshot().DataUsage)

	bus.Publish(ctx, events.Event{Kind: events.RecordFailed})
	bus.Publish(ctx, events.Event{Kind: events.RecordDropped}) // без повторного штрафа
	assert.Equal(t, 98.0, store.Snapshot().SyncSuccessRate)

	finished := time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC)
	bus.Publish(ctx, events.Event{Kind: events.RecordSynced})
	bus.Publish(ctx, events.Event{Kind: events.SyncCompleted, Outcome: &models.SyncOutcome{SuccessCount: 1, FinishedAt: finished}})

	snapshot := store.Snapshot()
	assert.Equal(t, 98.5, snapshot.SyncSuccessRate)
	assert.True(t, finished.Equal(snapshot.LastSyncTime))

	// Статистика сохранена инкрементально
	persisted, err := db.LoadAnalytics(ctx)
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, 98.5, persisted.SyncSuccessRate)
	assert.Equal(t, 1, persisted.PendingOperations)

	report := recorder.Report()
	assert.True(t, report.IsHealthy)
}

func TestRecorder_ConflictResolved(t *testing.T) {
	db := openStore(t, filepath.Join(t.TempDir(), "queue.db"))
	defer db.Close()
	ctx := context.Background()

	recorder, store := newRecorder(t, db)
	bus := events.NewBus(logging.NewNop())
	recorder.Attach(bus)
	defer recorder.Detach()

	id, err := db.Save(ctx, models.RecordTypeSubmission, []byte(`{"business_key":"CMP-1"}`))
	require.NoError(t, err)
	bus.Publish(ctx, events.Event{Kind: events.QueueNonEmpty})
	bus.Publish(ctx, events.Event{Kind: events.RecordFailed})
	require.Equal(t, 1, store.Snapshot().PendingOperations)

	require.NoError(t, db.Remove(ctx, id, models.RecordTypeSubmission))
	resolvedAt := time.Date(2026, 8, 3, 9, 30, 0, 0, time.UTC)
	bus.Publish(ctx, events.Event{Kind: events.ConflictResolved, RecordID: id, Time: resolvedAt})

	snapshot := store.Snapshot()
	assert.Equal(t, 98.5, snapshot.SyncSuccessRate)
	assert.Zero(t, snapshot.PendingOperations)
	assert.True(t, resolvedAt.Equal(snapshot.LastSyncTime))
}

func TestRecorder_DrainWithoutSuccessKeepsLastSync(t *testing.T) {
	recorder, store := newRecorder(t, nil)
	ctx := context.Background()

	require.NoError(t, recorder.RecordDrain(ctx, &models.SyncOutcome{FailureCount: 2, FinishedAt: time.Now()}))
	assert.True(t, store.Snapshot().LastSyncTime.IsZero())
}
