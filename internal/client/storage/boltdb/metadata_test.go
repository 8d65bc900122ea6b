package boltdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/fieldsync/internal/models"
)

func TestStorage_Analytics(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	// До первого сохранения статистики нет
	snapshot, err := store.LoadAnalytics(ctx)
	require.NoError(t, err)
	assert.Nil(t, snapshot)

	lastSync := time.Date(2026, 4, 2, 12, 30, 0, 0, time.UTC)
	saved := &models.HealthSnapshot{
		TotalOfflineTime:  90 * time.Minute,
		OfflineSessions:   3,
		PendingOperations: 4,
		SyncSuccessRate:   97.5,
		DataUsage:         2048,
		LastSyncTime:      lastSync,
	}
	require.NoError(t, store.SaveAnalytics(ctx, saved))

	loaded, err := store.LoadAnalytics(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, saved.TotalOfflineTime, loaded.TotalOfflineTime)
	assert.Equal(t, 3, loaded.OfflineSessions)
	assert.Equal(t, 97.5, loaded.SyncSuccessRate)
	assert.True(t, lastSync.Equal(loaded.LastSyncTime))
}
