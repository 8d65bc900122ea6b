package boltdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/fieldsync/internal/client/storage"
	"github.com/iudanet/fieldsync/internal/models"
)

func TestStorage_CacheConfig(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := store.GetCachedConfig(ctx, "categories")
	assert.ErrorIs(t, err, storage.ErrConfigNotFound)

	require.NoError(t, store.CacheConfig(ctx, "categories", []byte(`["plumbing","lighting"]`)))
	require.NoError(t, store.CacheConfig(ctx, "statuses", []byte(`["new","closed"]`)))

	value, err := store.GetCachedConfig(ctx, "categories")
	require.NoError(t, err)
	assert.JSONEq(t, `["plumbing","lighting"]`, string(value))

	// Перезапись значения
	require.NoError(t, store.CacheConfig(ctx, "categories", []byte(`["roads"]`)))
	value, err = store.GetCachedConfig(ctx, "categories")
	require.NoError(t, err)
	assert.JSONEq(t, `["roads"]`, string(value))

	all, err := store.ListCachedConfig(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	records, err := store.ListAll(ctx, models.RecordTypeConfig)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestStorage_CacheConfig_Validation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	assert.Error(t, store.CacheConfig(ctx, "", []byte(`1`)))
	assert.Error(t, store.CacheConfig(ctx, "broken", []byte(`{`)))
}
