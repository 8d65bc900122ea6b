package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/fieldsync/internal/client/storage"
	"github.com/iudanet/fieldsync/internal/models"
)

// CacheConfig stores a configuration value under key in the config partition.
// The value is kept as a config OfflineRecord whose id is the key.
func (s *Storage) CacheConfig(ctx context.Context, key string, value []byte) error {
	if s.db == nil {
		return fmt.Errorf("%w: %w", storage.ErrStorageFailure, storage.ErrStorageClosed)
	}
	if key == "" {
		return fmt.Errorf("config key cannot be empty")
	}
	if !json.Valid(value) {
		return fmt.Errorf("config value for %q is not valid JSON", key)
	}

	data, err := json.Marshal(&models.OfflineRecord{
		ID:         key,
		Type:       models.RecordTypeConfig,
		Payload:    json.RawMessage(value),
		CapturedAt: s.now(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketConfig).Put([]byte(key), data)
	})
	if err != nil {
		return writeFailure("cache config", err)
	}

	return nil
}

// GetCachedConfig returns the cached value for key or ErrConfigNotFound
func (s *Storage) GetCachedConfig(ctx context.Context, key string) ([]byte, error) {
	record, err := s.Get(ctx, key, models.RecordTypeConfig)
	if err != nil {
		if err == storage.ErrRecordNotFound {
			return nil, storage.ErrConfigNotFound
		}
		return nil, err
	}
	return record.Payload, nil
}

// ListCachedConfig returns all cached configuration values
func (s *Storage) ListCachedConfig(ctx context.Context) (map[string][]byte, error) {
	records, err := s.ListAll(ctx, models.RecordTypeConfig)
	if err != nil {
		return nil, err
	}

	values := make(map[string][]byte, len(records))
	for _, record := range records {
		values[record.ID] = record.Payload
	}
	return values, nil
}
