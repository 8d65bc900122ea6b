package storage

import (
	"context"

	"github.com/iudanet/fieldsync/internal/models"
)

//go:generate moq -out queue_mock.go . QueueStorage

// QueueStorage defines the durable offline queue on the client.
// The key space is partitioned by record type; ids are unique across partitions.
type QueueStorage interface {
	// Save durably stores a new record and returns its id.
	// The write is committed before Save returns. On failure the error wraps
	// ErrStorageFailure and the record must be considered not queued.
	Save(ctx context.Context, recordType models.RecordType, payload []byte) (string, error)

	// Remove deletes the record and any conflict registered for it.
	// Removing a missing record is not an error.
	Remove(ctx context.Context, id string, recordType models.RecordType) error

	// ListAll returns records of a type in capture order (oldest first)
	ListAll(ctx context.Context, recordType models.RecordType) ([]*models.OfflineRecord, error)

	// Get returns a single record
	// Returns ErrRecordNotFound if record doesn't exist
	Get(ctx context.Context, id string, recordType models.RecordType) (*models.OfflineRecord, error)

	// IncrementRetry increases RetryCount by one and returns the new value
	IncrementRetry(ctx context.Context, id string, recordType models.RecordType) (int, error)

	// Stats returns the number of pending records and their payload size in bytes.
	// Cached config is not counted as pending work.
	Stats(ctx context.Context) (QueueStats, error)

	// CacheConfig stores a configuration value for offline use
	CacheConfig(ctx context.Context, key string, value []byte) error

	// GetCachedConfig returns a cached configuration value
	// Returns ErrConfigNotFound if key is absent
	GetCachedConfig(ctx context.Context, key string) ([]byte, error)

	// ListCachedConfig returns all cached configuration keys and values
	ListCachedConfig(ctx context.Context) (map[string][]byte, error)
}

// QueueStats summarizes pending work in the queue
type QueueStats struct {
	PerType      map[models.RecordType]int
	PendingCount int
	PayloadBytes int64
}
