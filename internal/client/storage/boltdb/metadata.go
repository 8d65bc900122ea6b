package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/fieldsync/internal/client/storage"
	"github.com/iudanet/fieldsync/internal/models"
)

const (
	keyAnalyticsSnapshot = "analytics_snapshot"
)

// SaveAnalytics saves the analytics snapshot in the metadata bucket
func (s *Storage) SaveAnalytics(ctx context.Context, snapshot *models.HealthSnapshot) error {
	if s.db == nil {
		return writeFailure("save analytics", storage.ErrStorageClosed)
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal analytics snapshot: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}
		return bucket.Put([]byte(keyAnalyticsSnapshot), data)
	})
	if err != nil {
		return writeFailure("save analytics", err)
	}

	return nil
}

// LoadAnalytics retrieves the analytics snapshot
// Returns nil if nothing has been saved yet
func (s *Storage) LoadAnalytics(ctx context.Context) (*models.HealthSnapshot, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var snapshot *models.HealthSnapshot

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		data := bucket.Get([]byte(keyAnalyticsSnapshot))
		if data == nil {
			// Первый запуск - статистики еще нет
			return nil
		}

		snapshot = &models.HealthSnapshot{}
		return json.Unmarshal(data, snapshot)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load analytics snapshot: %w", err)
	}

	return snapshot, nil
}
