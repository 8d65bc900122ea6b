package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/fieldsync/internal/client/storage"
	"github.com/iudanet/fieldsync/internal/models"
)

// SaveConflict registers a conflict for a queued record.
// The record must still exist; this keeps every conflict backed by a record.
func (s *Storage) SaveConflict(ctx context.Context, item *models.ConflictItem) error {
	if s.db == nil {
		return fmt.Errorf("%w: %w", storage.ErrStorageFailure, storage.ErrStorageClosed)
	}

	bucketName, err := bucketFor(item.Type)
	if err != nil {
		return err
	}

	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal conflict: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		// Проверяем в той же транзакции, что запись еще в очереди
		if tx.Bucket(bucketName).Get([]byte(item.ID)) == nil {
			return storage.ErrRecordNotFound
		}
		return tx.Bucket(bucketConflicts).Put([]byte(item.ID), data)
	})
	if err != nil {
		return writeFailure("save conflict", err)
	}

	return nil
}

// GetConflict returns the conflict registered for the record id
func (s *Storage) GetConflict(ctx context.Context, id string) (*models.ConflictItem, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var item *models.ConflictItem

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketConflicts).Get([]byte(id))
		if data == nil {
			return storage.ErrConflictNotFound
		}

		item = &models.ConflictItem{}
		if err := json.Unmarshal(data, item); err != nil {
			return fmt.Errorf("failed to unmarshal conflict: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// ListConflicts returns all open conflicts
func (s *Storage) ListConflicts(ctx context.Context) ([]*models.ConflictItem, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	items := []*models.ConflictItem{}

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketConflicts).ForEach(func(k, v []byte) error {
			var item models.ConflictItem
			if err := json.Unmarshal(v, &item); err != nil {
				return fmt.Errorf("failed to unmarshal conflict %s: %w", k, err)
			}
			items = append(items, &item)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list conflicts: %w", err)
	}

	return items, nil
}

// DeleteConflict removes the conflict only; the record stays queued
func (s *Storage) DeleteConflict(ctx context.Context, id string) error {
	if s.db == nil {
		return fmt.Errorf("%w: %w", storage.ErrStorageFailure, storage.ErrStorageClosed)
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketConflicts)
		if bucket.Get([]byte(id)) == nil {
			return storage.ErrConflictNotFound
		}
		return bucket.Delete([]byte(id))
	})
	if err != nil {
		return writeFailure("delete conflict", err)
	}

	return nil
}
