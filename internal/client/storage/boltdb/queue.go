package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/fieldsync/internal/client/storage"
	"github.com/iudanet/fieldsync/internal/models"
)

// Save durably stores a new record in the partition of recordType
func (s *Storage) Save(ctx context.Context, recordType models.RecordType, payload []byte) (string, error) {
	if s.db == nil {
		return "", fmt.Errorf("%w: %w", storage.ErrStorageFailure, storage.ErrStorageClosed)
	}

	bucketName, err := bucketFor(recordType)
	if err != nil {
		return "", err
	}

	if !json.Valid(payload) {
		return "", fmt.Errorf("payload of %s record is not valid JSON", recordType)
	}

	capturedAt := s.now()
	record := &models.OfflineRecord{
		ID:         models.NewRecordID(recordType, capturedAt),
		Type:       recordType,
		Payload:    json.RawMessage(payload),
		CapturedAt: capturedAt,
		RetryCount: 0,
	}

	// Сериализуем запись в JSON
	data, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to marshal record: %w", err)
	}

	// Update возвращается только после fsync, запись подтверждена на диске
	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		if bucket == nil {
			return fmt.Errorf("bucket %s not found", bucketName)
		}
		return bucket.Put([]byte(record.ID), data)
	})
	if err != nil {
		return "", writeFailure("save record", err)
	}

	return record.ID, nil
}

// Remove deletes the record together with its conflict in one transaction
func (s *Storage) Remove(ctx context.Context, id string, recordType models.RecordType) error {
	if s.db == nil {
		return fmt.Errorf("%w: %w", storage.ErrStorageFailure, storage.ErrStorageClosed)
	}

	bucketName, err := bucketFor(recordType)
	if err != nil {
		return err
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketName).Delete([]byte(id)); err != nil {
			return fmt.Errorf("failed to delete record: %w", err)
		}
		// Конфликт не может пережить свою запись
		if err := tx.Bucket(bucketConflicts).Delete([]byte(id)); err != nil {
			return fmt.Errorf("failed to delete conflict: %w", err)
		}
		return nil
	})
	if err != nil {
		return writeFailure("remove record", err)
	}

	return nil
}

// ListAll returns records of a type ordered by id, i.e. in capture order
func (s *Storage) ListAll(ctx context.Context, recordType models.RecordType) ([]*models.OfflineRecord, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	bucketName, err := bucketFor(recordType)
	if err != nil {
		return nil, err
	}

	records := []*models.OfflineRecord{}

	err = s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketName)
		if bucket == nil {
			return nil
		}

		// bbolt итерирует ключи в отсортированном порядке
		return bucket.ForEach(func(k, v []byte) error {
			var record models.OfflineRecord
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("failed to unmarshal record %s: %w", k, err)
			}
			records = append(records, &record)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s records: %w", recordType, err)
	}

	return records, nil
}

// Get returns a single record by id
func (s *Storage) Get(ctx context.Context, id string, recordType models.RecordType) (*models.OfflineRecord, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	bucketName, err := bucketFor(recordType)
	if err != nil {
		return nil, err
	}

	var record *models.OfflineRecord

	err = s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketName).Get([]byte(id))
		if data == nil {
			return storage.ErrRecordNotFound
		}

		record = &models.OfflineRecord{}
		if err := json.Unmarshal(data, record); err != nil {
			return fmt.Errorf("failed to unmarshal record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// IncrementRetry increases RetryCount of the record and returns the new value
func (s *Storage) IncrementRetry(ctx context.Context, id string, recordType models.RecordType) (int, error) {
	if s.db == nil {
		return 0, fmt.Errorf("%w: %w", storage.ErrStorageFailure, storage.ErrStorageClosed)
	}

	bucketName, err := bucketFor(recordType)
	if err != nil {
		return 0, err
	}

	var retryCount int

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketName)

		data := bucket.Get([]byte(id))
		if data == nil {
			return storage.ErrRecordNotFound
		}

		var record models.OfflineRecord
		if err := json.Unmarshal(data, &record); err != nil {
			return fmt.Errorf("failed to unmarshal record: %w", err)
		}

		record.RetryCount++
		retryCount = record.RetryCount

		updated, err := json.Marshal(&record)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		return bucket.Put([]byte(id), updated)
	})
	if err != nil {
		return 0, writeFailure("increment retry", err)
	}

	return retryCount, nil
}

// Stats counts pending submission and media records and sums their payload size
func (s *Storage) Stats(ctx context.Context) (storage.QueueStats, error) {
	stats := storage.QueueStats{PerType: make(map[models.RecordType]int)}

	if s.db == nil {
		return stats, storage.ErrStorageClosed
	}

	err := s.db.View(func(tx *bbolt.Tx) error {
		for _, recordType := range []models.RecordType{models.RecordTypeSubmission, models.RecordTypeMedia} {
			bucketName, _ := bucketFor(recordType)
			err := tx.Bucket(bucketName).ForEach(func(k, v []byte) error {
				var record models.OfflineRecord
				if err := json.Unmarshal(v, &record); err != nil {
					return fmt.Errorf("failed to unmarshal record %s: %w", k, err)
				}
				stats.PerType[recordType]++
				stats.PendingCount++
				stats.PayloadBytes += int64(record.Size())
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("failed to collect queue stats: %w", err)
	}

	return stats, nil
}
