package boltdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/fieldsync/internal/client/storage"
	"github.com/iudanet/fieldsync/internal/models"
)

var (
	// BoltDB bucket names
	bucketSubmissions = []byte("submissions")
	bucketMedia       = []byte("media")
	bucketConfig      = []byte("config")
	bucketConflicts   = []byte("conflicts")
	bucketMetadata    = []byte("metadata")

	allBuckets = [][]byte{bucketSubmissions, bucketMedia, bucketConfig, bucketConflicts, bucketMetadata}
)

// openTimeout ограничивает ожидание file lock, если БД уже открыта другим процессом
const openTimeout = 2 * time.Second

// ErrLocked is returned by New when another process holds the database file
var ErrLocked = errors.New("database is locked by another process")

// Storage represents BoltDB storage implementation for client
type Storage struct {
	db  *bbolt.DB
	now func() time.Time
}

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string) (*Storage, error) {
	// Открываем BoltDB
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: openTimeout})
	if err != nil {
		if errors.Is(err, bbolt.ErrTimeout) {
			return nil, fmt.Errorf("%w: %s", ErrLocked, dbPath)
		}
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &Storage{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}

	// Инициализируем buckets
	if err := s.initBuckets(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Path returns the database file path
func (s *Storage) Path() string {
	if s.db == nil {
		return ""
	}
	return s.db.Path()
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}

// bucketFor возвращает bucket для раздела очереди
func bucketFor(recordType models.RecordType) ([]byte, error) {
	switch recordType {
	case models.RecordTypeSubmission:
		return bucketSubmissions, nil
	case models.RecordTypeMedia:
		return bucketMedia, nil
	case models.RecordTypeConfig:
		return bucketConfig, nil
	}
	return nil, fmt.Errorf("%w: %q", storage.ErrInvalidRecordType, recordType)
}

// writeFailure оборачивает ошибку записи в ErrStorageFailure, сохраняя sentinel-ошибки хранилища
func writeFailure(op string, err error) error {
	if errors.Is(err, storage.ErrRecordNotFound) ||
		errors.Is(err, storage.ErrConflictNotFound) ||
		errors.Is(err, storage.ErrInvalidRecordType) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", storage.ErrStorageFailure, op, err)
}
