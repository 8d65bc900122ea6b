// Package capture принимает данные от producer'ов (формы жалоб, вложения,
// загрузчик конфигурации) и ставит их в offline-очередь.
package capture

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	clientapi "github.com/iudanet/fieldsync/internal/client/api"
	"github.com/iudanet/fieldsync/internal/client/events"
	"github.com/iudanet/fieldsync/internal/client/storage"
	"github.com/iudanet/fieldsync/internal/models"
	"github.com/iudanet/fieldsync/internal/validation"
)

// BusinessKeyPrefix префикс генерируемых business key
const BusinessKeyPrefix = "CMP-"

// ErrInvalidInput wraps validation failures of producer payloads
var ErrInvalidInput = errors.New("invalid input")

// ErrDirectSubmitFailed is returned in online-only mode when the remote call fails
var ErrDirectSubmitFailed = errors.New("offline queue unavailable and direct submission failed")

// Receipt подтверждает прием данных
type Receipt struct {
	RecordID        string `json:"record_id,omitempty"` // ID записи в очереди (пусто в online-only режиме)
	BusinessKey     string `json:"business_key"`
	RemoteID        string `json:"remote_id,omitempty"`
	ReferenceNumber string `json:"reference_number,omitempty"`
	Queued          bool   `json:"queued"` // true - оптимистичное локальное подтверждение
}

// Service is the producer facade over the durable queue.
// With a nil queue it works in online-only mode: data goes straight to the
// remote API and nothing is queued.
type Service struct {
	queue     storage.QueueStorage
	apiClient clientapi.ClientAPI
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
	memConfig map[string][]byte
	operator  string
	mu        sync.RWMutex
}

// NewService создает сервис приема данных
func NewService(
	queue storage.QueueStorage,
	apiClient clientapi.ClientAPI,
	publisher events.Publisher,
	operator string,
	logger *slog.Logger,
) *Service {
	return &Service{
		queue:     queue,
		apiClient: apiClient,
		publisher: publisher,
		operator:  operator,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
		memConfig: make(map[string][]byte),
	}
}

// Degraded reports whether the service runs without the offline queue
func (s *Service) Degraded() bool {
	return s.queue == nil
}

// NewBusinessKey generates a business key for a new complaint
func NewBusinessKey() string {
	return BusinessKeyPrefix + uuid.NewString()
}

// SubmitComplaint validates the complaint and queues it. The receipt is
// returned as soon as the record is durably stored, even while offline.
func (s *Service) SubmitComplaint(ctx context.Context, c models.Complaint) (*Receipt, error) {
	if c.BusinessKey == "" {
		c.BusinessKey = NewBusinessKey()
	}
	if c.Status == "" {
		c.Status = models.StatusNew
	}
	if c.CapturedBy == "" {
		c.CapturedBy = s.operator
	}

	if err := validation.ValidateComplaint(&c); err != nil {
		return nil, fmt.Errorf("%w: complaint: %w", ErrInvalidInput, err)
	}

	if s.Degraded() {
		resp, err := s.apiClient.SubmitComplaint(ctx, clientapi.ComplaintToWire(&c, s.now()))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDirectSubmitFailed, err)
		}
		receipt := &Receipt{BusinessKey: c.BusinessKey, RemoteID: resp.ID}
		if resp.Complaint != nil {
			receipt.ReferenceNumber = resp.Complaint.ReferenceNumber
		}
		s.logger.Info("Complaint submitted directly", "business_key", c.BusinessKey, "remote_id", resp.ID)
		return receipt, nil
	}

	payload, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal complaint: %w", err)
	}

	id, err := s.Enqueue(ctx, models.RecordTypeSubmission, payload)
	if err != nil {
		return nil, err
	}

	return &Receipt{RecordID: id, BusinessKey: c.BusinessKey, Queued: true}, nil
}

// AttachMedia validates and queues an attachment
func (s *Service) AttachMedia(ctx context.Context, m models.MediaAttachment) (*Receipt, error) {
	if err := validation.ValidateMedia(&m); err != nil {
		return nil, fmt.Errorf("%w: media: %w", ErrInvalidInput, err)
	}

	if s.Degraded() {
		resp, err := s.apiClient.UploadMedia(ctx, clientapi.MediaToWire(&m))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDirectSubmitFailed, err)
		}
		return &Receipt{BusinessKey: m.BusinessKey, RemoteID: resp.ID}, nil
	}

	payload, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal media: %w", err)
	}

	id, err := s.Enqueue(ctx, models.RecordTypeMedia, payload)
	if err != nil {
		return nil, err
	}

	return &Receipt{RecordID: id, BusinessKey: m.BusinessKey, Queued: true}, nil
}

// Enqueue is the raw producer entry point: it stores the payload and
// notifies the orchestrator. A StorageFailure is returned to the caller;
// the record is then not queued.
func (s *Service) Enqueue(ctx context.Context, recordType models.RecordType, payload []byte) (string, error) {
	if s.Degraded() {
		return "", fmt.Errorf("%w: offline queue is not available", storage.ErrStorageFailure)
	}

	id, err := s.queue.Save(ctx, recordType, payload)
	if err != nil {
		s.logger.Error("Failed to queue record", "type", recordType, "error", err)
		return "", err
	}

	s.logger.Info("Record queued", "record_id", id, "type", recordType, "size", len(payload))

	if recordType != models.RecordTypeConfig && s.publisher != nil {
		s.publisher.Publish(ctx, events.Event{Kind: events.QueueNonEmpty, RecordID: id, RecordType: recordType})
	}
	return id, nil
}

// RefreshConfig fetches remote configuration and caches every key.
// Returns the number of cached keys.
func (s *Service) RefreshConfig(ctx context.Context) (int, error) {
	resp, err := s.apiClient.FetchConfig(ctx)
	if err != nil {
		return 0, err
	}

	for key, value := range resp.Values {
		if s.Degraded() {
			s.mu.Lock()
			s.memConfig[key] = append([]byte(nil), value...)
			s.mu.Unlock()
			continue
		}
		if err := s.queue.CacheConfig(ctx, key, value); err != nil {
			return 0, fmt.Errorf("failed to cache config %q: %w", key, err)
		}
	}

	s.logger.Info("Configuration cached", "keys", len(resp.Values))
	return len(resp.Values), nil
}

// Config returns a cached configuration value
func (s *Service) Config(ctx context.Context, key string) ([]byte, error) {
	if s.Degraded() {
		s.mu.RLock()
		defer s.mu.RUnlock()
		value, ok := s.memConfig[key]
		if !ok {
			return nil, storage.ErrConfigNotFound
		}
		return value, nil
	}
	return s.queue.GetCachedConfig(ctx, key)
}

// ConfigKeys returns cached configuration keys in sorted order
func (s *Service) ConfigKeys(ctx context.Context) ([]string, error) {
	if s.Degraded() {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return sortedKeys(s.memConfig), nil
	}

	values, err := s.queue.ListCachedConfig(ctx)
	if err != nil {
		return nil, err
	}
	return sortedKeys(values), nil
}

func sortedKeys(values map[string][]byte) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
