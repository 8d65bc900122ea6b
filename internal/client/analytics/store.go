// Package analytics ведет статистику offline-конвейера и считает health score.
package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/iudanet/fieldsync/internal/client/storage"
	"github.com/iudanet/fieldsync/internal/models"
)

// Store holds the persisted HealthSnapshot. It replaces module-level
// counters with an explicit Init/Flush lifecycle.
type Store struct {
	storage  storage.AnalyticsStorage
	logger   *slog.Logger
	snapshot models.HealthSnapshot
	mu       sync.Mutex
	ready    bool
}

// NewStore создает store. storage может быть nil: тогда статистика живет только в памяти.
func NewStore(st storage.AnalyticsStorage, logger *slog.Logger) *Store {
	return &Store{
		storage:  st,
		logger:   logger,
		snapshot: defaultSnapshot(),
	}
}

func defaultSnapshot() models.HealthSnapshot {
	return models.HealthSnapshot{SyncSuccessRate: 100}
}

// Init loads the persisted snapshot or starts from defaults
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ready = true
	if s.storage == nil {
		return nil
	}

	loaded, err := s.storage.LoadAnalytics(ctx)
	if err != nil {
		return fmt.Errorf("failed to load analytics: %w", err)
	}
	if loaded != nil {
		s.snapshot = *loaded
		s.snapshot.SyncSuccessRate = clampRate(s.snapshot.SyncSuccessRate)
	}

	s.logger.Debug("Analytics initialized",
		"success_rate", s.snapshot.SyncSuccessRate,
		"offline_sessions", s.snapshot.OfflineSessions)
	return nil
}

// Flush persists the current snapshot
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	snapshot := s.snapshot
	s.mu.Unlock()

	return s.save(ctx, &snapshot)
}

// Snapshot returns a copy of the current snapshot
func (s *Store) Snapshot() models.HealthSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// Update mutates the snapshot under lock and persists the result
func (s *Store) Update(ctx context.Context, fn func(*models.HealthSnapshot)) error {
	s.mu.Lock()
	if !s.ready {
		s.mu.Unlock()
		return fmt.Errorf("analytics store is not initialized")
	}
	fn(&s.snapshot)
	s.snapshot.SyncSuccessRate = clampRate(s.snapshot.SyncSuccessRate)
	snapshot := s.snapshot
	s.mu.Unlock()

	return s.save(ctx, &snapshot)
}

func (s *Store) save(ctx context.Context, snapshot *models.HealthSnapshot) error {
	if s.storage == nil {
		return nil
	}
	if err := s.storage.SaveAnalytics(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to save analytics: %w", err)
	}
	return nil
}

func clampRate(rate float64) float64 {
	return min(max(rate, 0), 100)
}
