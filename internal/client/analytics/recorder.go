package analytics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/fieldsync/internal/client/events"
	"github.com/iudanet/fieldsync/internal/client/storage"
	"github.com/iudanet/fieldsync/internal/models"
)

// Шаги скользящего процента успеха
const (
	successStep = 0.5
	failureStep = 2.0
)

// QueueStatter предоставляет статистику очереди
type QueueStatter interface {
	Stats(ctx context.Context) (storage.QueueStats, error)
}

// Recorder observes connectivity transitions and drain results.
// It never mutates the queue.
type Recorder struct {
	store       *Store
	queue       QueueStatter
	logger      *slog.Logger
	now         func() time.Time
	unsubscribe []func()
	mu          sync.Mutex
}

// NewRecorder создает recorder. queue может быть nil.
func NewRecorder(store *Store, queue QueueStatter, logger *slog.Logger) *Recorder {
	return &Recorder{
		store:  store,
		queue:  queue,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Attach subscribes the recorder to the bus
func (r *Recorder) Attach(bus events.Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.unsubscribe = append(r.unsubscribe,
		bus.Subscribe(events.ConnectivityChanged, r.handle),
		bus.Subscribe(events.RecordSynced, r.handle),
		bus.Subscribe(events.RecordFailed, r.handle),
		bus.Subscribe(events.SyncCompleted, r.handle),
		bus.Subscribe(events.QueueNonEmpty, r.handle),
		bus.Subscribe(events.ConflictResolved, r.handle),
	)
}

// Detach unsubscribes the recorder
func (r *Recorder) Detach() {
	r.mu.Lock()
	unsubscribe := r.unsubscribe
	r.unsubscribe = nil
	r.mu.Unlock()

	for _, fn := range unsubscribe {
		fn()
	}
}

func (r *Recorder) handle(ctx context.Context, e events.Event) {
	var err error

	switch e.Kind {
	case events.ConnectivityChanged:
		if e.Connectivity != nil {
			err = r.RecordConnectivity(ctx, *e.Connectivity, e.Time)
		}
	case events.RecordSynced:
		err = r.RecordSuccess(ctx)
	case events.RecordFailed:
		// Удаленная запись тоже публикует RecordFailed, штраф один
		err = r.RecordFailure(ctx)
	case events.SyncCompleted:
		err = r.RecordDrain(ctx, e.Outcome)
	case events.QueueNonEmpty:
		err = r.RefreshQueue(ctx)
	case events.ConflictResolved:
		err = r.RecordResolution(ctx, e.Time)
	}

	if err != nil {
		r.logger.Warn("Failed to record analytics", "event", e.Kind, "error", err)
	}
}

// RecordConnectivity opens an offline session on the offline transition and
// closes it on the next online transition. The session start is persisted,
// so a restart in the middle of a session still accounts its duration.
func (r *Recorder) RecordConnectivity(ctx context.Context, state models.ConnectivityState, at time.Time) error {
	if at.IsZero() {
		at = r.now()
	}

	return r.store.Update(ctx, func(s *models.HealthSnapshot) {
		if !state.IsOnline {
			if s.OfflineSince.IsZero() {
				s.OfflineSince = at
			}
			return
		}

		if s.OfflineSince.IsZero() {
			return
		}
		if d := at.Sub(s.OfflineSince); d > 0 {
			s.TotalOfflineTime += d
		}
		s.OfflineSessions++
		s.OfflineSince = time.Time{}
	})
}

// RecordSuccess raises the success rate by 0.5, capped at 100
func (r *Recorder) RecordSuccess(ctx context.Context) error {
	return r.store.Update(ctx, func(s *models.HealthSnapshot) {
		s.SyncSuccessRate = min(s.SyncSuccessRate+successStep, 100)
	})
}

// RecordFailure lowers the success rate by 2, floored at 0
func (r *Recorder) RecordFailure(ctx context.Context) error {
	return r.store.Update(ctx, func(s *models.HealthSnapshot) {
		s.SyncSuccessRate = max(s.SyncSuccessRate-failureStep, 0)
	})
}

// RecordDrain refreshes queue figures and the last successful sync time
func (r *Recorder) RecordDrain(ctx context.Context, outcome *models.SyncOutcome) error {
	stats, statsErr := r.queueStats(ctx)

	err := r.store.Update(ctx, func(s *models.HealthSnapshot) {
		if statsErr == nil {
			s.PendingOperations = stats.PendingCount
			s.DataUsage = stats.PayloadBytes
		}
		if outcome != nil && outcome.SuccessCount > 0 {
			s.LastSyncTime = outcome.FinishedAt
			if s.LastSyncTime.IsZero() {
				s.LastSyncTime = r.now()
			}
		}
	})
	if err != nil {
		return err
	}
	return statsErr
}

// RecordResolution accounts a manually resolved conflict as a synced record:
// the success rate rises, queue figures and the last sync time are refreshed.
func (r *Recorder) RecordResolution(ctx context.Context, at time.Time) error {
	if at.IsZero() {
		at = r.now()
	}
	stats, statsErr := r.queueStats(ctx)

	err := r.store.Update(ctx, func(s *models.HealthSnapshot) {
		s.SyncSuccessRate = min(s.SyncSuccessRate+successStep, 100)
		s.LastSyncTime = at
		if statsErr == nil {
			s.PendingOperations = stats.PendingCount
			s.DataUsage = stats.PayloadBytes
		}
	})
	if err != nil {
		return err
	}
	return statsErr
}

// RefreshQueue updates pending count and data usage from the queue
func (r *Recorder) RefreshQueue(ctx context.Context) error {
	stats, err := r.queueStats(ctx)
	if err != nil {
		return err
	}
	return r.store.Update(ctx, func(s *models.HealthSnapshot) {
		s.PendingOperations = stats.PendingCount
		s.DataUsage = stats.PayloadBytes
	})
}

func (r *Recorder) queueStats(ctx context.Context) (storage.QueueStats, error) {
	if r.queue == nil {
		return storage.QueueStats{}, nil
	}
	return r.queue.Stats(ctx)
}

// Report returns the current health report
func (r *Recorder) Report() models.HealthReport {
	return Report(r.store.Snapshot())
}
