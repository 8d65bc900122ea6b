package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	clientapi "github.com/iudanet/fieldsync/internal/client/api"
	"github.com/iudanet/fieldsync/internal/client/conflict"
	"github.com/iudanet/fieldsync/internal/client/events"
	"github.com/iudanet/fieldsync/internal/client/storage"
	"github.com/iudanet/fieldsync/internal/models"
)

// DefaultMaxRetries число повторов после первой попытки, затем запись удаляется
const DefaultMaxRetries = 3

// Причины запуска drain
const (
	TriggerConnectivity = "connectivity"
	TriggerQueue        = "queue"
	TriggerManual       = "manual"
)

// ErrDrainInProgress is returned when a drain is already running
var ErrDrainInProgress = errors.New("drain already in progress")

// ConflictResolver определяет то, что оркестратору нужно от conflict.Resolver
type ConflictResolver interface {
	Detect(ctx context.Context, record *models.OfflineRecord) (*models.ConflictItem, error)
	AutoResolve(ctx context.Context, item *models.ConflictItem) (*conflict.Resolution, bool, error)
	Register(ctx context.Context, item *models.ConflictItem) error
	IsOpen(ctx context.Context, id string) (bool, error)
}

// Connectivity reports the current network state
type Connectivity interface {
	IsOnline() bool
}

// Options настройки политики повторов
type Options struct {
	MaxRetries   int
	DropRejected bool // удалять запись сразу при RemoteRejected
}

// Orchestrator drains the queue: conflict check, submission, retry and drop
type Orchestrator struct {
	queue        storage.QueueStorage
	resolver     ConflictResolver
	apiClient    clientapi.ClientAPI
	publisher    events.Publisher
	connectivity Connectivity
	logger       *slog.Logger
	now          func() time.Time

	baseCtx     context.Context
	unsubscribe []func()
	last        *models.SyncOutcome
	wg          sync.WaitGroup
	mu          sync.RWMutex
	inProgress  atomic.Bool
	stopped     bool
	opts        Options
}

// NewOrchestrator creates a new sync orchestrator
func NewOrchestrator(
	queue storage.QueueStorage,
	resolver ConflictResolver,
	apiClient clientapi.ClientAPI,
	publisher events.Publisher,
	connectivity Connectivity,
	opts Options,
	logger *slog.Logger,
) *Orchestrator {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	return &Orchestrator{
		queue:        queue,
		resolver:     resolver,
		apiClient:    apiClient,
		publisher:    publisher,
		connectivity: connectivity,
		opts:         opts,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Start subscribes to the triggers. Drains started by events run in their
// own goroutine with ctx as the base context.
func (o *Orchestrator) Start(ctx context.Context, bus events.Subscriber) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.baseCtx = ctx
	o.stopped = false
	o.unsubscribe = append(o.unsubscribe,
		bus.Subscribe(events.ConnectivityChanged, o.onConnectivityChanged),
		bus.Subscribe(events.QueueNonEmpty, o.onQueueNonEmpty),
		bus.Subscribe(events.ManualRetryRequested, o.onManualRetry),
	)
}

// Stop unsubscribes and waits for a running drain to finish.
// Triggers delivered after Stop are ignored.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	o.stopped = true
	unsubscribe := o.unsubscribe
	o.unsubscribe = nil
	o.mu.Unlock()

	for _, fn := range unsubscribe {
		fn()
	}
	o.wg.Wait()
}

func (o *Orchestrator) onConnectivityChanged(ctx context.Context, e events.Event) {
	if e.Connectivity == nil || !e.Connectivity.IsOnline {
		return
	}
	pending, err := o.Pending(ctx)
	if err != nil {
		o.logger.Warn("Failed to count pending records", "error", err)
		return
	}
	if pending == 0 {
		return
	}
	o.TriggerAsync(TriggerConnectivity)
}

func (o *Orchestrator) onQueueNonEmpty(ctx context.Context, e events.Event) {
	if o.connectivity != nil && !o.connectivity.IsOnline() {
		return
	}
	o.TriggerAsync(TriggerQueue)
}

func (o *Orchestrator) onManualRetry(ctx context.Context, e events.Event) {
	o.TriggerAsync(TriggerManual)
}

// TriggerAsync starts a drain in a new goroutine unless one is running.
// Returns false if the trigger was ignored.
func (o *Orchestrator) TriggerAsync(trigger string) bool {
	if o.inProgress.Load() {
		o.logger.Debug("Drain already in progress, trigger ignored", "trigger", trigger)
		return false
	}

	// wg.Add под mu: Stop не может начать wg.Wait между проверкой и Add
	o.mu.RLock()
	if o.stopped {
		o.mu.RUnlock()
		o.logger.Debug("Orchestrator stopped, trigger ignored", "trigger", trigger)
		return false
	}
	ctx := o.baseCtx
	o.wg.Add(1)
	o.mu.RUnlock()
	if ctx == nil {
		ctx = context.Background()
	}

	go func() {
		defer o.wg.Done()
		if _, err := o.Drain(ctx, trigger); err != nil && !errors.Is(err, ErrDrainInProgress) {
			o.logger.Error("Drain finished with errors", "trigger", trigger, "error", err)
		}
	}()
	return true
}

// Drain transmits every queued submission, then every media record.
// Records are processed sequentially in capture order; a failure of one
// record never aborts the drain.
func (o *Orchestrator) Drain(ctx context.Context, trigger string) (*models.SyncOutcome, error) {
	if !o.inProgress.CompareAndSwap(false, true) {
		return nil, ErrDrainInProgress
	}
	defer o.inProgress.Store(false)

	outcome := &models.SyncOutcome{
		StartedAt: o.now(),
		Trigger:   trigger,
	}

	o.logger.Info("Starting sync drain", "trigger", trigger)

	var errs []error

	// Жалобы, оставшиеся в очереди: их вложения откладываются до следующего drain
	blocked := make(map[string]struct{})

	submissions, err := o.queue.ListAll(ctx, models.RecordTypeSubmission)
	if err != nil {
		errs = append(errs, fmt.Errorf("failed to list submissions: %w", err))
	}
	for _, record := range submissions {
		if synced := o.processSubmission(ctx, record, outcome); !synced {
			if key := businessKeyOf(record); key != "" {
				blocked[key] = struct{}{}
			}
		}
	}

	media, err := o.queue.ListAll(ctx, models.RecordTypeMedia)
	if err != nil {
		errs = append(errs, fmt.Errorf("failed to list media: %w", err))
	}
	for _, record := range media {
		if _, ok := blocked[businessKeyOf(record)]; ok {
			o.logger.Debug("Media deferred until its complaint is synced", "record_id", record.ID)
			continue
		}
		o.processMedia(ctx, record, outcome)
	}

	outcome.FinishedAt = o.now()

	o.mu.Lock()
	o.last = outcome
	o.mu.Unlock()

	o.logger.Info("Sync drain completed",
		"trigger", trigger,
		"success", outcome.SuccessCount,
		"failed", outcome.FailureCount,
		"conflicts", outcome.ConflictCount,
		"dropped", outcome.DroppedCount,
		"duration", outcome.FinishedAt.Sub(outcome.StartedAt))

	result := *outcome
	o.publish(ctx, events.Event{Kind: events.SyncCompleted, Outcome: &result})

	return outcome, errors.Join(errs...)
}

// processSubmission returns true if the record left the queue as synced
func (o *Orchestrator) processSubmission(ctx context.Context, record *models.OfflineRecord, outcome *models.SyncOutcome) bool {
	open, err := o.resolver.IsOpen(ctx, record.ID)
	if err != nil {
		o.logger.Warn("Failed to check conflict state", "record_id", record.ID, "error", err)
		return false
	}
	if open {
		// Ждет ручного разрешения, retry не расходуется
		outcome.ConflictCount++
		return false
	}

	item, err := o.resolver.Detect(ctx, record)
	if err != nil {
		o.handleFailure(ctx, record, fmt.Errorf("conflict check failed: %w", err), outcome)
		return false
	}

	if item != nil {
		res, resolved, err := o.resolver.AutoResolve(ctx, item)
		if err != nil {
			o.handleFailure(ctx, record, err, outcome)
			return false
		}
		if resolved {
			o.logger.Info("Record synced via auto-resolution", "record_id", record.ID, "rules", res.Rules)
			outcome.SuccessCount++
			o.publish(ctx, events.Event{Kind: events.RecordSynced, RecordID: record.ID, RecordType: record.Type})
			return true
		}

		if err := o.resolver.Register(ctx, item); err != nil {
			o.logger.Error("Failed to register conflict", "record_id", record.ID, "error", err)
			return false
		}
		o.logger.Info("Conflict awaiting manual resolution", "record_id", record.ID, "fields", item.ConflictFields)
		outcome.ConflictCount++
		o.publish(ctx, events.Event{Kind: events.ConflictRegistered, RecordID: record.ID, RecordType: record.Type, Conflict: item})
		return false
	}

	if err := o.submit(ctx, record); err != nil {
		o.handleFailure(ctx, record, err, outcome)
		return false
	}

	o.succeed(ctx, record, outcome)
	return true
}

// submit создает сущность; если она уже существовала, обновляет ее локальными полями
func (o *Orchestrator) submit(ctx context.Context, record *models.OfflineRecord) error {
	var complaint models.Complaint
	if err := json.Unmarshal(record.Payload, &complaint); err != nil {
		return fmt.Errorf("failed to decode complaint payload: %w", err)
	}

	resp, err := o.apiClient.SubmitComplaint(ctx, clientapi.ComplaintToWire(&complaint, record.CapturedAt))
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("%w: submission not accepted", clientapi.ErrRemoteRejected)
	}
	if resp.Created {
		return nil
	}

	// Повторная отправка после потерянного ответа дает ту же сущность
	if resp.Complaint != nil {
		remote := clientapi.ComplaintFromWire(resp.Complaint)
		if len(complaint.DiffFields(&remote.Complaint)) == 0 {
			return nil
		}
	}

	if _, err := o.apiClient.UpdateComplaint(ctx, complaint.BusinessKey, updateRequest(&complaint)); err != nil {
		return err
	}
	return nil
}

func (o *Orchestrator) processMedia(ctx context.Context, record *models.OfflineRecord, outcome *models.SyncOutcome) {
	var attachment models.MediaAttachment
	if err := json.Unmarshal(record.Payload, &attachment); err != nil {
		o.handleFailure(ctx, record, fmt.Errorf("failed to decode media payload: %w", err), outcome)
		return
	}

	resp, err := o.apiClient.UploadMedia(ctx, clientapi.MediaToWire(&attachment))
	if err == nil && !resp.Success {
		err = fmt.Errorf("%w: upload not accepted", clientapi.ErrRemoteRejected)
	}
	if err != nil {
		o.handleFailure(ctx, record, err, outcome)
		return
	}

	o.succeed(ctx, record, outcome)
}

func (o *Orchestrator) succeed(ctx context.Context, record *models.OfflineRecord, outcome *models.SyncOutcome) {
	if err := o.queue.Remove(ctx, record.ID, record.Type); err != nil {
		// Повторная отправка безопасна: create идемпотентен по business key
		o.logger.Error("Failed to remove synced record", "record_id", record.ID, "error", err)
	}
	outcome.SuccessCount++
	o.logger.Debug("Record synced", "record_id", record.ID, "type", record.Type)
	o.publish(ctx, events.Event{Kind: events.RecordSynced, RecordID: record.ID, RecordType: record.Type})
}

// handleFailure converts a per-record failure into retry bookkeeping
func (o *Orchestrator) handleFailure(ctx context.Context, record *models.OfflineRecord, cause error, outcome *models.SyncOutcome) {
	outcome.FailureCount++

	failed := events.Event{
		Kind:       events.RecordFailed,
		RecordID:   record.ID,
		RecordType: record.Type,
		Error:      cause.Error(),
		RetryCount: record.RetryCount,
	}

	// Нет сети - запись остается Pending без расхода попытки
	if errors.Is(cause, clientapi.ErrNetworkUnavailable) {
		o.logger.Warn("Record not sent, network unavailable", "record_id", record.ID, "error", cause)
		o.publish(ctx, failed)
		return
	}

	retryCount, err := o.queue.IncrementRetry(ctx, record.ID, record.Type)
	if err != nil {
		o.logger.Error("Failed to increment retry count", "record_id", record.ID, "error", err)
		o.publish(ctx, failed)
		return
	}
	failed.RetryCount = retryCount

	drop := retryCount > o.opts.MaxRetries
	if o.opts.DropRejected && errors.Is(cause, clientapi.ErrRemoteRejected) {
		drop = true
	}

	o.logger.Warn("Record sync failed",
		"record_id", record.ID,
		"retry_count", retryCount,
		"drop", drop,
		"error", cause)
	o.publish(ctx, failed)

	if !drop {
		return
	}

	if err := o.queue.Remove(ctx, record.ID, record.Type); err != nil {
		o.logger.Error("Failed to drop record", "record_id", record.ID, "error", err)
		return
	}
	outcome.DroppedCount++
	o.publish(ctx, events.Event{
		Kind:       events.RecordDropped,
		RecordID:   record.ID,
		RecordType: record.Type,
		Error:      cause.Error(),
		RetryCount: retryCount,
	})
}

func (o *Orchestrator) publish(ctx context.Context, e events.Event) {
	if o.publisher != nil {
		o.publisher.Publish(ctx, e)
	}
}

// Pending returns the number of records waiting for a drain
func (o *Orchestrator) Pending(ctx context.Context) (int, error) {
	stats, err := o.queue.Stats(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get queue stats: %w", err)
	}
	return stats.PendingCount, nil
}

// LastOutcome returns a copy of the last drain outcome or nil
func (o *Orchestrator) LastOutcome() *models.SyncOutcome {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if o.last == nil {
		return nil
	}
	outcome := *o.last
	return &outcome
}

// InProgress reports whether a drain is running
func (o *Orchestrator) InProgress() bool {
	return o.inProgress.Load()
}

// businessKeyOf извлекает business key из payload записи
func businessKeyOf(record *models.OfflineRecord) string {
	var payload struct {
		BusinessKey string `json:"business_key"`
	}
	if err := json.Unmarshal(record.Payload, &payload); err != nil {
		return ""
	}
	return payload.BusinessKey
}
