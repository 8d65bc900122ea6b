// Package daemon собирает компоненты клиента и запускает фоновую синхронизацию.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofrs/flock"

	clientapi "github.com/iudanet/fieldsync/internal/client/api"
	"github.com/iudanet/fieldsync/internal/client/analytics"
	"github.com/iudanet/fieldsync/internal/client/capture"
	"github.com/iudanet/fieldsync/internal/client/conflict"
	"github.com/iudanet/fieldsync/internal/client/events"
	"github.com/iudanet/fieldsync/internal/client/netmon"
	"github.com/iudanet/fieldsync/internal/client/storage"
	"github.com/iudanet/fieldsync/internal/client/storage/boltdb"
	syncer "github.com/iudanet/fieldsync/internal/client/sync"
	"github.com/iudanet/fieldsync/internal/config"
	"github.com/iudanet/fieldsync/internal/logging"
	"github.com/iudanet/fieldsync/internal/models"
)

// ErrDaemonRunning is returned by Open when another process holds the client lock
var ErrDaemonRunning = errors.New("another fieldsync process is already running")

// ErrUnsupportedStrategy is returned by Resolve for unknown strategies
var ErrUnsupportedStrategy = errors.New("unsupported resolution strategy")

// ErrDegraded is returned by operations that need the offline queue
var ErrDegraded = errors.New("offline queue unavailable (online-only mode)")

// Status is the runtime snapshot reported by the observer API and the CLI
type Status struct {
	LastOutcome     *models.SyncOutcome      `json:"last_outcome,omitempty"`
	Connectivity    models.ConnectivityState `json:"connectivity"`
	Health          models.HealthReport      `json:"health"`
	PerType         map[string]int           `json:"per_type,omitempty"`
	StorageError    string                   `json:"storage_error,omitempty"`
	Pending         int                      `json:"pending"`
	PayloadBytes    int64                    `json:"payload_bytes"`
	Degraded        bool                     `json:"degraded"`
	DrainInProgress bool                     `json:"drain_in_progress"`
}

// ResolveRequest describes a manual conflict resolution
type ResolveRequest struct {
	Fields   map[string]string         `json:"fields,omitempty"`
	Strategy models.ResolutionStrategy `json:"strategy"`
}

// App is the composed client: queue store, bus, monitor, resolver,
// orchestrator, analytics and the capture facade.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	lock   *flock.Flock

	store        *boltdb.Storage
	storeErr     error
	apiClient    *clientapi.Client
	bus          *events.Bus
	monitor      *netmon.Monitor
	resolver     *conflict.Resolver
	orchestrator *syncer.Orchestrator
	analytics    *analytics.Store
	recorder     *analytics.Recorder
	capture      *capture.Service
}

// Open acquires the single-instance lock and builds every component.
// If the queue store cannot be opened the app continues in online-only mode.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("daemon requires config")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	lock := flock.New(cfg.Storage.LockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrDaemonRunning, cfg.Storage.LockPath)
	}

	app := &App{
		cfg:       cfg,
		logger:    logger,
		lock:      lock,
		apiClient: clientapi.NewClientWithTimeout(cfg.Remote.URL, cfg.RemoteTimeout()),
		bus:       events.NewBus(logging.NewComponentLogger(logger, "events")),
	}

	store, err := boltdb.New(ctx, cfg.Storage.DBPath)
	if err != nil {
		if errors.Is(err, boltdb.ErrLocked) {
			_ = lock.Unlock()
			return nil, fmt.Errorf("%w: %w", ErrDaemonRunning, err)
		}
		logger.Error("Failed to open offline queue, switching to online-only mode",
			"path", cfg.Storage.DBPath, "error", err)
		app.storeErr = err
	} else {
		app.store = store
	}

	if err := app.compose(ctx); err != nil {
		_ = app.Close()
		return nil, err
	}
	return app, nil
}

func (a *App) compose(ctx context.Context) error {
	var (
		queue        storage.QueueStorage
		analyticsDB  storage.AnalyticsStorage
		queueStatter analytics.QueueStatter
	)
	if a.store != nil {
		queue = a.store
		analyticsDB = a.store
		queueStatter = a.store
	}

	var native netmon.SignalSource
	if a.cfg.Network.Netlink {
		native = netmon.NewNetlinkSource(logging.NewComponentLogger(a.logger, "netlink"))
	}
	var generic netmon.SignalSource
	if a.cfg.Network.StateFile != "" {
		generic = netmon.NewFileSource(a.cfg.Network.StateFile, logging.NewComponentLogger(a.logger, "netfile"))
	}
	a.monitor = netmon.NewMonitor(generic, native, a.bus, logging.NewComponentLogger(a.logger, "netmon"))

	a.analytics = analytics.NewStore(analyticsDB, logging.NewComponentLogger(a.logger, "analytics"))
	if err := a.analytics.Init(ctx); err != nil {
		return fmt.Errorf("init analytics: %w", err)
	}
	a.recorder = analytics.NewRecorder(a.analytics, queueStatter, logging.NewComponentLogger(a.logger, "analytics"))

	a.capture = capture.NewService(queue, a.apiClient, a.bus, a.cfg.Operator.ID,
		logging.NewComponentLogger(a.logger, "capture"))

	if a.store == nil {
		return nil
	}

	policy := conflict.Policy{
		DivergenceThreshold:   a.cfg.DivergenceThreshold(),
		PreferLongerNarrative: a.cfg.Conflict.PreferLongerNarrative,
	}
	a.resolver = conflict.NewResolver(a.apiClient, a.store, a.store, policy,
		logging.NewComponentLogger(a.logger, "conflict"))
	a.orchestrator = syncer.NewOrchestrator(a.store, a.resolver, a.apiClient, a.bus, a.monitor,
		syncer.Options{MaxRetries: a.cfg.Sync.MaxRetries, DropRejected: a.cfg.Sync.DropRejected},
		logging.NewComponentLogger(a.logger, "sync"))
	return nil
}

// Degraded reports whether the app runs without the offline queue
func (a *App) Degraded() bool {
	return a.store == nil
}

// Bus returns the internal event bus
func (a *App) Bus() *events.Bus {
	return a.bus
}

// Close flushes analytics, closes the store and releases the lock
func (a *App) Close() error {
	var errs []error

	if a.monitor != nil {
		if err := a.monitor.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close monitor: %w", err))
		}
	}
	if a.analytics != nil {
		if err := a.analytics.Flush(context.Background()); err != nil {
			errs = append(errs, fmt.Errorf("flush analytics: %w", err))
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close store: %w", err))
		}
		a.store = nil
	}
	if a.lock != nil {
		if err := a.lock.Unlock(); err != nil {
			errs = append(errs, fmt.Errorf("release lock: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Status returns the current runtime snapshot
func (a *App) Status(ctx context.Context) (*Status, error) {
	st := &Status{
		Connectivity: a.monitor.State(),
		Health:       a.recorder.Report(),
		Degraded:     a.Degraded(),
	}
	if a.storeErr != nil {
		st.StorageError = a.storeErr.Error()
	}
	if a.Degraded() {
		return st, nil
	}

	stats, err := a.store.Stats(ctx)
	if err != nil {
		return nil, err
	}
	st.Pending = stats.PendingCount
	st.PayloadBytes = stats.PayloadBytes
	st.PerType = make(map[string]int, len(stats.PerType))
	for t, n := range stats.PerType {
		st.PerType[string(t)] = n
	}
	st.LastOutcome = a.orchestrator.LastOutcome()
	st.DrainInProgress = a.orchestrator.InProgress()
	return st, nil
}

// Pending returns queued submission and media records in capture order
func (a *App) Pending(ctx context.Context) ([]*models.OfflineRecord, error) {
	if a.Degraded() {
		return nil, ErrDegraded
	}
	var all []*models.OfflineRecord
	for _, t := range []models.RecordType{models.RecordTypeSubmission, models.RecordTypeMedia} {
		records, err := a.store.ListAll(ctx, t)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}

// Sync runs a manual drain and waits for its outcome
func (a *App) Sync(ctx context.Context) (*models.SyncOutcome, error) {
	if a.Degraded() {
		return nil, ErrDegraded
	}
	return a.orchestrator.Drain(ctx, syncer.TriggerManual)
}

// RequestSync publishes a manual retry request; the drain runs in the background
func (a *App) RequestSync(ctx context.Context) error {
	if a.Degraded() {
		return ErrDegraded
	}
	a.bus.Publish(ctx, events.Event{Kind: events.ManualRetryRequested})
	return nil
}

// Conflicts returns open conflicts
func (a *App) Conflicts(ctx context.Context) ([]*models.ConflictItem, error) {
	if a.Degraded() {
		return nil, ErrDegraded
	}
	return a.resolver.List(ctx)
}

// Resolve applies a manual resolution to the conflict
func (a *App) Resolve(ctx context.Context, id string, req ResolveRequest) (*conflict.Resolution, error) {
	if a.Degraded() {
		return nil, ErrDegraded
	}

	var (
		res *conflict.Resolution
		err error
	)
	switch req.Strategy {
	case models.ResolutionKeepLocal:
		res, err = a.resolver.ResolveLocal(ctx, id)
	case models.ResolutionKeepRemote:
		res, err = a.resolver.ResolveRemote(ctx, id)
	case models.ResolutionMerge:
		res, err = a.resolver.ResolveMerge(ctx, id, req.Fields)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedStrategy, req.Strategy)
	}
	if err != nil {
		return nil, err
	}

	// запись ушла из очереди вне drain
	a.bus.Publish(ctx, events.Event{
		Kind:       events.ConflictResolved,
		RecordID:   id,
		RecordType: models.RecordTypeSubmission,
	})
	return res, nil
}

// Dismiss drops the conflict and keeps the record queued
func (a *App) Dismiss(ctx context.Context, id string) error {
	if a.Degraded() {
		return ErrDegraded
	}
	return a.resolver.Dismiss(ctx, id)
}

// SubmitComplaint queues a complaint through the capture facade
func (a *App) SubmitComplaint(ctx context.Context, c models.Complaint) (*capture.Receipt, error) {
	return a.capture.SubmitComplaint(ctx, c)
}

// AttachMedia queues an attachment through the capture facade
func (a *App) AttachMedia(ctx context.Context, m models.MediaAttachment) (*capture.Receipt, error) {
	return a.capture.AttachMedia(ctx, m)
}

// RefreshConfig fetches and caches the remote configuration
func (a *App) RefreshConfig(ctx context.Context) (int, error) {
	return a.capture.RefreshConfig(ctx)
}

// Config returns a cached configuration value
func (a *App) Config(ctx context.Context, key string) ([]byte, error) {
	return a.capture.Config(ctx, key)
}

// ConfigKeys returns cached configuration keys
func (a *App) ConfigKeys(ctx context.Context) ([]string, error) {
	return a.capture.ConfigKeys(ctx)
}
