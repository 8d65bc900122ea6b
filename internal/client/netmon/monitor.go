package netmon

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/fieldsync/internal/client/events"
	"github.com/iudanet/fieldsync/internal/models"
)

// Monitor is the single source of truth for connectivity. It merges the
// native and generic signal sources into one de-duplicated stream.
type Monitor struct {
	generic   SignalSource
	native    SignalSource
	publisher events.Publisher
	logger    *slog.Logger

	listeners map[uint64]func(models.ConnectivityState)
	state     models.ConnectivityState
	nextID    uint64
	mu        sync.RWMutex
	started   bool
}

// NewMonitor создает монитор. Любой из источников может быть nil.
func NewMonitor(generic, native SignalSource, publisher events.Publisher, logger *slog.Logger) *Monitor {
	return &Monitor{
		generic:   generic,
		native:    native,
		publisher: publisher,
		logger:    logger,
		listeners: make(map[uint64]func(models.ConnectivityState)),
		state:     models.Offline(),
	}
}

// Start queries the initial snapshot once and publishes it.
// The native source is asked first; if it is unavailable the monitor
// continues with the generic source only.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return nil
	}
	m.started = true
	m.mu.Unlock()

	var (
		state models.ConnectivityState
		err   error
	)

	if m.native != nil {
		state, err = m.native.Current(ctx)
		if err != nil {
			m.logger.Debug("Native connectivity source unavailable, using generic source",
				"source", m.native.Name(), "error", err)
			m.native = nil
		}
	}

	if m.native == nil {
		err = ErrSourceUnavailable
		if m.generic != nil {
			state, err = m.generic.Current(ctx)
		}
		if err != nil {
			// Без сигнала считаем сеть доступной: ошибки отправки покажут обратное
			m.logger.Warn("Failed to query initial connectivity, assuming online",
				"error", err)
			state = models.Online(models.ConnectionUnknown)
		}
	}

	m.mu.Lock()
	m.state = state
	listeners := m.copyListeners()
	m.mu.Unlock()

	m.logger.Info("Initial connectivity", "online", state.IsOnline, "type", state.ConnectionType)
	m.notify(ctx, state, listeners)

	return nil
}

// Run watches all sources until ctx is done
func (m *Monitor) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, src := range []SignalSource{m.native, m.generic} {
		if src == nil {
			continue
		}
		g.Go(func() error {
			err := src.Watch(gctx, func(state models.ConnectivityState) {
				m.Report(gctx, state)
			})
			if errors.Is(err, ErrSourceUnavailable) {
				// Недоступный источник не является ошибкой: остается второй
				m.logger.Debug("Connectivity source stopped", "source", src.Name(), "error", err)
				return nil
			}
			return err
		})
	}

	return g.Wait()
}

// Close closes both sources
func (m *Monitor) Close() error {
	var errs []error
	if m.native != nil {
		errs = append(errs, m.native.Close())
	}
	if m.generic != nil {
		errs = append(errs, m.generic.Close())
	}
	return errors.Join(errs...)
}

// Report replaces the state and notifies if it differs from the previous one.
// Returns true if a notification was emitted.
func (m *Monitor) Report(ctx context.Context, state models.ConnectivityState) bool {
	m.mu.Lock()
	prev := m.state
	if sameState(prev, state) {
		m.mu.Unlock()
		return false
	}
	m.state = state
	listeners := m.copyListeners()
	m.mu.Unlock()

	m.logger.Info("Connectivity changed",
		"online", state.IsOnline,
		"type", state.ConnectionType,
		"was_online", prev.IsOnline)

	m.notify(ctx, state, listeners)
	return true
}

// State returns the current connectivity snapshot
func (m *Monitor) State() models.ConnectivityState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// IsOnline reports the current connectivity
func (m *Monitor) IsOnline() bool {
	return m.State().IsOnline
}

// Subscribe registers a direct listener and returns an unsubscribe func
func (m *Monitor) Subscribe(fn func(models.ConnectivityState)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	id := m.nextID
	m.listeners[id] = fn

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

func (m *Monitor) copyListeners() []func(models.ConnectivityState) {
	listeners := make([]func(models.ConnectivityState), 0, len(m.listeners))
	for _, fn := range m.listeners {
		listeners = append(listeners, fn)
	}
	return listeners
}

func (m *Monitor) notify(ctx context.Context, state models.ConnectivityState, listeners []func(models.ConnectivityState)) {
	for _, fn := range listeners {
		fn(state)
	}
	if m.publisher != nil {
		s := state
		m.publisher.Publish(ctx, events.Event{Kind: events.ConnectivityChanged, Connectivity: &s})
	}
}

// sameState сравнивает состояния. Источник, не знающий тип соединения,
// не перетирает известный тип: оба источника сообщают об одном переходе.
func sameState(prev, next models.ConnectivityState) bool {
	if prev.IsOnline != next.IsOnline {
		return false
	}
	if !next.IsOnline {
		return true
	}
	return prev.ConnectionType == next.ConnectionType || next.ConnectionType == models.ConnectionUnknown
}
