// Package events реализует внутреннюю шину событий offline-конвейера.
// Доставка синхронная: обработчики вызываются в горутине издателя.
package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/fieldsync/internal/models"
)

// Kind тип события
type Kind string

const (
	ConnectivityChanged  Kind = "connectivity_changed"
	QueueNonEmpty        Kind = "queue_non_empty"
	ManualRetryRequested Kind = "manual_retry_requested"
	RecordSynced         Kind = "record_synced"
	RecordFailed         Kind = "record_failed"
	RecordDropped        Kind = "record_dropped"
	ConflictRegistered   Kind = "conflict_registered"
	ConflictResolved     Kind = "conflict_resolved"
	SyncCompleted        Kind = "sync_completed"
)

// Event is a single bus message. Only the fields relevant to Kind are set.
type Event struct {
	Time         time.Time                 `json:"time"`
	Connectivity *models.ConnectivityState `json:"connectivity,omitempty"`
	Outcome      *models.SyncOutcome       `json:"outcome,omitempty"`
	Conflict     *models.ConflictItem      `json:"conflict,omitempty"`
	Kind         Kind                      `json:"kind"`
	RecordID     string                    `json:"record_id,omitempty"`
	RecordType   models.RecordType         `json:"record_type,omitempty"`
	Error        string                    `json:"error,omitempty"`
	RetryCount   int                       `json:"retry_count,omitempty"`
}

// Handler обрабатывает событие
type Handler func(ctx context.Context, e Event)

// Publisher публикует события
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

// Subscriber подписывает обработчики на события
type Subscriber interface {
	Subscribe(kind Kind, h Handler) (unsubscribe func())
	SubscribeAll(h Handler) (unsubscribe func())
}

type subscription struct {
	handler Handler
	id      uint64
	kind    Kind // пустой - все события
}

// Bus is a synchronous in-process fan-out bus
type Bus struct {
	logger *slog.Logger
	now    func() time.Time
	subs   []subscription
	nextID uint64
	mu     sync.Mutex
}

// NewBus создает шину событий
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		logger: logger,
		now:    time.Now,
	}
}

// Subscribe registers h for events of kind and returns an unsubscribe func
func (b *Bus) Subscribe(kind Kind, h Handler) func() {
	return b.add(kind, h)
}

// SubscribeAll registers h for every event
func (b *Bus) SubscribeAll(h Handler) func() {
	return b.add("", h)
}

func (b *Bus) add(kind Kind, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, kind: kind, handler: h})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers e to matching handlers in subscription order.
// Handlers are copied under lock and invoked without it, so a handler may
// publish or subscribe itself.
func (b *Bus) Publish(ctx context.Context, e Event) {
	if e.Time.IsZero() {
		e.Time = b.now()
	}

	b.mu.Lock()
	handlers := make([]Handler, 0, len(b.subs))
	for _, s := range b.subs {
		if s.kind == "" || s.kind == e.Kind {
			handlers = append(handlers, s.handler)
		}
	}
	b.mu.Unlock()

	b.logger.Debug("Publishing event", "kind", e.Kind, "record_id", e.RecordID, "handlers", len(handlers))

	for _, h := range handlers {
		b.invoke(ctx, h, e)
	}
}

// invoke изолирует панику обработчика от издателя и остальных подписчиков
func (b *Bus) invoke(ctx context.Context, h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Event handler panicked", "kind", e.Kind, "panic", r)
		}
	}()
	h(ctx, e)
}
