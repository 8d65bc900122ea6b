package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	clientapi "github.com/iudanet/fieldsync/internal/client/api"
	"github.com/iudanet/fieldsync/internal/client/capture"
	"github.com/iudanet/fieldsync/internal/client/conflict"
	"github.com/iudanet/fieldsync/internal/client/events"
	"github.com/iudanet/fieldsync/internal/client/storage"
	syncer "github.com/iudanet/fieldsync/internal/client/sync"
	"github.com/iudanet/fieldsync/internal/models"
	"github.com/iudanet/fieldsync/internal/validation"
	"github.com/iudanet/fieldsync/pkg/api"
)

const (
	writeTimeout  = 5 * time.Second
	clientBacklog = 64
)

// Observer serves the local control API of a running daemon
type Observer struct {
	app      *App
	logger   *slog.Logger
	server   *http.Server
	listener net.Listener

	clients   map[*websocket.Conn]chan events.Event
	clientsMu sync.Mutex
}

// NewObserver creates the observer API over the app
func NewObserver(app *App, logger *slog.Logger) *Observer {
	o := &Observer{
		app:     app,
		logger:  logger,
		clients: make(map[*websocket.Conn]chan events.Event),
	}
	o.server = &http.Server{
		Handler:           o.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return o
}

// Handler returns the HTTP routes
func (o *Observer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/status", o.handleStatus)
	mux.HandleFunc("GET /api/v1/pending", o.handlePending)
	mux.HandleFunc("POST /api/v1/sync", o.handleSync)
	mux.HandleFunc("GET /api/v1/conflicts", o.handleConflicts)
	mux.HandleFunc("POST /api/v1/conflicts/{id}/resolve", o.handleResolve)
	mux.HandleFunc("DELETE /api/v1/conflicts/{id}", o.handleDismiss)
	mux.HandleFunc("POST /api/v1/complaints", o.handleCapture)
	mux.HandleFunc("POST /api/v1/media", o.handleAttach)
	mux.HandleFunc("POST /api/v1/config/refresh", o.handleConfigRefresh)
	mux.HandleFunc("GET /api/v1/config", o.handleConfigKeys)
	mux.HandleFunc("GET /api/v1/config/{key}", o.handleConfigGet)
	mux.HandleFunc("GET /api/v1/events", o.handleEvents)
	return mux
}

// Listen binds the observer address
func (o *Observer) Listen(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	o.listener = ln
	return nil
}

// Addr returns the bound address
func (o *Observer) Addr() string {
	if o.listener == nil {
		return ""
	}
	return o.listener.Addr().String()
}

// Serve runs the HTTP server until ctx is done
func (o *Observer) Serve(ctx context.Context) error {
	if o.listener == nil {
		return errors.New("observer is not listening")
	}

	unsubscribe := o.app.bus.SubscribeAll(o.broadcast)
	defer unsubscribe()

	errCh := make(chan error, 1)
	go func() {
		o.logger.Info("Observer API listening", "addr", o.Addr())
		errCh <- o.server.Serve(o.listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	o.closeClients()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := o.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("observer shutdown: %w", err)
	}
	o.logger.Info("Observer API stopped")
	return nil
}

func (o *Observer) handleStatus(w http.ResponseWriter, r *http.Request) {
	st, err := o.app.Status(r.Context())
	if err != nil {
		o.sendFailure(w, err)
		return
	}
	o.sendJSON(w, st, http.StatusOK)
}

func (o *Observer) handlePending(w http.ResponseWriter, r *http.Request) {
	records, err := o.app.Pending(r.Context())
	if err != nil {
		o.sendFailure(w, err)
		return
	}
	o.sendJSON(w, records, http.StatusOK)
}

func (o *Observer) handleSync(w http.ResponseWriter, r *http.Request) {
	if err := o.app.RequestSync(r.Context()); err != nil {
		o.sendFailure(w, err)
		return
	}
	o.sendJSON(w, map[string]bool{"accepted": true}, http.StatusAccepted)
}

func (o *Observer) handleConflicts(w http.ResponseWriter, r *http.Request) {
	items, err := o.app.Conflicts(r.Context())
	if err != nil {
		o.sendFailure(w, err)
		return
	}
	o.sendJSON(w, items, http.StatusOK)
}

func (o *Observer) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		o.sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	res, err := o.app.Resolve(r.Context(), r.PathValue("id"), req)
	if err != nil {
		o.sendFailure(w, err)
		return
	}
	o.sendJSON(w, res, http.StatusOK)
}

func (o *Observer) handleDismiss(w http.ResponseWriter, r *http.Request) {
	if err := o.app.Dismiss(r.Context(), r.PathValue("id")); err != nil {
		o.sendFailure(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (o *Observer) handleCapture(w http.ResponseWriter, r *http.Request) {
	var c models.Complaint
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		o.sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	receipt, err := o.app.SubmitComplaint(r.Context(), c)
	if err != nil {
		o.sendFailure(w, err)
		return
	}
	o.sendJSON(w, receipt, http.StatusCreated)
}

func (o *Observer) handleAttach(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 2*validation.MaxMediaSize)

	var m models.MediaAttachment
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		o.sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	receipt, err := o.app.AttachMedia(r.Context(), m)
	if err != nil {
		o.sendFailure(w, err)
		return
	}
	o.sendJSON(w, receipt, http.StatusCreated)
}

func (o *Observer) handleConfigRefresh(w http.ResponseWriter, r *http.Request) {
	n, err := o.app.RefreshConfig(r.Context())
	if err != nil {
		o.sendFailure(w, err)
		return
	}
	o.sendJSON(w, map[string]int{"keys": n}, http.StatusOK)
}

func (o *Observer) handleConfigKeys(w http.ResponseWriter, r *http.Request) {
	keys, err := o.app.ConfigKeys(r.Context())
	if err != nil {
		o.sendFailure(w, err)
		return
	}
	o.sendJSON(w, keys, http.StatusOK)
}

func (o *Observer) handleConfigGet(w http.ResponseWriter, r *http.Request) {
	value, err := o.app.Config(r.Context(), r.PathValue("key"))
	if err != nil {
		o.sendFailure(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(value)
}

// handleEvents streams bus events to a WebSocket client
func (o *Observer) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		o.logger.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	queue := make(chan events.Event, clientBacklog)
	o.clientsMu.Lock()
	o.clients[conn] = queue
	clientCount := len(o.clients)
	o.clientsMu.Unlock()

	o.logger.Debug("Event client connected", "clients", clientCount)
	defer o.removeClient(conn)

	// CloseRead обрабатывает control-фреймы и отменяет ctx при закрытии клиентом
	ctx := conn.CloseRead(r.Context())

	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-queue:
			if !ok {
				return
			}
			data, err := json.Marshal(e)
			if err != nil {
				o.logger.Error("Failed to marshal event", "error", err)
				continue
			}
			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err = conn.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				o.logger.Debug("Failed to send event", "error", err)
				return
			}
		}
	}
}

// broadcast is the bus handler. It never blocks the publisher: a slow client
// loses events instead.
func (o *Observer) broadcast(_ context.Context, e events.Event) {
	o.clientsMu.Lock()
	defer o.clientsMu.Unlock()

	for _, queue := range o.clients {
		select {
		case queue <- e:
		default:
			o.logger.Warn("Event client is too slow, dropping event", "kind", e.Kind)
		}
	}
}

func (o *Observer) removeClient(conn *websocket.Conn) {
	o.clientsMu.Lock()
	queue, exists := o.clients[conn]
	if exists {
		delete(o.clients, conn)
		close(queue)
	}
	o.clientsMu.Unlock()

	if exists {
		_ = conn.Close(websocket.StatusNormalClosure, "")
	}
}

// closeClients drops every event client without waiting for the close handshake.
// Соединения закрываются вне clientsMu, чтобы broadcast не ждал.
func (o *Observer) closeClients() {
	o.clientsMu.Lock()
	conns := make([]*websocket.Conn, 0, len(o.clients))
	for conn, queue := range o.clients {
		delete(o.clients, conn)
		close(queue)
		conns = append(conns, conn)
	}
	o.clientsMu.Unlock()

	for _, conn := range conns {
		_ = conn.CloseNow()
	}
}

// ClientCount returns the number of connected event clients
func (o *Observer) ClientCount() int {
	o.clientsMu.Lock()
	defer o.clientsMu.Unlock()
	return len(o.clients)
}

// sendFailure переводит ошибку сервиса в HTTP статус
func (o *Observer) sendFailure(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, storage.ErrConflictNotFound),
		errors.Is(err, storage.ErrConfigNotFound),
		errors.Is(err, storage.ErrRecordNotFound):
		status = http.StatusNotFound
	case errors.Is(err, capture.ErrInvalidInput),
		errors.Is(err, conflict.ErrInvalidMerge),
		errors.Is(err, ErrUnsupportedStrategy):
		status = http.StatusBadRequest
	case errors.Is(err, syncer.ErrDrainInProgress):
		status = http.StatusConflict
	case errors.Is(err, ErrDegraded):
		status = http.StatusServiceUnavailable
	case errors.Is(err, capture.ErrDirectSubmitFailed),
		clientapi.IsRetriable(err),
		errors.Is(err, clientapi.ErrRemoteRejected):
		status = http.StatusBadGateway
	}
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable && status != http.StatusBadGateway {
		o.logger.Error("Observer request failed", "error", err)
	}
	o.sendError(w, err.Error(), status)
}

func (o *Observer) sendJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		o.logger.Error("Failed to encode response", "error", err)
	}
}

func (o *Observer) sendError(w http.ResponseWriter, message string, statusCode int) {
	o.sendJSON(w, api.ErrorResponse{Error: http.StatusText(statusCode), Message: message}, statusCode)
}
