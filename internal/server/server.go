// Package server собирает HTTP API референсного backend fieldsync.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/fieldsync/internal/config"
	"github.com/iudanet/fieldsync/internal/logging"
	"github.com/iudanet/fieldsync/internal/server/handlers"
	"github.com/iudanet/fieldsync/internal/server/middleware"
	"github.com/iudanet/fieldsync/internal/server/storage"
)

const shutdownTimeout = 10 * time.Second

// Storage is everything the handlers need from the database
type Storage interface {
	storage.ComplaintStorage
	storage.MediaStorage
	handlers.Pinger
}

// Server wraps the HTTP server and the rate limiter it owns
type Server struct {
	logger  *slog.Logger
	limiter *middleware.RateLimiter
	handler http.Handler
	listen  string
}

// New builds the router with middleware: recovery, logging, rate limiting
func New(cfg config.Backend, store Storage, version string, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	configHandler, err := handlers.NewConfigHandler(
		logging.NewComponentLogger(logger, "config"), cfg.Categories, cfg.Statuses)
	if err != nil {
		return nil, err
	}
	complaintHandler := handlers.NewComplaintHandler(
		logging.NewComponentLogger(logger, "complaints"), store, cfg.Statuses)
	mediaHandler := handlers.NewMediaHandler(logging.NewComponentLogger(logger, "media"), store)
	healthHandler := handlers.NewHealthHandler(logger, store, version)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/complaints", complaintHandler.Create)
	mux.HandleFunc("GET /api/v1/complaints/{key}", complaintHandler.Get)
	mux.HandleFunc("PATCH /api/v1/complaints/{key}", complaintHandler.Update)
	mux.HandleFunc("POST /api/v1/media", mediaHandler.Upload)
	mux.HandleFunc("GET /api/v1/config", configHandler.Config)
	mux.HandleFunc("GET /api/v1/health", healthHandler.Health)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logger)

	var handler http.Handler = mux
	handler = middleware.RateLimitMiddleware(limiter, logger)(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)
	handler = middleware.LoggingWithSkip(logger, []string{"/api/v1/health"})(handler)

	return &Server{
		logger:  logger,
		limiter: limiter,
		handler: handler,
		listen:  cfg.Listen,
	}, nil
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured address and serves until ctx is done
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.listen)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.listen, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.limiter.Stop()

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("fieldsync server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
