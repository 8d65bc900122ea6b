package daemon

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/fieldsync/internal/logging"
)

// Run starts background processing and blocks until ctx is done.
// Connectivity transitions and queue notifications trigger drains; the
// observer API is served when enabled.
func (a *App) Run(ctx context.Context) error {
	a.recorder.Attach(a.bus)
	defer a.recorder.Detach()

	if a.orchestrator != nil {
		a.orchestrator.Start(ctx, a.bus)
		defer a.orchestrator.Stop()
	}

	var observer *Observer
	if a.cfg.Observer.Enabled {
		observer = NewObserver(a, logging.NewComponentLogger(a.logger, "observer"))
		if err := observer.Listen(a.cfg.Observer.Listen); err != nil {
			return err
		}
	}

	// Начальное состояние сети публикуется после подписки оркестратора:
	// при наличии сети и непустой очереди сразу запускается drain
	if err := a.monitor.Start(ctx); err != nil {
		return fmt.Errorf("start network monitor: %w", err)
	}

	a.logger.Info("fieldsync daemon started",
		"degraded", a.Degraded(),
		"online", a.monitor.IsOnline(),
		"remote", a.cfg.Remote.URL,
		"lock", a.cfg.Storage.LockPath)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.monitor.Run(gctx)
	})
	if observer != nil {
		g.Go(func() error {
			return observer.Serve(gctx)
		})
	}

	err := g.Wait()
	a.logger.Info("fieldsync daemon stopped")
	return err
}
