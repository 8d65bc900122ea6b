package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iudanet/fieldsync/internal/client/daemon"
	"github.com/iudanet/fieldsync/internal/logging"
)

func (c *Cli) newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the sync daemon in the foreground",
		Long: "Run holds the offline queue, watches the network and drains the queue\n" +
			"whenever connectivity returns. Other commands talk to it through the\n" +
			"observer API while it runs.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDaemon(cmd.Context())
		},
	}
}

func (c *Cli) runDaemon(ctx context.Context) error {
	// Демон всегда пишет в stderr, файл из конфига подключается дополнительно
	if c.closer != nil {
		if err := c.closer.Close(); err != nil {
			return fmt.Errorf("close logger: %w", err)
		}
	}
	logger, closer, err := logging.New(logging.Options{
		Level:      c.cfg.Logging.Level,
		Format:     c.cfg.Logging.Format,
		File:       c.cfg.Logging.File,
		MaxSizeMB:  c.cfg.Logging.MaxSizeMB,
		MaxBackups: c.cfg.Logging.MaxBackups,
		MaxAgeDays: c.cfg.Logging.MaxAgeDays,
		Stderr:     true,
	})
	if err != nil {
		return err
	}
	c.logger = logger
	c.closer = closer

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := daemon.Open(ctx, c.cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("Failed to close daemon", "error", err)
		}
	}()

	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
