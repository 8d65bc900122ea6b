// Package cli реализует команды клиента fieldsync.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/fieldsync/internal/client/capture"
	"github.com/iudanet/fieldsync/internal/client/conflict"
	"github.com/iudanet/fieldsync/internal/client/daemon"
	"github.com/iudanet/fieldsync/internal/client/iocli"
	"github.com/iudanet/fieldsync/internal/config"
	"github.com/iudanet/fieldsync/internal/logging"
	"github.com/iudanet/fieldsync/internal/models"
)

//go:generate moq -out controller_mock.go . Controller

// Controller is what the commands need from the client. It is served either
// by a local daemon.App or, while the daemon runs, by daemon.ObserverClient.
type Controller interface {
	Status(ctx context.Context) (*daemon.Status, error)
	Pending(ctx context.Context) ([]*models.OfflineRecord, error)
	Sync(ctx context.Context) (*models.SyncOutcome, error)
	Conflicts(ctx context.Context) ([]*models.ConflictItem, error)
	Resolve(ctx context.Context, id string, req daemon.ResolveRequest) (*conflict.Resolution, error)
	Dismiss(ctx context.Context, id string) error
	SubmitComplaint(ctx context.Context, c models.Complaint) (*capture.Receipt, error)
	AttachMedia(ctx context.Context, m models.MediaAttachment) (*capture.Receipt, error)
	RefreshConfig(ctx context.Context) (int, error)
	Config(ctx context.Context, key string) ([]byte, error)
	ConfigKeys(ctx context.Context) ([]string, error)
	Close() error
}

// BuildInfo describes the binary
type BuildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

type Cli struct {
	io      iocli.IO
	cfg     *config.Config
	logger  *slog.Logger
	closer  io.Closer
	connect func(ctx context.Context) (Controller, error)
	build   BuildInfo

	configPath     string
	resolvedConfig string
	configExists   bool
	serverURL      string
	verbose        bool
	jsonOutput     bool
}

// New creates the CLI
func New(ioc iocli.IO, build BuildInfo) *Cli {
	c := &Cli{
		io:     ioc,
		build:  build,
		logger: logging.NewNop(),
	}
	c.connect = c.openController
	return c
}

// NewRootCommand builds the cobra command tree
func (c *Cli) NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fieldsync",
		Short:         "Offline-first complaint capture and synchronization",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			return c.loadConfig()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.closer != nil {
				return c.closer.Close()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&c.serverURL, "server", "", "Remote API URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Log to stderr at the configured level")
	rootCmd.PersistentFlags().BoolVar(&c.jsonOutput, "json", false, "Print machine-readable JSON")

	rootCmd.AddCommand(
		c.newCaptureCommand(),
		c.newAttachCommand(),
		c.newPendingCommand(),
		c.newSyncCommand(),
		c.newStatusCommand(),
		c.newConflictsCommand(),
		c.newResolveCommand(),
		c.newDismissCommand(),
		c.newConfigCommand(),
		c.newRunCommand(),
		c.newVersionCommand(),
	)
	return rootCmd
}

func (c *Cli) loadConfig() error {
	cfg, path, exists, err := config.Load(strings.TrimSpace(c.configPath))
	if err != nil {
		return err
	}
	c.resolvedConfig = path
	c.configExists = exists
	if c.serverURL != "" {
		cfg.Remote.URL = strings.TrimRight(c.serverURL, "/")
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	c.cfg = cfg

	// Для разовых команд логи идут в файл; в stderr только с --verbose
	opts := logging.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Stderr:     c.verbose,
	}
	if opts.File == "" && !c.verbose {
		c.logger = logging.NewNop()
		return nil
	}
	logger, closer, err := logging.New(opts)
	if err != nil {
		return err
	}
	c.logger = logger
	c.closer = closer
	return nil
}

// openController opens the local client; when a daemon already holds the
// queue, requests go through its observer API instead.
func (c *Cli) openController(ctx context.Context) (Controller, error) {
	app, err := daemon.Open(ctx, c.cfg, c.logger)
	if err == nil {
		return app, nil
	}
	if !errors.Is(err, daemon.ErrDaemonRunning) {
		return nil, err
	}
	if !c.cfg.Observer.Enabled {
		return nil, fmt.Errorf("%w; enable [observer] to control it from the CLI", err)
	}
	c.logger.Debug("Daemon is running, using observer API", "addr", c.cfg.Observer.Listen)
	return daemon.NewObserverClient(c.cfg.Observer.Listen), nil
}

func (c *Cli) withController(ctx context.Context, fn func(Controller) error) error {
	ctrl, err := c.connect(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := ctrl.Close(); err != nil {
			c.logger.Warn("Failed to close client", "error", err)
		}
	}()
	return fn(ctrl)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
