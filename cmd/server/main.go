package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/fieldsync/internal/config"
	"github.com/iudanet/fieldsync/internal/logging"
	"github.com/iudanet/fieldsync/internal/server"
	"github.com/iudanet/fieldsync/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	configPath := flag.String("config", "", "Configuration file path")
	listen := flag.String("listen", "", "Listen address (overrides [backend] listen)")
	dbPath := flag.String("db", "", "SQLite database path (overrides [backend] db_path)")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if err := run(*configPath, *listen, *dbPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, listen, dbPath string) error {
	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if listen != "" {
		cfg.Backend.Listen = listen
	}
	if dbPath != "" {
		cfg.Backend.DBPath = dbPath
	}

	logger, closer, err := logging.New(logging.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Stderr:     true,
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, cfg.Backend.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	srv, err := server.New(cfg.Backend, store, Version, logger)
	if err != nil {
		return err
	}

	logger.Info("Starting fieldsync server",
		"version", Version,
		"listen", cfg.Backend.Listen,
		"db", cfg.Backend.DBPath)

	return srv.Run(ctx)
}

func printVersion() {
	fmt.Printf("fieldsync server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
