package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRemote(); err != nil {
		return err
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateSync(); err != nil {
		return err
	}
	if err := c.validateConflict(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateBackend(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateRemote() error {
	if c.Remote.URL == "" {
		return errors.New("remote.url must be set")
	}
	parsed, err := url.Parse(c.Remote.URL)
	if err != nil {
		return fmt.Errorf("remote.url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("remote.url must use http or https, got %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return errors.New("remote.url must include a host")
	}
	if c.Remote.TimeoutSeconds <= 0 {
		return errors.New("remote.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateStorage() error {
	if c.Storage.DBPath == "" {
		return errors.New("storage.db_path must be set")
	}
	if c.Storage.LockPath == c.Storage.DBPath {
		return errors.New("storage.lock_path must differ from storage.db_path")
	}
	return nil
}

func (c *Config) validateSync() error {
	if c.Sync.MaxRetries < 0 {
		return errors.New("sync.max_retries must be >= 0")
	}
	return nil
}

func (c *Config) validateConflict() error {
	if c.Conflict.DivergenceThresholdSeconds < 0 {
		return errors.New("conflict.divergence_threshold_seconds must be >= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json; got %q", c.Logging.Format)
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 || c.Logging.MaxAgeDays < 0 {
		return errors.New("logging rotation limits must be >= 0")
	}
	return nil
}

func (c *Config) validateBackend() error {
	if strings.TrimSpace(c.Backend.Listen) == "" {
		return errors.New("backend.listen must be set")
	}
	if c.Backend.RateLimitRPS < 0 {
		return errors.New("backend.rate_limit_rps must be >= 0")
	}
	if c.Backend.RateLimitRPS > 0 && c.Backend.RateLimitBurst <= 0 {
		return errors.New("backend.rate_limit_burst must be positive when rate limiting is enabled")
	}
	return nil
}
