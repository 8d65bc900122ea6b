package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.applyEnv()

	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.Remote.URL = strings.TrimRight(strings.TrimSpace(c.Remote.URL), "/")
	c.Operator.ID = strings.TrimSpace(c.Operator.ID)
	if c.Operator.ID == "" {
		if host, err := os.Hostname(); err == nil {
			c.Operator.ID = host
		}
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) applyEnv() {
	if value, ok := os.LookupEnv("FIELDSYNC_SERVER_URL"); ok && strings.TrimSpace(value) != "" {
		c.Remote.URL = value
	}
	if value, ok := os.LookupEnv("FIELDSYNC_OPERATOR"); ok && strings.TrimSpace(value) != "" {
		c.Operator.ID = value
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Storage.DBPath, err = expandPath(c.Storage.DBPath); err != nil {
		return fmt.Errorf("storage.db_path: %w", err)
	}
	if strings.TrimSpace(c.Storage.LockPath) == "" && c.Storage.DBPath != "" {
		c.Storage.LockPath = c.Storage.DBPath + ".lock"
	}
	if c.Storage.LockPath, err = expandPath(c.Storage.LockPath); err != nil {
		return fmt.Errorf("storage.lock_path: %w", err)
	}
	if c.Network.StateFile, err = expandPath(c.Network.StateFile); err != nil {
		return fmt.Errorf("network.state_file: %w", err)
	}
	if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}

	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch format {
	case "", "console", "text":
		c.Logging.Format = "text"
	default:
		c.Logging.Format = format
	}
}
