package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Operator identifies the field operator running this client.
type Operator struct {
	ID string `toml:"id"`
}

// Remote contains the remote API connection settings.
type Remote struct {
	URL            string `toml:"url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Storage contains local queue database settings.
type Storage struct {
	DBPath   string `toml:"db_path"`
	LockPath string `toml:"lock_path"` // по умолчанию db_path + ".lock"
}

// Network contains connectivity signal settings.
type Network struct {
	StateFile string `toml:"state_file"` // файл с состоянием сети (generic source)
	Netlink   bool   `toml:"netlink"`    // использовать udev netlink (только linux)
}

// Sync contains drain settings.
type Sync struct {
	MaxRetries   int  `toml:"max_retries"`
	DropRejected bool `toml:"drop_rejected"` // сразу удалять записи, отклоненные сервером (4xx)
}

// Conflict contains automatic conflict resolution settings.
type Conflict struct {
	DivergenceThresholdSeconds int  `toml:"divergence_threshold_seconds"`
	PreferLongerNarrative      bool `toml:"prefer_longer_narrative"`
}

// Observer contains the local observer API settings.
type Observer struct {
	Listen  string `toml:"listen"`
	Enabled bool   `toml:"enabled"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// Backend contains reference backend settings.
type Backend struct {
	Listen         string   `toml:"listen"`
	DBPath         string   `toml:"db_path"`
	Categories     []string `toml:"categories"`
	Statuses       []string `toml:"statuses"`
	RateLimitRPS   float64  `toml:"rate_limit_rps"`
	RateLimitBurst int      `toml:"rate_limit_burst"`
}

// Config encapsulates all configuration values for fieldsync.
type Config struct {
	Operator Operator `toml:"operator"`
	Remote   Remote   `toml:"remote"`
	Storage  Storage  `toml:"storage"`
	Network  Network  `toml:"network"`
	Sync     Sync     `toml:"sync"`
	Conflict Conflict `toml:"conflict"`
	Observer Observer `toml:"observer"`
	Logging  Logging  `toml:"logging"`
	Backend  Backend  `toml:"backend"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error: defaults are used and exists is false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		path = defaultConfigPath
	}

	expanded, err := expandPath(path)
	if err != nil {
		return "", false, err
	}

	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %q is a directory", expanded)
	}
	return expanded, true, nil
}

// RemoteTimeout returns the remote API timeout
func (c *Config) RemoteTimeout() time.Duration {
	return time.Duration(c.Remote.TimeoutSeconds) * time.Second
}

// DivergenceThreshold returns the window below which concurrent edits are merged
func (c *Config) DivergenceThreshold() time.Duration {
	return time.Duration(c.Conflict.DivergenceThresholdSeconds) * time.Second
}

// EnsureDirectories creates directories for the queue database, lock file and log file.
func (c *Config) EnsureDirectories() error {
	for _, p := range []string{c.Storage.DBPath, c.Storage.LockPath, c.Logging.File} {
		if strings.TrimSpace(p) == "" {
			continue
		}
		dir := filepath.Dir(p)
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
