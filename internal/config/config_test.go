package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/fieldsync/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("FIELDSYNC_OPERATOR", "op-7")
	t.Setenv("FIELDSYNC_SERVER_URL", "")

	cfg, resolved, exists, err := config.Load("")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, filepath.Join(tempHome, ".config", "fieldsync", "config.toml"), resolved)

	assert.Equal(t, "http://localhost:8080", cfg.Remote.URL)
	assert.Equal(t, 30*time.Second, cfg.RemoteTimeout())
	assert.Equal(t, filepath.Join(tempHome, ".local", "share", "fieldsync", "queue.db"), cfg.Storage.DBPath)
	assert.Equal(t, cfg.Storage.DBPath+".lock", cfg.Storage.LockPath)
	assert.Equal(t, 3, cfg.Sync.MaxRetries)
	assert.False(t, cfg.Sync.DropRejected)
	assert.Equal(t, time.Minute, cfg.DivergenceThreshold())
	assert.True(t, cfg.Conflict.PreferLongerNarrative)
	assert.Equal(t, "op-7", cfg.Operator.ID)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.NotEmpty(t, cfg.Backend.Categories)
}

func TestLoad_CustomFile(t *testing.T) {
	t.Setenv("FIELDSYNC_SERVER_URL", "")
	dir := t.TempDir()
	path := writeConfig(t, `
[operator]
id = "inspector-12"

[remote]
url = "https://complaints.example.org/"
timeout_seconds = 5

[storage]
db_path = "`+filepath.ToSlash(filepath.Join(dir, "q.db"))+`"

[sync]
max_retries = 5
drop_rejected = true

[conflict]
divergence_threshold_seconds = 120
prefer_longer_narrative = false

[logging]
level = "DEBUG"
format = "console"
`)

	cfg, resolved, exists, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, path, resolved)

	assert.Equal(t, "inspector-12", cfg.Operator.ID)
	assert.Equal(t, "https://complaints.example.org", cfg.Remote.URL)
	assert.Equal(t, 5*time.Second, cfg.RemoteTimeout())
	assert.Equal(t, filepath.Join(dir, "q.db"), cfg.Storage.DBPath)
	assert.Equal(t, 5, cfg.Sync.MaxRetries)
	assert.True(t, cfg.Sync.DropRejected)
	assert.Equal(t, 2*time.Minute, cfg.DivergenceThreshold())
	assert.False(t, cfg.Conflict.PreferLongerNarrative)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[remote]
url = "http://file.example.org"
`)
	t.Setenv("FIELDSYNC_SERVER_URL", "http://env.example.org:9000")

	cfg, _, _, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://env.example.org:9000", cfg.Remote.URL)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("FIELDSYNC_SERVER_URL", "")

	tests := []struct {
		name    string
		content string
	}{
		{name: "bad url scheme", content: "[remote]\nurl = \"ftp://example.org\"\n"},
		{name: "zero timeout", content: "[remote]\ntimeout_seconds = 0\n"},
		{name: "negative retries", content: "[sync]\nmax_retries = -1\n"},
		{name: "negative threshold", content: "[conflict]\ndivergence_threshold_seconds = -5\n"},
		{name: "unknown level", content: "[logging]\nlevel = \"verbose\"\n"},
		{name: "unknown format", content: "[logging]\nformat = \"xml\"\n"},
		{name: "burst required", content: "[backend]\nrate_limit_rps = 5.0\nrate_limit_burst = 0\n"},
		{name: "unknown field", content: "[sync]\nmax_retry = 3\n"},
		{name: "malformed toml", content: "[sync\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := config.Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestCreateSample_Loads(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	require.NoError(t, config.CreateSample(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, toml.Unmarshal(data, &raw))
	assert.Contains(t, raw, "remote")
	assert.Contains(t, raw, "backend")

	cfg, _, exists, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, config.Default().Sync.MaxRetries, cfg.Sync.MaxRetries)
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(dir, "data", "queue.db")
	cfg.Storage.LockPath = filepath.Join(dir, "run", "queue.lock")
	cfg.Logging.File = filepath.Join(dir, "logs", "fieldsync.log")

	require.NoError(t, cfg.EnsureDirectories())

	for _, sub := range []string{"data", "run", "logs"} {
		info, err := os.Stat(filepath.Join(dir, sub))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := config.ExpandPath("~/fieldsync/queue.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "fieldsync", "queue.db"), got)

	got, err = config.ExpandPath("")
	require.NoError(t, err)
	assert.Empty(t, got)
}
