package config

const (
	defaultConfigPath                 = "~/.config/fieldsync/config.toml"
	defaultRemoteURL                  = "http://localhost:8080"
	defaultRemoteTimeoutSeconds       = 30
	defaultDBPath                     = "~/.local/share/fieldsync/queue.db"
	defaultStateFile                  = "~/.local/state/fieldsync/network"
	defaultNetlink                    = true
	defaultMaxRetries                 = 3
	defaultDivergenceThresholdSeconds = 60
	defaultPreferLongerNarrative      = true
	defaultObserverListen             = "127.0.0.1:8765"
	defaultLogLevel                   = "info"
	defaultLogFormat                  = "text"
	defaultLogMaxSizeMB               = 10
	defaultLogMaxBackups              = 5
	defaultLogMaxAgeDays              = 30
	defaultBackendListen              = ":8080"
	defaultBackendDBPath              = "fieldsync-server.db"
	defaultRateLimitRPS               = 20
	defaultRateLimitBurst             = 40
)

var (
	defaultCategories = []string{"lighting", "roads", "sanitation", "water", "noise", "other"}
	defaultStatuses   = []string{"new", "assigned", "in_progress", "resolved", "closed"}
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Remote: Remote{
			URL:            defaultRemoteURL,
			TimeoutSeconds: defaultRemoteTimeoutSeconds,
		},
		Storage: Storage{
			DBPath: defaultDBPath,
		},
		Network: Network{
			StateFile: defaultStateFile,
			Netlink:   defaultNetlink,
		},
		Sync: Sync{
			MaxRetries: defaultMaxRetries,
		},
		Conflict: Conflict{
			DivergenceThresholdSeconds: defaultDivergenceThresholdSeconds,
			PreferLongerNarrative:      defaultPreferLongerNarrative,
		},
		Observer: Observer{
			Enabled: true,
			Listen:  defaultObserverListen,
		},
		Logging: Logging{
			Level:      defaultLogLevel,
			Format:     defaultLogFormat,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAgeDays: defaultLogMaxAgeDays,
		},
		Backend: Backend{
			Listen:         defaultBackendListen,
			DBPath:         defaultBackendDBPath,
			Categories:     append([]string(nil), defaultCategories...),
			Statuses:       append([]string(nil), defaultStatuses...),
			RateLimitRPS:   defaultRateLimitRPS,
			RateLimitBurst: defaultRateLimitBurst,
		},
	}
}
