package config

import "time"

// Config holds runtime configuration for every command.
type Config struct {
	Port            string
	RefreshInterval Duration
	Provider        string
	Log             LogConfig
	Season          SeasonConfig
	MLBStats        MLBStatsConfig
	Output          OutputConfig
	Storage         StorageConfig
	Metrics         MetricsConfig
}

// LogConfig selects log level and handler format.
type LogConfig struct {
	Level  string
	Format string
}

// now is swapped in tests to pin the default season.
var now = time.Now

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:            envOrDefault(envPort, defaultPort),
		RefreshInterval: durationEnvOrDefault(envRefreshInterval, defaultRefreshInterval),
		Provider:        envOrDefault(envProvider, defaultProvider),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
		Season:   loadSeason(now()),
		MLBStats: loadMLBStats(),
		Output:   loadOutput(),
		Storage:  loadStorage(),
		Metrics:  loadMetrics(),
	}
}
