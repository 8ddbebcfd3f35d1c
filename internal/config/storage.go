package config

import "time"

// StorageConfig holds the optional schedule cache and database sink.
type StorageConfig struct {
	RedisURL    string
	CacheTTL    time.Duration
	DatabaseURL string
}

func loadStorage() StorageConfig {
	return StorageConfig{
		RedisURL:    envOrDefault(envRedisURL, ""),
		CacheTTL:    durationEnvOrDefault(envCacheTTL, defaultCacheTTL),
		DatabaseURL: envOrDefault(envDatabaseURL, ""),
	}
}
