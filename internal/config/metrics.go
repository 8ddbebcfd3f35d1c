package config

import "github.com/preston-bernstein/mlb-streaks-service/internal/metrics"

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	OtlpEndpoint string
	ServiceName  string
	OtlpInsecure bool
}

func loadMetrics() MetricsConfig {
	return MetricsConfig{
		Enabled:      boolEnvOrDefault(envMetricsOn, true),
		Port:         envOrDefault(envMetricsPort, defaultMetricsPort),
		OtlpEndpoint: envOrDefault(envOtelEndpoint, ""),
		ServiceName:  envOrDefault(envOtelService, defaultServiceName),
		OtlpInsecure: boolEnvOrDefault(envOtelInsecure, true),
	}
}

// Telemetry converts the settings for metrics.Setup. A one-shot run passes scrape=false and
// only exports when an OTLP endpoint is configured.
func (c MetricsConfig) Telemetry(scrape bool) metrics.TelemetryConfig {
	enabled := c.Enabled
	if !scrape {
		enabled = c.OtlpEndpoint != ""
	}
	return metrics.TelemetryConfig{
		Enabled:      enabled,
		Port:         c.Port,
		ServiceName:  c.ServiceName,
		OtlpEndpoint: c.OtlpEndpoint,
		OtlpInsecure: c.OtlpInsecure,
	}
}
