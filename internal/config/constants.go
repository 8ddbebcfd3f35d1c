package config

import "time"

const (
	envPort            = "PORT"
	envRefreshInterval = "REFRESH_INTERVAL"
	envProvider        = "PROVIDER"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"

	envSeason      = "SEASON"
	envSeasonStart = "SEASON_START"
	envSeasonEnd   = "SEASON_END"
	envThreshold   = "STREAK_THRESHOLD"
	envWorkers     = "STREAK_WORKERS"
	envTeamTimeout = "STREAK_TEAM_TIMEOUT"

	envMLBBaseURL    = "MLBSTATS_BASE_URL"
	envMLBSportID    = "MLBSTATS_SPORT_ID"
	envProviderRate  = "PROVIDER_RATE"
	envProviderBurst = "PROVIDER_BURST"
	envProviderRetry = "PROVIDER_RETRIES"

	envOutputDir       = "OUTPUT_DIR"
	envCSVEnabled      = "CSV_ENABLED"
	envReportRetention = "REPORT_RETENTION"

	envRedisURL    = "REDIS_URL"
	envCacheTTL    = "CACHE_TTL"
	envDatabaseURL = "DATABASE_URL"

	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort = "4000"
	// A season changes at most a few times a day; refreshing more often only burns upstream quota.
	defaultRefreshInterval = 6 * Duration(time.Hour)
	defaultProvider        = "mlbstats"
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"

	defaultThreshold   = 5
	defaultWorkers     = 4
	defaultTeamTimeout = 30 * Duration(time.Second)

	defaultMLBBaseURL    = "https://statsapi.mlb.com/api/v1"
	defaultMLBSportID    = 1
	defaultProviderRate  = 5.0
	defaultProviderBurst = 1
	defaultProviderRetry = 3

	defaultOutputDir  = "data"
	defaultCSVEnabled = true

	defaultCacheTTL = 1 * Duration(time.Hour)

	defaultMetricsPort = "9090"
	defaultServiceName = "mlb-streaks-service"
)
