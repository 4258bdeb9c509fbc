package config

import "time"

const (
	envPort               = "PORT"
	envPollInterval       = "POLL_INTERVAL"
	envProvider           = "PROVIDER"
	envStatsBaseURL       = "STATS_BASE_URL"
	envStatsAPIKey        = "STATS_API_KEY"
	envLiveBaseURL        = "NBA_LIVE_BASE_URL"
	envLiveConcurrency    = "NBA_LIVE_CONCURRENCY"
	envLeadersTopN        = "LEADERS_TOP_N"
	envLeadersMinAttempts = "LEADERS_MIN_ATTEMPTS"
	envProviderTimeout    = "PROVIDER_TIMEOUT"
	envProviderInterval   = "PROVIDER_MIN_INTERVAL"
	envProviderAttempts   = "PROVIDER_RETRY_ATTEMPTS"
	envProviderBackoff    = "PROVIDER_RETRY_BACKOFF"
	envAdminToken         = "ADMIN_TOKEN"
	envCORSOrigins        = "CORS_ALLOWED_ORIGINS"
	envRedisAddr          = "REDIS_ADDR"
	envRedisPassword      = "REDIS_PASSWORD"
	envRedisDB            = "REDIS_DB"
	envRedisKey           = "REDIS_KEY"
	envRedisChannel       = "REDIS_CHANNEL"
	envRedisTTL           = "REDIS_TTL"
	envLogLevel           = "LOG_LEVEL"
	envLogFormat          = "LOG_FORMAT"
	envLogFile            = "LOG_FILE"
	envMetricsPort        = "METRICS_PORT"
	envMetricsOn          = "METRICS_ENABLED"
	envMetricsPath        = "METRICS_PATH"
	envOtelEndpoint       = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService        = "OTEL_SERVICE_NAME"
	envOtelInsecure       = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort = "4000"
	// The dashboard refreshes once a minute.
	defaultPollInterval       = Duration(time.Minute)
	defaultProvider           = ProviderFixture
	defaultStatsBaseURL       = "http://localhost:3000"
	defaultLiveBaseURL        = "https://cdn.nba.com/static/json/liveData"
	defaultLiveConcurrency    = 4
	defaultLeadersTopN        = 30
	defaultLeadersMinAttempts = 3
	defaultProviderTimeout    = 10 * Duration(time.Second)
	// One scoreboard plus up to fifteen box scores per cycle stays well under the CDN's limits.
	defaultProviderInterval = 5 * Duration(time.Second)
	defaultProviderAttempts = 3
	defaultProviderBackoff  = 200 * Duration(time.Millisecond)
	defaultCORSOrigins      = "*"
	defaultRedisKey         = "nba:leaders:latest"
	defaultRedisChannel     = "nba:leaders:updates"
	defaultRedisTTL         = 5 * Duration(time.Minute)
	defaultLogLevel         = "info"
	defaultLogFormat        = "json"
	defaultMetricsPort      = "9090"
	defaultMetricsPath      = "/metrics"
	defaultServiceName      = "nba-leaders-dashboard"
)

// Provider names accepted by PROVIDER.
const (
	ProviderFixture = "fixture"
	ProviderRemote  = "remote"
	ProviderNBALive = "nbalive"
)
