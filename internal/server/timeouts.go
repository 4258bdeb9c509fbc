package server

import "time"

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 10 * time.Second
	idleTimeout  = 60 * time.Second

	cacheWarmTimeout   = 2 * time.Second
	defaultMetricsPath = "/metrics"
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second
