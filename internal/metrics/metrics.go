package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

// Recorder captures in-memory counters about provider calls and dashboard
// refreshes, and forwards them to OpenTelemetry when configured.
type Recorder struct {
	mu               sync.Mutex
	stats            map[string]*providerStats
	parseDiagnostics int
	staleResults     int
	broadcasts       int
	cachePublishes   int
	cacheErrors      int
	otel             *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		otel:  otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// RecordParseDiagnostics counts leader lines skipped during a merge.
func (r *Recorder) RecordParseDiagnostics(count int) {
	if r == nil || count <= 0 {
		return
	}
	r.mu.Lock()
	r.parseDiagnostics += count
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordCounter(r.otel.parseDiagnostics, int64(count))
	}
}

// RecordStaleResult counts fetch results dropped because a newer one had landed.
func (r *Recorder) RecordStaleResult() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.staleResults++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordCounter(r.otel.staleResults, 1)
	}
}

// RecordBroadcast counts snapshot pushes to websocket clients.
func (r *Recorder) RecordBroadcast(clients int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.broadcasts++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordCounter(r.otel.broadcasts, 1)
		r.otel.recordHistogram(r.otel.broadcastClients, float64(clients))
	}
}

// RecordCachePublish counts snapshot writes to the cache.
func (r *Recorder) RecordCachePublish(err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.cachePublishes++
	if err != nil {
		r.cacheErrors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordCounter(r.otel.cachePublishes, 1)
		if err != nil {
			r.otel.recordCounter(r.otel.cacheErrors, 1)
		}
	}
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	stats := r.snapshot(provider)
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// DashboardCounts is a copy of the refresh counters.
type DashboardCounts struct {
	ParseDiagnostics int
	StaleResults     int
	Broadcasts       int
	CachePublishes   int
	CacheErrors      int
}

// Dashboard returns the refresh counters.
func (r *Recorder) Dashboard() DashboardCounts {
	if r == nil {
		return DashboardCounts{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return DashboardCounts{
		ParseDiagnostics: r.parseDiagnostics,
		StaleResults:     r.staleResults,
		Broadcasts:       r.broadcasts,
		CachePublishes:   r.cachePublishes,
		CacheErrors:      r.cacheErrors,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks poller cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}

func (r *Recorder) ensureStatsLocked(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}

func (r *Recorder) snapshot(provider string) providerStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats, ok := r.stats[provider]; ok && stats != nil {
		return *stats
	}
	return providerStats{}
}
