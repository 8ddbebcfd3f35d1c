package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	cacheHits       int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type runStats struct {
	teams        map[string]int
	streaks      map[string]int
	runs         int
	lastDuration time.Duration
}

// Recorder captures lightweight, in-memory metrics about provider calls and streak runs.
// When built by Setup it also forwards every observation to OpenTelemetry instruments.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*providerStats
	run   runStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		run: runStats{
			teams:   make(map[string]int),
			streaks: make(map[string]int),
		},
		otel: otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
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
	stats := r.ensureStats(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// RecordCacheHit counts a schedule lookup served from cache instead of the provider.
func (r *Recorder) RecordCacheHit(provider string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.ensureStats(provider).cacheHits++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCacheHit(provider)
	}
}

// RecordTeamScan counts a finished team with its outcome (ok, empty, failed).
func (r *Recorder) RecordTeamScan(outcome string, duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.run.teams[outcome]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordTeamScan(outcome, duration)
	}
}

// RecordStreaks counts emitted streaks of the given type.
func (r *Recorder) RecordStreaks(streakType string, count int) {
	if r == nil || count <= 0 {
		return
	}
	r.mu.Lock()
	r.run.streaks[streakType] += count
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordStreaks(streakType, count)
	}
}

// RecordRun tracks a completed season run.
func (r *Recorder) RecordRun(season int, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.run.runs++
	r.run.lastDuration = duration
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRun(season, duration, err)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordRefreshCycle tracks background refresh cycles and errors.
func (r *Recorder) RecordRefreshCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordRefresh(duration, err)
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

// TeamScans returns how many teams finished with the given outcome.
func (r *Recorder) TeamScans(outcome string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.run.teams[outcome]
}

// StreaksEmitted returns the number of streaks recorded for a type.
func (r *Recorder) StreaksEmitted(streakType string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.run.streaks[streakType]
}

// Runs returns the number of completed runs and the last run duration.
func (r *Recorder) Runs() (int, time.Duration) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.run.runs, r.run.lastDuration
}

// Snapshot is a copy of the current stats for one provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	CacheHits       int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

// Snapshot returns a copy of the current stats for the provider.
func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		CacheHits:       stats.cacheHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}
