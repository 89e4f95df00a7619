// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/curatorhq/curator/internal/cache"
	"github.com/curatorhq/curator/internal/ratelimit"
)

var (
	// Cache Metrics
	CacheEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_cache_events_total",
			Help: "Total number of dashboard cache events by entity and outcome",
		},
		[]string{"entity", "outcome"}, // outcome: hit, miss, set, expired, evicted, deleted, invalidated
	)

	CacheInvalidatedEntries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_cache_invalidated_entries_total",
			Help: "Total number of cache entries removed by invalidation",
		},
		[]string{"entity"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dashboard_cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"entity"},
	)

	// Rate Limiter Metrics
	RateLimitDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratelimit_decisions_total",
			Help: "Total number of rate limit decisions",
		},
		[]string{"class", "outcome"}, // outcome: allowed, denied, failopen
	)

	RateLimitTrackedIdentities = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ratelimit_tracked_identities",
			Help: "Current number of tracked (class, identity) windows",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// ObserveCacheBus subscribes the cache counters to a cache event bus.
// Called once at startup before the bus sees traffic.
func ObserveCacheBus(bus *cache.Bus) {
	bus.OnAll(func(e cache.Event) {
		CacheEvents.WithLabelValues(e.Entity, string(e.Outcome)).Inc()
		if e.Outcome == cache.OutcomeInvalidated {
			CacheInvalidatedEntries.WithLabelValues(e.Entity).Add(float64(e.Size))
		}
	})
}

// LimiterObserver returns the observer that wires limiter decisions to the
// decision counter.
func LimiterObserver() ratelimit.Observer {
	return func(class ratelimit.Class, outcome string) {
		RateLimitDecisions.WithLabelValues(string(class), outcome).Inc()
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordDBQuery records a database query metric.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// UpdateCacheSize sets the entry-count gauge for one entity.
func UpdateCacheSize(entity string, size int) {
	CacheSize.WithLabelValues(entity).Set(float64(size))
}
