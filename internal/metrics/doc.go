// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

/*
Package metrics provides Prometheus metrics collection and export.

The package instruments:
  - Dashboard cache events (hits, misses, evictions, invalidations) per
    entity, fed by the cache event bus
  - Rate limiter decisions per route class, including fail-open cases
  - HTTP request latency and throughput
  - DuckDB query performance and circuit breaker state

Metrics are registered with the default Prometheus registry via promauto
and exported on the /metrics endpoint by the API layer. Cache counters
are wired by calling ObserveCacheBus once at startup; the limiter is
wired by passing LimiterObserver() to the limiter's SetObserver.
*/
package metrics
