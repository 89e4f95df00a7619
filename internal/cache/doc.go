// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

// Package cache implements the in-process dashboard response cache.
//
// Every list and detail endpoint is fronted by a per-entity Store with a
// TTL and a capacity bound; write endpoints invalidate through the
// Registry after a successful mutation. The package is availability-first:
// no operation in here can ever fail a request. A Set
// that cannot complete degrades to a cache miss, an invalidation of an
// unknown entity is a no-op, and event handlers that panic are recovered.
//
// # Components
//
//   - BuildKey / Query: deterministic key derivation from typed parameter
//     shapes, versioned so payload changes can abandon stale keys.
//   - Store: one bounded TTL store per entity with lazy expiry and
//     oldest-first eviction.
//   - Registry: the facade handlers use, holding the per-entity stores,
//     key derivation, dual-mode invalidation and freshness headers.
//   - Bus: a synchronous in-process observer channel feeding logs and
//     Prometheus counters; never on the correctness path.
//
// # Read path
//
//	key := registry.Key("templates", cache.ListQuery{Page: 1, PerPage: 20})
//	if v, ok := registry.MustStore("templates").Get(key); ok {
//	    return v // hit
//	}
//	records, err := catalog.ListTemplates(ctx, filter)
//	if err != nil {
//	    return err // failed fetches are never cached
//	}
//	registry.MustStore("templates").Set(key, records)
//
// # Write path
//
//	if err := catalog.UpdateTemplate(ctx, t); err == nil {
//	    registry.Invalidate("template", t.ID) // point: this row's detail
//	    registry.Invalidate("templates", "")  // broad: every list page
//	}
//
// Concurrent misses on one key may each fetch and Set independently; Set
// is last-write-wins and all writers compute the same value from the same
// source, so this is accepted redundancy rather than a consistency bug.
// All state is process-local and lost on restart.
package cache
