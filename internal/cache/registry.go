// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

package cache

import (
	"fmt"
	"strconv"
	"time"

	"github.com/curatorhq/curator/internal/config"
)

// Registry owns one Store per cache entity and is the single object route
// handlers talk to. It is constructed once at startup and passed by
// injection; there is no package-level instance.
//
// The entity set is fixed at construction. Looking up an unknown entity is
// a programming error surfaced via MustStore in tests and a safe no-op in
// the invalidation paths.
type Registry struct {
	stores  map[string]*Store
	bus     *Bus
	version string
}

// NewRegistry builds stores for the fixed entity set using per-entity TTL
// and capacity from configuration.
func NewRegistry(cfg config.CacheConfig, bus *Bus) *Registry {
	version := cfg.Version
	if version == "" {
		version = "v1"
	}

	stores := make(map[string]*Store, len(config.Entities))
	for _, entity := range config.Entities {
		stores[entity] = NewStore(entity, cfg.EntityTTL(entity), cfg.EntityCapacity(entity), bus)
	}

	return &Registry{
		stores:  stores,
		bus:     bus,
		version: version,
	}
}

// Store returns the store for an entity.
func (r *Registry) Store(entity string) (*Store, bool) {
	s, ok := r.stores[entity]
	return s, ok
}

// MustStore returns the store for an entity, panicking on an unknown name.
// The entity set is fixed, so an unknown name is a wiring bug.
func (r *Registry) MustStore(entity string) *Store {
	s, ok := r.stores[entity]
	if !ok {
		panic(fmt.Sprintf("cache: unknown entity %q", entity))
	}
	return s
}

// Key derives the cache key for a logical query, pinning the registry's
// key version.
func (r *Registry) Key(logical string, q Query) string {
	return BuildKey(r.version, logical, q.pairs()...)
}

// Invalidate removes cached entries for an entity after a mutation.
//
// With a non-empty id only entries whose key encodes that id are removed
// (point invalidation after a single-row update or delete). With an empty
// id the entity's whole store is cleared (after list-affecting mutations
// such as inserts). Returns the number of live entries removed.
//
// Unknown entities are a no-op: invalidation must never fail a mutation
// that already succeeded.
func (r *Registry) Invalidate(entity, id string) int {
	s, ok := r.stores[entity]
	if !ok {
		return 0
	}

	if id == "" {
		return s.Clear()
	}
	return s.DeleteMatching(func(key string) bool {
		return keyEncodesID(key, id)
	})
}

// CacheHeaders returns response freshness headers for an entity, derived
// purely from its configured TTL. No store state is consulted.
func (r *Registry) CacheHeaders(entity string) map[string]string {
	s, ok := r.stores[entity]
	if !ok || s.TTL() <= 0 {
		return map[string]string{"Cache-Control": "no-store"}
	}

	seconds := int(s.TTL() / time.Second)
	return map[string]string{
		"Cache-Control": "private, max-age=" + strconv.Itoa(seconds),
	}
}

// SweepExpired removes expired entries from every store and returns the
// total removed. Called by the cache sweeper service.
func (r *Registry) SweepExpired() int {
	total := 0
	for _, s := range r.stores {
		total += s.Sweep()
	}
	return total
}

// Entities returns the entity names this registry manages.
func (r *Registry) Entities() []string {
	names := make([]string, 0, len(r.stores))
	for name := range r.stores {
		names = append(names, name)
	}
	return names
}
