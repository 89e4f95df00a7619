// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

package cache

import (
	"sync"
	"time"
)

// entry is a cached value with its lifetime bounds.
type entry struct {
	value     interface{}
	createdAt time.Time
	expiresAt time.Time
}

// live reports whether the entry is still visible at the given instant.
// An entry built with a non-positive TTL has expiresAt == createdAt and is
// never live.
func (e entry) live(now time.Time) bool {
	return now.Before(e.expiresAt)
}

// Store is a bounded, TTL-based key/value store for one cache entity.
//
// Entries expire lazily: an expired entry is removed the next time it is
// read, and in bulk by Sweep. When the store is at capacity and a new key
// arrives, the oldest entry by insertion time is evicted first.
//
// Store never returns errors to callers. A Set that cannot complete
// reports false and the caller proceeds without caching; nothing in this
// package is ever the reason a request fails.
type Store struct {
	mu       sync.Mutex
	entity   string
	entries  map[string]entry
	ttl      time.Duration
	capacity int
	bus      *Bus

	// now is the clock, replaceable in tests.
	now func() time.Time

	stats Stats
}

// Stats tracks store performance counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Keys      int
}

// NewStore creates a store for one entity with the given TTL and capacity.
// A nil bus is valid and disables event emission.
func NewStore(entity string, ttl time.Duration, capacity int, bus *Bus) *Store {
	if capacity <= 0 {
		capacity = 1000
	}
	return &Store{
		entity:   entity,
		entries:  make(map[string]entry, capacity),
		ttl:      ttl,
		capacity: capacity,
		bus:      bus,
		now:      time.Now,
	}
}

// Entity returns the entity name this store caches.
func (s *Store) Entity() string {
	return s.entity
}

// TTL returns the configured entry lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Get retrieves a value by key. Returns false if the key is missing or the
// entry has expired; an expired entry is removed on the way out.
func (s *Store) Get(key string) (interface{}, bool) {
	s.mu.Lock()
	e, exists := s.entries[key]
	expired := exists && !e.live(s.now())
	if expired {
		delete(s.entries, key)
		s.stats.Evictions++
		s.stats.Keys = len(s.entries)
	}
	hit := exists && !expired
	if hit {
		s.stats.Hits++
	} else {
		s.stats.Misses++
	}
	s.mu.Unlock()

	if expired {
		s.bus.Emit(Event{Entity: s.entity, Key: key, Outcome: OutcomeExpired, Size: 1})
	}
	if !hit {
		s.bus.Emit(Event{Entity: s.entity, Key: key, Outcome: OutcomeMiss, Size: 1})
		return nil, false
	}

	s.bus.Emit(Event{Entity: s.entity, Key: key, Outcome: OutcomeHit, Size: 1})
	return e.value, true
}

// Set inserts or overwrites a value under key with the store's TTL.
// Reports false only when the insert could not complete; the caller then
// proceeds without caching. A non-positive TTL produces an entry that is
// already expired, so the next Get misses it.
func (s *Store) Set(key string, value interface{}) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()

	s.mu.Lock()
	now := s.now()

	if _, exists := s.entries[key]; !exists && len(s.entries) >= s.capacity {
		s.evictOldestLocked()
	}

	expiresAt := now
	if s.ttl > 0 {
		expiresAt = now.Add(s.ttl)
	}
	s.entries[key] = entry{value: value, createdAt: now, expiresAt: expiresAt}
	s.stats.Keys = len(s.entries)
	s.mu.Unlock()

	s.bus.Emit(Event{Entity: s.entity, Key: key, Outcome: OutcomeSet, Size: 1})
	return true
}

// Delete removes a key. Idempotent; reports whether a live entry was
// actually removed.
func (s *Store) Delete(key string) bool {
	s.mu.Lock()
	e, exists := s.entries[key]
	if exists {
		delete(s.entries, key)
		s.stats.Keys = len(s.entries)
	}
	removed := exists && e.live(s.now())
	s.mu.Unlock()

	if removed {
		s.bus.Emit(Event{Entity: s.entity, Key: key, Outcome: OutcomeDeleted, Size: 1})
	}
	return removed
}

// DeleteMatching removes every entry whose key satisfies pred and returns
// the number of live entries removed. Used for bulk invalidation.
func (s *Store) DeleteMatching(pred func(key string) bool) int {
	now := s.now()

	s.mu.Lock()
	removed := 0
	for key, e := range s.entries {
		if pred(key) {
			delete(s.entries, key)
			if e.live(now) {
				removed++
			}
		}
	}
	s.stats.Keys = len(s.entries)
	s.mu.Unlock()

	if removed > 0 {
		s.bus.Emit(Event{Entity: s.entity, Outcome: OutcomeInvalidated, Size: removed})
	}
	return removed
}

// Clear removes all entries and returns the number of live entries removed.
func (s *Store) Clear() int {
	now := s.now()

	s.mu.Lock()
	removed := 0
	for _, e := range s.entries {
		if e.live(now) {
			removed++
		}
	}
	s.entries = make(map[string]entry, s.capacity)
	s.stats.Keys = 0
	s.mu.Unlock()

	if removed > 0 {
		s.bus.Emit(Event{Entity: s.entity, Outcome: OutcomeInvalidated, Size: removed})
	}
	return removed
}

// Sweep removes all expired entries and returns how many were removed.
// Called periodically by the cache sweeper service.
func (s *Store) Sweep() int {
	now := s.now()

	s.mu.Lock()
	removed := 0
	for key, e := range s.entries {
		if !e.live(now) {
			delete(s.entries, key)
			removed++
		}
	}
	s.stats.Evictions += int64(removed)
	s.stats.Keys = len(s.entries)
	s.mu.Unlock()

	if removed > 0 {
		s.bus.Emit(Event{Entity: s.entity, Outcome: OutcomeExpired, Size: removed})
	}
	return removed
}

// Len returns the number of physically present entries, expired included.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// GetStats returns a snapshot of the store's counters.
func (s *Store) GetStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// evictOldestLocked removes the entry with the earliest createdAt.
// Capacity is small enough (hundreds to low thousands) that a linear scan
// on the rare eviction path beats maintaining an ordering structure.
// Must be called with mu held.
func (s *Store) evictOldestLocked() {
	var oldestKey string
	var oldestAt time.Time
	first := true
	for key, e := range s.entries {
		if first || e.createdAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = e.createdAt
			first = false
		}
	}
	if !first {
		delete(s.entries, oldestKey)
		s.stats.Evictions++
		s.bus.Emit(Event{Entity: s.entity, Key: oldestKey, Outcome: OutcomeEvicted, Size: 1})
	}
}
