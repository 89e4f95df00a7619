// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

package cache

import (
	"testing"
	"time"

	"github.com/curatorhq/curator/internal/config"
)

func testCacheConfig() config.CacheConfig {
	return config.CacheConfig{
		Version:         "v1",
		DefaultTTL:      5 * time.Minute,
		DefaultCapacity: 100,
	}
}

func TestRegistryHasFixedEntitySet(t *testing.T) {
	r := NewRegistry(testCacheConfig(), nil)

	for _, entity := range config.Entities {
		if _, ok := r.Store(entity); !ok {
			t.Errorf("Expected store for entity %q", entity)
		}
	}
	if _, ok := r.Store("bogus"); ok {
		t.Error("Expected no store for unknown entity")
	}
}

func TestRegistryKeyPinsVersion(t *testing.T) {
	r := NewRegistry(testCacheConfig(), nil)

	got := r.Key("templates", ListQuery{Page: 1, PerPage: 20})
	want := BuildKey("v1", "templates", ListQuery{Page: 1, PerPage: 20}.pairs()...)
	if got != want {
		t.Errorf("Registry key = %q, want %q", got, want)
	}
}

func TestInvalidateFullClear(t *testing.T) {
	r := NewRegistry(testCacheConfig(), nil)
	s := r.MustStore("templates")

	k1 := r.Key("templates", ListQuery{Page: 1, PerPage: 20})
	k2 := r.Key("templates", ListQuery{Page: 2, PerPage: 20})
	s.Set(k1, "page1")
	s.Set(k2, "page2")

	if n := r.Invalidate("templates", ""); n != 2 {
		t.Errorf("Expected 2 invalidated, got %d", n)
	}
	if _, ok := s.Get(k1); ok {
		t.Error("Expected k1 absent after full invalidation")
	}
	if _, ok := s.Get(k2); ok {
		t.Error("Expected k2 absent after full invalidation")
	}
}

func TestInvalidatePointScope(t *testing.T) {
	r := NewRegistry(testCacheConfig(), nil)
	s := r.MustStore("template")

	k42 := r.Key("template", DetailQuery{ID: "42"})
	k43 := r.Key("template", DetailQuery{ID: "43"})
	s.Set(k42, "record 42")
	s.Set(k43, "record 43")

	if n := r.Invalidate("template", "42"); n != 1 {
		t.Errorf("Expected 1 invalidated, got %d", n)
	}
	if _, ok := s.Get(k42); ok {
		t.Error("Expected id 42 entry removed by point invalidation")
	}
	if _, ok := s.Get(k43); !ok {
		t.Error("Expected id 43 entry to remain cached")
	}
}

func TestInvalidateUnknownEntityIsNoop(t *testing.T) {
	r := NewRegistry(testCacheConfig(), nil)
	if n := r.Invalidate("nonexistent", ""); n != 0 {
		t.Errorf("Expected 0 invalidated for unknown entity, got %d", n)
	}
}

func TestMutationInvalidatesThenRepopulates(t *testing.T) {
	r := NewRegistry(testCacheConfig(), nil)
	s := r.MustStore("templates")

	key := r.Key("templates", ListQuery{Page: 1, PerPage: 20})
	s.Set(key, []string{"a", "b"})

	// Insert of a new row clears the whole list store.
	r.Invalidate("templates", "")
	if _, ok := s.Get(key); ok {
		t.Fatal("Expected list cache empty after insert invalidation")
	}

	// Next read misses, fetches fresh, repopulates.
	s.Set(key, []string{"a", "b", "c"})
	v, ok := s.Get(key)
	if !ok {
		t.Fatal("Expected repopulated entry")
	}
	if got := v.([]string); len(got) != 3 {
		t.Errorf("Expected fresh 3-element list, got %v", got)
	}
}

func TestCacheHeaders(t *testing.T) {
	cfg := testCacheConfig()
	cfg.Entities = map[string]config.EntityCacheConfig{
		"templates": {TTL: 300 * time.Second},
	}
	r := NewRegistry(cfg, nil)

	headers := r.CacheHeaders("templates")
	if got := headers["Cache-Control"]; got != "private, max-age=300" {
		t.Errorf("Expected max-age=300, got %q", got)
	}

	if got := r.CacheHeaders("bogus")["Cache-Control"]; got != "no-store" {
		t.Errorf("Expected no-store for unknown entity, got %q", got)
	}
}

func TestSweepExpiredAcrossStores(t *testing.T) {
	cfg := testCacheConfig()
	cfg.DefaultTTL = time.Second
	r := NewRegistry(cfg, nil)

	clock := newFakeClock()
	for _, entity := range []string{"templates", "articles"} {
		s := r.MustStore(entity)
		s.now = clock.Now
		s.Set("k", "v")
	}

	clock.Advance(2 * time.Second)
	if n := r.SweepExpired(); n != 2 {
		t.Errorf("Expected 2 swept across stores, got %d", n)
	}
}

func TestRegistryEmitsInvalidationEvents(t *testing.T) {
	bus := NewBus()
	var invalidated []Event
	bus.On(OutcomeInvalidated, func(e Event) { invalidated = append(invalidated, e) })

	r := NewRegistry(testCacheConfig(), bus)
	s := r.MustStore("articles")
	s.Set(r.Key("articles", ListQuery{Page: 1}), "v")

	r.Invalidate("articles", "")
	if len(invalidated) != 1 {
		t.Fatalf("Expected 1 invalidation event, got %d", len(invalidated))
	}
	if invalidated[0].Size != 1 {
		t.Errorf("Expected size 1, got %d", invalidated[0].Size)
	}
}
