// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

package cache

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeClock provides a settable clock for TTL tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestStore(ttl time.Duration, capacity int) (*Store, *fakeClock) {
	clock := newFakeClock()
	s := NewStore("templates", ttl, capacity, nil)
	s.now = clock.Now
	return s, clock
}

func TestStoreBasicOperations(t *testing.T) {
	s, _ := newTestStore(time.Minute, 10)

	if !s.Set("k1", "value1") {
		t.Fatal("Expected Set to succeed")
	}
	value, ok := s.Get("k1")
	if !ok {
		t.Fatal("Expected k1 to exist")
	}
	if value != "value1" {
		t.Errorf("Expected value1, got %v", value)
	}

	if _, ok := s.Get("k2"); ok {
		t.Error("Expected k2 to not exist")
	}
}

func TestStoreTTLExpiry(t *testing.T) {
	s, clock := newTestStore(300*time.Second, 10)

	if _, ok := s.Get("list"); ok {
		t.Fatal("Expected initial miss")
	}
	s.Set("list", []string{"a", "b", "c"})

	clock.Advance(299 * time.Second)
	if _, ok := s.Get("list"); !ok {
		t.Error("Expected hit 1s before expiry")
	}

	clock.Advance(2 * time.Second)
	if _, ok := s.Get("list"); ok {
		t.Error("Expected miss 1s after expiry")
	}

	// Expired entry is removed lazily on read.
	if s.Len() != 0 {
		t.Errorf("Expected expired entry swept on read, len=%d", s.Len())
	}
}

func TestStoreExpiryAtBoundary(t *testing.T) {
	s, clock := newTestStore(10*time.Second, 10)
	s.Set("k", 1)

	// Visible strictly while now < expiresAt: at exactly t=TTL the entry
	// is already gone.
	clock.Advance(10 * time.Second)
	if _, ok := s.Get("k"); ok {
		t.Error("Expected miss at exact expiry instant")
	}
}

func TestStoreZeroTTLIsBornExpired(t *testing.T) {
	s, _ := newTestStore(0, 10)

	if !s.Set("k", "v") {
		t.Fatal("Set must still report success")
	}
	if _, ok := s.Get("k"); ok {
		t.Error("Expected entry with zero TTL to be treated as expired")
	}
}

func TestStoreNegativeTTL(t *testing.T) {
	s, _ := newTestStore(-time.Minute, 10)
	s.Set("k", "v")
	if _, ok := s.Get("k"); ok {
		t.Error("Expected entry with negative TTL to be treated as expired")
	}
}

func TestStoreDeleteIdempotent(t *testing.T) {
	s, _ := newTestStore(time.Minute, 10)
	s.Set("k", "v")

	if !s.Delete("k") {
		t.Error("Expected first delete to report removal")
	}
	if s.Delete("k") {
		t.Error("Expected second delete to report nothing removed")
	}
}

func TestStoreDeleteExpiredReportsFalse(t *testing.T) {
	s, clock := newTestStore(time.Second, 10)
	s.Set("k", "v")
	clock.Advance(2 * time.Second)

	if s.Delete("k") {
		t.Error("Expected delete of expired entry to report no live removal")
	}
}

func TestStoreDeleteMatching(t *testing.T) {
	s, _ := newTestStore(time.Minute, 10)
	s.Set("v1:template:id=1", "a")
	s.Set("v1:template:id=2", "b")
	s.Set("v1:template:id=3", "c")

	n := s.DeleteMatching(func(key string) bool {
		return strings.HasSuffix(key, "id=2")
	})
	if n != 1 {
		t.Errorf("Expected 1 removed, got %d", n)
	}
	if _, ok := s.Get("v1:template:id=1"); !ok {
		t.Error("Expected unrelated entry to survive")
	}
	if _, ok := s.Get("v1:template:id=2"); ok {
		t.Error("Expected matched entry to be removed")
	}
}

func TestStoreCapacityEvictsOldest(t *testing.T) {
	s, clock := newTestStore(time.Hour, 3)

	s.Set("a", 1)
	clock.Advance(time.Second)
	s.Set("b", 2)
	clock.Advance(time.Second)
	s.Set("c", 3)
	clock.Advance(time.Second)
	s.Set("d", 4) // evicts "a", the oldest

	if _, ok := s.Get("a"); ok {
		t.Error("Expected oldest entry evicted at capacity")
	}
	for _, k := range []string{"b", "c", "d"} {
		if _, ok := s.Get(k); !ok {
			t.Errorf("Expected %s to survive eviction", k)
		}
	}
	if s.Len() != 3 {
		t.Errorf("Expected len 3, got %d", s.Len())
	}
}

func TestStoreOverwriteDoesNotEvict(t *testing.T) {
	s, _ := newTestStore(time.Hour, 2)
	s.Set("a", 1)
	s.Set("b", 2)
	s.Set("a", 10) // existing key: no eviction

	if _, ok := s.Get("b"); !ok {
		t.Error("Expected overwrite of existing key to evict nothing")
	}
	v, _ := s.Get("a")
	if v != 10 {
		t.Errorf("Expected overwritten value 10, got %v", v)
	}
}

func TestStoreSweep(t *testing.T) {
	s, clock := newTestStore(time.Minute, 10)
	s.Set("a", 1)
	s.Set("b", 2)
	clock.Advance(2 * time.Minute)
	s.Set("c", 3)

	if removed := s.Sweep(); removed != 2 {
		t.Errorf("Expected 2 swept, got %d", removed)
	}
	if s.Len() != 1 {
		t.Errorf("Expected 1 entry after sweep, got %d", s.Len())
	}
}

func TestStoreConcurrentSetSameKey(t *testing.T) {
	s, _ := newTestStore(time.Minute, 100)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Set("k", "valueA")
		}()
		go func() {
			defer wg.Done()
			s.Set("k", "valueB")
		}()
	}
	wg.Wait()

	v, ok := s.Get("k")
	if !ok {
		t.Fatal("Expected k to exist after concurrent sets")
	}
	if v != "valueA" && v != "valueB" {
		t.Errorf("Expected one of the written values, got %v", v)
	}

	// Store behaves normally afterwards.
	s.Set("k", "final")
	if v, _ := s.Get("k"); v != "final" {
		t.Errorf("Expected final, got %v", v)
	}
}

func TestStoreConcurrentMixedOperations(t *testing.T) {
	s, _ := newTestStore(time.Minute, 64)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := fmt.Sprintf("k%d", j%16)
				switch j % 4 {
				case 0:
					s.Set(key, n)
				case 1:
					s.Get(key)
				case 2:
					s.Delete(key)
				default:
					s.DeleteMatching(func(k string) bool { return k == key })
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestStoreStats(t *testing.T) {
	s, _ := newTestStore(time.Minute, 10)
	s.Set("k", "v")
	s.Get("k")
	s.Get("missing")

	stats := s.GetStats()
	if stats.Hits != 1 {
		t.Errorf("Expected 1 hit, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Expected 1 miss, got %d", stats.Misses)
	}
	if stats.Keys != 1 {
		t.Errorf("Expected 1 key, got %d", stats.Keys)
	}
}
