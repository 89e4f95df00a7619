// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

package ratelimit

import (
	"sync"
	"time"

	"github.com/curatorhq/curator/internal/config"
	"github.com/curatorhq/curator/internal/logging"
	"github.com/curatorhq/curator/internal/telemetry"
)

// Class names a category of routes sharing one limit policy.
type Class string

// Route classes.
const (
	ClassAuth   Class = "auth"
	ClassRead   Class = "read"
	ClassMutate Class = "mutate"
)

// Policy is the fixed-window limit for one route class.
type Policy struct {
	Limit  int
	Window time.Duration
}

// Decision is the outcome of a limit check.
//
// RetryAfter is set only when Allowed is false and tells the caller how
// long until the current window ends. Remaining is the number of requests
// left in the window when Allowed is true.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
	Remaining  int
}

// Observer receives one call per limit check for metrics. Outcome is one
// of "allowed", "denied", "failopen".
type Observer func(class Class, outcome string)

// windowStore is the counter storage behind the limiter. It is an
// interface so storage failure can be simulated in tests.
type windowStore interface {
	// bump finds or creates the window for key, resetting it when the
	// previous window has ended, and increments its counter. Returns the
	// window start and the count after the increment.
	bump(key string, now time.Time, windowLen time.Duration) (start time.Time, count int, err error)

	// removeEnded drops windows that ended at or before now. Returns the
	// number removed.
	removeEnded(now time.Time) int
}

// Limiter applies fixed-window request limits per (route class, identity).
//
// The limiter is advisory: any internal failure fails open and
// the request proceeds. Throttling is never allowed to become the reason
// a healthy request fails.
type Limiter struct {
	enabled  bool
	policies map[Class]Policy
	store    windowStore
	capturer telemetry.Capturer
	observer Observer

	// now is the clock, replaceable in tests.
	now func() time.Time
}

// New builds a limiter from configuration. A nil capturer disables
// telemetry capture on internal failures.
func New(cfg config.RateLimitConfig, capturer telemetry.Capturer) *Limiter {
	policies := make(map[Class]Policy, len(cfg.Classes))
	for name, p := range cfg.Classes {
		policies[Class(name)] = Policy{Limit: p.Limit, Window: p.Window}
	}

	if capturer == nil {
		capturer = telemetry.Nop{}
	}

	return &Limiter{
		enabled:  cfg.Enabled,
		policies: policies,
		store:    newMemoryStore(cfg.MaxIdentities),
		capturer: capturer,
		now:      time.Now,
	}
}

// SetObserver registers a per-decision callback for metrics. Must be
// called before the limiter starts serving checks.
func (l *Limiter) SetObserver(o Observer) {
	l.observer = o
}

// Policy returns the configured policy for a class.
func (l *Limiter) Policy(class Class) (Policy, bool) {
	p, ok := l.policies[class]
	return p, ok
}

// Check counts one request for (class, identity) and decides whether it
// may proceed.
//
// A fresh or expired window starts at count 1 and allows. Within a live
// window the count is incremented; once it exceeds the class limit the
// request is denied with RetryAfter set to the time left in the window.
//
// Internal storage failure fails open: the request is allowed, the error
// is logged and captured, and the decision is observed as "failopen".
func (l *Limiter) Check(class Class, identity string) (d Decision) {
	policy, ok := l.policies[class]
	if !l.enabled || !ok {
		if !ok && l.enabled {
			logging.Warn().
				Str("component", "ratelimit").
				Str("class", string(class)).
				Msg("No policy for route class, allowing")
		}
		return Decision{Allowed: true, Remaining: policy.Limit}
	}

	defer func() {
		if r := recover(); r != nil {
			d = l.failOpen(class, identity, policy, &panicError{value: r})
		}
	}()

	now := l.now()
	start, count, err := l.store.bump(string(class)+":"+identity, now, policy.Window)
	if err != nil {
		return l.failOpen(class, identity, policy, err)
	}

	if count > policy.Limit {
		l.observe(class, "denied")
		return Decision{
			Allowed:    false,
			RetryAfter: start.Add(policy.Window).Sub(now),
		}
	}

	l.observe(class, "allowed")
	return Decision{Allowed: true, Remaining: policy.Limit - count}
}

// CleanupExpired drops windows that have ended. Called periodically by
// the limiter janitor service.
func (l *Limiter) CleanupExpired() int {
	return l.store.removeEnded(l.now())
}

func (l *Limiter) failOpen(class Class, identity string, policy Policy, err error) Decision {
	logging.Error().
		Err(err).
		Str("component", "ratelimit").
		Str("class", string(class)).
		Str("identity", identity).
		Msg("Limiter storage failure, failing open")
	l.capturer.CaptureException(err, map[string]interface{}{
		"component": "ratelimit",
		"class":     string(class),
	})
	l.observe(class, "failopen")
	return Decision{Allowed: true, Remaining: policy.Limit}
}

func (l *Limiter) observe(class Class, outcome string) {
	if l.observer != nil {
		l.observer(class, outcome)
	}
}

// panicError wraps a recovered panic value as an error for capture.
type panicError struct {
	value interface{}
}

func (e *panicError) Error() string {
	return "ratelimit: panic in window store"
}

// window is one fixed counting window.
type window struct {
	start time.Time
	end   time.Time
	count int
}

// memoryStore is the in-process window store. State is process-local and
// lost on restart, which is acceptable for this service's traffic.
type memoryStore struct {
	mu      sync.Mutex
	windows map[string]*window

	// maxIdentities bounds the map so unauthenticated scanners cannot
	// grow it without limit.
	maxIdentities int
}

func newMemoryStore(maxIdentities int) *memoryStore {
	if maxIdentities <= 0 {
		maxIdentities = 10000
	}
	return &memoryStore{
		windows:       make(map[string]*window),
		maxIdentities: maxIdentities,
	}
}

func (m *memoryStore) bump(key string, now time.Time, windowLen time.Duration) (time.Time, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, exists := m.windows[key]
	if !exists || !now.Before(w.end) {
		if !exists && len(m.windows) >= m.maxIdentities {
			m.evictLocked(now)
		}
		w = &window{start: now, end: now.Add(windowLen), count: 1}
		m.windows[key] = w
		return w.start, w.count, nil
	}

	w.count++
	return w.start, w.count, nil
}

func (m *memoryStore) removeEnded(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, w := range m.windows {
		if !now.Before(w.end) {
			delete(m.windows, key)
			removed++
		}
	}
	return removed
}

// evictLocked frees space for a new identity: ended windows first, then
// the window closest to ending. Must be called with mu held.
func (m *memoryStore) evictLocked(now time.Time) {
	var victim string
	var victimEnd time.Time
	first := true
	for key, w := range m.windows {
		if !now.Before(w.end) {
			delete(m.windows, key)
			return
		}
		if first || w.end.Before(victimEnd) {
			victim = key
			victimEnd = w.end
			first = false
		}
	}
	if !first {
		delete(m.windows, victim)
	}
}

func (m *memoryStore) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.windows)
}
