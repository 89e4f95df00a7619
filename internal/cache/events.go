// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

package cache

import (
	"sync"

	"github.com/curatorhq/curator/internal/logging"
)

// Outcome classifies a cache event.
type Outcome string

// Cache event outcomes.
const (
	OutcomeHit         Outcome = "hit"
	OutcomeMiss        Outcome = "miss"
	OutcomeSet         Outcome = "set"
	OutcomeExpired     Outcome = "expired"
	OutcomeEvicted     Outcome = "evicted"
	OutcomeDeleted     Outcome = "deleted"
	OutcomeInvalidated Outcome = "invalidated"
)

// Event describes a single cache operation for observability consumers.
type Event struct {
	Entity  string
	Key     string
	Outcome Outcome

	// Size is the number of entries affected, for bulk outcomes such as
	// invalidation. 1 for single-entry outcomes.
	Size int
}

// Handler consumes cache events. Handlers run synchronously on the calling
// goroutine and must be fast; they exist for counters and logs only.
type Handler func(Event)

// Bus dispatches cache events to registered handlers. It is observability
// plumbing, never correctness plumbing: a panicking handler is recovered
// and the cache operation that emitted the event proceeds untouched.
//
// A nil *Bus is valid and drops all events, so stores can be constructed
// without observability in tests.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Outcome][]Handler
	all      []Handler
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Outcome][]Handler)}
}

// On registers a handler for one outcome.
func (b *Bus) On(outcome Outcome, h Handler) {
	if b == nil || h == nil {
		return
	}
	b.mu.Lock()
	b.handlers[outcome] = append(b.handlers[outcome], h)
	b.mu.Unlock()
}

// OnAll registers a handler for every outcome.
func (b *Bus) OnAll(h Handler) {
	if b == nil || h == nil {
		return
	}
	b.mu.Lock()
	b.all = append(b.all, h)
	b.mu.Unlock()
}

// Emit dispatches an event synchronously to all matching handlers.
// Fire-and-forget: handler panics are swallowed and logged.
func (b *Bus) Emit(e Event) {
	if b == nil {
		return
	}

	b.mu.RLock()
	matched := b.handlers[e.Outcome]
	all := b.all
	b.mu.RUnlock()

	for _, h := range matched {
		safeDispatch(h, e)
	}
	for _, h := range all {
		safeDispatch(h, e)
	}
}

func safeDispatch(h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error().
				Str("component", "cache").
				Str("entity", e.Entity).
				Str("outcome", string(e.Outcome)).
				Interface("panic", r).
				Msg("Cache event handler panicked")
		}
	}()
	h(e)
}
