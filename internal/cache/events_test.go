// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

package cache

import (
	"testing"
	"time"
)

func TestBusDispatchByOutcome(t *testing.T) {
	bus := NewBus()

	var hits, all []Event
	bus.On(OutcomeHit, func(e Event) { hits = append(hits, e) })
	bus.OnAll(func(e Event) { all = append(all, e) })

	bus.Emit(Event{Entity: "templates", Outcome: OutcomeHit, Size: 1})
	bus.Emit(Event{Entity: "templates", Outcome: OutcomeMiss, Size: 1})

	if len(hits) != 1 {
		t.Errorf("Expected 1 hit event, got %d", len(hits))
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 events on OnAll, got %d", len(all))
	}
}

func TestBusHandlerPanicDoesNotPropagate(t *testing.T) {
	bus := NewBus()
	bus.OnAll(func(Event) { panic("handler bug") })

	// Must not panic the emitter.
	bus.Emit(Event{Entity: "templates", Outcome: OutcomeSet})
}

func TestNilBusIsSafe(t *testing.T) {
	var bus *Bus
	bus.Emit(Event{Entity: "templates", Outcome: OutcomeSet})
	bus.On(OutcomeHit, func(Event) {})
	bus.OnAll(func(Event) {})
}

func TestStoreEmitsEvents(t *testing.T) {
	bus := NewBus()
	var events []Event
	bus.OnAll(func(e Event) { events = append(events, e) })

	s := NewStore("templates", time.Minute, 10, bus)
	s.Set("k", "v")
	s.Get("k")
	s.Get("missing")
	s.Delete("k")

	outcomes := make(map[Outcome]int)
	for _, e := range events {
		if e.Entity != "templates" {
			t.Errorf("Expected entity templates on event, got %q", e.Entity)
		}
		outcomes[e.Outcome]++
	}

	for _, want := range []Outcome{OutcomeSet, OutcomeHit, OutcomeMiss, OutcomeDeleted} {
		if outcomes[want] == 0 {
			t.Errorf("Expected at least one %s event, got %v", want, outcomes)
		}
	}
}

func TestStoreEmitsExpiredOnLazyEviction(t *testing.T) {
	bus := NewBus()
	var expired int
	bus.On(OutcomeExpired, func(Event) { expired++ })

	clock := newFakeClock()
	s := NewStore("templates", time.Second, 10, bus)
	s.now = clock.Now

	s.Set("k", "v")
	clock.Advance(2 * time.Second)
	s.Get("k")

	if expired != 1 {
		t.Errorf("Expected 1 expired event, got %d", expired)
	}
}

func TestPanickingHandlerDoesNotBreakCacheOperation(t *testing.T) {
	bus := NewBus()
	bus.OnAll(func(Event) { panic("observer bug") })

	s := NewStore("templates", time.Minute, 10, bus)
	if !s.Set("k", "v") {
		t.Error("Expected Set to succeed despite panicking observer")
	}
	if _, ok := s.Get("k"); !ok {
		t.Error("Expected Get to succeed despite panicking observer")
	}
}
