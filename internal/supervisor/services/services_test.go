// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

package services

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

// mockHTTPServer is a test double for HTTPServer.
type mockHTTPServer struct {
	listenErr     error
	shutdownErr   error
	shutdownCount atomic.Int32
	stopCh        chan struct{}
}

func newMockHTTPServer() *mockHTTPServer {
	return &mockHTTPServer{stopCh: make(chan struct{})}
}

func (m *mockHTTPServer) ListenAndServe() error {
	if m.listenErr != nil {
		return m.listenErr
	}
	<-m.stopCh
	return http.ErrServerClosed
}

func (m *mockHTTPServer) Shutdown(_ context.Context) error {
	m.shutdownCount.Add(1)
	close(m.stopCh)
	return m.shutdownErr
}

func TestServiceInterfaces(t *testing.T) {
	var _ suture.Service = (*HTTPServerService)(nil)
	var _ suture.Service = (*CacheSweeperService)(nil)
	var _ suture.Service = (*LimiterJanitorService)(nil)
}

func TestHTTPServerServiceGracefulShutdown(t *testing.T) {
	server := newMockHTTPServer()
	svc := NewHTTPServerService(server, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
	if got := server.shutdownCount.Load(); got != 1 {
		t.Errorf("Shutdown called %d times, want 1", got)
	}
}

func TestHTTPServerServiceReportsListenFailure(t *testing.T) {
	server := newMockHTTPServer()
	server.listenErr = errors.New("address already in use")
	svc := NewHTTPServerService(server, time.Second)

	err := svc.Serve(context.Background())
	if !errors.Is(err, server.listenErr) {
		t.Fatalf("Serve = %v, want wrapped listen error", err)
	}
}

func TestHTTPServerServiceDefaultTimeout(t *testing.T) {
	svc := NewHTTPServerService(newMockHTTPServer(), 0)
	if svc.shutdownTimeout != 10*time.Second {
		t.Errorf("shutdownTimeout = %v, want 10s default", svc.shutdownTimeout)
	}
}

// countingSweeper counts SweepExpired calls.
type countingSweeper struct {
	calls atomic.Int32
}

func (c *countingSweeper) SweepExpired() int {
	c.calls.Add(1)
	return 1
}

func TestCacheSweeperServiceRunsOnInterval(t *testing.T) {
	sweeper := &countingSweeper{}
	svc := NewCacheSweeperService(sweeper, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	time.Sleep(60 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
	if sweeper.calls.Load() < 2 {
		t.Errorf("SweepExpired called %d times, want at least 2", sweeper.calls.Load())
	}
}

// countingJanitor counts CleanupExpired calls.
type countingJanitor struct {
	calls atomic.Int32
}

func (c *countingJanitor) CleanupExpired() int {
	c.calls.Add(1)
	return 0
}

func TestLimiterJanitorServiceRunsOnInterval(t *testing.T) {
	janitor := &countingJanitor{}
	svc := NewLimiterJanitorService(janitor, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	time.Sleep(60 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
	if janitor.calls.Load() < 2 {
		t.Errorf("CleanupExpired called %d times, want at least 2", janitor.calls.Load())
	}
}

func TestServiceNames(t *testing.T) {
	if got := NewHTTPServerService(newMockHTTPServer(), 0).String(); got != "http-server" {
		t.Errorf("String() = %q, want http-server", got)
	}
	if got := NewCacheSweeperService(&countingSweeper{}, 0).String(); got != "cache-sweeper" {
		t.Errorf("String() = %q, want cache-sweeper", got)
	}
	if got := NewLimiterJanitorService(&countingJanitor{}, 0).String(); got != "limiter-janitor" {
		t.Errorf("String() = %q, want limiter-janitor", got)
	}
}
