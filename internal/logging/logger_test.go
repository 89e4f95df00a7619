// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInitJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Timestamp: true, Output: &buf})
	defer Init(DefaultConfig())

	Info().Str("key", "value").Msg("test message")

	out := buf.String()
	if !strings.Contains(out, `"message":"test message"`) {
		t.Errorf("Expected JSON message field, got %s", out)
	}
	if !strings.Contains(out, `"key":"value"`) {
		t.Errorf("Expected structured field, got %s", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "warn", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Debug().Msg("should not appear")
	Info().Msg("should not appear")
	Warn().Msg("should appear")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Errorf("Expected debug/info to be filtered, got %s", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Errorf("Expected warn to pass, got %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("Expected empty request id, got %q", got)
	}

	ctx = ContextWithRequestID(ctx, "req-123")
	if got := RequestIDFromContext(ctx); got != "req-123" {
		t.Errorf("Expected req-123, got %q", got)
	}
}

func TestCtxAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))
	ctx = ContextWithRequestID(ctx, "req-456")

	Ctx(ctx).Info().Msg("with context")

	out := buf.String()
	if !strings.Contains(out, `"request_id":"req-456"`) {
		t.Errorf("Expected request_id field, got %s", out)
	}
}

func TestGenerateRequestIDUnique(t *testing.T) {
	a := GenerateRequestID()
	b := GenerateRequestID()
	if a == b {
		t.Error("Expected unique request IDs")
	}
	if len(a) == 0 {
		t.Error("Expected non-empty request ID")
	}
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	handler := NewSlogHandlerWithLogger(NewTestLogger(&buf))
	slogger := slog.New(handler)

	slogger.Info("supervised service started", "service", "cache-sweeper", "restarts", 0)

	out := buf.String()
	if !strings.Contains(out, `"message":"supervised service started"`) {
		t.Errorf("Expected slog message routed to zerolog, got %s", out)
	}
	if !strings.Contains(out, `"service":"cache-sweeper"`) {
		t.Errorf("Expected slog attr as zerolog field, got %s", out)
	}
}

func TestSlogAdapterGroups(t *testing.T) {
	var buf bytes.Buffer
	handler := NewSlogHandlerWithLogger(NewTestLogger(&buf))
	slogger := slog.New(handler).WithGroup("suture")

	slogger.Warn("service failed", "name", "janitor")

	out := buf.String()
	if !strings.Contains(out, `"suture.name":"janitor"`) {
		t.Errorf("Expected grouped attr key, got %s", out)
	}
}
