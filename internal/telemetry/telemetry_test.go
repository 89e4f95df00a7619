// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

package telemetry

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/curatorhq/curator/internal/logging"
)

func TestLogCapturerWritesStructuredLog(t *testing.T) {
	var buf bytes.Buffer
	c := NewLogCapturerWithLogger(logging.NewTestLogger(&buf), 100, 100)

	c.CaptureMessage("limiter recovered", map[string]interface{}{"class": "read"})
	c.CaptureException(errors.New("window store corrupt"), map[string]interface{}{"class": "auth"})

	out := buf.String()
	if !strings.Contains(out, "limiter recovered") {
		t.Errorf("Expected message capture in log, got %s", out)
	}
	if !strings.Contains(out, "window store corrupt") {
		t.Errorf("Expected exception capture in log, got %s", out)
	}
	if !strings.Contains(out, `"class":"auth"`) {
		t.Errorf("Expected fields in log, got %s", out)
	}
}

func TestLogCapturerThrottles(t *testing.T) {
	var buf bytes.Buffer
	c := NewLogCapturerWithLogger(logging.NewTestLogger(&buf), 1, 2)

	for i := 0; i < 50; i++ {
		c.CaptureMessage("spam", nil)
	}

	// Burst of 2 plus at most a token or two refilled during the loop.
	if n := strings.Count(buf.String(), "spam"); n > 4 {
		t.Errorf("Expected throttled captures, got %d log lines", n)
	}
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	r.CaptureMessage("hello", nil)
	r.CaptureException(errors.New("boom"), nil)

	if len(r.Messages) != 1 || r.Messages[0] != "hello" {
		t.Errorf("Expected recorded message, got %v", r.Messages)
	}
	if len(r.Exceptions) != 1 {
		t.Errorf("Expected recorded exception, got %v", r.Exceptions)
	}
}
