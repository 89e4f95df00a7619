// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

// Package telemetry provides the error-reporting boundary for Curator.
//
// Components report noteworthy conditions through a Capturer instead of
// talking to a reporting backend directly. Captures are fire-and-forget:
// a Capturer must never panic and must never block the caller, so a
// reporting outage can never take down a request.
package telemetry

import (
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/curatorhq/curator/internal/logging"
)

// Capturer receives messages and exceptions for operator visibility.
// Implementations must be safe for concurrent use and must not panic.
type Capturer interface {
	// CaptureMessage records an informational event.
	CaptureMessage(msg string, fields map[string]interface{})

	// CaptureException records an error condition.
	CaptureException(err error, fields map[string]interface{})
}

// LogCapturer is the default Capturer. It writes captures to the structured
// log and throttles them with a token bucket so a hot failure loop cannot
// flood the log output.
type LogCapturer struct {
	logger  zerolog.Logger
	limiter *rate.Limiter
}

// NewLogCapturer creates a LogCapturer writing through the global logger.
// perSecond bounds the sustained capture rate; burst allows short spikes.
func NewLogCapturer(perSecond float64, burst int) *LogCapturer {
	if perSecond <= 0 {
		perSecond = 10
	}
	if burst <= 0 {
		burst = 20
	}
	return &LogCapturer{
		logger:  logging.WithComponent("telemetry"),
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// NewLogCapturerWithLogger creates a LogCapturer with a specific logger.
// Used by tests to capture output.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewLogCapturerWithLogger(logger zerolog.Logger, perSecond float64, burst int) *LogCapturer {
	c := NewLogCapturer(perSecond, burst)
	c.logger = logger
	return c
}

// CaptureMessage implements Capturer.
func (c *LogCapturer) CaptureMessage(msg string, fields map[string]interface{}) {
	defer swallowPanic()
	if !c.limiter.Allow() {
		return
	}
	c.logger.Info().Fields(fields).Msg(msg)
}

// CaptureException implements Capturer.
func (c *LogCapturer) CaptureException(err error, fields map[string]interface{}) {
	defer swallowPanic()
	if !c.limiter.Allow() {
		return
	}
	c.logger.Error().Err(err).Fields(fields).Msg("captured exception")
}

// swallowPanic keeps the fire-and-forget contract: a capture can never
// propagate a panic into the operation that reported it.
func swallowPanic() {
	_ = recover()
}

// Nop is a Capturer that discards everything. Used in tests and when
// telemetry is disabled.
type Nop struct{}

// CaptureMessage implements Capturer.
func (Nop) CaptureMessage(string, map[string]interface{}) {}

// CaptureException implements Capturer.
func (Nop) CaptureException(error, map[string]interface{}) {}

// Recorder is a Capturer that remembers captures in memory.
// Test helper for asserting that a component reported a failure.
type Recorder struct {
	Messages   []string
	Exceptions []error
}

// CaptureMessage implements Capturer.
func (r *Recorder) CaptureMessage(msg string, _ map[string]interface{}) {
	r.Messages = append(r.Messages, msg)
}

// CaptureException implements Capturer.
func (r *Recorder) CaptureException(err error, _ map[string]interface{}) {
	r.Exceptions = append(r.Exceptions, err)
}

var (
	_ Capturer = (*LogCapturer)(nil)
	_ Capturer = Nop{}
	_ Capturer = (*Recorder)(nil)
)
