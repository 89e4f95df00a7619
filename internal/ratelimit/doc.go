// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

// Package ratelimit applies fixed-window request limits per route class
// and client identity.
//
// Routes are grouped into classes (auth, read, mutate), each with its own
// limit and window from configuration. Identities are derived from the
// client address, optionally scoped by session and resource id. All state
// is in-process and reset on restart.
//
// The limiter never blocks a request because of its own failures: storage
// errors and panics fail open with an error log and telemetry capture.
// Only a genuinely exceeded limit produces a denial, which the HTTP layer
// turns into a 429 with Retry-After.
package ratelimit
