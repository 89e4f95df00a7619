// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

package ratelimit

import (
	"net"
	"net/http"
	"strings"
)

// Identity derives the limiter identity for a request.
//
// The base is the client address: the first hop of X-Forwarded-For when a
// reverse proxy set it, then X-Real-IP, then the connection's remote
// address. "unknown" when none can be determined, so unidentifiable
// clients share one bucket instead of escaping limits.
//
// A non-empty sessionID scopes the identity to the authenticated session,
// so users behind one NAT address do not consume each other's budget. A
// non-empty resourceID further scopes mutation routes to the record being
// mutated.
func Identity(r *http.Request, sessionID, resourceID string) string {
	base := clientAddr(r)

	var b strings.Builder
	b.WriteString("ip:")
	b.WriteString(base)
	if sessionID != "" {
		b.WriteString(";session:")
		b.WriteString(sessionID)
	}
	if resourceID != "" {
		b.WriteString(";res:")
		b.WriteString(resourceID)
	}
	return b.String()
}

func clientAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		// First hop is the original client; later hops are proxies.
		first := fwd
		if idx := strings.IndexByte(fwd, ','); idx >= 0 {
			first = fwd[:idx]
		}
		if addr := strings.TrimSpace(first); addr != "" {
			return addr
		}
	}

	if real := strings.TrimSpace(r.Header.Get("X-Real-IP")); real != "" {
		return real
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
