// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

package api

import (
	"net/http"
	"runtime"
	"time"

	"github.com/curatorhq/curator/internal/models"
)

// AppVersion is set at build time.
var AppVersion = "dev"

// HealthStatus is the payload returned by the health endpoint.
type HealthStatus struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	UptimeSec int64  `json:"uptime_seconds"`
	Database  string `json:"database"`
}

// Health serves GET /healthz. It is intentionally outside the rate
// limited API groups so orchestrator probes never get throttled.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    "ok",
		Version:   AppVersion,
		GoVersion: runtime.Version(),
		UptimeSec: int64(time.Since(h.startTime).Seconds()),
		Database:  "ok",
	}

	code := http.StatusOK
	if err := h.catalog.Ping(r.Context()); err != nil {
		status.Status = "degraded"
		status.Database = "unreachable"
		code = http.StatusServiceUnavailable
	}

	respondJSON(w, code, &models.APIResponse{
		Status: status.Status,
		Data:   status,
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
	}, map[string]string{"Cache-Control": "no-store"})
}
