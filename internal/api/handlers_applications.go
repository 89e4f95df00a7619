// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/curatorhq/curator/internal/models"
	"github.com/curatorhq/curator/internal/store"
)

// ListApplications serves GET /api/v1/applications through the dashboard cache.
func (h *Handler) ListApplications(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, "applications", func(f store.ListFilter) (interface{}, int, error) {
		items, total, err := h.catalog.ListApplications(r.Context(), f)
		return items, total, err
	})
}

// GetApplication serves GET /api/v1/applications/{id}.
func (h *Handler) GetApplication(w http.ResponseWriter, r *http.Request) {
	h.serveDetail(w, r, "application", func(id uuid.UUID) (interface{}, error) {
		return h.catalog.GetApplication(r.Context(), id)
	})
}

// CreateApplication serves POST /api/v1/applications.
func (h *Handler) CreateApplication(w http.ResponseWriter, r *http.Request) {
	var in models.ApplicationInput
	if !h.decodeAndValidate(w, r, &in) {
		return
	}

	start := time.Now()
	created, err := h.catalog.CreateApplication(r.Context(), in)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.invalidateAfterMutation("applications", "application", "")
	respondMutation(w, http.StatusCreated, created, time.Since(start))
}

// UpdateApplication serves PUT /api/v1/applications/{id}.
func (h *Handler) UpdateApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	var in models.ApplicationInput
	if !h.decodeAndValidate(w, r, &in) {
		return
	}

	start := time.Now()
	updated, err := h.catalog.UpdateApplication(r.Context(), id, in)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.invalidateAfterMutation("applications", "application", id.String())
	respondMutation(w, http.StatusOK, updated, time.Since(start))
}

// DeleteApplication serves DELETE /api/v1/applications/{id}.
func (h *Handler) DeleteApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.catalog.DeleteApplication(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}

	h.invalidateAfterMutation("applications", "application", id.String())
	w.WriteHeader(http.StatusNoContent)
}
