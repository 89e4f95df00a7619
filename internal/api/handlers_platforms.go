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

// ListPlatforms serves GET /api/v1/platforms through the dashboard cache.
func (h *Handler) ListPlatforms(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, "platforms", func(f store.ListFilter) (interface{}, int, error) {
		items, total, err := h.catalog.ListPlatforms(r.Context(), f)
		return items, total, err
	})
}

// GetPlatform serves GET /api/v1/platforms/{id}.
func (h *Handler) GetPlatform(w http.ResponseWriter, r *http.Request) {
	h.serveDetail(w, r, "platform", func(id uuid.UUID) (interface{}, error) {
		return h.catalog.GetPlatform(r.Context(), id)
	})
}

// CreatePlatform serves POST /api/v1/platforms.
func (h *Handler) CreatePlatform(w http.ResponseWriter, r *http.Request) {
	var in models.PlatformInput
	if !h.decodeAndValidate(w, r, &in) {
		return
	}

	start := time.Now()
	created, err := h.catalog.CreatePlatform(r.Context(), in)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.invalidateAfterMutation("platforms", "platform", "")
	respondMutation(w, http.StatusCreated, created, time.Since(start))
}

// UpdatePlatform serves PUT /api/v1/platforms/{id}.
func (h *Handler) UpdatePlatform(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	var in models.PlatformInput
	if !h.decodeAndValidate(w, r, &in) {
		return
	}

	start := time.Now()
	updated, err := h.catalog.UpdatePlatform(r.Context(), id, in)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.invalidateAfterMutation("platforms", "platform", id.String())
	respondMutation(w, http.StatusOK, updated, time.Since(start))
}

// DeletePlatform serves DELETE /api/v1/platforms/{id}.
//
// Deleting a platform does not touch the template or application caches.
// Cross-entity invalidation is not supported; stale references correct
// themselves on the next TTL expiry.
func (h *Handler) DeletePlatform(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.catalog.DeletePlatform(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}

	h.invalidateAfterMutation("platforms", "platform", id.String())
	w.WriteHeader(http.StatusNoContent)
}
