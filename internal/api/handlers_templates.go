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

// ListTemplates serves GET /api/v1/templates through the dashboard cache.
func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, "templates", func(f store.ListFilter) (interface{}, int, error) {
		items, total, err := h.catalog.ListTemplates(r.Context(), f)
		return items, total, err
	})
}

// GetTemplate serves GET /api/v1/templates/{id}.
func (h *Handler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	h.serveDetail(w, r, "template", func(id uuid.UUID) (interface{}, error) {
		return h.catalog.GetTemplate(r.Context(), id)
	})
}

// CreateTemplate serves POST /api/v1/templates.
func (h *Handler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var in models.TemplateInput
	if !h.decodeAndValidate(w, r, &in) {
		return
	}

	start := time.Now()
	created, err := h.catalog.CreateTemplate(r.Context(), in)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.invalidateAfterMutation("templates", "template", "")
	respondMutation(w, http.StatusCreated, created, time.Since(start))
}

// UpdateTemplate serves PUT /api/v1/templates/{id}.
func (h *Handler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	var in models.TemplateInput
	if !h.decodeAndValidate(w, r, &in) {
		return
	}

	start := time.Now()
	updated, err := h.catalog.UpdateTemplate(r.Context(), id, in)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.invalidateAfterMutation("templates", "template", id.String())
	respondMutation(w, http.StatusOK, updated, time.Since(start))
}

// DeleteTemplate serves DELETE /api/v1/templates/{id}.
func (h *Handler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.catalog.DeleteTemplate(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}

	h.invalidateAfterMutation("templates", "template", id.String())
	w.WriteHeader(http.StatusNoContent)
}
