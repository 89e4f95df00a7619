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

// ListUsers serves GET /api/v1/users through the dashboard cache.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, "users", func(f store.ListFilter) (interface{}, int, error) {
		items, total, err := h.catalog.ListUsers(r.Context(), f)
		return items, total, err
	})
}

// GetUser serves GET /api/v1/users/{id}.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	h.serveDetail(w, r, "user", func(id uuid.UUID) (interface{}, error) {
		return h.catalog.GetUser(r.Context(), id)
	})
}

// CreateUser serves POST /api/v1/users.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var in models.UserInput
	if !h.decodeAndValidate(w, r, &in) {
		return
	}

	start := time.Now()
	created, err := h.catalog.CreateUser(r.Context(), in)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.invalidateAfterMutation("users", "user", "")
	respondMutation(w, http.StatusCreated, created, time.Since(start))
}

// UpdateUser serves PUT /api/v1/users/{id}.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	var in models.UserInput
	if !h.decodeAndValidate(w, r, &in) {
		return
	}

	start := time.Now()
	updated, err := h.catalog.UpdateUser(r.Context(), id, in)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.invalidateAfterMutation("users", "user", id.String())
	respondMutation(w, http.StatusOK, updated, time.Since(start))
}

// DeleteUser serves DELETE /api/v1/users/{id}.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.catalog.DeleteUser(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}

	h.invalidateAfterMutation("users", "user", id.String())
	w.WriteHeader(http.StatusNoContent)
}
