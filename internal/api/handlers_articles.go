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

// ListArticles serves GET /api/v1/articles through the dashboard cache.
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, "articles", func(f store.ListFilter) (interface{}, int, error) {
		items, total, err := h.catalog.ListArticles(r.Context(), f)
		return items, total, err
	})
}

// GetArticle serves GET /api/v1/articles/{id}.
func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	h.serveDetail(w, r, "article", func(id uuid.UUID) (interface{}, error) {
		return h.catalog.GetArticle(r.Context(), id)
	})
}

// CreateArticle serves POST /api/v1/articles.
func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var in models.ArticleInput
	if !h.decodeAndValidate(w, r, &in) {
		return
	}

	start := time.Now()
	created, err := h.catalog.CreateArticle(r.Context(), in)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.invalidateAfterMutation("articles", "article", "")
	respondMutation(w, http.StatusCreated, created, time.Since(start))
}

// UpdateArticle serves PUT /api/v1/articles/{id}.
func (h *Handler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	var in models.ArticleInput
	if !h.decodeAndValidate(w, r, &in) {
		return
	}

	start := time.Now()
	updated, err := h.catalog.UpdateArticle(r.Context(), id, in)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.invalidateAfterMutation("articles", "article", id.String())
	respondMutation(w, http.StatusOK, updated, time.Since(start))
}

// DeleteArticle serves DELETE /api/v1/articles/{id}.
func (h *Handler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.catalog.DeleteArticle(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}

	h.invalidateAfterMutation("articles", "article", id.String())
	w.WriteHeader(http.StatusNoContent)
}
