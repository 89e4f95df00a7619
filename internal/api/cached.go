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

	"github.com/curatorhq/curator/internal/cache"
	"github.com/curatorhq/curator/internal/models"
	"github.com/curatorhq/curator/internal/store"
)

// serveList runs the cache read path for a list endpoint: build key,
// check the entity's store, on miss fetch fresh and cache the result.
// Failed fetches are never cached.
func (h *Handler) serveList(w http.ResponseWriter, r *http.Request, entity string,
	fetch func(store.ListFilter) (interface{}, int, error)) {
	f := listFilterFromQuery(r)
	key := h.registry.Key(entity, cache.ListQuery{
		Page:     f.Page,
		PerPage:  f.PerPage,
		Sort:     f.Sort,
		Search:   f.Search,
		Status:   f.Status,
		Platform: f.Platform,
		Tags:     f.Tags,
	})
	entityStore := h.registry.MustStore(entity)
	headers := h.registry.CacheHeaders(entity)

	if cached, ok := entityStore.Get(key); ok {
		respondJSON(w, http.StatusOK, &models.APIResponse{
			Status:   "success",
			Data:     cached,
			Metadata: models.Metadata{Timestamp: time.Now(), Cached: true},
		}, headers)
		return
	}

	start := time.Now()
	results, total, err := fetch(f)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	queryTime := time.Since(start)

	payload := models.ListResult{
		Total:   total,
		Page:    f.Page,
		PerPage: f.PerPage,
		Results: results,
	}
	entityStore.Set(key, payload)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   payload,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: queryTime.Milliseconds(),
		},
	}, headers)
}

// serveDetail runs the cache read path for a single-record endpoint.
func (h *Handler) serveDetail(w http.ResponseWriter, r *http.Request, entity string,
	fetch func(uuid.UUID) (interface{}, error)) {
	id, ok := pathID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	key := h.registry.Key(entity, cache.DetailQuery{ID: id.String()})
	entityStore := h.registry.MustStore(entity)
	headers := h.registry.CacheHeaders(entity)

	if cached, found := entityStore.Get(key); found {
		respondJSON(w, http.StatusOK, &models.APIResponse{
			Status:   "success",
			Data:     cached,
			Metadata: models.Metadata{Timestamp: time.Now(), Cached: true},
		}, headers)
		return
	}

	start := time.Now()
	record, err := fetch(id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	queryTime := time.Since(start)

	entityStore.Set(key, record)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   record,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: queryTime.Milliseconds(),
		},
	}, headers)
}

// invalidateAfterMutation clears caches after a successful mutation:
// the record's detail entries (point invalidation) and the whole list
// store, since any list page may now be stale. With an empty id only
// the list store is cleared (inserts have no detail entries yet).
func (h *Handler) invalidateAfterMutation(listEntity, detailEntity, id string) {
	if id != "" {
		h.registry.Invalidate(detailEntity, id)
	}
	h.registry.Invalidate(listEntity, "")
}

// respondMutation answers a successful create or update.
func respondMutation(w http.ResponseWriter, status int, record interface{}, queryTime time.Duration) {
	respondJSON(w, status, &models.APIResponse{
		Status: "success",
		Data:   record,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: queryTime.Milliseconds(),
		},
	}, nil)
}
