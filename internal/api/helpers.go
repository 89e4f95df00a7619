// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/curatorhq/curator/internal/logging"
	"github.com/curatorhq/curator/internal/models"
	"github.com/curatorhq/curator/internal/store"
)

// respondJSON sends a JSON response. extraHeaders carries per-entity
// cache headers on read endpoints; mutations pass nil.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse, extraHeaders map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Vary", "Accept-Encoding")
	for name, value := range extraHeaders {
		w.Header().Set(name, value)
	}

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", generateETag(data))

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag creates a weak ETag from data using FNV-1a.
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return strconv.FormatUint(uint64(hash), 16)
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		logging.Error().Str("code", code).Str("error", sanitizeLogValue(err.Error())).Msg("API error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now()},
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
	}, nil)
}

// respondStoreError maps store sentinels to HTTP statuses.
func respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "Record not found", nil)
	case errors.Is(err, store.ErrConflict):
		respondError(w, http.StatusConflict, models.ErrCodeValidation, "Slug or email already in use", nil)
	default:
		respondError(w, http.StatusInternalServerError, models.ErrCodeDatabase, "Query failed", err)
	}
}

// sanitizeLogValue strips control characters so request-derived strings
// cannot forge log lines.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// decodeAndValidate decodes a JSON request body into v and validates it.
// Writes the error response itself and reports whether to continue.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "Malformed JSON body", err)
		return false
	}

	if err := h.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		details := map[string]interface{}{}
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				details[fe.Field()] = fe.Tag()
			}
		}
		respondJSON(w, http.StatusBadRequest, &models.APIResponse{
			Status:   "error",
			Metadata: models.Metadata{Timestamp: time.Now()},
			Error: &models.APIError{
				Code:    models.ErrCodeValidation,
				Message: "Invalid request payload",
				Details: details,
			},
		}, nil)
		return false
	}
	return true
}

// listFilterFromQuery parses list query parameters into a normalized
// filter. Unknown or malformed values fall back to defaults.
func listFilterFromQuery(r *http.Request) store.ListFilter {
	q := r.URL.Query()
	f := store.ListFilter{
		Page:     getIntParam(r, "page", 1),
		PerPage:  getIntParam(r, "per_page", store.DefaultPerPage),
		Search:   q.Get("search"),
		Status:   q.Get("status"),
		Platform: q.Get("platform"),
		Sort:     q.Get("sort"),
	}
	if tags := q.Get("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				f.Tags = append(f.Tags, tag)
			}
		}
	}
	return f.Normalize()
}

// getIntParam extracts an integer query parameter with a default value.
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

// pathID parses the {id} route parameter. Writes the error response on
// malformed ids and reports whether to continue.
func pathID(w http.ResponseWriter, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "Malformed id", nil)
		return uuid.Nil, false
	}
	return id, true
}
