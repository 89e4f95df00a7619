// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

package models

import (
	"time"
)

// APIResponse is the standardized response wrapper used by all HTTP
// endpoints, for both successes and errors.
//
// Status is "success" or "error". Data carries the payload on success;
// Error carries structured details on failure.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"total": 42, "results": [...]},
//	  "metadata": {
//	    "timestamp": "2026-08-31T12:00:00Z",
//	    "query_time_ms": 12,
//	    "cached": false
//	  }
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
//
// QueryTimeMS is the database query time in milliseconds, 0 when the
// response came from cache. Cached reports whether the dashboard cache
// served the payload.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError carries structured error details.
//
// Common codes:
//   - VALIDATION_ERROR: invalid input parameters
//   - DATABASE_ERROR: query execution failure
//   - AUTHENTICATION_ERROR: invalid or missing credentials
//   - NOT_FOUND: resource doesn't exist
//   - RATE_LIMIT_EXCEEDED: too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error codes used across the API.
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeDatabase          = "DATABASE_ERROR"
	ErrCodeAuthentication    = "AUTHENTICATION_ERROR"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal          = "INTERNAL_ERROR"
)

// ListResult wraps a page of records with its total match count.
type ListResult struct {
	Total   int         `json:"total"`
	Page    int         `json:"page"`
	PerPage int         `json:"per_page"`
	Results interface{} `json:"results"`
}
