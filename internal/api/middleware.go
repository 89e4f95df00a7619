// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

package api

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"

	"github.com/curatorhq/curator/internal/logging"
	"github.com/curatorhq/curator/internal/metrics"
	"github.com/curatorhq/curator/internal/models"
	"github.com/curatorhq/curator/internal/ratelimit"
)

// requestID attaches a request id to the response header and the
// request-scoped logger.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = logging.GenerateRequestID()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(logging.ContextWithRequestID(r.Context(), id)))
	})
}

// securityHeaders sets a conservative header baseline for API responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

// requestMetrics records request counts and latency per route pattern.
func requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		endpoint := chi.RouteContext(r.Context()).RoutePattern()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		metrics.RecordAPIRequest(r.Method, endpoint, strconv.Itoa(ww.Status()), time.Since(start))
	})
}

// rateLimit enforces the fixed-window limit for one route class.
//
// The identity is the client address, scoped by the JWT session subject
// when a valid bearer token is present, and by the {id} route parameter
// on mutation routes. Denials answer 429 with Retry-After; allowed
// requests advertise the remaining budget.
func (h *Handler) rateLimit(class ratelimit.Class) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if h.limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			session := h.sessionSubject(r)
			resource := ""
			if class == ratelimit.ClassMutate {
				resource = chi.URLParam(r, "id")
			}

			decision := h.limiter.Check(class, ratelimit.Identity(r, session, resource))
			if !decision.Allowed {
				retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				respondJSON(w, http.StatusTooManyRequests, &models.APIResponse{
					Status:   "error",
					Metadata: models.Metadata{Timestamp: time.Now()},
					Error: &models.APIError{
						Code:    models.ErrCodeRateLimitExceeded,
						Message: "Too many requests",
						Details: map[string]interface{}{"retry_after_seconds": retryAfter},
					},
				}, nil)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
			next.ServeHTTP(w, r)
		})
	}
}

// sessionSubject extracts the subject claim from a bearer token, or ""
// when no valid token is present. Used only to scope limiter identities;
// token issuance and full authentication live with the external auth
// provider.
func (h *Handler) sessionSubject(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || auth[:len(prefix)] != prefix {
		return ""
	}
	secret := h.cfg.Auth.JWTSecret
	if secret == "" {
		return ""
	}

	token, err := jwt.Parse(auth[len(prefix):], func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return ""
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return ""
	}
	return subject
}
