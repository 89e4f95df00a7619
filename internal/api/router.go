// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/curatorhq/curator/internal/ratelimit"
)

// NewRouter wires all Curator routes: health and metrics outside the API
// groups, then the catalog endpoints split by rate limit class so reads
// and mutations are throttled independently.
func (h *Handler) NewRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(requestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(securityHeaders)
	r.Use(requestMetrics)

	if len(h.cfg.Server.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.cfg.Server.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Remaining", "Retry-After"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Coarse per-IP ceiling in front of the per-class limiter. Catches
	// floods before they reach identity derivation.
	if h.cfg.Server.GlobalRateLimit > 0 {
		r.Use(httprate.LimitByIP(h.cfg.Server.GlobalRateLimit, h.cfg.Server.GlobalRateWindow))
	}

	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.With(h.rateLimit(ratelimit.ClassAuth)).Post("/auth/verify", h.VerifyToken)

		h.catalogRoutes(r, "/templates", entityHandlers{
			list: h.ListTemplates, get: h.GetTemplate,
			create: h.CreateTemplate, update: h.UpdateTemplate, del: h.DeleteTemplate,
		})
		h.catalogRoutes(r, "/applications", entityHandlers{
			list: h.ListApplications, get: h.GetApplication,
			create: h.CreateApplication, update: h.UpdateApplication, del: h.DeleteApplication,
		})
		h.catalogRoutes(r, "/platforms", entityHandlers{
			list: h.ListPlatforms, get: h.GetPlatform,
			create: h.CreatePlatform, update: h.UpdatePlatform, del: h.DeletePlatform,
		})
		h.catalogRoutes(r, "/articles", entityHandlers{
			list: h.ListArticles, get: h.GetArticle,
			create: h.CreateArticle, update: h.UpdateArticle, del: h.DeleteArticle,
		})
		h.catalogRoutes(r, "/users", entityHandlers{
			list: h.ListUsers, get: h.GetUser,
			create: h.CreateUser, update: h.UpdateUser, del: h.DeleteUser,
		})
	})

	return r
}

// entityHandlers groups the five handlers every catalog entity exposes.
type entityHandlers struct {
	list   http.HandlerFunc
	get    http.HandlerFunc
	create http.HandlerFunc
	update http.HandlerFunc
	del    http.HandlerFunc
}

// catalogRoutes mounts the standard CRUD layout for one entity: reads
// under the read class, mutations under the mutate class. The mutate
// limiter runs inside the {id} route so the resource id participates in
// the identity.
func (h *Handler) catalogRoutes(r chi.Router, pattern string, eh entityHandlers) {
	read := h.rateLimit(ratelimit.ClassRead)
	mutate := h.rateLimit(ratelimit.ClassMutate)

	r.Route(pattern, func(r chi.Router) {
		r.With(read).Get("/", eh.list)
		r.With(mutate).Post("/", eh.create)

		r.Route("/{id}", func(r chi.Router) {
			r.With(read).Get("/", eh.get)
			r.With(mutate).Put("/", eh.update)
			r.With(mutate).Delete("/", eh.del)
		})
	})
}
