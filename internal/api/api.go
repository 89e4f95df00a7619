// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

// Package api provides the HTTP layer: Chi routing, per-route-class rate
// limiting, and handlers that serve catalog reads through the dashboard
// cache and invalidate it after mutations.
package api

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/curatorhq/curator/internal/cache"
	"github.com/curatorhq/curator/internal/config"
	"github.com/curatorhq/curator/internal/models"
	"github.com/curatorhq/curator/internal/ratelimit"
	"github.com/curatorhq/curator/internal/store"
)

// Catalog is the data access surface the handlers need. *store.DB
// implements it; tests substitute fakes.
type Catalog interface {
	ListTemplates(ctx context.Context, f store.ListFilter) ([]models.Template, int, error)
	GetTemplate(ctx context.Context, id uuid.UUID) (*models.Template, error)
	CreateTemplate(ctx context.Context, in models.TemplateInput) (*models.Template, error)
	UpdateTemplate(ctx context.Context, id uuid.UUID, in models.TemplateInput) (*models.Template, error)
	DeleteTemplate(ctx context.Context, id uuid.UUID) error

	ListApplications(ctx context.Context, f store.ListFilter) ([]models.Application, int, error)
	GetApplication(ctx context.Context, id uuid.UUID) (*models.Application, error)
	CreateApplication(ctx context.Context, in models.ApplicationInput) (*models.Application, error)
	UpdateApplication(ctx context.Context, id uuid.UUID, in models.ApplicationInput) (*models.Application, error)
	DeleteApplication(ctx context.Context, id uuid.UUID) error

	ListPlatforms(ctx context.Context, f store.ListFilter) ([]models.Platform, int, error)
	GetPlatform(ctx context.Context, id uuid.UUID) (*models.Platform, error)
	CreatePlatform(ctx context.Context, in models.PlatformInput) (*models.Platform, error)
	UpdatePlatform(ctx context.Context, id uuid.UUID, in models.PlatformInput) (*models.Platform, error)
	DeletePlatform(ctx context.Context, id uuid.UUID) error

	ListArticles(ctx context.Context, f store.ListFilter) ([]models.Article, int, error)
	GetArticle(ctx context.Context, id uuid.UUID) (*models.Article, error)
	CreateArticle(ctx context.Context, in models.ArticleInput) (*models.Article, error)
	UpdateArticle(ctx context.Context, id uuid.UUID, in models.ArticleInput) (*models.Article, error)
	DeleteArticle(ctx context.Context, id uuid.UUID) error

	ListUsers(ctx context.Context, f store.ListFilter) ([]models.User, int, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	CreateUser(ctx context.Context, in models.UserInput) (*models.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, in models.UserInput) (*models.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error

	Ping(ctx context.Context) error
}

// Handler carries the dependencies of all HTTP handlers.
type Handler struct {
	cfg       *config.Config
	catalog   Catalog
	registry  *cache.Registry
	limiter   *ratelimit.Limiter
	validate  *validator.Validate
	startTime time.Time
}

// NewHandler builds the handler set. The registry and limiter are
// constructed by the caller and injected, never package-level state.
func NewHandler(cfg *config.Config, catalog Catalog, registry *cache.Registry, limiter *ratelimit.Limiter) *Handler {
	return &Handler{
		cfg:       cfg,
		catalog:   catalog,
		registry:  registry,
		limiter:   limiter,
		validate:  validator.New(),
		startTime: time.Now(),
	}
}
