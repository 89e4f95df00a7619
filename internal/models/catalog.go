// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

// Package models defines the catalog data structures and API response
// envelopes shared by the store and HTTP layers.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Publication status values shared by templates, applications and articles.
const (
	StatusDraft    = "draft"
	StatusLive     = "live"
	StatusArchived = "archived"
)

// Template is a sellable site template in the catalog.
//
// Price is in cents to avoid floating-point money. PreviewURL and
// ThumbnailURL point at externally hosted assets; this service stores
// references only.
type Template struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description,omitempty"`
	PlatformID   uuid.UUID `json:"platform_id"`
	Price        int64     `json:"price"`
	Status       string    `json:"status"`
	Tags         []string  `json:"tags,omitempty"`
	PreviewURL   string    `json:"preview_url,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TemplateInput is the mutation payload for templates.
type TemplateInput struct {
	Name         string   `json:"name" validate:"required,min=1,max=200"`
	Slug         string   `json:"slug" validate:"required,min=1,max=200,lowercase"`
	Description  string   `json:"description" validate:"max=5000"`
	PlatformID   string   `json:"platform_id" validate:"required,uuid4"`
	Price        int64    `json:"price" validate:"gte=0"`
	Status       string   `json:"status" validate:"required,oneof=draft live archived"`
	Tags         []string `json:"tags" validate:"max=20,dive,min=1,max=50"`
	PreviewURL   string   `json:"preview_url" validate:"omitempty,url"`
	ThumbnailURL string   `json:"thumbnail_url" validate:"omitempty,url"`
}

// Application is a catalog app or plugin, listed per platform.
type Application struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	PlatformID  uuid.UUID `json:"platform_id"`
	Vendor      string    `json:"vendor,omitempty"`
	Price       int64     `json:"price"`
	Status      string    `json:"status"`
	Tags        []string  `json:"tags,omitempty"`
	IconURL     string    `json:"icon_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ApplicationInput is the mutation payload for applications.
type ApplicationInput struct {
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	Slug        string   `json:"slug" validate:"required,min=1,max=200,lowercase"`
	Description string   `json:"description" validate:"max=5000"`
	PlatformID  string   `json:"platform_id" validate:"required,uuid4"`
	Vendor      string   `json:"vendor" validate:"max=200"`
	Price       int64    `json:"price" validate:"gte=0"`
	Status      string   `json:"status" validate:"required,oneof=draft live archived"`
	Tags        []string `json:"tags" validate:"max=20,dive,min=1,max=50"`
	IconURL     string   `json:"icon_url" validate:"omitempty,url"`
}

// Platform groups templates and applications (e.g. a storefront engine).
type Platform struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	WebsiteURL  string    `json:"website_url,omitempty"`
	LogoURL     string    `json:"logo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PlatformInput is the mutation payload for platforms.
type PlatformInput struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Slug        string `json:"slug" validate:"required,min=1,max=200,lowercase"`
	Description string `json:"description" validate:"max=5000"`
	WebsiteURL  string `json:"website_url" validate:"omitempty,url"`
	LogoURL     string `json:"logo_url" validate:"omitempty,url"`
}

// Article is a blog article.
//
// PublishedAt is nil while the article is a draft.
type Article struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Body        string     `json:"body"`
	AuthorID    uuid.UUID  `json:"author_id"`
	Status      string     `json:"status"`
	Tags        []string   `json:"tags,omitempty"`
	CoverURL    string     `json:"cover_url,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ArticleInput is the mutation payload for articles.
type ArticleInput struct {
	Title    string   `json:"title" validate:"required,min=1,max=300"`
	Slug     string   `json:"slug" validate:"required,min=1,max=300,lowercase"`
	Excerpt  string   `json:"excerpt" validate:"max=1000"`
	Body     string   `json:"body" validate:"required"`
	AuthorID string   `json:"author_id" validate:"required,uuid4"`
	Status   string   `json:"status" validate:"required,oneof=draft live archived"`
	Tags     []string `json:"tags" validate:"max=20,dive,min=1,max=50"`
	CoverURL string   `json:"cover_url" validate:"omitempty,url"`
}

// User roles.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// User is an admin dashboard account. Credentials are managed by the
// external auth provider; this service stores the profile only.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserInput is the mutation payload for users.
type UserInput struct {
	Email  string `json:"email" validate:"required,email"`
	Name   string `json:"name" validate:"required,min=1,max=200"`
	Role   string `json:"role" validate:"required,oneof=admin editor viewer"`
	Active bool   `json:"active"`
}
