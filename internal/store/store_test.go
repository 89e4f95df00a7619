// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/curatorhq/curator/internal/config"
	"github.com/curatorhq/curator/internal/models"
)

// newTestDB opens an in-memory database with the schema applied.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(config.DatabaseConfig{})
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedPlatform(t *testing.T, db *DB) *models.Platform {
	t.Helper()
	p, err := db.CreatePlatform(context.Background(), models.PlatformInput{
		Name: "Shoply",
		Slug: "shoply-" + uuid.NewString()[:8],
	})
	if err != nil {
		t.Fatalf("Failed to seed platform: %v", err)
	}
	return p
}

func templateInput(platformID, slug string) models.TemplateInput {
	return models.TemplateInput{
		Name:       "Storefront Starter",
		Slug:       slug,
		PlatformID: platformID,
		Price:      4900,
		Status:     models.StatusLive,
		Tags:       []string{"commerce", "starter"},
	}
}

func TestTemplateCRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	platform := seedPlatform(t, db)

	created, err := db.CreateTemplate(ctx, templateInput(platform.ID.String(), "storefront-starter"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("Expected generated id")
	}

	got, err := db.GetTemplate(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "Storefront Starter" || got.Price != 4900 {
		t.Errorf("Got %+v, want seeded fields", got)
	}
	if len(got.Tags) != 2 {
		t.Errorf("Tags = %v, want 2 round-tripped tags", got.Tags)
	}

	in := templateInput(platform.ID.String(), "storefront-starter")
	in.Price = 5900
	in.Status = models.StatusArchived
	updated, err := db.UpdateTemplate(ctx, created.ID, in)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Price != 5900 || updated.Status != models.StatusArchived {
		t.Errorf("Update not applied: %+v", updated)
	}

	if err := db.DeleteTemplate(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := db.GetTemplate(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestTemplateSlugConflict(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	platform := seedPlatform(t, db)

	if _, err := db.CreateTemplate(ctx, templateInput(platform.ID.String(), "dupe")); err != nil {
		t.Fatalf("First create failed: %v", err)
	}
	if _, err := db.CreateTemplate(ctx, templateInput(platform.ID.String(), "dupe")); !errors.Is(err, ErrConflict) {
		t.Errorf("Expected ErrConflict for duplicate slug, got %v", err)
	}
}

func TestListTemplatesFiltering(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	platform := seedPlatform(t, db)
	other := seedPlatform(t, db)

	for i, tc := range []struct {
		slug, status, platformID string
		tags                     []string
	}{
		{"alpha-shop", models.StatusLive, platform.ID.String(), []string{"commerce"}},
		{"beta-blog", models.StatusDraft, platform.ID.String(), []string{"blog"}},
		{"gamma-shop", models.StatusLive, other.ID.String(), []string{"commerce"}},
	} {
		in := templateInput(tc.platformID, tc.slug)
		in.Name = tc.slug
		in.Status = tc.status
		in.Tags = tc.tags
		if _, err := db.CreateTemplate(ctx, in); err != nil {
			t.Fatalf("Seed %d failed: %v", i, err)
		}
	}

	list, total, err := db.ListTemplates(ctx, ListFilter{Status: models.StatusLive})
	if err != nil {
		t.Fatalf("List by status failed: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Errorf("Status filter: total=%d len=%d, want 2/2", total, len(list))
	}

	_, total, err = db.ListTemplates(ctx, ListFilter{Platform: platform.ID.String()})
	if err != nil {
		t.Fatalf("List by platform failed: %v", err)
	}
	if total != 2 {
		t.Errorf("Platform filter: total=%d, want 2", total)
	}

	_, total, err = db.ListTemplates(ctx, ListFilter{Search: "ALPHA"})
	if err != nil {
		t.Fatalf("List by search failed: %v", err)
	}
	if total != 1 {
		t.Errorf("Search filter: total=%d, want 1 (case-insensitive)", total)
	}

	_, total, err = db.ListTemplates(ctx, ListFilter{Tags: []string{"blog"}})
	if err != nil {
		t.Fatalf("List by tag failed: %v", err)
	}
	if total != 1 {
		t.Errorf("Tag filter: total=%d, want 1", total)
	}
}

func TestListTemplatesPaging(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	platform := seedPlatform(t, db)

	for i := 0; i < 5; i++ {
		in := templateInput(platform.ID.String(), uuid.NewString())
		if _, err := db.CreateTemplate(ctx, in); err != nil {
			t.Fatalf("Seed %d failed: %v", i, err)
		}
	}

	page, total, err := db.ListTemplates(ctx, ListFilter{Page: 2, PerPage: 2})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 5 {
		t.Errorf("Total = %d, want 5", total)
	}
	if len(page) != 2 {
		t.Errorf("Page len = %d, want 2", len(page))
	}
}

func TestArticlePublishStampsPublishedAt(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	author, err := db.CreateUser(ctx, models.UserInput{
		Email: "editor@example.com", Name: "Editor", Role: models.RoleEditor, Active: true,
	})
	if err != nil {
		t.Fatalf("Seed user failed: %v", err)
	}

	draft, err := db.CreateArticle(ctx, models.ArticleInput{
		Title: "Launch Notes", Slug: "launch-notes", Body: "soon",
		AuthorID: author.ID.String(), Status: models.StatusDraft,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if draft.PublishedAt != nil {
		t.Error("Draft should not carry a publish timestamp")
	}

	published, err := db.UpdateArticle(ctx, draft.ID, models.ArticleInput{
		Title: "Launch Notes", Slug: "launch-notes", Body: "now",
		AuthorID: author.ID.String(), Status: models.StatusLive,
	})
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if published.PublishedAt == nil {
		t.Fatal("Publish should stamp PublishedAt")
	}

	stamp := *published.PublishedAt
	edited, err := db.UpdateArticle(ctx, draft.ID, models.ArticleInput{
		Title: "Launch Notes v2", Slug: "launch-notes", Body: "now",
		AuthorID: author.ID.String(), Status: models.StatusLive,
	})
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if edited.PublishedAt == nil || !edited.PublishedAt.Equal(stamp) {
		t.Error("Later edits must keep the original publish timestamp")
	}
}

func TestUserEmailConflict(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	in := models.UserInput{Email: "admin@example.com", Name: "Admin", Role: models.RoleAdmin, Active: true}
	if _, err := db.CreateUser(ctx, in); err != nil {
		t.Fatalf("First create failed: %v", err)
	}
	if _, err := db.CreateUser(ctx, in); !errors.Is(err, ErrConflict) {
		t.Errorf("Expected ErrConflict for duplicate email, got %v", err)
	}
}

func TestGetUnknownIDReturnsNotFound(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := db.GetApplication(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if err := db.DeletePlatform(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on delete, got %v", err)
	}
}

func TestListFilterNormalize(t *testing.T) {
	f := ListFilter{Page: -3, PerPage: 0}.Normalize()
	if f.Page != 1 || f.PerPage != DefaultPerPage {
		t.Errorf("Normalize() = %+v, want page 1 / default per-page", f)
	}

	f = ListFilter{Page: 2, PerPage: 9999}.Normalize()
	if f.PerPage != MaxPerPage {
		t.Errorf("PerPage = %d, want clamped to %d", f.PerPage, MaxPerPage)
	}
}
