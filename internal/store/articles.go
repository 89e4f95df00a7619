// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/curatorhq/curator/internal/models"
)

const articleColumns = `id, title, slug, excerpt, body, author_id, status, tags,
	cover_url, published_at, created_at, updated_at`

// ListArticles returns a filtered page of articles and the total count
// of matching rows.
func (db *DB) ListArticles(ctx context.Context, f ListFilter) ([]models.Article, int, error) {
	f = f.Normalize()
	f.Platform = ""
	searchCols := []string{"title", "excerpt", "body"}

	where, whereArgs := f.whereOnly(searchCols, false)
	var total int
	row, err := db.queryRow(ctx, "SELECT", "articles",
		"SELECT count(*) FROM articles"+where, whereArgs...)
	if err != nil {
		return nil, 0, err
	}
	if err := row.Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count articles: %w", err)
	}

	clause, args := f.clauses(searchCols, false)
	rows, err := db.queryRows(ctx, "SELECT", "articles",
		"SELECT "+articleColumns+" FROM articles"+clause, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	return out, total, rows.Err()
}

// GetArticle fetches one article by id.
func (db *DB) GetArticle(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	row, err := db.queryRow(ctx, "SELECT", "articles",
		"SELECT "+articleColumns+" FROM articles WHERE id = ?", id.String())
	if err != nil {
		return nil, err
	}

	a, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateArticle inserts an article from a validated input payload.
// Publishing (status live) stamps PublishedAt.
func (db *DB) CreateArticle(ctx context.Context, in models.ArticleInput) (*models.Article, error) {
	authorID, err := uuid.Parse(in.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("malformed author id %q: %w", in.AuthorID, err)
	}

	taken, err := db.valueTaken(ctx, "articles", "slug", in.Slug, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrConflict
	}

	now := time.Now().UTC()
	a := models.Article{
		ID:        uuid.New(),
		Title:     in.Title,
		Slug:      in.Slug,
		Excerpt:   in.Excerpt,
		Body:      in.Body,
		AuthorID:  authorID,
		Status:    in.Status,
		Tags:      in.Tags,
		CoverURL:  in.CoverURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Status == models.StatusLive {
		a.PublishedAt = &now
	}

	_, err = db.exec(ctx, "INSERT", "articles",
		`INSERT INTO articles (`+articleColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID.String(), a.Title, a.Slug, a.Excerpt, a.Body, a.AuthorID.String(),
		a.Status, encodeTags(a.Tags), a.CoverURL, a.PublishedAt,
		a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateArticle replaces an article's mutable fields. A transition to
// live stamps PublishedAt once; later edits keep the original timestamp.
func (db *DB) UpdateArticle(ctx context.Context, id uuid.UUID, in models.ArticleInput) (*models.Article, error) {
	current, err := db.GetArticle(ctx, id)
	if err != nil {
		return nil, err
	}

	taken, err := db.valueTaken(ctx, "articles", "slug", in.Slug, id.String())
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrConflict
	}

	now := time.Now().UTC()
	publishedAt := current.PublishedAt
	if in.Status == models.StatusLive && publishedAt == nil {
		publishedAt = &now
	}

	res, err := db.exec(ctx, "UPDATE", "articles",
		`UPDATE articles SET title = ?, slug = ?, excerpt = ?, body = ?, author_id = ?,
		 status = ?, tags = ?, cover_url = ?, published_at = ?, updated_at = ?
		 WHERE id = ?`,
		in.Title, in.Slug, in.Excerpt, in.Body, in.AuthorID, in.Status,
		encodeTags(in.Tags), in.CoverURL, publishedAt, now, id.String())
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return db.GetArticle(ctx, id)
}

// DeleteArticle removes an article by id.
func (db *DB) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	res, err := db.exec(ctx, "DELETE", "articles",
		"DELETE FROM articles WHERE id = ?", id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanArticle(r rowScanner) (models.Article, error) {
	var a models.Article
	var id, authorID, tags string
	var excerpt, coverURL sql.NullString
	var publishedAt sql.NullTime

	err := r.Scan(&id, &a.Title, &a.Slug, &excerpt, &a.Body, &authorID,
		&a.Status, &tags, &coverURL, &publishedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return a, err
	}

	a.ID, err = uuid.Parse(id)
	if err != nil {
		return a, fmt.Errorf("malformed article id %q: %w", id, err)
	}
	a.AuthorID, err = uuid.Parse(authorID)
	if err != nil {
		return a, fmt.Errorf("malformed author id %q: %w", authorID, err)
	}
	a.Excerpt = excerpt.String
	a.CoverURL = coverURL.String
	a.Tags = decodeTags(tags)
	if publishedAt.Valid {
		t := publishedAt.Time
		a.PublishedAt = &t
	}
	return a, nil
}
