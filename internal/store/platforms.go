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

const platformColumns = `id, name, slug, description, website_url, logo_url, created_at, updated_at`

// ListPlatforms returns a filtered page of platforms and the total count
// of matching rows. Platforms carry no status or platform filter.
func (db *DB) ListPlatforms(ctx context.Context, f ListFilter) ([]models.Platform, int, error) {
	f = f.Normalize()
	f.Status = ""
	f.Platform = ""
	f.Tags = nil
	searchCols := []string{"name", "description"}

	where, whereArgs := f.whereOnly(searchCols, false)
	var total int
	row, err := db.queryRow(ctx, "SELECT", "platforms",
		"SELECT count(*) FROM platforms"+where, whereArgs...)
	if err != nil {
		return nil, 0, err
	}
	if err := row.Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count platforms: %w", err)
	}

	clause, args := f.clauses(searchCols, false)
	rows, err := db.queryRows(ctx, "SELECT", "platforms",
		"SELECT "+platformColumns+" FROM platforms"+clause, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.Platform
	for rows.Next() {
		p, err := scanPlatform(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

// GetPlatform fetches one platform by id.
func (db *DB) GetPlatform(ctx context.Context, id uuid.UUID) (*models.Platform, error) {
	row, err := db.queryRow(ctx, "SELECT", "platforms",
		"SELECT "+platformColumns+" FROM platforms WHERE id = ?", id.String())
	if err != nil {
		return nil, err
	}

	p, err := scanPlatform(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePlatform inserts a platform from a validated input payload.
func (db *DB) CreatePlatform(ctx context.Context, in models.PlatformInput) (*models.Platform, error) {
	taken, err := db.valueTaken(ctx, "platforms", "slug", in.Slug, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrConflict
	}

	now := time.Now().UTC()
	p := models.Platform{
		ID:          uuid.New(),
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		WebsiteURL:  in.WebsiteURL,
		LogoURL:     in.LogoURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err = db.exec(ctx, "INSERT", "platforms",
		`INSERT INTO platforms (`+platformColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID.String(), p.Name, p.Slug, p.Description, p.WebsiteURL, p.LogoURL,
		p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePlatform replaces a platform's mutable fields.
func (db *DB) UpdatePlatform(ctx context.Context, id uuid.UUID, in models.PlatformInput) (*models.Platform, error) {
	taken, err := db.valueTaken(ctx, "platforms", "slug", in.Slug, id.String())
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrConflict
	}

	res, err := db.exec(ctx, "UPDATE", "platforms",
		`UPDATE platforms SET name = ?, slug = ?, description = ?, website_url = ?,
		 logo_url = ?, updated_at = ? WHERE id = ?`,
		in.Name, in.Slug, in.Description, in.WebsiteURL, in.LogoURL,
		time.Now().UTC(), id.String())
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return db.GetPlatform(ctx, id)
}

// DeletePlatform removes a platform by id. Templates and applications
// referencing it keep their platform_id; referential cleanup is an
// admin task, not a cascade.
func (db *DB) DeletePlatform(ctx context.Context, id uuid.UUID) error {
	res, err := db.exec(ctx, "DELETE", "platforms",
		"DELETE FROM platforms WHERE id = ?", id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPlatform(r rowScanner) (models.Platform, error) {
	var p models.Platform
	var id string
	var description, websiteURL, logoURL sql.NullString

	err := r.Scan(&id, &p.Name, &p.Slug, &description, &websiteURL, &logoURL,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return p, err
	}

	p.ID, err = uuid.Parse(id)
	if err != nil {
		return p, fmt.Errorf("malformed platform id %q: %w", id, err)
	}
	p.Description = description.String
	p.WebsiteURL = websiteURL.String
	p.LogoURL = logoURL.String
	return p, nil
}
