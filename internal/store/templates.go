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

const templateColumns = `id, name, slug, description, platform_id, price, status, tags,
	preview_url, thumbnail_url, created_at, updated_at`

// ListTemplates returns a filtered page of templates and the total count
// of matching rows.
func (db *DB) ListTemplates(ctx context.Context, f ListFilter) ([]models.Template, int, error) {
	f = f.Normalize()
	searchCols := []string{"name", "description"}

	where, whereArgs := f.whereOnly(searchCols, true)
	var total int
	row, err := db.queryRow(ctx, "SELECT", "templates",
		"SELECT count(*) FROM templates"+where, whereArgs...)
	if err != nil {
		return nil, 0, err
	}
	if err := row.Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count templates: %w", err)
	}

	clause, args := f.clauses(searchCols, true)
	rows, err := db.queryRows(ctx, "SELECT", "templates",
		"SELECT "+templateColumns+" FROM templates"+clause, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	return out, total, rows.Err()
}

// GetTemplate fetches one template by id.
func (db *DB) GetTemplate(ctx context.Context, id uuid.UUID) (*models.Template, error) {
	row, err := db.queryRow(ctx, "SELECT", "templates",
		"SELECT "+templateColumns+" FROM templates WHERE id = ?", id.String())
	if err != nil {
		return nil, err
	}

	t, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTemplate inserts a template from a validated input payload.
func (db *DB) CreateTemplate(ctx context.Context, in models.TemplateInput) (*models.Template, error) {
	platformID, err := uuid.Parse(in.PlatformID)
	if err != nil {
		return nil, fmt.Errorf("malformed platform id %q: %w", in.PlatformID, err)
	}

	taken, err := db.valueTaken(ctx, "templates", "slug", in.Slug, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrConflict
	}

	now := time.Now().UTC()
	t := models.Template{
		ID:           uuid.New(),
		Name:         in.Name,
		Slug:         in.Slug,
		Description:  in.Description,
		PlatformID:   platformID,
		Price:        in.Price,
		Status:       in.Status,
		Tags:         in.Tags,
		PreviewURL:   in.PreviewURL,
		ThumbnailURL: in.ThumbnailURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = db.exec(ctx, "INSERT", "templates",
		`INSERT INTO templates (`+templateColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID.String(), t.Name, t.Slug, t.Description, t.PlatformID.String(),
		t.Price, t.Status, encodeTags(t.Tags), t.PreviewURL, t.ThumbnailURL,
		t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTemplate replaces a template's mutable fields.
func (db *DB) UpdateTemplate(ctx context.Context, id uuid.UUID, in models.TemplateInput) (*models.Template, error) {
	taken, err := db.valueTaken(ctx, "templates", "slug", in.Slug, id.String())
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrConflict
	}

	res, err := db.exec(ctx, "UPDATE", "templates",
		`UPDATE templates SET name = ?, slug = ?, description = ?, platform_id = ?,
		 price = ?, status = ?, tags = ?, preview_url = ?, thumbnail_url = ?, updated_at = ?
		 WHERE id = ?`,
		in.Name, in.Slug, in.Description, in.PlatformID, in.Price, in.Status,
		encodeTags(in.Tags), in.PreviewURL, in.ThumbnailURL, time.Now().UTC(), id.String())
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return db.GetTemplate(ctx, id)
}

// DeleteTemplate removes a template by id.
func (db *DB) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	res, err := db.exec(ctx, "DELETE", "templates",
		"DELETE FROM templates WHERE id = ?", id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTemplate(r rowScanner) (models.Template, error) {
	var t models.Template
	var id, platformID, tags string
	var description, previewURL, thumbnailURL sql.NullString

	err := r.Scan(&id, &t.Name, &t.Slug, &description, &platformID, &t.Price,
		&t.Status, &tags, &previewURL, &thumbnailURL, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return t, err
	}

	t.ID, err = uuid.Parse(id)
	if err != nil {
		return t, fmt.Errorf("malformed template id %q: %w", id, err)
	}
	t.PlatformID, err = uuid.Parse(platformID)
	if err != nil {
		return t, fmt.Errorf("malformed platform id %q: %w", platformID, err)
	}
	t.Description = description.String
	t.PreviewURL = previewURL.String
	t.ThumbnailURL = thumbnailURL.String
	t.Tags = decodeTags(tags)
	return t, nil
}
