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

const applicationColumns = `id, name, slug, description, platform_id, vendor, price, status,
	tags, icon_url, created_at, updated_at`

// ListApplications returns a filtered page of applications and the total
// count of matching rows.
func (db *DB) ListApplications(ctx context.Context, f ListFilter) ([]models.Application, int, error) {
	f = f.Normalize()
	searchCols := []string{"name", "description", "vendor"}

	where, whereArgs := f.whereOnly(searchCols, true)
	var total int
	row, err := db.queryRow(ctx, "SELECT", "applications",
		"SELECT count(*) FROM applications"+where, whereArgs...)
	if err != nil {
		return nil, 0, err
	}
	if err := row.Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}

	clause, args := f.clauses(searchCols, true)
	rows, err := db.queryRows(ctx, "SELECT", "applications",
		"SELECT "+applicationColumns+" FROM applications"+clause, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	return out, total, rows.Err()
}

// GetApplication fetches one application by id.
func (db *DB) GetApplication(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	row, err := db.queryRow(ctx, "SELECT", "applications",
		"SELECT "+applicationColumns+" FROM applications WHERE id = ?", id.String())
	if err != nil {
		return nil, err
	}

	a, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateApplication inserts an application from a validated input payload.
func (db *DB) CreateApplication(ctx context.Context, in models.ApplicationInput) (*models.Application, error) {
	platformID, err := uuid.Parse(in.PlatformID)
	if err != nil {
		return nil, fmt.Errorf("malformed platform id %q: %w", in.PlatformID, err)
	}

	taken, err := db.valueTaken(ctx, "applications", "slug", in.Slug, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrConflict
	}

	now := time.Now().UTC()
	a := models.Application{
		ID:          uuid.New(),
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		PlatformID:  platformID,
		Vendor:      in.Vendor,
		Price:       in.Price,
		Status:      in.Status,
		Tags:        in.Tags,
		IconURL:     in.IconURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err = db.exec(ctx, "INSERT", "applications",
		`INSERT INTO applications (`+applicationColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID.String(), a.Name, a.Slug, a.Description, a.PlatformID.String(),
		a.Vendor, a.Price, a.Status, encodeTags(a.Tags), a.IconURL,
		a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateApplication replaces an application's mutable fields.
func (db *DB) UpdateApplication(ctx context.Context, id uuid.UUID, in models.ApplicationInput) (*models.Application, error) {
	taken, err := db.valueTaken(ctx, "applications", "slug", in.Slug, id.String())
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrConflict
	}

	res, err := db.exec(ctx, "UPDATE", "applications",
		`UPDATE applications SET name = ?, slug = ?, description = ?, platform_id = ?,
		 vendor = ?, price = ?, status = ?, tags = ?, icon_url = ?, updated_at = ?
		 WHERE id = ?`,
		in.Name, in.Slug, in.Description, in.PlatformID, in.Vendor, in.Price,
		in.Status, encodeTags(in.Tags), in.IconURL, time.Now().UTC(), id.String())
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return db.GetApplication(ctx, id)
}

// DeleteApplication removes an application by id.
func (db *DB) DeleteApplication(ctx context.Context, id uuid.UUID) error {
	res, err := db.exec(ctx, "DELETE", "applications",
		"DELETE FROM applications WHERE id = ?", id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanApplication(r rowScanner) (models.Application, error) {
	var a models.Application
	var id, platformID, tags string
	var description, vendor, iconURL sql.NullString

	err := r.Scan(&id, &a.Name, &a.Slug, &description, &platformID, &vendor,
		&a.Price, &a.Status, &tags, &iconURL, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return a, err
	}

	a.ID, err = uuid.Parse(id)
	if err != nil {
		return a, fmt.Errorf("malformed application id %q: %w", id, err)
	}
	a.PlatformID, err = uuid.Parse(platformID)
	if err != nil {
		return a, fmt.Errorf("malformed platform id %q: %w", platformID, err)
	}
	a.Description = description.String
	a.Vendor = vendor.String
	a.IconURL = iconURL.String
	a.Tags = decodeTags(tags)
	return a, nil
}
