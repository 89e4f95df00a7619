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

const userColumns = `id, email, name, role, active, created_at, updated_at`

// ListUsers returns a filtered page of users and the total count of
// matching rows. Users carry no status, platform, or tag filters.
func (db *DB) ListUsers(ctx context.Context, f ListFilter) ([]models.User, int, error) {
	f = f.Normalize()
	f.Status = ""
	f.Platform = ""
	f.Tags = nil
	searchCols := []string{"email", "name"}

	where, whereArgs := f.whereOnly(searchCols, false)
	var total int
	row, err := db.queryRow(ctx, "SELECT", "users",
		"SELECT count(*) FROM users"+where, whereArgs...)
	if err != nil {
		return nil, 0, err
	}
	if err := row.Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	clause, args := f.clauses(searchCols, false)
	rows, err := db.queryRows(ctx, "SELECT", "users",
		"SELECT "+userColumns+" FROM users"+clause, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, total, rows.Err()
}

// GetUser fetches one user by id.
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row, err := db.queryRow(ctx, "SELECT", "users",
		"SELECT "+userColumns+" FROM users WHERE id = ?", id.String())
	if err != nil {
		return nil, err
	}

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a user from a validated input payload.
func (db *DB) CreateUser(ctx context.Context, in models.UserInput) (*models.User, error) {
	taken, err := db.valueTaken(ctx, "users", "email", in.Email, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrConflict
	}

	now := time.Now().UTC()
	u := models.User{
		ID:        uuid.New(),
		Email:     in.Email,
		Name:      in.Name,
		Role:      in.Role,
		Active:    in.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = db.exec(ctx, "INSERT", "users",
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID.String(), u.Email, u.Name, u.Role, u.Active, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser replaces a user's mutable fields.
func (db *DB) UpdateUser(ctx context.Context, id uuid.UUID, in models.UserInput) (*models.User, error) {
	taken, err := db.valueTaken(ctx, "users", "email", in.Email, id.String())
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrConflict
	}

	res, err := db.exec(ctx, "UPDATE", "users",
		`UPDATE users SET email = ?, name = ?, role = ?, active = ?, updated_at = ?
		 WHERE id = ?`,
		in.Email, in.Name, in.Role, in.Active, time.Now().UTC(), id.String())
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return db.GetUser(ctx, id)
}

// DeleteUser removes a user by id.
func (db *DB) DeleteUser(ctx context.Context, id uuid.UUID) error {
	res, err := db.exec(ctx, "DELETE", "users",
		"DELETE FROM users WHERE id = ?", id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(r rowScanner) (models.User, error) {
	var u models.User
	var id string

	err := r.Scan(&id, &u.Email, &u.Name, &u.Role, &u.Active, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return u, err
	}

	u.ID, err = uuid.Parse(id)
	if err != nil {
		return u, fmt.Errorf("malformed user id %q: %w", id, err)
	}
	return u, nil
}
