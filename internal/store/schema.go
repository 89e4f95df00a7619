// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

package store

import (
	"context"
	"fmt"
)

// schemaStatements creates the catalog tables. DuckDB executes these on
// every startup; IF NOT EXISTS makes them idempotent.
//
// Tags are stored as a JSON-encoded text column. The catalog is small
// and tag filters run as substring matches, which keeps the schema free
// of extension dependencies.
//
// Slug and email uniqueness is enforced by the store's pre-insert
// checks, not UNIQUE constraints: DuckDB rewrites UPDATE as
// delete+insert, which trips ART unique indexes even when the value is
// unchanged.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS platforms (
		id UUID PRIMARY KEY,
		name VARCHAR NOT NULL,
		slug VARCHAR NOT NULL,
		description VARCHAR,
		website_url VARCHAR,
		logo_url VARCHAR,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS templates (
		id UUID PRIMARY KEY,
		name VARCHAR NOT NULL,
		slug VARCHAR NOT NULL,
		description VARCHAR,
		platform_id UUID NOT NULL,
		price BIGINT NOT NULL DEFAULT 0,
		status VARCHAR NOT NULL DEFAULT 'draft',
		tags VARCHAR NOT NULL DEFAULT '[]',
		preview_url VARCHAR,
		thumbnail_url VARCHAR,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS applications (
		id UUID PRIMARY KEY,
		name VARCHAR NOT NULL,
		slug VARCHAR NOT NULL,
		description VARCHAR,
		platform_id UUID NOT NULL,
		vendor VARCHAR,
		price BIGINT NOT NULL DEFAULT 0,
		status VARCHAR NOT NULL DEFAULT 'draft',
		tags VARCHAR NOT NULL DEFAULT '[]',
		icon_url VARCHAR,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS articles (
		id UUID PRIMARY KEY,
		title VARCHAR NOT NULL,
		slug VARCHAR NOT NULL,
		excerpt VARCHAR,
		body VARCHAR NOT NULL,
		author_id UUID NOT NULL,
		status VARCHAR NOT NULL DEFAULT 'draft',
		tags VARCHAR NOT NULL DEFAULT '[]',
		cover_url VARCHAR,
		published_at TIMESTAMP,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email VARCHAR NOT NULL,
		name VARCHAR NOT NULL,
		role VARCHAR NOT NULL DEFAULT 'viewer',
		active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_templates_platform ON templates (platform_id)`,
	`CREATE INDEX IF NOT EXISTS idx_templates_status ON templates (status)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_platform ON applications (platform_id)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_status ON articles (status)`,
}

func (db *DB) createSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
