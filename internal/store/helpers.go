// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

package store

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/curatorhq/curator/internal/logging"
)

// encodeTags serializes tags to the JSON text stored in the tags column.
func encodeTags(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		// Tags are plain strings, this cannot realistically fail.
		logging.Warn().Err(err).Msg("Failed to encode tags, storing empty list")
		return "[]"
	}
	return string(raw)
}

// decodeTags parses the JSON tags column. Malformed data yields nil
// rather than an error; tags are never worth failing a read over.
func decodeTags(raw string) []string {
	if raw == "" || raw == "[]" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		logging.Warn().Str("raw", raw).Msg("Malformed tags column, ignoring")
		return nil
	}
	return tags
}

// valueTaken reports whether another row already uses a value that must
// stay unique (slug, email). excludeID skips the row being updated.
//
// This is a pre-check, not a constraint: concurrent writers could race
// past it. Mutations come from a handful of admin users, so the window
// is acceptable.
func (db *DB) valueTaken(ctx context.Context, table, column, value, excludeID string) (bool, error) {
	query := fmt.Sprintf("SELECT count(*) FROM %s WHERE %s = ?", table, column)
	args := []interface{}{value}
	if excludeID != "" {
		query += " AND id <> ?"
		args = append(args, excludeID)
	}

	row, err := db.queryRow(ctx, "SELECT", table, query, args...)
	if err != nil {
		return false, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}
