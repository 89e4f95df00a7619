// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

package store

import "errors"

// Sentinel errors returned by the catalog store. Callers test them with
// errors.Is.
var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("store: record not found")

	// ErrConflict is returned when a unique constraint (slug, email)
	// would be violated.
	ErrConflict = errors.New("store: record conflicts with an existing one")
)
