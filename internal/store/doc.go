// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

/*
Package store provides catalog data access over embedded DuckDB.

Each catalog entity (platforms, templates, applications, articles,
users) gets list/get/create/update/delete methods on DB. List queries
take a ListFilter for paging, search, and status/platform/tag filters,
and return the page plus the total match count.

Every query runs through a circuit breaker so a failing database
produces fast rejections instead of goroutine pile-ups, and is recorded
in the query-duration metrics. Missing records surface as ErrNotFound;
slug and email collisions surface as ErrConflict.
*/
package store
