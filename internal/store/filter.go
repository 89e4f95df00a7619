// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

package store

import (
	"fmt"
	"strings"
)

// List pagination bounds.
const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// ListFilter narrows and pages a catalog list query. The zero value
// lists the first page with default paging and no filters.
type ListFilter struct {
	Page    int
	PerPage int

	// Search matches name/title and description, case-insensitive.
	Search string

	Status   string
	Platform string
	Tags     []string

	// Sort is a whitelisted sort key; a leading '-' reverses order.
	Sort string
}

// Normalize clamps paging to sane bounds.
func (f ListFilter) Normalize() ListFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = DefaultPerPage
	}
	if f.PerPage > MaxPerPage {
		f.PerPage = MaxPerPage
	}
	return f
}

// sortColumns whitelists sortable columns per key. Unknown keys fall
// back to newest-first.
var sortColumns = map[string]string{
	"name":       "name",
	"title":      "title",
	"price":      "price",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// clauses builds WHERE/ORDER BY/LIMIT SQL for the filter. searchCols
// are the columns Search matches against; hasPlatform reports whether
// the target table carries a platform_id column.
func (f ListFilter) clauses(searchCols []string, hasPlatform bool) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		var parts []string
		for _, col := range searchCols {
			parts = append(parts, fmt.Sprintf("lower(%s) LIKE ?", col))
			args = append(args, like)
		}
		conds = append(conds, "("+strings.Join(parts, " OR ")+")")
	}
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if hasPlatform && f.Platform != "" {
		conds = append(conds, "platform_id = ?")
		args = append(args, f.Platform)
	}
	for _, tag := range f.Tags {
		// Tags column holds a JSON array; match the quoted element.
		conds = append(conds, "tags LIKE ?")
		args = append(args, `%"`+tag+`"%`)
	}

	var sb strings.Builder
	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}

	sb.WriteString(" ORDER BY ")
	sb.WriteString(f.orderBy())

	sb.WriteString(" LIMIT ? OFFSET ?")
	args = append(args, f.PerPage, (f.Page-1)*f.PerPage)

	return sb.String(), args
}

// whereOnly returns just the WHERE clause and its args, for COUNT queries.
func (f ListFilter) whereOnly(searchCols []string, hasPlatform bool) (string, []interface{}) {
	full, args := f.clauses(searchCols, hasPlatform)
	idx := strings.Index(full, " ORDER BY ")
	// Trim ORDER BY/LIMIT and their trailing two args.
	return full[:idx], args[:len(args)-2]
}

func (f ListFilter) orderBy() string {
	key := f.Sort
	desc := false
	if strings.HasPrefix(key, "-") {
		desc = true
		key = key[1:]
	}

	col, ok := sortColumns[key]
	if !ok {
		return "created_at DESC"
	}
	if desc {
		return col + " DESC"
	}
	return col + " ASC"
}
