// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

package cache

import (
	"sort"
	"strconv"
	"strings"
)

// Pair is a single named parameter of a cache key. Values must not contain
// the '|' separator; the typed constructors below produce safe values for
// everything the dashboard keys on (ids, slugs, ints, tag lists).
type Pair struct {
	Name  string
	Value string
}

// String builds a string-valued key parameter.
func String(name, value string) Pair {
	return Pair{Name: name, Value: value}
}

// Int builds an int-valued key parameter.
func Int(name string, value int) Pair {
	return Pair{Name: name, Value: strconv.Itoa(value)}
}

// Bool builds a bool-valued key parameter.
func Bool(name string, value bool) Pair {
	return Pair{Name: name, Value: strconv.FormatBool(value)}
}

// Strings builds a list-valued key parameter. The values are sorted and
// de-duplicated so that the same set always serializes identically.
func Strings(name string, values []string) Pair {
	if len(values) == 0 {
		return Pair{Name: name, Value: ""}
	}

	sorted := make([]string, len(values))
	copy(sorted, values)
	sort.Strings(sorted)

	out := sorted[:1]
	for _, v := range sorted[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return Pair{Name: name, Value: strings.Join(out, ",")}
}

// BuildKey derives a stable cache key from a logical query name and its
// parameters. It is a pure function: identical parameters produce an
// identical key regardless of argument order, because pairs are sorted by
// name before concatenation.
//
// The version tag is prefixed so that a payload shape change can abandon
// every previously written key by bumping the version.
//
// Key shape: "<version>:<logical>" or "<version>:<logical>:n=v|n=v|...".
func BuildKey(version, logical string, pairs ...Pair) string {
	var b strings.Builder
	b.WriteString(version)
	b.WriteByte(':')
	b.WriteString(logical)

	if len(pairs) == 0 {
		return b.String()
	}

	sorted := make([]Pair, len(pairs))
	copy(sorted, pairs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].Value < sorted[j].Value
	})

	b.WriteByte(':')
	for i, p := range sorted {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(p.Name)
		b.WriteByte('=')
		b.WriteString(p.Value)
	}
	return b.String()
}

// Query is the closed set of parameter shapes the dashboard caches under.
// Using explicit shapes instead of an open map keeps key derivation
// checked at compile time.
type Query interface {
	pairs() []Pair
}

// ListQuery keys a paginated, filtered list endpoint. All fields are always
// serialized so that a zero filter and an absent filter share one key.
type ListQuery struct {
	Page    int
	PerPage int
	Sort    string
	Search  string
	Status  string

	// Platform filters catalog entities by platform slug.
	Platform string

	Tags []string
}

func (q ListQuery) pairs() []Pair {
	return []Pair{
		Int("page", q.Page),
		Int("per_page", q.PerPage),
		String("sort", q.Sort),
		String("search", q.Search),
		String("status", q.Status),
		String("platform", q.Platform),
		Strings("tags", q.Tags),
	}
}

// DetailQuery keys a single-record endpoint by id.
type DetailQuery struct {
	ID string
}

func (q DetailQuery) pairs() []Pair {
	return []Pair{String("id", q.ID)}
}

var (
	_ Query = ListQuery{}
	_ Query = DetailQuery{}
)

// keyEncodesID reports whether a key carries an "id=<id>" parameter.
// Used for point invalidation after a single-row mutation.
func keyEncodesID(key, id string) bool {
	// Parameters follow the second ':'; a key without parameters never
	// encodes an id.
	idx := strings.Index(key, ":")
	if idx < 0 {
		return false
	}
	idx2 := strings.Index(key[idx+1:], ":")
	if idx2 < 0 {
		return false
	}

	params := key[idx+idx2+2:]
	want := "id=" + id
	for _, pair := range strings.Split(params, "|") {
		if pair == want {
			return true
		}
	}
	return false
}
