// Package query implements the client-side query cache: keyed snapshots of
// server responses with freshness tracking, prefix invalidation, in-place
// patching, request deduplication, and generation-tagged writes so that a
// response arriving for a superseded request is discarded instead of
// clobbering newer state.
package query

import (
	"strconv"

	"github.com/aulago/aulago/internal/filter"
)

// Key builds the cache key for a list query: the resource path, the canonical
// form of the applied filter set, and the page. Two queries with the same
// effective filters always map to the same key.
func Key(resource string, filters filter.Set, page int) string {
	if c := filters.Canonical(); c != "" {
		return resource + "?" + c + "&page=" + strconv.Itoa(page)
	}
	return resource + "?page=" + strconv.Itoa(page)
}

// EntityKey builds the cache key for a single-entity query.
func EntityKey(resource, id string) string {
	return resource + "/" + id
}

// Prefix returns the invalidation prefix covering every page and filter
// combination of a list resource, without touching nested resources.
func Prefix(resource string) string {
	return resource + "?"
}
