// Package store provides collection providers: sources of ordered records
// for a collection identifier.
package store

import (
	"github.com/gcbaptista/styleguide-search/model"
)

// Provider loads the records of a collection.
//
// A source that does not exist yields an empty slice and a nil error, so that a
// missing collection degrades to zero search results. Returned records are shared
// and must be treated as read-only.
type Provider interface {
	Load(source string) ([]model.Record, error)
}

// MemoryProvider serves collections held in memory, keyed by source.
type MemoryProvider map[string][]model.Record

// Load returns the records registered under source, or an empty slice.
func (p MemoryProvider) Load(source string) ([]model.Record, error) {
	records, ok := p[source]
	if !ok {
		return []model.Record{}, nil
	}
	return records, nil
}
