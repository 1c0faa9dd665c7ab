// Package docstore provides a minimal document store: each named collection
// holds a single JSON array, and writes always replace the whole collection.
// No partial merges and no cross-collection atomicity are offered; the last
// writer's full snapshot wins.
package docstore

import "context"

// Store is the document store contract shared by all backends
type Store interface {
	// Load reads an entire collection into dest (a pointer to a slice).
	// A collection that was never written loads as empty, not as an error.
	Load(ctx context.Context, collection string, dest any) error

	// Replace overwrites an entire collection with docs (a slice)
	Replace(ctx context.Context, collection string, docs any) error

	Close() error
}

// Well-known collection names
const (
	CollectionApps       = "apps"
	CollectionCategories = "categories"
	CollectionUsers      = "users"
)
