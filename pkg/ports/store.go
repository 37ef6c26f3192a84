package ports

import "context"

// ReferenceStore answers foreign key lookups for ref descriptors.
type ReferenceStore interface {
	// Exists reports whether a record identified by key exists for the
	// given schema name. A missing record is not an error.
	Exists(ctx context.Context, schemaName, key string) (bool, error)
}

// MutableReferenceStore is a ReferenceStore that can be seeded.
type MutableReferenceStore interface {
	ReferenceStore

	// Add registers keys for a schema name. Adding an existing key is a no-op.
	Add(ctx context.Context, schemaName string, keys ...string) error

	// Remove forgets keys for a schema name. Removing a missing key is a no-op.
	Remove(ctx context.Context, schemaName string, keys ...string) error
}
