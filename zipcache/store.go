package zipcache

import "context"

// Store is the durable mapping from postal code to address fields.
//
// Implementations must enforce uniqueness of ZipCode themselves (a primary
// key, a compare-and-swap) so that two concurrent Insert calls for the same
// code cannot both succeed.
type Store interface {
	// Exists reports whether an entry for zipCode is present.
	Exists(ctx context.Context, zipCode string) (bool, error)
	// Get returns the entry for zipCode. A miss is an error for which
	// IsNotFound returns true.
	Get(ctx context.Context, zipCode string) (ZipCacheEntry, error)
	// Insert persists a new entry. An existing entry for the same code yields
	// an error for which IsDuplicateKey returns true.
	Insert(ctx context.Context, entry ZipCacheEntry) (ZipCacheEntry, error)
}
