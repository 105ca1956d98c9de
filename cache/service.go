package cache

import "context"

// KeySerializer builds a cache key from an operation name and its arguments.
// Keys must be stable across calls and processes.
type KeySerializer interface {
	SerializeKey(method string, args ...any) string
}

// CacheService is the read-through cache used to front a zip cache store.
type CacheService[T any] interface {
	GetOrFetch(ctx context.Context, key string, fetchFn func(context.Context) (T, error)) (T, error)
	Delete(ctx context.Context, key string) error
}
