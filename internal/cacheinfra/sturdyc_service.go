package cacheinfra

import (
	"context"

	"github.com/viccon/sturdyc"
)

// SturdycService is a typed read-through cache over a sturdyc client.
// Concurrent fetches for the same key are coalesced by sturdyc; errors
// returned by a fetch are never cached.
type SturdycService[T any] struct {
	client *sturdyc.Client[T]
}

// NewSturdycService validates cfg and builds the sturdyc client.
func NewSturdycService[T any](cfg Config) (*SturdycService[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := sturdyc.New[T](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		cfg.ToSturdycOptions()...,
	)

	return &SturdycService[T]{client: client}, nil
}

// GetOrFetch returns the cached value for key or calls fetchFn and caches
// its result when it succeeds.
func (s *SturdycService[T]) GetOrFetch(ctx context.Context, key string, fetchFn func(context.Context) (T, error)) (T, error) {
	return s.client.GetOrFetch(ctx, key, fetchFn)
}

// Delete removes key from the cache.
func (s *SturdycService[T]) Delete(_ context.Context, key string) error {
	s.client.Delete(key)
	return nil
}
