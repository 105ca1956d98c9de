package cache

import (
	"github.com/goliatone/go-zipcache/internal/cacheinfra"
)

// Config exposes the in-process cache settings to consumers of this package.
type Config = cacheinfra.Config

// EarlyRefreshConfig mirrors the underlying sturdyc early refresh options.
type EarlyRefreshConfig = cacheinfra.EarlyRefreshConfig

// DefaultConfig returns a Config populated with the zip cache defaults.
func DefaultConfig() Config {
	return cacheinfra.DefaultConfig()
}

// NewCacheService constructs the sturdyc backed cache service for values of type T.
func NewCacheService[T any](cfg Config) (CacheService[T], error) {
	svc, err := cacheinfra.NewSturdycService[T](cfg)
	if err != nil {
		return nil, err
	}
	return svc, nil
}
