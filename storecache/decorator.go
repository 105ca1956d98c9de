package storecache

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-zipcache/cache"
	"github.com/goliatone/go-zipcache/zipcache"
)

// Interface assertion to ensure CachedStore implements zipcache.Store
var _ zipcache.Store = (*CachedStore)(nil)

const opGet = "Get"

// CachedStore decorates a zipcache.Store with an in-process read-through cache
type CachedStore struct {
	base          zipcache.Store
	cache         cache.CacheService[zipcache.ZipCacheEntry]
	keySerializer cache.KeySerializer
	logger        *slog.Logger
}

// Option configures a CachedStore
type Option func(*CachedStore)

// WithLogger sets the logger used to report cache invalidation failures
func WithLogger(logger *slog.Logger) Option {
	return func(c *CachedStore) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a CachedStore that serves Get from cacheService and falls back to base
func New(base zipcache.Store, cacheService cache.CacheService[zipcache.ZipCacheEntry], keySerializer cache.KeySerializer, opts ...Option) *CachedStore {
	c := &CachedStore{
		base:          base,
		cache:         cacheService,
		keySerializer: keySerializer,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get retrieves an entry, with caching. Misses are not cached.
//
// A miss handed over from another caller's in-flight fetch may predate an
// insert this caller already observed, so it is confirmed against the base
// store. The same applies when that fetch died with its caller's context
// while this caller's context is still live.
func (c *CachedStore) Get(ctx context.Context, zipCode string) (zipcache.ZipCacheEntry, error) {
	key := c.keySerializer.SerializeKey(opGet, zipCode)

	var fetched atomic.Bool
	entry, err := c.cache.GetOrFetch(ctx, key, func(ctx context.Context) (zipcache.ZipCacheEntry, error) {
		fetched.Store(true)
		return c.base.Get(ctx, zipCode)
	})
	if err != nil && !fetched.Load() && (zipcache.IsNotFound(err) || joinedCancelledFetch(ctx, err)) {
		return c.base.Get(ctx, zipCode)
	}
	return entry, err
}

func joinedCancelledFetch(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Exists passes through to the base store
func (c *CachedStore) Exists(ctx context.Context, zipCode string) (bool, error) {
	return c.base.Exists(ctx, zipCode)
}

// Insert passes through to the base store. On success, and when the code turns
// out to be taken already, the cached key is dropped so the next Get reads
// the stored row.
func (c *CachedStore) Insert(ctx context.Context, entry zipcache.ZipCacheEntry) (zipcache.ZipCacheEntry, error) {
	result, err := c.base.Insert(ctx, entry)
	if err == nil || zipcache.IsDuplicateKey(err) {
		c.invalidate(ctx, entry.ZipCode)
	}
	return result, err
}

func (c *CachedStore) invalidate(ctx context.Context, zipCode string) {
	key := c.keySerializer.SerializeKey(opGet, zipCode)
	if err := c.cache.Delete(ctx, key); err != nil {
		c.logger.WarnContext(ctx, "failed to invalidate cached zip code",
			"zip_code", zipCode, "key", key, "error", err)
	}
}
