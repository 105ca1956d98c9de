// Package storecache provides a cached decorator for zipcache.Store.
//
// # Overview
//
// CachedStore wraps a durable store (usually the SQL store) and serves Get
// through an in-process cache.CacheService. Writes go straight to the base
// store, whose uniqueness constraint stays the only synchronization point for
// concurrent inserts.
//
// # Cached vs Pass-through Operations
//
// Cached:
//   - Get
//
// Pass-through:
//   - Exists
//   - Insert
//
// # Caching Behavior
//
//  1. Serialize the key as "<namespace>::Get::<zip code>"
//  2. On a cache hit, return the cached entry
//  3. On a miss, call the base store
//  4. Cache the entry only when the base store found it
//
// Store misses and store failures are returned to the caller and never
// cached, so an entry inserted by another process is visible on the next Get.
//
// # Invalidation
//
// Entries are write-once, so there is nothing to invalidate on update. After
// an Insert succeeds, or fails with a duplicate key, the Get key for that zip
// code is deleted. This keeps the resolver's insert-then-reread path reading
// from the base store.
//
// # Basic Usage
//
//	svc, _ := cache.NewCacheService[zipcache.ZipCacheEntry](cache.DefaultConfig())
//	cached := storecache.New(sqlstore.New(db), svc, cache.NewDefaultKeySerializer())
//	resolver := zipcache.NewResolver(cached, providers)
package storecache
