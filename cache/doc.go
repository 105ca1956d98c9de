// Package cache provides the in-process read-through cache that fronts a zip
// cache store.
//
// # Overview
//
// Two interfaces are exported:
//
//   - CacheService: typed read-through caching with GetOrFetch and Delete
//   - KeySerializer: builds stable keys from an operation name and arguments
//
// NewCacheService returns the sturdyc backed implementation. Concurrent
// GetOrFetch calls for the same key share a single fetch, and fetch errors are
// never cached, so a miss reported by the store is re-checked on the next call.
//
// # Basic Usage
//
//	svc, err := cache.NewCacheService[zipcache.ZipCacheEntry](cache.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	keys := cache.NewDefaultKeySerializer()
//
//	entry, err := svc.GetOrFetch(ctx, keys.SerializeKey("Get", "01001000"),
//		func(ctx context.Context) (zipcache.ZipCacheEntry, error) {
//			return store.Get(ctx, "01001000")
//		})
//
// # Keys
//
// Keys have the form "<namespace>::<method>::<arg>...". The default namespace
// is "zipcache". Zip codes are opaque strings and are not normalized.
//
// # See Also
//
// The storecache package wires this cache in front of a zipcache.Store.
package cache
