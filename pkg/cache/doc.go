// Package cache provides the named Cache Store used by the offline handler.
//
// A store maps request URLs to complete HTTP responses. Entries never expire:
// the only way to invalidate them is to deploy under a new cache name, which
// leaves the old store orphaned.
//
// Two backends are provided:
//
// - Manager: Redis backed, persistent across restarts
// - MemoryStore: in-process, used for single-instance deployments and tests
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	store := cache.NewManager(redisClient, "isbot-cache-v1")
//
//	key := cache.KeyFromURL(req.URL)
//	entry, err := store.Match(ctx, key)
//	if errors.Is(err, cache.ErrCacheMiss) {
//		// fall back to the network
//	}
//
// # HTTP Response Caching
//
//	entry, err := cache.ResponseToEntry(resp)
//	if err != nil {
//		return err
//	}
//	if err := store.Put(ctx, key, entry); err != nil {
//		return err
//	}
//
//	// later
//	resp := cache.EntryToResponse(entry, req)
//
// # Metrics
//
//   - offline_cache_hits_total{store} - Cache hits
//   - offline_cache_misses_total{store} - Cache misses
//   - offline_cache_stored_bytes_total{store} - Bytes written into the store
//   - offline_cache_errors_total{operation} - Store operation errors
package cache
