// Package cache provides the in-memory response cache for the proxy.
//
// The store maps canonical request keys to raw upstream response bodies with
// per-entry expiry. A secondary index tracks which keys were created on
// behalf of which account address, so a successful exchange action can
// invalidate exactly the entries that became stale.
//
// # Basic Usage
//
//	store := cache.NewStore()
//
//	key, err := cache.CanonicalKey(body)
//	if err != nil {
//		// body is not valid JSON
//	}
//
//	if cached, ok := store.Get(key, infoType); ok {
//		// serve cached bytes
//	}
//
//	store.Put(key, respBody, cache.TTLFor(infoType), user)
//
// # Invalidation
//
//	removed := store.InvalidateUser("0xAbC...") // targeted
//	removed = store.InvalidateUserScoped()      // fallback, scans all entries
//
// # Concurrency
//
// All operations take a single mutex covering the entry map, the user index
// and the hit/miss counters, so the three structures never disagree. No
// operation blocks on I/O while holding the lock.
//
// # Metrics
//
// The store exports Prometheus metrics:
//
//   - hlproxy_cache_hits_total{type} - Cache hits by info type
//   - hlproxy_cache_misses_total{type} - Cache misses by info type
//   - hlproxy_cache_entries - Current entry count
//   - hlproxy_cache_evictions_total{reason} - Evictions (expired, invalidated, cleared)
package cache
