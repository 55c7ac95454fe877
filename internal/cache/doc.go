// Package cache provides the generic LRU primitives behind the outline
// and compression caches.
//
// # LRU[K, V]
//
// A bounded or unbounded least-recently-used map without internal
// locking. The owner serializes access, which suits the outline cache:
// it is mutated from the rendering loop only.
//
//	c := cache.NewLRU[string, int](128)
//	c.Set("key", 42)
//	v, ok := c.Get("key")
//
// # Sharded[K, V]
//
// A mutex-guarded LRU split into 16 shards, for state shared between the
// goroutines that serialize strokes in parallel.
//
//	c := cache.NewSharded[string, int](256, cache.StringHasher)
//	c.Set("key", 42)
package cache
