package cache

import (
	"hash/maphash"
	"sync"
	"sync/atomic"
)

const (
	// DefaultShardCount is the number of shards. It must stay a power of
	// two so a shard is selected by masking the hash.
	DefaultShardCount = 16

	// DefaultCapacity is the per-shard capacity used when none is given.
	DefaultCapacity = 256

	shardMask = DefaultShardCount - 1
)

// Hasher selects a shard for a key.
type Hasher[K any] func(K) uint64

var stringSeed = maphash.MakeSeed()

// StringHasher hashes a string key.
func StringHasher(s string) uint64 {
	return maphash.String(stringSeed, s)
}

// Sharded is a concurrency-safe LRU split into DefaultShardCount shards,
// each with its own lock.
type Sharded[K comparable, V any] struct {
	shards   [DefaultShardCount]shard[K, V]
	hasher   Hasher[K]
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard[K comparable, V any] struct {
	mu  sync.Mutex
	lru *LRU[K, V]
}

// NewSharded creates a sharded cache holding up to capacity entries per
// shard. A capacity <= 0 selects DefaultCapacity.
func NewSharded[K comparable, V any](capacity int, hasher Hasher[K]) *Sharded[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &Sharded[K, V]{hasher: hasher, capacity: capacity}
	for i := range c.shards {
		lru := NewLRU[K, V](capacity)
		lru.OnEvict = func(K, V) { c.evictions.Add(1) }
		c.shards[i].lru = lru
	}
	return c
}

func (c *Sharded[K, V]) shardFor(key K) *shard[K, V] {
	return &c.shards[c.hasher(key)&shardMask]
}

// Get returns the value for key.
func (c *Sharded[K, V]) Get(key K) (V, bool) {
	s := c.shardFor(key)
	s.mu.Lock()
	v, ok := s.lru.Get(key)
	s.mu.Unlock()

	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Set stores value under key.
func (c *Sharded[K, V]) Set(key K, value V) {
	s := c.shardFor(key)
	s.mu.Lock()
	s.lru.Set(key, value)
	s.mu.Unlock()
}

// Delete removes key and reports whether it was present.
func (c *Sharded[K, V]) Delete(key K) bool {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Delete(key)
}

// DeleteFunc removes every entry for which del returns true. del is
// called with a shard lock held and must not call back into c.
func (c *Sharded[K, V]) DeleteFunc(del func(K, V) bool) int {
	n := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		n += s.lru.DeleteFunc(del)
		s.mu.Unlock()
	}
	return n
}

// Clear removes every entry.
func (c *Sharded[K, V]) Clear() {
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		s.lru.Clear()
		s.mu.Unlock()
	}
}

// Len returns the number of entries across all shards.
func (c *Sharded[K, V]) Len() int {
	total := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		total += s.lru.Len()
		s.mu.Unlock()
	}
	return total
}

// Stats contains cache statistics.
type Stats struct {
	Len           int
	TotalCapacity int
	Hits          uint64
	Misses        uint64
	Evictions     uint64
	HitRate       float64 // 0..1
}

// Stats returns a snapshot of the counters.
func (c *Sharded[K, V]) Stats() Stats {
	hits, misses := c.hits.Load(), c.misses.Load()
	var rate float64
	if hits+misses > 0 {
		rate = float64(hits) / float64(hits+misses)
	}
	return Stats{
		Len:           c.Len(),
		TotalCapacity: c.capacity * DefaultShardCount,
		Hits:          hits,
		Misses:        misses,
		Evictions:     c.evictions.Load(),
		HitRate:       rate,
	}
}
