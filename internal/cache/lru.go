package cache

// LRU is a map with least-recently-used eviction.
//
// LRU does no locking; it must be confined to one goroutine or guarded by
// its owner.
type LRU[K comparable, V any] struct {
	entries  map[K]*lruEntry[K, V]
	order    *lruList[K]
	capacity int

	// OnEvict, if set, is called for entries dropped to make room.
	// It is not called for Delete, DeleteFunc or Clear.
	OnEvict func(K, V)
}

type lruEntry[K comparable, V any] struct {
	value V
	node  *lruNode[K]
}

// NewLRU creates an LRU holding at most capacity entries.
// A capacity <= 0 means unbounded.
func NewLRU[K comparable, V any](capacity int) *LRU[K, V] {
	return &LRU[K, V]{
		entries:  make(map[K]*lruEntry[K, V]),
		order:    newLRUList[K](),
		capacity: max(capacity, 0),
	}
}

// Get returns the value for key and marks it recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(e.node)
	return e.value, true
}

// Peek returns the value for key without touching its recency.
func (c *LRU[K, V]) Peek(key K) (V, bool) {
	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, evicting the least recently used entries
// while over capacity.
func (c *LRU[K, V]) Set(key K, value V) {
	if e, ok := c.entries[key]; ok {
		e.value = value
		c.order.MoveToFront(e.node)
		return
	}
	c.entries[key] = &lruEntry[K, V]{value: value, node: c.order.PushFront(key)}

	for c.capacity > 0 && c.order.Len() > c.capacity {
		oldest, ok := c.order.RemoveOldest()
		if !ok {
			break
		}
		e := c.entries[oldest]
		delete(c.entries, oldest)
		if c.OnEvict != nil {
			c.OnEvict(oldest, e.value)
		}
	}
}

// Delete removes key and reports whether it was present.
func (c *LRU[K, V]) Delete(key K) bool {
	e, ok := c.entries[key]
	if !ok {
		return false
	}
	c.order.Remove(e.node)
	delete(c.entries, key)
	return true
}

// DeleteFunc removes every entry for which del returns true and returns
// how many were removed.
func (c *LRU[K, V]) DeleteFunc(del func(K, V) bool) int {
	n := 0
	for k, e := range c.entries {
		if del(k, e.value) {
			c.order.Remove(e.node)
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Clear removes every entry.
func (c *LRU[K, V]) Clear() {
	clear(c.entries)
	c.order.Clear()
}

// Len returns the number of entries.
func (c *LRU[K, V]) Len() int {
	return len(c.entries)
}

// Capacity returns the entry limit, 0 when unbounded.
func (c *LRU[K, V]) Capacity() int {
	return c.capacity
}
