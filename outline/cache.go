package outline

import (
	"github.com/gogpu/ink"
	"github.com/gogpu/ink/document"
	"github.com/gogpu/ink/internal/cache"
	"github.com/gogpu/ink/style"
)

// Key identifies cached geometry: a stroke at a level of detail.
type Key struct {
	ID  string
	LOD int
}

type entry struct {
	// src is the stroke the result was generated from by Stroke, nil for
	// geometry stored directly.
	src *document.Stroke

	result   Result
	path     *Path
	vertices *VertexBuffer
}

// Cache memoizes stroke geometry and its smoothed and flattened forms.
//
// Each key holds exactly one raw geometry, either a standard polygon or
// italic sides; storing one replaces the other and drops the derived
// forms, which are rebuilt on the next Path or Vertices call.
//
// Entries filled by Stroke remember the stroke they were generated from.
// Strokes are immutable, so an edited stroke is a new pointer under the
// same ID and Stroke regenerates its geometry. Edits to the style table
// are not tracked; call DeleteStroke or Clear after changing styles.
//
// Cache does no locking and must be used from a single goroutine.
type Cache struct {
	entries *cache.LRU[Key, *entry]
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithCapacity bounds the cache to n keys, evicting the least recently
// used. The default is unbounded.
func WithCapacity(n int) CacheOption {
	return func(c *Cache) {
		c.entries = cache.NewLRU[Key, *entry](n)
	}
}

// NewCache creates an empty cache.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{entries: cache.NewLRU[Key, *entry](0)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetStandard stores a standard outline polygon for key.
func (c *Cache) SetStandard(key Key, polygon []ink.Point) {
	c.SetResult(key, Result{Kind: KindStandard, Polygon: polygon})
}

// SetItalic stores italic sides for key.
func (c *Cache) SetItalic(key Key, sides Sides) {
	c.SetResult(key, Result{Kind: KindItalic, Sides: &sides})
}

// SetResult stores r for key, replacing any previous geometry and its
// derived forms.
func (c *Cache) SetResult(key Key, r Result) {
	c.entries.Set(key, &entry{result: r})
}

// Result returns the raw geometry stored for key.
func (c *Cache) Result(key Key) (Result, bool) {
	e, ok := c.entries.Get(key)
	if !ok {
		return Result{}, false
	}
	return e.result, true
}

// Standard returns the standard polygon stored for key.
func (c *Cache) Standard(key Key) ([]ink.Point, bool) {
	e, ok := c.entries.Get(key)
	if !ok || e.result.Kind != KindStandard {
		return nil, false
	}
	return e.result.Polygon, true
}

// Italic returns the italic sides stored for key.
func (c *Cache) Italic(key Key) (*Sides, bool) {
	e, ok := c.entries.Get(key)
	if !ok || e.result.Kind != KindItalic {
		return nil, false
	}
	return e.result.Sides, true
}

// Stroke returns the geometry of s at level of detail lod, generating and
// storing it with ForStroke on a miss. Geometry cached for a different
// stroke with the same ID, such as the version before an edit, is a miss
// and is replaced.
func (c *Cache) Stroke(s *document.Stroke, styles map[string]style.PenStyle, lod int) (Result, error) {
	key := Key{ID: s.ID, LOD: lod}
	if e, ok := c.entries.Get(key); ok && e.src == s {
		return e.result, nil
	}
	r, err := ForStroke(s, styles, lod)
	if err != nil {
		c.entries.Delete(key)
		return Result{}, err
	}
	c.entries.Set(key, &entry{src: s, result: r})
	return r, nil
}

// Path returns the smoothed closed outline for key, building it on first
// use.
func (c *Cache) Path(key Key) (*Path, bool) {
	e, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	if e.path == nil {
		e.path = SmoothPath(e.result)
	}
	return e.path, true
}

// Vertices returns the flattened geometry for key, building it on first
// use.
func (c *Cache) Vertices(key Key) (VertexBuffer, bool) {
	e, ok := c.entries.Get(key)
	if !ok {
		return VertexBuffer{}, false
	}
	if e.vertices == nil {
		v := Vertices(e.result)
		e.vertices = &v
	}
	return *e.vertices, true
}

// Delete removes key.
func (c *Cache) Delete(key Key) bool {
	return c.entries.Delete(key)
}

// DeleteStroke removes every level of detail cached for stroke id.
func (c *Cache) DeleteStroke(id string) int {
	return c.entries.DeleteFunc(func(k Key, _ *entry) bool {
		return k.ID == id
	})
}

// Clear removes everything.
func (c *Cache) Clear() {
	c.entries.Clear()
}

// Len returns the number of cached keys.
func (c *Cache) Len() int {
	return c.entries.Len()
}
