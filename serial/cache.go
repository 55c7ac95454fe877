package serial

import (
	"runtime"
	"weak"

	"github.com/gogpu/ink/document"
	"github.com/gogpu/ink/internal/cache"
)

// strokeKey identifies a stroke by pointer without keeping it alive. The
// ID only spreads keys over shards.
type strokeKey struct {
	id  string
	ref weak.Pointer[document.Stroke]
}

type compressed struct {
	src string // the Pts the output was made from
	out string
}

// compressedCache maps strokes to their compressed points. An entry lives
// until its stroke is garbage collected or it is evicted by capacity.
type compressedCache struct {
	entries *cache.Sharded[strokeKey, compressed]
}

func newCompressedCache(perShard int) *compressedCache {
	return &compressedCache{
		entries: cache.NewSharded[strokeKey, compressed](perShard, func(k strokeKey) uint64 {
			return cache.StringHasher(k.id)
		}),
	}
}

func keyOf(s *document.Stroke) strokeKey {
	return strokeKey{id: s.ID, ref: weak.Make(s)}
}

// compress returns the compressed points of s, from the cache when s was
// compressed before.
func (c *compressedCache) compress(s *document.Stroke) string {
	k := keyOf(s)
	e, present := c.entries.Get(k)
	if present && e.src == s.Pts {
		return e.out
	}

	out := Compress(s.Pts)
	c.entries.Set(k, compressed{src: s.Pts, out: out})
	if !present {
		entries := c.entries
		runtime.AddCleanup(s, func(k strokeKey) { entries.Delete(k) }, k)
	}
	return out
}

func (c *compressedCache) stats() cache.Stats {
	return c.entries.Stats()
}

func (c *compressedCache) clear() {
	c.entries.Clear()
}
