package serial

import (
	"bytes"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/go-json-experiment/json"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/document"
)

// DefaultThreshold is the total length of encoded point strings at or
// above which a document's strokes are compressed.
const DefaultThreshold = 10_000

// Sentinel errors reported by Decode.
var (
	// ErrEmpty is returned for blank input.
	ErrEmpty = errors.New("serial: empty input")

	// ErrUnsupportedVersion is returned for documents older than
	// document.MinVersion or newer than document.CurrentVersion.
	ErrUnsupportedVersion = errors.New("serial: unsupported document version")

	// ErrCorrupt is returned for payloads that parse but are structurally
	// invalid, and for compressed point data that cannot be restored.
	ErrCorrupt = errors.New("serial: corrupt document")
)

// Option configures a Serializer.
type Option func(*options)

type options struct {
	threshold     int
	cacheCapacity int
	concurrency   int
	appVersion    string
	now           func() time.Time
}

// WithThreshold sets the compression threshold. A value <= 0 selects
// DefaultThreshold.
func WithThreshold(n int) Option {
	return func(o *options) {
		o.threshold = n
	}
}

// WithCacheCapacity sets how many compressed strokes are kept per cache
// shard.
func WithCacheCapacity(n int) Option {
	return func(o *options) {
		o.cacheCapacity = n
	}
}

// WithConcurrency limits how many strokes are compressed or decompressed
// at once. The default is GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithAppVersion sets the application version written into documents that
// do not carry one, and into the empty documents produced on failed loads.
func WithAppVersion(v string) Option {
	return func(o *options) {
		o.appVersion = v
	}
}

// WithClock sets the clock used for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// Serializer converts documents to and from bytes. It caches compressed
// stroke data across calls and is safe for concurrent use.
type Serializer struct {
	opts  options
	cache *compressedCache
}

// New creates a Serializer.
func New(opts ...Option) *Serializer {
	o := options{
		threshold:   DefaultThreshold,
		concurrency: runtime.GOMAXPROCS(0),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.threshold <= 0 {
		o.threshold = DefaultThreshold
	}
	o.concurrency = max(o.concurrency, 1)
	return &Serializer{opts: o, cache: newCompressedCache(o.cacheCapacity)}
}

// Threshold returns the compression threshold.
func (s *Serializer) Threshold() int {
	return s.opts.threshold
}

// ShouldCompress reports whether doc would be written compressed.
func (s *Serializer) ShouldCompress(doc *document.Document) bool {
	return doc.TotalPointBytes() >= s.opts.threshold
}

// Marshal returns the wire form of doc.
func (s *Serializer) Marshal(doc *document.Document) ([]byte, error) {
	w := toWire(doc)
	if w.Meta.AppVersion == "" {
		w.Meta.AppVersion = s.opts.appVersion
	}
	if w.Meta.Created == 0 {
		w.Meta.Created = s.opts.now().UnixMilli()
	}

	total := doc.TotalPointBytes()
	w.Compressed = total >= s.opts.threshold
	ink.Logger().Debug("serial: compression decision",
		"total", total, "threshold", s.opts.threshold, "compressed", w.Compressed)

	if w.Compressed {
		var g errgroup.Group
		g.SetLimit(s.opts.concurrency)
		for i, st := range doc.Strokes {
			g.Go(func() error {
				w.Strokes[i].Data = s.cache.compress(st)
				return nil
			})
		}
		_ = g.Wait()
	}

	data, err := json.Marshal(w, json.Deterministic(true))
	if err != nil {
		return nil, fmt.Errorf("serial: marshal: %w", err)
	}
	return data, nil
}

// Decode parses data into a document, reporting why it cannot.
func (s *Serializer) Decode(data []byte) (*document.Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmpty
	}

	var w wireDoc
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if !document.SupportsVersion(w.Version) {
		return nil, fmt.Errorf("%w: %d (supported %d..%d)",
			ErrUnsupportedVersion, w.Version, document.MinVersion, document.CurrentVersion)
	}

	doc := fromWire(&w)
	strokes := make([]*document.Stroke, len(w.Strokes))
	var g errgroup.Group
	g.SetLimit(s.opts.concurrency)
	for i, ws := range w.Strokes {
		g.Go(func() error {
			if w.Compressed {
				pts, err := Decompress(ws.Data)
				if err != nil {
					return fmt.Errorf("stroke %q: %w", ws.ID, err)
				}
				ws.Data = pts
			}
			st, err := fromWireStroke(ws)
			if err != nil {
				return err
			}
			strokes[i] = st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	doc.Strokes = append(doc.Strokes, strokes...)
	return doc, nil
}

// Unmarshal parses data into a document. It never fails: input that
// cannot be loaded yields a fresh empty document of the current version,
// and the reason is logged.
func (s *Serializer) Unmarshal(data []byte) *document.Document {
	doc, err := s.Decode(data)
	if err != nil {
		ink.Logger().Warn("serial: document not loaded, starting empty", "err", err, "bytes", len(data))
		return s.Empty()
	}
	return doc
}

// Empty returns the document that failed loads fall back to.
func (s *Serializer) Empty() *document.Document {
	return document.New(document.WithClock(s.opts.now), document.WithAppVersion(s.opts.appVersion))
}

// CacheStats summarizes the compressed-output cache.
type CacheStats struct {
	Len    int
	Hits   uint64
	Misses uint64
}

// CacheStats returns the compressed-output cache counters.
func (s *Serializer) CacheStats() CacheStats {
	st := s.cache.stats()
	return CacheStats{Len: st.Len, Hits: st.Hits, Misses: st.Misses}
}

// ClearCache drops every cached compressed stroke.
func (s *Serializer) ClearCache() {
	s.cache.clear()
}

var defaultSerializer = New()

// Marshal returns the wire form of doc using a shared Serializer.
func Marshal(doc *document.Document) ([]byte, error) {
	return defaultSerializer.Marshal(doc)
}

// Unmarshal parses data using a shared Serializer. See
// Serializer.Unmarshal.
func Unmarshal(data []byte) *document.Document {
	return defaultSerializer.Unmarshal(data)
}
