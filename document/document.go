// Package document defines the paper document: its pages, pen styles and
// the ordered collection of finalized strokes.
//
// Strokes are immutable once finalized and are handled by pointer; a
// stroke pointer is the stroke's identity. Editing a stroke means
// replacing it with a new one.
package document

import (
	"slices"
	"time"

	"github.com/gogpu/ink/codec"
	"github.com/gogpu/ink/style"
)

// Format versions.
const (
	// CurrentVersion is the document format version written by this
	// package.
	CurrentVersion = 2

	// MinVersion is the oldest version a loader accepts. There is no
	// upgrade path from older versions.
	MinVersion = 2
)

// SupportsVersion reports whether documents of version v can be loaded.
func SupportsVersion(v int) bool {
	return v >= MinVersion && v <= CurrentVersion
}

// DefaultChannels returns the channel list of the current version.
func DefaultChannels() []string {
	return slices.Clone(codec.ChannelNames[:])
}

// LayoutDirection is the direction in which pages follow each other.
type LayoutDirection string

// Layout directions.
const (
	Vertical   LayoutDirection = "vertical"
	Horizontal LayoutDirection = "horizontal"
)

// Meta is document metadata.
type Meta struct {
	Created    time.Time
	AppVersion string
}

// Viewport is the saved scroll position and zoom.
type Viewport struct {
	X, Y float64
	Zoom float64
}

// DefaultViewport returns the viewport of a new document.
func DefaultViewport() Viewport {
	return Viewport{Zoom: 1}
}

// Document is a versioned container of pages, styles and strokes.
type Document struct {
	Version  int
	Meta     Meta
	Pages    []Page
	Channels []string

	// Styles maps style names to styles. It always contains DefaultName.
	Styles map[string]style.PenStyle

	// Strokes in paint order.
	Strokes []*Stroke

	Viewport        Viewport
	LayoutDirection LayoutDirection

	// PageDefaults, when set, is the template for new pages.
	PageDefaults *PageSettings

	// RenderPipeline is an opaque tag naming the renderer the document was
	// last drawn with. Empty means the host's default.
	RenderPipeline string
}

// Option configures a new Document.
type Option func(*options)

type options struct {
	now        func() time.Time
	appVersion string
	page       PageSettings
	styles     map[string]style.PenStyle
}

// WithClock sets the clock used for the creation timestamp.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithAppVersion records the version of the application creating the
// document.
func WithAppVersion(v string) Option {
	return func(o *options) {
		o.appVersion = v
	}
}

// WithPageSettings sets the settings of the first page.
func WithPageSettings(s PageSettings) Option {
	return func(o *options) {
		o.page = s
	}
}

// WithStyles adds named styles to the new document. A DefaultName entry
// replaces the built-in default.
func WithStyles(styles map[string]style.PenStyle) Option {
	return func(o *options) {
		o.styles = styles
	}
}

// New creates an empty document of the current version with one page and
// the default style.
func New(opts ...Option) *Document {
	o := options{
		now:  time.Now,
		page: DefaultPageSettings(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	styles := map[string]style.PenStyle{style.DefaultName: style.Builtin()}
	for name, s := range o.styles {
		styles[style.NormalizeName(name)] = s
	}

	return &Document{
		Version:         CurrentVersion,
		Meta:            Meta{Created: o.now().UTC().Truncate(time.Millisecond), AppVersion: o.appVersion},
		Pages:           []Page{NewPage(o.page)},
		Channels:        DefaultChannels(),
		Styles:          styles,
		Strokes:         []*Stroke{},
		Viewport:        DefaultViewport(),
		LayoutDirection: Vertical,
	}
}

// ResolveStyle returns the effective style of s: its referenced style with
// its overrides merged over it, or a fallback if the reference is missing.
func (d *Document) ResolveStyle(s *Stroke) style.PenStyle {
	return style.Resolve(d.Styles, s.StyleRef, s.Overrides)
}

// AddPage appends a page built from the document's page defaults, or the
// package defaults when the document has none.
func (d *Document) AddPage() Page {
	settings := DefaultPageSettings()
	if d.PageDefaults != nil {
		settings = *d.PageDefaults
	}
	p := NewPage(settings)
	d.Pages = append(d.Pages, p)
	return p
}

// AddStroke appends s to the stroke collection.
func (d *Document) AddStroke(s *Stroke) {
	d.Strokes = append(d.Strokes, s)
}

// InsertStroke inserts s at index i, clamped to the collection bounds.
func (d *Document) InsertStroke(i int, s *Stroke) {
	i = min(max(i, 0), len(d.Strokes))
	d.Strokes = slices.Insert(d.Strokes, i, s)
}

// StrokeIndex returns the index of the stroke with the given ID, or -1.
func (d *Document) StrokeIndex(id string) int {
	return slices.IndexFunc(d.Strokes, func(s *Stroke) bool { return s.ID == id })
}

// Stroke returns the stroke with the given ID.
func (d *Document) Stroke(id string) (*Stroke, bool) {
	if i := d.StrokeIndex(id); i >= 0 {
		return d.Strokes[i], true
	}
	return nil, false
}

// RemoveStroke removes the stroke with the given ID and returns it with the
// index it occupied.
func (d *Document) RemoveStroke(id string) (*Stroke, int, bool) {
	i := d.StrokeIndex(id)
	if i < 0 {
		return nil, -1, false
	}
	s := d.Strokes[i]
	d.Strokes = slices.Delete(d.Strokes, i, i+1)
	return s, i, true
}

// ReplaceStroke swaps the stroke with the same ID as s for s, keeping its
// position. It reports whether a stroke was replaced.
func (d *Document) ReplaceStroke(s *Stroke) bool {
	i := d.StrokeIndex(s.ID)
	if i < 0 {
		return false
	}
	d.Strokes[i] = s
	return true
}

// StrokesOnPage returns the strokes of page i in paint order.
func (d *Document) StrokesOnPage(i int) []*Stroke {
	var out []*Stroke
	for _, s := range d.Strokes {
		if s.PageIndex == i {
			out = append(out, s)
		}
	}
	return out
}

// TotalPointBytes returns the summed length of every stroke's encoded
// point string.
func (d *Document) TotalPointBytes() int {
	n := 0
	for _, s := range d.Strokes {
		n += len(s.Pts)
	}
	return n
}
