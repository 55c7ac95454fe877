// Package builder accumulates filtered pen samples during an active stroke
// and finalizes them into an immutable document.Stroke.
//
// A Builder is either idle or accumulating. Add moves it to accumulating;
// Finalize and Discard return it to idle with all filters reset, ready
// for the next stroke. A Builder belongs to one active stroke at a time
// and is not safe for concurrent use.
package builder

import (
	"github.com/gogpu/ink"
	"github.com/gogpu/ink/codec"
	"github.com/gogpu/ink/document"
	"github.com/gogpu/ink/filter"
	"github.com/gogpu/ink/style"
)

// State is the builder state.
type State int

const (
	// Idle means no stroke is in progress.
	Idle State = iota
	// Accumulating means samples have been added since the last
	// Finalize or Discard.
	Accumulating
)

// String returns the state name.
func (s State) String() string {
	if s == Accumulating {
		return "accumulating"
	}
	return "idle"
}

// Option configures a Builder.
type Option func(*options)

type options struct {
	styleRef    string
	overrides   *style.Override
	pageIndex   int
	margin      float64
	grainAnchor bool
	oneEuro     filter.OneEuroConfig
	emaAlpha    float64
	newID       func() string
}

func defaultOptions() options {
	return options{
		styleRef: style.DefaultName,
		oneEuro:  filter.DefaultOneEuroConfig(),
		emaAlpha: filter.DefaultEMAAlpha,
		newID:    document.NewStrokeID,
	}
}

// WithStyle sets the style reference and optional overrides recorded on
// finalized strokes.
func WithStyle(ref string, o *style.Override) Option {
	return func(opt *options) {
		opt.styleRef = style.NormalizeName(ref)
		opt.overrides = o
	}
}

// WithPage sets the page index recorded on finalized strokes.
func WithPage(i int) Option {
	return func(opt *options) {
		opt.pageIndex = i
	}
}

// WithMargin sets the default bounding box margin, for pens whose ink
// extends past the sample centers.
func WithMargin(m float64) Option {
	return func(opt *options) {
		opt.margin = max(m, 0)
	}
}

// WithGrainAnchor records the first raw sample position on finalized
// strokes, for pens with paper texture.
func WithGrainAnchor(enabled bool) Option {
	return func(opt *options) {
		opt.grainAnchor = enabled
	}
}

// WithFilters sets the position and pressure/tilt filter parameters.
func WithFilters(position filter.OneEuroConfig, emaAlpha float64) Option {
	return func(opt *options) {
		opt.oneEuro = position
		opt.emaAlpha = emaAlpha
	}
}

// WithIDFunc sets the stroke ID generator.
func WithIDFunc(newID func() string) Option {
	return func(opt *options) {
		if newID != nil {
			opt.newID = newID
		}
	}
}

// ForStyle returns the options matching a resolved pen style: its bounding
// box margin and, for textured pens, the grain anchor.
func ForStyle(ref string, s style.PenStyle) []Option {
	return []Option{
		WithStyle(ref, nil),
		WithMargin(s.BBoxMargin()),
		WithGrainAnchor(s.GrainAmount() > 0),
	}
}

// Builder turns raw samples into a Stroke.
type Builder struct {
	opts options

	x, y     *filter.OneEuro
	pressure *filter.EMA
	tiltX    *filter.EMA
	tiltY    *filter.EMA

	points   []ink.StrokePoint
	firstRaw ink.Point
	state    State
}

// New creates an idle Builder.
func New(opts ...Option) *Builder {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Builder{
		opts:     o,
		x:        filter.NewOneEuro(o.oneEuro),
		y:        filter.NewOneEuro(o.oneEuro),
		pressure: filter.NewEMA(o.emaAlpha),
		tiltX:    filter.NewEMA(o.emaAlpha),
		tiltY:    filter.NewEMA(o.emaAlpha),
	}
}

// Add filters a raw sample and appends it. Twist and timestamp pass
// through unfiltered.
func (b *Builder) Add(raw ink.StrokePoint) {
	if b.state == Idle {
		b.firstRaw = raw.Pos()
		b.state = Accumulating
	}
	b.points = append(b.points, ink.StrokePoint{
		X:         b.x.Filter(raw.X, raw.Timestamp),
		Y:         b.y.Filter(raw.Y, raw.Timestamp),
		Pressure:  b.pressure.Filter(raw.Pressure),
		TiltX:     b.tiltX.Filter(raw.TiltX),
		TiltY:     b.tiltY.Filter(raw.TiltY),
		Twist:     raw.Twist,
		Timestamp: raw.Timestamp,
	})
}

// State returns the builder state.
func (b *Builder) State() State {
	return b.state
}

// HasPoints reports whether any sample was added since the last Finalize
// or Discard.
func (b *Builder) HasPoints() bool {
	return len(b.points) > 0
}

// Len returns the number of accumulated samples.
func (b *Builder) Len() int {
	return len(b.points)
}

// Points returns the smoothed samples accumulated so far, for live
// preview. The slice is owned by the builder and is only valid until the
// next call to Add, Finalize or Discard.
func (b *Builder) Points() []ink.StrokePoint {
	return b.points
}

// Finalize produces the stroke using the default margin.
func (b *Builder) Finalize() *document.Stroke {
	return b.FinalizeWithMargin(b.opts.margin)
}

// FinalizeWithMargin produces an immutable stroke from the accumulated
// samples and resets the builder. The bounding box encloses both the
// smoothed samples and their quantized form as stored in Pts, expanded by
// margin.
//
// A builder without samples yields a valid stroke with zero points; check
// HasPoints first if an empty stroke is not wanted.
func (b *Builder) FinalizeWithMargin(margin float64) *document.Stroke {
	s := &document.Stroke{
		ID:         b.opts.newID(),
		PageIndex:  b.opts.pageIndex,
		StyleRef:   b.opts.styleRef,
		Overrides:  b.opts.overrides,
		PointCount: len(b.points),
		Pts:        codec.Encode(b.points),
	}
	if len(b.points) > 0 {
		bbox := ink.BoundsOf(b.points)
		if stored, err := codec.Decode(s.Pts); err == nil {
			bbox = bbox.Union(ink.BoundsOf(stored))
		}
		s.BBox = bbox.Expand(max(margin, 0))
		if b.opts.grainAnchor {
			anchor := b.firstRaw
			s.GrainAnchor = &anchor
		}
	}

	ink.Logger().Debug("stroke finalized", "id", s.ID, "points", s.PointCount, "bytes", len(s.Pts))
	b.reset()
	return s
}

// Discard drops the accumulated samples without producing a stroke.
func (b *Builder) Discard() {
	b.reset()
}

func (b *Builder) reset() {
	b.points = nil
	b.firstRaw = ink.Point{}
	b.state = Idle
	b.x.Reset()
	b.y.Reset()
	b.pressure.Reset()
	b.tiltX.Reset()
	b.tiltY.Reset()
}
