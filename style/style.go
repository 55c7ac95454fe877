// Package style defines pen styles: named, reusable rendering parameters
// shared by strokes through a reference name.
//
// A stroke may carry a partial Override that is merged over its base style
// when the style is resolved. Merge documents the precedence: every field
// set in the override wins, every unset field falls through to the base.
package style

import (
	"math"

	"golang.org/x/text/unicode/norm"
)

// DefaultName is the style every document must define.
const DefaultName = "_default"

// Kind selects the pen model used to build a stroke's outline.
type Kind string

// Pen kinds.
const (
	Ballpoint   Kind = "ballpoint"
	FeltTip     Kind = "felt-tip"
	Pencil      Kind = "pencil"
	Fountain    Kind = "fountain"
	Brush       Kind = "brush"
	Highlighter Kind = "highlighter"
)

// Kinds lists every known pen kind.
var Kinds = []Kind{Ballpoint, FeltTip, Pencil, Fountain, Brush, Highlighter}

// Known reports whether k is a known pen kind.
func (k Kind) Known() bool {
	_, ok := kindConfigs[k]
	return ok
}

// PenStyle holds the rendering parameters of a pen.
//
// Optional nib and grain fields are nil when unset; a nil nib field falls
// back to the pen kind's default (see Nib).
type PenStyle struct {
	Kind      Kind
	Color     string // light theme color, "#rrggbb", "#rrggbbaa" or an SVG name
	ColorDark string // dark theme color; empty means Color

	Width           float64 // nominal stroke width in world units
	Opacity         float64 // 0..1
	Smoothing       float64 // 0..1, outline corner smoothing
	PressureCurve   float64 // exponent applied to pressure; 1 is linear
	TiltSensitivity float64 // 0..1, how much pen tilt widens the stroke

	NibAngle     *float64 // radians
	NibThickness *float64 // minor nib axis as a fraction of Width
	NibPressure  *float64 // 0..1, how strongly pressure narrows the nib
	Grain        *float64 // 0..1, texture amount for textured pens
}

// Builtin returns the style substituted for unresolved style references.
func Builtin() PenStyle {
	return PenStyle{
		Kind:          Ballpoint,
		Color:         "#1e1e1e",
		ColorDark:     "#e6e6e6",
		Width:         2,
		Opacity:       1,
		Smoothing:     0.5,
		PressureCurve: 1,
	}
}

// Override is a partial PenStyle. Every field is optional.
type Override struct {
	Kind      *Kind
	Color     *string
	ColorDark *string

	Width           *float64
	Opacity         *float64
	Smoothing       *float64
	PressureCurve   *float64
	TiltSensitivity *float64

	NibAngle     *float64
	NibThickness *float64
	NibPressure  *float64
	Grain        *float64
}

// IsZero reports whether the override sets no field.
func (o *Override) IsZero() bool {
	return o == nil || *o == Override{}
}

// Merge returns base with every field set in o applied over it.
//
// Precedence, field by field: o.Kind, o.Color, o.ColorDark, o.Width,
// o.Opacity, o.Smoothing, o.PressureCurve, o.TiltSensitivity, o.NibAngle,
// o.NibThickness, o.NibPressure and o.Grain each replace the base value
// when non-nil; a nil field leaves the base value. A nil override returns
// base unchanged. Pointer fields of the result never alias o.
func Merge(base PenStyle, o *Override) PenStyle {
	if o == nil {
		return base
	}
	s := base
	if o.Kind != nil {
		s.Kind = *o.Kind
	}
	if o.Color != nil {
		s.Color = *o.Color
	}
	if o.ColorDark != nil {
		s.ColorDark = *o.ColorDark
	}
	if o.Width != nil {
		s.Width = *o.Width
	}
	if o.Opacity != nil {
		s.Opacity = *o.Opacity
	}
	if o.Smoothing != nil {
		s.Smoothing = *o.Smoothing
	}
	if o.PressureCurve != nil {
		s.PressureCurve = *o.PressureCurve
	}
	if o.TiltSensitivity != nil {
		s.TiltSensitivity = *o.TiltSensitivity
	}
	if o.NibAngle != nil {
		s.NibAngle = Float(*o.NibAngle)
	}
	if o.NibThickness != nil {
		s.NibThickness = Float(*o.NibThickness)
	}
	if o.NibPressure != nil {
		s.NibPressure = Float(*o.NibPressure)
	}
	if o.Grain != nil {
		s.Grain = Float(*o.Grain)
	}
	return s
}

// Resolve returns the style named ref from styles with o merged over it.
//
// A missing ref resolves to the DefaultName entry of styles, and to
// Builtin if styles has no default either; resolution never fails. Names
// are compared after NFC normalization. The result is sanitized: a
// non-positive width or pressure curve and an unknown kind are replaced by
// Builtin values and fractions are clamped to 0..1.
func Resolve(styles map[string]PenStyle, ref string, o *Override) PenStyle {
	base, ok := Lookup(styles, ref)
	if !ok {
		if base, ok = Lookup(styles, DefaultName); !ok {
			base = Builtin()
		}
	}
	return Merge(base, o).Sanitize()
}

// Lookup finds ref in styles, trying the name as given and then its NFC
// normal form.
func Lookup(styles map[string]PenStyle, ref string) (PenStyle, bool) {
	if s, ok := styles[ref]; ok {
		return s, true
	}
	if n := NormalizeName(ref); n != ref {
		s, ok := styles[n]
		return s, ok
	}
	return PenStyle{}, false
}

// NormalizeName returns the NFC normal form of a style name, so names typed
// through different input methods map to the same style.
func NormalizeName(name string) string {
	return norm.NFC.String(name)
}

// Sanitize returns s with out-of-range values replaced or clamped.
func (s PenStyle) Sanitize() PenStyle {
	def := Builtin()
	if !s.Kind.Known() {
		s.Kind = def.Kind
	}
	if !(s.Width > 0) || math.IsInf(s.Width, 0) {
		s.Width = def.Width
	}
	if !(s.PressureCurve > 0) || math.IsInf(s.PressureCurve, 0) {
		s.PressureCurve = def.PressureCurve
	}
	if s.Color == "" {
		s.Color = def.Color
	}
	s.Opacity = clamp01(s.Opacity)
	s.Smoothing = clamp01(s.Smoothing)
	s.TiltSensitivity = clamp01(s.TiltSensitivity)
	return s
}

// Config returns the pen-kind defaults for s.Kind.
func (s PenStyle) Config() KindConfig {
	return ConfigFor(s.Kind)
}

// Nib describes a resolved flat nib.
type Nib struct {
	Angle     float64 // radians
	Thickness float64 // fraction of width
	Pressure  float64 // 0..1

	// BarrelRotation couples the nib angle to pen twist.
	BarrelRotation bool
}

// Nib resolves the style's nib from its own fields, falling back to the
// pen kind's defaults. It reports false unless both the angle and the
// thickness resolve, in which case the style renders as a standard stroke.
func (s PenStyle) Nib() (Nib, bool) {
	cfg := s.Config()
	angle := firstSet(s.NibAngle, cfg.NibAngle)
	thickness := firstSet(s.NibThickness, cfg.NibThickness)
	if angle == nil || thickness == nil {
		return Nib{}, false
	}

	pressure := DefaultNibPressure
	if p := firstSet(s.NibPressure, cfg.NibPressure); p != nil {
		pressure = clamp01(*p)
	}
	return Nib{
		Angle:          *angle,
		Thickness:      math.Max(0, *thickness),
		Pressure:       pressure,
		BarrelRotation: cfg.BarrelRotation,
	}, true
}

// GrainAmount returns the texture amount of the style, falling back to the
// pen kind's default.
func (s PenStyle) GrainAmount() float64 {
	if s.Grain != nil {
		return clamp01(*s.Grain)
	}
	return s.Config().Grain
}

// BBoxMargin returns how far rendered ink extends past the sample centers,
// for pens that scatter or texture their ink.
func (s PenStyle) BBoxMargin() float64 {
	return s.Width * s.Config().Scatter
}

// Float returns a pointer to a copy of v. It is a helper for building
// optional style fields.
func Float(v float64) *float64 {
	return &v
}

func firstSet(a, b *float64) *float64 {
	if a != nil {
		return a
	}
	return b
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(1, math.Max(0, v))
}
