package outline

import (
	"github.com/gogpu/ink"
	"github.com/gogpu/ink/style"
)

// Kind tags the geometry held by a Result.
type Kind int

const (
	KindStandard Kind = iota
	KindItalic
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindStandard:
		return "standard"
	case KindItalic:
		return "italic"
	default:
		return "unknown"
	}
}

// Sides are the two edges of an italic stroke, swept by the ends of the
// nib. Left and Right always have the same length and Left[i] pairs with
// Right[i].
type Sides struct {
	Left  []ink.Point
	Right []ink.Point
}

// Len returns the number of point pairs.
func (s *Sides) Len() int {
	if s == nil {
		return 0
	}
	return min(len(s.Left), len(s.Right))
}

// Result is the output of a strategy. Polygon is set for KindStandard and
// Sides for KindItalic.
type Result struct {
	Kind    Kind
	Polygon []ink.Point
	Sides   *Sides
}

// Empty reports whether there is nothing to draw.
func (r Result) Empty() bool {
	return len(r.Polygon) == 0 && r.Sides.Len() == 0
}

// Outline returns the closed outline: the polygon for a standard result,
// and for an italic one the left side followed by the reversed right side.
func (r Result) Outline() []ink.Point {
	if r.Kind != KindItalic || r.Sides == nil {
		return r.Polygon
	}
	out := make([]ink.Point, 0, len(r.Sides.Left)+len(r.Sides.Right))
	out = append(out, r.Sides.Left...)
	for i := len(r.Sides.Right) - 1; i >= 0; i-- {
		out = append(out, r.Sides.Right[i])
	}
	return out
}

// Strategy generates geometry for one resolved style.
type Strategy struct {
	kind  Kind
	style style.PenStyle
	nib   style.Nib
}

// Select returns the strategy for s: italic when the nib angle and nib
// thickness both resolve, standard otherwise.
func Select(s style.PenStyle) Strategy {
	if nib, ok := s.Nib(); ok {
		return Strategy{kind: KindItalic, style: s, nib: nib}
	}
	return Strategy{kind: KindStandard, style: s}
}

// Kind returns the kind of result the strategy produces.
func (st Strategy) Kind() Kind {
	return st.kind
}

// Generate builds the geometry of points.
func (st Strategy) Generate(points []ink.StrokePoint) Result {
	if st.kind == KindItalic {
		return italic(points, st.style, st.nib)
	}
	return Result{Kind: KindStandard, Polygon: Standard(points, st.style)}
}

// Generate is shorthand for Select(s).Generate(points).
func Generate(points []ink.StrokePoint, s style.PenStyle) Result {
	return Select(s).Generate(points)
}
