package outline

import "github.com/gogpu/ink"

// Element is a single element of a Path.
type Element interface {
	isElement()
}

// MoveTo starts a subpath.
type MoveTo struct {
	Point ink.Point
}

func (MoveTo) isElement() {}

// LineTo draws a line to Point.
type LineTo struct {
	Point ink.Point
}

func (LineTo) isElement() {}

// QuadTo draws a quadratic Bézier curve to Point.
type QuadTo struct {
	Control ink.Point
	Point   ink.Point
}

func (QuadTo) isElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isElement() {}

// Path is a render-ready outline built from lines and quadratic curves.
type Path struct {
	elements []Element
	start    ink.Point
	current  ink.Point
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{elements: make([]Element, 0, 16)}
}

// MoveTo starts a new subpath at p.
func (p *Path) MoveTo(pt ink.Point) {
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
}

// LineTo draws a line to pt.
func (p *Path) LineTo(pt ink.Point) {
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// QuadTo draws a quadratic curve through control c to pt.
func (p *Path) QuadTo(c, pt ink.Point) {
	p.elements = append(p.elements, QuadTo{Control: c, Point: pt})
	p.current = pt
}

// Close closes the current subpath.
func (p *Path) Close() {
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

// Elements returns the path elements.
func (p *Path) Elements() []Element {
	return p.elements
}

// Len returns the number of elements.
func (p *Path) Len() int {
	return len(p.elements)
}

// Empty reports whether the path has no elements.
func (p *Path) Empty() bool {
	return p == nil || len(p.elements) == 0
}

// Transform returns a copy of the path with m applied to every point.
func (p *Path) Transform(m ink.Matrix) *Path {
	out := NewPath()
	for _, el := range p.elements {
		switch e := el.(type) {
		case MoveTo:
			out.MoveTo(m.TransformPoint(e.Point))
		case LineTo:
			out.LineTo(m.TransformPoint(e.Point))
		case QuadTo:
			out.QuadTo(m.TransformPoint(e.Control), m.TransformPoint(e.Point))
		case Close:
			out.Close()
		}
	}
	return out
}

// Bounds returns the bounding box of every point and control point.
func (p *Path) Bounds() ink.Rect {
	var r ink.Rect
	first := true
	add := func(pt ink.Point) {
		if first {
			r = ink.Rect{Min: pt, Max: pt}
			first = false
			return
		}
		r = r.Union(ink.Rect{Min: pt, Max: pt})
	}
	for _, el := range p.elements {
		switch e := el.(type) {
		case MoveTo:
			add(e.Point)
		case LineTo:
			add(e.Point)
		case QuadTo:
			add(e.Control)
			add(e.Point)
		}
	}
	return r
}

// Flatten converts the path to polylines, one per subpath, replacing each
// quadratic curve by n line segments. Closed subpaths do not repeat their
// first point.
func (p *Path) Flatten(n int) [][]ink.Point {
	n = max(n, 1)
	var (
		out [][]ink.Point
		cur []ink.Point
	)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, cur)
		}
		cur = nil
	}
	for _, el := range p.elements {
		switch e := el.(type) {
		case MoveTo:
			flush()
			cur = append(cur, e.Point)
		case LineTo:
			cur = append(cur, e.Point)
		case QuadTo:
			from := e.Point
			if len(cur) > 0 {
				from = cur[len(cur)-1]
			}
			cur = QuadBez{P0: from, P1: e.Control, P2: e.Point}.AppendFlattened(cur, n)
		case Close:
			if len(cur) > 1 && cur[len(cur)-1] == cur[0] {
				cur = cur[:len(cur)-1]
			}
			flush()
		}
	}
	flush()
	return out
}
