package outline

import "github.com/gogpu/ink"

// Subdivisions is the number of line segments each quadratic span is
// flattened into.
const Subdivisions = 4

// SmoothClosed reconstructs a closed curve through raw outline vertices.
// Each vertex becomes the control point of a quadratic span whose
// endpoints are the midpoints to its neighbors, so consecutive spans share
// tangents.
func SmoothClosed(pts []ink.Point) *Path {
	p := NewPath()
	n := len(pts)
	if n == 0 {
		return p
	}
	if n == 1 {
		p.MoveTo(pts[0])
		p.Close()
		return p
	}

	p.MoveTo(pts[0].Mid(pts[1]))
	for i := 1; i <= n; i++ {
		c := pts[i%n]
		p.QuadTo(c, c.Mid(pts[(i+1)%n]))
	}
	p.Close()
	return p
}

// SmoothOpen is SmoothClosed for an open polyline: the curve starts at the
// first vertex and ends at the last.
func SmoothOpen(pts []ink.Point) *Path {
	p := NewPath()
	n := len(pts)
	if n == 0 {
		return p
	}
	p.MoveTo(pts[0])
	if n == 1 {
		return p
	}

	p.LineTo(pts[0].Mid(pts[1]))
	for i := 1; i < n-1; i++ {
		p.QuadTo(pts[i], pts[i].Mid(pts[i+1]))
	}
	p.LineTo(pts[n-1])
	return p
}

// FlattenClosed smooths pts as a closed curve and flattens it.
func FlattenClosed(pts []ink.Point) []ink.Point {
	if len(pts) < 2 {
		return append([]ink.Point(nil), pts...)
	}
	return SmoothClosed(pts).Flatten(Subdivisions)[0]
}

// FlattenOpen smooths pts as an open curve and flattens it. Inputs of
// equal length produce outputs of equal length.
func FlattenOpen(pts []ink.Point) []ink.Point {
	if len(pts) < 2 {
		return append([]ink.Point(nil), pts...)
	}
	return SmoothOpen(pts).Flatten(Subdivisions)[0]
}
