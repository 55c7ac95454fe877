package outline

import "github.com/gogpu/ink"

// QuadBez is a quadratic Bézier curve from P0 to P2 with control P1.
type QuadBez struct {
	P0, P1, P2 ink.Point
}

// Eval evaluates the curve at t in 0..1.
func (q QuadBez) Eval(t float64) ink.Point {
	mt := 1 - t
	return ink.Point{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// AppendFlattened appends n evenly spaced samples of the curve, excluding
// P0 and ending exactly at P2, to dst.
func (q QuadBez) AppendFlattened(dst []ink.Point, n int) []ink.Point {
	for i := 1; i < n; i++ {
		dst = append(dst, q.Eval(float64(i)/float64(n)))
	}
	return append(dst, q.P2)
}
