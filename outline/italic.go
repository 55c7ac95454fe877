package outline

import (
	"math"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/style"
)

// Italic returns the flat-nib geometry of points drawn with s. When the
// style's nib does not resolve it falls back to Standard, and the returned
// Kind says which geometry was produced.
func Italic(points []ink.StrokePoint, s style.PenStyle) Result {
	nib, ok := s.Nib()
	if !ok {
		return Result{Kind: KindStandard, Polygon: Standard(points, s)}
	}
	return italic(points, s, nib)
}

// italic sweeps a rectangular nib along the points. The nib's major axis
// is the pen width scaled by pressure, its minor axis the nib thickness.
// For every point the edge vertices are the nib corners furthest from the
// center line on either side of the motion, so Left always lies left of
// the direction of travel and the strip never folds over itself.
//
// Fewer than two samples yield an empty result. Samples that never move
// yield the nib rectangle.
func italic(points []ink.StrokePoint, s style.PenStyle, nib style.Nib) Result {
	if len(points) < 2 {
		return Result{Kind: KindItalic}
	}
	pts := dedupe(points)

	minWidth := 1 - nib.Pressure
	halfWidth := s.Width / 2
	halfThick := nib.Thickness * s.Width / 2

	axes := func(p ink.StrokePoint) (major, minor ink.Point) {
		w := minWidth + (1-minWidth)*ShapePressure(p, s)
		angle := nib.Angle
		if nib.BarrelRotation {
			angle += p.Twist * math.Pi / 180
		}
		sin, cos := math.Sincos(angle)
		major = ink.Pt(cos, sin).Mul(halfWidth * w)
		minor = ink.Pt(-sin, cos).Mul(halfThick * w)
		return major, minor
	}

	sides := &Sides{
		Left:  make([]ink.Point, 0, len(pts)),
		Right: make([]ink.Point, 0, len(pts)),
	}

	if len(pts) == 1 {
		c := pts[0].Pos()
		major, minor := axes(pts[0])
		sides.Left = append(sides.Left, c.Add(major).Sub(minor), c.Add(major).Add(minor))
		sides.Right = append(sides.Right, c.Sub(major).Sub(minor), c.Sub(major).Add(minor))
		return Result{Kind: KindItalic, Sides: sides}
	}

	for i, p := range pts {
		c := p.Pos()
		prev := pts[max(i-1, 0)].Pos()
		next := pts[min(i+1, len(pts)-1)].Pos()
		normal := next.Sub(prev).Normalize().Perp()

		major, minor := axes(p)
		if major.Dot(normal) < 0 {
			major = major.Neg()
		}
		if minor.Dot(normal) < 0 {
			minor = minor.Neg()
		}
		corner := major.Add(minor)
		sides.Left = append(sides.Left, c.Add(corner))
		sides.Right = append(sides.Right, c.Sub(corner))
	}
	return Result{Kind: KindItalic, Sides: sides}
}

// dedupe drops samples at the same position as their predecessor.
func dedupe(points []ink.StrokePoint) []ink.StrokePoint {
	out := make([]ink.StrokePoint, 0, len(points))
	for i, p := range points {
		if i > 0 && p.Pos() == out[len(out)-1].Pos() {
			continue
		}
		out = append(out, p)
	}
	return out
}
