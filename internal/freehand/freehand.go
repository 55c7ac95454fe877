// Package freehand builds the outline polygon of a variable-width stroke
// from pressure-annotated input points.
//
// The algorithm runs in two passes. StrokePoints streamlines the input
// and annotates each point with its direction and running length.
// OutlinePoints offsets those points left and right by a pressure-derived
// radius, tapers both ends and closes the shape with caps. Stroke runs
// both.
package freehand

import (
	"math"

	"github.com/gogpu/ink"
)

// ratePressureChange limits how fast simulated pressure follows speed.
const ratePressureChange = 0.275

// fixedPi is slightly over π so that half-turn caps overlap their start.
const fixedPi = math.Pi + 0.0001

// Cap segment counts.
const (
	cornerSteps = 13
	endCapSteps = 29
)

// Point is an input sample. A negative Pressure means unknown.
type Point struct {
	X, Y     float64
	Pressure float64
}

// Taper configures one end of the stroke.
type Taper struct {
	// Length is the taper length in world units; 0 disables the taper.
	Length float64

	// Flat replaces the round cap drawn at an untapered end with a flat
	// one.
	Flat bool

	// Easing shapes the taper; nil selects the default for the end.
	Easing func(float64) float64
}

// Options configures the outline.
type Options struct {
	Size       float64 // base diameter
	Thinning   float64 // effect of pressure on width, -1..1
	Smoothing  float64 // minimum spacing of outline points as a fraction of Size
	Streamline float64 // 0..1

	// Easing maps pressure before it is applied; nil is linear.
	Easing func(float64) float64

	// SimulatePressure derives pressure from point spacing instead of
	// reading it from the input.
	SimulatePressure bool

	Start Taper
	End   Taper

	// Last marks the input as complete, so the final point is used as is
	// rather than streamlined toward.
	Last bool
}

// StrokePoint is an input point annotated by StrokePoints.
type StrokePoint struct {
	Point    ink.Point
	Pressure float64

	// Vector is the unit direction from this point back to its
	// predecessor.
	Vector ink.Point

	Distance      float64 // from the previous point
	RunningLength float64 // from the first point
}

// Stroke returns the closed outline of points.
func Stroke(points []Point, opts Options) []ink.Point {
	return OutlinePoints(StrokePoints(points, opts), opts)
}

// StrokePoints streamlines points and annotates them for OutlinePoints.
// Points closer than Size to the start are merged until the stroke has
// travelled at least Size.
func StrokePoints(points []Point, opts Options) []StrokePoint {
	if len(points) == 0 {
		return nil
	}
	t := 0.15 + (1-opts.Streamline)*0.85

	pts := points
	switch len(pts) {
	case 1:
		p := pts[0]
		pts = []Point{p, {X: p.X + 1, Y: p.Y + 1, Pressure: p.Pressure}}
	case 2:
		a, b := pts[0], pts[1]
		pts = []Point{a}
		for i := 1; i < 5; i++ {
			f := float64(i) / 4
			pts = append(pts, Point{
				X:        a.X + (b.X-a.X)*f,
				Y:        a.Y + (b.Y-a.Y)*f,
				Pressure: a.Pressure + (b.Pressure-a.Pressure)*f,
			})
		}
	}

	first := ink.Pt(pts[0].X, pts[0].Y)
	out := make([]StrokePoint, 1, len(pts))
	out[0] = StrokePoint{Point: first, Pressure: pressureOr(pts[0].Pressure, 0.25), Vector: ink.Pt(1, 1)}

	prev := out[0]
	running := 0.0
	reachedMin := false
	last := len(pts) - 1
	for i := 1; i < len(pts); i++ {
		target := ink.Pt(pts[i].X, pts[i].Y)
		point := target
		if !opts.Last || i != last {
			point = prev.Point.Lerp(target, t)
		}
		if point == prev.Point {
			continue
		}

		d := point.Distance(prev.Point)
		running += d
		if i < last && !reachedMin {
			if running < opts.Size {
				continue
			}
			reachedMin = true
		}

		prev = StrokePoint{
			Point:         point,
			Pressure:      pressureOr(pts[i].Pressure, 0.5),
			Vector:        prev.Point.Sub(point).Normalize(),
			Distance:      d,
			RunningLength: running,
		}
		out = append(out, prev)
	}

	if len(out) > 1 {
		out[0].Vector = out[1].Vector
	} else {
		out[0].Vector = ink.Point{}
	}
	return out
}

// OutlinePoints offsets annotated points into a closed polygon: the left
// side, the end cap, the right side reversed, then the start cap.
func OutlinePoints(points []StrokePoint, opts Options) []ink.Point {
	size := opts.Size
	if len(points) == 0 || size <= 0 {
		return nil
	}
	easing := opts.Easing
	if easing == nil {
		easing = linear
	}
	startEase := opts.Start.Easing
	if startEase == nil {
		startEase = easeOutQuad
	}
	endEase := opts.End.Easing
	if endEase == nil {
		endEase = easeOutCubic
	}

	n := len(points)
	total := points[n-1].RunningLength
	taperStart := max(opts.Start.Length, 0)
	taperEnd := max(opts.End.Length, 0)
	minDistance := (size * opts.Smoothing) * (size * opts.Smoothing)

	prevPressure := points[0].Pressure
	for _, p := range points[:min(n, 10)] {
		pressure := p.Pressure
		if opts.SimulatePressure {
			pressure = simulatedPressure(prevPressure, p.Distance, size)
		}
		prevPressure = (prevPressure + pressure) / 2
	}

	radius := strokeRadius(size, opts.Thinning, points[n-1].Pressure, easing)
	firstRadius := math.NaN()
	prevVector := points[0].Vector
	pl, pr := points[0].Point, points[0].Point
	var tl, tr ink.Point
	prevSharp := false

	var left, right []ink.Point
	for i, sp := range points {
		if i < n-1 && total-sp.RunningLength < 3 {
			continue
		}

		if opts.Thinning != 0 {
			pressure := sp.Pressure
			if opts.SimulatePressure {
				pressure = simulatedPressure(prevPressure, sp.Distance, size)
			}
			radius = strokeRadius(size, opts.Thinning, pressure, easing)
			prevPressure = pressure
		} else {
			radius = size / 2
		}
		if math.IsNaN(firstRadius) {
			firstRadius = radius
		}

		ts, te := 1.0, 1.0
		if sp.RunningLength < taperStart {
			ts = startEase(sp.RunningLength / taperStart)
		}
		if total-sp.RunningLength < taperEnd {
			te = endEase((total - sp.RunningLength) / taperEnd)
		}
		radius = max(0.01, radius*min(ts, te))

		nextVector := sp.Vector
		nextDot := 1.0
		if i < n-1 {
			nextVector = points[i+1].Vector
			nextDot = sp.Vector.Dot(nextVector)
		}
		prevDot := sp.Vector.Dot(prevVector)

		sharp := prevDot < 0 && !prevSharp
		nextSharp := nextDot < 0
		if sharp || nextSharp {
			offset := prevVector.Perp().Mul(radius)
			for k := 0; k <= cornerSteps; k++ {
				t := float64(k) / cornerSteps
				tl = sp.Point.Sub(offset).RotateAround(sp.Point, fixedPi*t)
				tr = sp.Point.Add(offset).RotateAround(sp.Point, -fixedPi*t)
				left = append(left, tl)
				right = append(right, tr)
			}
			pl, pr = tl, tr
			if nextSharp {
				prevSharp = true
			}
			continue
		}
		prevSharp = false

		if i == n-1 {
			offset := sp.Vector.Perp().Mul(radius)
			left = append(left, sp.Point.Sub(offset))
			right = append(right, sp.Point.Add(offset))
			continue
		}

		offset := nextVector.Lerp(sp.Vector, nextDot).Perp().Mul(radius)
		tl = sp.Point.Sub(offset)
		if i <= 1 || pl.DistanceSquared(tl) > minDistance {
			left = append(left, tl)
			pl = tl
		}
		tr = sp.Point.Add(offset)
		if i <= 1 || pr.DistanceSquared(tr) > minDistance {
			right = append(right, tr)
			pr = tr
		}
		prevVector = sp.Vector
	}

	firstPoint := points[0].Point
	lastPoint := firstPoint.Add(ink.Pt(1, 1))
	if n > 1 {
		lastPoint = points[n-1].Point
	}
	if math.IsNaN(firstRadius) {
		firstRadius = radius
	}

	if n == 1 {
		if (taperStart == 0 && taperEnd == 0) || opts.Last {
			return dot(firstPoint, lastPoint, firstRadius)
		}
		return nil
	}
	if len(left) == 0 || len(right) == 0 {
		return nil
	}

	var startCap []ink.Point
	switch {
	case taperStart > 0:
	case !opts.Start.Flat:
		for k := 1; k <= cornerSteps; k++ {
			t := float64(k) / cornerSteps
			startCap = append(startCap, right[0].RotateAround(firstPoint, fixedPi*t))
		}
	default:
		corners := left[0].Sub(right[0])
		a, b := corners.Mul(0.5), corners.Mul(0.51)
		startCap = append(startCap, firstPoint.Sub(a), firstPoint.Sub(b), firstPoint.Add(b), firstPoint.Add(a))
	}

	var endCap []ink.Point
	direction := points[n-1].Vector.Neg().Perp()
	switch {
	case taperEnd > 0:
		endCap = append(endCap, lastPoint)
	case !opts.End.Flat:
		start := lastPoint.Add(direction.Mul(radius))
		for k := 1; k < endCapSteps; k++ {
			t := float64(k) / endCapSteps
			endCap = append(endCap, start.RotateAround(lastPoint, fixedPi*3*t))
		}
	default:
		endCap = append(endCap,
			lastPoint.Add(direction.Mul(radius)),
			lastPoint.Add(direction.Mul(radius*0.99)),
			lastPoint.Sub(direction.Mul(radius*0.99)),
			lastPoint.Sub(direction.Mul(radius)),
		)
	}

	out := make([]ink.Point, 0, len(left)+len(endCap)+len(right)+len(startCap))
	out = append(out, left...)
	out = append(out, endCap...)
	for i := len(right) - 1; i >= 0; i-- {
		out = append(out, right[i])
	}
	return append(out, startCap...)
}

// dot returns a closed circle of the given radius around center.
func dot(center, toward ink.Point, radius float64) []ink.Point {
	start := center.Add(center.Sub(toward).Perp().Normalize().Mul(-radius))
	out := make([]ink.Point, 0, cornerSteps)
	for k := 1; k <= cornerSteps; k++ {
		t := float64(k) / cornerSteps
		out = append(out, start.RotateAround(center, fixedPi*2*t))
	}
	return out
}

func strokeRadius(size, thinning, pressure float64, easing func(float64) float64) float64 {
	return size * easing(0.5-thinning*(0.5-pressure))
}

func simulatedPressure(prev, distance, size float64) float64 {
	sp := min(1, distance/size)
	rp := min(1, 1-sp)
	return min(1, prev+(rp-prev)*(sp*ratePressureChange))
}

func pressureOr(p, fallback float64) float64 {
	if p < 0 {
		return fallback
	}
	return p
}

func linear(t float64) float64 { return t }

func easeOutQuad(t float64) float64 { return t * (2 - t) }

func easeOutCubic(t float64) float64 {
	t--
	return t*t*t + 1
}
