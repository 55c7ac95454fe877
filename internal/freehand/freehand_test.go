package freehand

import (
	"math"
	"testing"

	"github.com/gogpu/ink"
)

func line(n int, from, to ink.Point, pressure float64) []Point {
	pts := make([]Point, n)
	for i := range pts {
		p := from.Lerp(to, float64(i)/float64(n-1))
		pts[i] = Point{X: p.X, Y: p.Y, Pressure: pressure}
	}
	return pts
}

func finite(pts []ink.Point) bool {
	for _, p := range pts {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return false
		}
	}
	return true
}

func TestStroke_Empty(t *testing.T) {
	if got := Stroke(nil, Options{Size: 8}); got != nil {
		t.Errorf("Stroke(nil) = %v, want nil", got)
	}
	if got := Stroke(line(5, ink.Pt(0, 0), ink.Pt(10, 0), 0.5), Options{}); got != nil {
		t.Errorf("Stroke with zero size = %d points, want nil", len(got))
	}
}

func TestStroke_StraightLineWidth(t *testing.T) {
	const size = 8.0
	opts := Options{Size: size, Thinning: 0.5, Smoothing: 0.5, Streamline: 0.5}
	out := Stroke(line(50, ink.Pt(0, 0), ink.Pt(100, 0), 0.5), opts)

	if len(out) < 10 {
		t.Fatalf("outline has %d points", len(out))
	}
	if !finite(out) {
		t.Fatal("outline contains non-finite coordinates")
	}

	maxY := 0.0
	for _, p := range out {
		maxY = max(maxY, math.Abs(p.Y))
		if p.X < -size || p.X > 100+size {
			t.Errorf("outline point %v outside the stroke extent", p)
		}
	}
	// Pressure 0.5 gives a radius of exactly size/2 regardless of thinning.
	if maxY > size/2+1e-9 || maxY < size/2*0.9 {
		t.Errorf("half width = %v, want about %v", maxY, size/2)
	}
}

func TestStroke_PressureThins(t *testing.T) {
	halfWidth := func(pressure float64) float64 {
		out := Stroke(line(40, ink.Pt(0, 0), ink.Pt(200, 0), pressure), Options{Size: 10, Thinning: 0.6})
		m := 0.0
		for _, p := range out {
			m = max(m, math.Abs(p.Y))
		}
		return m
	}
	light, heavy := halfWidth(0.1), halfWidth(0.9)
	if !(light < heavy) {
		t.Errorf("half width at low pressure %v, at high pressure %v; want low < high", light, heavy)
	}
}

func TestStroke_TaperNarrowsEnds(t *testing.T) {
	opts := Options{Size: 10, Thinning: 0.5, Start: Taper{Length: 30}, End: Taper{Length: 30}}
	sp := StrokePoints(line(60, ink.Pt(0, 0), ink.Pt(300, 0), 0.5), opts)
	out := OutlinePoints(sp, opts)
	if !finite(out) {
		t.Fatal("non-finite outline")
	}

	first := sp[0].Point
	for _, p := range out {
		if p.Distance(first) < 2 && math.Abs(p.Y) > 1 {
			t.Errorf("point %v near the tapered start is too wide", p)
		}
	}
}

func TestStroke_SinglePoint(t *testing.T) {
	out := Stroke([]Point{{X: 50, Y: 50, Pressure: 0.5}}, Options{Size: 6, Thinning: 0.5})
	if len(out) == 0 {
		t.Fatal("a single tap must still produce an outline")
	}
	c := ink.Pt(50, 50)
	for _, p := range out {
		if p.Distance(c) > 6 {
			t.Errorf("tap outline point %v is %v from the tap", p, p.Distance(c))
		}
	}
}

func TestOutlinePoints_Dot(t *testing.T) {
	sp := []StrokePoint{{Point: ink.Pt(10, 10), Pressure: 0.5}}
	out := OutlinePoints(sp, Options{Size: 4})
	if len(out) != cornerSteps {
		t.Fatalf("dot has %d points, want %d", len(out), cornerSteps)
	}
	for _, p := range out {
		if d := p.Distance(ink.Pt(10, 10)); math.Abs(d-2) > 1e-6 {
			t.Errorf("dot point %v at distance %v, want 2", p, d)
		}
	}
}

func TestStrokePoints_TwoPointsInterpolated(t *testing.T) {
	in := []Point{{X: 0, Y: 0, Pressure: 0.5}, {X: 40, Y: 0, Pressure: 0.5}}
	sp := StrokePoints(in, Options{Size: 1, Streamline: 0, Last: true})
	if len(sp) != 5 {
		t.Fatalf("got %d stroke points, want 5", len(sp))
	}
	if sp[4].Point != ink.Pt(40, 0) {
		t.Errorf("last point = %v, want (40, 0) with Last set", sp[4].Point)
	}
	for i := 1; i < len(sp); i++ {
		if sp[i].RunningLength <= sp[i-1].RunningLength {
			t.Errorf("running length not increasing at %d", i)
		}
		if sp[i].Vector != ink.Pt(-1, 0) {
			t.Errorf("vector %d = %v, want (-1, 0)", i, sp[i].Vector)
		}
	}
	if sp[0].Vector != sp[1].Vector {
		t.Error("first vector must copy the second")
	}
}

func TestStrokePoints_MinimumLength(t *testing.T) {
	in := line(20, ink.Pt(0, 0), ink.Pt(10, 0), 0.5)
	sp := StrokePoints(in, Options{Size: 100, Streamline: 0})
	// Everything before the last point is closer than Size to the start.
	if len(sp) != 2 {
		t.Errorf("got %d stroke points, want 2", len(sp))
	}
}

func TestStrokePoints_UnknownPressure(t *testing.T) {
	sp := StrokePoints([]Point{{X: 0, Y: 0, Pressure: -1}, {X: 9, Y: 9, Pressure: -1}}, Options{Size: 1})
	if sp[0].Pressure != 0.25 {
		t.Errorf("first pressure = %v, want 0.25", sp[0].Pressure)
	}
	if sp[1].Pressure != 0.5 {
		t.Errorf("pressure = %v, want 0.5", sp[1].Pressure)
	}
}

func TestStroke_SharpCorner(t *testing.T) {
	var in []Point
	in = append(in, line(30, ink.Pt(0, 0), ink.Pt(100, 0), 0.5)...)
	in = append(in, line(30, ink.Pt(100, 0), ink.Pt(0, 1), 0.5)[1:]...)
	out := Stroke(in, Options{Size: 6, Thinning: 0.3, Streamline: 0.2, Last: true})
	if len(out) == 0 || !finite(out) {
		t.Fatalf("hairpin outline invalid: %d points", len(out))
	}
}

func TestEasings(t *testing.T) {
	for _, f := range []func(float64) float64{linear, easeOutQuad, easeOutCubic} {
		if f(0) != 0 || f(1) != 1 {
			t.Errorf("easing endpoints = %v, %v", f(0), f(1))
		}
	}
}

func BenchmarkStroke(b *testing.B) {
	in := line(500, ink.Pt(0, 0), ink.Pt(800, 300), 0.6)
	opts := Options{Size: 4, Thinning: 0.5, Smoothing: 0.5, Streamline: 0.5}
	for b.Loop() {
		Stroke(in, opts)
	}
}
