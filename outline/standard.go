package outline

import (
	"math"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/internal/freehand"
	"github.com/gogpu/ink/style"
)

// Params returns the variable-width outline parameters for s.
// Pressure is never simulated: pen input carries real pressure, and
// filtered or missing pressure is still preferred over a guess from speed.
func Params(s style.PenStyle) freehand.Options {
	cfg := s.Config()
	return freehand.Options{
		Size:       s.Width,
		Thinning:   cfg.Thinning,
		Smoothing:  s.Smoothing,
		Streamline: cfg.Streamline,
		Start:      freehand.Taper{Length: cfg.TaperStart},
		End:        freehand.Taper{Length: cfg.TaperEnd},
		Last:       true,
	}
}

// Standard returns the closed outline polygon of points drawn with s. It
// returns nil for fewer than two points, which have no outline to draw.
func Standard(points []ink.StrokePoint, s style.PenStyle) []ink.Point {
	if len(points) < 2 {
		return nil
	}
	in := make([]freehand.Point, len(points))
	for i, p := range points {
		in[i] = freehand.Point{X: p.X, Y: p.Y, Pressure: ShapePressure(p, s)}
	}
	return freehand.Stroke(in, Params(s))
}

// ShapePressure applies the style's pressure curve to the sample pressure
// and widens it by pen tilt according to the style's tilt sensitivity.
// The result is in 0..1.
func ShapePressure(p ink.StrokePoint, s style.PenStyle) float64 {
	pressure := clamp01(p.Pressure)
	curve := s.PressureCurve
	if !(curve > 0) {
		curve = 1
	}
	if curve != 1 {
		pressure = math.Pow(pressure, curve)
	}
	if s.TiltSensitivity > 0 {
		pressure *= 1 + s.TiltSensitivity*p.TiltMagnitude()/90
	}
	return clamp01(pressure)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return min(max(v, 0), 1)
}
