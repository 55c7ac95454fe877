package codec

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/gogpu/ink"
)

func TestEncodeEmpty(t *testing.T) {
	if got := Encode(nil); got != "" {
		t.Errorf("Encode(nil) = %q, want empty", got)
	}
	if got := Encode([]ink.StrokePoint{}); got != "" {
		t.Errorf("Encode([]) = %q, want empty", got)
	}
}

func TestDecodeEmpty(t *testing.T) {
	pts, err := Decode("")
	if err != nil {
		t.Fatalf("Decode(\"\") error = %v", err)
	}
	if pts == nil || len(pts) != 0 {
		t.Errorf("Decode(\"\") = %v, want empty non-nil slice", pts)
	}
}

func TestEncodeTwoPointScenario(t *testing.T) {
	in := []ink.StrokePoint{
		{X: 100, Y: 200, Pressure: 0.5, Timestamp: 1000},
		{X: 110, Y: 210, Pressure: 0.5, Timestamp: 1016},
	}
	s := Encode(in)

	segments := strings.Split(s, ";")
	if len(segments) != 2 {
		t.Fatalf("Encode produced %d segments, want 2: %q", len(segments), s)
	}
	if dx := strings.Split(segments[1], ",")[0]; dx != "100" {
		t.Errorf("second segment x delta = %s, want 100", dx)
	}

	out, err := Decode(s)
	if err != nil {
		t.Fatalf("Decode error = %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("Decode returned %d points, want 2", len(out))
	}
	for i := range in {
		if math.Abs(out[i].X-in[i].X) > 0.1 || math.Abs(out[i].Y-in[i].Y) > 0.1 {
			t.Errorf("point %d = (%v, %v), want (%v, %v)", i, out[i].X, out[i].Y, in[i].X, in[i].Y)
		}
		if out[i].Timestamp != in[i].Timestamp {
			t.Errorf("point %d timestamp = %d, want %d", i, out[i].Timestamp, in[i].Timestamp)
		}
	}
}

func TestRoundTripTolerances(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	in := make([]ink.StrokePoint, 500)
	ts := int64(1_700_000_000_000)
	for i := range in {
		ts += int64(rng.Intn(20))
		in[i] = ink.StrokePoint{
			X:         rng.Float64()*4000 - 2000,
			Y:         rng.Float64()*4000 - 2000,
			Pressure:  rng.Float64(),
			TiltX:     rng.Float64()*180 - 90,
			TiltY:     rng.Float64()*180 - 90,
			Twist:     float64(rng.Intn(360)),
			Timestamp: ts,
		}
	}

	out, err := Decode(Encode(in))
	if err != nil {
		t.Fatalf("Decode error = %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("len = %d, want %d", len(out), len(in))
	}

	const tiltStep = float64(TiltRange) / TiltLevels
	for i := range in {
		a, b := in[i], out[i]
		if math.Abs(a.X-b.X) > 0.1+1e-9 || math.Abs(a.Y-b.Y) > 0.1+1e-9 {
			t.Fatalf("point %d position drifted: %v vs %v", i, a.Pos(), b.Pos())
		}
		if math.Abs(a.Pressure-b.Pressure) > 1.0/PressureLevels {
			t.Fatalf("point %d pressure = %v, want %v", i, b.Pressure, a.Pressure)
		}
		if math.Abs(a.TiltX-b.TiltX) > tiltStep || math.Abs(a.TiltY-b.TiltY) > tiltStep {
			t.Fatalf("point %d tilt = (%v, %v), want (%v, %v)", i, b.TiltX, b.TiltY, a.TiltX, a.TiltY)
		}
		if a.Twist != b.Twist || a.Timestamp != b.Timestamp {
			t.Fatalf("point %d twist/time = %v/%d, want %v/%d", i, b.Twist, b.Timestamp, a.Twist, a.Timestamp)
		}
	}
}

func TestDeltasUseQuantizedValues(t *testing.T) {
	// Each step is 0.04 units; accumulating float deltas would lose every
	// step after rounding, accumulating quantized deltas must not drift.
	in := make([]ink.StrokePoint, 100)
	for i := range in {
		in[i] = ink.StrokePoint{X: float64(i) * 0.04}
	}
	out, err := Decode(Encode(in))
	if err != nil {
		t.Fatal(err)
	}
	last := out[len(out)-1].X
	if math.Abs(last-in[len(in)-1].X) > 0.1 {
		t.Errorf("last x = %v, want within 0.1 of %v", last, in[len(in)-1].X)
	}
}

func TestEncodeTrimsTrailingZeroDeltas(t *testing.T) {
	in := []ink.StrokePoint{
		{X: 1, Y: 1, Timestamp: 5},
		{X: 2, Y: 1, Timestamp: 5},
		{X: 2, Y: 1, Timestamp: 5},
	}
	s := Encode(in)
	segs := strings.Split(s, ";")
	if segs[1] != "10" {
		t.Errorf("x-only move encoded as %q, want \"10\"", segs[1])
	}
	if segs[2] != "0" {
		t.Errorf("unchanged point encoded as %q, want \"0\"", segs[2])
	}
	if n := Count(s); n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}
}

func TestDecodeShortSegments(t *testing.T) {
	pts, err := Decode("10,20;5")
	if err != nil {
		t.Fatalf("Decode error = %v", err)
	}
	if len(pts) != 2 {
		t.Fatalf("len = %d, want 2", len(pts))
	}
	if pts[1].X != 1.5 || pts[1].Y != 2 {
		t.Errorf("second point = (%v, %v), want (1.5, 2)", pts[1].X, pts[1].Y)
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"letters", "1,a,3"},
		{"empty channel", "1,,3"},
		{"empty segment", "1;;2"},
		{"too many channels", "1,2,3,4,5,6,7,8"},
		{"float", "1.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.in)
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("Decode(%q) error = %v, want ErrMalformed", tt.in, err)
			}
		})
	}
}

func TestQuantizeClamps(t *testing.T) {
	tests := []struct {
		name string
		got  int64
		want int64
	}{
		{"pressure below", QuantizePressure(-0.3), 0},
		{"pressure above", QuantizePressure(1.7), PressureLevels},
		{"pressure half", QuantizePressure(0.5), 128},
		{"tilt min", QuantizeTilt(-90), 0},
		{"tilt max", QuantizeTilt(120), TiltLevels},
		{"twist wraps", QuantizeTwist(361), 1},
		{"twist negative", QuantizeTwist(-10), 350},
		{"twist rounds to 360", QuantizeTwist(359.6), 0},
		{"nan coordinate", roundInt(math.NaN()), 0},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.name, tt.got, tt.want)
		}
	}
}

func TestCount(t *testing.T) {
	tests := map[string]int{
		"":          0,
		"1":         1,
		"1,2;3;4,5": 3,
	}
	for in, want := range tests {
		if got := Count(in); got != want {
			t.Errorf("Count(%q) = %d, want %d", in, got, want)
		}
	}
}

func BenchmarkEncode(b *testing.B) {
	pts := benchPoints(1000)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Encode(pts)
	}
}

func BenchmarkDecode(b *testing.B) {
	s := Encode(benchPoints(1000))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Decode(s)
	}
}

func benchPoints(n int) []ink.StrokePoint {
	pts := make([]ink.StrokePoint, n)
	for i := range pts {
		f := float64(i)
		pts[i] = ink.StrokePoint{
			X: 100 + f*1.3, Y: 200 + math.Sin(f/10)*40,
			Pressure: 0.4 + 0.2*math.Sin(f/7), Timestamp: int64(i * 8),
		}
	}
	return pts
}
