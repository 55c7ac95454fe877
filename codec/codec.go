package codec

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/ink"
)

// Quantization scales.
const (
	// CoordScale is the number of integer steps per world unit.
	CoordScale = 10

	// PressureLevels is the largest quantized pressure value.
	PressureLevels = 255

	// TiltLevels is the largest quantized tilt value.
	TiltLevels = 255

	// TiltRange is the tilt range in degrees mapped onto 0..TiltLevels.
	TiltRange = 180
)

// NumChannels is the number of channels stored per point.
const NumChannels = 7

// Channel names in storage order. Documents declare this list so readers
// know which axes are encoded.
var ChannelNames = [NumChannels]string{"x", "y", "p", "tx", "ty", "tw", "t"}

const (
	pointSep   = ';'
	channelSep = ','
)

// ErrMalformed is returned by Decode for text that Encode could not have
// produced.
var ErrMalformed = errors.New("codec: malformed point data")

type quantized [NumChannels]int64

// Encode quantizes and delta-encodes pts. An empty slice encodes to "".
func Encode(pts []ink.StrokePoint) string {
	if len(pts) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow(len(pts) * 16)
	buf := make([]byte, 0, 24)

	var prev quantized
	for i, p := range pts {
		q := quantize(p)
		var d quantized
		for c := range q {
			d[c] = q[c] - prev[c]
		}
		prev = q

		if i > 0 {
			sb.WriteByte(pointSep)
		}
		n := significant(d)
		for c := 0; c < n; c++ {
			if c > 0 {
				sb.WriteByte(channelSep)
			}
			buf = strconv.AppendInt(buf[:0], d[c], 10)
			sb.Write(buf)
		}
	}
	return sb.String()
}

// Decode reverses Encode. An empty string decodes to an empty slice.
// Segments may carry fewer than NumChannels values; missing trailing
// channels are treated as a zero delta.
func Decode(s string) ([]ink.StrokePoint, error) {
	if s == "" {
		return []ink.StrokePoint{}, nil
	}

	pts := make([]ink.StrokePoint, 0, Count(s))
	var acc quantized
	seg := 0
	for rest := s; ; seg++ {
		part, tail, more := strings.Cut(rest, string(pointSep))
		if err := accumulate(&acc, part); err != nil {
			return nil, fmt.Errorf("%w: point %d: %v", ErrMalformed, seg, err)
		}
		pts = append(pts, dequantize(acc))
		if !more {
			break
		}
		rest = tail
	}
	return pts, nil
}

// Count returns the number of points encoded in s without decoding them.
func Count(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, string(pointSep)) + 1
}

// accumulate adds the deltas stored in one segment to acc.
func accumulate(acc *quantized, segment string) error {
	c := 0
	for rest := segment; ; c++ {
		if c >= NumChannels {
			return fmt.Errorf("more than %d channels", NumChannels)
		}
		field, tail, more := strings.Cut(rest, string(channelSep))
		v, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return fmt.Errorf("channel %s: %w", ChannelNames[c], err)
		}
		acc[c] += v
		if !more {
			return nil
		}
		rest = tail
	}
}

// significant returns the number of leading channels to write: everything
// up to the last non-zero delta, and never fewer than one so an unchanged
// point still occupies a segment.
func significant(d quantized) int {
	n := NumChannels
	for n > 1 && d[n-1] == 0 {
		n--
	}
	return n
}

func quantize(p ink.StrokePoint) quantized {
	return quantized{
		roundInt(p.X * CoordScale),
		roundInt(p.Y * CoordScale),
		QuantizePressure(p.Pressure),
		QuantizeTilt(p.TiltX),
		QuantizeTilt(p.TiltY),
		QuantizeTwist(p.Twist),
		p.Timestamp,
	}
}

func dequantize(q quantized) ink.StrokePoint {
	return ink.StrokePoint{
		X:         float64(q[0]) / CoordScale,
		Y:         float64(q[1]) / CoordScale,
		Pressure:  float64(q[2]) / PressureLevels,
		TiltX:     float64(q[3])/TiltLevels*TiltRange - TiltRange/2,
		TiltY:     float64(q[4])/TiltLevels*TiltRange - TiltRange/2,
		Twist:     float64(q[5]),
		Timestamp: q[6],
	}
}

// QuantizePressure maps a 0..1 pressure to 0..PressureLevels.
// Out-of-range input is clamped.
func QuantizePressure(p float64) int64 {
	return clamp(roundInt(p*PressureLevels), 0, PressureLevels)
}

// QuantizeTilt maps a -90..90 degree tilt to 0..TiltLevels.
// Out-of-range input is clamped.
func QuantizeTilt(deg float64) int64 {
	return clamp(roundInt((deg+TiltRange/2)/TiltRange*TiltLevels), 0, TiltLevels)
}

// QuantizeTwist rounds a barrel rotation to whole degrees in 0..359.
func QuantizeTwist(deg float64) int64 {
	v := roundInt(deg) % 360
	if v < 0 {
		v += 360
	}
	return v
}

// roundInt rounds f to the nearest integer. Non-finite values map to 0.
func roundInt(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int64(math.Round(f))
}

func clamp(v, lo, hi int64) int64 {
	return min(max(v, lo), hi)
}
