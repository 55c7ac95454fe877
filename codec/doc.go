// Package codec converts pen samples to and from a compact delta-encoded
// text form.
//
// Every channel is quantized to an integer domain before encoding:
//
//	x, y       world units x10 (0.1 precision)
//	pressure   0..1 mapped to 0..255
//	tilt x/y   -90..90 degrees mapped to 0..255
//	twist      whole degrees, 0..359
//	timestamp  whole milliseconds
//
// The first point stores absolute quantized values. Every later point
// stores the per-channel difference from the previous point's quantized
// values, so decoding is an exact inverse of encoding modulo the initial
// quantization and never drifts.
//
// Points are separated by ';' and channels by ','. Trailing zero deltas are
// omitted, so a point that only moved along x encodes as a single integer.
//
//	codec.Encode([]ink.StrokePoint{
//	    {X: 100, Y: 200, Pressure: 0.5, Timestamp: 1000},
//	    {X: 110, Y: 210, Pressure: 0.5, Timestamp: 1016},
//	})
//	// "1000,2000,128,128,128,0,1000;100,100,0,0,0,0,16"
package codec
