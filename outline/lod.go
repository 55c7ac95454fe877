package outline

import "github.com/gogpu/ink"

// MaxLOD is the coarsest supported level of detail.
const MaxLOD = 4

// Decimate thins points for level of detail lod: level 0 keeps every
// point, each further level halves the density. The first and last points
// are always kept.
func Decimate(points []ink.StrokePoint, lod int) []ink.StrokePoint {
	lod = min(lod, MaxLOD)
	if lod <= 0 || len(points) <= 2 {
		return points
	}
	stride := 1 << lod
	out := make([]ink.StrokePoint, 0, len(points)/stride+2)
	for i := 0; i < len(points)-1; i += stride {
		out = append(out, points[i])
	}
	return append(out, points[len(points)-1])
}
