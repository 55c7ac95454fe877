package outline

import "github.com/gogpu/ink"

// Mode tells a renderer how to interpret VertexBuffer data.
type Mode int

const (
	// ModePolygon is one closed polygon, filled with the nonzero rule.
	ModePolygon Mode = iota
	// ModeTriangles is a list of independent triangles.
	ModeTriangles
)

// VertexBuffer is flattened geometry as interleaved x, y pairs.
type VertexBuffer struct {
	Mode Mode
	Data []float32
}

// Len returns the number of vertices.
func (v VertexBuffer) Len() int {
	return len(v.Data) / 2
}

// Vertex returns vertex i.
func (v VertexBuffer) Vertex(i int) ink.Point {
	return ink.Pt(float64(v.Data[2*i]), float64(v.Data[2*i+1]))
}

// Triangulate splits the quad strip between s.Left and s.Right into two
// triangles per segment, (L[i], L[i+1], R[i+1]) and (L[i], R[i+1], R[i]).
// Every triangle is emitted with positive winding.
func Triangulate(s Sides) []float32 {
	n := s.Len()
	if n < 2 {
		return nil
	}
	out := make([]float32, 0, (n-1)*12)
	for i := range n - 1 {
		l0, l1 := s.Left[i], s.Left[i+1]
		r0, r1 := s.Right[i], s.Right[i+1]
		out = appendTriangle(out, l0, l1, r1)
		out = appendTriangle(out, l0, r1, r0)
	}
	return out
}

func appendTriangle(dst []float32, a, b, c ink.Point) []float32 {
	if b.Sub(a).Cross(c.Sub(a)) < 0 {
		b, c = c, b
	}
	return append(dst,
		float32(a.X), float32(a.Y),
		float32(b.X), float32(b.Y),
		float32(c.X), float32(c.Y),
	)
}

// Vertices returns the flattened, smoothed geometry of r. A standard
// result becomes a closed polygon; an italic result has each side smoothed
// as an open curve and is triangulated.
func Vertices(r Result) VertexBuffer {
	if r.Kind == KindItalic && r.Sides != nil {
		smooth := Sides{
			Left:  FlattenOpen(r.Sides.Left),
			Right: FlattenOpen(r.Sides.Right),
		}
		return VertexBuffer{Mode: ModeTriangles, Data: Triangulate(smooth)}
	}

	flat := FlattenClosed(r.Polygon)
	data := make([]float32, 0, 2*len(flat))
	for _, p := range flat {
		data = append(data, float32(p.X), float32(p.Y))
	}
	return VertexBuffer{Mode: ModePolygon, Data: data}
}

// SmoothPath returns the closed smoothed outline of r.
func SmoothPath(r Result) *Path {
	return SmoothClosed(r.Outline())
}
