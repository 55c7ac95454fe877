// Package mask rasterizes outline geometry into alpha coverage masks, for
// hit testing and for checking that generated geometry covers the stroke
// it was built for.
package mask

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/outline"
)

// Mask is an alpha mask over a world-space rectangle. Values range from 0
// (uncovered) to 255 (fully covered).
type Mask struct {
	alpha  *image.Alpha
	origin ink.Point
	scale  float64

	rasterizer vector.Rasterizer
}

// New creates an empty mask covering bounds at scale pixels per world
// unit. A non-positive scale is treated as 1.
func New(bounds ink.Rect, scale float64) *Mask {
	if !(scale > 0) {
		scale = 1
	}
	w := max(1, int(math.Ceil(bounds.Width()*scale)))
	h := max(1, int(math.Ceil(bounds.Height()*scale)))
	return &Mask{
		alpha:  image.NewAlpha(image.Rect(0, 0, w, h)),
		origin: bounds.Min,
		scale:  scale,
	}
}

// ForResult rasterizes the raw geometry of r into a new mask fitted to it
// with a one-pixel border.
func ForResult(r outline.Result, scale float64) *Mask {
	pts := r.Outline()
	if len(pts) == 0 {
		return New(ink.Rect{}, scale)
	}
	b := ink.Rect{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b = b.Union(ink.Rect{Min: p, Max: p})
	}
	m := New(b.Expand(1/max(scale, 1e-9)), scale)
	if r.Kind == outline.KindItalic && r.Sides != nil {
		m.FillTriangles(outline.Triangulate(*r.Sides))
	} else {
		m.FillPolygon(r.Polygon)
	}
	return m
}

// Alpha returns the underlying image. Pixel (0, 0) maps to the minimum
// corner of the mask bounds.
func (m *Mask) Alpha() *image.Alpha {
	return m.alpha
}

// At returns the coverage at world point p, 0 outside the mask.
func (m *Mask) At(p ink.Point) uint8 {
	x, y := m.toPixel(p)
	pt := image.Pt(int(math.Floor(float64(x))), int(math.Floor(float64(y))))
	if !pt.In(m.alpha.Rect) {
		return 0
	}
	return m.alpha.AlphaAt(pt.X, pt.Y).A
}

// Covered reports whether world point p is at least half covered.
func (m *Mask) Covered(p ink.Point) bool {
	return m.At(p) >= 128
}

// Coverage returns the covered fraction of the mask area, 0..1.
func (m *Mask) Coverage() float64 {
	if len(m.alpha.Pix) == 0 {
		return 0
	}
	sum := 0
	for _, a := range m.alpha.Pix {
		sum += int(a)
	}
	return float64(sum) / float64(255*len(m.alpha.Pix))
}

// Clear resets every pixel to 0.
func (m *Mask) Clear() {
	clear(m.alpha.Pix)
}

// FillPolygon adds the closed polygon pts to the mask.
func (m *Mask) FillPolygon(pts []ink.Point) {
	if len(pts) < 3 {
		return
	}
	m.begin()
	m.polygon(pts)
	m.end()
}

// FillPath adds every closed subpath of p to the mask.
func (m *Mask) FillPath(p *outline.Path) {
	if p.Empty() {
		return
	}
	m.begin()
	open := false
	for _, el := range p.Elements() {
		switch e := el.(type) {
		case outline.MoveTo:
			if open {
				m.rasterizer.ClosePath()
			}
			m.rasterizer.MoveTo(m.toPixel(e.Point))
			open = true
		case outline.LineTo:
			m.rasterizer.LineTo(m.toPixel(e.Point))
		case outline.QuadTo:
			cx, cy := m.toPixel(e.Control)
			x, y := m.toPixel(e.Point)
			m.rasterizer.QuadTo(cx, cy, x, y)
		case outline.Close:
			m.rasterizer.ClosePath()
			open = false
		}
	}
	if open {
		m.rasterizer.ClosePath()
	}
	m.end()
}

// FillTriangles adds a triangle list of interleaved x, y pairs to the mask.
func (m *Mask) FillTriangles(data []float32) {
	if len(data) < 6 {
		return
	}
	m.begin()
	for i := 0; i+6 <= len(data); i += 6 {
		tri := []ink.Point{
			ink.Pt(float64(data[i]), float64(data[i+1])),
			ink.Pt(float64(data[i+2]), float64(data[i+3])),
			ink.Pt(float64(data[i+4]), float64(data[i+5])),
		}
		m.polygon(tri)
	}
	m.end()
}

// FillVertices adds flattened geometry to the mask.
func (m *Mask) FillVertices(v outline.VertexBuffer) {
	if v.Mode == outline.ModeTriangles {
		m.FillTriangles(v.Data)
		return
	}
	pts := make([]ink.Point, v.Len())
	for i := range pts {
		pts[i] = v.Vertex(i)
	}
	m.FillPolygon(pts)
}

func (m *Mask) begin() {
	b := m.alpha.Rect
	m.rasterizer.Reset(b.Dx(), b.Dy())
	m.rasterizer.DrawOp = draw.Over
}

func (m *Mask) end() {
	m.rasterizer.Draw(m.alpha, m.alpha.Rect, image.Opaque, image.Point{})
}

func (m *Mask) polygon(pts []ink.Point) {
	m.rasterizer.MoveTo(m.toPixel(pts[0]))
	for _, p := range pts[1:] {
		m.rasterizer.LineTo(m.toPixel(p))
	}
	m.rasterizer.ClosePath()
}

func (m *Mask) toPixel(p ink.Point) (float32, float32) {
	return float32((p.X - m.origin.X) * m.scale), float32((p.Y - m.origin.Y) * m.scale)
}
