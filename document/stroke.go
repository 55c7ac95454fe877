package document

import (
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/codec"
	"github.com/gogpu/ink/style"
)

// Stroke is one finalized pen gesture.
//
// A Stroke is immutable: Pts is never modified in place and every edit
// produces a new Stroke. PointCount always equals codec.Count(Pts) and BBox
// encloses every decoded point.
type Stroke struct {
	ID        string
	PageIndex int
	StyleRef  string
	Overrides *style.Override

	BBox       ink.Rect
	PointCount int

	// Pts holds the points in codec encoding.
	Pts string

	// Transform, when set, is applied to decoded points at render time.
	Transform *ink.Matrix

	// GrainAnchor is the raw position of the first sample, used to pin
	// paper texture to the stroke.
	GrainAnchor *ink.Point
}

// Points decodes the stroke's points in stroke space.
func (s *Stroke) Points() ([]ink.StrokePoint, error) {
	pts, err := codec.Decode(s.Pts)
	if err != nil {
		return nil, fmt.Errorf("document: stroke %s: %w", s.ID, err)
	}
	return pts, nil
}

// WorldPoints decodes the stroke's points and applies its transform.
func (s *Stroke) WorldPoints() ([]ink.StrokePoint, error) {
	pts, err := s.Points()
	if err != nil {
		return nil, err
	}
	if s.Transform != nil {
		s.Transform.TransformStrokePoints(pts)
	}
	return pts, nil
}

// Bounds returns the bounding box in world space.
func (s *Stroke) Bounds() ink.Rect {
	if s.Transform == nil {
		return s.BBox
	}
	m := *s.Transform
	corners := [4]ink.Point{
		m.TransformPoint(s.BBox.Min),
		m.TransformPoint(ink.Pt(s.BBox.Max.X, s.BBox.Min.Y)),
		m.TransformPoint(s.BBox.Max),
		m.TransformPoint(ink.Pt(s.BBox.Min.X, s.BBox.Max.Y)),
	}
	r := ink.NewRect(corners[0], corners[1])
	return r.Union(ink.NewRect(corners[2], corners[3]))
}

// WithTransform returns a copy of s with m composed after its current
// transform. The original stroke is unchanged.
func (s *Stroke) WithTransform(m ink.Matrix) *Stroke {
	c := *s
	if s.Transform != nil {
		m = m.Multiply(*s.Transform)
	}
	c.Transform = &m
	return &c
}

// WithStyle returns a copy of s referencing another style with the given
// overrides.
func (s *Stroke) WithStyle(ref string, o *style.Override) *Stroke {
	c := *s
	c.StyleRef = ref
	c.Overrides = o
	return &c
}

// NewStrokeID returns a short random stroke identifier.
func NewStrokeID() string {
	return shortID()
}

// NewPageID returns a short random page identifier.
func NewPageID() string {
	return shortID()
}

// shortID encodes the first 64 bits of a random UUID in URL-safe base64,
// giving an 11 character identifier.
func shortID() string {
	u := uuid.New()
	return base64.RawURLEncoding.EncodeToString(u[:8])
}
