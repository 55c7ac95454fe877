package document

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/codec"
)

func TestStroke_Points(t *testing.T) {
	s := newTestStroke("a", 0)
	pts, err := s.Points()
	if err != nil {
		t.Fatalf("Points error = %v", err)
	}
	if len(pts) != s.PointCount {
		t.Errorf("len = %d, want PointCount %d", len(pts), s.PointCount)
	}

	bad := &Stroke{ID: "bad", Pts: "x"}
	if _, err := bad.Points(); !errors.Is(err, codec.ErrMalformed) {
		t.Errorf("Points error = %v, want ErrMalformed", err)
	}
}

func TestStroke_WorldPoints(t *testing.T) {
	s := newTestStroke("a", 0).WithTransform(ink.Translate(100, 0))
	pts, err := s.WorldPoints()
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(pts[0].X-101) > 1e-9 {
		t.Errorf("first world x = %v, want 101", pts[0].X)
	}
}

func TestStroke_WithTransformComposes(t *testing.T) {
	s := newTestStroke("a", 0).
		WithTransform(ink.Translate(10, 0)).
		WithTransform(ink.Scale(2, 2))
	got := s.Transform.TransformPoint(ink.Pt(1, 1))
	if got != ink.Pt(22, 2) {
		t.Errorf("composed transform maps (1,1) to %v, want (22, 2)", got)
	}
}

func TestStroke_Bounds(t *testing.T) {
	s := newTestStroke("a", 0)
	if s.Bounds() != s.BBox {
		t.Error("Bounds without transform should equal BBox")
	}
	r := s.WithTransform(ink.Scale(-1, 1)).Bounds()
	want := ink.NewRect(ink.Pt(-5, 2), ink.Pt(-1, 8))
	if r != want {
		t.Errorf("Bounds = %v, want %v", r, want)
	}
}

func TestNewStrokeID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewStrokeID()
		if len(id) != 11 {
			t.Fatalf("len(%q) = %d, want 11", id, len(id))
		}
		if seen[id] {
			t.Fatalf("duplicate ID %q", id)
		}
		seen[id] = true
	}
}
