package outline

import (
	"github.com/gogpu/ink/document"
	"github.com/gogpu/ink/style"
)

// ForStroke decodes s, applies its transform, resolves its style against
// styles and generates its geometry at level of detail lod. A transform
// also scales the pen width.
func ForStroke(s *document.Stroke, styles map[string]style.PenStyle, lod int) (Result, error) {
	pts, err := s.WorldPoints()
	if err != nil {
		return Result{}, err
	}
	st := style.Resolve(styles, s.StyleRef, s.Overrides)
	if s.Transform != nil {
		st.Width *= s.Transform.ScaleFactor()
		st = st.Sanitize()
	}
	return Generate(Decimate(pts, lod), st), nil
}
