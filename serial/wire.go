package serial

import (
	"fmt"
	"time"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/codec"
	"github.com/gogpu/ink/document"
	"github.com/gogpu/ink/style"
)

type wireDoc struct {
	Version  int                  `json:"v"`
	Meta     wireMeta             `json:"m"`
	Pages    []wirePage           `json:"p"`
	Viewport wireViewport         `json:"vp"`
	Channels []string             `json:"ch,omitempty"`
	Styles   map[string]wireStyle `json:"s"`
	Strokes  []wireStroke         `json:"st"`

	LayoutDirection string            `json:"ld,omitzero"`
	RenderPipeline  string            `json:"rp,omitzero"`
	PageDefaults    *wirePageSettings `json:"pd,omitzero"`
	Compressed      bool              `json:"z,omitzero"`
}

type wireMeta struct {
	Created    int64  `json:"c"` // unix milliseconds
	AppVersion string `json:"a,omitzero"`
}

type wireViewport struct {
	X    float64  `json:"x"`
	Y    float64  `json:"y"`
	Zoom *float64 `json:"z,omitzero"`
}

// wirePageSettings fields are nil when equal to the default.
type wirePageSettings struct {
	Width       *float64    `json:"w,omitzero"`
	Height      *float64    `json:"h,omitzero"`
	Orientation string      `json:"o,omitzero"`
	PaperType   string      `json:"t,omitzero"`
	LineSpacing *float64    `json:"ls,omitzero"`
	GridSize    *float64    `json:"gs,omitzero"`
	Margins     *[4]float64 `json:"mg,omitzero"` // top, right, bottom, left
}

type wirePage struct {
	ID       string           `json:"i"`
	Settings wirePageSettings `json:",inline"`
}

type wireStyle struct {
	Kind            string   `json:"k"`
	Color           string   `json:"c"`
	ColorDark       string   `json:"cd,omitzero"`
	Width           float64  `json:"w"`
	Opacity         *float64 `json:"o,omitzero"` // nil means 1
	Smoothing       float64  `json:"sm,omitzero"`
	PressureCurve   *float64 `json:"pc,omitzero"` // nil means 1
	TiltSensitivity float64  `json:"ts,omitzero"`
	NibAngle        *float64 `json:"na,omitzero"`
	NibThickness    *float64 `json:"nt,omitzero"`
	NibPressure     *float64 `json:"np,omitzero"`
	Grain           *float64 `json:"gr,omitzero"`
}

type wireOverride struct {
	Kind            *string  `json:"k,omitzero"`
	Color           *string  `json:"c,omitzero"`
	ColorDark       *string  `json:"cd,omitzero"`
	Width           *float64 `json:"w,omitzero"`
	Opacity         *float64 `json:"o,omitzero"`
	Smoothing       *float64 `json:"sm,omitzero"`
	PressureCurve   *float64 `json:"pc,omitzero"`
	TiltSensitivity *float64 `json:"ts,omitzero"`
	NibAngle        *float64 `json:"na,omitzero"`
	NibThickness    *float64 `json:"nt,omitzero"`
	NibPressure     *float64 `json:"np,omitzero"`
	Grain           *float64 `json:"gr,omitzero"`
}

type wireStroke struct {
	ID          string        `json:"i"`
	PageIndex   int           `json:"pi,omitzero"`
	Style       string        `json:"s,omitzero"` // empty means the default style
	BBox        []float64     `json:"b"`
	Count       int           `json:"n"`
	Data        string        `json:"d"`
	Overrides   *wireOverride `json:"so,omitzero"`
	Transform   []float64     `json:"tf,omitzero"`
	GrainAnchor []float64     `json:"ga,omitzero"`
}

// Encoding.

func toWire(doc *document.Document) *wireDoc {
	w := &wireDoc{
		Version: document.CurrentVersion,
		Meta:    wireMeta{AppVersion: doc.Meta.AppVersion},
		Pages:   make([]wirePage, len(doc.Pages)),
		Viewport: wireViewport{
			X:    doc.Viewport.X,
			Y:    doc.Viewport.Y,
			Zoom: unlessDefault(doc.Viewport.Zoom, 1),
		},
		Channels:       doc.Channels,
		Styles:         make(map[string]wireStyle, len(doc.Styles)),
		Strokes:        make([]wireStroke, len(doc.Strokes)),
		RenderPipeline: doc.RenderPipeline,
	}
	if !doc.Meta.Created.IsZero() {
		w.Meta.Created = doc.Meta.Created.UnixMilli()
	}
	if doc.LayoutDirection != document.Vertical {
		w.LayoutDirection = string(doc.LayoutDirection)
	}
	if doc.PageDefaults != nil {
		pd := pageSettingsToWire(*doc.PageDefaults)
		w.PageDefaults = &pd
	}
	for i, p := range doc.Pages {
		w.Pages[i] = wirePage{ID: p.ID, Settings: pageSettingsToWire(p.PageSettings)}
	}
	for name, s := range doc.Styles {
		w.Styles[name] = styleToWire(s)
	}
	for i, s := range doc.Strokes {
		w.Strokes[i] = strokeToWire(s)
	}
	return w
}

func pageSettingsToWire(s document.PageSettings) wirePageSettings {
	def := document.DefaultPageSettings()
	w := wirePageSettings{
		Width:       unlessDefault(s.Width, def.Width),
		Height:      unlessDefault(s.Height, def.Height),
		LineSpacing: unlessDefault(s.LineSpacing, def.LineSpacing),
		GridSize:    unlessDefault(s.GridSize, def.GridSize),
	}
	if s.Orientation != def.Orientation {
		w.Orientation = string(s.Orientation)
	}
	if s.PaperType != def.PaperType {
		w.PaperType = string(s.PaperType)
	}
	if s.Margins != def.Margins {
		m := s.Margins
		w.Margins = &[4]float64{m.Top, m.Right, m.Bottom, m.Left}
	}
	return w
}

func styleToWire(s style.PenStyle) wireStyle {
	w := wireStyle{
		Kind:            string(s.Kind),
		Color:           s.Color,
		Width:           s.Width,
		Opacity:         unlessDefault(s.Opacity, 1),
		Smoothing:       s.Smoothing,
		PressureCurve:   unlessDefault(s.PressureCurve, 1),
		TiltSensitivity: s.TiltSensitivity,
		NibAngle:        s.NibAngle,
		NibThickness:    s.NibThickness,
		NibPressure:     s.NibPressure,
		Grain:           s.Grain,
	}
	if s.ColorDark != s.Color {
		w.ColorDark = s.ColorDark
	}
	return w
}

func overrideToWire(o *style.Override) *wireOverride {
	if o.IsZero() {
		return nil
	}
	w := &wireOverride{
		Color:           o.Color,
		ColorDark:       o.ColorDark,
		Width:           o.Width,
		Opacity:         o.Opacity,
		Smoothing:       o.Smoothing,
		PressureCurve:   o.PressureCurve,
		TiltSensitivity: o.TiltSensitivity,
		NibAngle:        o.NibAngle,
		NibThickness:    o.NibThickness,
		NibPressure:     o.NibPressure,
		Grain:           o.Grain,
	}
	if o.Kind != nil {
		w.Kind = ptr(string(*o.Kind))
	}
	return w
}

func strokeToWire(s *document.Stroke) wireStroke {
	w := wireStroke{
		ID:        s.ID,
		PageIndex: s.PageIndex,
		BBox:      s.BBox.Slice(),
		Count:     s.PointCount,
		Data:      s.Pts,
		Overrides: overrideToWire(s.Overrides),
	}
	if s.StyleRef != style.DefaultName {
		w.Style = s.StyleRef
	}
	if s.Transform != nil && !s.Transform.IsIdentity() {
		w.Transform = s.Transform.Slice()
	}
	if s.GrainAnchor != nil {
		w.GrainAnchor = []float64{s.GrainAnchor.X, s.GrainAnchor.Y}
	}
	return w
}

// Decoding. Strokes are converted by fromWireStroke after their data has
// been decompressed.

func fromWire(w *wireDoc) *document.Document {
	doc := &document.Document{
		Version: w.Version,
		Meta: document.Meta{
			AppVersion: w.Meta.AppVersion,
		},
		Channels:        w.Channels,
		Styles:          make(map[string]style.PenStyle, len(w.Styles)+1),
		Strokes:         make([]*document.Stroke, 0, len(w.Strokes)),
		Viewport:        document.Viewport{X: w.Viewport.X, Y: w.Viewport.Y, Zoom: 1},
		LayoutDirection: document.Vertical,
		RenderPipeline:  w.RenderPipeline,
	}
	if w.Meta.Created != 0 {
		doc.Meta.Created = time.UnixMilli(w.Meta.Created).UTC()
	}
	if z := w.Viewport.Zoom; z != nil && *z > 0 {
		doc.Viewport.Zoom = *z
	}
	if len(doc.Channels) == 0 {
		doc.Channels = document.DefaultChannels()
	}
	if document.LayoutDirection(w.LayoutDirection) == document.Horizontal {
		doc.LayoutDirection = document.Horizontal
	}
	if w.PageDefaults != nil {
		pd := pageSettingsFromWire(*w.PageDefaults)
		doc.PageDefaults = &pd
	}

	for _, p := range w.Pages {
		id := p.ID
		if id == "" {
			id = document.NewPageID()
		}
		doc.Pages = append(doc.Pages, document.Page{ID: id, PageSettings: pageSettingsFromWire(p.Settings)})
	}
	if len(doc.Pages) == 0 {
		doc.Pages = []document.Page{document.NewPage(document.DefaultPageSettings())}
	}

	for name, s := range w.Styles {
		doc.Styles[style.NormalizeName(name)] = styleFromWire(s)
	}
	if _, ok := doc.Styles[style.DefaultName]; !ok {
		doc.Styles[style.DefaultName] = style.Builtin()
	}
	return doc
}

func pageSettingsFromWire(w wirePageSettings) document.PageSettings {
	s := document.DefaultPageSettings()
	setIf(&s.Width, w.Width)
	setIf(&s.Height, w.Height)
	setIf(&s.LineSpacing, w.LineSpacing)
	setIf(&s.GridSize, w.GridSize)
	if w.Orientation != "" {
		s.Orientation = document.Orientation(w.Orientation)
	}
	if w.PaperType != "" {
		s.PaperType = document.PaperType(w.PaperType)
	}
	if m := w.Margins; m != nil {
		s.Margins = document.Margins{Top: m[0], Right: m[1], Bottom: m[2], Left: m[3]}
	}
	return s
}

func styleFromWire(w wireStyle) style.PenStyle {
	s := style.PenStyle{
		Kind:            style.Kind(w.Kind),
		Color:           w.Color,
		ColorDark:       w.ColorDark,
		Width:           w.Width,
		Opacity:         1,
		Smoothing:       w.Smoothing,
		PressureCurve:   1,
		TiltSensitivity: w.TiltSensitivity,
		NibAngle:        w.NibAngle,
		NibThickness:    w.NibThickness,
		NibPressure:     w.NibPressure,
		Grain:           w.Grain,
	}
	setIf(&s.Opacity, w.Opacity)
	setIf(&s.PressureCurve, w.PressureCurve)
	return s
}

func overrideFromWire(w *wireOverride) *style.Override {
	if w == nil {
		return nil
	}
	o := &style.Override{
		Color:           w.Color,
		ColorDark:       w.ColorDark,
		Width:           w.Width,
		Opacity:         w.Opacity,
		Smoothing:       w.Smoothing,
		PressureCurve:   w.PressureCurve,
		TiltSensitivity: w.TiltSensitivity,
		NibAngle:        w.NibAngle,
		NibThickness:    w.NibThickness,
		NibPressure:     w.NibPressure,
		Grain:           w.Grain,
	}
	if w.Kind != nil {
		k := style.Kind(*w.Kind)
		o.Kind = &k
	}
	if o.IsZero() {
		return nil
	}
	return o
}

// fromWireStroke converts a stroke whose Data holds plain encoded points.
func fromWireStroke(w wireStroke) (*document.Stroke, error) {
	bbox, ok := ink.RectFromSlice(w.BBox)
	if !ok {
		return nil, fmt.Errorf("stroke %q: bounding box %v: %w", w.ID, w.BBox, ErrCorrupt)
	}
	if w.ID == "" || w.PageIndex < 0 {
		return nil, fmt.Errorf("stroke %q on page %d: %w", w.ID, w.PageIndex, ErrCorrupt)
	}

	pts, err := codec.Decode(w.Data)
	if err != nil {
		return nil, fmt.Errorf("stroke %q: %w: %w", w.ID, ErrCorrupt, err)
	}

	s := &document.Stroke{
		ID:         w.ID,
		PageIndex:  w.PageIndex,
		StyleRef:   style.DefaultName,
		Overrides:  overrideFromWire(w.Overrides),
		BBox:       bbox,
		PointCount: len(pts),
		Pts:        w.Data,
	}
	if w.Style != "" {
		s.StyleRef = style.NormalizeName(w.Style)
	}
	if w.Transform != nil {
		m, ok := ink.MatrixFromSlice(w.Transform)
		if !ok {
			return nil, fmt.Errorf("stroke %q: transform %v: %w", w.ID, w.Transform, ErrCorrupt)
		}
		s.Transform = &m
	}
	if w.GrainAnchor != nil {
		if len(w.GrainAnchor) != 2 {
			return nil, fmt.Errorf("stroke %q: grain anchor %v: %w", w.ID, w.GrainAnchor, ErrCorrupt)
		}
		s.GrainAnchor = &ink.Point{X: w.GrainAnchor[0], Y: w.GrainAnchor[1]}
	}
	return s, nil
}

func ptr[T any](v T) *T {
	return &v
}

func unlessDefault(v, def float64) *float64 {
	if v == def {
		return nil
	}
	return &v
}

func setIf(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
