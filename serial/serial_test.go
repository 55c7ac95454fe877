package serial

import (
	"errors"
	"reflect"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/go-json-experiment/json"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/codec"
	"github.com/gogpu/ink/document"
	"github.com/gogpu/ink/style"
)

var testTime = time.Date(2026, 3, 14, 15, 9, 26, 535e6, time.UTC)

func testClock() time.Time { return testTime }

// ptsOfLen returns valid encoded points exactly n bytes long.
func ptsOfLen(n int) string {
	if n%2 == 1 {
		return "0" + strings.Repeat(";1", (n-1)/2)
	}
	return "10" + strings.Repeat(";1", (n-2)/2)
}

func strokeWithPts(id, pts string) *document.Stroke {
	return &document.Stroke{
		ID:         id,
		StyleRef:   style.DefaultName,
		BBox:       ink.Rect{Max: ink.Pt(10, 10)},
		PointCount: codec.Count(pts),
		Pts:        pts,
	}
}

func docWithTotal(sizes ...int) *document.Document {
	doc := document.New(document.WithClock(testClock))
	for i, n := range sizes {
		doc.AddStroke(strokeWithPts(string(rune('a'+i)), ptsOfLen(n)))
	}
	return doc
}

func wireFields(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	return m
}

func TestPtsOfLen(t *testing.T) {
	for _, n := range []int{1, 2, 9, 10, 5000} {
		p := ptsOfLen(n)
		if len(p) != n {
			t.Errorf("len(ptsOfLen(%d)) = %d", n, len(p))
		}
		if _, err := codec.Decode(p); err != nil {
			t.Errorf("ptsOfLen(%d) does not decode: %v", n, err)
		}
	}
}

func richDocument() *document.Document {
	fountain := style.Builtin()
	fountain.Kind = style.Fountain
	fountain.Color = "navy"
	fountain.NibAngle = style.Float(0.7)
	fountain.Grain = style.Float(0.2)
	fountain.TiltSensitivity = 0.4

	doc := document.New(
		document.WithClock(testClock),
		document.WithAppVersion("1.2.3"),
		document.WithStyles(map[string]style.PenStyle{"ink": fountain}),
	)
	doc.Viewport = document.Viewport{X: 10, Y: -5, Zoom: 2.5}
	doc.LayoutDirection = document.Horizontal
	doc.RenderPipeline = "gpu"

	custom := document.DefaultPageSettings()
	custom.Orientation = document.Landscape
	custom.PaperType = document.Lined
	custom.LineSpacing = 24
	custom.Margins.Left = 96
	doc.PageDefaults = &custom
	doc.AddPage()

	pts := []ink.StrokePoint{
		{X: 100, Y: 200, Pressure: 0.5, TiltX: 10, Timestamp: 1000},
		{X: 110, Y: 205, Pressure: 0.6, TiltX: 12, Timestamp: 1016},
	}
	enc := codec.Encode(pts)

	m := ink.Translate(5, 5).Multiply(ink.Rotate(0.25))
	anchor := ink.Pt(100, 200)
	doc.AddStroke(&document.Stroke{
		ID:          "s1",
		PageIndex:   1,
		StyleRef:    "ink",
		Overrides:   &style.Override{Width: style.Float(4), Color: ptr("#ff0000")},
		BBox:        ink.BoundsOf(pts),
		PointCount:  codec.Count(enc),
		Pts:         enc,
		Transform:   &m,
		GrainAnchor: &anchor,
	})
	doc.AddStroke(strokeWithPts("s2", enc))
	return doc
}

func TestRoundTrip(t *testing.T) {
	s := New(WithClock(testClock))
	doc := richDocument()

	data, err := s.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got.Version != document.CurrentVersion {
		t.Errorf("Version = %d", got.Version)
	}
	if !got.Meta.Created.Equal(doc.Meta.Created) || got.Meta.AppVersion != "1.2.3" {
		t.Errorf("Meta = %+v, want %+v", got.Meta, doc.Meta)
	}
	if !reflect.DeepEqual(got.Pages, doc.Pages) {
		t.Errorf("Pages = %+v, want %+v", got.Pages, doc.Pages)
	}
	if !reflect.DeepEqual(got.PageDefaults, doc.PageDefaults) {
		t.Errorf("PageDefaults = %+v, want %+v", got.PageDefaults, doc.PageDefaults)
	}
	if !reflect.DeepEqual(got.Styles, doc.Styles) {
		t.Errorf("Styles = %+v, want %+v", got.Styles, doc.Styles)
	}
	if !reflect.DeepEqual(got.Channels, doc.Channels) {
		t.Errorf("Channels = %v", got.Channels)
	}
	if got.Viewport != doc.Viewport || got.LayoutDirection != document.Horizontal || got.RenderPipeline != "gpu" {
		t.Errorf("view state = %+v %v %q", got.Viewport, got.LayoutDirection, got.RenderPipeline)
	}
	if len(got.Strokes) != len(doc.Strokes) {
		t.Fatalf("got %d strokes, want %d", len(got.Strokes), len(doc.Strokes))
	}
	for i := range doc.Strokes {
		if !reflect.DeepEqual(got.Strokes[i], doc.Strokes[i]) {
			t.Errorf("stroke %d = %+v, want %+v", i, got.Strokes[i], doc.Strokes[i])
		}
	}
}

func TestMarshal_OmitsDefaults(t *testing.T) {
	doc := document.New(document.WithClock(testClock))
	doc.AddStroke(strokeWithPts("a", "1,2"))
	data, err := New().Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}

	m := wireFields(t, data)
	for _, key := range []string{"ld", "rp", "pd", "z"} {
		if _, ok := m[key]; ok {
			t.Errorf("default field %q written", key)
		}
	}
	for _, key := range []string{"v", "m", "p", "vp", "ch", "s", "st"} {
		if _, ok := m[key]; !ok {
			t.Errorf("field %q missing", key)
		}
	}

	if vp := m["vp"].(map[string]any); vp["z"] != nil {
		t.Errorf("default zoom written: %v", vp)
	}

	page := m["p"].([]any)[0].(map[string]any)
	if len(page) != 1 {
		t.Errorf("default page written as %v, want only its id", page)
	}
	stroke := m["st"].([]any)[0].(map[string]any)
	for _, key := range []string{"pi", "s", "so", "tf", "ga"} {
		if _, ok := stroke[key]; ok {
			t.Errorf("default stroke field %q written", key)
		}
	}
}

func TestCompressionThreshold(t *testing.T) {
	tests := []struct {
		name       string
		sizes      []int
		compressed bool
	}{
		{"empty", nil, false},
		{"just below", []int{4999, 5000}, false},
		{"exactly at", []int{5000, 5000}, true},
		{"large", []int{5000, 5000, 5000}, true},
		{"single huge stroke", []int{20001}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			doc := docWithTotal(tt.sizes...)
			if got := s.ShouldCompress(doc); got != tt.compressed {
				t.Errorf("ShouldCompress = %v, want %v", got, tt.compressed)
			}

			data, err := s.Marshal(doc)
			if err != nil {
				t.Fatal(err)
			}
			m := wireFields(t, data)
			if _, ok := m["z"]; ok != tt.compressed {
				t.Errorf("z flag present = %v, want %v", ok, tt.compressed)
			}

			for i, raw := range m["st"].([]any) {
				d := raw.(map[string]any)["d"].(string)
				if tt.compressed == (d == doc.Strokes[i].Pts) {
					t.Errorf("stroke %d stored compressed = %v, want %v", i, d != doc.Strokes[i].Pts, tt.compressed)
				}
			}

			got := s.Unmarshal(data)
			if len(got.Strokes) != len(doc.Strokes) {
				t.Fatalf("got %d strokes", len(got.Strokes))
			}
			for i, st := range got.Strokes {
				if st.Pts != doc.Strokes[i].Pts {
					t.Errorf("stroke %d points not restored", i)
				}
				if st.PointCount != doc.Strokes[i].PointCount {
					t.Errorf("stroke %d PointCount = %d, want %d", i, st.PointCount, doc.Strokes[i].PointCount)
				}
			}
		})
	}
}

func TestCompressedIsTextSafe(t *testing.T) {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/="
	out := Compress(ptsOfLen(15_000))
	if out == "" {
		t.Fatal("empty output")
	}
	for i, r := range out {
		if !strings.ContainsRune(alphabet, r) {
			t.Fatalf("byte %d %q is not base64", i, r)
		}
	}
	if len(out) >= 15_000 {
		t.Errorf("compressed size %d, want smaller than input", len(out))
	}

	back, err := Decompress(out)
	if err != nil || back != ptsOfLen(15_000) {
		t.Errorf("Decompress = %d bytes, %v", len(back), err)
	}
}

func TestDecompress_Errors(t *testing.T) {
	for _, in := range []string{"not base64!", "aGVsbG8gd29ybGQ="} {
		if _, err := Decompress(in); !errors.Is(err, ErrCorrupt) {
			t.Errorf("Decompress(%q) error = %v, want ErrCorrupt", in, err)
		}
	}
}

func TestUnmarshal_FailsClosed(t *testing.T) {
	valid := `{"v":2,"m":{"c":1},"p":[{"i":"p"}],"vp":{"x":0,"y":0},"s":{},"st":[{"i":"a","b":[0,0,1,1],"n":1,"d":"1,1"}]}`
	tests := []struct {
		name string
		in   string
		err  error
	}{
		{"empty", "", ErrEmpty},
		{"blank", " \n\t ", ErrEmpty},
		{"garbage", "not json", ErrCorrupt},
		{"truncated", valid[:40], ErrCorrupt},
		{"array", "[1,2,3]", ErrCorrupt},
		{"null", "null", ErrUnsupportedVersion},
		{"future version", strings.Replace(valid, `"v":2`, `"v":3`, 1), ErrUnsupportedVersion},
		{"old version", strings.Replace(valid, `"v":2`, `"v":1`, 1), ErrUnsupportedVersion},
		{"bad bbox", strings.Replace(valid, `[0,0,1,1]`, `[5,5,1,1]`, 1), ErrCorrupt},
		{"short bbox", strings.Replace(valid, `[0,0,1,1]`, `[0,0]`, 1), ErrCorrupt},
		{"missing id", strings.Replace(valid, `"i":"a",`, ``, 1), ErrCorrupt},
		{"bad transform", strings.Replace(valid, `"n":1`, `"n":1,"tf":[1,2]`, 1), ErrCorrupt},
		{"undecompressable", strings.Replace(valid, `"st":`, `"z":true,"st":`, 1), ErrCorrupt},
		{"bad points", strings.Replace(valid, `"d":"1,1"`, `"d":"1,x;2;zz"`, 1), ErrCorrupt},
		{"empty point", strings.Replace(valid, `"d":"1,1"`, `"d":"1,1;;2"`, 1), ErrCorrupt},
		{"too many channels", strings.Replace(valid, `"d":"1,1"`, `"d":"1,1,1,1,1,1,1,1"`, 1), ErrCorrupt},
		{"compressed bad points", strings.Replace(strings.Replace(valid, `"st":`, `"z":true,"st":`, 1),
			`"d":"1,1"`, `"d":"`+Compress("1;x")+`"`, 1), ErrCorrupt},
	}

	s := New(WithClock(testClock), WithAppVersion("9"))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Decode([]byte(tt.in)); !errors.Is(err, tt.err) {
				t.Errorf("Decode error = %v, want %v", err, tt.err)
			}

			doc := s.Unmarshal([]byte(tt.in))
			if doc.Version != document.CurrentVersion {
				t.Errorf("Version = %d", doc.Version)
			}
			if len(doc.Pages) != 1 || len(doc.Strokes) != 0 {
				t.Errorf("fallback has %d pages, %d strokes", len(doc.Pages), len(doc.Strokes))
			}
			if _, ok := doc.Styles[style.DefaultName]; !ok {
				t.Error("fallback lacks the default style")
			}
			if !doc.Meta.Created.Equal(testTime.Truncate(time.Millisecond)) || doc.Meta.AppVersion != "9" {
				t.Errorf("fallback Meta = %+v", doc.Meta)
			}
		})
	}

	if doc, err := s.Decode([]byte(valid)); err != nil || len(doc.Strokes) != 1 {
		t.Fatalf("valid input rejected: %v", err)
	}
}

func TestDecode_Defaults(t *testing.T) {
	in := `{"v":2,"m":{"c":0},"p":[],"vp":{"x":3,"y":4},"s":{"pen":{"k":"pencil","c":"#000000","w":1.5}},` +
		`"st":[{"i":"a","s":"pen","b":[0,0,1,1],"n":99,"d":"1,1;1,1;1,1"}]}`
	doc, err := New().Decode([]byte(in))
	if err != nil {
		t.Fatal(err)
	}

	if doc.Viewport.Zoom != 1 || doc.Viewport.X != 3 {
		t.Errorf("Viewport = %+v, want zoom 1", doc.Viewport)
	}
	if len(doc.Pages) != 1 || doc.Pages[0].PageSettings != document.DefaultPageSettings() {
		t.Errorf("Pages = %+v, want one default page", doc.Pages)
	}
	if !reflect.DeepEqual(doc.Channels, document.DefaultChannels()) {
		t.Errorf("Channels = %v", doc.Channels)
	}
	if doc.LayoutDirection != document.Vertical {
		t.Errorf("LayoutDirection = %v", doc.LayoutDirection)
	}
	if _, ok := doc.Styles[style.DefaultName]; !ok {
		t.Error("default style not added")
	}
	pen := doc.Styles["pen"]
	if pen.Opacity != 1 || pen.PressureCurve != 1 {
		t.Errorf("pen opacity %v, pressure curve %v, want 1 and 1", pen.Opacity, pen.PressureCurve)
	}
	if got := doc.Strokes[0].PointCount; got != 3 {
		t.Errorf("PointCount = %d, want 3 recomputed from the points", got)
	}
}

func TestDecode_NormalizesStyleNames(t *testing.T) {
	nfd, nfc := "cafe\u0301", "caf\u00e9"
	in := `{"v":2,"m":{"c":0},"p":[],"vp":{"x":0,"y":0},"s":{"` + nfd + `":{"k":"brush","c":"red","w":3}},` +
		`"st":[{"i":"a","s":"` + nfd + `","b":[0,0,1,1],"n":1,"d":"1"}]}`
	doc, err := New().Decode([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := doc.Styles[nfc]; !ok {
		t.Errorf("styles = %v, want the NFC name", doc.Styles)
	}
	if got := doc.Strokes[0].StyleRef; got != nfc {
		t.Errorf("StyleRef = %q, want %q", got, nfc)
	}
}

func TestCompressedCache(t *testing.T) {
	s := New()
	doc := docWithTotal(6000, 6000)

	if _, err := s.Marshal(doc); err != nil {
		t.Fatal(err)
	}
	first := s.CacheStats()
	if first.Len != 2 || first.Misses != 2 || first.Hits != 0 {
		t.Errorf("after first save: %+v", first)
	}

	if _, err := s.Marshal(doc); err != nil {
		t.Fatal(err)
	}
	if st := s.CacheStats(); st.Hits != 2 || st.Len != 2 {
		t.Errorf("after second save: %+v, want 2 hits", st)
	}

	// An equal stroke under a new identity is not served from the cache.
	orig := doc.Strokes[0]
	clone := *orig
	doc.Strokes[0] = &clone
	if _, err := s.Marshal(doc); err != nil {
		t.Fatal(err)
	}
	if st := s.CacheStats(); st.Len != 3 {
		t.Errorf("cache Len = %d, want 3", st.Len)
	}
	runtime.KeepAlive(orig)

	s.ClearCache()
	if st := s.CacheStats(); st.Len != 0 {
		t.Errorf("Len after ClearCache = %d", st.Len)
	}
}

func TestCompressedCache_ReleasesCollectedStrokes(t *testing.T) {
	s := New()
	func() {
		doc := docWithTotal(6000, 6000)
		if _, err := s.Marshal(doc); err != nil {
			t.Fatal(err)
		}
	}()

	for range 200 {
		runtime.GC()
		if s.CacheStats().Len == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Errorf("cache still holds %d entries for unreachable strokes", s.CacheStats().Len)
}

func TestPackageLevel(t *testing.T) {
	doc := docWithTotal(12_000)
	data, err := Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	got := Unmarshal(data)
	if len(got.Strokes) != 1 || got.Strokes[0].Pts != doc.Strokes[0].Pts {
		t.Error("package-level round trip lost the stroke")
	}
}

func BenchmarkMarshalCompressed(b *testing.B) {
	s := New()
	doc := docWithTotal(5000, 5000, 5000, 5000)
	for b.Loop() {
		if _, err := s.Marshal(doc); err != nil {
			b.Fatal(err)
		}
	}
}
