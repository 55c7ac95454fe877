// Command inkdump prints a summary of a saved ink document.
//
//	inkdump [-v] [-points] file
//
// With -v the library's debug log is written to stderr. With -points every
// stroke's decoded points are listed.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/document"
	"github.com/gogpu/ink/serial"
	"github.com/gogpu/ink/style"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("inkdump", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		verbose = fs.Bool("v", false, "write debug log to stderr")
		points  = fs.Bool("points", false, "list decoded stroke points")
	)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: inkdump [-v] [-points] file")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	if *verbose {
		ink.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		defer ink.SetLogger(nil)
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "inkdump: %v\n", err)
		return 1
	}

	s := serial.New()
	doc, err := s.Decode(data)
	if err != nil {
		// Report why, then show what a host application would open.
		fmt.Fprintf(stderr, "inkdump: %v (loading as empty document)\n", err)
		doc = s.Empty()
	}

	dump(stdout, s, doc, *points)
	return 0
}

func dump(w io.Writer, s *serial.Serializer, doc *document.Document, withPoints bool) {
	fmt.Fprintf(w, "version:    %d\n", doc.Version)
	if !doc.Meta.Created.IsZero() {
		fmt.Fprintf(w, "created:    %s\n", doc.Meta.Created.Format(time.RFC3339))
	}
	if doc.Meta.AppVersion != "" {
		fmt.Fprintf(w, "app:        %s\n", doc.Meta.AppVersion)
	}
	fmt.Fprintf(w, "layout:     %s\n", doc.LayoutDirection)
	fmt.Fprintf(w, "viewport:   %g,%g zoom %g\n", doc.Viewport.X, doc.Viewport.Y, doc.Viewport.Zoom)
	fmt.Fprintf(w, "compressed: %t (%d point bytes, threshold %d)\n",
		s.ShouldCompress(doc), doc.TotalPointBytes(), s.Threshold())

	fmt.Fprintf(w, "pages:      %d\n", len(doc.Pages))
	for i, p := range doc.Pages {
		fmt.Fprintf(w, "  [%d] %s %gx%g %s %s strokes=%d\n",
			i, p.ID, p.Width, p.Height, p.Orientation, p.PaperType, len(doc.StrokesOnPage(i)))
	}

	names := make([]string, 0, len(doc.Styles))
	for name := range doc.Styles {
		names = append(names, name)
	}
	slices.Sort(names)
	fmt.Fprintf(w, "styles:     %d\n", len(names))
	for _, name := range names {
		st := doc.Styles[name]
		fmt.Fprintf(w, "  %s: %s width=%g color=%s\n", name, st.Kind, st.Width, st.Color)
	}

	fmt.Fprintf(w, "strokes:    %d\n", len(doc.Strokes))
	for i, st := range doc.Strokes {
		resolved := doc.ResolveStyle(st)
		b := st.Bounds()
		fmt.Fprintf(w, "  [%d] %s page=%d style=%s points=%d color=%s bbox=(%.1f,%.1f)-(%.1f,%.1f)\n",
			i, st.ID, st.PageIndex, st.StyleRef, st.PointCount,
			styleColor(resolved), b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
		if !withPoints {
			continue
		}
		pts, err := st.WorldPoints()
		if err != nil {
			fmt.Fprintf(w, "      error: %v\n", err)
			continue
		}
		for _, p := range pts {
			fmt.Fprintf(w, "      %.1f,%.1f p=%.3f tilt=%.0f,%.0f tw=%.0f t=%d\n",
				p.X, p.Y, p.Pressure, p.TiltX, p.TiltY, p.Twist, p.Timestamp)
		}
	}
}

func styleColor(s style.PenStyle) string {
	light, dark := style.FormatColor(s.RGBA(false)), style.FormatColor(s.RGBA(true))
	if light == dark {
		return light
	}
	return light + "/" + dark
}
