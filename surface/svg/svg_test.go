// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package svg

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/gogpu/prismal"
	"github.com/gogpu/prismal/surface"
)

func TestPathData(t *testing.T) {
	tests := []struct {
		name string
		path *prismal.Path
		want string
	}{
		{"nil", nil, ""},
		{"empty", prismal.NewPath(), ""},
		{
			name: "square",
			path: func() *prismal.Path {
				p, _ := prismal.ClosingPath([]prismal.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}})
				return p
			}(),
			want: "M0,0 L10,0 L10,10 L0,10 Z",
		},
		{
			name: "cubic",
			path: func() *prismal.Path {
				p := prismal.NewPath()
				p.MoveTo(prismal.Pt(0, 0))
				p.CubicTo(prismal.Pt(1, 2), prismal.Pt(3, 4), prismal.Pt(5.5, 6))
				return p
			}(),
			want: "M0,0 C1,2 3,4 5.5,6",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PathData(tt.path); got != tt.want {
				t.Errorf("PathData() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPaintCalls(t *testing.T) {
	s, err := New(surface.DefaultOptions(100, 80))
	if err != nil {
		t.Fatal(err)
	}

	tri := prismal.RegularPolygonPath(3, prismal.Pt(50, 40), 20)
	s.StrokePath(tri, prismal.StrokeStyle{Color: prismal.White, Width: 2})
	s.FillPath(tri, prismal.FillStyle{Color: prismal.HSBA{H: 0, S: 1, B: 1, A: 0.5}})
	s.FillPath(prismal.NewPath(), prismal.FillStyle{Color: prismal.White})

	if s.Elements() != 2 {
		t.Fatalf("Elements() = %d, want 2", s.Elements())
	}

	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`width="100" height="80" viewBox="0 0 100 80"`,
		`<title>prismal</title>`,
		`fill="none" stroke="#ffffff" stroke-width="2"`,
		`fill="#ff0000" fill-opacity="0.502"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}

	// The document must be well formed.
	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		_, err := dec.Token()
		if err != nil {
			if err.Error() != "EOF" {
				t.Fatalf("invalid XML: %v", err)
			}
			break
		}
	}
}

func TestClearResetsBody(t *testing.T) {
	s, _ := New(surface.DefaultOptions(10, 10))
	s.FillPath(prismal.RegularPolygonPath(4, prismal.Pt(5, 5), 3), prismal.FillStyle{Color: prismal.White})
	s.Clear(prismal.Black)

	if s.Elements() != 1 {
		t.Fatalf("Elements() = %d, want only the background", s.Elements())
	}
	var buf bytes.Buffer
	_ = s.Encode(&buf)
	if !strings.Contains(buf.String(), `<rect width="10" height="10" fill="#000000"/>`) {
		t.Errorf("missing background rect:\n%s", buf.String())
	}
}

func TestTitleEscaped(t *testing.T) {
	opts := surface.DefaultOptions(1, 1)
	opts.Title = "a<b & c"
	s, _ := New(opts)

	var buf bytes.Buffer
	_ = s.Encode(&buf)
	if !strings.Contains(buf.String(), "<title>a&lt;b &amp; c</title>") {
		t.Errorf("title not escaped:\n%s", buf.String())
	}
}

func TestRegistered(t *testing.T) {
	s, err := surface.NewByFormat("SVG", surface.DefaultOptions(4, 4))
	if err != nil {
		t.Fatalf("NewByFormat: %v", err)
	}
	if s.ContentType() != ContentType {
		t.Errorf("ContentType() = %q", s.ContentType())
	}
}

func TestRenderScene(t *testing.T) {
	cfg := prismal.NewRenderConfig()
	cfg.SetLayerCount(2)
	cfg.SetDrawingOptions(prismal.StrokePolygons | prismal.StrokeStructure)

	s, _ := New(surface.DefaultOptions(200, 200))
	stats := prismal.NewRenderer(prismal.WithSeed(3)).Render(cfg, surface.Bounds(s), s)

	want := 1 + stats.PolygonsDrawn + stats.StructuresDrawn
	if s.Elements() != want {
		t.Errorf("Elements() = %d, want background + %d polygons + %d structures",
			s.Elements(), stats.PolygonsDrawn, stats.StructuresDrawn)
	}
}
