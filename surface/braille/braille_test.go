// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package braille

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/prismal"
	"github.com/gogpu/prismal/surface"
)

func plain(t *testing.T, w, h int) *Surface {
	t.Helper()
	s, err := New(surface.Options{Width: w, Height: h})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestSize(t *testing.T) {
	s := plain(t, 10, 5)
	if s.Width() != 20 || s.Height() != 20 {
		t.Errorf("dots = %dx%d, want 20x20", s.Width(), s.Height())
	}
	if w, h := s.Cells(); w != 10 || h != 5 {
		t.Errorf("cells = %dx%d, want 10x5", w, h)
	}
	if _, err := New(surface.Options{}); !errors.Is(err, surface.ErrInvalidSize) {
		t.Errorf("err = %v, want ErrInvalidSize", err)
	}
}

func TestSetBits(t *testing.T) {
	tests := []struct {
		x, y int
		want rune
	}{
		{0, 0, '⠁'},
		{0, 3, '⡀'},
		{1, 0, '⠈'},
		{1, 3, '⢀'},
	}
	for _, tt := range tests {
		s := plain(t, 1, 1)
		s.Set(tt.x, tt.y, prismal.White)
		if got := []rune(s.String())[0]; got != tt.want {
			t.Errorf("Set(%d,%d) = %U, want %U", tt.x, tt.y, got, tt.want)
		}
		if !s.IsSet(tt.x, tt.y) {
			t.Errorf("IsSet(%d,%d) = false", tt.x, tt.y)
		}
	}
}

func TestSetOutOfRange(t *testing.T) {
	s := plain(t, 1, 1)
	s.Set(-1, 0, prismal.White)
	s.Set(2, 0, prismal.White)
	s.Set(0, 4, prismal.White)
	if s.String() != " " {
		t.Errorf("String() = %q, want blank", s.String())
	}
}

func TestFullCell(t *testing.T) {
	s := plain(t, 1, 1)
	for x := range DotsX {
		for y := range DotsY {
			s.Set(x, y, prismal.White)
		}
	}
	if s.String() != "⣿" {
		t.Errorf("String() = %q, want full braille cell", s.String())
	}
}

func TestStrokeLine(t *testing.T) {
	s := plain(t, 5, 1)
	p := prismal.NewPath()
	p.MoveTo(prismal.Pt(0, 0))
	p.LineTo(prismal.Pt(9, 0))
	s.StrokePath(p, prismal.StrokeStyle{Color: prismal.White, Width: 1})

	for x := range 10 {
		if !s.IsSet(x, 0) {
			t.Errorf("dot (%d,0) not set", x)
		}
	}
	if s.IsSet(0, 1) {
		t.Error("dot (0,1) should stay clear")
	}
}

func TestFillSquare(t *testing.T) {
	s := plain(t, 4, 2)
	square, _ := prismal.ClosingPath([]prismal.Point{{X: 2, Y: 2}, {X: 6, Y: 2}, {X: 6, Y: 6}, {X: 2, Y: 6}})
	s.FillPath(square, prismal.FillStyle{Color: prismal.White})

	for y := range 8 {
		for x := range 8 {
			inside := x >= 2 && x < 6 && y >= 2 && y < 6
			if got := s.IsSet(x, y); got != inside {
				t.Errorf("dot (%d,%d) = %v, want %v", x, y, got, inside)
			}
		}
	}
}

func TestClear(t *testing.T) {
	s := plain(t, 2, 2)
	s.FillPath(prismal.RegularPolygonPath(4, prismal.Pt(2, 4), 3), prismal.FillStyle{Color: prismal.White})
	s.Clear(prismal.Black)
	if strings.TrimSpace(s.String()) != "" {
		t.Errorf("String() after Clear = %q", s.String())
	}
}

func TestEncode(t *testing.T) {
	s := plain(t, 3, 2)
	s.Set(0, 0, prismal.White)

	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "⠁  \n   \n"; got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestColorOutputKeepsDots(t *testing.T) {
	s, _ := New(surface.DefaultOptions(2, 1))
	s.Set(0, 0, prismal.HSBA{H: 0, S: 1, B: 1, A: 1})
	if !strings.ContainsRune(s.String(), '⠁') {
		t.Errorf("colored output lost the dot: %q", s.String())
	}
}

func TestRenderScene(t *testing.T) {
	cfg := prismal.NewRenderConfig()
	cfg.SetLayerCount(4)
	cfg.SetStructureVertexCount(6)
	cfg.SetPolygonVertexCount(6)

	var buf bytes.Buffer
	stats, err := surface.Render(&buf, "txt", surface.Options{Width: 40, Height: 20}, cfg, prismal.NewRenderer(prismal.WithSeed(9)))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if stats.PolygonsDrawn == 0 {
		t.Fatal("nothing drawn")
	}
	if lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n"); len(lines) != 20 {
		t.Errorf("got %d lines, want 20", len(lines))
	}
	if !strings.ContainsFunc(buf.String(), func(r rune) bool { return r > 0x2800 && r <= 0x28ff }) {
		t.Error("output contains no braille dots")
	}
}

func TestClipSegment(t *testing.T) {
	tests := []struct {
		name   string
		a, b   prismal.Point
		ok     bool
		ca, cb prismal.Point
	}{
		{"inside", prismal.Pt(1, 1), prismal.Pt(5, 6), true, prismal.Pt(1, 1), prismal.Pt(5, 6)},
		{"crossing", prismal.Pt(-10, 5), prismal.Pt(30, 5), true, prismal.Pt(0, 5), prismal.Pt(20, 5)},
		{"diagonal", prismal.Pt(-5, -5), prismal.Pt(25, 25), true, prismal.Pt(0, 0), prismal.Pt(20, 20)},
		{"left of", prismal.Pt(-10, 0), prismal.Pt(-1, 20), false, prismal.Point{}, prismal.Point{}},
		{"below", prismal.Pt(0, 30), prismal.Pt(20, 25), false, prismal.Point{}, prismal.Point{}},
		{"single point", prismal.Pt(3, 3), prismal.Pt(3, 3), true, prismal.Pt(3, 3), prismal.Pt(3, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b, ok := clipSegment(tt.a, tt.b, 20, 20)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if !a.Approx(tt.ca, 1e-9) || !b.Approx(tt.cb, 1e-9) {
				t.Errorf("clip = %v-%v, want %v-%v", a, b, tt.ca, tt.cb)
			}
		})
	}
}

func TestStrokeHugeSegment(t *testing.T) {
	s := plain(t, 10, 5)
	across := prismal.NewPath()
	across.MoveTo(prismal.Pt(-1e12, 10.5))
	across.LineTo(prismal.Pt(1e12, 10.5))
	outside := prismal.NewPath()
	outside.MoveTo(prismal.Pt(1e12, 1e12))
	outside.LineTo(prismal.Pt(2e12, 3e12))
	for _, p := range []*prismal.Path{across, outside} {
		s.StrokePath(p, prismal.StrokeStyle{Color: prismal.White, Width: 1})
	}

	for x := range s.Width() {
		if !s.IsSet(x, 10) {
			t.Errorf("dot (%d, 10) not set", x)
		}
	}
	for y := range s.Height() {
		if y != 10 && s.IsSet(0, y) {
			t.Errorf("dot (0, %d) set", y)
		}
	}
}
