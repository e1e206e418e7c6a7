// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package braille provides a terminal surface that draws with Unicode
// braille cells. Each cell holds a 2x4 grid of dots, so a surface of
// w x h cells exposes (2w) x (4h) drawing units.
//
// Importing the package registers the "braille" backend for the txt format.
package braille

import (
	"io"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gogpu/prismal"
	"github.com/gogpu/prismal/surface"
)

// Dots per cell.
const (
	DotsX = 2
	DotsY = 4
)

// ContentType is the MIME type of encoded output.
const ContentType = "text/plain; charset=utf-8"

func init() {
	surface.Register("braille", 100, []string{"txt"}, func(opts surface.Options) (surface.Surface, error) {
		return New(opts)
	}, nil)
}

// Surface is a braille dot canvas with one color per cell.
type Surface struct {
	w, h   int // in cells
	mask   [][]uint8
	colors [][]prismal.HSBA
	color  bool
}

// New creates a surface of opts.Width x opts.Height cells.
func New(opts surface.Options) (*Surface, error) {
	if err := surface.CheckSize(opts); err != nil {
		return nil, err
	}
	s := &Surface{w: opts.Width, h: opts.Height, color: opts.Color}
	s.reset()
	return s, nil
}

func (s *Surface) reset() {
	s.mask = make([][]uint8, s.h)
	s.colors = make([][]prismal.HSBA, s.h)
	for i := range s.mask {
		s.mask[i] = make([]uint8, s.w)
		s.colors[i] = make([]prismal.HSBA, s.w)
	}
}

// Width returns the width in dots.
func (s *Surface) Width() int { return s.w * DotsX }

// Height returns the height in dots.
func (s *Surface) Height() int { return s.h * DotsY }

// Cells returns the size in terminal cells.
func (s *Surface) Cells() (w, h int) { return s.w, s.h }

// ContentType implements surface.Surface.
func (s *Surface) ContentType() string { return ContentType }

// Clear removes every dot. The background is left to the terminal.
func (s *Surface) Clear(prismal.HSBA) {
	s.reset()
}

// dotBits maps a dot position inside a cell to its braille bit.
var dotBits = [DotsX][DotsY]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// Set turns on the dot at (x, y) with color c. Dots outside the surface are
// ignored.
func (s *Surface) Set(x, y int, c prismal.HSBA) {
	if x < 0 || y < 0 {
		return
	}
	cx, cy := x/DotsX, y/DotsY
	if cx >= s.w || cy >= s.h {
		return
	}
	s.mask[cy][cx] |= dotBits[x%DotsX][y%DotsY]
	s.colors[cy][cx] = c
}

// IsSet reports whether the dot at (x, y) is on.
func (s *Surface) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/DotsX >= s.w || y/DotsY >= s.h {
		return false
	}
	return s.mask[y/DotsY][x/DotsX]&dotBits[x%DotsX][y%DotsY] != 0
}

// StrokePath draws the outline of path one dot wide.
func (s *Surface) StrokePath(path *prismal.Path, style prismal.StrokeStyle) {
	if path == nil || style.Width <= 0 {
		return
	}
	points := path.Flatten(0.5)
	w, h := float64(s.Width()), float64(s.Height())
	for i := 1; i < len(points); i++ {
		a, b, ok := clipSegment(points[i-1], points[i], w, h)
		if !ok {
			continue
		}
		s.line(dot(a.X), dot(a.Y), dot(b.X), dot(b.Y), style.Color)
	}
}

// clipSegment clips the segment a-b to the rectangle [0,w]x[0,h] with the
// Liang-Barsky algorithm. It reports false when nothing is left.
func clipSegment(a, b prismal.Point, w, h float64) (prismal.Point, prismal.Point, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, a.X},
		{dx, w - a.X},
		{-dy, a.Y},
		{dy, h - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, b, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return a, b, false
			}
			t1 = min(t1, r)
		}
	}
	return a.Lerp(b, t0), a.Lerp(b, t1), true
}

// FillPath sets every dot whose center lies inside path, using the
// even-odd rule.
func (s *Surface) FillPath(path *prismal.Path, style prismal.FillStyle) {
	if path == nil {
		return
	}
	points := path.Flatten(0.5)
	if len(points) < 3 {
		return
	}

	bounds := path.Bounds()
	y0 := max(int(math.Floor(bounds.MinY())), 0)
	y1 := min(int(math.Ceil(bounds.MaxY())), s.Height()-1)
	var xs []float64
	for y := y0; y <= y1; y++ {
		sy := float64(y) + 0.5
		xs = xs[:0]
		for i := range points {
			a := points[i]
			b := points[(i+1)%len(points)]
			if a.Y == b.Y {
				continue
			}
			if (sy >= a.Y && sy < b.Y) || (sy >= b.Y && sy < a.Y) {
				t := (sy - a.Y) / (b.Y - a.Y)
				xs = append(xs, a.X+t*(b.X-a.X))
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			start := max(int(math.Ceil(xs[i]-0.5)), 0)
			end := min(int(math.Floor(xs[i+1]-0.5)), s.Width()-1)
			for x := start; x <= end; x++ {
				s.Set(x, y, style.Color)
			}
		}
	}
}

// line draws a segment with Bresenham's algorithm.
func (s *Surface) line(x0, y0, x1, y1 int, c prismal.HSBA) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		s.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Lines returns one string per cell row.
func (s *Surface) Lines() []string {
	out := make([]string, s.h)
	for y := range s.h {
		var b strings.Builder
		var run []rune
		var runColor prismal.HSBA
		flush := func() {
			if len(run) == 0 {
				return
			}
			b.WriteString(s.paint(string(run), runColor))
			run = run[:0]
		}
		for x := range s.w {
			r := ' '
			c := prismal.Transparent
			if m := s.mask[y][x]; m != 0 {
				r = rune(0x2800 + int(m))
				c = s.colors[y][x]
			}
			if c != runColor {
				flush()
				runColor = c
			}
			run = append(run, r)
		}
		flush()
		out[y] = b.String()
	}
	return out
}

func (s *Surface) paint(text string, c prismal.HSBA) string {
	if !s.color || c.A == 0 {
		return text
	}
	opaque := c
	opaque.A = 1
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hexRGB(opaque))).Render(text)
}

// String returns the rendered rows joined by newlines.
func (s *Surface) String() string {
	return strings.Join(s.Lines(), "\n")
}

// Encode writes the rendered rows, each terminated by a newline.
func (s *Surface) Encode(w io.Writer) error {
	var b strings.Builder
	for _, line := range s.Lines() {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func hexRGB(c prismal.HSBA) string {
	return c.RGBA().Hex()[:7]
}

// dot returns the index of the dot containing coordinate v.
func dot(v float64) int {
	return int(math.Floor(v))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
