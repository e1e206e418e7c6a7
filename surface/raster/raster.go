// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster provides an anti-aliased CPU surface backed by *image.RGBA.
//
// Importing the package registers the "raster" backend for the png, bmp and
// tiff formats.
package raster

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/vector"

	"github.com/gogpu/prismal"
	"github.com/gogpu/prismal/surface"
)

// Supported encodings.
const (
	FormatPNG  = "png"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
)

// Priority is the registry priority of the raster backend.
const Priority = 100

func init() {
	surface.Register("raster", Priority, []string{FormatPNG, FormatBMP, FormatTIFF},
		func(opts surface.Options) (surface.Surface, error) {
			return New(opts)
		}, nil)
}

// Surface is a CPU surface that renders into an *image.RGBA using
// golang.org/x/image/vector for coverage.
//
// Example:
//
//	s, _ := raster.New(surface.DefaultOptions(800, 600))
//	s.Clear(prismal.Black)
//	s.FillPath(prismal.CirclePath(prismal.Pt(400, 300), 100), prismal.FillStyle{Color: prismal.White})
//	_ = s.Encode(w)
type Surface struct {
	img    *image.RGBA
	z      *vector.Rasterizer
	format string

	// tolerance is the curve flattening tolerance for strokes
	tolerance float64
}

// New creates a raster surface. An empty opts.Format selects PNG.
func New(opts surface.Options) (*Surface, error) {
	if err := surface.CheckSize(opts); err != nil {
		return nil, err
	}

	format := opts.Format
	if format == "" {
		format = FormatPNG
	}
	switch format {
	case FormatPNG, FormatBMP, FormatTIFF:
	default:
		return nil, &surface.FormatNotSupportedError{Format: format}
	}

	return &Surface{
		img:       image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height)),
		z:         vector.NewRasterizer(opts.Width, opts.Height),
		format:    format,
		tolerance: prismal.DefaultTolerance,
	}, nil
}

// Width returns the surface width.
func (s *Surface) Width() int {
	return s.img.Rect.Dx()
}

// Height returns the surface height.
func (s *Surface) Height() int {
	return s.img.Rect.Dy()
}

// Format returns the encoding used by Encode.
func (s *Surface) Format() string {
	return s.format
}

// Image returns the underlying image.
// This is a direct reference, not a copy.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Snapshot returns a copy of the current surface contents.
func (s *Surface) Snapshot() *image.RGBA {
	result := image.NewRGBA(s.img.Rect)
	copy(result.Pix, s.img.Pix)
	return result
}

// Clear replaces every pixel with c.
func (s *Surface) Clear(c prismal.HSBA) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c.Color()), image.Point{}, draw.Src)
}

// FillPath fills path with the nonzero winding rule.
func (s *Surface) FillPath(path *prismal.Path, style prismal.FillStyle) {
	if path == nil || len(path.Elements()) == 0 {
		return
	}

	s.z.Reset(s.Width(), s.Height())
	for _, elem := range path.Elements() {
		switch e := elem.(type) {
		case prismal.MoveTo:
			s.z.MoveTo(f32(e.Point.X), f32(e.Point.Y))
		case prismal.LineTo:
			s.z.LineTo(f32(e.Point.X), f32(e.Point.Y))
		case prismal.CubicTo:
			s.z.CubeTo(
				f32(e.Control1.X), f32(e.Control1.Y),
				f32(e.Control2.X), f32(e.Control2.Y),
				f32(e.Point.X), f32(e.Point.Y))
		case prismal.Close:
			s.z.ClosePath()
		}
	}
	s.paint(style.Color)
}

// StrokePath outlines path with a line of style.Width.
//
// The outline is expanded into one quad per segment plus a round join at
// every vertex. All pieces are added with the same orientation so the
// rasterizer accumulates their coverage instead of cancelling overlaps.
func (s *Surface) StrokePath(path *prismal.Path, style prismal.StrokeStyle) {
	if path == nil || style.Width <= 0 {
		return
	}
	points := path.Flatten(s.tolerance)
	if len(points) < 2 {
		return
	}

	half := style.Width / 2
	s.z.Reset(s.Width(), s.Height())
	for i := 1; i < len(points); i++ {
		s.addSegment(points[i-1], points[i], half)
	}
	if half >= 0.5 {
		for _, p := range points {
			s.addDisc(p, half)
		}
	}
	s.paint(style.Color)
}

func (s *Surface) paint(c prismal.HSBA) {
	s.z.DrawOp = draw.Over
	s.z.Draw(s.img, s.img.Bounds(), image.NewUniform(c.Color()), image.Point{})
}

func (s *Surface) addSegment(a, b prismal.Point, half float64) {
	dir := b.Sub(a)
	if dir.IsZero() {
		return
	}
	n := dir.Normalize().Perp().Mul(half)
	s.addPolygon([]prismal.Point{a.Add(n), b.Add(n), b.Add(n.Neg()), a.Add(n.Neg())})
}

// discSegments is the number of edges used for round joins.
const discSegments = 16

func (s *Surface) addDisc(c prismal.Point, r float64) {
	pts := make([]prismal.Point, discSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / discSegments
		pts[i] = prismal.Pt(c.X+r*math.Cos(a), c.Y+r*math.Sin(a))
	}
	s.addPolygon(pts)
}

// addPolygon adds a closed polygon, reversed if needed so that every
// polygon has positive signed area.
func (s *Surface) addPolygon(pts []prismal.Point) {
	if signedArea(pts) < 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	s.z.MoveTo(f32(pts[0].X), f32(pts[0].Y))
	for _, p := range pts[1:] {
		s.z.LineTo(f32(p.X), f32(p.Y))
	}
	s.z.ClosePath()
}

func signedArea(pts []prismal.Point) float64 {
	var sum float64
	for i := 1; i+1 < len(pts); i++ {
		sum += pts[i].Sub(pts[0]).Cross(pts[i+1].Sub(pts[0]))
	}
	return sum / 2
}

// ContentType returns the MIME type of the configured format.
func (s *Surface) ContentType() string {
	return "image/" + s.format
}

// Encode writes the image in the configured format.
func (s *Surface) Encode(w io.Writer) error {
	switch s.format {
	case FormatBMP:
		return bmp.Encode(w, s.img)
	case FormatTIFF:
		return tiff.Encode(w, s.img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case FormatPNG:
		return png.Encode(w, s.img)
	}
	return fmt.Errorf("raster: unknown format %q", s.format)
}

func f32(v float64) float32 {
	return float32(v)
}
