// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package pdf provides a single-page vector PDF surface built on gofpdf.
//
// Importing the package registers the "pdf" backend. Surface units are PDF
// points with the origin in the top-left corner.
package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/gogpu/prismal"
	"github.com/gogpu/prismal/surface"
)

// ContentType is the MIME type of encoded documents.
const ContentType = "application/pdf"

func init() {
	surface.Register("pdf", 100, []string{"pdf"}, func(opts surface.Options) (surface.Surface, error) {
		return New(opts)
	}, nil)
}

// Surface draws onto one gofpdf page.
type Surface struct {
	doc           *gofpdf.Fpdf
	width, height int
	ops           int
}

// New creates a PDF surface with one page of opts.Width x opts.Height points.
func New(opts surface.Options) (*Surface, error) {
	if err := surface.CheckSize(opts); err != nil {
		return nil, err
	}

	doc := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: float64(opts.Width), Ht: float64(opts.Height)},
	})
	if opts.Title != "" {
		doc.SetTitle(opts.Title, true)
	}
	doc.SetCreator("prismal "+prismal.Version, true)
	doc.SetCreationDate(time.Unix(0, 0).UTC())
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(0, 0, 0)
	doc.AddPage()
	doc.SetLineJoinStyle("round")
	doc.SetLineCapStyle("round")

	if doc.Err() {
		return nil, fmt.Errorf("pdf: create document: %w", doc.Error())
	}
	return &Surface{doc: doc, width: opts.Width, height: opts.Height}, nil
}

// Width returns the page width in points.
func (s *Surface) Width() int { return s.width }

// Height returns the page height in points.
func (s *Surface) Height() int { return s.height }

// Operations returns the number of paint operations issued to the page.
func (s *Surface) Operations() int { return s.ops }

// ContentType implements surface.Surface.
func (s *Surface) ContentType() string { return ContentType }

// Clear paints a page-sized rectangle of c.
func (s *Surface) Clear(c prismal.HSBA) {
	s.setFill(c)
	s.doc.Rect(0, 0, float64(s.width), float64(s.height), "F")
	s.ops++
}

// StrokePath implements prismal.Sink.
func (s *Surface) StrokePath(path *prismal.Path, style prismal.StrokeStyle) {
	if style.Width <= 0 || !s.trace(path) {
		return
	}
	n := toNRGBA(style.Color)
	s.doc.SetDrawColor(int(n.R), int(n.G), int(n.B))
	s.doc.SetAlpha(float64(n.A)/255, "Normal")
	s.doc.SetLineWidth(style.Width)
	s.doc.DrawPath("D")
	s.ops++
}

// FillPath implements prismal.Sink.
func (s *Surface) FillPath(path *prismal.Path, style prismal.FillStyle) {
	if !s.trace(path) {
		return
	}
	s.setFill(style.Color)
	s.doc.DrawPath("F")
	s.ops++
}

func (s *Surface) setFill(c prismal.HSBA) {
	n := toNRGBA(c)
	s.doc.SetFillColor(int(n.R), int(n.G), int(n.B))
	s.doc.SetAlpha(float64(n.A)/255, "Normal")
}

// trace replays path into the current gofpdf path and reports whether
// anything was added.
func (s *Surface) trace(path *prismal.Path) bool {
	if path == nil || len(path.Elements()) == 0 {
		return false
	}
	for _, elem := range path.Elements() {
		switch e := elem.(type) {
		case prismal.MoveTo:
			s.doc.MoveTo(e.Point.X, e.Point.Y)
		case prismal.LineTo:
			s.doc.LineTo(e.Point.X, e.Point.Y)
		case prismal.CubicTo:
			s.doc.CurveBezierCubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case prismal.Close:
			s.doc.ClosePath()
		}
	}
	return true
}

// Encode writes the document. The surface cannot be painted on afterwards.
func (s *Surface) Encode(w io.Writer) error {
	if err := s.doc.Output(w); err != nil {
		return fmt.Errorf("pdf: output: %w", err)
	}
	return nil
}
