// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package svg provides a surface that writes an SVG document with one path
// element per paint call.
//
// Importing the package registers the "svg" backend.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/gogpu/prismal"
	"github.com/gogpu/prismal/surface"
)

// ContentType is the MIME type of encoded documents.
const ContentType = "image/svg+xml"

func init() {
	surface.Register("svg", 100, []string{"svg"}, func(opts surface.Options) (surface.Surface, error) {
		return New(opts)
	}, nil)
}

// Surface accumulates SVG elements in paint order.
type Surface struct {
	width, height int
	title         string
	body          bytes.Buffer
	elements      int
}

// New creates an empty SVG surface.
func New(opts surface.Options) (*Surface, error) {
	if err := surface.CheckSize(opts); err != nil {
		return nil, err
	}
	return &Surface{width: opts.Width, height: opts.Height, title: opts.Title}, nil
}

// Width returns the document width in user units.
func (s *Surface) Width() int { return s.width }

// Height returns the document height in user units.
func (s *Surface) Height() int { return s.height }

// Elements returns the number of shapes written so far.
func (s *Surface) Elements() int { return s.elements }

// ContentType implements surface.Surface.
func (s *Surface) ContentType() string { return ContentType }

// Clear drops every element painted so far and paints a full-size
// background rectangle.
func (s *Surface) Clear(c prismal.HSBA) {
	s.body.Reset()
	s.elements = 0
	fmt.Fprintf(&s.body, "  <rect width=\"%d\" height=\"%d\"%s/>\n", s.width, s.height, paint("fill", c))
	s.elements++
}

// StrokePath implements prismal.Sink.
func (s *Surface) StrokePath(path *prismal.Path, style prismal.StrokeStyle) {
	d := PathData(path)
	if d == "" {
		return
	}
	fmt.Fprintf(&s.body, "  <path d=\"%s\" fill=\"none\"%s stroke-width=\"%s\" stroke-linejoin=\"round\"/>\n",
		d, paint("stroke", style.Color), num(style.Width))
	s.elements++
}

// FillPath implements prismal.Sink.
func (s *Surface) FillPath(path *prismal.Path, style prismal.FillStyle) {
	d := PathData(path)
	if d == "" {
		return
	}
	fmt.Fprintf(&s.body, "  <path d=\"%s\"%s/>\n", d, paint("fill", style.Color))
	s.elements++
}

// Encode writes the complete document.
func (s *Surface) Encode(w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(&buf, "<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">\n",
		s.width, s.height, s.width, s.height)
	if s.title != "" {
		buf.WriteString("  <title>")
		if err := xml.EscapeText(&buf, []byte(s.title)); err != nil {
			return fmt.Errorf("svg: escape title: %w", err)
		}
		buf.WriteString("</title>\n")
	}
	buf.Write(s.body.Bytes())
	buf.WriteString("</svg>\n")

	_, err := w.Write(buf.Bytes())
	return err
}

// PathData converts path into SVG path data. An empty path yields "".
func PathData(path *prismal.Path) string {
	if path == nil {
		return ""
	}
	var b strings.Builder
	for _, elem := range path.Elements() {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		switch e := elem.(type) {
		case prismal.MoveTo:
			b.WriteString("M" + pt(e.Point))
		case prismal.LineTo:
			b.WriteString("L" + pt(e.Point))
		case prismal.CubicTo:
			b.WriteString("C" + pt(e.Control1) + " " + pt(e.Control2) + " " + pt(e.Point))
		case prismal.Close:
			b.WriteString("Z")
		}
	}
	return b.String()
}

// paint renders a color attribute plus its opacity when not opaque.
func paint(attr string, c prismal.HSBA) string {
	n := color.NRGBAModel.Convert(c.Color()).(color.NRGBA)
	out := fmt.Sprintf(" %s=\"#%02x%02x%02x\"", attr, n.R, n.G, n.B)
	if n.A < 255 {
		out += fmt.Sprintf(" %s-opacity=\"%s\"", attr, strconv.FormatFloat(float64(n.A)/255, 'f', 3, 64))
	}
	return out
}

func pt(p prismal.Point) string {
	return num(p.X) + "," + num(p.Y)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
