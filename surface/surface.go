// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"io"

	"github.com/gogpu/prismal"
)

// Surface is a drawing target that can be encoded.
//
// Surfaces are NOT thread-safe. Each surface should be used from a single
// goroutine, or external synchronization must be used.
type Surface interface {
	prismal.Sink
	prismal.Clearer

	// Width returns the surface width in target units.
	Width() int

	// Height returns the surface height in target units.
	Height() int

	// Encode writes the surface contents in the surface's format.
	Encode(w io.Writer) error

	// ContentType returns the MIME type Encode produces.
	ContentType() string
}

// Bounds returns the target rectangle matching the surface size.
func Bounds(s Surface) prismal.Rect {
	return prismal.R(float64(s.Width()), float64(s.Height()))
}

// Render draws cfg onto a new surface for format and encodes it to w.
func Render(
	w io.Writer, format string, opts Options, cfg *prismal.RenderConfig, r *prismal.Renderer,
) (prismal.Stats, error) {
	opts.Format = format
	s, err := NewByFormat(format, opts)
	if err != nil {
		return prismal.Stats{}, err
	}
	return Draw(w, s, cfg, r)
}

// Draw renders cfg onto s and encodes the result to w.
func Draw(w io.Writer, s Surface, cfg *prismal.RenderConfig, r *prismal.Renderer) (prismal.Stats, error) {
	stats := r.Render(cfg, Bounds(s), s)
	if err := s.Encode(w); err != nil {
		return stats, fmt.Errorf("surface: encode %s: %w", s.ContentType(), err)
	}
	return stats, nil
}
