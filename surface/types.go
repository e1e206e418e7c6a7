// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

// Options configures surface creation.
type Options struct {
	// Width is the surface width in pixels (points for PDF, cells for
	// terminal surfaces).
	Width int

	// Height is the surface height, in the same unit as Width.
	Height int

	// Format selects the encoding for backends that support several,
	// e.g. "png", "bmp" or "tiff" for raster surfaces.
	Format string

	// Title is embedded as document title where the format supports it.
	Title string

	// Color enables colored output for terminal surfaces.
	// Default: true
	Color bool
}

// DefaultOptions returns Options with default values.
func DefaultOptions(width, height int) Options {
	return Options{
		Width:  width,
		Height: height,
		Title:  "prismal",
		Color:  true,
	}
}
