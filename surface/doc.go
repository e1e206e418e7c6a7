// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface provides encodable drawing targets for prismal.
//
// A Surface is a prismal.Sink that owns its pixels or vector commands and can
// encode them to a writer. Concrete surfaces live in sub-packages and
// register themselves by name:
//
//   - raster: anti-aliased *image.RGBA, encoded as PNG, BMP or TIFF
//   - svg: one SVG path element per paint call
//   - pdf: a single vector PDF page
//   - braille: terminal text drawn with braille cells
//
// # Registry
//
// Sub-packages register their backends in init, so importing them is enough:
//
//	import (
//	    "github.com/gogpu/prismal/surface"
//	    _ "github.com/gogpu/prismal/surface/raster"
//	)
//
//	s, err := surface.NewByFormat("png", surface.DefaultOptions(800, 800))
//
// # Usage
//
//	stats, err := surface.Render(w, "svg", surface.DefaultOptions(800, 800), cfg, renderer)
package surface
