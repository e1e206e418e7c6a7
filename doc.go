// Package prismal renders concentric layers of regular polygons.
//
// # Overview
//
// A drawing is described by a RenderConfig: how many layers to draw, the
// vertex count of the structure polygon that anchors each layer, the vertex
// count of the polygons drawn along it, a radial scale, a set of
// DrawingOptions and optional color schemes. Given a target rectangle, a
// Renderer turns the configuration into an ordered sequence of Drawables and
// paints them onto a Sink.
//
// # Quick Start
//
//	cfg := prismal.NewRenderConfig()
//	cfg.SetLayerCount(6)
//	cfg.SetStructureVertexCount(6)
//	cfg.SetFillScheme(prismal.Scheme(
//	    prismal.MustParseColor("#ff0000"),
//	    prismal.MustParseColor("#0000ff"),
//	))
//	cfg.SetDrawingOptions(prismal.StrokePolygons | prismal.FillPolygons)
//
//	rec := prismal.NewRecorder()
//	stats := prismal.NewRenderer(prismal.WithSeed(1)).Render(cfg, prismal.R(800, 800), rec)
//
// Concrete sinks for PNG, SVG, PDF and terminal output live in the surface
// sub-packages.
//
// # Geometry
//
// Layer 0 is a single polygon at the center of the target. Layer i places
// polygons on the corners of a structure polygon with corner distance
// i*d, where d = scale * min(width, height) / 2 / layerCount, and splits
// every structure edge into i segments with one more polygon at each split
// point. Every polygon has corner distance d.
//
// Corner 0 of a regular polygon lies at center + (0, distance); further
// corners follow at increasing angles, x from the sine and y from the cosine.
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// # Colors
//
// Colors are HSBA values in [0, 1]. A color scheme blends its inner and outer
// colors linearly per component across the layers. Without a scheme every
// polygon gets fresh random stroke and fill colors from the renderer's random
// source; use WithSeed or WithRand for reproducible output.
package prismal

// Version is the current version of the library
const Version = "0.3.0"
