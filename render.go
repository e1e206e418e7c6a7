package prismal

import (
	"log/slog"
	"math/rand/v2"
)

// Stats summarizes a render pass.
type Stats struct {
	// LayersAttempted counts the layers whose polygons were laid out.
	LayersAttempted int

	// LayersDrawn counts the layers with at least one visible polygon.
	LayersDrawn int

	// PolygonsDrawn counts polygons that passed culling.
	PolygonsDrawn int

	// PolygonsCulled counts polygons skipped because they were out of bounds.
	PolygonsCulled int

	// StructuresDrawn counts structure fill and stroke paths.
	StructuresDrawn int

	// Terminated reports that the pass stopped early because a layer drew
	// nothing. TerminatedAt is the first layer that was not attempted.
	Terminated   bool
	TerminatedAt int
}

// Renderer drives render passes. It holds the random source for the
// random-color fallback, so a Renderer must not be shared between goroutines.
type Renderer struct {
	rand   *rand.Rand
	logger *slog.Logger
}

// NewRenderer creates a renderer.
func NewRenderer(opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.rand == nil {
		o.rand = clockRand()
	}
	return &Renderer{rand: o.rand, logger: o.logger}
}

// Render paints the configuration into bounds on sink.
//
// Sinks implementing Clearer are cleared with the style background first.
// Layers are visited from the center outward, or inward with ReverseOrder.
// Going outward, a layer without any visible polygon ends the pass.
func (r *Renderer) Render(cfg *RenderConfig, bounds Rect, sink Sink) Stats {
	if cl, ok := sink.(Clearer); ok {
		cl.Clear(cfg.Style().Background)
	}
	return r.walk(cfg, bounds, func(d Drawable) { d.Paint(sink) })
}

// Drawables computes the render pass without painting and returns its
// output in drawing order.
func (r *Renderer) Drawables(cfg *RenderConfig, bounds Rect) ([]Drawable, Stats) {
	var out []Drawable
	stats := r.walk(cfg, bounds, func(d Drawable) { out = append(out, d) })
	return out, stats
}

// LayerOrder returns the layer indices in the order a pass visits them.
func LayerOrder(layerCount int, reverse bool) []int {
	order := make([]int, max(layerCount, 0))
	for i := range order {
		if reverse {
			order[i] = layerCount - 1 - i
		} else {
			order[i] = i
		}
	}
	return order
}

func (r *Renderer) walk(cfg *RenderConfig, bounds Rect, emit func(Drawable)) Stats {
	opts := cfg.DrawingOptions()
	reverse := opts.Has(ReverseOrder)
	distance := PolygonCornerDistance(cfg, bounds)
	style := cfg.Style()
	logger := r.passLogger(cfg, bounds)

	stats := Stats{TerminatedAt: -1}
	previousLayerDrawn := true

	for _, layer := range LayerOrder(cfg.LayerCount(), reverse) {
		if !previousLayerDrawn && !reverse {
			stats.Terminated = true
			stats.TerminatedAt = layer
			logger.Debug("prismal: layer drew nothing, stopping", "next_layer", layer)
			break
		}
		stats.LayersAttempted++

		corners := StructureCorners(layer, cfg, bounds)

		if opts.Has(FillStructure) && len(corners) >= 3 {
			emit(Drawable{
				Path:      mustClosingPath("structure fill", corners),
				FillColor: style.StructureFill,
				Fill:      true,
				Layer:     layer,
				Center:    bounds.Center(),
				Structure: true,
			})
			stats.StructuresDrawn++
		}

		drawn, culled := r.drawLayer(layer, polygonCenters(layer, corners), cfg, bounds, distance, emit)
		previousLayerDrawn = drawn > 0
		stats.PolygonsDrawn += drawn
		stats.PolygonsCulled += culled
		if previousLayerDrawn {
			stats.LayersDrawn++
		}

		if opts.Has(StrokeStructure) && len(corners) >= 3 {
			emit(Drawable{
				Path:        mustClosingPath("structure stroke", corners),
				StrokeColor: style.StructureStroke,
				LineWidth:   style.StructureLineWidth,
				Stroke:      true,
				Layer:       layer,
				Center:      bounds.Center(),
				Structure:   true,
			})
			stats.StructuresDrawn++
		}

		logger.Debug("prismal: layer rendered",
			"layer", layer, "drawn", drawn, "culled", culled, "distance", distance)
	}

	return stats
}

// drawLayer emits the visible polygons of one layer and reports how many
// were drawn and culled.
func (r *Renderer) drawLayer(
	layer int, centers []Point, cfg *RenderConfig, bounds Rect, distance float64, emit func(Drawable),
) (drawn, culled int) {
	opts := cfg.DrawingOptions()
	layerCount := cfg.LayerCount()

	var strokeColor, fillColor *HSBA
	if s := cfg.StrokeScheme(); s != nil {
		c := ResolveColor(*s, layer, layerCount)
		strokeColor = &c
	}
	if s := cfg.FillScheme(); s != nil {
		c := ResolveColor(*s, layer, layerCount)
		fillColor = &c
	}

	for _, center := range centers {
		if !polygonInBounds(center, distance, bounds) {
			culled++
			continue
		}

		d := Drawable{
			Path:        r.polygonPath(cfg, center, distance),
			StrokeColor: r.colorOrRandom(strokeColor),
			FillColor:   r.colorOrRandom(fillColor),
			LineWidth:   cfg.Style().LineWidth,
			Stroke:      opts.Has(StrokePolygons),
			Fill:        opts.Has(FillPolygons),
			Layer:       layer,
			Center:      center,
		}
		emit(d)
		drawn++
	}
	return drawn, culled
}

// polygonInBounds tests a square of side distance centered on the polygon
// center against bounds.
func polygonInBounds(center Point, distance float64, bounds Rect) bool {
	return RectCentered(center, distance, distance).Intersects(bounds)
}

func (r *Renderer) polygonPath(cfg *RenderConfig, center Point, distance float64) *Path {
	if cfg.DrawingOptions().Has(ReplaceWithCircles) {
		return CirclePath(center, distance)
	}
	return RegularPolygonPath(cfg.PolygonVertexCount(), center, distance)
}

func (r *Renderer) colorOrRandom(c *HSBA) HSBA {
	if c != nil {
		return *c
	}
	return RandomHSBA(r.rand)
}
