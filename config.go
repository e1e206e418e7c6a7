package prismal

import "math"

// Lower bounds enforced by the RenderConfig setters.
const (
	MinLayerCount  = 1
	MinScale       = 0.001
	MinVertexCount = 3
)

// Field identifies the RenderConfig property a Change refers to.
type Field uint8

// Fields of RenderConfig.
const (
	FieldLayerCount Field = iota
	FieldScale
	FieldStructureVertexCount
	FieldPolygonVertexCount
	FieldDrawingOptions
	FieldStrokeScheme
	FieldFillScheme
	FieldStyle
)

var fieldNames = [...]string{
	FieldLayerCount:           "layer-count",
	FieldScale:                "scale",
	FieldStructureVertexCount: "structure-vertex-count",
	FieldPolygonVertexCount:   "polygon-vertex-count",
	FieldDrawingOptions:       "drawing-options",
	FieldStrokeScheme:         "stroke-scheme",
	FieldFillScheme:           "fill-scheme",
	FieldStyle:                "style",
}

func (f Field) String() string {
	if int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return "unknown"
}

// Change is the notification sent to listeners after a setter ran.
type Change struct {
	Field Field
}

// Listener receives configuration change notifications.
type Listener func(Change)

// Style holds the stroke widths and colors that are not derived from color
// schemes.
type Style struct {
	// LineWidth is the stroke width of the layer polygons. Default: 1.0
	LineWidth float64

	// StructureLineWidth is the stroke width of structure outlines. Default: 1.0
	StructureLineWidth float64

	// StructureStroke colors structure outlines.
	StructureStroke HSBA

	// StructureFill colors filled structure polygons.
	StructureFill HSBA

	// Background is painted by sinks that support clearing.
	Background HSBA
}

// DefaultStyle returns thin white structure lines over a black background.
func DefaultStyle() Style {
	return Style{
		LineWidth:          1,
		StructureLineWidth: 1,
		StructureStroke:    White,
		StructureFill:      HSBA{H: 0, S: 0, B: 1, A: 0.1},
		Background:         Black,
	}
}

// RenderConfig holds everything a render pass reads.
//
// Values are clamped by the setters and can only change through them. Every
// setter call notifies the subscribed listeners exactly once, after the new
// value is stored. RenderConfig is not safe for concurrent use.
type RenderConfig struct {
	layerCount           int
	scale                float64
	structureVertexCount int
	polygonVertexCount   int
	options              DrawingOptions
	strokeScheme         *ColorScheme
	fillScheme           *ColorScheme
	style                Style

	listeners []subscription
	nextID    int
}

type subscription struct {
	id int
	fn Listener
}

// NewRenderConfig returns a configuration with the defaults: one layer,
// scale 1, triangles for both structure and polygons, stroked polygons and
// random colors.
func NewRenderConfig() *RenderConfig {
	return &RenderConfig{
		layerCount:           MinLayerCount,
		scale:                1,
		structureVertexCount: MinVertexCount,
		polygonVertexCount:   MinVertexCount,
		options:              DefaultDrawingOptions,
		style:                DefaultStyle(),
	}
}

// LayerCount returns the number of layers.
func (c *RenderConfig) LayerCount() int { return c.layerCount }

// Scale returns the radial scale factor.
func (c *RenderConfig) Scale() float64 { return c.scale }

// StructureVertexCount returns the vertex count of the structure polygons.
func (c *RenderConfig) StructureVertexCount() int { return c.structureVertexCount }

// PolygonVertexCount returns the vertex count of the drawn polygons.
func (c *RenderConfig) PolygonVertexCount() int { return c.polygonVertexCount }

// DrawingOptions returns the drawing flags.
func (c *RenderConfig) DrawingOptions() DrawingOptions { return c.options }

// StrokeScheme returns the stroke color scheme, or nil for random colors.
func (c *RenderConfig) StrokeScheme() *ColorScheme { return c.strokeScheme }

// FillScheme returns the fill color scheme, or nil for random colors.
func (c *RenderConfig) FillScheme() *ColorScheme { return c.fillScheme }

// Style returns the line widths and fixed colors.
func (c *RenderConfig) Style() Style { return c.style }

// SetLayerCount sets the number of layers, clamped to at least 1.
func (c *RenderConfig) SetLayerCount(n int) {
	c.layerCount = max(MinLayerCount, n)
	c.notify(FieldLayerCount)
}

// SetScale sets the radial scale factor, clamped to at least MinScale.
// NaN is treated as MinScale.
func (c *RenderConfig) SetScale(s float64) {
	if math.IsNaN(s) {
		s = MinScale
	}
	c.scale = math.Max(MinScale, s)
	c.notify(FieldScale)
}

// SetStructureVertexCount sets the structure polygon's vertex count, clamped
// to at least 3.
func (c *RenderConfig) SetStructureVertexCount(n int) {
	c.structureVertexCount = max(MinVertexCount, n)
	c.notify(FieldStructureVertexCount)
}

// SetPolygonVertexCount sets the drawn polygons' vertex count, clamped to at
// least 3.
func (c *RenderConfig) SetPolygonVertexCount(n int) {
	c.polygonVertexCount = max(MinVertexCount, n)
	c.notify(FieldPolygonVertexCount)
}

// SetDrawingOptions replaces the drawing flags.
func (c *RenderConfig) SetDrawingOptions(o DrawingOptions) {
	c.options = o
	c.notify(FieldDrawingOptions)
}

// SetStrokeScheme sets the stroke color scheme. Nil selects random colors.
// The scheme is copied.
func (c *RenderConfig) SetStrokeScheme(s *ColorScheme) {
	c.strokeScheme = copyScheme(s)
	c.notify(FieldStrokeScheme)
}

// SetFillScheme sets the fill color scheme. Nil selects random colors.
// The scheme is copied.
func (c *RenderConfig) SetFillScheme(s *ColorScheme) {
	c.fillScheme = copyScheme(s)
	c.notify(FieldFillScheme)
}

// SetStyle replaces line widths and fixed colors. Negative widths are
// clamped to 0.
func (c *RenderConfig) SetStyle(s Style) {
	s.LineWidth = math.Max(0, s.LineWidth)
	s.StructureLineWidth = math.Max(0, s.StructureLineWidth)
	c.style = s
	c.notify(FieldStyle)
}

// Subscribe registers l for change notifications and returns a function that
// removes it again. Listeners run synchronously in subscription order.
func (c *RenderConfig) Subscribe(l Listener) (unsubscribe func()) {
	c.nextID++
	id := c.nextID
	c.listeners = append(c.listeners, subscription{id: id, fn: l})
	return func() {
		for i, s := range c.listeners {
			if s.id == id {
				c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
				return
			}
		}
	}
}

// Clone returns a copy of the configuration without its listeners.
func (c *RenderConfig) Clone() *RenderConfig {
	out := *c
	out.strokeScheme = copyScheme(c.strokeScheme)
	out.fillScheme = copyScheme(c.fillScheme)
	out.listeners = nil
	out.nextID = 0
	return &out
}

func (c *RenderConfig) notify(f Field) {
	// Listeners may unsubscribe while being notified.
	subs := append([]subscription(nil), c.listeners...)
	for _, s := range subs {
		s.fn(Change{Field: f})
	}
}

func copyScheme(s *ColorScheme) *ColorScheme {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}
