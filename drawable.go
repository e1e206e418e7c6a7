package prismal

// Drawable is one unit of render output: a closed path with its resolved
// colors and the flags telling whether to stroke and fill it.
type Drawable struct {
	Path *Path

	StrokeColor HSBA
	FillColor   HSBA
	LineWidth   float64

	Stroke bool
	Fill   bool

	// Layer is the index of the layer the drawable belongs to.
	Layer int

	// Center is the polygon center, or the bounds center for structures.
	Center Point

	// Structure marks a layer's structure polygon rather than one of its
	// polygons.
	Structure bool
}

// Paint issues the drawable's calls to sink, stroke before fill.
func (d Drawable) Paint(sink Sink) {
	if d.Stroke {
		sink.StrokePath(d.Path, StrokeStyle{Color: d.StrokeColor, Width: d.LineWidth})
	}
	if d.Fill {
		sink.FillPath(d.Path, FillStyle{Color: d.FillColor})
	}
}
