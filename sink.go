package prismal

// StrokeStyle defines how a path is outlined.
type StrokeStyle struct {
	Color HSBA

	// Width is the line width in target units.
	Width float64
}

// FillStyle defines how a path is filled.
type FillStyle struct {
	Color HSBA
}

// Sink receives the paint calls of a render pass in drawing order.
// Implementations must not retain the path beyond the call unless they copy
// it; the renderer never reuses paths, but other callers may.
type Sink interface {
	// StrokePath outlines path.
	StrokePath(path *Path, style StrokeStyle)

	// FillPath fills the area enclosed by path.
	FillPath(path *Path, style FillStyle)
}

// Clearer is implemented by sinks that can paint a background.
// The renderer clears before the first layer when the sink supports it.
type Clearer interface {
	Clear(c HSBA)
}

// SinkFunc adapts a pair of functions to the Sink interface. Nil functions
// discard their calls.
type SinkFunc struct {
	Stroke func(path *Path, style StrokeStyle)
	Fill   func(path *Path, style FillStyle)
}

// StrokePath implements Sink.
func (f SinkFunc) StrokePath(path *Path, style StrokeStyle) {
	if f.Stroke != nil {
		f.Stroke(path, style)
	}
}

// FillPath implements Sink.
func (f SinkFunc) FillPath(path *Path, style FillStyle) {
	if f.Fill != nil {
		f.Fill(path, style)
	}
}

// MultiSink fans every call out to each sink in order.
type MultiSink []Sink

// StrokePath implements Sink.
func (m MultiSink) StrokePath(path *Path, style StrokeStyle) {
	for _, s := range m {
		s.StrokePath(path, style)
	}
}

// FillPath implements Sink.
func (m MultiSink) FillPath(path *Path, style FillStyle) {
	for _, s := range m {
		s.FillPath(path, style)
	}
}

// Clear implements Clearer for every member that supports it.
func (m MultiSink) Clear(c HSBA) {
	for _, s := range m {
		if cl, ok := s.(Clearer); ok {
			cl.Clear(c)
		}
	}
}
