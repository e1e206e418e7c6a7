package prismal

// Frame is the result of one render pass performed by a Driver.
type Frame struct {
	// Pass numbers frames from 1 in the order the driver produced them.
	Pass int

	Bounds     Rect
	Background HSBA
	Drawables  []Drawable
	Stats      Stats
}

// Paint clears sink (when it is a Clearer) and paints the frame onto it.
func (f Frame) Paint(sink Sink) {
	if cl, ok := sink.(Clearer); ok {
		cl.Clear(f.Background)
	}
	for _, d := range f.Drawables {
		d.Paint(sink)
	}
}

// PresentFunc receives every frame a Driver renders.
type PresentFunc func(Frame)

// Driver owns the render loop of a drawing surface: it subscribes to a
// RenderConfig and renders exactly one frame for every change notification
// and every resize. Frames are handed to the present callback synchronously.
type Driver struct {
	cfg         *RenderConfig
	renderer    *Renderer
	present     PresentFunc
	bounds      Rect
	pass        int
	last        Frame
	unsubscribe func()
}

// NewDriver creates a driver for cfg. Nothing is rendered until the first
// change, Resize or Redraw. A nil present callback only keeps the last frame.
func NewDriver(cfg *RenderConfig, renderer *Renderer, present PresentFunc) *Driver {
	if renderer == nil {
		renderer = NewRenderer()
	}
	d := &Driver{cfg: cfg, renderer: renderer, present: present}
	d.unsubscribe = cfg.Subscribe(func(Change) { d.Redraw() })
	return d
}

// Config returns the configuration the driver renders.
func (d *Driver) Config() *RenderConfig { return d.cfg }

// Bounds returns the current target rectangle.
func (d *Driver) Bounds() Rect { return d.bounds }

// Passes returns how many frames have been rendered.
func (d *Driver) Passes() int { return d.pass }

// LastFrame returns the most recent frame, or a zero Frame before the first
// pass.
func (d *Driver) LastFrame() Frame { return d.last }

// Resize sets the target rectangle to width x height at the origin and
// renders a frame.
func (d *Driver) Resize(width, height float64) Frame {
	d.bounds = R(width, height)
	return d.Redraw()
}

// Redraw renders a frame for the current configuration and bounds.
func (d *Driver) Redraw() Frame {
	drawables, stats := d.renderer.Drawables(d.cfg, d.bounds)
	d.pass++
	d.last = Frame{
		Pass:       d.pass,
		Bounds:     d.bounds,
		Background: d.cfg.Style().Background,
		Drawables:  drawables,
		Stats:      stats,
	}
	if d.present != nil {
		d.present(d.last)
	}
	return d.last
}

// SetRenderer replaces the renderer, e.g. to reseed the random colors, and
// renders a frame with it.
func (d *Driver) SetRenderer(r *Renderer) Frame {
	if r == nil {
		r = NewRenderer()
	}
	d.renderer = r
	return d.Redraw()
}

// Close stops listening to configuration changes.
func (d *Driver) Close() {
	if d.unsubscribe != nil {
		d.unsubscribe()
		d.unsubscribe = nil
	}
}
