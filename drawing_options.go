package prismal

import (
	"fmt"
	"strings"
)

// DrawingOptions is a set of independent drawing flags.
// Any combination is valid.
type DrawingOptions uint8

const (
	// ReverseOrder draws layers from the outermost inward. In this order an
	// empty layer never stops the pass.
	ReverseOrder DrawingOptions = 1 << iota

	// StrokePolygons outlines every polygon.
	StrokePolygons

	// StrokeStructure outlines each layer's structure polygon.
	StrokeStructure

	// FillPolygons fills every polygon.
	FillPolygons

	// FillStructure fills each layer's structure polygon.
	FillStructure

	// ReplaceWithCircles draws circles instead of regular polygons.
	ReplaceWithCircles
)

// DefaultDrawingOptions is the option set a new RenderConfig starts with.
const DefaultDrawingOptions = StrokePolygons

var drawingOptionNames = []struct {
	opt  DrawingOptions
	name string
}{
	{ReverseOrder, "reverse-order"},
	{StrokePolygons, "stroke-polygons"},
	{StrokeStructure, "stroke-structure"},
	{FillPolygons, "fill-polygons"},
	{FillStructure, "fill-structure"},
	{ReplaceWithCircles, "replace-with-circles"},
}

// Has reports whether every flag of opt is set.
func (o DrawingOptions) Has(opt DrawingOptions) bool {
	return o&opt == opt
}

// With returns o with the flags of opt set.
func (o DrawingOptions) With(opt DrawingOptions) DrawingOptions {
	return o | opt
}

// Without returns o with the flags of opt cleared.
func (o DrawingOptions) Without(opt DrawingOptions) DrawingOptions {
	return o &^ opt
}

// Toggle returns o with the flags of opt flipped.
func (o DrawingOptions) Toggle(opt DrawingOptions) DrawingOptions {
	return o ^ opt
}

// Names returns the names of the set flags in declaration order.
func (o DrawingOptions) Names() []string {
	var names []string
	for _, n := range drawingOptionNames {
		if o.Has(n.opt) {
			names = append(names, n.name)
		}
	}
	return names
}

// String joins the flag names with "|", or returns "none".
func (o DrawingOptions) String() string {
	names := o.Names()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// DrawingOptionNames lists every flag name ParseDrawingOptions accepts.
func DrawingOptionNames() []string {
	names := make([]string, len(drawingOptionNames))
	for i, n := range drawingOptionNames {
		names[i] = n.name
	}
	return names
}

// ParseDrawingOptions builds an option set from flag names such as
// "stroke-polygons". Underscores are accepted in place of dashes and
// matching is case-insensitive. Empty names are skipped.
func ParseDrawingOptions(names ...string) (DrawingOptions, error) {
	var o DrawingOptions
next:
	for _, raw := range names {
		name := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), "_", "-"))
		if name == "" {
			continue
		}
		for _, n := range drawingOptionNames {
			if n.name == name {
				o |= n.opt
				continue next
			}
		}
		return 0, fmt.Errorf("prismal: unknown drawing option %q", raw)
	}
	return o, nil
}
