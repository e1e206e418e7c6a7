package prismal

import (
	"errors"
	"fmt"
	"math"
)

// ErrTooFewPoints is returned when a closed path is requested over fewer than
// three points.
var ErrTooFewPoints = errors.New("prismal: closing path needs at least 3 points")

// InvariantError reports a broken precondition inside the library.
// It is raised with panic, never returned: valid clamped configuration can
// not produce it, so seeing one means a caller handed in unchecked data.
type InvariantError struct {
	Op  string
	Err error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("prismal: invariant violated in %s: %v", e.Op, e.Err)
}

func (e *InvariantError) Unwrap() error { return e.Err }

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo moves to a point without drawing.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Path represents a vector path.
type Path struct {
	elements []PathElement
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		elements: make([]PathElement, 0, 8),
	}
}

// MoveTo moves to a point without drawing.
func (p *Path) MoveTo(pt Point) {
	p.elements = append(p.elements, MoveTo{Point: pt})
}

// LineTo draws a line to a point.
func (p *Path) LineTo(pt Point) {
	p.elements = append(p.elements, LineTo{Point: pt})
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1, c2, pt Point) {
	p.elements = append(p.elements, CubicTo{Control1: c1, Control2: c2, Point: pt})
}

// Close closes the current subpath by drawing a line to the start point.
func (p *Path) Close() {
	p.elements = append(p.elements, Close{})
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// Closed reports whether the path ends with a Close element.
func (p *Path) Closed() bool {
	if len(p.elements) == 0 {
		return false
	}
	_, ok := p.elements[len(p.elements)-1].(Close)
	return ok
}

// Vertices returns the on-curve points of the path in drawing order.
// Control points and the implicit return of Close are not included.
func (p *Path) Vertices() []Point {
	points := make([]Point, 0, len(p.elements))
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			points = append(points, e.Point)
		case LineTo:
			points = append(points, e.Point)
		case CubicTo:
			points = append(points, e.Point)
		}
	}
	return points
}

// Bounds returns the bounding box of every point of the path, control points
// included. An empty path has a zero Rect.
func (p *Path) Bounds() Rect {
	first := true
	var minX, minY, maxX, maxY float64
	add := func(pt Point) {
		if first {
			minX, maxX, minY, maxY = pt.X, pt.X, pt.Y, pt.Y
			first = false
			return
		}
		minX = math.Min(minX, pt.X)
		maxX = math.Max(maxX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxY = math.Max(maxY, pt.Y)
	}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			add(e.Point)
		case LineTo:
			add(e.Point)
		case CubicTo:
			add(e.Control1)
			add(e.Control2)
			add(e.Point)
		}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Clone creates a deep copy of the path.
func (p *Path) Clone() *Path {
	result := NewPath()
	result.elements = make([]PathElement, len(p.elements))
	copy(result.elements, p.elements)
	return result
}

// ClosingPath builds a path that moves to points[0], draws straight lines to
// every following point and closes back to points[0].
// It returns ErrTooFewPoints when given fewer than three points.
func ClosingPath(points []Point) (*Path, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(points))
	}

	p := NewPath()
	p.MoveTo(points[0])
	for _, pt := range points[1:] {
		p.LineTo(pt)
	}
	p.Close()
	return p, nil
}

// mustClosingPath is ClosingPath for callers that guarantee the precondition.
func mustClosingPath(op string, points []Point) *Path {
	p, err := ClosingPath(points)
	if err != nil {
		panic(&InvariantError{Op: op, Err: err})
	}
	return p
}

// RegularPolygonPath returns the closed outline of a regular polygon.
//
// The caller must pass vertexCount >= 3 and distance > 0; RenderConfig clamps
// vertex counts so the renderer always satisfies this. Violating the
// precondition panics with an *InvariantError.
func RegularPolygonPath(vertexCount int, center Point, distance float64) *Path {
	return mustClosingPath("RegularPolygonPath", CornerPoints(vertexCount, center, distance))
}

// CirclePath returns a full circle around center built from four cubic
// Bezier arcs. The path starts at the top of the circle (center.Y + radius),
// matching vertex 0 of CornerPoints.
func CirclePath(center Point, radius float64) *Path {
	// Magic constant for circle approximation with cubic Beziers
	const k = 0.5522847498307936 // 4/3 * (sqrt(2) - 1)
	cx, cy, r := center.X, center.Y, radius
	offset := r * k

	p := NewPath()
	p.MoveTo(Pt(cx, cy+r))
	p.CubicTo(Pt(cx+offset, cy+r), Pt(cx+r, cy+offset), Pt(cx+r, cy))
	p.CubicTo(Pt(cx+r, cy-offset), Pt(cx+offset, cy-r), Pt(cx, cy-r))
	p.CubicTo(Pt(cx-offset, cy-r), Pt(cx-r, cy-offset), Pt(cx-r, cy))
	p.CubicTo(Pt(cx-r, cy+offset), Pt(cx-offset, cy+r), Pt(cx, cy+r))
	p.Close()
	return p
}
