package prismal

import "math"

// DefaultTolerance is the maximum distance from the curve used by sinks that
// flatten paths into polylines.
const DefaultTolerance = 0.1

// Flatten converts the path into a polyline made of straight segments only.
// Curves are subdivided until no control point lies further than tolerance
// from the chord. A Close element appends the subpath's start point again.
// A non-positive tolerance falls back to DefaultTolerance.
func (p *Path) Flatten(tolerance float64) []Point {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	var points []Point
	var current, start Point

	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			current = e.Point
			start = e.Point
			points = append(points, current)

		case LineTo:
			current = e.Point
			points = append(points, current)

		case CubicTo:
			flattenCubicRec(current, e.Control1, e.Control2, e.Point, tolerance, 0, &points)
			current = e.Point

		case Close:
			if len(points) > 0 {
				points = append(points, start)
			}
			current = start
		}
	}

	return points
}

// maxFlattenDepth bounds the recursion for degenerate or huge curves.
const maxFlattenDepth = 16

// flattenCubicRec recursively subdivides a cubic Bezier curve.
func flattenCubicRec(p0, p1, p2, p3 Point, tolerance float64, depth int, points *[]Point) {
	// Calculate the distance from control points to the line p0-p3
	d1 := distanceToLine(p1, p0, p3)
	d2 := distanceToLine(p2, p0, p3)
	dist := math.Max(d1, d2)

	if dist < tolerance || depth >= maxFlattenDepth {
		*points = append(*points, p3)
		return
	}

	// Subdivide the curve using de Casteljau's algorithm
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)

	flattenCubicRec(p0, q0, r0, s, tolerance, depth+1, points)
	flattenCubicRec(s, r1, q2, p3, tolerance, depth+1, points)
}

// distanceToLine calculates the perpendicular distance from point p to line segment (a, b).
func distanceToLine(p, a, b Point) float64 {
	ab := b.Sub(a)
	abLen := ab.Length()

	if abLen < 1e-10 {
		// Line segment is a point
		return p.Distance(a)
	}

	// Project p onto the line
	ap := p.Sub(a)
	t := (ap.X*ab.X + ap.Y*ab.Y) / (abLen * abLen)

	if t < 0 {
		return p.Distance(a)
	}
	if t > 1 {
		return p.Distance(b)
	}

	closest := a.Add(ab.Mul(t))
	return p.Distance(closest)
}
