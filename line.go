package prismal

// Line is a segment described by its starting point and the vector leading to
// its end. The end point is always derived, so the two can never disagree.
type Line struct {
	Start  Point
	Vector Vec2
}

// NewLine creates a line from its starting and ending points.
func NewLine(start, end Point) Line {
	return Line{Start: start, Vector: end.Sub(start)}
}

// End returns the point at which the line ends.
func (l Line) End() Point {
	return l.Start.Add(l.Vector)
}

// MiddlePoints returns the points that split the line into the given number
// of equally long segments, excluding the line's start and end.
// If segments is less than 2, the result is empty.
func (l Line) MiddlePoints(segments int) []Point {
	if segments < 2 {
		return nil
	}

	points := make([]Point, 0, segments-1)
	for i := 1; i < segments; i++ {
		t := float64(i) / float64(segments)
		points = append(points, l.Start.Add(l.Vector.Mul(t)))
	}
	return points
}

// LinesConsecutivelyConnecting returns the lines connecting the given points
// in order. For three or more points the sequence is cyclic and ends with a
// line from the last back to the first point. Exactly two points yield a
// single line; fewer yield none.
func LinesConsecutivelyConnecting(points []Point) []Line {
	switch n := len(points); {
	case n < 2:
		return nil
	case n == 2:
		return []Line{NewLine(points[0], points[1])}
	default:
		lines := make([]Line, n)
		for i := range points {
			lines[i] = NewLine(points[i], points[(i+1)%n])
		}
		return lines
	}
}
