package prismal

import "math"

// CornerPoints returns the corners of a regular polygon with the given vertex
// count, center and distance from the center to each corner.
//
// A non-positive vertex count yields no points. A single vertex or a
// non-positive distance yields only the center. Otherwise vertex 0 lies at
// center + (0, distance) and the remaining corners follow at ascending angle
// offsets of 2π/vertexCount, using sin for x and cos for y.
func CornerPoints(vertexCount int, center Point, distance float64) []Point {
	if vertexCount <= 0 {
		return nil
	}
	if vertexCount == 1 || distance <= 0 {
		return []Point{center}
	}

	stride := 2 * math.Pi / float64(vertexCount)
	points := make([]Point, vertexCount)
	for v := range points {
		a := stride * float64(v)
		points[v] = Point{
			X: center.X + distance*math.Sin(a),
			Y: center.Y + distance*math.Cos(a),
		}
	}
	return points
}
