package prismal

import "math"

// PolygonCornerDistance returns the radial step between consecutive layers,
// which is also the corner distance of every drawn polygon:
//
//	scale * (min(width, height) / 2) / layerCount
//
// Multiples of it up to the layer count stay within the shorter half-edge of
// bounds when scale is 1.
func PolygonCornerDistance(cfg *RenderConfig, bounds Rect) float64 {
	shorter := math.Min(math.Abs(bounds.Width), math.Abs(bounds.Height)) / 2
	return cfg.Scale() * shorter / float64(cfg.LayerCount())
}

// StructureCorners returns the corners of the structure polygon of the given
// layer. Layer 0 collapses to the single center of bounds.
func StructureCorners(layerIndex int, cfg *RenderConfig, bounds Rect) []Point {
	return CornerPoints(
		cfg.StructureVertexCount(),
		bounds.Center(),
		float64(layerIndex)*PolygonCornerDistance(cfg, bounds),
	)
}

// PolygonCenters returns the centers of all polygons of the given layer.
func PolygonCenters(layerIndex int, cfg *RenderConfig, bounds Rect) []Point {
	return polygonCenters(layerIndex, StructureCorners(layerIndex, cfg, bounds))
}

// polygonCenters interleaves each structure corner with the points that
// split its outgoing edge into layerIndex segments, walking around the
// structure polygon in corner order.
func polygonCenters(layerIndex int, corners []Point) []Point {
	if len(corners) < 2 {
		return corners
	}

	edges := LinesConsecutivelyConnecting(corners)
	perEdge := max(layerIndex-1, 0)
	centers := make([]Point, 0, len(corners)*(1+perEdge))
	for i, corner := range corners {
		centers = append(centers, corner)
		if i < len(edges) {
			centers = append(centers, edges[i].MiddlePoints(layerIndex)...)
		}
	}
	return centers
}
