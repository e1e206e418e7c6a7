package prismal

import "math"

// Rect is an axis-aligned rectangle given by its origin and size.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// R is a convenience function to create a Rect anchored at the origin.
func R(width, height float64) Rect {
	return Rect{Width: width, Height: height}
}

// RectCentered returns a rectangle of the given size centered on c.
func RectCentered(c Point, width, height float64) Rect {
	return Rect{
		X:      c.X - width/2,
		Y:      c.Y - height/2,
		Width:  width,
		Height: height,
	}
}

// MinX returns the smallest x coordinate of the rectangle.
func (r Rect) MinX() float64 { return math.Min(r.X, r.X+r.Width) }

// MaxX returns the largest x coordinate of the rectangle.
func (r Rect) MaxX() float64 { return math.Max(r.X, r.X+r.Width) }

// MinY returns the smallest y coordinate of the rectangle.
func (r Rect) MinY() float64 { return math.Min(r.Y, r.Y+r.Height) }

// MaxY returns the largest y coordinate of the rectangle.
func (r Rect) MaxY() float64 { return math.Max(r.Y, r.Y+r.Height) }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Empty reports whether the rectangle encloses no area.
func (r Rect) Empty() bool {
	return r.Width == 0 || r.Height == 0
}

// Intersects reports whether r and s share a region of positive area.
// Rectangles that merely touch along an edge do not intersect, and an empty
// rectangle intersects nothing.
func (r Rect) Intersects(s Rect) bool {
	if r.Empty() || s.Empty() {
		return false
	}
	return r.MinX() < s.MaxX() && s.MinX() < r.MaxX() &&
		r.MinY() < s.MaxY() && s.MinY() < r.MaxY()
}
