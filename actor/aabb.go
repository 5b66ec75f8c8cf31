package actor

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r2"
)

// BoundingBox returns the smallest axis-aligned rectangle containing all points.
// An empty slice gives an empty rectangle.
func BoundingBox(points []mgl64.Vec2) r2.Rect {
	rect := r2.EmptyRect()
	for _, p := range points {
		rect = rect.AddPoint(r2.Point{X: p.X(), Y: p.Y()})
	}

	return rect
}

// Bounds returns the axis-aligned bounding box of the polygon
func (p *Polygon) Bounds() r2.Rect {
	return BoundingBox(p.points)
}

// Overlaps checks if two bounding boxes overlap. Touching boxes overlap.
func Overlaps(a, b r2.Rect) bool {
	return a.Intersects(b)
}
