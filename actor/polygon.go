package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Color is an RGB triple, each channel in [0, 255]
type Color struct {
	R, G, B float64
}

// Polygon is a convex shape defined by its vertices in counter-clockwise order.
// There is an edge between each pair of consecutive vertices, and one between
// the last vertex and the first.
//
// The centroid and area are never stored: they are derived from the vertices
// on every call.
type Polygon struct {
	points   []mgl64.Vec2
	Velocity mgl64.Vec2
	rotation float64
	Color    Color
}

// NewPolygon creates a polygon that takes ownership of points
func NewPolygon(points []mgl64.Vec2, velocity mgl64.Vec2, rotation float64, color Color) *Polygon {
	return &Polygon{
		points:   points,
		Velocity: velocity,
		rotation: rotation,
		Color:    color,
	}
}

// Len returns the number of vertices
func (p *Polygon) Len() int {
	return len(p.points)
}

// Points returns a copy of the vertices
func (p *Polygon) Points() []mgl64.Vec2 {
	points := make([]mgl64.Vec2, len(p.points))
	copy(points, p.points)

	return points
}

// Area uses the shoelace formula. An empty polygon has an area of 0.
func (p *Polygon) Area() float64 {
	n := len(p.points)
	if n == 0 {
		return 0.0
	}

	area := 0.0
	for i := 0; i < n; i++ {
		area += Cross(p.points[i], p.points[(i+1)%n])
	}

	return math.Abs(area) / 2.0
}

// Centroid returns the area-weighted center of the polygon.
// Polygons with less than 3 vertices return the zero vector.
func (p *Polygon) Centroid() mgl64.Vec2 {
	n := len(p.points)
	if n < 3 {
		return VecZero
	}

	var sum mgl64.Vec2
	signedArea := 0.0
	for i := 0; i < n; i++ {
		curr := p.points[i]
		next := p.points[(i+1)%n]
		shoelace := Cross(curr, next)
		sum = sum.Add(curr.Add(next).Mul(shoelace))
		signedArea += shoelace
	}

	// signedArea is twice the area, negative for clockwise vertices
	return sum.Mul(1.0 / (3.0 * signedArea))
}

// Translate moves every vertex by delta
func (p *Polygon) Translate(delta mgl64.Vec2) {
	for i := range p.points {
		p.points[i] = p.points[i].Add(delta)
	}
}

// Rotate rotates every vertex by angle around pivot
func (p *Polygon) Rotate(angle float64, pivot mgl64.Vec2) {
	rotation := mgl64.Rotate2D(angle)
	for i := range p.points {
		p.points[i] = rotation.Mul2x1(p.points[i].Sub(pivot)).Add(pivot)
	}
}

// SetCenter translates the polygon so that its centroid lands on target
func (p *Polygon) SetCenter(target mgl64.Vec2) {
	p.Translate(target.Sub(p.Centroid()))
}

// Rotation returns the absolute rotation of the polygon, in radians,
// relative to the vertices it was created with.
func (p *Polygon) Rotation() float64 {
	return p.rotation
}

// SetRotation turns the polygon to the absolute angle about its centroid.
// Calling it twice with the same angle leaves the vertices in place.
func (p *Polygon) SetRotation(angle float64) {
	p.Rotate(angle-p.rotation, p.Centroid())
	p.rotation = angle
}

