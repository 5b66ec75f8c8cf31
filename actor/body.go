package actor

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r2"
)

// ReleaseFunc disposes of a body's kind tag once the body leaves the scene
type ReleaseFunc func(kind any)

// Body is a polygon with mass, moved by accumulated forces and impulses.
//
// A body with an infinite mass is static: forces and impulses divided by +Inf
// do not change its velocity, but SetVelocity and SetCentroid still move it.
type Body struct {
	poly *Polygon
	mass float64

	force   mgl64.Vec2
	impulse mgl64.Vec2

	removed bool

	// Opaque tag owned by the caller, never inspected by the physics
	kind     any
	release  ReleaseFunc
	released bool
}

// NewBody creates a body without kind tag
func NewBody(shape []mgl64.Vec2, mass float64, color Color) *Body {
	return NewBodyWithKind(shape, mass, color, nil, nil)
}

// NewBodyWithKind creates a body owning shape, tagged with kind.
// release is called with kind when the body is released, it may be nil.
//
// It panics if the shape has less than 3 vertices, encloses no area, or if the
// mass is not strictly positive.
func NewBodyWithKind(shape []mgl64.Vec2, mass float64, color Color, kind any, release ReleaseFunc) *Body {
	if len(shape) < 3 {
		panic(fmt.Sprintf("actor: a body needs at least 3 vertices, got %d", len(shape)))
	}
	if !(mass > 0) {
		panic(fmt.Sprintf("actor: body mass must be positive, got %v", mass))
	}

	poly := NewPolygon(shape, VecZero, 0.0, color)
	// A flat polygon has no centroid
	if !(poly.Area() > 0) {
		panic(fmt.Sprintf("actor: a body needs a non-zero area, got %v", poly.Area()))
	}

	return &Body{
		poly:    poly,
		mass:    mass,
		kind:    kind,
		release: release,
	}
}

// Tick integrates the body over dt, then clears the accumulated force and impulse.
//
// The position advances with the average of the old and new velocities, so an
// impulse applied this step already moves the body by half its effect.
func (b *Body) Tick(dt float64) {
	oldVelocity := b.poly.Velocity

	velocityDelta := b.force.Mul(dt / b.mass).Add(b.impulse.Mul(1.0 / b.mass))
	newVelocity := oldVelocity.Add(velocityDelta)
	averageVelocity := oldVelocity.Add(newVelocity).Mul(0.5)

	b.poly.Velocity = newVelocity
	b.poly.SetCenter(b.poly.Centroid().Add(averageVelocity.Mul(dt)))

	b.Reset()
}

// AddForce accumulates force until the next Tick
func (b *Body) AddForce(force mgl64.Vec2) {
	b.force = b.force.Add(force)
}

// AddImpulse accumulates impulse until the next Tick
func (b *Body) AddImpulse(impulse mgl64.Vec2) {
	b.impulse = b.impulse.Add(impulse)
}

// Reset drops the pending force and impulse
func (b *Body) Reset() {
	b.force = VecZero
	b.impulse = VecZero
}

// Remove flags the body. The scene owning it prunes it on its next Tick.
func (b *Body) Remove() {
	b.removed = true
}

func (b *Body) IsRemoved() bool {
	return b.removed
}

// Release hands the kind tag back to its release func. It runs once.
func (b *Body) Release() {
	if b.released {
		return
	}
	b.released = true

	if b.release != nil && b.kind != nil {
		b.release(b.kind)
	}
}

func (b *Body) Force() mgl64.Vec2 {
	return b.force
}

func (b *Body) Impulse() mgl64.Vec2 {
	return b.impulse
}

func (b *Body) Mass() float64 {
	return b.mass
}

// IsStatic reports whether the body has an infinite mass
func (b *Body) IsStatic() bool {
	return math.IsInf(b.mass, 1)
}

// Kind returns the caller's tag
func (b *Body) Kind() any {
	return b.kind
}

// Shape returns a copy of the current vertices
func (b *Body) Shape() []mgl64.Vec2 {
	return b.poly.Points()
}

func (b *Body) Centroid() mgl64.Vec2 {
	return b.poly.Centroid()
}

// SetCentroid moves the body so its centroid is at centroid
func (b *Body) SetCentroid(centroid mgl64.Vec2) {
	b.poly.SetCenter(centroid)
}

func (b *Body) Velocity() mgl64.Vec2 {
	return b.poly.Velocity
}

func (b *Body) SetVelocity(velocity mgl64.Vec2) {
	b.poly.Velocity = velocity
}

func (b *Body) Rotation() float64 {
	return b.poly.Rotation()
}

// SetRotation turns the body to the absolute angle about its centroid
func (b *Body) SetRotation(angle float64) {
	b.poly.SetRotation(angle)
}

func (b *Body) Color() Color {
	return b.poly.Color
}

func (b *Body) SetColor(color Color) {
	b.poly.Color = color
}

func (b *Body) Area() float64 {
	return b.poly.Area()
}

func (b *Body) Bounds() r2.Rect {
	return b.poly.Bounds()
}
