package actor

import "github.com/go-gl/mathgl/mgl64"

// VecZero is the zero vector
var VecZero = mgl64.Vec2{0, 0}

// Negate returns -v
func Negate(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-v[0], -v[1]}
}

// Cross returns the z component of the 3D cross product of a and b
func Cross(a, b mgl64.Vec2) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// Rotate rotates v counter-clockwise by angle radians around the origin
func Rotate(v mgl64.Vec2, angle float64) mgl64.Vec2 {
	return mgl64.Rotate2D(angle).Mul2x1(v)
}

// Perpendicular returns v rotated by +90°
func Perpendicular(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-v[1], v[0]}
}
