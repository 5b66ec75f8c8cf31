// Package sat implements the Separating Axis Theorem for convex polygons.
//
// Two convex polygons are disjoint if and only if there is an axis on which
// their projections do not overlap. For polygons, it is enough to test the
// normals of every edge of both shapes: each edge normal of A is tried in a
// first run, each edge normal of B in a second run.
//
// When no axis separates the shapes, the axis with the smallest overlap is the
// minimum translation direction to push them apart.
package sat

import (
	"fmt"
	"math"

	"github.com/akmonengine/quill/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Result of a collision test. Axis and Overlap are only meaningful when Collided is true.
type Result struct {
	Collided bool
	// Unit axis of minimum penetration, pointing from the first shape toward the second
	Axis mgl64.Vec2
	// Penetration depth along Axis
	Overlap float64
}

// Detect tests two bodies against each other, using snapshots of their current vertices
func Detect(a, b *actor.Body) Result {
	return DetectPolygons(a.Shape(), b.Shape())
}

// DetectPolygons tests two convex polygons given by their vertices in counter-clockwise order.
// Touching polygons (zero overlap) are colliding.
//
// It panics if any polygon has less than 3 vertices.
func DetectPolygons(a, b []mgl64.Vec2) Result {
	if len(a) < 3 || len(b) < 3 {
		panic(fmt.Sprintf("sat: polygons need at least 3 vertices, got %d and %d", len(a), len(b)))
	}

	resultA := separate(a, b)
	if !resultA.Collided {
		return resultA
	}
	resultB := separate(b, a)
	if !resultB.Collided {
		return resultB
	}

	// Ties go to the second run
	result := resultB
	if resultA.Overlap < resultB.Overlap {
		result = resultA
	}

	// Orient the axis from a toward b
	if result.Axis.Dot(centroid(b).Sub(centroid(a))) < 0 {
		result.Axis = actor.Negate(result.Axis)
	}

	return result
}

// separate tries every edge normal of reference as a separating axis
func separate(reference, other []mgl64.Vec2) Result {
	result := Result{Collided: true, Overlap: math.MaxFloat64}

	n := len(reference)
	for i := 0; i < n; i++ {
		edge := reference[i].Sub(reference[(i+1)%n])
		length := edge.Len()
		if length == 0 {
			// Duplicated vertex, no normal to test
			continue
		}
		axis := actor.Perpendicular(edge).Mul(1.0 / length)

		minRef, maxRef := project(reference, axis)
		minOther, maxOther := project(other, axis)

		overlap := math.Min(maxRef, maxOther) - math.Max(minRef, minOther)
		if overlap < 0 {
			return Result{Collided: false}
		}
		if overlap < result.Overlap {
			result.Overlap = overlap
			result.Axis = axis
		}
	}

	return result
}

// project returns the interval covered by points along a unit axis
func project(points []mgl64.Vec2, axis mgl64.Vec2) (float64, float64) {
	lo := math.Inf(1)
	hi := math.Inf(-1)
	for _, p := range points {
		d := p.Dot(axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}

	return lo, hi
}

// centroid is the vertex average, enough to orient the axis
func centroid(points []mgl64.Vec2) mgl64.Vec2 {
	var sum mgl64.Vec2
	for _, p := range points {
		sum = sum.Add(p)
	}

	return sum.Mul(1.0 / float64(len(points)))
}
