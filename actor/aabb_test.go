package actor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// =============================================================================
// Bounds Tests
// =============================================================================

func TestBoundingBox(t *testing.T) {
	rect := BoundingBox([]mgl64.Vec2{{1, 2}, {-3, 5}, {4, -1}})

	if rect.Lo().X != -3 || rect.Lo().Y != -1 {
		t.Errorf("Lo = %v, want {-3, -1}", rect.Lo())
	}
	if rect.Hi().X != 4 || rect.Hi().Y != 5 {
		t.Errorf("Hi = %v, want {4, 5}", rect.Hi())
	}

	if !BoundingBox(nil).IsEmpty() {
		t.Error("bounding box of no point should be empty")
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b []mgl64.Vec2
		want bool
	}{
		{"overlapping", rectangle(mgl64.Vec2{0, 0}, 2, 2), rectangle(mgl64.Vec2{1, 1}, 2, 2), true},
		{"touching", rectangle(mgl64.Vec2{0, 0}, 2, 2), rectangle(mgl64.Vec2{2, 0}, 2, 2), true},
		{"separated on X", rectangle(mgl64.Vec2{0, 0}, 2, 2), rectangle(mgl64.Vec2{3, 0}, 2, 2), false},
		{"separated on Y", rectangle(mgl64.Vec2{0, 0}, 2, 2), rectangle(mgl64.Vec2{0, -3}, 2, 2), false},
		{"contained", rectangle(mgl64.Vec2{0, 0}, 10, 10), rectangle(mgl64.Vec2{1, 1}, 1, 1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := BoundingBox(tt.a), BoundingBox(tt.b)
			if Overlaps(a, b) != tt.want {
				t.Errorf("Overlaps = %v, want %v", Overlaps(a, b), tt.want)
			}
			if Overlaps(b, a) != tt.want {
				t.Errorf("Overlaps (symmetry) = %v, want %v", Overlaps(b, a), tt.want)
			}
		})
	}
}


func TestBounds_FollowRotation(t *testing.T) {
	p := NewPolygon(unitSquare(), VecZero, 0, Color{})
	p.SetRotation(math.Pi / 4)

	// A unit square turned by 45° spans its diagonal on both axes
	size := p.Bounds().Size()
	if !almostEqual(size.X, math.Sqrt2, 1e-12) || !almostEqual(size.Y, math.Sqrt2, 1e-12) {
		t.Errorf("Bounds().Size() = %v, want {√2, √2}", size)
	}
	center := p.Bounds().Center()
	if !almostEqual(center.X, 0.5, 1e-12) || !almostEqual(center.Y, 0.5, 1e-12) {
		t.Errorf("Bounds().Center() = %v, want {0.5, 0.5}", center)
	}
}
