package quill

import (
	"math"
	"testing"

	"github.com/akmonengine/quill/actor"
	"github.com/go-gl/mathgl/mgl64"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func vec2AlmostEqual(a, b mgl64.Vec2, epsilon float64) bool {
	return almostEqual(a.X(), b.X(), epsilon) && almostEqual(a.Y(), b.Y(), epsilon)
}

func rectangle(center mgl64.Vec2, width, height float64) []mgl64.Vec2 {
	return []mgl64.Vec2{
		{center.X() - width/2, center.Y() - height/2},
		{center.X() + width/2, center.Y() - height/2},
		{center.X() + width/2, center.Y() + height/2},
		{center.X() - width/2, center.Y() + height/2},
	}
}

func createBox(center mgl64.Vec2, size float64, mass float64) *actor.Body {
	return actor.NewBody(rectangle(center, size, size), mass, actor.Color{})
}

// gravity pulls every body of aux down by g
func gravity(g float64) ForceCreator {
	return func(aux any) {
		for _, body := range aux.([]*actor.Body) {
			body.AddForce(mgl64.Vec2{0, -g * body.Mass()})
		}
	}
}

// =============================================================================
// Bodies Tests
// =============================================================================

func TestScene_AddBody(t *testing.T) {
	scene := NewScene()
	a := createBox(mgl64.Vec2{0, 0}, 1, 1)
	b := createBox(mgl64.Vec2{5, 0}, 1, 1)

	scene.AddBody(a)
	scene.AddBody(b)

	if scene.BodyCount() != 2 {
		t.Fatalf("BodyCount() = %d, want 2", scene.BodyCount())
	}
	if scene.BodyAt(0) != a || scene.BodyAt(1) != b {
		t.Error("BodyAt() should follow insertion order")
	}

	bodies := scene.Bodies()
	bodies[0] = nil
	if scene.BodyAt(0) != a {
		t.Error("Bodies() should return a copy")
	}
}

func TestScene_IndexPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func(s *Scene)
	}{
		{"BodyAt negative", func(s *Scene) { s.BodyAt(-1) }},
		{"BodyAt past the end", func(s *Scene) { s.BodyAt(1) }},
		{"MarkForRemoval past the end", func(s *Scene) { s.MarkForRemoval(3) }},
		{"nil body", func(s *Scene) { s.AddBody(nil) }},
		{"nil force creator", func(s *Scene) { s.AddForceCreator(nil, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene := NewScene()
			scene.AddBody(createBox(mgl64.Vec2{0, 0}, 1, 1))

			defer func() {
				if recover() == nil {
					t.Error("expected a panic")
				}
			}()
			tt.fn(scene)
		})
	}
}

func TestScene_MarkForRemovalPrunesOnTick(t *testing.T) {
	scene := NewScene()
	a := createBox(mgl64.Vec2{0, 0}, 1, 1)
	b := createBox(mgl64.Vec2{5, 0}, 1, 1)
	c := createBox(mgl64.Vec2{10, 0}, 1, 1)
	scene.AddBody(a)
	scene.AddBody(b)
	scene.AddBody(c)

	scene.MarkForRemoval(1)

	if !b.IsRemoved() {
		t.Error("MarkForRemoval should flag the body")
	}
	if scene.BodyCount() != 3 {
		t.Errorf("BodyCount() = %d before Tick, want 3", scene.BodyCount())
	}

	scene.Tick(0.01)

	if scene.BodyCount() != 2 {
		t.Fatalf("BodyCount() = %d after Tick, want 2", scene.BodyCount())
	}
	if scene.BodyAt(0) != a || scene.BodyAt(1) != c {
		t.Error("pruning should keep the order of the remaining bodies")
	}
}

func TestScene_PrunedBodyIsReleased(t *testing.T) {
	scene := NewScene()
	releases := 0
	body := actor.NewBodyWithKind(rectangle(mgl64.Vec2{0, 0}, 1, 1), 1, actor.Color{}, "coin", func(any) {
		releases++
	})
	scene.AddBody(body)

	body.Remove()
	scene.Tick(0.01)
	scene.Tick(0.01)

	if releases != 1 {
		t.Errorf("release called %d times, want 1", releases)
	}
}

func TestScene_RemovedBodyIsNotIntegrated(t *testing.T) {
	scene := NewScene()
	body := createBox(mgl64.Vec2{0, 0}, 1, 1)
	body.SetVelocity(mgl64.Vec2{10, 0})
	scene.AddBody(body)

	body.Remove()
	scene.Tick(1)

	if !vec2AlmostEqual(body.Centroid(), mgl64.Vec2{0, 0}, 1e-12) {
		t.Errorf("removed body moved to %v", body.Centroid())
	}
}

// =============================================================================
// Force Creators Tests
// =============================================================================

func TestScene_ForceCreatorsRunInOrder(t *testing.T) {
	scene := NewScene()
	var calls []string

	scene.AddForceCreator(func(aux any) { calls = append(calls, aux.(string)) }, "first")
	scene.AddForceCreator(func(aux any) { calls = append(calls, aux.(string)) }, "second")
	scene.AddForceCreator(func(aux any) { calls = append(calls, aux.(string)) }, "third")

	scene.Tick(0.01)
	scene.Tick(0.01)

	want := []string{"first", "second", "third", "first", "second", "third"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls[%d] = %s, want %s", i, calls[i], want[i])
		}
	}
}

func TestScene_ForceCreatorsSeeStartOfTickState(t *testing.T) {
	scene := NewScene()
	body := createBox(mgl64.Vec2{0, 0}, 1, 1)
	body.SetVelocity(mgl64.Vec2{1, 0})
	scene.AddBody(body)

	var seen []mgl64.Vec2
	record := func(any) { seen = append(seen, body.Centroid()) }
	scene.AddForceCreator(record, nil)
	scene.AddForceCreator(record, nil)

	scene.Tick(1)

	if len(seen) != 2 {
		t.Fatalf("recorded %d centroids, want 2", len(seen))
	}
	for i, c := range seen {
		if !vec2AlmostEqual(c, mgl64.Vec2{0, 0}, 1e-12) {
			t.Errorf("creator %d saw %v, want the start of tick centroid {0, 0}", i, c)
		}
	}
	if !vec2AlmostEqual(body.Centroid(), mgl64.Vec2{1, 0}, 1e-12) {
		t.Errorf("Centroid() = %v after Tick, want {1, 0}", body.Centroid())
	}
}

func TestScene_ForceCreatorAddedDuringTickRunsNextTick(t *testing.T) {
	scene := NewScene()
	lateCalls := 0
	added := false

	scene.AddForceCreator(func(any) {
		if !added {
			added = true
			scene.AddForceCreator(func(any) { lateCalls++ }, nil)
		}
	}, nil)

	scene.Tick(0.01)
	if lateCalls != 0 {
		t.Errorf("late creator ran %d times during its registration tick, want 0", lateCalls)
	}

	scene.Tick(0.01)
	if lateCalls != 1 {
		t.Errorf("late creator ran %d times, want 1", lateCalls)
	}
}

func TestScene_ForcerLifecycle(t *testing.T) {
	scene := NewScene()
	body := createBox(mgl64.Vec2{0, 0}, 1, 1)
	other := createBox(mgl64.Vec2{10, 0}, 1, 1)
	scene.AddBody(body)
	scene.AddBody(other)

	calls := 0
	scene.AddBodiesForceCreator(func(aux any) {
		calls++
		gravity(10)(aux)
	}, []*actor.Body{body}, body)

	globalCalls := 0
	scene.AddForceCreator(func(any) { globalCalls++ }, nil)

	scene.Tick(0.01)
	if calls != 1 {
		t.Fatalf("bound creator ran %d times, want 1", calls)
	}

	body.Remove()
	// The creator still runs during the tick the body is pruned in
	scene.Tick(0.01)
	if calls != 2 {
		t.Errorf("bound creator ran %d times, want 2", calls)
	}

	if scene.BodyCount() != 1 || scene.BodyAt(0) != other {
		t.Error("removed body should be pruned")
	}
	if scene.ForceCreatorCount() != 1 {
		t.Errorf("ForceCreatorCount() = %d, want 1 (the unbound one)", scene.ForceCreatorCount())
	}

	for range 10 {
		scene.Tick(0.01)
	}
	if calls != 2 {
		t.Errorf("bound creator ran %d times after its body was pruned, want 2", calls)
	}
	if globalCalls != 12 {
		t.Errorf("unbound creator ran %d times, want 12", globalCalls)
	}
}

func TestScene_ForcerBoundToTwoBodiesDropsWhenEitherGoes(t *testing.T) {
	scene := NewScene()
	a := createBox(mgl64.Vec2{0, 0}, 1, 1)
	b := createBox(mgl64.Vec2{3, 0}, 1, 1)
	c := createBox(mgl64.Vec2{6, 0}, 1, 1)
	scene.AddBody(a)
	scene.AddBody(b)
	scene.AddBody(c)

	scene.AddBodiesForceCreator(func(any) {}, nil, a, b)
	scene.AddBodiesForceCreator(func(any) {}, nil, b, c)
	scene.AddBodiesForceCreator(func(any) {}, nil, a, c)

	b.Remove()
	scene.Tick(0.01)

	if scene.ForceCreatorCount() != 1 {
		t.Errorf("ForceCreatorCount() = %d, want 1", scene.ForceCreatorCount())
	}
}

func TestScene_Release(t *testing.T) {
	scene := NewScene()
	releases := 0
	for i := range 3 {
		scene.AddBody(actor.NewBodyWithKind(rectangle(mgl64.Vec2{float64(i), 0}, 1, 1), 1, actor.Color{}, i, func(any) {
			releases++
		}))
	}
	scene.AddForceCreator(func(any) {}, nil)

	scene.Release()

	if releases != 3 {
		t.Errorf("released %d kinds, want 3", releases)
	}
	if scene.BodyCount() != 0 || scene.ForceCreatorCount() != 0 {
		t.Error("Release() should empty the scene")
	}
}

func TestScene_ReleaseFromForceCreator(t *testing.T) {
	scene := NewScene()
	releases := 0
	scene.AddBody(actor.NewBodyWithKind(rectangle(mgl64.Vec2{0, 0}, 1, 1), 1, actor.Color{}, "box", func(any) {
		releases++
	}))

	calls := 0
	scene.AddForceCreator(func(any) {
		calls++
		scene.Release()
	}, nil)
	scene.AddForceCreator(func(any) {
		calls++
	}, nil)

	scene.Tick(0.1)

	if calls != 2 {
		t.Errorf("%d force creators ran, want 2", calls)
	}
	if releases != 1 {
		t.Errorf("released %d kinds, want 1", releases)
	}
	if scene.BodyCount() != 0 || scene.ForceCreatorCount() != 0 {
		t.Error("Release() from a force creator should empty the scene")
	}

	scene.Tick(0.1)
	if calls != 2 {
		t.Errorf("%d force creators ran after Release(), want 2", calls)
	}
}

// =============================================================================
// Integration Tests
// =============================================================================

func TestScene_FallingBody(t *testing.T) {
	const (
		g  = 980.0
		dt = 0.01
		n  = 100
	)

	scene := NewScene()
	body := createBox(mgl64.Vec2{0, 50}, 1, 1)
	scene.AddBody(body)
	scene.AddBodiesForceCreator(gravity(g), []*actor.Body{body}, body)

	for range n {
		scene.Tick(dt)
	}

	// -980 * 100 * 0.01
	if !almostEqual(body.Velocity().Y(), -980.0, 1e-9) {
		t.Errorf("Velocity().Y() = %v, want -980", body.Velocity().Y())
	}
	if body.Velocity().X() != 0 {
		t.Errorf("Velocity().X() = %v, want 0", body.Velocity().X())
	}

	// y = y0 - ½·g·t²
	elapsed := n * dt
	wantY := 50 - 0.5*g*elapsed*elapsed
	if !almostEqual(body.Centroid().Y(), wantY, 1e-9) {
		t.Errorf("Centroid().Y() = %v, want %v", body.Centroid().Y(), wantY)
	}
}

func TestScene_StaticBodyIsNotMovedByForces(t *testing.T) {
	scene := NewScene()
	floor := createBox(mgl64.Vec2{0, 0}, 10, math.Inf(1))
	scene.AddBody(floor)
	scene.AddBodiesForceCreator(func(any) {
		floor.AddForce(mgl64.Vec2{0, -980})
		floor.AddImpulse(mgl64.Vec2{25, 0})
	}, nil, floor)

	for range 100 {
		scene.Tick(0.01)
	}

	if floor.Velocity() != actor.VecZero {
		t.Errorf("Velocity() = %v, want zero", floor.Velocity())
	}
	if !vec2AlmostEqual(floor.Centroid(), mgl64.Vec2{0, 0}, 1e-12) {
		t.Errorf("Centroid() = %v, want {0, 0}", floor.Centroid())
	}
}
