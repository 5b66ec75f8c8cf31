package quill

import (
	"github.com/akmonengine/quill/actor"
	"github.com/akmonengine/quill/sat"
	"github.com/go-gl/mathgl/mgl64"
)

// Contact is a pair of bodies found colliding by the narrow phase
type Contact struct {
	BodyA *actor.Body
	BodyB *actor.Body
	// Unit axis of minimum penetration, from BodyA toward BodyB
	Axis    mgl64.Vec2
	Overlap float64
}

// DetectCollision tests two bodies. It does not mutate them and can be used outside of a Tick.
func DetectCollision(bodyA, bodyB *actor.Body) sat.Result {
	return sat.Detect(bodyA, bodyB)
}

// BroadPhase finds the pairs of bodies whose bounding boxes overlap.
// Pairs of static bodies and removed bodies are skipped.
func BroadPhase(spatialGrid *SpatialGrid, bodies []*actor.Body) []Pair {
	spatialGrid.Clear()
	for i, body := range bodies {
		spatialGrid.Insert(i, body.Bounds())
	}
	spatialGrid.SortCells()

	return spatialGrid.FindPairs(bodies)
}

// NarrowPhase keeps the pairs that really collide
func NarrowPhase(pairs []Pair) []Contact {
	contacts := make([]Contact, 0, len(pairs))
	for _, pair := range pairs {
		result := sat.Detect(pair.BodyA, pair.BodyB)
		if !result.Collided {
			continue
		}

		contacts = append(contacts, Contact{
			BodyA:   pair.BodyA,
			BodyB:   pair.BodyB,
			Axis:    result.Axis,
			Overlap: result.Overlap,
		})
	}

	return contacts
}

// Contacts returns every colliding pair among the live bodies of the scene
func (s *Scene) Contacts(spatialGrid *SpatialGrid) []Contact {
	return NarrowPhase(BroadPhase(spatialGrid, s.bodies))
}
