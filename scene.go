package quill

import (
	"fmt"
	"slices"

	"github.com/akmonengine/quill/actor"
)

// Scene owns a list of bodies and the force creators acting on them.
//
// A Scene is driven by a single goroutine: Tick must not be called concurrently
// or from within a force creator.
type Scene struct {
	bodies  []*actor.Body
	forcers []*forcer
}

// NewScene creates an empty scene
func NewScene() *Scene {
	return &Scene{
		bodies:  make([]*actor.Body, 0, 10),
		forcers: make([]*forcer, 0, 10),
	}
}

// AddBody adds a body to the scene, which takes ownership of it
func (s *Scene) AddBody(body *actor.Body) {
	if body == nil {
		panic("quill: cannot add a nil body")
	}
	s.bodies = append(s.bodies, body)
}

// BodyCount returns the number of bodies, including those marked for removal
func (s *Scene) BodyCount() int {
	return len(s.bodies)
}

// BodyAt returns the body at index, in insertion order
func (s *Scene) BodyAt(index int) *actor.Body {
	s.checkIndex(index)
	return s.bodies[index]
}

// Bodies returns a copy of the body list
func (s *Scene) Bodies() []*actor.Body {
	bodies := make([]*actor.Body, len(s.bodies))
	copy(bodies, s.bodies)

	return bodies
}

// MarkForRemoval flags the body at index. It is pruned on the next Tick.
func (s *Scene) MarkForRemoval(index int) {
	s.checkIndex(index)
	s.bodies[index].Remove()
}

// AddForceCreator registers a force creator bound to no body: it runs until the scene is released
func (s *Scene) AddForceCreator(creator ForceCreator, aux any) {
	s.AddBodiesForceCreator(creator, aux)
}

// AddBodiesForceCreator registers a force creator bound to bodies.
// It is dropped as soon as any of them is removed from the scene.
func (s *Scene) AddBodiesForceCreator(creator ForceCreator, aux any, bodies ...*actor.Body) {
	if creator == nil {
		panic("quill: cannot add a nil force creator")
	}

	bound := make([]*actor.Body, len(bodies))
	copy(bound, bodies)

	s.forcers = append(s.forcers, &forcer{
		creator: creator,
		aux:     aux,
		bodies:  bound,
	})
}

// ForceCreatorCount returns the number of registered force creators
func (s *Scene) ForceCreatorCount() int {
	return len(s.forcers)
}

// Tick advances the scene by dt.
//
// Every force creator runs first, in registration order, so they all observe
// the bodies as they were at the start of the tick. Then the bodies are walked
// in order: removed bodies are pruned along with the force creators bound to
// them, the others are integrated.
func (s *Scene) Tick(dt float64) {
	// Creators added or dropped during this loop, Release included, only
	// take effect on the next tick
	forcers := slices.Clone(s.forcers)
	for _, f := range forcers {
		f.creator(f.aux)
	}

	n := 0
	for _, body := range s.bodies {
		if body.IsRemoved() {
			s.dropForcers(body)
			body.Release()
			continue
		}

		body.Tick(dt)
		s.bodies[n] = body
		n++
	}
	clear(s.bodies[n:])
	s.bodies = s.bodies[:n]
}

// Release releases every body and drops every force creator
func (s *Scene) Release() {
	for _, body := range s.bodies {
		body.Release()
	}
	clear(s.bodies)
	s.bodies = s.bodies[:0]

	clear(s.forcers)
	s.forcers = s.forcers[:0]
}

// dropForcers removes the force creators bound to body
func (s *Scene) dropForcers(body *actor.Body) {
	n := 0
	for _, f := range s.forcers {
		if f.isBoundTo(body) {
			continue
		}
		s.forcers[n] = f
		n++
	}
	clear(s.forcers[n:])
	s.forcers = s.forcers[:n]
}

func (s *Scene) checkIndex(index int) {
	if index < 0 || index >= len(s.bodies) {
		panic(fmt.Sprintf("quill: body index %d out of range [0, %d)", index, len(s.bodies)))
	}
}
