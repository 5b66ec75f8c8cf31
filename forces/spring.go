package forces

import (
	"github.com/akmonengine/quill"
	"github.com/akmonengine/quill/actor"
)

type spring struct {
	k     float64
	bodyA *actor.Body
	bodyB *actor.Body
}

// CreateSpring links the centroids of two bodies with a zero-length spring of stiffness k
func CreateSpring(scene *quill.Scene, k float64, bodyA, bodyB *actor.Body) {
	aux := &spring{k: k, bodyA: bodyA, bodyB: bodyB}
	scene.AddBodiesForceCreator(applySpring, aux, bodyA, bodyB)
}

func applySpring(aux any) {
	s := aux.(*spring)

	// Hooke's law, on A toward B
	force := s.bodyB.Centroid().Sub(s.bodyA.Centroid()).Mul(s.k)
	s.bodyA.AddForce(force)
	s.bodyB.AddForce(actor.Negate(force))
}

type drag struct {
	gamma float64
	body  *actor.Body
}

// CreateDrag slows a body down with a force -gamma·v
func CreateDrag(scene *quill.Scene, gamma float64, body *actor.Body) {
	aux := &drag{gamma: gamma, body: body}
	scene.AddBodiesForceCreator(applyDrag, aux, body)
}

func applyDrag(aux any) {
	d := aux.(*drag)
	d.body.AddForce(d.body.Velocity().Mul(-d.gamma))
}
