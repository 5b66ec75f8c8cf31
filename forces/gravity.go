// Package forces provides ready-made force creators for a quill.Scene.
//
// Each Create function registers force creators bound to the bodies they act
// on, so the scene drops them as soon as one of those bodies is removed.
package forces

import (
	"github.com/akmonengine/quill"
	"github.com/akmonengine/quill/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// MinGravityDistance clamps the distance used by Newtonian gravity,
// to avoid huge forces when two bodies almost share their centroid.
const MinGravityDistance = 5.0

type uniformGravity struct {
	acceleration mgl64.Vec2
	body         *actor.Body
	scene        *quill.Scene
}

// CreateUniformGravity accelerates every body by acceleration (m/s²), e.g. {0, -980}.
// Static bodies are ignored.
//
// Each body gets its own force creator, so removing one body leaves the others
// under gravity. Without bodies, the gravity applies to every body of the scene
// until it is released.
func CreateUniformGravity(scene *quill.Scene, acceleration mgl64.Vec2, bodies ...*actor.Body) {
	if len(bodies) == 0 {
		scene.AddForceCreator(applyUniformGravity, &uniformGravity{acceleration: acceleration, scene: scene})
		return
	}

	for _, body := range bodies {
		aux := &uniformGravity{acceleration: acceleration, body: body}
		scene.AddBodiesForceCreator(applyUniformGravity, aux, body)
	}
}

func applyUniformGravity(aux any) {
	g := aux.(*uniformGravity)
	if g.body != nil {
		accelerate(g.body, g.acceleration)
		return
	}

	for i := range g.scene.BodyCount() {
		if body := g.scene.BodyAt(i); !body.IsRemoved() {
			accelerate(body, g.acceleration)
		}
	}
}

func accelerate(body *actor.Body, acceleration mgl64.Vec2) {
	if body.IsStatic() {
		return
	}
	body.AddForce(acceleration.Mul(body.Mass()))
}

type newtonianGravity struct {
	g     float64
	bodyA *actor.Body
	bodyB *actor.Body
}

// CreateNewtonianGravity attracts two bodies with a force G·m1·m2/r².
// It panics if one of the bodies is static, the force would be infinite.
func CreateNewtonianGravity(scene *quill.Scene, g float64, bodyA, bodyB *actor.Body) {
	if bodyA.IsStatic() || bodyB.IsStatic() {
		panic("forces: newtonian gravity needs two finite masses")
	}
	aux := &newtonianGravity{g: g, bodyA: bodyA, bodyB: bodyB}
	scene.AddBodiesForceCreator(applyNewtonianGravity, aux, bodyA, bodyB)
}

func applyNewtonianGravity(aux any) {
	n := aux.(*newtonianGravity)

	r := n.bodyB.Centroid().Sub(n.bodyA.Centroid())
	distance := r.Len()
	if distance < MinGravityDistance {
		return
	}

	// Force on A, toward B
	magnitude := n.g * n.bodyA.Mass() * n.bodyB.Mass() / (distance * distance)
	force := r.Mul(magnitude / distance)

	n.bodyA.AddForce(force)
	n.bodyB.AddForce(actor.Negate(force))
}
