package forces

import (
	"github.com/akmonengine/quill"
	"github.com/akmonengine/quill/actor"
	"github.com/akmonengine/quill/sat"
	"github.com/go-gl/mathgl/mgl64"
)

// CollisionHandler reacts to two bodies starting to collide.
// axis is the unit axis of minimum penetration, pointing from bodyA toward bodyB.
type CollisionHandler func(bodyA, bodyB *actor.Body, axis mgl64.Vec2, aux any, forceConst float64)

type collision struct {
	bodyA      *actor.Body
	bodyB      *actor.Body
	handler    CollisionHandler
	aux        any
	forceConst float64

	// Whether the bodies were already colliding on the previous tick
	colliding bool
}

// CreateCollision calls handler on the first tick two bodies collide.
// The handler runs again only after the bodies have separated and collide anew.
func CreateCollision(scene *quill.Scene, bodyA, bodyB *actor.Body, handler CollisionHandler, aux any, forceConst float64) {
	if handler == nil {
		panic("forces: cannot create a collision with a nil handler")
	}

	c := &collision{
		bodyA:      bodyA,
		bodyB:      bodyB,
		handler:    handler,
		aux:        aux,
		forceConst: forceConst,
	}
	scene.AddBodiesForceCreator(applyCollision, c, bodyA, bodyB)
}

func applyCollision(aux any) {
	c := aux.(*collision)

	// A previous creator of this tick may have removed one of them
	if c.bodyA.IsRemoved() || c.bodyB.IsRemoved() {
		return
	}

	result := sat.Detect(c.bodyA, c.bodyB)
	if !result.Collided {
		c.colliding = false
		return
	}
	if c.colliding {
		return
	}

	c.colliding = true
	c.handler(c.bodyA, c.bodyB, result.Axis, c.aux, c.forceConst)
}

// CreatePhysicsCollision makes two bodies bounce off each other.
// elasticity is 0 for a perfectly inelastic collision, 1 for a perfectly elastic one.
func CreatePhysicsCollision(scene *quill.Scene, elasticity float64, bodyA, bodyB *actor.Body) {
	CreateCollision(scene, bodyA, bodyB, PhysicsCollisionHandler, nil, elasticity)
}

// PhysicsCollisionHandler applies opposite impulses along axis, forceConst being the elasticity
func PhysicsCollisionHandler(bodyA, bodyB *actor.Body, axis mgl64.Vec2, aux any, elasticity float64) {
	mu := reducedMass(bodyA, bodyB)
	if mu == 0 {
		return
	}

	ua := bodyA.Velocity().Dot(axis)
	ub := bodyB.Velocity().Dot(axis)
	j := mu * (1 + elasticity) * (ub - ua)

	bodyA.AddImpulse(axis.Mul(j))
	bodyB.AddImpulse(axis.Mul(-j))
}

// reducedMass is m1·m2/(m1+m2). A static body counts as a wall: the other mass is returned.
// Two static bodies give 0.
func reducedMass(bodyA, bodyB *actor.Body) float64 {
	switch {
	case bodyA.IsStatic() && bodyB.IsStatic():
		return 0
	case bodyA.IsStatic():
		return bodyB.Mass()
	case bodyB.IsStatic():
		return bodyA.Mass()
	}

	return bodyA.Mass() * bodyB.Mass() / (bodyA.Mass() + bodyB.Mass())
}

// CreateDestructiveCollision removes both bodies when they collide
func CreateDestructiveCollision(scene *quill.Scene, bodyA, bodyB *actor.Body) {
	CreateCollision(scene, bodyA, bodyB, destroyBoth, nil, 0)
}

func destroyBoth(bodyA, bodyB *actor.Body, _ mgl64.Vec2, _ any, _ float64) {
	bodyA.Remove()
	bodyB.Remove()
}
