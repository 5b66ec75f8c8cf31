package quill

import "github.com/akmonengine/quill/actor"

// ForceCreator is called once per tick, before integration, with its auxiliary payload
type ForceCreator func(aux any)

// forcer is a registered ForceCreator.
// bodies is only a lookup key: the scene drops the forcer as soon as one of them is pruned.
type forcer struct {
	creator ForceCreator
	aux     any
	bodies  []*actor.Body
}

func (f *forcer) isBoundTo(body *actor.Body) bool {
	for _, b := range f.bodies {
		if b == body {
			return true
		}
	}

	return false
}
