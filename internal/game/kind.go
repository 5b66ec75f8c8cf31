package game

import "fmt"

// Kind tags every body of the game. It is stored as the body's opaque kind.
type Kind int

const (
	Dasher Kind = iota
	// Top of a jumpable block, the dasher can run on it
	Floor
	// Kills the dasher on contact
	Wall
	// Body of a jumpable block
	Obstacle
	Coin
	Backdrop
)

func (k Kind) String() string {
	switch k {
	case Dasher:
		return "dasher"
	case Floor:
		return "floor"
	case Wall:
		return "wall"
	case Obstacle:
		return "obstacle"
	case Coin:
		return "coin"
	case Backdrop:
		return "backdrop"
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// scrolls reports whether the kind moves with the level and is cleared on reset
func (k Kind) scrolls() bool {
	return k == Floor || k == Wall || k == Obstacle || k == Coin
}

// hazard reports whether the dasher should jump over the kind
func (k Kind) hazard() bool {
	return k == Wall || k == Obstacle
}

func kindOf(kind any) (Kind, bool) {
	k, ok := kind.(Kind)
	return k, ok
}
