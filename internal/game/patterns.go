package game

import (
	"fmt"

	"github.com/akmonengine/quill/actor"
	"github.com/akmonengine/quill/forces"
	"github.com/go-gl/mathgl/mgl64"
)

// A pattern spawns a group of obstacles, center being the one of its first block
type pattern func(s *State, center mgl64.Vec2)

var patterns = map[string]pattern{
	"block":            row(1, (*State).addBlock),
	"triple_block":     row(3, (*State).addBlock),
	"five_block":       row(5, (*State).addBlock),
	"spike":            row(1, (*State).addSpike),
	"double_spike":     row(2, (*State).addSpike),
	"triple_spike":     row(3, (*State).addSpike),
	"double_staircase": staircase(6, 2),
	"triple_staircase": staircase(5, 3),
}

// resolvePatterns looks up the pattern names of every level
func resolvePatterns(names [][]string) ([][]pattern, error) {
	resolved := make([][]pattern, len(names))
	for i, levelNames := range names {
		for _, name := range levelNames {
			p, ok := patterns[name]
			if !ok {
				return nil, fmt.Errorf("level %d: unknown obstacle pattern %q", i, name)
			}
			resolved[i] = append(resolved[i], p)
		}
	}

	return resolved, nil
}

// row places n square blocks side by side
func row(n int, add func(s *State, center mgl64.Vec2, height float64)) pattern {
	return func(s *State, center mgl64.Vec2) {
		size := s.cfg.Obstacles.BlockSize
		for i := range n {
			add(s, mgl64.Vec2{center.X() + float64(i)*size, center.Y()}, size)
		}
	}
}

// staircase places steps blocks, each one taller than the previous, spaced by gap block widths
func staircase(gap, steps int) pattern {
	return func(s *State, center mgl64.Vec2) {
		size := s.cfg.Obstacles.BlockSize
		for i := range steps {
			// Blocks grow upward from the same base
			step := mgl64.Vec2{
				center.X() + float64(i*gap)*size,
				center.Y() + float64(i)*size/2,
			}
			s.addBlock(step, float64(i+1)*size)
		}
	}
}

// addSpike spawns a square the dasher dies on
func (s *State) addSpike(center mgl64.Vec2, size float64) {
	spike := s.addScrolling(center, size, size, Wall, black)
	forces.CreateCollision(s.scene, s.dasher, spike, s.onDeath, nil, 0)
}

// addBlock spawns a jumpable block: the dasher can land on its top but dies
// running into its left side.
func (s *State) addBlock(center mgl64.Vec2, height float64) {
	width := s.cfg.Obstacles.BlockSize
	wall := s.cfg.Obstacles.WallThickness

	top := s.addScrolling(
		mgl64.Vec2{center.X(), center.Y() + height/2},
		width, wall-blockInset,
		Floor, black,
	)
	forces.CreateCollision(s.scene, s.dasher, top, s.onFloor, nil, 0)

	side := s.addScrolling(
		mgl64.Vec2{center.X() - width/2 + wall/2, center.Y() - blockInset},
		wall, height-3*wall,
		Wall, black,
	)
	forces.CreateCollision(s.scene, s.dasher, side, s.onDeath, nil, 0)

	s.addScrolling(center, width, height, Obstacle, black)
}

// addCoin spawns a coin the dasher collects on contact
func (s *State) addCoin(center mgl64.Vec2) {
	size := s.cfg.Coins.Size
	coin := s.addScrolling(center, size, size, Coin, gold)
	forces.CreateCollision(s.scene, s.dasher, coin, s.onCoin, nil, 0)
}

// addScrolling adds an immovable rectangle moving left at the level speed
func (s *State) addScrolling(center mgl64.Vec2, width, height float64, kind Kind, color actor.Color) *actor.Body {
	body := actor.NewBodyWithKind(rectangle(center, width, height), immovable, color, kind, s.release)
	body.SetVelocity(mgl64.Vec2{-s.speed, 0})
	s.scene.AddBody(body)

	return body
}

func rectangle(center mgl64.Vec2, width, height float64) []mgl64.Vec2 {
	return []mgl64.Vec2{
		{center.X() - width/2, center.Y() - height/2},
		{center.X() + width/2, center.Y() - height/2},
		{center.X() + width/2, center.Y() + height/2},
		{center.X() - width/2, center.Y() + height/2},
	}
}
