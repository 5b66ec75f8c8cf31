// Package game is a headless endless runner built on a quill scene.
//
// A square dasher runs on the ground while obstacles scroll toward it. It
// jumps over spikes, lands on blocks, collects coins and restarts the level
// when it dies. Rendering, audio and input are left to the caller: the dasher
// jumps on its own when an obstacle gets close.
package game

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/akmonengine/quill"
	"github.com/akmonengine/quill/actor"
	"github.com/akmonengine/quill/internal/config"
	"github.com/go-gl/mathgl/mgl64"
)

// The top of a block is thinner than its walls, and its side sits a bit lower
const blockInset = 2.0

var (
	// Obstacles and coins are pushed around by nothing
	immovable = math.Inf(1)

	white = actor.Color{R: 255, G: 255, B: 255}
	black = actor.Color{}
	gold  = actor.Color{R: 255, G: 215, B: 0}
)

// State is a running game. It is driven by a single goroutine.
type State struct {
	cfg      config.Config
	logger   *slog.Logger
	rng      *rand.Rand
	patterns [][]pattern

	scene     *quill.Scene
	grid      *quill.SpatialGrid
	dasher    *actor.Body
	backdrops []*actor.Body

	attempts  int
	coins     int
	jumping   bool
	finished  bool
	level     int
	levelTime float64
	elapsed   float64
	// Velocity of the scrolling bodies, toward the left
	speed float64

	obstacleTimer float64
	coinTimer     float64

	released map[Kind]int
}

// New creates a game on its first level. A nil logger discards every record.
func New(cfg config.Config, seed uint64, logger *slog.Logger) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	names := make([][]string, len(cfg.Levels))
	for i, level := range cfg.Levels {
		names[i] = level.Patterns
	}
	resolved, err := resolvePatterns(names)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &State{
		cfg:      cfg,
		logger:   logger,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		patterns: resolved,
		scene:    quill.NewScene(),
		grid:     quill.NewSpatialGrid(cfg.Grid.CellSize, cfg.Grid.Cells),
		attempts: 1,
		speed:    cfg.Levels[0].Speed,
		released: make(map[Kind]int),
	}

	width, height := cfg.World.Width, cfg.World.Height
	for i := range 2 {
		center := mgl64.Vec2{width/2 + float64(i)*width, height / 2}
		backdrop := actor.NewBodyWithKind(rectangle(center, width, height), immovable, black, Backdrop, s.release)
		backdrop.SetVelocity(mgl64.Vec2{-cfg.World.BackdropSpeed, 0})
		s.scene.AddBody(backdrop)
		s.backdrops = append(s.backdrops, backdrop)
	}

	size := cfg.Dasher.Size
	s.dasher = actor.NewBodyWithKind(rectangle(s.start(), size, size), cfg.Dasher.Mass, white, Dasher, s.release)
	s.scene.AddBody(s.dasher)
	s.scene.AddBodiesForceCreator(s.applyGravity, nil, s.dasher)

	s.logger.Info("game started", "level", cfg.Levels[0].Name, "seed", seed)

	return s, nil
}

// Step advances the game by dt seconds. It does nothing once the last level is over.
func (s *State) Step(dt float64) {
	if s.finished {
		return
	}

	s.elapsed += dt
	s.levelTime += dt

	s.spawn(dt)
	s.pruneOffScreen()
	s.scrollBackdrops()
	s.updateLevel()
	if s.finished {
		return
	}

	s.autoJump()
	s.scene.Tick(dt)
	s.clampToGround()
}

// Close releases every body of the scene
func (s *State) Close() {
	s.scene.Release()
}

func (s *State) Scene() *quill.Scene { return s.scene }
func (s *State) Dasher() *actor.Body { return s.dasher }
func (s *State) Attempts() int       { return s.attempts }
func (s *State) Coins() int          { return s.coins }
func (s *State) Jumping() bool       { return s.jumping }
func (s *State) Finished() bool      { return s.finished }
func (s *State) Level() int          { return s.level }
func (s *State) LevelTime() float64  { return s.levelTime }
func (s *State) Elapsed() float64    { return s.elapsed }

// Released returns how many bodies of kind left the scene
func (s *State) Released(kind Kind) int {
	return s.released[kind]
}

func (s *State) release(kind any) {
	if k, ok := kindOf(kind); ok {
		s.released[k]++
	}
}

func (s *State) start() mgl64.Vec2 {
	return mgl64.Vec2{s.cfg.Dasher.StartX, s.cfg.World.GroundY}
}

func (s *State) spawn(dt float64) {
	s.obstacleTimer += dt
	s.coinTimer += dt

	coins := s.cfg.Coins
	if s.coinTimer >= coins.Interval {
		y := coins.MinY + s.rng.Float64()*(coins.MaxY-coins.MinY)
		s.addCoin(mgl64.Vec2{coins.SpawnX, y})
		s.coinTimer = 0
	}

	if s.obstacleTimer >= s.cfg.Levels[s.level].SpawnInterval {
		candidates := s.patterns[s.level]
		candidates[s.rng.IntN(len(candidates))](s, mgl64.Vec2{s.cfg.Obstacles.SpawnX, s.cfg.World.GroundY})
		s.obstacleTimer = 0
	}
}

// pruneOffScreen removes the scrolling bodies that went past the left border
func (s *State) pruneOffScreen() {
	for i := range s.scene.BodyCount() {
		body := s.scene.BodyAt(i)
		kind, ok := kindOf(body.Kind())
		if !ok || !kind.scrolls() || body.IsRemoved() {
			continue
		}
		if body.Bounds().Hi().X < s.cfg.World.OffScreenX {
			s.scene.MarkForRemoval(i)
		}
	}
}

// scrollBackdrops wraps each backdrop around once it left the screen
func (s *State) scrollBackdrops() {
	width := s.cfg.World.Width
	for _, backdrop := range s.backdrops {
		centroid := backdrop.Centroid()
		if centroid.X() <= -width/2 {
			backdrop.SetCentroid(mgl64.Vec2{centroid.X() + 2*width, centroid.Y()})
		}
	}
}

func (s *State) updateLevel() {
	current := s.cfg.Levels[s.level]
	if s.levelTime <= current.Duration {
		return
	}

	s.clearScrolling()
	if s.level+1 == len(s.cfg.Levels) {
		s.finished = true
		s.logger.Info("game finished", "attempts", s.attempts, "coins", s.coins, "elapsed", s.elapsed)
		return
	}

	s.level++
	s.levelTime = 0
	s.speed = s.cfg.Levels[s.level].Speed
	s.logger.Info("level complete", "completed", current.Name, "next", s.cfg.Levels[s.level].Name)
}

// onFloorContact reports whether the dasher stands on the top of a block
func (s *State) onFloorContact() bool {
	if s.dasher.Velocity().Y() > 0 {
		return false
	}

	for _, pair := range quill.BroadPhase(s.grid, s.scene.Bodies()) {
		other := pair.BodyB
		if pair.BodyA != s.dasher {
			if pair.BodyB != s.dasher {
				continue
			}
			other = pair.BodyA
		}

		if kind, _ := kindOf(other.Kind()); kind != Floor {
			continue
		}
		if quill.DetectCollision(s.dasher, other).Collided {
			return true
		}
	}

	return false
}

// applyGravity pulls the dasher down unless it stands on a block
func (s *State) applyGravity(any) {
	if !s.jumping && s.onFloorContact() {
		return
	}
	s.dasher.AddForce(mgl64.Vec2{0, -s.cfg.World.Gravity * s.dasher.Mass()})
}

// autoJump jumps when a hazard in the path of the dasher is within the lookahead distance
func (s *State) autoJump() {
	if s.jumping {
		return
	}

	dasher := s.dasher.Bounds()
	for _, body := range s.scene.Bodies() {
		kind, ok := kindOf(body.Kind())
		if !ok || !kind.hazard() || body.IsRemoved() {
			continue
		}

		bounds := body.Bounds()
		inPath := bounds.Lo().Y < dasher.Hi().Y && bounds.Hi().Y > dasher.Lo().Y
		gap := bounds.Lo().X - dasher.Hi().X
		if inPath && gap >= 0 && gap <= s.cfg.Dasher.JumpLookahead {
			s.jump()
			return
		}
	}
}

func (s *State) jump() {
	velocity := s.dasher.Velocity()
	s.dasher.SetVelocity(mgl64.Vec2{velocity.X(), s.cfg.Dasher.JumpVelocity})
	s.jumping = true
	s.logger.Debug("jump", "elapsed", s.elapsed)
}

// clampToGround keeps the dasher from falling through the ground
func (s *State) clampToGround() {
	centroid := s.dasher.Centroid()
	if centroid.Y() >= s.cfg.World.GroundY {
		return
	}

	s.dasher.SetCentroid(mgl64.Vec2{centroid.X(), s.cfg.World.GroundY})
	s.dasher.SetVelocity(mgl64.Vec2{s.dasher.Velocity().X(), 0})
	s.jumping = false
}

// clearScrolling removes every obstacle and coin
func (s *State) clearScrolling() {
	for _, body := range s.scene.Bodies() {
		if kind, ok := kindOf(body.Kind()); ok && kind.scrolls() {
			body.Remove()
		}
	}
}

// reset restarts the game from the first level after a death
func (s *State) reset() {
	s.dasher.SetCentroid(s.start())
	s.dasher.SetVelocity(actor.VecZero)
	s.dasher.Reset()

	s.logger.Info("dasher died", "attempt", s.attempts, "level", s.cfg.Levels[s.level].Name, "coins", s.coins)

	s.attempts++
	s.coins = 0
	s.jumping = true
	s.level = 0
	s.levelTime = 0
	s.speed = s.cfg.Levels[0].Speed
	s.obstacleTimer = 0
	s.coinTimer = 0
	s.clearScrolling()
}

func (s *State) onDeath(_, _ *actor.Body, _ mgl64.Vec2, _ any, _ float64) {
	s.reset()
}

func (s *State) onFloor(dasher, _ *actor.Body, _ mgl64.Vec2, _ any, _ float64) {
	velocity := dasher.Velocity()
	dasher.SetVelocity(mgl64.Vec2{velocity.X(), 0})
	// The block holds the dasher up: drop the gravity already applied this tick
	dasher.Reset()
	s.jumping = false
}

func (s *State) onCoin(_, coin *actor.Body, _ mgl64.Vec2, _ any, _ float64) {
	s.coins++
	coin.Remove()
	s.logger.Debug("coin collected", "coins", s.coins)
}
