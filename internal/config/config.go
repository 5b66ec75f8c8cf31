// Package config holds the tuning of the dasher game: world size, dasher
// motion, level pacing and obstacle patterns.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the whole game tuning, loaded from a YAML file
type Config struct {
	World     World     `yaml:"world"`
	Dasher    Dasher    `yaml:"dasher"`
	Obstacles Obstacles `yaml:"obstacles"`
	Coins     Coins     `yaml:"coins"`
	Grid      Grid      `yaml:"grid"`
	Levels    []Level   `yaml:"levels"`
}

// World is the visible area. The origin is the bottom-left corner.
type World struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// Centroid height of a dasher running on the ground
	GroundY float64 `yaml:"ground_y"`
	Gravity float64 `yaml:"gravity"`
	// Scrolling bodies entirely left of OffScreenX are pruned
	OffScreenX    float64 `yaml:"off_screen_x"`
	BackdropSpeed float64 `yaml:"backdrop_speed"`
}

type Dasher struct {
	Size         float64 `yaml:"size"`
	Mass         float64 `yaml:"mass"`
	StartX       float64 `yaml:"start_x"`
	JumpVelocity float64 `yaml:"jump_velocity"`
	// Distance between the dasher and the next obstacle that triggers a jump
	JumpLookahead float64 `yaml:"jump_lookahead"`
}

type Obstacles struct {
	BlockSize     float64 `yaml:"block_size"`
	WallThickness float64 `yaml:"wall_thickness"`
	SpawnX        float64 `yaml:"spawn_x"`
}

type Coins struct {
	Size     float64 `yaml:"size"`
	Interval float64 `yaml:"interval"`
	SpawnX   float64 `yaml:"spawn_x"`
	MinY     float64 `yaml:"min_y"`
	MaxY     float64 `yaml:"max_y"`
}

// Grid sizes the broad phase
type Grid struct {
	CellSize float64 `yaml:"cell_size"`
	Cells    int     `yaml:"cells"`
}

// Level is played for Duration seconds, then the next one starts
type Level struct {
	Name          string  `yaml:"name"`
	Duration      float64 `yaml:"duration"`
	Speed         float64 `yaml:"speed"`
	SpawnInterval float64 `yaml:"spawn_interval"`
	// Obstacle patterns drawn at random, repeat a name to make it more likely
	Patterns []string `yaml:"patterns"`
}

// Default returns a two-level game, the second level faster than the first
func Default() Config {
	return Config{
		World: World{
			Width:         1000,
			Height:        500,
			GroundY:       70,
			Gravity:       2000,
			OffScreenX:    0,
			BackdropSpeed: 25,
		},
		Dasher: Dasher{
			Size:          50,
			Mass:          1,
			StartX:        50,
			JumpVelocity:  750,
			JumpLookahead: 40,
		},
		Obstacles: Obstacles{
			BlockSize:     40,
			WallThickness: 5,
			SpawnX:        1000,
		},
		Coins: Coins{
			Size:     30,
			Interval: 5,
			SpawnX:   1100,
			MinY:     100,
			MaxY:     200,
		},
		Grid: Grid{
			CellSize: 100,
			Cells:    256,
		},
		Levels: []Level{
			{
				Name:          "level1",
				Duration:      30,
				Speed:         260,
				SpawnInterval: 2.0,
				Patterns: []string{
					"block", "block", "block", "block",
					"spike", "spike", "spike", "spike",
					"double_spike", "double_spike",
					"triple_staircase", "triple_staircase",
					"five_block", "five_block",
					"triple_block", "triple_block",
				},
			},
			{
				Name:          "level2",
				Duration:      30,
				Speed:         330,
				SpawnInterval: 1.5,
				Patterns: []string{
					"block", "block",
					"spike", "spike",
					"double_spike", "double_spike",
					"double_staircase", "double_staircase",
					"five_block", "five_block",
					"triple_block", "triple_block",
					"triple_spike",
				},
			},
		},
	}
}

// Load reads a YAML file on top of Default(): missing fields keep their default value.
// A missing levels list keeps the default levels.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML on top of Default() and validates the result
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks every field the game relies on, and reports all the invalid ones
func (c Config) Validate() error {
	var errs []error
	positive := func(name string, value float64) {
		if !(value > 0) {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, value))
		}
	}

	positive("world.width", c.World.Width)
	positive("world.height", c.World.Height)
	positive("world.ground_y", c.World.GroundY)
	positive("world.gravity", c.World.Gravity)
	positive("dasher.size", c.Dasher.Size)
	positive("dasher.mass", c.Dasher.Mass)
	positive("dasher.jump_velocity", c.Dasher.JumpVelocity)
	positive("obstacles.block_size", c.Obstacles.BlockSize)
	positive("coins.size", c.Coins.Size)
	positive("coins.interval", c.Coins.Interval)
	positive("grid.cell_size", c.Grid.CellSize)

	if c.Dasher.JumpLookahead < 0 {
		errs = append(errs, fmt.Errorf("dasher.jump_lookahead must not be negative, got %v", c.Dasher.JumpLookahead))
	}
	// The jumpable block's left wall is BlockSize - 3*WallThickness tall
	if !(c.Obstacles.WallThickness > 2) || 3*c.Obstacles.WallThickness >= c.Obstacles.BlockSize {
		errs = append(errs, fmt.Errorf("obstacles.wall_thickness must be in (2, block_size/3), got %v", c.Obstacles.WallThickness))
	}
	if c.Coins.MinY > c.Coins.MaxY {
		errs = append(errs, fmt.Errorf("coins.min_y (%v) must not exceed coins.max_y (%v)", c.Coins.MinY, c.Coins.MaxY))
	}
	if c.Grid.Cells <= 0 {
		errs = append(errs, fmt.Errorf("grid.cells must be positive, got %d", c.Grid.Cells))
	}

	if len(c.Levels) == 0 {
		errs = append(errs, errors.New("levels must not be empty"))
	}
	for i, level := range c.Levels {
		positive(fmt.Sprintf("levels[%d].duration", i), level.Duration)
		positive(fmt.Sprintf("levels[%d].speed", i), level.Speed)
		positive(fmt.Sprintf("levels[%d].spawn_interval", i), level.SpawnInterval)
		if len(level.Patterns) == 0 {
			errs = append(errs, fmt.Errorf("levels[%d].patterns must not be empty", i))
		}
	}

	return errors.Join(errs...)
}
