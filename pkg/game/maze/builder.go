package maze

import (
	"sync"

	"mazer/pkg/engine/world"
)

// Build derives the base board from a configuration.
// Categories are applied in a fixed order, later ones overwriting earlier ones
// at the same position: walls, entrypoints, exits (every checkpoint at the
// maximum level), then the remaining checkpoints.
func Build(cfg Configuration) (world.Board, error) {
	if err := cfg.Validate(); err != nil {
		return world.Board{}, err
	}

	builder := world.NewBoardBuilder(cfg.ColCount, cfg.RowCount)

	for _, p := range cfg.Walls {
		builder.Set(p, world.NewTile(world.Wall))
	}
	for _, p := range cfg.Entrypoints {
		builder.Set(p, world.NewTile(world.Entrypoint))
	}

	exitLevel, ok := cfg.MaxLevel()
	if !ok {
		return builder.Board(), nil
	}

	for _, cp := range cfg.Checkpoints {
		if cp.Level == exitLevel {
			builder.Set(cp.Position, world.NewTile(world.Exit))
		}
	}
	for _, cp := range cfg.Checkpoints {
		if cp.Level != exitLevel {
			builder.Set(cp.Position, world.NewCheckpointTile(cp.Level))
		}
	}

	return builder.Board(), nil
}

// BoardCache memoizes Build for the most recent configuration, keyed on structural equality
type BoardCache struct {
	mu     sync.Mutex
	cfg    Configuration
	board  world.Board
	valid  bool
	builds int
}

// Get returns the cached board when cfg equals the last built configuration, building it otherwise
func (c *BoardCache) Get(cfg Configuration) (world.Board, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid && c.cfg.Equal(cfg) {
		return c.board, nil
	}

	board, err := Build(cfg)
	if err != nil {
		return world.Board{}, err
	}

	c.cfg = cfg.Clone()
	c.board = board
	c.valid = true
	c.builds++
	return board, nil
}

// Invalidate drops the cached board
func (c *BoardCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
	c.board = world.Board{}
}

// Builds returns how many times the cache had to run Build
func (c *BoardCache) Builds() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.builds
}
