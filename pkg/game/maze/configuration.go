// Package maze derives maze boards from a static configuration and the
// player's live mutations. Every function here is pure: boards and limits are
// recomputed from their inputs and never stored as independent state.
package maze

import (
	"slices"

	"mazer/pkg/engine/world"
)

// Checkpoint is a leveled waypoint. Checkpoints sharing the highest level are exits.
type Checkpoint struct {
	Position world.Position
	Level    int
}

// Configuration is the static layout of a maze. It is replaced wholesale, never patched.
type Configuration struct {
	ColCount         int
	RowCount         int
	MaxSoftWallCount int
	Walls            []world.Position
	Entrypoints      []world.Position
	Checkpoints      []Checkpoint
}

// Clone returns a deep copy so the caller's slices can never alias adopted state
func (c Configuration) Clone() Configuration {
	return Configuration{
		ColCount:         c.ColCount,
		RowCount:         c.RowCount,
		MaxSoftWallCount: c.MaxSoftWallCount,
		Walls:            slices.Clone(c.Walls),
		Entrypoints:      slices.Clone(c.Entrypoints),
		Checkpoints:      slices.Clone(c.Checkpoints),
	}
}

// Equal reports structural equality, list order included
func (c Configuration) Equal(other Configuration) bool {
	return c.ColCount == other.ColCount &&
		c.RowCount == other.RowCount &&
		c.MaxSoftWallCount == other.MaxSoftWallCount &&
		slices.Equal(c.Walls, other.Walls) &&
		slices.Equal(c.Entrypoints, other.Entrypoints) &&
		slices.Equal(c.Checkpoints, other.Checkpoints)
}

// InBounds reports whether p lies on the configured grid
func (c Configuration) InBounds(p world.Position) bool {
	return p.InBounds(c.ColCount, c.RowCount)
}

// MaxLevel returns the highest checkpoint level, or false if there are no checkpoints
func (c Configuration) MaxLevel() (int, bool) {
	if len(c.Checkpoints) == 0 {
		return 0, false
	}
	highest := c.Checkpoints[0].Level
	for _, cp := range c.Checkpoints[1:] {
		highest = max(highest, cp.Level)
	}
	return highest, true
}

// Levels returns the distinct checkpoint levels in ascending order
func (c Configuration) Levels() []int {
	levels := make([]int, 0, len(c.Checkpoints))
	for _, cp := range c.Checkpoints {
		levels = append(levels, cp.Level)
	}
	slices.Sort(levels)
	return slices.Compact(levels)
}

// Validate checks dimensions, the soft wall budget and that every listed position is on the grid.
// All out of bounds tiles are reported together.
func (c Configuration) Validate() error {
	if c.ColCount <= 0 || c.RowCount <= 0 {
		return &ConfigurationError{Reason: ReasonInvalidSize, Cols: c.ColCount, Rows: c.RowCount}
	}
	if c.MaxSoftWallCount < 0 {
		return &ConfigurationError{Reason: ReasonNegativeBudget, Cols: c.ColCount, Rows: c.RowCount}
	}

	var outOfBounds []TileDescriptor
	for _, p := range c.Walls {
		if !c.InBounds(p) {
			outOfBounds = append(outOfBounds, TileDescriptor{Position: p, Kind: world.Wall})
		}
	}
	for _, p := range c.Entrypoints {
		if !c.InBounds(p) {
			outOfBounds = append(outOfBounds, TileDescriptor{Position: p, Kind: world.Entrypoint})
		}
	}
	for _, cp := range c.Checkpoints {
		if !c.InBounds(cp.Position) {
			outOfBounds = append(outOfBounds, TileDescriptor{Position: cp.Position, Kind: world.Checkpoint, Level: cp.Level})
		}
	}

	if len(outOfBounds) > 0 {
		return &ConfigurationError{Reason: ReasonTileOutOfBounds, Cols: c.ColCount, Rows: c.RowCount, Tiles: outOfBounds}
	}
	return nil
}
