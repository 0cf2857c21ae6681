// Package solver is the boundary to the pathfinding and scoring engine.
// The engine itself is a black box: it consumes a configuration plus the
// placed soft walls and returns a score and path, or nothing when the maze
// has no solution.
package solver

import (
	"context"
	"slices"

	"mazer/pkg/engine/world"
	"mazer/pkg/game/maze"
)

// Result is a solved run. Path goes from an entrypoint to an exit, both included.
type Result struct {
	Score int
	Path  []world.Position
}

// Engine computes the best run through a maze.
// A nil Result with a nil error means no solution was found.
type Engine interface {
	Run(ctx context.Context, cfg maze.Configuration, softWalls []world.Position) (*Result, error)
}

// EngineFunc adapts a function to the Engine interface
type EngineFunc func(ctx context.Context, cfg maze.Configuration, softWalls []world.Position) (*Result, error)

// Run calls f
func (f EngineFunc) Run(ctx context.Context, cfg maze.Configuration, softWalls []world.Position) (*Result, error) {
	return f(ctx, cfg, softWalls)
}

// Input is what the engine is evaluated on
type Input struct {
	Configuration maze.Configuration
	SoftWalls     []world.Position
}

// NewInput deep-copies cfg and softWalls
func NewInput(cfg maze.Configuration, softWalls []world.Position) Input {
	return Input{Configuration: cfg.Clone(), SoftWalls: slices.Clone(softWalls)}
}

// Equal reports content equality
func (in Input) Equal(other Input) bool {
	return in.Configuration.Equal(other.Configuration) && slices.Equal(in.SoftWalls, other.SoftWalls)
}
