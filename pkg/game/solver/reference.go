package solver

import (
	"context"

	"mazer/pkg/engine/pathfinder"
	"mazer/pkg/engine/world"
	"mazer/pkg/game/maze"
)

// Reference is the built-in engine: it builds the base board for the
// configuration and runs the breadth-first search from pkg/engine/pathfinder.
type Reference struct {
	boards maze.BoardCache
}

// NewReference creates the built-in engine
func NewReference() *Reference {
	return &Reference{}
}

// Run implements Engine
func (r *Reference) Run(ctx context.Context, cfg maze.Configuration, softWalls []world.Position) (*Result, error) {
	board, err := r.boards.Get(cfg)
	if err != nil {
		return nil, err
	}

	runner, err := pathfinder.NewRunner(board, softWalls, cfg.MaxSoftWallCount)
	if err != nil {
		return nil, err
	}

	route, err := runner.Solve(ctx)
	if err != nil || route == nil {
		return nil, err
	}
	return &Result{Score: route.Steps, Path: route.Path}, nil
}
