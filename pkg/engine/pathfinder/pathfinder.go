// Package pathfinder finds the shortest run through a board: from an
// entrypoint, through every checkpoint level in ascending order, to an exit.
package pathfinder

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/zyedidia/generic/mapset"

	"mazer/pkg/engine/world"
)

var (
	// ErrTooManySoftWalls is returned when more soft walls are placed than allowed
	ErrTooManySoftWalls = errors.New("too many soft walls")
	// ErrSoftWallOutOfBounds is returned for a soft wall outside the board
	ErrSoftWallOutOfBounds = errors.New("soft wall out of bounds")
	// ErrOverlappingSoftWall is returned for a soft wall placed on a non-empty tile
	ErrOverlappingSoftWall = errors.New("soft wall overlaps a non-empty tile")
)

// Route is a solved run. Steps is the number of moves, Path holds Steps+1
// positions from the entrypoint to the exit.
type Route struct {
	Steps int
	Path  []world.Position
}

// Runner searches one board with a fixed set of soft walls
type Runner struct {
	board       world.Board
	blocked     world.PositionSet
	entrypoints []world.Position
	levels      []int
}

// NewRunner validates softWalls against board and prepares a search.
// maxSoftWalls is the number of soft walls the maze allows.
func NewRunner(board world.Board, softWalls []world.Position, maxSoftWalls int) (*Runner, error) {
	if len(softWalls) > maxSoftWalls {
		return nil, fmt.Errorf("%w: %d placed, limit %d", ErrTooManySoftWalls, len(softWalls), maxSoftWalls)
	}

	blocked := world.NewPositionSet()
	for _, p := range softWalls {
		tile, ok := board.Tile(p)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrSoftWallOutOfBounds, p)
		}
		if tile.Kind != world.Empty {
			return nil, fmt.Errorf("%w: %s is %s", ErrOverlappingSoftWall, p, tile.Kind)
		}
		blocked.Put(p)
	}

	var levels []int
	board.ForEachTile(func(_ world.Position, t world.Tile) {
		if t.Kind == world.Checkpoint && !slices.Contains(levels, t.Level) {
			levels = append(levels, t.Level)
		}
	})
	slices.Sort(levels)

	return &Runner{
		board:       board,
		blocked:     blocked,
		entrypoints: board.Positions(world.Entrypoint),
		levels:      levels,
	}, nil
}

// Solve runs one search per entrypoint and returns the shortest route,
// the earliest entrypoint winning ties. A nil route means no entrypoint can
// reach an exit.
func (r *Runner) Solve(ctx context.Context) (*Route, error) {
	var best *Route
	for _, start := range r.entrypoints {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		route := r.search(start)
		if route != nil && (best == nil || route.Steps < best.Steps) {
			best = route
		}
	}
	return best, nil
}

// node is a search state: where we stand and how many checkpoint levels are done
type node struct {
	pos   world.Position
	stage int
}

func (r *Runner) passable(p world.Position) bool {
	tile, ok := r.board.Tile(p)
	if !ok || tile.Kind.IsBlocking() {
		return false
	}
	return !r.blocked.Has(p)
}

// advance returns the stage reached after stepping onto p, and whether the run is finished
func (r *Runner) advance(p world.Position, stage int) (int, bool) {
	tile, _ := r.board.Tile(p)
	if stage < len(r.levels) {
		if tile.Kind == world.Checkpoint && tile.Level == r.levels[stage] {
			return stage + 1, false
		}
		return stage, false
	}
	return stage, tile.Kind == world.Exit
}

func (r *Runner) search(start world.Position) *Route {
	origin := node{pos: start}
	visited := mapset.New[node]()
	visited.Put(origin)
	parents := make(map[node]node)

	queue := []node{origin}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, dir := range world.AllDirections() {
			next := current.pos.Step(dir)
			if !r.passable(next) {
				continue
			}
			stage, finished := r.advance(next, current.stage)
			n := node{pos: next, stage: stage}
			if visited.Has(n) {
				continue
			}
			visited.Put(n)
			parents[n] = current
			if finished {
				return buildRoute(parents, origin, n)
			}
			queue = append(queue, n)
		}
	}
	return nil
}

func buildRoute(parents map[node]node, origin, end node) *Route {
	path := []world.Position{end.pos}
	for n := end; n != origin; {
		n = parents[n]
		path = append(path, n.pos)
	}
	slices.Reverse(path)
	return &Route{Steps: len(path) - 1, Path: path}
}
