package generator

import (
	"fmt"
	"math/rand"
	"slices"

	"mazer/pkg/engine/world"
	"mazer/pkg/game/maze"
)

// LineWalkerGenerator carves corridors out of a solid board by walking lines
// in random directions with a branching probability. The entrypoint sits in
// the centre and checkpoints sit at corridor ends, so every generated maze is
// solvable.
type LineWalkerGenerator struct {
	rng *rand.Rand
}

// NewLineWalker creates a line walker seeded with seed
func NewLineWalker(seed int64) *LineWalkerGenerator {
	return &LineWalkerGenerator{rng: rand.New(rand.NewSource(seed))}
}

// Name returns the name of this generator
func (g *LineWalkerGenerator) Name() string {
	return "Line Walker"
}

// walk is the state of one generation run
type walk struct {
	cols, rows int
	carved     world.PositionSet
	ends       []world.Position
}

func (w *walk) inBounds(p world.Position) bool {
	return p.InBounds(w.cols, w.rows)
}

// Generate creates a maze configuration
func (g *LineWalkerGenerator) Generate(opts Options) (maze.Configuration, error) {
	if opts.Cols < 2 || opts.Rows < 2 || opts.Levels < 1 || opts.SoftWalls < 0 {
		return maze.Configuration{}, fmt.Errorf("%w: %dx%d with %d levels", ErrTooSmall, opts.Cols, opts.Rows, opts.Levels)
	}

	w := &walk{cols: opts.Cols, rows: opts.Rows, carved: world.NewPositionSet()}
	start := world.Pos(opts.Cols/2, opts.Rows/2)
	w.carved.Put(start)

	// Scale corridor length with board size
	minDist := 2
	maxDist := max(minDist, min(opts.Cols, opts.Rows)/2)
	branchProb := float32(0.3)

	// Main corridors in all four directions
	for _, dir := range world.AllDirections() {
		g.buildLine(w, start, dir, branchProb, minDist, maxDist)
	}

	// Extra corridors for more checkpoint candidates
	for i := 0; i < opts.Levels; i++ {
		carved := carvedPositions(w)
		from := carved[g.rng.Intn(len(carved))]
		g.buildLine(w, from, g.randomDirection(), branchProb, minDist, maxDist)
	}

	checkpoints := pickCheckpoints(w, start, opts.Levels)
	if len(checkpoints) == 0 {
		return maze.Configuration{}, fmt.Errorf("%w: no corridor end away from the entrypoint", ErrTooSmall)
	}

	var walls []world.Position
	for x := 0; x < opts.Cols; x++ {
		for y := 0; y < opts.Rows; y++ {
			if p := world.Pos(x, y); !w.carved.Has(p) {
				walls = append(walls, p)
			}
		}
	}

	cfg := maze.Configuration{
		ColCount:         opts.Cols,
		RowCount:         opts.Rows,
		MaxSoftWallCount: opts.SoftWalls,
		Walls:            walls,
		Entrypoints:      []world.Position{start},
		Checkpoints:      checkpoints,
	}
	return cfg, cfg.Validate()
}

// randomDirection returns a random cardinal direction
func (g *LineWalkerGenerator) randomDirection() world.Direction {
	dirs := world.AllDirections()
	return dirs[g.rng.Intn(len(dirs))]
}

// buildLine carves a line starting at from in the given direction and
// records where it ended
func (g *LineWalkerGenerator) buildLine(w *walk, from world.Position, dir world.Direction, branchProbability float32, minDist, maxDist int) {
	p := from
	distance := minDist + g.rng.Intn(maxDist-minDist+1)

	for segment := 0; segment < distance; segment++ {
		next := p.Step(dir)
		// Stop at the board edge
		if !w.inBounds(next) {
			break
		}

		if g.rng.Float32() < branchProbability {
			g.buildLine(w, p, g.randomDirection(), branchProbability-.1, minDist, maxDist)
		}

		p = next
		w.carved.Put(p)
	}

	w.ends = append(w.ends, p)
}

// carvedPositions lists carved positions column by column
func carvedPositions(w *walk) []world.Position {
	var out []world.Position
	for x := 0; x < w.cols; x++ {
		for y := 0; y < w.rows; y++ {
			if p := world.Pos(x, y); w.carved.Has(p) {
				out = append(out, p)
			}
		}
	}
	return out
}

// pickCheckpoints assigns levels 1..n to the corridor ends furthest from
// start, the furthest getting the highest level
func pickCheckpoints(w *walk, start world.Position, levels int) []maze.Checkpoint {
	ends := slices.DeleteFunc(world.UniquePositions(w.ends), func(p world.Position) bool {
		return p == start
	})
	slices.SortStableFunc(ends, func(a, b world.Position) int {
		return world.ManhattanDistance(start, a) - world.ManhattanDistance(start, b)
	})
	if len(ends) > levels {
		ends = ends[len(ends)-levels:]
	}

	checkpoints := make([]maze.Checkpoint, 0, len(ends))
	for i, p := range ends {
		checkpoints = append(checkpoints, maze.Checkpoint{Position: p, Level: i + 1})
	}
	return checkpoints
}
