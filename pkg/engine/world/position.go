// Package world provides generic 2D grid-based board primitives.
// These are engine-level constructs usable by any tile-based puzzle.
package world

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// Position is a grid coordinate. X selects the column, Y the row.
type Position struct {
	X int
	Y int
}

// PositionSet is a set of positions
type PositionSet = mapset.Set[Position]

// NewPositionSet creates a set holding the given positions
func NewPositionSet(positions ...Position) PositionSet {
	set := mapset.New[Position]()
	for _, p := range positions {
		set.Put(p)
	}
	return set
}

// Pos is shorthand for Position{X: x, Y: y}
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// String returns the position as "(x,y)"
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Step returns the position one tile away in the given direction
func (p Position) Step(dir Direction) Position {
	dx, dy := dir.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// InBounds reports whether the position lies inside a cols x rows grid
func (p Position) InBounds(cols, rows int) bool {
	return p.X >= 0 && p.X < cols && p.Y >= 0 && p.Y < rows
}

// ManhattanDistance calculates the Manhattan distance between two positions
func ManhattanDistance(a, b Position) int {
	dx := a.X - b.X
	dy := a.Y - b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// UniquePositions returns positions with duplicates removed, keeping first occurrences in order
func UniquePositions(positions []Position) []Position {
	seen := mapset.New[Position]()
	out := make([]Position, 0, len(positions))
	for _, p := range positions {
		if seen.Has(p) {
			continue
		}
		seen.Put(p)
		out = append(out, p)
	}
	return out
}

// ContainsPosition reports whether positions holds p
func ContainsPosition(positions []Position, p Position) bool {
	for _, candidate := range positions {
		if candidate == p {
			return true
		}
	}
	return false
}
