// Package generator creates random maze configurations.
package generator

import (
	"errors"

	"mazer/pkg/game/maze"
)

// ErrTooSmall is returned when the requested maze leaves no room for a checkpoint
var ErrTooSmall = errors.New("maze too small to generate")

// Options describes the maze to generate
type Options struct {
	Cols      int
	Rows      int
	Levels    int // Checkpoint levels, the highest becomes the exit
	SoftWalls int // Soft wall budget
}

// DefaultOptions is what the shell generates when asked for a random maze
var DefaultOptions = Options{Cols: 16, Rows: 10, Levels: 3, SoftWalls: 4}

// ConfigurationGenerator is an interface for maze generation algorithms
type ConfigurationGenerator interface {
	Generate(opts Options) (maze.Configuration, error)
	Name() string
}
