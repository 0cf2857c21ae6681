package renderer

import (
	"io"

	"mazer/pkg/engine/world"
	"mazer/pkg/game/maze"
)

// TextStyle represents different text styling options
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleFloor
	StyleWall
	StyleSoftWall
	StyleEntrypoint
	StyleCheckpoint
	StyleExit
	StyleTrailFresh
	StyleTrail
	StyleTrailFading
	StyleLabel
	StyleDenied
	StyleSubtle
)

// Score is the engine's answer as shown to the player
type Score struct {
	// Known is false until the engine has answered
	Known  bool
	Solved bool
	Steps  int
}

// Frame is everything a renderer draws in one go
type Frame struct {
	Board    world.Board
	Limits   maze.Limits
	Score    Score
	Messages []string
}

// Renderer defines the interface for maze rendering backends
type Renderer interface {
	// Init initializes the renderer (colors, etc.)
	Init()

	// RenderFrame draws a complete frame: board, status line, messages
	RenderFrame(w io.Writer, f Frame) error

	// StyleText applies a style to text and returns the styled string
	StyleText(text string, style TextStyle) string
}

// TrailStyle picks the style for a highlighted tile by significancy
func TrailStyle(significancy int) TextStyle {
	switch {
	case significancy >= maze.MaxSignificancy-1:
		return StyleTrailFresh
	case significancy >= maze.MaxSignificancy/2:
		return StyleTrail
	default:
		return StyleTrailFading
	}
}
