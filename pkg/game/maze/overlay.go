package maze

import (
	"mazer/pkg/engine/world"
)

// Overlay composes mutations onto a base board and returns a fresh snapshot.
// Soft walls replace whatever kind the base board holds; highlights only decorate.
// The base board is never modified. Mutations outside the board are skipped.
func Overlay(base world.Board, mutations MutationSet) world.Board {
	builder := world.NewBoardBuilderFrom(base)

	for _, p := range mutations.SoftWalls {
		builder.Set(p, world.NewTile(world.SoftWall))
	}

	for _, h := range mutations.Highlighted {
		builder.SetHighlight(h.Position, h.Significancy)
	}

	return builder.Board()
}
