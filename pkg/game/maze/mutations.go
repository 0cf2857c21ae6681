package maze

import (
	"slices"

	"mazer/pkg/engine/world"
)

// MaxSignificancy is the significancy given to the newest tile of a path trail
const MaxSignificancy = 7

// Highlight decorates a tile of the animated path trail.
// Significancy is in [1, MaxSignificancy]; entries decayed to zero are removed.
type Highlight struct {
	Position     world.Position
	Significancy int
}

// MutationSet holds the player's edits layered over the base board.
// SoftWalls is ordered and duplicate free. Highlighted is ordered oldest first.
type MutationSet struct {
	SoftWalls   []world.Position
	Highlighted []Highlight
}

// Clone returns a deep copy
func (m MutationSet) Clone() MutationSet {
	return MutationSet{
		SoftWalls:   slices.Clone(m.SoftWalls),
		Highlighted: slices.Clone(m.Highlighted),
	}
}

// Equal reports content equality, order included
func (m MutationSet) Equal(other MutationSet) bool {
	return slices.Equal(m.SoftWalls, other.SoftWalls) && slices.Equal(m.Highlighted, other.Highlighted)
}

// IsEmpty returns true if there are no soft walls and no highlights
func (m MutationSet) IsEmpty() bool {
	return len(m.SoftWalls) == 0 && len(m.Highlighted) == 0
}

// HasSoftWall returns true if a soft wall is placed at p
func (m MutationSet) HasSoftWall(p world.Position) bool {
	return world.ContainsPosition(m.SoftWalls, p)
}

// WithoutSoftWall returns a copy with any soft wall at p removed
func (m MutationSet) WithoutSoftWall(p world.Position) MutationSet {
	next := m.Clone()
	next.SoftWalls = slices.DeleteFunc(next.SoftWalls, func(q world.Position) bool {
		return q == p
	})
	return next
}

// WithSoftWall returns a copy with a soft wall at p moved to the end of the list.
// The second result is false when the budget has no room, in which case the copy
// has no soft wall at p at all.
func (m MutationSet) WithSoftWall(p world.Position, budget int) (MutationSet, bool) {
	next := m.WithoutSoftWall(p)
	if len(next.SoftWalls) >= budget {
		return next, false
	}
	next.SoftWalls = append(next.SoftWalls, p)
	return next, true
}

// WithHighlights returns a copy whose highlight list is replaced
func (m MutationSet) WithHighlights(highlighted []Highlight) MutationSet {
	next := m.Clone()
	next.Highlighted = slices.Clone(highlighted)
	return next
}
