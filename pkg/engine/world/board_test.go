package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoardBuilder_AllEmpty(t *testing.T) {
	b := NewBoardBuilder(3, 2).Board()
	require.Equal(t, 3, b.Cols())
	require.Equal(t, 2, b.Rows())
	b.ForEachTile(func(p Position, tile Tile) {
		assert.Equal(t, NewTile(Empty), tile, "tile at %v", p)
	})
}

func TestNewBoardBuilder_NonPositiveDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 3}, {3, 0}, {-1, 2}} {
		b := NewBoardBuilder(dims[0], dims[1]).Board()
		assert.Equal(t, 0, b.Cols())
		assert.Equal(t, 0, b.Rows())
		_, ok := b.Tile(Pos(0, 0))
		assert.False(t, ok)
	}
}

func TestBoardBuilder_SetOutOfBounds(t *testing.T) {
	bb := NewBoardBuilder(2, 2)
	assert.False(t, bb.Set(Pos(2, 0), NewTile(Wall)))
	assert.False(t, bb.Set(Pos(0, -1), NewTile(Wall)))
	assert.False(t, bb.SetHighlight(Pos(5, 5), 3))
	assert.True(t, bb.Set(Pos(1, 1), NewTile(Wall)))
	assert.Equal(t, Wall, bb.Board().At(1, 1).Kind)
}

func TestBoardBuilder_FrozenAfterBoard(t *testing.T) {
	bb := NewBoardBuilder(2, 2)
	b := bb.Board()
	assert.False(t, bb.Set(Pos(0, 0), NewTile(Wall)), "Set after Board() = true, want false")
	assert.Equal(t, Empty, b.At(0, 0).Kind)
}

func TestNewBoardBuilderFrom_DoesNotAlias(t *testing.T) {
	src := NewBoardBuilder(2, 2)
	src.Set(Pos(0, 1), NewCheckpointTile(2))
	base := src.Board()

	copyBuilder := NewBoardBuilderFrom(base)
	copyBuilder.Set(Pos(0, 1), NewTile(SoftWall))
	copyBuilder.SetHighlight(Pos(1, 1), 7)
	derived := copyBuilder.Board()

	assert.Equal(t, NewCheckpointTile(2), base.At(0, 1))
	assert.False(t, base.At(1, 1).IsHighlighted())
	assert.Equal(t, SoftWall, derived.At(0, 1).Kind)
	assert.Equal(t, 7, derived.At(1, 1).Highlight)
	assert.False(t, base.Equal(derived))
}

func TestBoard_PositionsAndHighlighted(t *testing.T) {
	bb := NewBoardBuilder(3, 3)
	bb.Set(Pos(0, 0), NewTile(Wall))
	bb.Set(Pos(2, 1), NewTile(Wall))
	bb.SetHighlight(Pos(1, 1), 4)
	b := bb.Board()

	assert.Equal(t, []Position{Pos(0, 0), Pos(2, 1)}, b.Positions(Wall))
	assert.Equal(t, []Position{Pos(1, 1)}, b.Highlighted())
}

func TestTile_String(t *testing.T) {
	tests := []struct {
		tile Tile
		want string
	}{
		{NewTile(Empty), "Empty"},
		{NewCheckpointTile(3), "Checkpoint(3)"},
		{Tile{Kind: Exit, Highlight: 2}, "Exit*2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.tile.String())
	}
}
