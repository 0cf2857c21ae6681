package world

// Board is an immutable cols x rows snapshot of tiles, indexed [x][y].
// Boards are produced by a BoardBuilder and expose read accessors only,
// so any number of snapshots can be shared without copying.
type Board struct {
	cols  int
	rows  int
	tiles [][]Tile
}

// Cols returns the number of columns on the board
func (b Board) Cols() int {
	return b.cols
}

// Rows returns the number of rows on the board
func (b Board) Rows() int {
	return b.rows
}

// IsValidPosition checks if a position is within board bounds
func (b Board) IsValidPosition(p Position) bool {
	return p.InBounds(b.cols, b.rows)
}

// Tile returns the tile at p, or false if p is out of bounds
func (b Board) Tile(p Position) (Tile, bool) {
	if !b.IsValidPosition(p) {
		return Tile{}, false
	}
	return b.tiles[p.X][p.Y], true
}

// At returns the tile at (x, y). Out of bounds coordinates yield an Empty tile.
func (b Board) At(x, y int) Tile {
	t, _ := b.Tile(Position{X: x, Y: y})
	return t
}

// ForEachTile iterates over all tiles column by column
func (b Board) ForEachTile(fn func(p Position, t Tile)) {
	for x := 0; x < b.cols; x++ {
		for y := 0; y < b.rows; y++ {
			fn(Position{X: x, Y: y}, b.tiles[x][y])
		}
	}
}

// Positions returns every position holding a tile of the given kind
func (b Board) Positions(kind TileKind) []Position {
	var out []Position
	b.ForEachTile(func(p Position, t Tile) {
		if t.Kind == kind {
			out = append(out, p)
		}
	})
	return out
}

// Highlighted returns every highlighted position
func (b Board) Highlighted() []Position {
	var out []Position
	b.ForEachTile(func(p Position, t Tile) {
		if t.IsHighlighted() {
			out = append(out, p)
		}
	})
	return out
}

// Equal reports whether two boards have the same dimensions and tiles
func (b Board) Equal(other Board) bool {
	if b.cols != other.cols || b.rows != other.rows {
		return false
	}
	for x := 0; x < b.cols; x++ {
		for y := 0; y < b.rows; y++ {
			if b.tiles[x][y] != other.tiles[x][y] {
				return false
			}
		}
	}
	return true
}

// BoardBuilder is the mutable working buffer used to produce a Board
type BoardBuilder struct {
	cols  int
	rows  int
	tiles [][]Tile
}

// NewBoardBuilder creates a builder with every cell Empty.
// Non-positive dimensions yield an empty board.
func NewBoardBuilder(cols, rows int) *BoardBuilder {
	if cols <= 0 || rows <= 0 {
		return &BoardBuilder{}
	}

	tiles := make([][]Tile, cols)
	for x := range tiles {
		tiles[x] = make([]Tile, rows)
	}

	return &BoardBuilder{cols: cols, rows: rows, tiles: tiles}
}

// NewBoardBuilderFrom creates a builder holding a deep copy of b
func NewBoardBuilderFrom(b Board) *BoardBuilder {
	tiles := make([][]Tile, b.cols)
	for x := range tiles {
		tiles[x] = make([]Tile, b.rows)
		copy(tiles[x], b.tiles[x])
	}
	return &BoardBuilder{cols: b.cols, rows: b.rows, tiles: tiles}
}

// IsValidPosition checks if a position is within builder bounds
func (bb *BoardBuilder) IsValidPosition(p Position) bool {
	return bb.tiles != nil && p.InBounds(bb.cols, bb.rows)
}

// Get returns the tile currently at p, or false if out of bounds
func (bb *BoardBuilder) Get(p Position) (Tile, bool) {
	if !bb.IsValidPosition(p) {
		return Tile{}, false
	}
	return bb.tiles[p.X][p.Y], true
}

// Set replaces the tile at p. Returns false if out of bounds.
func (bb *BoardBuilder) Set(p Position, t Tile) bool {
	if !bb.IsValidPosition(p) {
		return false
	}
	bb.tiles[p.X][p.Y] = t
	return true
}

// SetHighlight decorates the tile at p without changing its kind. Returns false if out of bounds.
func (bb *BoardBuilder) SetHighlight(p Position, significancy int) bool {
	if !bb.IsValidPosition(p) {
		return false
	}
	bb.tiles[p.X][p.Y].Highlight = significancy
	return true
}

// Board freezes the builder into a Board. The builder must not be used afterwards;
// further Set calls report false.
func (bb *BoardBuilder) Board() Board {
	b := Board{cols: bb.cols, rows: bb.rows, tiles: bb.tiles}
	bb.tiles = nil
	return b
}
