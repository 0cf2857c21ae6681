package world

import "fmt"

// TileKind identifies what occupies a board cell
type TileKind int

// Tile kinds
const (
	Empty TileKind = iota
	Wall
	SoftWall
	Entrypoint
	Checkpoint
	Exit
)

// String returns the string representation of a tile kind
func (k TileKind) String() string {
	switch k {
	case Empty:
		return "Empty"
	case Wall:
		return "Wall"
	case SoftWall:
		return "SoftWall"
	case Entrypoint:
		return "Entrypoint"
	case Checkpoint:
		return "Checkpoint"
	case Exit:
		return "Exit"
	default:
		return "Unknown"
	}
}

// IsValid returns true if k is one of the known kinds
func (k TileKind) IsValid() bool {
	return k >= Empty && k <= Exit
}

// IsBlocking returns true for kinds that cannot be walked through
func (k TileKind) IsBlocking() bool {
	return k == Wall || k == SoftWall
}

// Tile is a single board cell.
// Level is only meaningful for Checkpoint tiles. Highlight is the path trail
// significancy decoration; zero means the tile is not highlighted.
type Tile struct {
	Kind      TileKind
	Level     int
	Highlight int
}

// NewTile creates an undecorated tile of the given kind
func NewTile(kind TileKind) Tile {
	return Tile{Kind: kind}
}

// NewCheckpointTile creates a checkpoint tile with the given level
func NewCheckpointTile(level int) Tile {
	return Tile{Kind: Checkpoint, Level: level}
}

// IsHighlighted returns true if the tile carries a highlight decoration
func (t Tile) IsHighlighted() bool {
	return t.Highlight > 0
}

// String returns a compact description such as "Checkpoint(2)" or "Empty*5"
func (t Tile) String() string {
	s := t.Kind.String()
	if t.Kind == Checkpoint {
		s = fmt.Sprintf("%s(%d)", s, t.Level)
	}
	if t.IsHighlighted() {
		s = fmt.Sprintf("%s*%d", s, t.Highlight)
	}
	return s
}
