package world

// Direction represents a cardinal direction on the board.
// North points towards increasing Y.
type Direction int

// Direction constants
const (
	North Direction = iota
	South
	East
	West
)

// AllDirections returns all valid directions in neighbour expansion order
func AllDirections() []Direction {
	return []Direction{North, South, East, West}
}

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the direction is a valid cardinal direction
func (d Direction) IsValid() bool {
	return d >= North && d <= West
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return d
	}
}

// Delta returns the x and y offsets for this direction
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, 1
	case South:
		return 0, -1
	case East:
		return 1, 0
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}
