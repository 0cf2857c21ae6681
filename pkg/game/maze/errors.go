package maze

import (
	"errors"
	"fmt"
	"strings"

	"mazer/pkg/engine/world"
)

// ErrConfiguration is matched by every *ConfigurationError via errors.Is
var ErrConfiguration = errors.New("invalid maze configuration")

// Reasons a configuration is rejected
const (
	ReasonInvalidSize     = "invalid size"
	ReasonNegativeBudget  = "negative soft wall budget"
	ReasonTileOutOfBounds = "tile out of bounds"
)

// TileDescriptor names an offending configuration entry
type TileDescriptor struct {
	Position world.Position
	Kind     world.TileKind
	Level    int
}

// String returns e.g. "Wall at (5,5)" or "Checkpoint(1) at (7,7)"
func (d TileDescriptor) String() string {
	if d.Kind == world.Checkpoint {
		return fmt.Sprintf("%s(%d) at %v", d.Kind, d.Level, d.Position)
	}
	return fmt.Sprintf("%s at %v", d.Kind, d.Position)
}

// ConfigurationError reports a configuration that cannot be turned into a board
type ConfigurationError struct {
	Reason string
	Cols   int
	Rows   int
	Tiles  []TileDescriptor
}

func (e *ConfigurationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s for %dx%d grid", ErrConfiguration, e.Reason, e.Cols, e.Rows)
	if len(e.Tiles) > 0 {
		parts := make([]string, 0, len(e.Tiles))
		for _, t := range e.Tiles {
			parts = append(parts, t.String())
		}
		sb.WriteString(": ")
		sb.WriteString(strings.Join(parts, ", "))
	}
	return sb.String()
}

// Unwrap lets errors.Is(err, ErrConfiguration) match
func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}
