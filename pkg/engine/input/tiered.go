package input

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"mazer/pkg/engine/world"
)

// Device represents an input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceTerminal
	DeviceScript
)

// Action represents a high-level command for the maze shell.
type Action int

const (
	ActionNone Action = iota

	// Editing
	ActionPlaceWall
	ActionRemoveWall
	ActionClear

	// Solving
	ActionScore
	ActionAnimate

	// Maze
	ActionGenerate
	ActionLoad

	// Meta / UI
	ActionHelp
	ActionQuit
)

var (
	// ErrUnknownCommand is returned for input that binds to no action
	ErrUnknownCommand = errors.New("unknown command")
	// ErrBadArguments is returned when a command is missing or has malformed arguments
	ErrBadArguments = errors.New("bad arguments")
)

// Intent is the top-layer description of what the user wants to do.
// Position, Seed and Path are only meaningful for actions that take them.
type Intent struct {
	Action   Action
	Position world.Position
	Seed     int64 // 0 when no seed was given
	Path     string
}

// RawInput is the bottom-layer event: one line as read from a device.
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// NormalizedInput is a raw line split into fields, the command word in lower case
type NormalizedInput struct {
	Device Device
	Fields []string
}

// Normalize converts a raw line to a normalized event.
// Arguments keep their case so file paths survive.
func Normalize(raw RawInput) NormalizedInput {
	fields := strings.Fields(raw.Code)
	if len(fields) > 0 {
		fields[0] = strings.ToLower(fields[0])
	}
	return NormalizedInput{
		Device: raw.Device,
		Fields: fields,
	}
}

// bindings maps command words to actions.
// Multiple words may point to the same Action.
var bindings = map[string]Action{
	"wall": ActionPlaceWall,
	"w":    ActionPlaceWall,
	"+":    ActionPlaceWall,

	"empty":  ActionRemoveWall,
	"remove": ActionRemoveWall,
	"e":      ActionRemoveWall,
	"-":      ActionRemoveWall,

	"clear": ActionClear,
	"c":     ActionClear,

	"score": ActionScore,
	"s":     ActionScore,

	"animate": ActionAnimate,
	"a":       ActionAnimate,

	"generate": ActionGenerate,
	"g":        ActionGenerate,

	"load": ActionLoad,
	"l":    ActionLoad,

	"help": ActionHelp,
	"?":    ActionHelp,

	"quit": ActionQuit,
	"q":    ActionQuit,
	"exit": ActionQuit,
}

// argument describes what follows the command word
type argument int

const (
	argNone argument = iota
	argPosition
	argOptionalSeed
	argPath
)

var arguments = map[Action]argument{
	ActionPlaceWall:  argPosition,
	ActionRemoveWall: argPosition,
	ActionGenerate:   argOptionalSeed,
	ActionLoad:       argPath,
}

// MapToIntent applies the bindings to a normalized input.
// An empty line maps to ActionNone without error.
func MapToIntent(ev NormalizedInput) (Intent, error) {
	if len(ev.Fields) == 0 {
		return Intent{Action: ActionNone}, nil
	}

	act, ok := bindings[ev.Fields[0]]
	if !ok {
		return Intent{Action: ActionNone}, fmt.Errorf("%w: %q", ErrUnknownCommand, ev.Fields[0])
	}

	args := ev.Fields[1:]
	switch arguments[act] {
	case argNone:
		if len(args) != 0 {
			return Intent{Action: ActionNone}, fmt.Errorf("%w: %s takes no arguments", ErrBadArguments, ev.Fields[0])
		}
		return Intent{Action: act}, nil
	case argOptionalSeed:
		return seedIntent(act, ev.Fields[0], args)
	case argPath:
		if len(args) == 0 {
			return Intent{Action: ActionNone}, fmt.Errorf("%w: %s needs a file", ErrBadArguments, ev.Fields[0])
		}
		return Intent{Action: act, Path: strings.Join(args, " ")}, nil
	}

	if len(args) != 2 {
		return Intent{Action: ActionNone}, fmt.Errorf("%w: %s needs x and y", ErrBadArguments, ev.Fields[0])
	}
	x, errX := strconv.Atoi(args[0])
	y, errY := strconv.Atoi(args[1])
	if err := errors.Join(errX, errY); err != nil {
		return Intent{Action: ActionNone}, fmt.Errorf("%w: %s: %w", ErrBadArguments, ev.Fields[0], err)
	}
	return Intent{Action: act, Position: world.Pos(x, y)}, nil
}

func seedIntent(act Action, word string, args []string) (Intent, error) {
	switch len(args) {
	case 0:
		return Intent{Action: act}, nil
	case 1:
		seed, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return Intent{Action: ActionNone}, fmt.Errorf("%w: %s: %w", ErrBadArguments, word, err)
		}
		return Intent{Action: act, Seed: seed}, nil
	default:
		return Intent{Action: ActionNone}, fmt.Errorf("%w: %s takes at most a seed", ErrBadArguments, word)
	}
}

// Parse runs a raw line through every layer
func Parse(raw RawInput) (Intent, error) {
	return MapToIntent(Normalize(raw))
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionPlaceWall:
		return "Place Wall"
	case ActionRemoveWall:
		return "Remove Wall"
	case ActionClear:
		return "Clear"
	case ActionScore:
		return "Score"
	case ActionAnimate:
		return "Animate"
	case ActionGenerate:
		return "Generate"
	case ActionLoad:
		return "Load"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Stable ordering of codes within each action so help text doesn't shuffle.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}
