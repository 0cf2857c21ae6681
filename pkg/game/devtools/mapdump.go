// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"mazer/pkg/engine/world"
)

const mapDumpFilename = "map.txt"

// tileSymbol returns the single-character symbol for a tile.
// Highlights are ignored; they are listed separately.
func tileSymbol(tile world.Tile) rune {
	switch tile.Kind {
	case world.Wall:
		return '#'
	case world.SoftWall:
		return '%'
	case world.Entrypoint:
		return 'S'
	case world.Exit:
		return 'E'
	case world.Checkpoint:
		if tile.Level >= 0 && tile.Level <= 9 {
			return rune('0' + tile.Level)
		}
		return 'C'
	default:
		return '.'
	}
}

// DumpBoard writes a plain-text dump of board: size, legend, the grid with
// north at the top, and the positions of every special tile.
func DumpBoard(w io.Writer, board world.Board) error {
	out := bufio.NewWriter(w)

	fmt.Fprintf(out, "size: %dx%d\n", board.Cols(), board.Rows())
	fmt.Fprintln(out, "legend: . empty, # wall, % soft wall, S entrypoint, E exit, 0-9 checkpoint level, C checkpoint level >9")
	fmt.Fprintln(out)

	for y := board.Rows() - 1; y >= 0; y-- {
		for x := 0; x < board.Cols(); x++ {
			fmt.Fprintf(out, "%c", tileSymbol(board.At(x, y)))
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "entrypoints: %v\n", board.Positions(world.Entrypoint))
	fmt.Fprintf(out, "exits: %v\n", board.Positions(world.Exit))
	fmt.Fprintf(out, "soft walls: %v\n", board.Positions(world.SoftWall))

	fmt.Fprint(out, "checkpoints:")
	for _, p := range board.Positions(world.Checkpoint) {
		fmt.Fprintf(out, " %s=%d", p, board.At(p.X, p.Y).Level)
	}
	fmt.Fprintln(out)

	fmt.Fprint(out, "highlights:")
	for _, p := range board.Highlighted() {
		fmt.Fprintf(out, " %s=%d", p, board.At(p.X, p.Y).Highlight)
	}
	fmt.Fprintln(out)

	return out.Flush()
}

// DumpBoardToFile writes DumpBoard's output to map.txt in dir and returns the file path
func DumpBoardToFile(dir string, board world.Board) (string, error) {
	path := mapDumpFilename
	if dir != "" {
		path = filepath.Join(dir, mapDumpFilename)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating map dump: %w", err)
	}

	if err := DumpBoard(f, board); err != nil {
		f.Close()
		return "", fmt.Errorf("writing map dump: %w", err)
	}
	return path, f.Close()
}
