// Package terminal answers questions about the output terminal.
package terminal

import (
	"io"
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// fd returns the file descriptor behind w, if w is a terminal
func fd(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, false
	}
	descriptor := int(f.Fd())
	return descriptor, term.IsTerminal(descriptor)
}

// IsTerminal returns true if w writes to a terminal
func IsTerminal(w io.Writer) bool {
	_, ok := fd(w)
	return ok
}

// GetSize returns the width and height of the terminal behind w.
// Falls back to defaults if w is not a terminal or the size cannot be determined.
func GetSize(w io.Writer) (width, height int) {
	descriptor, ok := fd(w)
	if !ok {
		return DefaultWidth, DefaultHeight
	}
	width, height, err := term.GetSize(descriptor)
	if err != nil {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// Fits returns true if a block of cols by rows characters fits the terminal behind w
func Fits(w io.Writer, cols, rows int) bool {
	width, height := GetSize(w)
	return cols <= width && rows <= height
}
