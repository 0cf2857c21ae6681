package tui

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"mazer/pkg/engine/terminal"
	"mazer/pkg/engine/world"
	"mazer/pkg/game/renderer"
)

// Icon constants for the maze board
const (
	IconFloor      = "·"
	IconWall       = "▒"
	IconSoftWall   = "▓"
	IconEntrypoint = "◉"
	IconCheckpoint = "◆" // Checkpoint with a level too wide for one glyph
	IconExit       = "△"
	IconTrail      = "●"
)

// Lines drawn around the board:
// - Column ruler (1)
// - Legend + blank (2)
// - Status line (1)
// - Messages pane (header + messages)
// - Input prompt (1)
const chromeRows = 5

// legend pairs icons with their translation keys, in display order
var legend = []struct {
	icon  string
	style renderer.TextStyle
	key   string
}{
	{IconEntrypoint, renderer.StyleEntrypoint, "LEGEND_ENTRYPOINT"},
	{IconExit, renderer.StyleExit, "LEGEND_EXIT"},
	{"1", renderer.StyleCheckpoint, "LEGEND_CHECKPOINT"},
	{IconWall, renderer.StyleWall, "LEGEND_WALL"},
	{IconSoftWall, renderer.StyleSoftWall, "LEGEND_SOFT_WALL"},
	{IconTrail, renderer.StyleTrailFresh, "LEGEND_TRAIL"},
}

// dynamicGet is used for runtime translation key lookups.
// We use a function variable to avoid go vet's non-constant format string check,
// since the legend keys are looked up from a table.
var dynamicGet = gotext.Get

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	styles map[renderer.TextStyle]color.Style
}

// New creates a new TUI renderer
func New() *TUIRenderer {
	return &TUIRenderer{}
}

// Init initializes the TUI renderer colors
func (t *TUIRenderer) Init() {
	t.styles = map[renderer.TextStyle]color.Style{
		renderer.StyleFloor:       {color.FgGray},
		renderer.StyleWall:        {color.FgWhite},
		renderer.StyleSoftWall:    {color.FgYellow, color.OpBold},
		renderer.StyleEntrypoint:  {color.FgCyan, color.OpBold},
		renderer.StyleCheckpoint:  {color.FgMagenta, color.OpBold},
		renderer.StyleExit:        {color.FgGreen, color.OpBold},
		renderer.StyleTrailFresh:  {color.FgLightGreen, color.OpBold},
		renderer.StyleTrail:       {color.FgGreen},
		renderer.StyleTrailFading: {color.FgGray},
		renderer.StyleLabel:       {color.FgBlue},
		renderer.StyleDenied:      {color.FgRed, color.OpBold},
		renderer.StyleSubtle:      {color.FgGray, color.OpBold},
	}
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(text string, style renderer.TextStyle) string {
	s, ok := t.styles[style]
	if !ok {
		return text
	}
	return s.Sprint(text)
}

// RenderFrame renders the board with its legend, status line and messages
func (t *TUIRenderer) RenderFrame(w io.Writer, f renderer.Frame) error {
	if t.styles == nil {
		t.Init()
	}

	width, height := frameSize(f)
	if terminal.IsTerminal(w) && !terminal.Fits(w, width, height) {
		_, err := fmt.Fprintln(w, t.StyleText(gotext.Get("TERMINAL_TOO_SMALL"), renderer.StyleDenied))
		return err
	}

	out := bufio.NewWriter(w)
	t.printBoard(out, f.Board)
	t.printLegend(out)
	t.printStatusLine(out, f)
	t.printMessagesPane(out, f.Messages)
	return out.Flush()
}

// RenderTile returns the styled glyph for a tile
func (t *TUIRenderer) RenderTile(tile world.Tile) string {
	icon, style := tileIcon(tile)
	if tile.IsHighlighted() {
		if tile.Kind == world.Empty {
			icon = IconTrail
		}
		style = renderer.TrailStyle(tile.Highlight)
	}
	return t.StyleText(icon, style)
}

func tileIcon(tile world.Tile) (string, renderer.TextStyle) {
	switch tile.Kind {
	case world.Wall:
		return IconWall, renderer.StyleWall
	case world.SoftWall:
		return IconSoftWall, renderer.StyleSoftWall
	case world.Entrypoint:
		return IconEntrypoint, renderer.StyleEntrypoint
	case world.Checkpoint:
		if tile.Level >= 0 && tile.Level <= 9 {
			return strconv.Itoa(tile.Level), renderer.StyleCheckpoint
		}
		return IconCheckpoint, renderer.StyleCheckpoint
	case world.Exit:
		return IconExit, renderer.StyleExit
	default:
		return IconFloor, renderer.StyleFloor
	}
}

// frameSize returns the columns and rows a frame needs
func frameSize(f renderer.Frame) (cols, rows int) {
	gutter := len(strconv.Itoa(f.Board.Rows())) + 1
	cols = gutter + f.Board.Cols()*2
	rows = f.Board.Rows() + chromeRows + len(f.Messages)
	return cols, rows
}

// printBoard draws north at the top: rows are printed from the highest y down
func (t *TUIRenderer) printBoard(out io.Writer, board world.Board) {
	gutter := len(strconv.Itoa(board.Rows()))

	for y := board.Rows() - 1; y >= 0; y-- {
		var line strings.Builder
		line.WriteString(t.StyleText(fmt.Sprintf("%*d", gutter, y), renderer.StyleSubtle))
		for x := 0; x < board.Cols(); x++ {
			line.WriteString(" ")
			line.WriteString(t.RenderTile(board.At(x, y)))
		}
		fmt.Fprintln(out, line.String())
	}

	var ruler strings.Builder
	ruler.WriteString(strings.Repeat(" ", gutter))
	for x := 0; x < board.Cols(); x++ {
		ruler.WriteString(" ")
		ruler.WriteString(strconv.Itoa(x % 10))
	}
	fmt.Fprintln(out, t.StyleText(ruler.String(), renderer.StyleSubtle))
}

func (t *TUIRenderer) printLegend(out io.Writer) {
	parts := make([]string, 0, len(legend))
	for _, entry := range legend {
		parts = append(parts, t.StyleText(entry.icon, entry.style)+" "+dynamicGet(entry.key))
	}
	fmt.Fprintf(out, "\n%s\n", strings.Join(parts, "  "))
}

func (t *TUIRenderer) printStatusLine(out io.Writer, f renderer.Frame) {
	remaining := t.StyleText(gotext.Get("SOFT_WALLS_REMAINING"), renderer.StyleLabel) + " " +
		strconv.Itoa(f.Limits.SoftWallsRemaining)

	var score string
	switch {
	case !f.Score.Known:
		score = t.StyleText(gotext.Get("SCORE_PENDING"), renderer.StyleSubtle)
	case !f.Score.Solved:
		score = t.StyleText(gotext.Get("NO_SOLUTION"), renderer.StyleDenied)
	default:
		score = t.StyleText(gotext.Get("SCORE"), renderer.StyleLabel) + " " + strconv.Itoa(f.Score.Steps)
	}

	fmt.Fprintf(out, "%s   %s\n", remaining, score)
}

func (t *TUIRenderer) printMessagesPane(out io.Writer, messages []string) {
	if len(messages) == 0 {
		return
	}
	fmt.Fprintln(out, t.StyleText(gotext.Get("MESSAGES"), renderer.StyleLabel))
	for _, msg := range messages {
		fmt.Fprintf(out, "- %s\n", msg)
	}
}
