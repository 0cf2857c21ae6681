package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gookit/color"

	"mazer/pkg/engine/world"
	"mazer/pkg/game/maze"
	"mazer/pkg/game/renderer"
)

func scenarioBoard(t *testing.T) world.Board {
	t.Helper()
	base, err := maze.Build(maze.Configuration{
		ColCount:         3,
		RowCount:         3,
		MaxSoftWallCount: 1,
		Walls:            []world.Position{world.Pos(2, 0)},
		Entrypoints:      []world.Position{world.Pos(0, 0)},
		Checkpoints: []maze.Checkpoint{
			{Position: world.Pos(0, 2), Level: 1},
			{Position: world.Pos(2, 2), Level: 2},
		},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return maze.Overlay(base, maze.MutationSet{
		SoftWalls:   []world.Position{world.Pos(1, 1)},
		Highlighted: []maze.Highlight{{Position: world.Pos(1, 0), Significancy: 7}},
	})
}

func render(t *testing.T, f renderer.Frame) []string {
	t.Helper()
	r := New()
	r.Init()

	var buf bytes.Buffer
	if err := r.RenderFrame(&buf, f); err != nil {
		t.Fatalf("RenderFrame() error = %v", err)
	}
	return strings.Split(color.ClearCode(buf.String()), "\n")
}

func TestRenderFrame_Board(t *testing.T) {
	lines := render(t, renderer.Frame{Board: scenarioBoard(t)})

	want := []string{
		"2 1 · △",
		"1 · ▓ ·",
		"0 ◉ ● ▒",
		"  0 1 2",
	}
	for i, line := range want {
		if lines[i] != line {
			t.Errorf("line %d = %q, want %q", i, lines[i], line)
		}
	}
}

func TestRenderFrame_Status(t *testing.T) {
	tests := []struct {
		name  string
		score renderer.Score
		want  string
	}{
		{"pending", renderer.Score{}, "SCORE_PENDING"},
		{"no solution", renderer.Score{Known: true}, "NO_SOLUTION"},
		{"solved", renderer.Score{Known: true, Solved: true, Steps: 14}, "SCORE 14"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := render(t, renderer.Frame{
				Board:  scenarioBoard(t),
				Limits: maze.Limits{SoftWallsRemaining: 2},
				Score:  tt.score,
			})
			out := strings.Join(lines, "\n")
			if !strings.Contains(out, "SOFT_WALLS_REMAINING 2") {
				t.Errorf("output missing remaining soft walls:\n%s", out)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestRenderFrame_Messages(t *testing.T) {
	lines := render(t, renderer.Frame{Board: scenarioBoard(t), Messages: []string{"first", "second"}})
	out := strings.Join(lines, "\n")

	if !strings.Contains(out, "MESSAGES\n- first\n- second") {
		t.Errorf("messages pane not rendered:\n%s", out)
	}

	lines = render(t, renderer.Frame{Board: scenarioBoard(t)})
	if strings.Contains(strings.Join(lines, "\n"), "MESSAGES") {
		t.Error("empty messages pane rendered")
	}
}

func TestRenderTile(t *testing.T) {
	r := New()
	r.Init()

	tests := []struct {
		tile world.Tile
		want string
	}{
		{world.NewTile(world.Empty), IconFloor},
		{world.NewTile(world.Wall), IconWall},
		{world.NewTile(world.SoftWall), IconSoftWall},
		{world.NewTile(world.Entrypoint), IconEntrypoint},
		{world.NewTile(world.Exit), IconExit},
		{world.NewCheckpointTile(3), "3"},
		{world.NewCheckpointTile(12), IconCheckpoint},
		{world.Tile{Kind: world.Empty, Highlight: 2}, IconTrail},
		{world.Tile{Kind: world.Exit, Highlight: 7}, IconExit},
	}

	for _, tt := range tests {
		if got := color.ClearCode(r.RenderTile(tt.tile)); got != tt.want {
			t.Errorf("RenderTile(%v) = %q, want %q", tt.tile, got, tt.want)
		}
	}
}

func TestStyleText_UnknownStyle(t *testing.T) {
	r := New()
	r.Init()
	if got := r.StyleText("x", renderer.StyleNormal); got != "x" {
		t.Errorf("StyleText(StyleNormal) = %q, want %q", got, "x")
	}
}
