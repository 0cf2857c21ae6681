package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/leonelquinteros/gotext"
	"github.com/sirupsen/logrus"

	"mazer/pkg/engine/input"
	"mazer/pkg/engine/world"
	"mazer/pkg/game/animator"
	"mazer/pkg/game/maze"
	"mazer/pkg/game/renderer"
	"mazer/pkg/game/solver"
	"mazer/pkg/game/state"
)

const clearScreen = "\033[H\033[2J"

// shell is the interactive maze editor: it reads commands, applies them to
// the controller and redraws the board
type shell struct {
	maze        *state.Maze
	scorer      *solver.Scorer
	renderer    renderer.Renderer
	out         io.Writer
	logger      logrus.FieldLogger
	interactive bool

	mu     sync.Mutex
	notice string
}

func newShell(m *state.Maze, scorer *solver.Scorer, r renderer.Renderer, out io.Writer, logger logrus.FieldLogger, interactive bool) *shell {
	s := &shell{
		maze:        m,
		scorer:      scorer,
		renderer:    r,
		out:         out,
		logger:      logger,
		interactive: interactive,
	}
	if interactive {
		// Redraw animation frames as they happen
		m.OnChange(s.draw)
	}
	return s
}

// run processes lines until quit or the end of input
func (s *shell) run(ctx context.Context, lines *input.LineReader) error {
	s.draw()
	for {
		raw, err := lines.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		if quit := s.handle(ctx, raw); quit {
			s.write(gotext.Get("GOODBYE") + "\n")
			return nil
		}
		s.draw()
	}
}

func (s *shell) handle(ctx context.Context, raw input.RawInput) bool {
	intent, err := input.Parse(raw)
	if err != nil {
		s.setNotice(s.renderer.StyleText(gotext.Get("UNKNOWN_COMMAND"), renderer.StyleDenied) + " " + err.Error())
		return false
	}

	switch intent.Action {
	case input.ActionPlaceWall:
		s.mutate(intent.Position, world.SoftWall)
	case input.ActionRemoveWall:
		s.mutate(intent.Position, world.Empty)
	case input.ActionClear:
		s.maze.ClearMutations()
	case input.ActionScore:
		s.setNotice(s.describeScore())
	case input.ActionAnimate:
		s.animate(ctx)
	case input.ActionGenerate:
		cfg, err := generateConfiguration(intent.Seed, s.logger)
		s.replaceConfiguration(cfg, err)
	case input.ActionLoad:
		cfg, err := maze.LoadConfiguration(intent.Path)
		s.replaceConfiguration(cfg, err)
	case input.ActionHelp:
		s.setNotice(helpText())
	case input.ActionQuit:
		return true
	}
	return false
}

// mutate places soft walls on empty tiles and removes them from soft wall
// tiles only. Positions off the board are left to the controller.
func (s *shell) mutate(p world.Position, kind world.TileKind) {
	if tile, ok := s.maze.Board().Tile(p); ok {
		switch {
		case kind == world.SoftWall && tile.Kind != world.Empty:
			s.setNotice(s.renderer.StyleText(gotext.Get("TILE_NOT_EMPTY"), renderer.StyleDenied) + " " + p.String())
			return
		case kind == world.Empty && tile.Kind != world.SoftWall:
			s.setNotice(s.renderer.StyleText(gotext.Get("NO_SOFT_WALL"), renderer.StyleDenied) + " " + p.String())
			return
		}
	}
	if err := s.maze.Mutate(p, kind); err != nil {
		s.logger.WithError(err).Error("mutation rejected")
	}
}

// replaceConfiguration swaps in a generated or loaded maze, leaving the
// current one in place when err is set or cfg is invalid
func (s *shell) replaceConfiguration(cfg maze.Configuration, err error) {
	if err == nil {
		err = s.maze.SetConfiguration(cfg)
	}
	if err != nil {
		s.logger.WithError(err).Warn("maze not loaded")
		s.setNotice(s.renderer.StyleText(gotext.Get("MAZE_NOT_LOADED"), renderer.StyleDenied) + " " + err.Error())
	}
}

// animate plays the latest solved path and waits for the trail to fade
func (s *shell) animate(ctx context.Context) {
	outcome, ok := s.scorer.Latest()
	if !ok || !outcome.Solved() {
		s.setNotice(gotext.Get("NOTHING_TO_ANIMATE"))
		return
	}

	err := <-s.maze.Animate(ctx, outcome.Result.Path)
	if err != nil && !errors.Is(err, animator.ErrSuperseded) {
		s.logger.WithError(err).Warn("animation stopped")
	}
}

func (s *shell) describeScore() string {
	outcome, ok := s.scorer.Latest()
	switch {
	case !ok:
		return gotext.Get("SCORE_PENDING")
	case !outcome.Solved():
		return gotext.Get("NO_SOLUTION")
	}

	path := make([]string, 0, len(outcome.Result.Path))
	for _, p := range outcome.Result.Path {
		path = append(path, p.String())
	}
	return fmt.Sprintf("%s %d | %s", gotext.Get("SCORE"), outcome.Result.Score, strings.Join(path, " "))
}

func helpText() string {
	bindings := input.GetBindingsByAction()
	actions := make([]input.Action, 0, len(bindings))
	for act := range bindings {
		actions = append(actions, act)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })

	var b strings.Builder
	b.WriteString(gotext.Get("HELP_HEADER"))
	for _, act := range actions {
		fmt.Fprintf(&b, "\n  %-12s %s", input.ActionName(act), strings.Join(bindings[act], ", "))
	}
	return b.String()
}

func (s *shell) frame() renderer.Frame {
	f := renderer.Frame{
		Board:    s.maze.Board(),
		Limits:   s.maze.Limits(),
		Messages: s.maze.Messages(),
	}
	if outcome, ok := s.scorer.Latest(); ok {
		f.Score = renderer.Score{Known: true, Solved: outcome.Solved()}
		if outcome.Solved() {
			f.Score.Steps = outcome.Result.Score
		}
	}
	return f
}

func (s *shell) setNotice(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = msg
}

// draw renders the current frame, the pending notice and the prompt
func (s *shell) draw() {
	f := s.frame()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.interactive {
		fmt.Fprint(s.out, clearScreen)
	}
	if err := s.renderer.RenderFrame(s.out, f); err != nil {
		s.logger.WithError(err).Warn("rendering frame")
		return
	}
	if s.notice != "" {
		fmt.Fprintf(s.out, "\n%s\n", s.notice)
		s.notice = ""
	}
	fmt.Fprint(s.out, "\n> ")
}

func (s *shell) write(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprint(s.out, msg)
}
