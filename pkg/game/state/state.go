// Package state holds the maze controller: the single owner of the active
// configuration, the player's mutations, and the animation session token.
package state

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mazer/pkg/engine/world"
	"mazer/pkg/game/animator"
	"mazer/pkg/game/maze"
	"mazer/pkg/game/solver"
)

// ErrUnsupportedKind is returned by Mutate for kinds other than SoftWall and Empty
var ErrUnsupportedKind = errors.New("unsupported mutation kind")

// Maze is the state controller. All methods are safe for concurrent use.
type Maze struct {
	mu sync.Mutex

	cfg       maze.Configuration
	boards    maze.BoardCache
	mutations maze.MutationSet
	session   uuid.UUID

	// versions key the overlay snapshot memo
	cfgVersion      uint64
	mutationVersion uint64
	snapshot        world.Board
	snapshotCfg     uint64
	snapshotMut     uint64
	snapshotValid   bool

	animator  *animator.Animator
	scorer    *solver.Scorer
	logger    logrus.FieldLogger
	messages  *MessageLog
	listeners []func()
}

// Option configures a Maze
type Option func(*Maze)

// WithLogger sets the logger
func WithLogger(logger logrus.FieldLogger) Option {
	return func(m *Maze) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithAnimator sets the animator used by Animate
func WithAnimator(a *animator.Animator) Option {
	return func(m *Maze) {
		if a != nil {
			m.animator = a
		}
	}
}

// WithScorer forwards every configuration and soft wall change to s
func WithScorer(s *solver.Scorer) Option {
	return func(m *Maze) {
		m.scorer = s
	}
}

// WithMessageLimit sets how many messages the log keeps
func WithMessageLimit(limit int) Option {
	return func(m *Maze) {
		m.messages = NewMessageLog(limit)
	}
}

// New creates a controller for cfg. cfg is copied; an invalid configuration is an error.
func New(cfg maze.Configuration, opts ...Option) (*Maze, error) {
	m := &Maze{
		logger:   logrus.StandardLogger(),
		messages: NewMessageLog(DefaultMessageLimit),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.animator == nil {
		m.animator = animator.New(animator.WithLogger(m.logger))
	}

	if _, err := m.boards.Get(cfg); err != nil {
		return nil, err
	}
	m.cfg = cfg.Clone()
	m.requestScore(m.cfg, nil)
	return m, nil
}

// OnChange registers fn to be called after every state change.
// Listeners run outside the controller's lock and may call back into it.
func (m *Maze) OnChange(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Mutate places (SoftWall) or removes (Empty) the soft wall at pos.
// Placing beyond the budget and positions outside the board are ignored.
func (m *Maze) Mutate(pos world.Position, kind world.TileKind) error {
	if kind != world.SoftWall && kind != world.Empty {
		return fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	}

	m.mu.Lock()
	log := m.logger.WithFields(logrus.Fields{"x": pos.X, "y": pos.Y})
	if !m.cfg.InBounds(pos) {
		m.mu.Unlock()
		log.Debug("ignoring mutation outside the board")
		return nil
	}

	before := m.mutations
	next := before.WithoutSoftWall(pos)
	if kind == world.SoftWall {
		var placed bool
		next, placed = before.WithSoftWall(pos, m.cfg.MaxSoftWallCount)
		if !placed {
			m.messages.Add(Message(MsgBudgetExhausted, pos))
			m.mu.Unlock()
			log.WithField("remaining", 0).Debug("soft wall budget exhausted")
			m.notify()
			return nil
		}
		if !before.HasSoftWall(pos) {
			m.messages.Add(Message(MsgSoftWallPlaced, pos))
		}
	} else if before.HasSoftWall(pos) {
		m.messages.Add(Message(MsgSoftWallRemoved, pos))
	}

	changed := !next.Equal(before)
	if changed {
		m.mutations = next
		m.mutationVersion++
	}
	cfg := m.cfg
	softWalls := slices.Clone(m.mutations.SoftWalls)
	remaining := maze.ComputeLimits(m.cfg, m.mutations).SoftWallsRemaining
	m.mu.Unlock()

	if !changed {
		return nil
	}
	log.WithFields(logrus.Fields{"kind": kind, "remaining": remaining}).Debug("mutation applied")
	m.requestScore(cfg, softWalls)
	m.notify()
	return nil
}

// ClearMutations removes every soft wall and highlight. A running animation keeps running.
func (m *Maze) ClearMutations() {
	m.mu.Lock()
	if m.mutations.IsEmpty() {
		m.mu.Unlock()
		return
	}
	hadSoftWalls := len(m.mutations.SoftWalls) > 0
	m.mutations = maze.MutationSet{}
	m.mutationVersion++
	m.messages.Add(Message(MsgMutationsCleared))
	cfg := m.cfg
	m.mu.Unlock()

	m.logger.Debug("mutations cleared")
	if hadSoftWalls {
		m.requestScore(cfg, nil)
	}
	m.notify()
}

// Animate starts a new animation session for path and returns a channel that
// receives the session's outcome: nil when the trail ran out,
// animator.ErrSuperseded when another session or a configuration change took
// over, or the context error. Existing highlights are cleared and the new
// session owns the highlights before Animate returns.
func (m *Maze) Animate(ctx context.Context, path []world.Position) <-chan error {
	s := animator.NewSession(path)

	m.mu.Lock()
	m.session = s.ID()
	if len(m.mutations.Highlighted) > 0 {
		m.mutations = m.mutations.WithHighlights(nil)
		m.mutationVersion++
	}
	m.mu.Unlock()
	m.notify()

	out := make(chan error, 1)
	go func() {
		out <- m.animator.Run(ctx, sessionHost{m}, s)
	}()
	return out
}

// SetConfiguration replaces the configuration. An invalid configuration is
// rejected and the current state is left untouched. Otherwise mutations are
// cleared, the running animation is cancelled and the base board rebuilt, all
// in one step.
func (m *Maze) SetConfiguration(cfg maze.Configuration) error {
	m.mu.Lock()
	if _, err := m.boards.Get(cfg); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("setting configuration: %w", err)
	}
	m.mutations = maze.MutationSet{}
	m.mutationVersion++
	m.session = uuid.Nil
	m.cfg = cfg.Clone()
	m.cfgVersion++
	m.messages.Add(Message(MsgConfigurationChanged, fmt.Sprintf("%dx%d", m.cfg.ColCount, m.cfg.RowCount)))
	next := m.cfg
	m.mu.Unlock()

	m.logger.WithFields(logrus.Fields{
		"cols": next.ColCount,
		"rows": next.RowCount,
	}).Info("maze configuration changed")
	m.requestScore(next, nil)
	m.notify()
	return nil
}

// Board returns the current board: the base board with mutations overlaid
func (m *Maze) Board() world.Board {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.snapshotValid && m.snapshotCfg == m.cfgVersion && m.snapshotMut == m.mutationVersion {
		return m.snapshot
	}
	base, err := m.boards.Get(m.cfg)
	if err != nil {
		// cfg was validated on the way in
		m.logger.WithError(err).Error("rebuilding base board")
		return world.Board{}
	}
	m.snapshot = maze.Overlay(base, m.mutations)
	m.snapshotCfg = m.cfgVersion
	m.snapshotMut = m.mutationVersion
	m.snapshotValid = true
	return m.snapshot
}

// Limits returns the remaining budget
func (m *Maze) Limits() maze.Limits {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maze.ComputeLimits(m.cfg, m.mutations)
}

// Mutations returns a copy of the current mutation set
func (m *Maze) Mutations() maze.MutationSet {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mutations.Clone()
}

// Configuration returns a copy of the active configuration
func (m *Maze) Configuration() maze.Configuration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg.Clone()
}

// Messages returns the most recent log messages, oldest first
func (m *Maze) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.messages.All()
}

// applyTick checks the session token and applies the tick under one lock, so a
// superseded session can never land a late update after Animate cleared the
// trail. This closes the one-tick flicker window rather than reproducing it.
func (m *Maze) applyTick(id uuid.UUID, tick func([]maze.Highlight) []maze.Highlight) bool {
	m.mu.Lock()
	if id != m.session {
		m.mu.Unlock()
		return false
	}
	next := tick(slices.Clone(m.mutations.Highlighted))
	changed := !slices.Equal(next, m.mutations.Highlighted)
	if changed {
		m.mutations = m.mutations.WithHighlights(next)
		m.mutationVersion++
	}
	m.mu.Unlock()

	if changed {
		m.notify()
	}
	return true
}

func (m *Maze) requestScore(cfg maze.Configuration, softWalls []world.Position) {
	if m.scorer != nil {
		m.scorer.Request(cfg, softWalls)
	}
}

func (m *Maze) notify() {
	m.mu.Lock()
	listeners := slices.Clone(m.listeners)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// sessionHost exposes the controller to the animator without widening Maze's API
type sessionHost struct {
	m *Maze
}

func (h sessionHost) ApplyTick(id uuid.UUID, tick func([]maze.Highlight) []maze.Highlight) bool {
	return h.m.applyTick(id, tick)
}
