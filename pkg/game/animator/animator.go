// Package animator plays a path back as a moving, decaying trail of highlighted tiles.
package animator

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mazer/pkg/engine/world"
	"mazer/pkg/game/maze"
)

// DefaultInterval is the delay between two ticks of a session
const DefaultInterval = 75 * time.Millisecond

// ErrSuperseded is returned by Run when another session took over the highlights
var ErrSuperseded = errors.New("animation session superseded")

// Step applies one tick to a highlight trail.
// Every entry decays by one and entries reaching zero are dropped; then the head
// of path, if any, is appended at maximum significancy. done is true once the
// resulting trail is empty. The inputs are not modified.
func Step(highlighted []maze.Highlight, path []world.Position) (next []maze.Highlight, rest []world.Position, done bool) {
	next = make([]maze.Highlight, 0, len(highlighted)+1)
	for _, h := range highlighted {
		h.Significancy--
		if h.Significancy > 0 {
			next = append(next, h)
		}
	}

	rest = path
	if len(path) > 0 {
		next = append(next, maze.Highlight{Position: path[0], Significancy: maze.MaxSignificancy})
		rest = path[1:]
	}

	return next, rest, len(next) == 0
}

// Session is the cancellation token of one animation run.
// A session stays live only while its ID is the host's current session.
type Session struct {
	id   uuid.UUID
	path []world.Position
}

// NewSession creates a session with a fresh token for the given path
func NewSession(path []world.Position) *Session {
	return &Session{id: uuid.New(), path: slices.Clone(path)}
}

// ID returns the session token
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Remaining returns how many path positions have not been shown yet
func (s *Session) Remaining() int {
	return len(s.path)
}

// Host owns the highlight list and the current session token.
// ApplyTick must run tick against the current highlights and store the result
// only if id is still the current session, reporting whether it did.
type Host interface {
	ApplyTick(id uuid.UUID, tick func([]maze.Highlight) []maze.Highlight) bool
}

// Animator drives sessions at a fixed interval
type Animator struct {
	interval time.Duration
	after    func(time.Duration) <-chan time.Time
	logger   logrus.FieldLogger
}

// Option configures an Animator
type Option func(*Animator)

// WithInterval sets the delay between ticks
func WithInterval(d time.Duration) Option {
	return func(a *Animator) {
		if d >= 0 {
			a.interval = d
		}
	}
}

// WithAfter replaces time.After, letting tests drive ticks by hand
func WithAfter(after func(time.Duration) <-chan time.Time) Option {
	return func(a *Animator) {
		if after != nil {
			a.after = after
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger logrus.FieldLogger) Option {
	return func(a *Animator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates an animator ticking every DefaultInterval unless configured otherwise
func New(opts ...Option) *Animator {
	a := &Animator{
		interval: DefaultInterval,
		after:    time.After,
		logger:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Interval returns the delay between ticks
func (a *Animator) Interval() time.Duration {
	return a.interval
}

// Run plays session s on host until the trail empties, the session is
// superseded, or ctx is done. A cancelled session clears its trail. Ticks are strictly sequential: the next tick
// starts only after the previous one applied and the interval elapsed.
func (a *Animator) Run(ctx context.Context, host Host, s *Session) error {
	log := a.logger.WithField("session", s.id)
	log.WithField("length", len(s.path)).Debug("animation started")

	for tick := 1; ; tick++ {
		done := false
		applied := host.ApplyTick(s.id, func(highlighted []maze.Highlight) []maze.Highlight {
			next, rest, finished := Step(highlighted, s.path)
			s.path = rest
			done = finished
			return next
		})

		if !applied {
			log.WithField("tick", tick).Debug("animation superseded")
			return ErrSuperseded
		}
		if done {
			log.WithField("ticks", tick).Debug("animation finished")
			return nil
		}

		select {
		case <-ctx.Done():
			// A cancelled trail would never decay, so drop it while the session still owns it
			host.ApplyTick(s.id, func([]maze.Highlight) []maze.Highlight { return nil })
			log.WithField("tick", tick).Debug("animation cancelled")
			return ctx.Err()
		case <-a.after(a.interval):
		}
	}
}
