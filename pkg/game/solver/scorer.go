package solver

import (
	"context"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"

	"mazer/pkg/engine/world"
	"mazer/pkg/game/maze"
)

// Outcome is the engine's answer for one input. Result is nil when the maze
// has no solution or the engine failed (Err set).
type Outcome struct {
	Input  Input
	Result *Result
	Err    error
}

// Solved returns true if the outcome carries a result
func (o Outcome) Solved() bool {
	return o.Result != nil
}

// Scorer keeps the engine's answer in step with the latest configuration and
// soft walls. Requests made before the capability is ready are deferred and
// the latest one runs when it fires. Inputs equal in content to the last
// evaluated one do not reach the engine again.
type Scorer struct {
	engine Engine
	ready  *Capability
	ctx    context.Context
	logger logrus.FieldLogger

	runMu sync.Mutex

	mu        sync.Mutex
	pending   *Input
	last      *Input
	latest    Outcome
	evaluated bool
	waiting   bool
	runs      int
	listeners []func(Outcome)
}

// ScorerOption configures a Scorer
type ScorerOption func(*Scorer)

// WithContext sets the context engine runs are made with
func WithContext(ctx context.Context) ScorerOption {
	return func(s *Scorer) {
		if ctx != nil {
			s.ctx = ctx
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger logrus.FieldLogger) ScorerOption {
	return func(s *Scorer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScorer creates a scorer for engine gated by ready
func NewScorer(engine Engine, ready *Capability, opts ...ScorerOption) *Scorer {
	s := &Scorer{
		engine: engine,
		ready:  ready,
		ctx:    context.Background(),
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnResult registers fn to be called after every engine run
func (s *Scorer) OnResult(fn func(Outcome)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Request asks for the outcome of cfg with softWalls.
// When the engine is ready the run happens before Request returns.
func (s *Scorer) Request(cfg maze.Configuration, softWalls []world.Position) {
	in := NewInput(cfg, softWalls)

	s.mu.Lock()
	s.pending = &in
	if !s.ready.IsReady() {
		if !s.waiting {
			s.waiting = true
			go s.awaitReady()
		}
		s.mu.Unlock()
		s.logger.WithField("softWalls", len(softWalls)).Debug("engine not ready, deferring score request")
		return
	}
	s.mu.Unlock()

	s.flush()
}

// Latest returns the most recent outcome, or false if the engine has not run yet
func (s *Scorer) Latest() (Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.evaluated
}

// Runs returns how many times the engine was invoked
func (s *Scorer) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

func (s *Scorer) awaitReady() {
	<-s.ready.Ready()

	s.mu.Lock()
	s.waiting = false
	s.mu.Unlock()

	if err := s.ready.Err(); err != nil {
		s.logger.WithError(err).Error("engine initialization failed")
		return
	}
	s.flush()
}

func (s *Scorer) flush() {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	s.mu.Lock()
	in := s.pending
	s.pending = nil
	if in == nil || (s.last != nil && s.last.Equal(*in)) {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	result, err := s.engine.Run(s.ctx, in.Configuration, in.SoftWalls)
	if err != nil {
		s.logger.WithError(err).Warn("engine run failed")
		result = nil
	}
	outcome := Outcome{Input: *in, Result: result, Err: err}

	s.mu.Lock()
	s.last = in
	s.latest = outcome
	s.evaluated = true
	s.runs++
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	if result != nil {
		s.logger.WithField("score", result.Score).Debug("engine scored maze")
	} else if err == nil {
		s.logger.Debug("engine found no solution")
	}

	for _, fn := range listeners {
		fn(outcome)
	}
}
