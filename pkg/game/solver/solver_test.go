package solver

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mazer/pkg/engine/world"
	"mazer/pkg/game/maze"
)

// countingEngine records every input it is run with
type countingEngine struct {
	mu     sync.Mutex
	inputs []Input
	result *Result
	err    error
}

func (e *countingEngine) Run(_ context.Context, cfg maze.Configuration, softWalls []world.Position) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.inputs = append(e.inputs, NewInput(cfg, softWalls))
	return e.result, e.err
}

func (e *countingEngine) calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.inputs)
}

func quietLogger() logrus.FieldLogger {
	logger, _ := test.NewNullLogger()
	return logger
}

func readyCapability(t *testing.T) *Capability {
	t.Helper()
	c := NewCapability(nil)
	require.NoError(t, c.Wait(context.Background()))
	return c
}

func testConfiguration() maze.Configuration {
	return maze.Configuration{
		ColCount:         3,
		RowCount:         3,
		MaxSoftWallCount: 1,
		Walls:            []world.Position{world.Pos(1, 0)},
		Entrypoints:      []world.Position{world.Pos(0, 0)},
		Checkpoints:      []maze.Checkpoint{{Position: world.Pos(2, 2), Level: 1}},
	}
}

func TestInputEqual(t *testing.T) {
	cfg := testConfiguration()
	a := NewInput(cfg, []world.Position{world.Pos(1, 1)})
	b := NewInput(cfg.Clone(), []world.Position{world.Pos(1, 1)})
	assert.True(t, a.Equal(b))

	c := NewInput(cfg, []world.Position{world.Pos(2, 1)})
	assert.False(t, a.Equal(c))

	other := cfg.Clone()
	other.MaxSoftWallCount = 2
	assert.False(t, a.Equal(NewInput(other, []world.Position{world.Pos(1, 1)})))
}

func TestCapability_InitRunsOnce(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	c := NewCapability(func() error {
		mu.Lock()
		calls++
		mu.Unlock()
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, c.Wait(context.Background()))
		}()
	}
	wg.Wait()

	assert.True(t, c.IsReady())
	mu.Lock()
	assert.Equal(t, 1, calls)
	mu.Unlock()
}

func TestCapability_InitError(t *testing.T) {
	boom := errors.New("boom")
	c := NewCapability(func() error { return boom })

	assert.ErrorIs(t, c.Wait(context.Background()), boom)
	assert.False(t, c.IsReady())
	assert.ErrorIs(t, c.Err(), boom)
}

func TestCapability_WaitHonoursContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	c := NewCapability(func() error {
		<-release
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, c.Wait(ctx), context.Canceled)
	assert.False(t, c.IsReady())
	assert.NoError(t, c.Err())
}

func TestShared_SameInstance(t *testing.T) {
	first := Shared(nil)
	second := Shared(func() error { return errors.New("ignored") })
	assert.Same(t, first, second)
}

func TestScorer_RunsWhenReady(t *testing.T) {
	engine := &countingEngine{result: &Result{Score: 4}}
	s := NewScorer(engine, readyCapability(t), WithLogger(quietLogger()))

	_, ok := s.Latest()
	assert.False(t, ok)

	s.Request(testConfiguration(), nil)

	outcome, ok := s.Latest()
	require.True(t, ok)
	assert.True(t, outcome.Solved())
	assert.Equal(t, 4, outcome.Result.Score)
	assert.Equal(t, 1, engine.calls())
}

func TestScorer_SkipsUnchangedInput(t *testing.T) {
	engine := &countingEngine{result: &Result{Score: 4}}
	s := NewScorer(engine, readyCapability(t), WithLogger(quietLogger()))

	cfg := testConfiguration()
	walls := []world.Position{world.Pos(1, 1)}
	s.Request(cfg, walls)
	s.Request(cfg.Clone(), []world.Position{world.Pos(1, 1)})
	assert.Equal(t, 1, engine.calls())

	s.Request(cfg, []world.Position{world.Pos(2, 1)})
	assert.Equal(t, 2, engine.calls())
	assert.Equal(t, 2, s.Runs())
}

func TestScorer_CopiesInput(t *testing.T) {
	engine := &countingEngine{}
	s := NewScorer(engine, readyCapability(t), WithLogger(quietLogger()))

	walls := []world.Position{world.Pos(1, 1)}
	s.Request(testConfiguration(), walls)
	walls[0] = world.Pos(2, 2)

	s.Request(testConfiguration(), []world.Position{world.Pos(1, 1)})
	assert.Equal(t, 1, engine.calls())
}

func TestScorer_DefersUntilReady(t *testing.T) {
	release := make(chan struct{})
	capability := NewCapability(func() error {
		<-release
		return nil
	})
	engine := &countingEngine{result: &Result{Score: 9}}
	s := NewScorer(engine, capability, WithLogger(quietLogger()))

	results := make(chan Outcome, 4)
	s.OnResult(func(o Outcome) { results <- o })

	s.Request(testConfiguration(), nil)
	s.Request(testConfiguration(), []world.Position{world.Pos(1, 1)})
	assert.Equal(t, 0, engine.calls())

	close(release)

	select {
	case outcome := <-results:
		assert.Equal(t, []world.Position{world.Pos(1, 1)}, outcome.Input.SoftWalls)
		assert.Equal(t, 9, outcome.Result.Score)
	case <-time.After(2 * time.Second):
		t.Fatal("deferred request never ran")
	}
	assert.Equal(t, 1, engine.calls())
}

func TestScorer_EngineErrorIsNoScore(t *testing.T) {
	boom := errors.New("boom")
	engine := &countingEngine{result: &Result{Score: 1}, err: boom}
	s := NewScorer(engine, readyCapability(t), WithLogger(quietLogger()))

	s.Request(testConfiguration(), nil)

	outcome, ok := s.Latest()
	require.True(t, ok)
	assert.False(t, outcome.Solved())
	assert.ErrorIs(t, outcome.Err, boom)
}

func TestScorer_NoSolution(t *testing.T) {
	s := NewScorer(&countingEngine{}, readyCapability(t), WithLogger(quietLogger()))
	s.Request(testConfiguration(), nil)

	outcome, ok := s.Latest()
	require.True(t, ok)
	assert.False(t, outcome.Solved())
	assert.NoError(t, outcome.Err)
}

func TestEngineFunc(t *testing.T) {
	var got []world.Position
	engine := EngineFunc(func(_ context.Context, _ maze.Configuration, softWalls []world.Position) (*Result, error) {
		got = softWalls
		return &Result{Score: 2}, nil
	})

	result, err := engine.Run(context.Background(), testConfiguration(), []world.Position{world.Pos(0, 1)})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Score)
	assert.Equal(t, []world.Position{world.Pos(0, 1)}, got)
}
