package animator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mazer/pkg/engine/world"
	"mazer/pkg/game/maze"
)

// fakeHost records every highlight list it stores
type fakeHost struct {
	mu          sync.Mutex
	current     uuid.UUID
	highlighted []maze.Highlight
	history     [][]maze.Highlight

	// supersedeAfter switches the current token once this many ticks applied
	supersedeAfter int
}

func (h *fakeHost) ApplyTick(id uuid.UUID, tick func([]maze.Highlight) []maze.Highlight) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if id != h.current {
		return false
	}
	h.highlighted = tick(h.highlighted)
	h.history = append(h.history, h.highlighted)
	if h.supersedeAfter > 0 && len(h.history) == h.supersedeAfter {
		h.current = uuid.New()
	}
	return true
}

// immediate fires every wait straight away so Run completes synchronously
func immediate(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

func quietLogger() logrus.FieldLogger {
	logger, _ := test.NewNullLogger()
	return logger
}

func linePath(n int) []world.Position {
	path := make([]world.Position, n)
	for i := range path {
		path[i] = world.Pos(i, 0)
	}
	return path
}

func TestStep(t *testing.T) {
	highlighted := []maze.Highlight{
		{Position: world.Pos(0, 0), Significancy: 1},
		{Position: world.Pos(1, 0), Significancy: 5},
	}
	path := []world.Position{world.Pos(2, 0), world.Pos(3, 0)}

	next, rest, done := Step(highlighted, path)

	assert.Equal(t, []maze.Highlight{
		{Position: world.Pos(1, 0), Significancy: 4},
		{Position: world.Pos(2, 0), Significancy: maze.MaxSignificancy},
	}, next)
	assert.Equal(t, []world.Position{world.Pos(3, 0)}, rest)
	assert.False(t, done)
	assert.Equal(t, 1, highlighted[0].Significancy, "input highlights modified")
}

func TestStep_EmptyTrailAndPathIsDone(t *testing.T) {
	next, rest, done := Step(nil, nil)
	assert.Empty(t, next)
	assert.Empty(t, rest)
	assert.True(t, done)
}

func TestRun_DecayLaw(t *testing.T) {
	for _, length := range []int{0, 1, 3, 7, 12} {
		t.Run(fmt.Sprintf("length=%d", length), func(t *testing.T) {
			path := linePath(length)
			s := NewSession(path)
			host := &fakeHost{current: s.ID()}
			a := New(WithAfter(immediate), WithLogger(quietLogger()))

			require.NoError(t, a.Run(context.Background(), host, s))

			for k, highlighted := range host.history {
				tick := k + 1
				lo := max(1, tick-6)
				var want []world.Position
				for j := lo; j <= tick && j <= length; j++ {
					want = append(want, path[j-1])
				}
				var got []world.Position
				for _, h := range highlighted {
					require.GreaterOrEqual(t, h.Significancy, 1)
					require.LessOrEqual(t, h.Significancy, maze.MaxSignificancy)
					got = append(got, h.Position)
				}
				assert.Equal(t, want, got, "highlights after tick %d of %d", tick, length)
			}

			assert.LessOrEqual(t, len(host.history), length+7)
			if length > 0 {
				assert.Len(t, host.history, length+7, "session should end exactly when the last tile fades")
			}
			assert.Empty(t, host.highlighted)
			assert.Equal(t, 0, s.Remaining())
		})
	}
}

func TestRun_Superseded(t *testing.T) {
	s := NewSession(linePath(5))
	host := &fakeHost{current: s.ID(), supersedeAfter: 2}
	a := New(WithAfter(immediate), WithLogger(quietLogger()))

	err := a.Run(context.Background(), host, s)

	assert.True(t, errors.Is(err, ErrSuperseded))
	assert.Len(t, host.history, 2, "superseded session kept mutating")
	assert.Equal(t, 3, s.Remaining())
}

func TestRun_StaleTokenNeverMutates(t *testing.T) {
	s := NewSession(linePath(3))
	host := &fakeHost{current: uuid.New()}
	a := New(WithAfter(immediate), WithLogger(quietLogger()))

	assert.ErrorIs(t, a.Run(context.Background(), host, s), ErrSuperseded)
	assert.Empty(t, host.history)
}

func TestRun_ContextCancelled(t *testing.T) {
	s := NewSession(linePath(4))
	host := &fakeHost{current: s.ID()}
	never := func(time.Duration) <-chan time.Time { return nil }
	a := New(WithAfter(never), WithLogger(quietLogger()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, a.Run(ctx, host, s), context.Canceled)
	require.Len(t, host.history, 2)
	assert.Len(t, host.history[0], 1)
	assert.Empty(t, host.highlighted, "cancelled trail left on the board")
}

func TestRun_ContextCancelledAfterSupersede(t *testing.T) {
	s := NewSession(linePath(4))
	host := &fakeHost{current: s.ID(), supersedeAfter: 1}
	never := func(time.Duration) <-chan time.Time { return nil }
	a := New(WithAfter(never), WithLogger(quietLogger()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, a.Run(ctx, host, s), context.Canceled)
	assert.Len(t, host.history, 1, "superseded session cleared the new owner's trail")
	assert.Len(t, host.highlighted, 1)
}

func TestRun_WaitsForEachInterval(t *testing.T) {
	s := NewSession(linePath(2))
	host := &fakeHost{current: s.ID()}
	ticks := make(chan time.Time)
	var waited []time.Duration
	var mu sync.Mutex
	a := New(
		WithInterval(30*time.Millisecond),
		WithLogger(quietLogger()),
		WithAfter(func(d time.Duration) <-chan time.Time {
			mu.Lock()
			waited = append(waited, d)
			mu.Unlock()
			return ticks
		}),
	)

	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background(), host, s) }()

	// Each send releases exactly one tick; 2 path tiles fade out after 9 ticks.
	for i := 0; i < 8; i++ {
		ticks <- time.Time{}
	}
	require.NoError(t, <-done)

	host.mu.Lock()
	assert.Len(t, host.history, 9)
	host.mu.Unlock()

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, waited, 8)
	for _, d := range waited {
		assert.Equal(t, 30*time.Millisecond, d)
	}
}

func TestNewSession_CopiesPath(t *testing.T) {
	path := linePath(2)
	s := NewSession(path)
	path[0] = world.Pos(9, 9)
	assert.Equal(t, 2, s.Remaining())
	assert.NotEqual(t, uuid.Nil, s.ID())
	assert.NotEqual(t, s.ID(), NewSession(path).ID())
}

func TestNew_Defaults(t *testing.T) {
	assert.Equal(t, DefaultInterval, New().Interval())
	assert.Equal(t, DefaultInterval, New(WithInterval(-time.Second)).Interval())
}
