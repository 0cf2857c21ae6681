package solver

import (
	"context"
	"sync"
)

// Capability is a one-shot readiness signal for the engine.
// Initialization starts on first access, runs once, and every caller waits on
// the same signal.
type Capability struct {
	init func() error
	once sync.Once
	done chan struct{}
	err  error
}

// NewCapability creates a capability that runs init on first access
func NewCapability(init func() error) *Capability {
	if init == nil {
		init = func() error { return nil }
	}
	return &Capability{init: init, done: make(chan struct{})}
}

func (c *Capability) start() {
	c.once.Do(func() {
		go func() {
			c.err = c.init()
			close(c.done)
		}()
	})
}

// Ready returns a channel closed once initialization finished, successfully or not
func (c *Capability) Ready() <-chan struct{} {
	c.start()
	return c.done
}

// IsReady reports whether initialization finished without error
func (c *Capability) IsReady() bool {
	select {
	case <-c.Ready():
		return c.err == nil
	default:
		return false
	}
}

// Err returns the initialization error, or nil while still initializing
func (c *Capability) Err() error {
	select {
	case <-c.Ready():
		return c.err
	default:
		return nil
	}
}

// Wait blocks until initialization finished or ctx is done
func (c *Capability) Wait(ctx context.Context) error {
	select {
	case <-c.Ready():
		return c.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

var (
	sharedMu sync.Mutex
	shared   *Capability
)

// Shared returns the process-wide engine capability, creating it with init on
// first call. Later calls return the same instance and ignore init.
func Shared(init func() error) *Capability {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if shared == nil {
		shared = NewCapability(init)
	}
	return shared
}
