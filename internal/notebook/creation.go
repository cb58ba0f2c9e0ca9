package notebook

import (
	"errors"
	"sync"
)

// CreationState is the lifecycle of a document creation request.
type CreationState int

const (
	CreationPending CreationState = iota
	CreationCommitted
	CreationFailed
)

func (s CreationState) String() string {
	switch s {
	case CreationCommitted:
		return "committed"
	case CreationFailed:
		return "failed"
	default:
		return "pending"
	}
}

// Creation tracks one asynchronous creation: Pending until either Commit or
// Fail settles it. Only the first settle counts.
type Creation struct {
	mu       sync.Mutex
	state    CreationState
	path     string
	err      error
	done     chan struct{}
	onCommit []func(path string)
	onFail   []func(err error)
}

// NewCreation returns a pending creation.
func NewCreation() *Creation {
	return &Creation{done: make(chan struct{})}
}

// Committed returns an already committed creation.
func Committed(path string) *Creation {
	c := NewCreation()
	c.Commit(path)
	return c
}

// Failed returns an already failed creation.
func Failed(err error) *Creation {
	c := NewCreation()
	c.Fail(err)
	return c
}

// Commit settles the creation with the path of the new document.
func (c *Creation) Commit(path string) {
	c.mu.Lock()
	if c.state != CreationPending {
		c.mu.Unlock()
		return
	}
	c.state = CreationCommitted
	c.path = path
	handlers := c.onCommit
	c.onCommit, c.onFail = nil, nil
	close(c.done)
	c.mu.Unlock()
	for _, fn := range handlers {
		fn(path)
	}
}

// Fail settles the creation with an error.
func (c *Creation) Fail(err error) {
	if err == nil {
		err = errors.New("unknown error")
	}
	c.mu.Lock()
	if c.state != CreationPending {
		c.mu.Unlock()
		return
	}
	c.state = CreationFailed
	c.err = err
	handlers := c.onFail
	c.onCommit, c.onFail = nil, nil
	close(c.done)
	c.mu.Unlock()
	for _, fn := range handlers {
		fn(err)
	}
}

// Then attaches continuations. If the creation is already settled the
// matching continuation runs immediately on the caller's goroutine.
func (c *Creation) Then(onCommit func(path string), onFail func(err error)) {
	c.mu.Lock()
	switch c.state {
	case CreationCommitted:
		path := c.path
		c.mu.Unlock()
		if onCommit != nil {
			onCommit(path)
		}
		return
	case CreationFailed:
		err := c.err
		c.mu.Unlock()
		if onFail != nil {
			onFail(err)
		}
		return
	}
	if onCommit != nil {
		c.onCommit = append(c.onCommit, onCommit)
	}
	if onFail != nil {
		c.onFail = append(c.onFail, onFail)
	}
	c.mu.Unlock()
}

// State reports the current state.
func (c *Creation) State() CreationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Done is closed once the creation settles.
func (c *Creation) Done() <-chan struct{} {
	return c.done
}

// Result returns the committed path or the failure.
func (c *Creation) Result() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.path, c.err
}
