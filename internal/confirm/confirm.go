// Package confirm implements a single-slot confirmation request: a
// destructive action waits until a person answers yes or no.
package confirm

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrPending    = errors.New("a confirmation is already pending")
	ErrNotPending = errors.New("no confirmation is pending")
)

// State is the confirmer's position in its idle/pending cycle.
type State int

const (
	Idle State = iota
	Pending
)

func (s State) String() string {
	if s == Pending {
		return "pending"
	}
	return "idle"
}

type request struct {
	message string
	answer  chan bool
}

// Confirmer holds at most one outstanding request.
type Confirmer struct {
	prompt func(message string)

	mu      sync.Mutex
	pending *request
}

// New creates a Confirmer. prompt, if non-nil, is called each time a request
// becomes pending; it may call Resolve before returning.
func New(prompt func(message string)) *Confirmer {
	return &Confirmer{prompt: prompt}
}

// Request blocks until the pending request is resolved or ctx is done. It
// fails with ErrPending if another request is outstanding.
func (c *Confirmer) Request(ctx context.Context, message string) (bool, error) {
	c.mu.Lock()
	if c.pending != nil {
		c.mu.Unlock()
		return false, ErrPending
	}
	req := &request{message: message, answer: make(chan bool, 1)}
	c.pending = req
	c.mu.Unlock()

	if c.prompt != nil {
		c.prompt(message)
	}

	select {
	case ok := <-req.answer:
		return ok, nil
	case <-ctx.Done():
		c.mu.Lock()
		if c.pending == req {
			c.pending = nil
		}
		c.mu.Unlock()
		return false, ctx.Err()
	}
}

// Resolve answers the pending request and returns the confirmer to Idle.
func (c *Confirmer) Resolve(ok bool) error {
	c.mu.Lock()
	req := c.pending
	c.pending = nil
	c.mu.Unlock()

	if req == nil {
		return ErrNotPending
	}
	req.answer <- ok
	return nil
}

// State returns Pending while a request is outstanding.
func (c *Confirmer) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != nil {
		return Pending
	}
	return Idle
}

// Message returns the text of the pending request.
func (c *Confirmer) Message() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return "", false
	}
	return c.pending.message, true
}
