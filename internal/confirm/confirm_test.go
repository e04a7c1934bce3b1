package confirm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	ok  bool
	err error
}

func waitPending(t *testing.T, c *Confirmer) {
	t.Helper()
	require.Eventually(t, func() bool { return c.State() == Pending }, time.Second, time.Millisecond)
}

func TestRequest_ResolvedTrue(t *testing.T) {
	c := New(nil)
	out := make(chan result, 1)

	go func() {
		ok, err := c.Request(context.Background(), "Delete project?")
		out <- result{ok, err}
	}()
	waitPending(t, c)

	msg, ok := c.Message()
	require.True(t, ok)
	assert.Equal(t, "Delete project?", msg)

	require.NoError(t, c.Resolve(true))
	r := <-out
	assert.NoError(t, r.err)
	assert.True(t, r.ok)
	assert.Equal(t, Idle, c.State())
}

func TestRequest_ResolvedFalse(t *testing.T) {
	c := New(nil)
	out := make(chan result, 1)

	go func() {
		ok, err := c.Request(context.Background(), "Delete project?")
		out <- result{ok, err}
	}()
	waitPending(t, c)

	require.NoError(t, c.Resolve(false))
	r := <-out
	assert.NoError(t, r.err)
	assert.False(t, r.ok)
}

func TestRequest_PromptResolvesSynchronously(t *testing.T) {
	var c *Confirmer
	c = New(func(string) { _ = c.Resolve(true) })

	ok, err := c.Request(context.Background(), "sure?")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Idle, c.State())
}

func TestRequest_RejectsSecondWhilePending(t *testing.T) {
	c := New(nil)
	out := make(chan result, 1)

	go func() {
		ok, err := c.Request(context.Background(), "first")
		out <- result{ok, err}
	}()
	waitPending(t, c)

	_, err := c.Request(context.Background(), "second")
	assert.ErrorIs(t, err, ErrPending)

	msg, _ := c.Message()
	assert.Equal(t, "first", msg)

	require.NoError(t, c.Resolve(true))
	assert.True(t, (<-out).ok)
}

func TestRequest_ContextCancelReturnsToIdle(t *testing.T) {
	c := New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan result, 1)

	go func() {
		ok, err := c.Request(ctx, "sure?")
		out <- result{ok, err}
	}()
	waitPending(t, c)
	cancel()

	r := <-out
	assert.ErrorIs(t, r.err, context.Canceled)
	assert.False(t, r.ok)
	assert.Equal(t, Idle, c.State())
	assert.ErrorIs(t, c.Resolve(true), ErrNotPending)
}

func TestResolve_Idle(t *testing.T) {
	assert.ErrorIs(t, New(nil).Resolve(true), ErrNotPending)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "pending", Pending.String())
}
