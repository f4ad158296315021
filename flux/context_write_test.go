package flux

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/fluxkit/errors"
)

// contextCapturingSource records the context visible at the source during
// assembly, then behaves like an empty Just.
type contextCapturingSource[T any] struct {
	seen Context
}

func (p *contextCapturingSource[T]) Subscribe(sub Subscriber[T]) {
	p.seen = sub.CurrentContext()
	Just[T]().Subscribe(sub)
}

func TestContextWrite_VisibleUpstreamOnly(t *testing.T) {
	source := &contextCapturingSource[string]{}
	sink := NewSink[string]()

	ContextWrite[string](source, func(ctx Context) Context {
		return ctx.Put("traceId", "abc-123")
	}).Subscribe(sink)

	assert.Equal(t, "abc-123", source.seen.GetOrDefault("traceId", "no-trace"))
	// Downstream of the write, the sink's own context is untouched.
	assert.False(t, sink.CurrentContext().HasKey("traceId"))
	assert.True(t, sink.Completed())
}

func TestContextWrite_StackingAccumulatesFromTerminalUp(t *testing.T) {
	source := &contextCapturingSource[string]{}

	inner := ContextWrite[string](source, func(ctx Context) Context {
		// Runs second (further upstream): sees the traceId written below.
		require.True(t, ctx.HasKey("traceId"))
		return ctx.Put("userId", "user-42")
	})
	outer := ContextWrite(inner, func(ctx Context) Context {
		// Runs first (closest to the terminal): sees only the sink context.
		require.False(t, ctx.HasKey("userId"))
		return ctx.Put("traceId", "abc-123")
	})

	outer.Subscribe(NewSink[string]())

	assert.Equal(t, "abc-123", source.seen.GetOrDefault("traceId", "no-trace"))
	assert.Equal(t, "user-42", source.seen.GetOrDefault("userId", "no-user"))
}

func TestContextWrite_OverlappingKeysOrderSensitive(t *testing.T) {
	source := &contextCapturingSource[int]{}

	chain := ContextWrite[int](source, func(ctx Context) Context {
		return ctx.Put("k", "upstream-wins")
	})
	chain = ContextWrite(chain, func(ctx Context) Context {
		return ctx.Put("k", "terminal-side")
	})

	chain.Subscribe(NewSink[int]())

	// The upstream-most write is applied last.
	assert.Equal(t, "upstream-wins", source.seen.GetOrDefault("k", ""))
}

func TestContextWrite_SeesSinkInitialContext(t *testing.T) {
	source := &contextCapturingSource[string]{}
	sink := NewSink[string](
		WithSinkContext[string](EmptyContext().Put("tenant", "acme")),
	)

	ContextWrite[string](source, func(ctx Context) Context {
		return ctx.Put("traceId", "abc-123")
	}).Subscribe(sink)

	assert.Equal(t, "acme", source.seen.GetOrDefault("tenant", ""))
	assert.Equal(t, "abc-123", source.seen.GetOrDefault("traceId", ""))
}

func TestContextWrite_AppliedOncePerSubscription(t *testing.T) {
	var calls int
	chain := ContextWrite(Just("a", "b", "c"), func(ctx Context) Context {
		calls++
		return ctx
	})

	chain.Subscribe(NewSink[string]())
	assert.Equal(t, 1, calls, "modifier runs at assembly time, not per emission")

	chain.Subscribe(NewSink[string]())
	assert.Equal(t, 2, calls, "each subscription re-runs assembly")
}

func TestContextWrite_PassesDataThrough(t *testing.T) {
	sink := NewSink[string]()
	chain := ContextWrite(Map(Just("a", "b"), strings.ToUpper), func(ctx Context) Context {
		return ctx.Put("traceId", "abc-123")
	})
	chain.Subscribe(sink)

	assert.Equal(t, []string{"A", "B"}, sink.Values())
	assert.True(t, sink.Completed())
}

func TestContextWrite_ModifierPanicBecomesOnError(t *testing.T) {
	sink := NewSink[string]()

	ContextWrite(Just("a"), func(Context) Context {
		panic("modifier exploded")
	}).Subscribe(sink)

	require.Error(t, sink.Err())
	assert.ErrorIs(t, sink.Err(), errors.ErrTransformFailed)
	assert.Empty(t, sink.Values(), "upstream is never subscribed on assembly failure")
	assert.False(t, sink.Completed())
}
