package flux

import (
	"fmt"

	"github.com/c360/fluxkit/errors"
)

// ContextWrite returns a Publisher that exposes a modified ambient context
// to every stage strictly upstream of it. The modifier is applied exactly
// once, eagerly, at assembly time, to whatever context the downstream
// subscriber exposes; stages downstream of this operator never see the
// modification. Data and completion signals pass through untouched.
//
// Stacking ContextWrite stages is order-sensitive: the stage closest to
// the terminal subscriber runs first, so modifications accumulate from the
// terminal side upward.
func ContextWrite[T any](upstream Publisher[T], modifier func(Context) Context, options ...Option) Publisher[T] {
	return &contextWritePublisher[T]{
		upstream: upstream,
		modifier: modifier,
		opts:     applyOptions("context_write", options...),
	}
}

type contextWritePublisher[T any] struct {
	upstream Publisher[T]
	modifier func(Context) Context
	opts     stageOptions
}

func (p *contextWritePublisher[T]) Subscribe(downstream Subscriber[T]) {
	modified, err := p.apply(downstream.CurrentContext())
	if err != nil {
		p.opts.metrics.recordError(p.opts.name)
		p.opts.logger.Error("context modifier failed",
			"stage", p.opts.name,
			"error", err)
		// Assembly cannot proceed; complete the handshake so the
		// downstream subscriber receives the error in protocol order.
		downstream.OnSubscribe(emptySubscription{})
		downstream.OnError(err)
		return
	}

	p.opts.logger.Debug("context written",
		"stage", p.opts.name,
		"context", modified.String())

	p.upstream.Subscribe(&contextWriteSubscriber[T]{
		downstream: downstream,
		modified:   modified,
		opts:       p.opts,
	})
}

func (p *contextWritePublisher[T]) apply(ctx Context) (modified Context, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.WrapInvalid(
				fmt.Errorf("%w: %v", errors.ErrTransformFailed, r),
				"ContextWrite", "Subscribe", "apply context modifier")
		}
	}()
	return p.modifier(ctx), nil
}

// contextWriteSubscriber exposes the precomputed context upstream; every
// signal is a pure pass-through.
type contextWriteSubscriber[T any] struct {
	downstream Subscriber[T]
	modified   Context
	opts       stageOptions
}

func (s *contextWriteSubscriber[T]) CurrentContext() Context {
	return s.modified
}

func (s *contextWriteSubscriber[T]) OnSubscribe(sub Subscription) {
	s.downstream.OnSubscribe(sub)
}

func (s *contextWriteSubscriber[T]) OnNext(item T) {
	s.opts.metrics.recordNext(s.opts.name)
	s.downstream.OnNext(item)
}

func (s *contextWriteSubscriber[T]) OnError(err error) {
	s.opts.metrics.recordError(s.opts.name)
	s.downstream.OnError(err)
}

func (s *contextWriteSubscriber[T]) OnComplete() {
	s.opts.metrics.recordComplete(s.opts.name)
	s.downstream.OnComplete()
}
