package flux

import (
	"fmt"

	"github.com/c360/fluxkit/errors"
)

// Just returns a source Publisher that emits the given items in order and
// then completes. The sequence is captured at construction; each Subscribe
// builds an independent subscription over the same items.
func Just[T any](items ...T) Publisher[T] {
	return FromSlice(items)
}

// FromSlice returns a source Publisher over items with optional
// instrumentation. The slice is not copied; callers must not mutate it
// after construction.
func FromSlice[T any](items []T, options ...Option) Publisher[T] {
	return &justPublisher[T]{
		items: items,
		opts:  applyOptions("just", options...),
	}
}

type justPublisher[T any] struct {
	items []T
	opts  stageOptions
}

// Subscribe reads the ambient context assembled by the downstream chain
// (instrumentation only; emission does not depend on it) and hands the
// subscriber a demand-tracking subscription. No data flows until the
// subscriber requests demand.
func (p *justPublisher[T]) Subscribe(sub Subscriber[T]) {
	ctx := sub.CurrentContext()
	p.opts.logger.Debug("source assembled",
		"stage", p.opts.name,
		"items", len(p.items),
		"context", ctx.String())

	sub.OnSubscribe(&justSubscription[T]{
		items:  p.items,
		actual: sub,
		opts:   p.opts,
	})
}

// justSubscription emits a bounded sequence under accumulated demand.
// Request adds to the demand counter; the drain loop emits while demand
// remains and suspends at zero, resuming on the next Request. A Request
// issued re-entrantly from OnNext only tops up the counter - the loop
// already running on the stack keeps draining.
type justSubscription[T any] struct {
	items  []T
	actual Subscriber[T]
	opts   stageOptions

	index     int
	requested int64
	emitting  bool
	done      bool
}

func (s *justSubscription[T]) Request(n int64) {
	if s.done {
		return
	}
	if n <= 0 {
		s.done = true
		s.opts.metrics.recordError(s.opts.name)
		s.actual.OnError(errors.WrapInvalid(errors.ErrInvalidDemand,
			"Just", "Request", fmt.Sprintf("demand of %d", n)))
		return
	}

	s.requested += n
	if s.requested < 0 {
		// Saturate on overflow; anything past UnboundedDemand is
		// indistinguishable from it for a bounded sequence.
		s.requested = UnboundedDemand
	}

	if s.emitting {
		return
	}
	s.emitting = true

	for s.index < len(s.items) && s.requested > 0 && !s.done {
		item := s.items[s.index]
		s.index++
		s.requested--

		s.opts.metrics.recordNext(s.opts.name)
		s.actual.OnNext(item)
	}

	s.emitting = false

	if !s.done && s.index == len(s.items) {
		s.done = true
		s.opts.metrics.recordComplete(s.opts.name)
		s.opts.logger.Debug("source completed",
			"stage", s.opts.name,
			"emitted", s.index)
		s.actual.OnComplete()
	}
}
