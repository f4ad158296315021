package flux

import (
	"fmt"
	"time"

	"github.com/c360/fluxkit/errors"
)

// Filter returns a Publisher that forwards only the upstream items
// satisfying predicate; rejected items are dropped silently, producing no
// downstream signal. Completion is always forwarded, including when every
// item was rejected. A predicate panic is recovered and forwarded as a
// single OnError.
func Filter[T any](upstream Publisher[T], predicate func(T) bool, options ...Option) Publisher[T] {
	return &filterPublisher[T]{
		upstream:  upstream,
		predicate: predicate,
		opts:      applyOptions("filter", options...),
	}
}

type filterPublisher[T any] struct {
	upstream  Publisher[T]
	predicate func(T) bool
	opts      stageOptions
}

func (p *filterPublisher[T]) Subscribe(downstream Subscriber[T]) {
	p.upstream.Subscribe(&filterSubscriber[T]{
		CoreSubscriber: NewCoreSubscriber(downstream),
		downstream:     downstream,
		predicate:      p.predicate,
		opts:           p.opts,
	})
}

type filterSubscriber[T any] struct {
	CoreSubscriber
	downstream Subscriber[T]
	predicate  func(T) bool
	opts       stageOptions
	done       bool
}

func (s *filterSubscriber[T]) OnSubscribe(sub Subscription) {
	s.downstream.OnSubscribe(sub)
}

func (s *filterSubscriber[T]) OnNext(item T) {
	if s.done {
		return
	}

	start := time.Now()
	keep, err := s.test(item)
	s.opts.metrics.recordTransform(s.opts.name, time.Since(start))

	if err != nil {
		s.done = true
		s.opts.metrics.recordError(s.opts.name)
		s.opts.logger.Error("predicate failed",
			"stage", s.opts.name,
			"error", err)
		s.downstream.OnError(err)
		return
	}

	if !keep {
		s.opts.metrics.recordDrop(s.opts.name)
		s.opts.logger.Debug("item dropped", "stage", s.opts.name)
		return
	}

	s.opts.metrics.recordNext(s.opts.name)
	s.downstream.OnNext(item)
}

func (s *filterSubscriber[T]) test(item T) (keep bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.WrapInvalid(
				fmt.Errorf("%w: %v", errors.ErrTransformFailed, r),
				"Filter", "OnNext", "apply predicate")
		}
	}()
	return s.predicate(item), nil
}

func (s *filterSubscriber[T]) OnError(err error) {
	if s.done {
		return
	}
	s.done = true
	s.opts.metrics.recordError(s.opts.name)
	s.downstream.OnError(err)
}

func (s *filterSubscriber[T]) OnComplete() {
	if s.done {
		return
	}
	s.done = true
	s.opts.metrics.recordComplete(s.opts.name)
	s.downstream.OnComplete()
}
