package flux

import (
	"fmt"
	"time"

	"github.com/c360/fluxkit/errors"
)

// Map returns a Publisher that transforms each upstream item with mapper
// before forwarding it downstream. Completion is forwarded unchanged.
// A mapper panic is recovered and forwarded as a single OnError, after
// which the stage suppresses all further signals.
func Map[T, R any](upstream Publisher[T], mapper func(T) R, options ...Option) Publisher[R] {
	return &mapPublisher[T, R]{
		upstream: upstream,
		mapper:   mapper,
		opts:     applyOptions("map", options...),
	}
}

type mapPublisher[T, R any] struct {
	upstream Publisher[T]
	mapper   func(T) R
	opts     stageOptions
}

func (p *mapPublisher[T, R]) Subscribe(downstream Subscriber[R]) {
	p.upstream.Subscribe(&mapSubscriber[T, R]{
		CoreSubscriber: NewCoreSubscriber(downstream),
		downstream:     downstream,
		mapper:         p.mapper,
		opts:           p.opts,
	})
}

type mapSubscriber[T, R any] struct {
	CoreSubscriber
	downstream Subscriber[R]
	mapper     func(T) R
	opts       stageOptions
	done       bool
}

func (s *mapSubscriber[T, R]) OnSubscribe(sub Subscription) {
	s.downstream.OnSubscribe(sub)
}

func (s *mapSubscriber[T, R]) OnNext(item T) {
	if s.done {
		return
	}

	start := time.Now()
	mapped, err := s.apply(item)
	s.opts.metrics.recordTransform(s.opts.name, time.Since(start))

	if err != nil {
		s.done = true
		s.opts.metrics.recordError(s.opts.name)
		s.opts.logger.Error("transform failed",
			"stage", s.opts.name,
			"error", err)
		s.downstream.OnError(err)
		return
	}

	s.opts.logger.Debug("mapped item",
		"stage", s.opts.name,
		"context", s.CurrentContext().String())

	s.opts.metrics.recordNext(s.opts.name)
	s.downstream.OnNext(mapped)
}

// apply evaluates the mapper, converting a panic into a classified error
// so the failure travels the error signal instead of unwinding the whole
// emission stack.
func (s *mapSubscriber[T, R]) apply(item T) (mapped R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.WrapInvalid(
				fmt.Errorf("%w: %v", errors.ErrTransformFailed, r),
				"Map", "OnNext", "apply mapper")
		}
	}()
	return s.mapper(item), nil
}

func (s *mapSubscriber[T, R]) OnError(err error) {
	if s.done {
		return
	}
	s.done = true
	s.opts.metrics.recordError(s.opts.name)
	s.downstream.OnError(err)
}

func (s *mapSubscriber[T, R]) OnComplete() {
	if s.done {
		return
	}
	s.done = true
	s.opts.metrics.recordComplete(s.opts.name)
	s.downstream.OnComplete()
}
