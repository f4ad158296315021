package flux

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/c360/fluxkit/errors"
)

// Sink is the terminal subscriber: it starts the pull by requesting demand
// as soon as it is subscribed, consumes final values, and records the
// outcome. It also anchors the ambient context chain - CurrentContext
// always answers the fixed initial context, making the Sink the source of
// truth for "downstream" during upstream-walking context queries.
//
// Sink enforces the signal ordering contract. A violation (OnNext before
// OnSubscribe, a second terminal signal, any signal after a terminal one)
// is a programming defect in the offending stage, not a data condition,
// and panics with a fatal classified error.
//
// Received values, the terminal error, and the completion flag are
// retained and available through Values, Err, and Completed, which makes
// a bare Sink usable as a test probe.
type Sink[T any] struct {
	initial  Context
	demand   int64
	consumer func(T)
	errFn    func(error)
	doneFn   func()
	logger   *slog.Logger

	subscribed bool
	terminated bool
	values     []T
	err        error
	completed  bool
}

// SinkOption configures a Sink.
type SinkOption[T any] func(*Sink[T])

// WithSinkContext sets the initial ambient context the sink exposes to the
// chain. Defaults to the empty context.
func WithSinkContext[T any](ctx Context) SinkOption[T] {
	return func(s *Sink[T]) {
		s.initial = ctx
	}
}

// WithDemand sets the demand requested on subscription. Defaults to
// UnboundedDemand, which makes the source emit its entire sequence.
func WithDemand[T any](n int64) SinkOption[T] {
	return func(s *Sink[T]) {
		s.demand = n
	}
}

// WithConsumer sets a callback invoked for each received item.
func WithConsumer[T any](fn func(T)) SinkOption[T] {
	return func(s *Sink[T]) {
		s.consumer = fn
	}
}

// WithErrorHandler sets a callback invoked on the error terminal signal.
func WithErrorHandler[T any](fn func(error)) SinkOption[T] {
	return func(s *Sink[T]) {
		s.errFn = fn
	}
}

// WithCompleteHandler sets a callback invoked on completion.
func WithCompleteHandler[T any](fn func()) SinkOption[T] {
	return func(s *Sink[T]) {
		s.doneFn = fn
	}
}

// WithSinkLogger attaches a structured logger. A nil logger is ignored.
func WithSinkLogger[T any](logger *slog.Logger) SinkOption[T] {
	return func(s *Sink[T]) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSink creates a terminal subscriber.
func NewSink[T any](options ...SinkOption[T]) *Sink[T] {
	s := &Sink[T]{
		initial: EmptyContext(),
		demand:  UnboundedDemand,
	}
	for _, o := range options {
		o(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// OnSubscribe completes the handshake and immediately issues the
// configured demand, starting emission for the whole chain.
func (s *Sink[T]) OnSubscribe(sub Subscription) {
	if s.subscribed {
		panic(errors.WrapFatal(errors.ErrProtocolViolation,
			"Sink", "OnSubscribe", "reject duplicate subscription"))
	}
	s.subscribed = true

	s.logger.Debug("sink subscribed",
		"demand", s.demand,
		"context", s.initial.String())

	sub.Request(s.demand)
}

// OnNext consumes and records an item.
func (s *Sink[T]) OnNext(item T) {
	s.checkSignal("OnNext")

	s.values = append(s.values, item)
	s.logger.Debug("sink received", "item", item)

	if s.consumer != nil {
		s.consumer(item)
	}
}

// OnError records the terminal failure.
func (s *Sink[T]) OnError(err error) {
	s.checkSignal("OnError")
	s.terminated = true
	s.err = err

	s.logger.Error("stream failed", "error", err)

	if s.errFn != nil {
		s.errFn(err)
	}
}

// OnComplete records successful completion.
func (s *Sink[T]) OnComplete() {
	s.checkSignal("OnComplete")
	s.terminated = true
	s.completed = true

	s.logger.Debug("stream completed", "received", len(s.values))

	if s.doneFn != nil {
		s.doneFn()
	}
}

// CurrentContext returns the fixed initial context, unaffected by anything
// the chain does during assembly.
func (s *Sink[T]) CurrentContext() Context {
	return s.initial
}

// Values returns a copy of the items received so far, in arrival order.
func (s *Sink[T]) Values() []T {
	out := make([]T, len(s.values))
	copy(out, s.values)
	return out
}

// Err returns the terminal error, if any.
func (s *Sink[T]) Err() error {
	return s.err
}

// Completed reports whether OnComplete was received.
func (s *Sink[T]) Completed() bool {
	return s.completed
}

// checkSignal panics on signal ordering violations.
func (s *Sink[T]) checkSignal(signal string) {
	if !s.subscribed {
		panic(errors.WrapFatal(errors.ErrProtocolViolation,
			"Sink", signal, "reject signal before OnSubscribe"))
	}
	if s.terminated {
		panic(errors.WrapFatal(errors.ErrProtocolViolation,
			"Sink", signal, fmt.Sprintf("reject %s after terminal signal", signal)))
	}
}
