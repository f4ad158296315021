package flux

import "math"

// UnboundedDemand requests the entire remaining sequence from a source.
// The terminal Sink uses it by default, reproducing eager full emission.
const UnboundedDemand int64 = math.MaxInt64

// Subscription is the demand-control handle a source hands a subscriber
// during OnSubscribe. Request is the only externally invokable operation.
type Subscription interface {
	// Request adds n to the source's accumulated demand. The source emits
	// items while demand remains, suspends when it reaches zero, and
	// resumes on the next Request. Non-positive n is reported downstream
	// as an OnError carrying errors.ErrInvalidDemand.
	Request(n int64)
}

// ContextHolder is the subset of Subscriber used to resolve ambient context
// during assembly. Upstream stages query it before any data flows.
type ContextHolder interface {
	CurrentContext() Context
}

// Subscriber is the consumer-side contract for a Publisher's signals.
//
// Signal ordering: OnSubscribe is delivered first; OnNext zero or more
// times; then at most one terminal signal, either OnComplete or OnError.
// Nothing may follow a terminal signal. CurrentContext must be answerable
// at any time, including before OnSubscribe, because upstream stages read
// it while the chain is still being assembled.
type Subscriber[T any] interface {
	OnSubscribe(s Subscription)
	OnNext(item T)
	OnError(err error)
	OnComplete()
	CurrentContext() Context
}

// Publisher is a value representing a not-yet-executing data-producing
// stage. Subscribe performs the assembly step only: it wires a subscriber
// chain and must not itself emit data; emission starts when the terminal
// subscriber issues demand through Subscription.Request. Subscribing the
// same Publisher more than once re-runs assembly independently each time.
type Publisher[T any] interface {
	Subscribe(s Subscriber[T])
}

// CoreSubscriber is the pass-through base embedded by operator subscribers.
// Its only behavior is forwarding context queries to the next subscriber
// downstream; every signal an operator does not override must be a strict
// pass-through implemented by the operator itself.
type CoreSubscriber struct {
	downstream ContextHolder
}

// NewCoreSubscriber creates a pass-through base over the given downstream.
func NewCoreSubscriber(downstream ContextHolder) CoreSubscriber {
	return CoreSubscriber{downstream: downstream}
}

// CurrentContext forwards to the downstream subscriber's context. A base
// with no downstream answers the empty context.
func (c CoreSubscriber) CurrentContext() Context {
	if c.downstream == nil {
		return EmptyContext()
	}
	return c.downstream.CurrentContext()
}

// emptySubscription satisfies the handshake when a stage must fail during
// assembly: the downstream subscriber still receives OnSubscribe before
// the OnError, and any demand it issues is ignored.
type emptySubscription struct{}

func (emptySubscription) Request(int64) {}
