// Package flux implements a minimal reactive-stream execution model: a
// chain of lazily-assembled stages communicating through the OnSubscribe /
// OnNext / OnError / OnComplete protocol, plus an immutable ambient Context
// that flows opposite to data during assembly.
//
// # Architecture
//
// A chain is built from the source outward and executed from the terminal
// inward:
//
//	┌────────┐   ┌──────┐   ┌────────┐   ┌──────────────┐   ┌──────┐
//	│  Just  │ → │ Map  │ → │ Filter │ → │ ContextWrite │ → │ Sink │
//	└────────┘   └──────┘   └────────┘   └──────────────┘   └──────┘
//	 emission ────────────────────────────────────────────────→
//	 ←──────────────────────────────────── assembly / context
//
// Assembly starts at the outermost Publisher with a Subscribe(sink) call;
// each operator wraps the given downstream subscriber and recursively
// subscribes the result to its upstream, terminating at the source. No
// data flows during assembly.
//
// Emission: the Sink requests demand in OnSubscribe; the source then emits
// synchronously within that Request call's stack frame, each intermediate
// subscriber forwarding (possibly transformed or filtered) signals
// downstream until the Sink consumes them.
//
// # Ambient context
//
// Context is read by each stage from whichever subscriber sits immediately
// downstream of it, and written only by ContextWrite stages, eagerly at
// assembly time. The Sink's fixed initial context anchors the chain;
// modifications accumulate from the terminal side upward, so a source sees
// every ContextWrite below it and a stage never sees writes made above it.
//
// # Execution model
//
// Everything is single-threaded and fully synchronous: no scheduler, no
// suspension points, no locks. Each Subscribe call builds an independent
// subscriber chain, so one Publisher can be reused as a template for any
// number of subscriptions without shared in-flight state.
//
// # Demand
//
// Sources track accumulated demand: Request(n) adds to a counter, emission
// decrements it, and the source suspends when it reaches zero, resuming on
// the next Request. The Sink defaults to UnboundedDemand, which reproduces
// eager full emission. There is no cancellation primitive.
//
// # Errors
//
// OnError is a terminal signal forwarded symmetrically with OnComplete: at
// most one terminal signal ever reaches a subscriber. Panics in
// user-supplied functions (mapper, predicate, context modifier) are
// recovered and forwarded as classified errors on the error signal.
// Signal-ordering violations are programming defects and panic with a
// fatal classified error at the Sink.
package flux
