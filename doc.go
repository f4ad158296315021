// Package fluxkit provides a minimal reactive-stream composition library:
// lazily-assembled publisher chains with a synchronous pull protocol and
// immutable ambient context propagation.
//
// # Architecture
//
// fluxkit is organized in three layers:
//
//	┌─────────────────────────────────────┐
//	│           pipeline                  │  Declarative assembly:
//	│  (YAML config, op registry, runs)   │  named ops, run IDs
//	└─────────────────────────────────────┘
//	           ↓ assembles
//	┌─────────────────────────────────────┐
//	│             flux                    │  Core protocol: Publisher,
//	│  (Just, Map, Filter, ContextWrite,  │  Subscriber, Subscription,
//	│   Sink, Context)                    │  ambient Context
//	└─────────────────────────────────────┘
//	           ↓ instrumented by
//	┌─────────────────────────────────────┐
//	│        errors / metric              │  Classified errors,
//	│                                     │  Prometheus registry
//	└─────────────────────────────────────┘
//
// The flux package is the architectural core: it defines the three-signal
// protocol (plus the error terminal signal), the demand model, and the
// propagation discipline for ambient key/value state across an operator
// chain. Assembly walks upstream through recursive Subscribe calls; data
// then flows downstream within the terminal subscriber's Request call.
// Everything is synchronous and single-threaded.
//
// The pipeline package builds flux chains from YAML and gives each run a
// unique identifier carried in the ambient context. The cmd/fluxkit demo
// binary runs the canonical chain: emit a, b, c; uppercase; drop "B";
// annotate the context with trace and user identifiers.
//
// See the flux package documentation for the protocol contract.
package fluxkit
