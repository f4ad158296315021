// Package pipeline assembles flux publisher chains from declarative YAML
// configuration.
//
// # Overview
//
// A pipeline configuration names a bounded source sequence, an ordered
// list of stages (map, filter, context_write), and the terminal sink's
// initial context and demand. Map and filter stages reference operations
// by name; the Registry resolves those names to factories supplied by the
// caller or to the built-in string operations of DefaultRegistry.
//
// # Usage
//
//	cfg, err := pipeline.LoadConfig("demo.yaml")
//	...
//	p, err := pipeline.Build(cfg, pipeline.DefaultRegistry(), pipeline.Dependencies{
//	    Logger:  logger,
//	    Metrics: registry,
//	})
//	...
//	result := p.Run()
//
// A built Pipeline is a reusable template: every Run assembles an
// independent subscriber chain, tags it with a fresh run ID (available to
// stages through the ambient context key "runId"), and drives it
// synchronously to its terminal signal.
//
// # Configuration
//
//	name: demo
//	source:
//	  items: [a, b, c]
//	stages:
//	  - kind: map
//	    op: uppercase
//	  - kind: filter
//	    op: not_equals
//	    arg: B
//	  - kind: context_write
//	    key: traceId
//	    value: abc-123
//	sink:
//	  context:
//	    userId: user-42
package pipeline
