// Package metric provides Prometheus metrics registration and management
// for fluxkit pipelines and stages.
//
// # Overview
//
// The Registry wraps a prometheus.Registry with duplicate tracking keyed by
// "owner.metric", so a stage or pipeline cannot silently shadow another's
// collectors. Core platform metrics (run counts, delivered items) are
// registered on every registry; stage-level metrics are created and
// registered by the flux package on demand.
//
// # Usage
//
//	registry := metric.NewRegistry()
//
//	counter := prometheus.NewCounterVec(prometheus.CounterOpts{...}, []string{"stage"})
//	if err := registry.RegisterCounterVec("my-pipeline", "custom_total", counter); err != nil {
//	    // duplicate or prometheus conflict
//	}
//
// Metrics are optional throughout fluxkit: a nil registry disables
// collection without changing stage behavior.
package metric
