package flux

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/fluxkit/metric"
)

// StageMetrics holds Prometheus metrics for stream stage operations.
// A single instance is shared across the stages of one chain; the stage
// label tells emissions apart. All record methods are nil-safe so stages
// built without metrics pay only a nil check.
type StageMetrics struct {
	// signals counts protocol signals by stage and kind
	// (next, complete, error)
	signals *prometheus.CounterVec

	// drops counts items rejected by filter stages, by stage
	drops *prometheus.CounterVec

	// transformDuration observes user-function evaluation time, by stage
	transformDuration *prometheus.HistogramVec
}

// NewStageMetrics creates and registers stage metrics with the provided
// registry under the given owner (typically the pipeline name). A nil
// registry disables metrics.
func NewStageMetrics(registry *metric.Registry, owner string) (*StageMetrics, error) {
	if registry == nil {
		return nil, nil // Metrics disabled
	}

	m := &StageMetrics{
		signals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metric.Namespace,
			Subsystem: "stage",
			Name:      "signals_total",
			Help:      "Total protocol signals forwarded, by stage and signal kind",
		}, []string{"stage", "signal"}),

		drops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metric.Namespace,
			Subsystem: "stage",
			Name:      "dropped_total",
			Help:      "Total items rejected by filter predicates",
		}, []string{"stage"}),

		transformDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metric.Namespace,
			Subsystem: "stage",
			Name:      "transform_duration_seconds",
			Help:      "User function evaluation duration in seconds",
			Buckets:   []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01, 0.1},
		}, []string{"stage"}),
	}

	if err := registry.RegisterCounterVec(owner, "signals_total", m.signals); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounterVec(owner, "dropped_total", m.drops); err != nil {
		return nil, err
	}
	if err := registry.RegisterHistogramVec(owner, "transform_duration", m.transformDuration); err != nil {
		return nil, err
	}

	return m, nil
}

// recordNext records an item forwarded downstream by a stage.
func (m *StageMetrics) recordNext(stage string) {
	if m == nil {
		return
	}
	m.signals.WithLabelValues(stage, "next").Inc()
}

// recordComplete records a completion signal forwarded by a stage.
func (m *StageMetrics) recordComplete(stage string) {
	if m == nil {
		return
	}
	m.signals.WithLabelValues(stage, "complete").Inc()
}

// recordError records an error signal originated or forwarded by a stage.
func (m *StageMetrics) recordError(stage string) {
	if m == nil {
		return
	}
	m.signals.WithLabelValues(stage, "error").Inc()
}

// recordDrop records an item rejected by a filter predicate.
func (m *StageMetrics) recordDrop(stage string) {
	if m == nil {
		return
	}
	m.drops.WithLabelValues(stage).Inc()
}

// recordTransform records the evaluation time of a user-supplied function.
func (m *StageMetrics) recordTransform(stage string, duration time.Duration) {
	if m == nil {
		return
	}
	m.transformDuration.WithLabelValues(stage).Observe(duration.Seconds())
}
