package metric

import "github.com/prometheus/client_golang/prometheus"

// Namespace is the prometheus namespace shared by all fluxkit metrics
const Namespace = "fluxkit"

// Metrics holds the core platform metrics every registry carries.
// Stage-level metrics are registered separately by the flux package.
type Metrics struct {
	// RunsStarted counts pipeline runs by pipeline name
	RunsStarted *prometheus.CounterVec

	// RunsCompleted counts finished runs by pipeline name and status
	// (completed or failed)
	RunsCompleted *prometheus.CounterVec

	// ItemsDelivered counts items that reached the terminal subscriber,
	// by pipeline name
	ItemsDelivered *prometheus.CounterVec
}

// NewMetrics creates the core platform metrics
func NewMetrics() *Metrics {
	return &Metrics{
		RunsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "pipeline",
			Name:      "runs_started_total",
			Help:      "Total number of pipeline runs started",
		}, []string{"pipeline"}),

		RunsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "pipeline",
			Name:      "runs_completed_total",
			Help:      "Total number of pipeline runs finished, by status",
		}, []string{"pipeline", "status"}),

		ItemsDelivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "pipeline",
			Name:      "items_delivered_total",
			Help:      "Total number of items delivered to the terminal subscriber",
		}, []string{"pipeline"}),
	}
}
