package flux

import (
	"io"
	"log/slog"
)

// Option configures a stage using the functional options pattern.
type Option func(*stageOptions)

// stageOptions holds internal per-stage configuration. Logging and metrics
// are optional; a stage without either is a pure pass-through with zero
// instrumentation overhead beyond a nil check.
type stageOptions struct {
	name    string
	logger  *slog.Logger
	metrics *StageMetrics
}

// WithName overrides the default stage name used in logs and metric labels.
func WithName(name string) Option {
	return func(opts *stageOptions) {
		if name != "" {
			opts.name = name
		}
	}
}

// WithLogger attaches a structured logger to the stage. Stages log the
// data path at Debug and failures at Error. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *stageOptions) {
		if logger != nil {
			opts.logger = logger
		}
	}
}

// WithMetrics attaches stage metrics. One StageMetrics instance is shared
// by every stage of a chain; stages are told apart by label. A nil value
// is ignored and leaves metrics disabled.
func WithMetrics(m *StageMetrics) Option {
	return func(opts *stageOptions) {
		if m != nil {
			opts.metrics = m
		}
	}
}

// applyOptions builds the final stage configuration.
func applyOptions(defaultName string, options ...Option) stageOptions {
	opts := stageOptions{name: defaultName}
	for _, o := range options {
		o(&opts)
	}
	if opts.logger == nil {
		opts.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return opts
}
