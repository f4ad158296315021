package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/c360/fluxkit/errors"
	"github.com/c360/fluxkit/flux"
	"github.com/c360/fluxkit/metric"
)

// Dependencies carries the shared infrastructure a pipeline is built with.
// Both fields are optional; a zero value builds an uninstrumented pipeline.
type Dependencies struct {
	Logger  *slog.Logger
	Metrics *metric.Registry
}

// GetLogger returns the configured logger or the process default.
func (d Dependencies) GetLogger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

// Pipeline is an assembled, reusable publisher chain plus the sink
// configuration each run starts from. The chain carries no in-flight
// state, so one Pipeline can run any number of times; every run builds an
// independent subscriber chain.
type Pipeline struct {
	name    string
	chain   flux.Publisher[any]
	sinkCfg SinkConfig
	logger  *slog.Logger
	metrics *metric.Registry
}

// Result holds the outcome of one pipeline run.
type Result struct {
	RunID     string
	Values    []any
	Err       error
	Completed bool
}

// Build assembles the publisher chain described by cfg, resolving stage
// operations through the registry.
func Build(cfg Config, registry *Registry, deps Dependencies) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if registry == nil {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: operation registry", errors.ErrMissingConfig),
			"Pipeline", "Build", "check registry")
	}

	logger := deps.GetLogger().With("pipeline", cfg.Name)

	stageMetrics, err := flux.NewStageMetrics(deps.Metrics, cfg.Name)
	if err != nil {
		return nil, errors.Wrap(err, "Pipeline", "Build", "register stage metrics")
	}

	baseOpts := func(name string) []flux.Option {
		return []flux.Option{
			flux.WithName(name),
			flux.WithLogger(logger),
			flux.WithMetrics(stageMetrics),
		}
	}

	var chain flux.Publisher[any] = flux.FromSlice(cfg.Source.Items, baseOpts("source")...)

	for i, stage := range cfg.Stages {
		name := stage.Name
		if name == "" {
			name = fmt.Sprintf("%s-%d", stage.Kind, i)
		}

		switch stage.Kind {
		case KindMap:
			fn, err := registry.Mapper(stage.Op, stage.Arg)
			if err != nil {
				return nil, errors.Wrap(err, "Pipeline", "Build",
					fmt.Sprintf("resolve mapper for stage %q", name))
			}
			chain = flux.Map[any, any](chain, fn, baseOpts(name)...)

		case KindFilter:
			fn, err := registry.Predicate(stage.Op, stage.Arg)
			if err != nil {
				return nil, errors.Wrap(err, "Pipeline", "Build",
					fmt.Sprintf("resolve predicate for stage %q", name))
			}
			chain = flux.Filter[any](chain, fn, baseOpts(name)...)

		case KindContextWrite:
			key, value := stage.Key, stage.Value
			chain = flux.ContextWrite(chain, func(ctx flux.Context) flux.Context {
				return ctx.Put(key, value)
			}, baseOpts(name)...)
		}
	}

	logger.Info("pipeline assembled",
		"stages", len(cfg.Stages),
		"source_items", len(cfg.Source.Items))

	return &Pipeline{
		name:    cfg.Name,
		chain:   chain,
		sinkCfg: cfg.Sink,
		logger:  logger,
		metrics: deps.Metrics,
	}, nil
}

// Name returns the pipeline name.
func (p *Pipeline) Name() string {
	return p.name
}

// Run subscribes a fresh sink to the chain and drives it to its terminal
// signal (or until configured demand is exhausted). Each run is tagged
// with a unique run ID, seeded into the sink context under "runId".
func (p *Pipeline) Run() *Result {
	runID := uuid.NewString()
	logger := p.logger.With("run_id", runID)

	sinkCtx := flux.EmptyContext().Put("runId", runID)
	for k, v := range p.sinkCfg.Context {
		sinkCtx = sinkCtx.Put(k, v)
	}

	demand := p.sinkCfg.Demand
	if demand <= 0 {
		demand = flux.UnboundedDemand
	}

	if p.metrics != nil {
		p.metrics.CoreMetrics().RunsStarted.WithLabelValues(p.name).Inc()
	}
	logger.Info("pipeline run starting", "demand", demand)

	sink := flux.NewSink[any](
		flux.WithSinkContext[any](sinkCtx),
		flux.WithDemand[any](demand),
		flux.WithSinkLogger[any](logger),
	)
	p.chain.Subscribe(sink)

	result := &Result{
		RunID:     runID,
		Values:    sink.Values(),
		Err:       sink.Err(),
		Completed: sink.Completed(),
	}

	if p.metrics != nil {
		status := "completed"
		if result.Err != nil {
			status = "failed"
		}
		p.metrics.CoreMetrics().RunsCompleted.WithLabelValues(p.name, status).Inc()
		p.metrics.CoreMetrics().ItemsDelivered.WithLabelValues(p.name).Add(float64(len(result.Values)))
	}

	if result.Err != nil {
		logger.Error("pipeline run failed", "error", result.Err, "items", len(result.Values))
	} else {
		logger.Info("pipeline run finished",
			"items", len(result.Values),
			"completed", result.Completed)
	}

	return result
}
