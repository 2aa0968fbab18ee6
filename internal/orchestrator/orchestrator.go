// Package orchestrator coordinates a full simulation run.
// Flow: trial generation → metrics aggregation → report assembly
package orchestrator

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/zerodeltainc/monte-carlo/internal/domain"
	"github.com/zerodeltainc/monte-carlo/internal/metrics"
	"github.com/zerodeltainc/monte-carlo/internal/observability"
	"github.com/zerodeltainc/monte-carlo/internal/reporting"
	"github.com/zerodeltainc/monte-carlo/internal/simulation"
)

// Orchestrator runs the engine end to end for one configuration.
// Both the CLI and the dashboard drive simulations through it, so the
// two front ends cannot drift apart in how a run is assembled.
type Orchestrator struct {
	runner     *simulation.Runner
	aggregator *metrics.Aggregator
	generator  *reporting.Generator
	metrics    *observability.Metrics
	verbose    bool
}

// Options for creating an Orchestrator.
type Options struct {
	// Workers is the trial worker count passed to the batch runner.
	Workers int
	// RuinThreshold is the equity level at which a trial counts as
	// ruined. Zero keeps the default.
	RuinThreshold float64
	// Metrics is optional instrumentation; nil disables it.
	Metrics *observability.Metrics
	Verbose bool
}

// New creates a new Orchestrator.
func New(opts Options) *Orchestrator {
	aggregator := metrics.NewAggregator()
	if opts.RuinThreshold != 0 {
		aggregator = aggregator.WithRuinThreshold(opts.RuinThreshold)
	}

	return &Orchestrator{
		runner:     simulation.NewRunner(simulation.RunnerOptions{Workers: opts.Workers, Metrics: opts.Metrics}),
		aggregator: aggregator,
		generator:  reporting.NewGenerator(),
		metrics:    opts.Metrics,
		verbose:    opts.Verbose,
	}
}

// RunResult contains everything produced by one run.
type RunResult struct {
	Trials  []*domain.Trial
	Batch   *domain.BatchReport
	Report  *reporting.Report
	Elapsed time.Duration
}

// Run executes the full pipeline for cfg.
// Phases:
//  1. Generate all trials
//  2. Aggregate batch statistics
//  3. Assemble the report
func (o *Orchestrator) Run(ctx context.Context, cfg domain.SimulationConfig) (*RunResult, error) {
	start := time.Now()

	o.log("Phase 1: Generating %d trials...", cfg.NumTrials)
	trials, err := o.runner.GenerateBatch(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("phase 1 (generate trials) failed: %w", err)
	}

	o.log("Phase 2: Aggregating %d trials...", len(trials))
	batch, err := o.aggregator.SummarizeBatch(trials)
	if err != nil {
		return nil, fmt.Errorf("phase 2 (aggregate) failed: %w", err)
	}

	o.log("Phase 3: Assembling report...")
	report := o.generator.Generate(cfg, batch)

	elapsed := time.Since(start)
	o.observe(elapsed, batch)
	o.log("Run completed: %d trials, %d ruined, %.3fs",
		len(trials), batch.RuinCount, elapsed.Seconds())

	return &RunResult{
		Trials:  trials,
		Batch:   batch,
		Report:  report,
		Elapsed: elapsed,
	}, nil
}

// observe records run-level instrumentation.
func (o *Orchestrator) observe(elapsed time.Duration, batch *domain.BatchReport) {
	if o.metrics == nil {
		return
	}
	o.metrics.SimulationsTotal.Inc()
	o.metrics.RuinsObserved.Add(float64(batch.RuinCount))
	o.metrics.SimulationDuration.Observe(elapsed.Seconds())
	o.metrics.LastSimulationRun.SetToCurrentTime()
}

func (o *Orchestrator) log(format string, args ...interface{}) {
	if o.verbose {
		log.Printf("[orchestrator] "+format, args...)
	}
}
