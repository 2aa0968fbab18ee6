package simulation

import (
	"context"
	"sync"

	"github.com/zerodeltainc/monte-carlo/internal/domain"
	"github.com/zerodeltainc/monte-carlo/internal/observability"
)

// Runner executes batches of trials, optionally across workers.
type Runner struct {
	workers int
	metrics *observability.Metrics
}

// RunnerOptions contains configuration for creating a Runner.
type RunnerOptions struct {
	// Workers is the number of concurrent trial workers.
	// Values below 2 run the batch sequentially.
	Workers int
	// Metrics is optional instrumentation; nil disables it.
	Metrics *observability.Metrics
}

// NewRunner creates a batch runner.
func NewRunner(opts RunnerOptions) *Runner {
	return &Runner{
		workers: opts.Workers,
		metrics: opts.Metrics,
	}
}

// GenerateBatch produces cfg.NumTrials independent trials. Each trial
// draws from its own randomness stream derived from cfg.Seed and the
// trial index, so output is identical whether the batch runs
// sequentially or across workers. Results are returned in trial-index
// order.
func (r *Runner) GenerateBatch(ctx context.Context, cfg domain.SimulationConfig) ([]*domain.Trial, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	trials := make([]*domain.Trial, cfg.NumTrials)

	if r.workers <= 1 {
		for i := 0; i < cfg.NumTrials; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			trials[i] = generateTrial(cfg, i, trialRNG(cfg, i))
		}
		r.observe(cfg)
		return trials, nil
	}

	indexes := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				// Each slot is written by exactly one worker.
				trials[i] = generateTrial(cfg, i, trialRNG(cfg, i))
			}
		}()
	}

	var ctxErr error
feed:
	for i := 0; i < cfg.NumTrials; i++ {
		select {
		case indexes <- i:
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break feed
		}
	}
	close(indexes)
	wg.Wait()

	if ctxErr != nil {
		return nil, ctxErr
	}
	r.observe(cfg)
	return trials, nil
}

// observe records batch-level counters when instrumentation is attached.
func (r *Runner) observe(cfg domain.SimulationConfig) {
	if r.metrics == nil {
		return
	}
	r.metrics.TrialsSimulated.Add(float64(cfg.NumTrials))
	r.metrics.TradesSimulated.Add(float64(cfg.NumTrials * cfg.TradesPerTrial))
}
