package reporting

import (
	"time"

	"github.com/zerodeltainc/monte-carlo/internal/domain"
	"github.com/zerodeltainc/monte-carlo/internal/idhash"
)

// Generator produces reports from engine output.
type Generator struct {
	now func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator() *Generator {
	return &Generator{
		now: func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate assembles the complete report for one run.
func (g *Generator) Generate(cfg domain.SimulationConfig, batch *domain.BatchReport) *Report {
	runID := idhash.ComputeRunID(cfg)
	return &Report{
		GeneratedAt: g.now(),
		RunID:       runID,
		ShortRunID:  idhash.ShortRunID(runID),
		Config:      cfg,
		Batch:       batch,
		StreakOdds:  domain.LosingStreakOdds(cfg.WinRate),
	}
}

// MovingAverage computes the display-smoothing overlay for an equity
// curve: cumulative mean until the window fills, then a rolling mean over
// the window. Returns a series the same length as the curve.
func MovingAverage(curve []float64, window int) []float64 {
	if window <= 0 || len(curve) == 0 {
		return nil
	}

	out := make([]float64, len(curve))
	sum := 0.0
	for i, v := range curve {
		sum += v
		if i < window {
			out[i] = sum / float64(i+1)
			continue
		}
		sum -= curve[i-window]
		out[i] = sum / float64(window)
	}
	return out
}
