package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is the base error for all configuration validation
// failures. Callers match it with errors.Is.
var ErrInvalidConfiguration = errors.New("invalid simulation configuration")

// PctRange is an inclusive range of per-trade percentage magnitudes,
// expressed as fractions (0.05 = 5%). Loss ranges store positive magnitudes;
// the generator applies them as negative changes.
type PctRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SimulationConfig holds all parameters for a simulation run.
// It is treated as immutable once validated.
type SimulationConfig struct {
	NumTrials           int      `json:"num_trials"`
	TradesPerTrial      int      `json:"trades_per_trial"`
	WinPctRange         PctRange `json:"win_pct_range"`
	LossPctRange        PctRange `json:"loss_pct_range"`
	WinRate             float64  `json:"win_rate"`          // fraction in [0,1]
	StartingCapital     float64  `json:"starting_capital"`  // dollars, > 0
	OverheadPct         float64  `json:"overhead_pct"`      // charged per trade on current capital
	MovingAverageWindow int      `json:"moving_avg_window"` // display smoothing only
	Seed                int64    `json:"seed"`              // base seed for trial randomness streams
}

// DefaultConfig returns the historical default parameter set:
// a single 50-trade trial with 5-25% wins, 10-25% losses, 75% win rate,
// $100,000 starting capital and 0.3% per-trade overhead.
func DefaultConfig() SimulationConfig {
	return SimulationConfig{
		NumTrials:           1,
		TradesPerTrial:      50,
		WinPctRange:         PctRange{Min: 0.05, Max: 0.25},
		LossPctRange:        PctRange{Min: 0.10, Max: 0.25},
		WinRate:             0.75,
		StartingCapital:     100000,
		OverheadPct:         0.003,
		MovingAverageWindow: 30,
		Seed:                42,
	}
}

// Validate checks all fields and returns an error wrapping
// ErrInvalidConfiguration on the first violation. No simulation may run
// against a config that fails validation.
func (c SimulationConfig) Validate() error {
	if c.NumTrials <= 0 {
		return fmt.Errorf("%w: num_trials must be positive, got %d", ErrInvalidConfiguration, c.NumTrials)
	}
	if c.TradesPerTrial <= 0 {
		return fmt.Errorf("%w: trades_per_trial must be positive, got %d", ErrInvalidConfiguration, c.TradesPerTrial)
	}
	if err := c.WinPctRange.validate("win_pct_range"); err != nil {
		return err
	}
	if err := c.LossPctRange.validate("loss_pct_range"); err != nil {
		return err
	}
	if c.WinRate < 0 || c.WinRate > 1 {
		return fmt.Errorf("%w: win_rate must be in [0,1], got %g", ErrInvalidConfiguration, c.WinRate)
	}
	if c.StartingCapital <= 0 {
		return fmt.Errorf("%w: starting_capital must be positive, got %g", ErrInvalidConfiguration, c.StartingCapital)
	}
	if c.OverheadPct < 0 {
		return fmt.Errorf("%w: overhead_pct must be non-negative, got %g", ErrInvalidConfiguration, c.OverheadPct)
	}
	if c.MovingAverageWindow <= 0 {
		return fmt.Errorf("%w: moving_avg_window must be positive, got %d", ErrInvalidConfiguration, c.MovingAverageWindow)
	}
	if c.MovingAverageWindow > c.TradesPerTrial {
		return fmt.Errorf("%w: moving_avg_window %d exceeds trades_per_trial %d",
			ErrInvalidConfiguration, c.MovingAverageWindow, c.TradesPerTrial)
	}
	return nil
}

// validate checks a single percentage range.
func (r PctRange) validate(field string) error {
	if r.Min < 0 || r.Max < 0 {
		return fmt.Errorf("%w: %s bounds must be non-negative, got [%g, %g]",
			ErrInvalidConfiguration, field, r.Min, r.Max)
	}
	if r.Min > r.Max {
		return fmt.Errorf("%w: %s min %g exceeds max %g",
			ErrInvalidConfiguration, field, r.Min, r.Max)
	}
	return nil
}
