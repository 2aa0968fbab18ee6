// Package simulation implements the trial generator: it turns a validated
// SimulationConfig and an injected randomness source into sequences of
// simulated trade outcomes and their equity curves.
package simulation

import (
	"math/rand"

	"github.com/zerodeltainc/monte-carlo/internal/domain"
)

// GenerateTrial produces one simulated trial of cfg.TradesPerTrial trades.
// The randomness source is injected so a fixed seed reproduces an
// identical trial. Steps per trade:
//  1. Bernoulli win draw with probability cfg.WinRate
//     (rate 1 always wins, rate 0 always loses)
//  2. uniform percentage from the matching range, negated for losses
//  3. dollar amount = capital * pct - capital * overhead
//  4. capital update and equity curve append; capital may go negative
func GenerateTrial(cfg domain.SimulationConfig, rng *rand.Rand) (*domain.Trial, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return generateTrial(cfg, 0, rng), nil
}

// generateTrial runs the per-trade loop. cfg must already be validated.
func generateTrial(cfg domain.SimulationConfig, index int, rng *rand.Rand) *domain.Trial {
	trial := &domain.Trial{
		Index:           index,
		StartingCapital: cfg.StartingCapital,
		Outcomes:        make([]domain.TradeOutcome, 0, cfg.TradesPerTrial),
		EquityCurve:     make([]float64, 0, cfg.TradesPerTrial),
	}

	capital := cfg.StartingCapital
	for i := 0; i < cfg.TradesPerTrial; i++ {
		outcome := simulateTrade(cfg, capital, rng)
		capital += outcome.DollarAmount
		trial.Outcomes = append(trial.Outcomes, outcome)
		trial.EquityCurve = append(trial.EquityCurve, capital)
	}
	return trial
}

// simulateTrade draws a single trade outcome against the current capital.
// Overhead is charged on current capital regardless of win or loss.
func simulateTrade(cfg domain.SimulationConfig, capital float64, rng *rand.Rand) domain.TradeOutcome {
	isWin := rng.Float64() < cfg.WinRate

	var pct float64
	if isWin {
		pct = uniform(rng, cfg.WinPctRange)
	} else {
		pct = -uniform(rng, cfg.LossPctRange)
	}

	return domain.TradeOutcome{
		IsWin:          isWin,
		GrossPctChange: pct,
		DollarAmount:   capital*pct - capital*cfg.OverheadPct,
	}
}

// uniform draws from [r.Min, r.Max).
func uniform(rng *rand.Rand, r domain.PctRange) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// trialRNG returns the private randomness stream for one trial. Deriving
// the stream from the base seed and the trial index keeps batch output
// independent of worker scheduling.
func trialRNG(cfg domain.SimulationConfig, index int) *rand.Rand {
	return rand.New(rand.NewSource(cfg.Seed + int64(index)))
}
