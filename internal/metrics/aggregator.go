package metrics

import (
	"errors"
	"sort"

	"github.com/zerodeltainc/monte-carlo/internal/domain"
)

// ErrEmptyTrial is returned when a trial has zero trades; drawdown and
// streak computations are undefined on an empty sequence. Unreachable
// from a validated config, guarded anyway.
var ErrEmptyTrial = errors.New("trial has no trades")

// DefaultRuinThreshold is the capital level at or below which an account
// counts as ruined.
const DefaultRuinThreshold = 0.0

// Aggregator computes performance reports from trials. It never mutates
// trial data.
type Aggregator struct {
	ruinThreshold float64
}

// NewAggregator creates an aggregator with the default ruin threshold.
func NewAggregator() *Aggregator {
	return &Aggregator{ruinThreshold: DefaultRuinThreshold}
}

// WithRuinThreshold sets the capital level that counts as ruin.
func (a *Aggregator) WithRuinThreshold(threshold float64) *Aggregator {
	a.ruinThreshold = threshold
	return a
}

// Summarize computes the full performance report for one trial.
func (a *Aggregator) Summarize(trial *domain.Trial) (*domain.PerformanceReport, error) {
	if len(trial.Outcomes) == 0 {
		return nil, ErrEmptyTrial
	}
	return computeReport(trial, a.ruinThreshold), nil
}

// SummarizeBatch computes per-trial reports plus cross-trial aggregates.
// Trade-level statistics pool every trade of every trial; the ruin figure
// becomes a probability (fraction of trials ruined). Reports are returned
// in trial-index order.
func (a *Aggregator) SummarizeBatch(trials []*domain.Trial) (*domain.BatchReport, error) {
	if len(trials) == 0 {
		return nil, ErrEmptyTrial
	}

	batch := &domain.BatchReport{
		NumTrials: len(trials),
		Trials:    make([]*domain.PerformanceReport, 0, len(trials)),
	}

	var grossProfit, grossLoss float64
	finalEquities := make([]float64, 0, len(trials))
	maxDrawdowns := make([]float64, 0, len(trials))
	startingCapital := trials[0].StartingCapital

	for _, trial := range trials {
		report, err := a.Summarize(trial)
		if err != nil {
			return nil, err
		}
		batch.Trials = append(batch.Trials, report)

		batch.TotalTrades += report.TotalTrades
		batch.Wins += report.Wins
		batch.Losses += report.Losses
		grossProfit += report.GrossProfit
		grossLoss += report.GrossLoss

		if report.MaxDrawdown > batch.MaxDrawdown {
			batch.MaxDrawdown = report.MaxDrawdown
			batch.MaxDrawdownPct = report.MaxDrawdownPct
		}
		if report.MaxWinStreak > batch.MaxWinStreak {
			batch.MaxWinStreak = report.MaxWinStreak
		}
		if report.MaxLossStreak > batch.MaxLossStreak {
			batch.MaxLossStreak = report.MaxLossStreak
		}
		if report.Ruined {
			batch.RuinCount++
		}

		finalEquities = append(finalEquities, report.FinalEquity)
		maxDrawdowns = append(maxDrawdowns, report.MaxDrawdown)
	}

	// Pooled trade statistics
	winRate := float64(batch.Wins) / float64(batch.TotalTrades)
	lossRate := float64(batch.Losses) / float64(batch.TotalTrades)
	batch.WinRate = winRate
	if batch.Wins > 0 {
		batch.AvgWin = grossProfit / float64(batch.Wins)
	}
	if batch.Losses > 0 {
		batch.AvgLoss = grossLoss / float64(batch.Losses)
	}
	batch.Expectancy = winRate*batch.AvgWin + lossRate*batch.AvgLoss
	batch.ProfitFactor = profitFactor(grossProfit, grossLoss, batch.Losses)

	// Equity figures over trial finals
	batch.EquityHigh = finalEquities[0]
	batch.EquityLow = finalEquities[0]
	for _, v := range finalEquities {
		if v > batch.EquityHigh {
			batch.EquityHigh = v
		}
		if v < batch.EquityLow {
			batch.EquityLow = v
		}
	}
	batch.MeanFinalEquity = computeMean(finalEquities)
	batch.NetProfit = batch.MeanFinalEquity - startingCapital

	if batch.AvgWin != 0 {
		ratio := batch.MaxDrawdown / batch.AvgWin
		batch.MaxDDToAvgWin = &ratio
	}

	batch.RuinProbability = float64(batch.RuinCount) / float64(batch.NumTrials)

	batch.FinalEquityDist = computeDistribution(finalEquities)
	batch.MaxDrawdownDist = computeDistribution(maxDrawdowns)

	return batch, nil
}

// computeDistribution summarizes a cross-trial sample.
func computeDistribution(values []float64) domain.Distribution {
	if len(values) == 0 {
		return domain.Distribution{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean := computeMean(values)
	return domain.Distribution{
		Mean:   mean,
		Median: computePercentile(sorted, 0.50),
		P10:    computePercentile(sorted, 0.10),
		P25:    computePercentile(sorted, 0.25),
		P75:    computePercentile(sorted, 0.75),
		P90:    computePercentile(sorted, 0.90),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Stddev: computeStddev(values, mean),
	}
}
