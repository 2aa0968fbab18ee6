// Package metrics derives performance and risk statistics from completed
// trials. It only reads trial data; report construction happens here and
// nowhere else.
package metrics

import (
	"math"

	"github.com/zerodeltainc/monte-carlo/internal/domain"
)

// computeReport calculates all single-trial metrics. The trial must have
// at least one outcome; callers guard with ErrEmptyTrial.
func computeReport(trial *domain.Trial, ruinThreshold float64) *domain.PerformanceReport {
	n := len(trial.Outcomes)

	report := &domain.PerformanceReport{
		TrialIndex:  trial.Index,
		TotalTrades: n,
		FinalEquity: trial.FinalEquity(),
		NetProfit:   trial.NetProfit(),
	}

	// Win/loss split
	for _, o := range trial.Outcomes {
		if o.IsWin {
			report.Wins++
			report.GrossProfit += o.DollarAmount
		} else {
			report.Losses++
			report.GrossLoss += o.DollarAmount
		}
	}
	report.WinRate = float64(report.Wins) / float64(n)
	report.LossRate = float64(report.Losses) / float64(n)

	// Bucket averages: empty buckets stay at 0, never divide by zero.
	if report.Wins > 0 {
		report.AvgWin = report.GrossProfit / float64(report.Wins)
	}
	if report.Losses > 0 {
		report.AvgLoss = report.GrossLoss / float64(report.Losses)
	}

	// Expectancy with AvgLoss already signed negative.
	report.Expectancy = report.WinRate*report.AvgWin + report.LossRate*report.AvgLoss

	// Profit factor: nil means infinite (no losing trades).
	report.ProfitFactor = profitFactor(report.GrossProfit, report.GrossLoss, report.Losses)

	// Equity extremes and drawdown; scans include the starting capital.
	report.EquityHigh, report.EquityLow = equityExtremes(trial)
	report.MaxDrawdown, report.MaxDrawdownPct = computeMaxDrawdown(trial)

	// Streaks and their empirical odds.
	report.MaxWinStreak, report.MaxLossStreak = computeStreaks(trial.Outcomes)
	report.WinStreakOdds = streakOdds(report.WinRate, report.MaxWinStreak)
	report.LossStreakOdds = streakOdds(report.LossRate, report.MaxLossStreak)

	// Ruin: fact, not probability, for a single trial.
	report.Ruined, report.RuinTradeIndex = detectRuin(trial.EquityCurve, ruinThreshold)

	return report
}

// profitFactor returns gross profit over gross loss magnitude, or nil
// when there are no losing trades (reported as infinite, not an error).
func profitFactor(grossProfit, grossLoss float64, losses int) *float64 {
	if losses == 0 || grossLoss == 0 {
		return nil
	}
	pf := grossProfit / math.Abs(grossLoss)
	return &pf
}

// equityExtremes returns the highest and lowest account values seen,
// starting capital included.
func equityExtremes(trial *domain.Trial) (high, low float64) {
	high = trial.StartingCapital
	low = trial.StartingCapital
	for _, v := range trial.EquityCurve {
		if v > high {
			high = v
		}
		if v < low {
			low = v
		}
	}
	return high, low
}

// computeMaxDrawdown scans the equity curve with a running peak seeded
// from the starting capital. The percent figure divides by the peak at
// the point of maximum drawdown, not by starting capital.
func computeMaxDrawdown(trial *domain.Trial) (maxDD, maxDDPct float64) {
	peak := trial.StartingCapital
	for _, v := range trial.EquityCurve {
		if v > peak {
			peak = v
		}
		dd := peak - v
		if dd > maxDD {
			maxDD = dd
			if peak > 0 {
				maxDDPct = dd / peak
			}
		}
	}
	return maxDD, maxDDPct
}

// computeStreaks finds the longest runs of consecutive wins and losses.
func computeStreaks(outcomes []domain.TradeOutcome) (maxWin, maxLoss int) {
	curWin := 0
	curLoss := 0
	for _, o := range outcomes {
		if o.IsWin {
			curWin++
			curLoss = 0
			if curWin > maxWin {
				maxWin = curWin
			}
		} else {
			curLoss++
			curWin = 0
			if curLoss > maxLoss {
				maxLoss = curLoss
			}
		}
	}
	return maxWin, maxLoss
}

// streakOdds returns the odds against a run of length streak under the
// realized single-trade probability p, as N in "N:1":
// odds = (1 / p^streak) - 1. Nil when the streak is empty or p is zero
// (odds undefined).
func streakOdds(p float64, streak int) *float64 {
	if streak == 0 || p == 0 {
		return nil
	}
	odds := 1/math.Pow(p, float64(streak)) - 1
	return &odds
}

// detectRuin reports whether equity ever fell to or below the threshold
// and the index of the first trade where it did.
func detectRuin(curve []float64, threshold float64) (bool, *int) {
	for i, v := range curve {
		if v <= threshold {
			idx := i
			return true, &idx
		}
	}
	return false, nil
}

// computeMean calculates the arithmetic mean of a sample.
func computeMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// computeStddev calculates sample standard deviation (n-1 denominator).
func computeStddev(values []float64, mean float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	sumSq := 0.0
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(n-1))
}

// computePercentile uses linear interpolation.
// sorted must be pre-sorted ASC. p is the percentile (0.10 = 10th).
func computePercentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}

	idx := p * float64(n-1)
	lower := int(idx)
	upper := lower + 1
	if upper >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}
