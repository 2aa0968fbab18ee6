package domain

// PerformanceReport holds the derived statistics for one completed trial.
// Computed once by the aggregator, never mutated afterwards.
//
// Pointer fields encode the numeric edge cases the report must surface
// distinctly rather than coerce to zero:
//   - ProfitFactor is nil when there are no losing trades (infinite).
//   - WinStreakOdds / LossStreakOdds are nil when the streak length is zero
//     or the realized per-trade probability is zero (odds undefined).
type PerformanceReport struct {
	TrialIndex  int `json:"trial_index"`
	TotalTrades int `json:"total_trades"`

	// Win/loss split
	Wins     int     `json:"wins"`
	Losses   int     `json:"losses"`
	WinRate  float64 `json:"win_rate"`  // realized, fraction of trades
	LossRate float64 `json:"loss_rate"` // realized, fraction of trades

	// P&L
	NetProfit   float64  `json:"net_profit"`
	GrossProfit float64  `json:"gross_profit"` // sum of positive dollar amounts
	GrossLoss   float64  `json:"gross_loss"`   // sum of negative dollar amounts (signed)
	AvgWin      float64  `json:"avg_win"`      // 0 when no winners
	AvgLoss     float64  `json:"avg_loss"`     // signed negative, 0 when no losers
	Expectancy  float64  `json:"expectancy"`
	ProfitFactor *float64 `json:"profit_factor"` // nil = infinite (zero losing trades)

	// Equity extremes (scan includes the starting capital)
	EquityHigh  float64 `json:"equity_high"`
	EquityLow   float64 `json:"equity_low"`
	FinalEquity float64 `json:"final_equity"`

	// Drawdown
	MaxDrawdown    float64 `json:"max_drawdown"`     // dollars
	MaxDrawdownPct float64 `json:"max_drawdown_pct"` // fraction of the peak at the point of max drawdown

	// Streaks
	MaxWinStreak   int      `json:"max_win_streak"`
	MaxLossStreak  int      `json:"max_loss_streak"`
	WinStreakOdds  *float64 `json:"win_streak_odds"`  // odds-against as N in "N:1"
	LossStreakOdds *float64 `json:"loss_streak_odds"` // odds-against as N in "N:1"

	// Ruin. A single trial yields a fact, not a probability.
	Ruined         bool `json:"ruined"`
	RuinTradeIndex *int `json:"ruin_trade_index"` // first trade where equity crossed the threshold, nil if never
}

// Distribution summarizes a cross-trial sample of a metric.
type Distribution struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P10    float64 `json:"p10"`
	P25    float64 `json:"p25"`
	P75    float64 `json:"p75"`
	P90    float64 `json:"p90"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Stddev float64 `json:"stddev"` // sample stddev, 0 for fewer than 2 trials
}

// BatchReport aggregates a multi-trial run. Trade-level statistics pool
// every trade of every trial; trial-level statistics (drawdown, streaks,
// ruin, final equity) take the worst or the distribution over trials.
type BatchReport struct {
	NumTrials   int `json:"num_trials"`
	TotalTrades int `json:"total_trades"`

	// Pooled trade statistics
	Wins         int      `json:"wins"`
	Losses       int      `json:"losses"`
	WinRate      float64  `json:"win_rate"`
	AvgWin       float64  `json:"avg_win"`
	AvgLoss      float64  `json:"avg_loss"`
	Expectancy   float64  `json:"expectancy"`
	ProfitFactor *float64 `json:"profit_factor"` // nil = infinite (zero losing trades anywhere)

	// Equity
	EquityHigh      float64 `json:"equity_high"`       // highest final equity over trials
	EquityLow       float64 `json:"equity_low"`        // lowest final equity over trials
	MeanFinalEquity float64 `json:"mean_final_equity"` // mean of trial final equities
	NetProfit       float64 `json:"net_profit"`        // mean final equity minus starting capital

	// Worst-case risk over trials
	MaxDrawdown    float64  `json:"max_drawdown"`
	MaxDrawdownPct float64  `json:"max_drawdown_pct"`
	MaxDDToAvgWin  *float64 `json:"max_dd_to_avg_win"` // max drawdown / avg win, nil when avg win is 0
	MaxWinStreak   int      `json:"max_win_streak"`
	MaxLossStreak  int      `json:"max_loss_streak"`

	// Ruin across trials
	RuinCount       int     `json:"ruin_count"`
	RuinProbability float64 `json:"ruin_probability"` // fraction of trials ruined

	// Cross-trial distributions
	FinalEquityDist Distribution `json:"final_equity_dist"`
	MaxDrawdownDist Distribution `json:"max_drawdown_dist"`

	// Per-trial reports in trial-index order.
	Trials []*PerformanceReport `json:"trials"`
}
