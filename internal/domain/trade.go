package domain

// TradeOutcome represents one simulated trade. Immutable once produced
// by the trial generator.
type TradeOutcome struct {
	IsWin          bool    `json:"is_win"`
	GrossPctChange float64 `json:"gross_pct_change"` // signed fraction drawn from the configured range
	DollarAmount   float64 `json:"dollar_amount"`    // capital-at-trade x change, minus overhead
}

// Trial is one full simulated run of sequential trades plus the resulting
// equity curve. EquityCurve has one entry per trade:
// EquityCurve[i] = EquityCurve[i-1] + Outcomes[i].DollarAmount, with
// StartingCapital as the implicit predecessor of element 0.
type Trial struct {
	Index           int            `json:"index"`
	StartingCapital float64        `json:"starting_capital"`
	Outcomes        []TradeOutcome `json:"outcomes"`
	EquityCurve     []float64      `json:"equity_curve"`
}

// FinalEquity returns the account balance after the last trade,
// or the starting capital for an empty trial.
func (t *Trial) FinalEquity() float64 {
	if len(t.EquityCurve) == 0 {
		return t.StartingCapital
	}
	return t.EquityCurve[len(t.EquityCurve)-1]
}

// NetProfit returns the total gain or loss over the trial.
func (t *Trial) NetProfit() float64 {
	return t.FinalEquity() - t.StartingCapital
}
