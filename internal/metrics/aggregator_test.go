package metrics

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/zerodeltainc/monte-carlo/internal/domain"
	"github.com/zerodeltainc/monte-carlo/internal/simulation"
)

func TestSummarize_EmptyTrial(t *testing.T) {
	trial := &domain.Trial{StartingCapital: 1000}

	_, err := NewAggregator().Summarize(trial)
	if err == nil {
		t.Fatal("expected error for empty trial")
	}
	if !errors.Is(err, ErrEmptyTrial) {
		t.Errorf("expected ErrEmptyTrial, got %v", err)
	}
}

func TestSummarize_WinLossSplit(t *testing.T) {
	trial := makeTrial(1000, win(100), win(50), loss(30), loss(30))

	report, err := NewAggregator().Summarize(trial)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if report.Wins != 2 || report.Losses != 2 {
		t.Errorf("expected 2/2 split, got %d/%d", report.Wins, report.Losses)
	}
	if report.WinRate != 0.5 {
		t.Errorf("expected win rate 0.5, got %f", report.WinRate)
	}
	if math.Abs(report.AvgWin-75) > 1e-9 {
		t.Errorf("expected avg win 75, got %f", report.AvgWin)
	}
	if math.Abs(report.AvgLoss-(-30)) > 1e-9 {
		t.Errorf("expected avg loss -30 (signed), got %f", report.AvgLoss)
	}
	// Expectancy: 0.5*75 + 0.5*(-30) = 22.5
	if math.Abs(report.Expectancy-22.5) > 1e-9 {
		t.Errorf("expected expectancy 22.5, got %f", report.Expectancy)
	}
	// Profit factor: 150/60 = 2.5
	if report.ProfitFactor == nil || math.Abs(*report.ProfitFactor-2.5) > 1e-9 {
		t.Errorf("expected profit factor 2.5, got %v", report.ProfitFactor)
	}
	if math.Abs(report.NetProfit-90) > 1e-9 {
		t.Errorf("expected net profit 90, got %f", report.NetProfit)
	}
}

func TestSummarize_AllWinsScenario(t *testing.T) {
	// Ten wins: no losses, infinite profit factor, zero loss streak.
	outcomes := make([]domain.TradeOutcome, 10)
	for i := range outcomes {
		outcomes[i] = win(10)
	}
	trial := makeTrial(1000, outcomes...)

	report, err := NewAggregator().Summarize(trial)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if report.Wins != 10 || report.Losses != 0 {
		t.Errorf("expected 10 wins 0 losses, got %d/%d", report.Wins, report.Losses)
	}
	if report.MaxLossStreak != 0 {
		t.Errorf("expected max loss streak 0, got %d", report.MaxLossStreak)
	}
	if report.ProfitFactor != nil {
		t.Errorf("expected infinite profit factor (nil), got %f", *report.ProfitFactor)
	}
	if report.LossStreakOdds != nil {
		t.Error("loss streak odds should be undefined with no losses")
	}
	if report.AvgLoss != 0 {
		t.Errorf("empty loss bucket must average 0, got %f", report.AvgLoss)
	}
}

func TestSummarize_StreakOddsUseRealizedRates(t *testing.T) {
	// 2 wins, 2 losses: realized rates 0.5 each; max streaks are 2 and 2
	// for W W L L, so odds = 1/0.5^2 - 1 = 3 on both sides.
	trial := makeTrial(1000, win(10), win(10), loss(5), loss(5))

	report, err := NewAggregator().Summarize(trial)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if report.WinStreakOdds == nil || math.Abs(*report.WinStreakOdds-3) > 1e-9 {
		t.Errorf("expected win streak odds 3, got %v", report.WinStreakOdds)
	}
	if report.LossStreakOdds == nil || math.Abs(*report.LossStreakOdds-3) > 1e-9 {
		t.Errorf("expected loss streak odds 3, got %v", report.LossStreakOdds)
	}
}

func TestSummarize_SingleTrialRuinIsBoolean(t *testing.T) {
	trial := makeTrial(100, loss(60), loss(60))

	report, err := NewAggregator().Summarize(trial)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if !report.Ruined {
		t.Error("expected ruin")
	}
	if report.RuinTradeIndex == nil || *report.RuinTradeIndex != 1 {
		t.Errorf("expected ruin at index 1, got %v", report.RuinTradeIndex)
	}
}

func TestSummarize_CustomRuinThreshold(t *testing.T) {
	trial := makeTrial(100, loss(30), win(5))

	report, err := NewAggregator().WithRuinThreshold(80).Summarize(trial)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if !report.Ruined {
		t.Error("expected ruin at threshold 80 after dropping to 70")
	}
}

func TestSummarizeBatch_Empty(t *testing.T) {
	_, err := NewAggregator().SummarizeBatch(nil)
	if !errors.Is(err, ErrEmptyTrial) {
		t.Errorf("expected ErrEmptyTrial, got %v", err)
	}
}

func TestSummarizeBatch_RuinProbability(t *testing.T) {
	ruined := makeTrial(100, loss(60), loss(60))
	healthy := makeTrial(100, win(10), win(10))

	batch, err := NewAggregator().SummarizeBatch([]*domain.Trial{ruined, healthy, healthy, healthy})
	if err != nil {
		t.Fatalf("SummarizeBatch failed: %v", err)
	}
	if batch.RuinCount != 1 {
		t.Errorf("expected 1 ruined trial, got %d", batch.RuinCount)
	}
	if math.Abs(batch.RuinProbability-0.25) > 1e-9 {
		t.Errorf("expected ruin probability 0.25, got %f", batch.RuinProbability)
	}
}

func TestSummarizeBatch_PoolsTrades(t *testing.T) {
	a := makeTrial(1000, win(100), loss(50))
	b := makeTrial(1000, win(200), win(100))

	batch, err := NewAggregator().SummarizeBatch([]*domain.Trial{a, b})
	if err != nil {
		t.Fatalf("SummarizeBatch failed: %v", err)
	}

	if batch.TotalTrades != 4 || batch.Wins != 3 || batch.Losses != 1 {
		t.Errorf("expected 4/3/1, got %d/%d/%d", batch.TotalTrades, batch.Wins, batch.Losses)
	}
	if math.Abs(batch.WinRate-0.75) > 1e-9 {
		t.Errorf("expected pooled win rate 0.75, got %f", batch.WinRate)
	}
	// Avg win over all trials: (100+200+100)/3
	if math.Abs(batch.AvgWin-400.0/3.0) > 1e-9 {
		t.Errorf("expected avg win %f, got %f", 400.0/3.0, batch.AvgWin)
	}
	// Profit factor pooled: 400/50 = 8
	if batch.ProfitFactor == nil || math.Abs(*batch.ProfitFactor-8) > 1e-9 {
		t.Errorf("expected pooled profit factor 8, got %v", batch.ProfitFactor)
	}
	// Final equities 1050 and 1300.
	if batch.EquityHigh != 1300 || batch.EquityLow != 1050 {
		t.Errorf("expected equity high/low 1300/1050, got %f/%f", batch.EquityHigh, batch.EquityLow)
	}
	if math.Abs(batch.MeanFinalEquity-1175) > 1e-9 {
		t.Errorf("expected mean final equity 1175, got %f", batch.MeanFinalEquity)
	}
	if math.Abs(batch.NetProfit-175) > 1e-9 {
		t.Errorf("expected net profit 175, got %f", batch.NetProfit)
	}
}

func TestSummarizeBatch_WorstDrawdownAcrossTrials(t *testing.T) {
	shallow := makeTrial(100, loss(10), win(20))
	deep := makeTrial(100, win(20), loss(60))

	batch, err := NewAggregator().SummarizeBatch([]*domain.Trial{shallow, deep})
	if err != nil {
		t.Fatalf("SummarizeBatch failed: %v", err)
	}
	if math.Abs(batch.MaxDrawdown-60) > 1e-9 {
		t.Errorf("expected worst drawdown 60, got %f", batch.MaxDrawdown)
	}
	if math.Abs(batch.MaxDrawdownPct-0.5) > 1e-9 {
		t.Errorf("expected worst drawdown pct 0.5, got %f", batch.MaxDrawdownPct)
	}
}

func TestSummarizeBatch_Distributions(t *testing.T) {
	trials := []*domain.Trial{
		makeTrial(100, win(10)),  // final 110
		makeTrial(100, win(20)),  // final 120
		makeTrial(100, loss(10)), // final 90
	}

	batch, err := NewAggregator().SummarizeBatch(trials)
	if err != nil {
		t.Fatalf("SummarizeBatch failed: %v", err)
	}

	d := batch.FinalEquityDist
	if math.Abs(d.Mean-320.0/3.0) > 1e-9 {
		t.Errorf("expected mean %f, got %f", 320.0/3.0, d.Mean)
	}
	if d.Median != 110 {
		t.Errorf("expected median 110, got %f", d.Median)
	}
	if d.Min != 90 || d.Max != 120 {
		t.Errorf("expected min/max 90/120, got %f/%f", d.Min, d.Max)
	}
}

func TestSummarizeBatch_Deterministic(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.NumTrials = 5

	var first *domain.BatchReport
	for run := 0; run < 3; run++ {
		trials := make([]*domain.Trial, cfg.NumTrials)
		for i := range trials {
			trial, err := simulation.GenerateTrial(cfg, rand.New(rand.NewSource(cfg.Seed+int64(i))))
			if err != nil {
				t.Fatalf("GenerateTrial failed: %v", err)
			}
			trial.Index = i
			trials[i] = trial
		}

		batch, err := NewAggregator().SummarizeBatch(trials)
		if err != nil {
			t.Fatalf("SummarizeBatch failed: %v", err)
		}
		if first == nil {
			first = batch
			continue
		}
		if !reflect.DeepEqual(first, batch) {
			t.Fatalf("run %d: same seeded input must yield identical reports", run)
		}
	}
}
