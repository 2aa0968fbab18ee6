package simulation

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/zerodeltainc/monte-carlo/internal/domain"
)

func TestGenerateTrial_RejectsInvalidConfig(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.WinRate = 1.5

	_, err := GenerateTrial(cfg, rand.New(rand.NewSource(1)))
	if err == nil {
		t.Fatal("expected error for invalid config")
	}
	if !errors.Is(err, domain.ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestGenerateTrial_CurveLength(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.TradesPerTrial = 73
	cfg.MovingAverageWindow = 10

	trial, err := GenerateTrial(cfg, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("GenerateTrial failed: %v", err)
	}
	if len(trial.EquityCurve) != cfg.TradesPerTrial {
		t.Errorf("expected curve length %d, got %d", cfg.TradesPerTrial, len(trial.EquityCurve))
	}
	if len(trial.Outcomes) != cfg.TradesPerTrial {
		t.Errorf("expected %d outcomes, got %d", cfg.TradesPerTrial, len(trial.Outcomes))
	}
}

func TestGenerateTrial_CurveAccumulation(t *testing.T) {
	cfg := domain.DefaultConfig()
	trial, err := GenerateTrial(cfg, rand.New(rand.NewSource(11)))
	if err != nil {
		t.Fatalf("GenerateTrial failed: %v", err)
	}

	// Final equity equals starting capital plus the sum of dollar amounts.
	sum := 0.0
	for _, o := range trial.Outcomes {
		sum += o.DollarAmount
	}
	if math.Abs(trial.FinalEquity()-(cfg.StartingCapital+sum)) > 1e-6 {
		t.Errorf("final equity %f != starting %f + sum %f", trial.FinalEquity(), cfg.StartingCapital, sum)
	}

	// Each curve point extends the previous one by the trade amount.
	prev := cfg.StartingCapital
	for i, v := range trial.EquityCurve {
		want := prev + trial.Outcomes[i].DollarAmount
		if math.Abs(v-want) > 1e-9 {
			t.Fatalf("curve[%d] = %f, want %f", i, v, want)
		}
		prev = v
	}
}

func TestGenerateTrial_WinLossPartition(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.TradesPerTrial = 200
	cfg.MovingAverageWindow = 30

	trial, err := GenerateTrial(cfg, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("GenerateTrial failed: %v", err)
	}

	wins, losses := 0, 0
	for _, o := range trial.Outcomes {
		if o.IsWin {
			wins++
		} else {
			losses++
		}
	}
	// No trade is ever "neither".
	if wins+losses != cfg.TradesPerTrial {
		t.Errorf("wins %d + losses %d != %d", wins, losses, cfg.TradesPerTrial)
	}
}

func TestGenerateTrial_CertainWinner(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.WinRate = 1.0
	cfg.TradesPerTrial = 10
	cfg.MovingAverageWindow = 5

	trial, err := GenerateTrial(cfg, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("GenerateTrial failed: %v", err)
	}
	for i, o := range trial.Outcomes {
		if !o.IsWin {
			t.Errorf("trade %d: win rate 1.0 must always win", i)
		}
		if o.GrossPctChange <= 0 {
			t.Errorf("trade %d: winning change should be positive, got %f", i, o.GrossPctChange)
		}
	}
}

func TestGenerateTrial_CertainLoser(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.WinRate = 0.0

	trial, err := GenerateTrial(cfg, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("GenerateTrial failed: %v", err)
	}
	for i, o := range trial.Outcomes {
		if o.IsWin {
			t.Errorf("trade %d: win rate 0.0 must always lose", i)
		}
		if o.GrossPctChange >= 0 {
			t.Errorf("trade %d: losing change should be negative, got %f", i, o.GrossPctChange)
		}
	}
}

func TestGenerateTrial_FixedSingleWin(t *testing.T) {
	// A degenerate 10%..10% win range pins the draw: $100,000 capital,
	// no overhead, one winning trade is exactly +$10,000.
	cfg := domain.SimulationConfig{
		NumTrials:           1,
		TradesPerTrial:      1,
		WinPctRange:         domain.PctRange{Min: 0.10, Max: 0.10},
		LossPctRange:        domain.PctRange{Min: 0.10, Max: 0.10},
		WinRate:             1.0,
		StartingCapital:     100000,
		OverheadPct:         0,
		MovingAverageWindow: 1,
		Seed:                1,
	}

	trial, err := GenerateTrial(cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("GenerateTrial failed: %v", err)
	}
	if got := trial.Outcomes[0].DollarAmount; math.Abs(got-10000) > 1e-9 {
		t.Errorf("expected dollar amount 10000, got %f", got)
	}
	if got := trial.FinalEquity(); math.Abs(got-110000) > 1e-9 {
		t.Errorf("expected final equity 110000, got %f", got)
	}
}

func TestGenerateTrial_OverheadChargedOnLosses(t *testing.T) {
	// Overhead applies on every trade against current capital,
	// independent of the trade's own direction.
	cfg := domain.SimulationConfig{
		NumTrials:           1,
		TradesPerTrial:      1,
		WinPctRange:         domain.PctRange{Min: 0.10, Max: 0.10},
		LossPctRange:        domain.PctRange{Min: 0.20, Max: 0.20},
		WinRate:             0.0,
		StartingCapital:     1000,
		OverheadPct:         0.01,
		MovingAverageWindow: 1,
		Seed:                1,
	}

	trial, err := GenerateTrial(cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("GenerateTrial failed: %v", err)
	}
	// -1000*0.20 - 1000*0.01 = -210
	if got := trial.Outcomes[0].DollarAmount; math.Abs(got-(-210)) > 1e-9 {
		t.Errorf("expected dollar amount -210, got %f", got)
	}
}

func TestGenerateTrial_CapitalMayGoNegative(t *testing.T) {
	// No floor: cumulative full losses drive equity through zero.
	cfg := domain.SimulationConfig{
		NumTrials:           1,
		TradesPerTrial:      20,
		WinPctRange:         domain.PctRange{Min: 0.05, Max: 0.05},
		LossPctRange:        domain.PctRange{Min: 0.50, Max: 0.50},
		WinRate:             0.0,
		StartingCapital:     100,
		OverheadPct:         0.60,
		MovingAverageWindow: 1,
		Seed:                1,
	}

	trial, err := GenerateTrial(cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("GenerateTrial failed: %v", err)
	}
	// First trade: 100*(-0.5) - 100*0.6 = -110, capital -10.
	if trial.EquityCurve[0] >= 0 {
		t.Errorf("expected negative equity after first trade, got %f", trial.EquityCurve[0])
	}
}

func TestGenerateTrial_Deterministic(t *testing.T) {
	cfg := domain.DefaultConfig()

	first, err := GenerateTrial(cfg, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("GenerateTrial failed: %v", err)
	}

	for run := 0; run < 5; run++ {
		again, err := GenerateTrial(cfg, rand.New(rand.NewSource(42)))
		if err != nil {
			t.Fatalf("GenerateTrial failed: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d: same seed must reproduce an identical trial", run)
		}
	}
}
