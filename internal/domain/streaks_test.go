package domain

import (
	"math"
	"testing"
)

func TestLosingStreakOdds_TableShape(t *testing.T) {
	rows := LosingStreakOdds(0.75)
	if len(rows) != 9 {
		t.Fatalf("expected 9 rows (streaks 2-10), got %d", len(rows))
	}
	if rows[0].Length != 2 || rows[len(rows)-1].Length != 10 {
		t.Errorf("expected lengths 2..10, got %d..%d", rows[0].Length, rows[len(rows)-1].Length)
	}
}

func TestLosingStreakOdds_Values(t *testing.T) {
	// Loss probability 0.25: streak of 2 is 1/0.25^2 = 16:1.
	rows := LosingStreakOdds(0.75)

	want := map[int]float64{2: 16, 3: 64, 4: 256}
	for _, row := range rows {
		expected, ok := want[row.Length]
		if !ok {
			continue
		}
		if row.Odds == nil {
			t.Fatalf("streak %d: odds should be defined", row.Length)
		}
		if math.Abs(*row.Odds-expected) > 1e-9 {
			t.Errorf("streak %d: expected odds %g, got %g", row.Length, expected, *row.Odds)
		}
	}
}

func TestLosingStreakOdds_CertainWinner(t *testing.T) {
	// Win rate 1 means loss probability 0: odds undefined on every row.
	for _, row := range LosingStreakOdds(1.0) {
		if row.Odds != nil {
			t.Errorf("streak %d: odds should be nil for zero loss probability, got %g", row.Length, *row.Odds)
		}
	}
}
