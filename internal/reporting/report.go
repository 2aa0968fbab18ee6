// Package reporting assembles simulation output into renderable reports.
// It is a consumer of engine data only; no statistics are computed here.
package reporting

import (
	"time"

	"github.com/zerodeltainc/monte-carlo/internal/domain"
)

// Report bundles everything a front end needs to render one simulation
// run: the config it ran with, the batch statistics, the losing-streak
// odds table and a deterministic run identifier.
type Report struct {
	GeneratedAt time.Time              `json:"generated_at"`
	RunID       string                 `json:"run_id"`
	ShortRunID  string                 `json:"short_run_id"`
	Config      domain.SimulationConfig `json:"config"`
	Batch       *domain.BatchReport    `json:"batch"`
	StreakOdds  []domain.StreakOddsRow `json:"streak_odds"`
}
