package domain

// StreakOddsRow is one entry of the losing-streak odds table: the odds
// against seeing Length consecutive losses under the configured win rate,
// reported as N in "N:1". Odds is nil when the loss probability is zero.
type StreakOddsRow struct {
	Length int      `json:"length"`
	Odds   *float64 `json:"odds"`
}

// Losing-streak table bounds. The table has always covered runs of 2
// through 10 consecutive losses.
const (
	minStreakTableLength = 2
	maxStreakTableLength = 10
)

// LosingStreakOdds builds the losing-streak odds table for a configured
// win rate. Uses the formula odds = 1 / lossProb^L, matching the
// historical report output.
func LosingStreakOdds(winRate float64) []StreakOddsRow {
	lossProb := 1 - winRate
	rows := make([]StreakOddsRow, 0, maxStreakTableLength-minStreakTableLength+1)

	for length := minStreakTableLength; length <= maxStreakTableLength; length++ {
		row := StreakOddsRow{Length: length}
		if lossProb > 0 {
			odds := 1.0
			for i := 0; i < length; i++ {
				odds /= lossProb
			}
			row.Odds = &odds
		}
		rows = append(rows, row)
	}
	return rows
}
