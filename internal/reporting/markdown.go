package reporting

import (
	"fmt"
	"strings"
	"time"

	"github.com/zerodeltainc/monte-carlo/internal/domain"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder
	b := r.Batch

	sb.WriteString("# Simulation Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Run: `%s` (%s)\n\n", r.ShortRunID, r.RunID))

	sb.WriteString("## Parameters\n\n")
	sb.WriteString("| Parameter | Value |\n")
	sb.WriteString("|-----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Trials | %d |\n", r.Config.NumTrials))
	sb.WriteString(fmt.Sprintf("| Trades per trial | %d |\n", r.Config.TradesPerTrial))
	sb.WriteString(fmt.Sprintf("| Win range | %.1f%% - %.1f%% |\n", r.Config.WinPctRange.Min*100, r.Config.WinPctRange.Max*100))
	sb.WriteString(fmt.Sprintf("| Loss range | %.1f%% - %.1f%% |\n", r.Config.LossPctRange.Min*100, r.Config.LossPctRange.Max*100))
	sb.WriteString(fmt.Sprintf("| Win rate | %.1f%% |\n", r.Config.WinRate*100))
	sb.WriteString(fmt.Sprintf("| Starting capital | $%.2f |\n", r.Config.StartingCapital))
	sb.WriteString(fmt.Sprintf("| Overhead | %.3f%% |\n", r.Config.OverheadPct*100))
	sb.WriteString(fmt.Sprintf("| Seed | %d |\n", r.Config.Seed))
	sb.WriteString("\n")

	sb.WriteString("## Performance\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Total Net Profit | $%.2f |\n", b.NetProfit))
	sb.WriteString(fmt.Sprintf("| Wins | %d (%.1f%%) |\n", b.Wins, b.WinRate*100))
	sb.WriteString(fmt.Sprintf("| Losses | %d (%.1f%%) |\n", b.Losses, (1-b.WinRate)*100))
	sb.WriteString(fmt.Sprintf("| Average Win | $%.2f |\n", b.AvgWin))
	sb.WriteString(fmt.Sprintf("| Average Loss | $%.2f |\n", b.AvgLoss))
	sb.WriteString(fmt.Sprintf("| Expectancy | $%.2f |\n", b.Expectancy))
	sb.WriteString(fmt.Sprintf("| Profit Factor | %s |\n", formatProfitFactor(b.ProfitFactor)))
	sb.WriteString(fmt.Sprintf("| Max Drawdown | $%.2f (%.1f%%) |\n", b.MaxDrawdown, b.MaxDrawdownPct*100))
	sb.WriteString(fmt.Sprintf("| Max Consecutive Wins | %d |\n", b.MaxWinStreak))
	sb.WriteString(fmt.Sprintf("| Max Consecutive Losses | %d |\n", b.MaxLossStreak))
	sb.WriteString(fmt.Sprintf("| Probability of Ruin | %.4f%% (%d/%d trials) |\n", b.RuinProbability*100, b.RuinCount, b.NumTrials))
	sb.WriteString("\n")

	sb.WriteString("## Final Equity Distribution\n\n")
	writeDistTable(&sb, "final equity", b.FinalEquityDist)

	sb.WriteString("## Max Drawdown Distribution\n\n")
	writeDistTable(&sb, "max drawdown", b.MaxDrawdownDist)

	sb.WriteString("## Odds of Losing Streaks\n\n")
	sb.WriteString("| Streak | Odds |\n")
	sb.WriteString("|--------|------|\n")
	for _, row := range r.StreakOdds {
		odds := "N/A"
		if row.Odds != nil {
			odds = fmt.Sprintf("%.0f:1", *row.Odds)
		}
		sb.WriteString(fmt.Sprintf("| %d losses in a row | %s |\n", row.Length, odds))
	}
	sb.WriteString("\n")

	return sb.String()
}

// formatProfitFactor renders the nil-means-infinite sentinel.
func formatProfitFactor(pf *float64) string {
	if pf == nil {
		return "inf"
	}
	return fmt.Sprintf("%.2f", *pf)
}

// writeDistTable writes one distribution as a Markdown table.
func writeDistTable(sb *strings.Builder, name string, d domain.Distribution) {
	sb.WriteString(fmt.Sprintf("| %s | mean | median | p10 | p25 | p75 | p90 | min | max | stddev |\n", name))
	sb.WriteString("|---|---|---|---|---|---|---|---|---|---|\n")
	sb.WriteString(fmt.Sprintf("| $ | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f |\n\n",
		d.Mean, d.Median, d.P10, d.P25, d.P75, d.P90, d.Min, d.Max, d.Stddev))
}
