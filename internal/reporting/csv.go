package reporting

import (
	"fmt"
	"strings"

	"github.com/zerodeltainc/monte-carlo/internal/domain"
)

// RenderCSV renders per-trial reports as CSV string.
func RenderCSV(trials []*domain.PerformanceReport) string {
	var sb strings.Builder

	// Header
	sb.WriteString("trial,total_trades,wins,losses,win_rate,net_profit,avg_win,avg_loss,expectancy,")
	sb.WriteString("profit_factor,max_drawdown,max_drawdown_pct,")
	sb.WriteString("max_win_streak,max_loss_streak,final_equity,ruined\n")

	// Rows
	for _, t := range trials {
		pf := ""
		if t.ProfitFactor != nil {
			pf = fmt.Sprintf("%.6f", *t.ProfitFactor)
		}
		sb.WriteString(fmt.Sprintf("%d,%d,%d,%d,%.6f,%.2f,%.2f,%.2f,%.2f,%s,%.2f,%.6f,%d,%d,%.2f,%t\n",
			t.TrialIndex,
			t.TotalTrades,
			t.Wins,
			t.Losses,
			t.WinRate,
			t.NetProfit,
			t.AvgWin,
			t.AvgLoss,
			t.Expectancy,
			pf,
			t.MaxDrawdown,
			t.MaxDrawdownPct,
			t.MaxWinStreak,
			t.MaxLossStreak,
			t.FinalEquity,
			t.Ruined,
		))
	}

	return sb.String()
}
