package reporting

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const rule = "============================================================"

// RenderText renders the report as the classic console summary table.
func RenderText(r *Report) string {
	var sb strings.Builder
	p := message.NewPrinter(language.English)
	b := r.Batch

	sb.WriteString("\n" + rule + "\n")
	sb.WriteString("TRADE PERFORMANCE SUMMARY\n")
	sb.WriteString(rule + "\n\n")

	p.Fprintf(&sb, "Total Net Profit:        $%.2f\n", b.NetProfit)
	p.Fprintf(&sb, "Wins:                    %d (%.1f%%)\n", b.Wins, b.WinRate*100)
	p.Fprintf(&sb, "Losses:                  %d (%.1f%%)\n", b.Losses, (1-b.WinRate)*100)
	p.Fprintf(&sb, "Average profit:          $%.2f\n", b.AvgWin)
	p.Fprintf(&sb, "Average loss:            ($%.2f)\n", -b.AvgLoss)
	p.Fprintf(&sb, "Expectancy:              $%.2f\n", b.Expectancy)
	sb.WriteString(fmt.Sprintf("Max consecutive wins:    %d\n", b.MaxWinStreak))
	sb.WriteString(fmt.Sprintf("Max consecutive losses:  %d\n", b.MaxLossStreak))
	p.Fprintf(&sb, "Equity high value:       $%.2f\n", b.EquityHigh)
	p.Fprintf(&sb, "Equity low value:        $%.2f\n", b.EquityLow)
	p.Fprintf(&sb, "Ending Equity:           $%.2f\n", b.MeanFinalEquity)

	sb.WriteString("\n")
	p.Fprintf(&sb, "Maximum Draw Down Dollars:  $%.2f\n", b.MaxDrawdown)
	p.Fprintf(&sb, "Maximum Draw Down Percent:  %.1f%%\n", b.MaxDrawdownPct*100)
	if b.MaxDDToAvgWin != nil {
		p.Fprintf(&sb, "Max Draw Down/Average Profit: %.2f\n", *b.MaxDDToAvgWin)
	}
	if b.ProfitFactor != nil {
		p.Fprintf(&sb, "Profit Factor:              %.2f\n", *b.ProfitFactor)
	} else {
		sb.WriteString("Profit Factor:              inf (no losing trades)\n")
	}
	p.Fprintf(&sb, "Probability of Ruin:        %.4f%%\n", b.RuinProbability*100)

	sb.WriteString("\n" + rule + "\n")
	sb.WriteString("ODDS OF LOSING STREAKS\n")
	sb.WriteString(rule + "\n")

	for _, row := range r.StreakOdds {
		if row.Odds == nil {
			continue
		}
		p.Fprintf(&sb, "Losing Streak %d: %.0f:1\n", row.Length, *row.Odds)
	}

	return sb.String()
}
