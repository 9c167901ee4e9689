package backtest

import (
	"github.com/rxtech-lab/argo-screener/internal/types"
)

// Aggregate reduces a trade log into summary statistics. An empty log is a
// valid outcome: the counts and ratios stay at their zero sentinels.
func Aggregate(symbol string, trades []types.TradeRecord) types.BacktestSummary {
	summary := types.BacktestSummary{
		Symbol:      symbol,
		TotalTrades: len(trades),
		Trades:      trades,
	}

	if len(trades) == 0 {
		return summary
	}

	wins := 0

	var totalReturn float64

	for _, trade := range trades {
		if trade.Outcome == types.OutcomeWin {
			wins++
		}

		totalReturn += trade.ReturnPct
	}

	summary.WinRatioPct = 100 * float64(wins) / float64(len(trades))
	summary.AvgReturnPct = totalReturn / float64(len(trades))

	return summary
}
