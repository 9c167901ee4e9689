package types

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BacktestSummary aggregates the outcome of one backtest pass. For a run with
// zero trades the ratio fields hold their zero sentinels; that is a valid,
// common result rather than an error.
type BacktestSummary struct {
	// Symbol of the instrument, or "ALL" for a combined summary.
	Symbol string `yaml:"symbol"`
	// TotalTrades is the number of simulated trades.
	TotalTrades int `yaml:"total_trades"`
	// WinRatioPct is the percentage of trades with a positive return.
	WinRatioPct float64 `yaml:"win_ratio_pct"`
	// AvgReturnPct is the arithmetic mean of per-trade returns.
	AvgReturnPct float64 `yaml:"avg_return_pct"`
	// Trades is the ordered trade log backing the statistics above. It is
	// persisted separately (parquet), not in the yaml summary.
	Trades []TradeRecord `yaml:"-"`
}

// CombinedSymbol names the summary built from every instrument's trade log.
const CombinedSymbol = "ALL"

// WriteSummaries writes backtest summaries to a YAML file.
func WriteSummaries(path string, summaries []BacktestSummary) error {
	data, err := yaml.Marshal(summaries)
	if err != nil {
		return fmt.Errorf("failed to marshal backtest summaries to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write backtest summaries to file: %w", err)
	}

	return nil
}
