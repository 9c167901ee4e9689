package report

import (
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"go.uber.org/zap"

	"github.com/rxtech-lab/argo-screener/internal/logger"
	"github.com/rxtech-lab/argo-screener/internal/types"
	"github.com/rxtech-lab/argo-screener/pkg/errors"
)

const (
	tradesFileName  = "trades.parquet"
	summaryFileName = "summary.yaml"
)

// TradeRow is the parquet row schema for the trade log.
type TradeRow struct {
	RunID      string    `parquet:"run_id,dict"`
	Symbol     string    `parquet:"symbol,dict"`
	EntryTime  time.Time `parquet:"entry_time,timestamp(millisecond)"`
	EntryPrice float64   `parquet:"entry_price"`
	ExitTime   time.Time `parquet:"exit_time,timestamp(millisecond)"`
	ExitPrice  float64   `parquet:"exit_price"`
	ReturnPct  float64   `parquet:"return_pct"`
	Outcome    string    `parquet:"outcome,dict"`
}

// Writer persists backtest results to a directory: the full trade log as
// Parquet and the per-symbol summaries as YAML.
type Writer struct {
	dir    string
	logger *logger.Logger
}

func NewWriter(dir string, logger *logger.Logger) *Writer {
	return &Writer{
		dir:    dir,
		logger: logger,
	}
}

// Write stores the trade log and summaries for one run. The combined summary
// is appended after the per-symbol ones; its trades are already present in
// the per-symbol logs and are not duplicated in the parquet file.
func (w *Writer) Write(runID string, summaries []types.BacktestSummary, combined types.BacktestSummary) error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err, "failed to create results directory %s", w.dir)
	}

	if err := w.writeTrades(runID, summaries); err != nil {
		return err
	}

	return w.writeSummaries(summaries, combined)
}

func (w *Writer) writeTrades(runID string, summaries []types.BacktestSummary) error {
	rows := make([]TradeRow, 0, 64)

	for _, summary := range summaries {
		for _, trade := range summary.Trades {
			rows = append(rows, TradeRow{
				RunID:      runID,
				Symbol:     trade.Symbol,
				EntryTime:  trade.EntryTime,
				EntryPrice: trade.EntryPrice,
				ExitTime:   trade.ExitTime,
				ExitPrice:  trade.ExitPrice,
				ReturnPct:  trade.ReturnPct,
				Outcome:    string(trade.Outcome),
			})
		}
	}

	path := filepath.Join(w.dir, tradesFileName)

	if err := parquet.WriteFile(path, rows); err != nil {
		return errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err, "failed to write trade log to %s", path)
	}

	w.logger.Info("Wrote trade log",
		zap.String("path", path),
		zap.Int("trades", len(rows)))

	return nil
}

func (w *Writer) writeSummaries(summaries []types.BacktestSummary, combined types.BacktestSummary) error {
	all := make([]types.BacktestSummary, 0, len(summaries)+1)
	all = append(all, summaries...)
	all = append(all, combined)

	path := filepath.Join(w.dir, summaryFileName)

	if err := types.WriteSummaries(path, all); err != nil {
		return errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err, "failed to write summaries to %s", path)
	}

	w.logger.Info("Wrote summaries",
		zap.String("path", path),
		zap.Int("symbols", len(summaries)))

	return nil
}
