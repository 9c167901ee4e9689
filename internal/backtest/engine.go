// Package backtest implements the signal-detection and trade-simulation core:
// an RSI + moving-average crossover entry condition evaluated over daily
// feature bars, a fixed-horizon trade simulator, and summary aggregation.
package backtest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/rxtech-lab/argo-screener/internal/indicator"
	"github.com/rxtech-lab/argo-screener/internal/logger"
	"github.com/rxtech-lab/argo-screener/internal/types"
)

// Source fetches daily price history for one instrument. Implementations may
// fail for unknown or delisted symbols or transient network errors; the
// engine skips those instruments rather than failing the run.
type Source interface {
	Fetch(ctx context.Context, symbol string) ([]types.PriceBar, error)
}

// Engine orchestrates indicator computation, signal scanning, and result
// aggregation. It is synchronous and keeps no per-run state, so one engine
// can back any number of concurrent callers.
type Engine struct {
	config    Config
	provider  *indicator.Provider
	detector  *Detector
	simulator *Simulator
	log       *logger.Logger
}

// NewEngine creates an Engine after validating the strategy parameters.
func NewEngine(config Config, log *logger.Logger) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Engine{
		config:    config,
		provider:  indicator.NewProvider(config.RSIPeriod, config.FastPeriod, config.SlowPeriod),
		detector:  NewDetector(config),
		simulator: NewSimulator(config),
		log:       log,
	}, nil
}

// Features derives the feature series the engine's detector consumes.
func (e *Engine) Features(bars []types.PriceBar) ([]types.FeatureBar, error) {
	return e.provider.Compute(bars)
}

// Run backtests one instrument's price history. None means the cleaned series
// is too short to simulate, an expected condition the caller should skip, not
// an error. Malformed input (no close data) does surface as an error.
func (e *Engine) Run(bars []types.PriceBar, symbol string) (optional.Option[types.BacktestSummary], error) {
	features, err := e.provider.Compute(bars)
	if err != nil {
		return optional.None[types.BacktestSummary](), err
	}

	cleaned := dropUndefined(features)
	if len(cleaned) < e.config.minBars() {
		e.log.Info("not enough data to backtest",
			zap.String("symbol", symbol),
			zap.Int("cleaned_bars", len(cleaned)),
			zap.Int("required", e.config.minBars()),
		)

		return optional.None[types.BacktestSummary](), nil
	}

	trades := e.simulator.Simulate(cleaned, symbol)
	if len(trades) == 0 {
		e.log.Info("no trades triggered",
			zap.String("symbol", symbol),
			zap.Int("cleaned_bars", len(cleaned)),
		)
	}

	return optional.Some(Aggregate(symbol, trades)), nil
}

// SignalSnapshot carries the newest indicator readings alongside the
// entry-condition result, for display and logging by callers.
type SignalSnapshot struct {
	Symbol    string
	Time      time.Time
	Triggered bool
	RSI       float64
	FastMA    float64
	SlowMA    float64
}

// CheckLatestSignal evaluates the entry condition on the newest cleaned bar,
// returning the same boolean a historical scan would have produced had it
// reached that index. None means fewer than two cleaned bars, in which case
// there is no crossover to speak of.
func (e *Engine) CheckLatestSignal(series []types.FeatureBar) optional.Option[SignalSnapshot] {
	cleaned := dropUndefined(series)
	if len(cleaned) < 2 {
		return optional.None[SignalSnapshot]()
	}

	last := len(cleaned) - 1
	latest := cleaned[last]

	return optional.Some(SignalSnapshot{
		Symbol:    latest.Symbol,
		Time:      latest.Time,
		Triggered: e.detector.Detect(cleaned, last),
		RSI:       latest.RSI.Unwrap(),
		FastMA:    latest.FastMA.Unwrap(),
		SlowMA:    latest.SlowMA.Unwrap(),
	})
}

// UniverseResult is the outcome of a multi-instrument run: per-instrument
// summaries in input order plus one summary over the combined trade log.
type UniverseResult struct {
	RunID     string
	Summaries []types.BacktestSummary
	Combined  types.BacktestSummary
}

// RunUniverse backtests every symbol in order and combines the trade logs
// into one overall summary. Instruments that cannot be fetched or lack enough
// history are skipped. Input order is preserved so runs are reproducible.
func (e *Engine) RunUniverse(ctx context.Context, symbols []string, source Source) (UniverseResult, error) {
	result := UniverseResult{RunID: uuid.New().String()}

	bar := progressbar.NewOptions(len(symbols),
		progressbar.OptionSetDescription("Backtesting"),
		progressbar.OptionShowCount(),
	)

	var combined []types.TradeRecord

	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		prices, err := source.Fetch(ctx, symbol)
		if err != nil {
			e.log.Warn("skipping instrument, fetch failed",
				zap.String("symbol", symbol),
				zap.Error(err),
			)
			bar.Add(1)

			continue
		}

		summary, err := e.Run(prices, symbol)
		if err != nil {
			return result, err
		}

		if summary.IsSome() {
			s := summary.Unwrap()
			result.Summaries = append(result.Summaries, s)
			combined = append(combined, s.Trades...)
		}

		bar.Add(1)
	}

	bar.Finish()

	result.Combined = Aggregate(types.CombinedSymbol, combined)

	return result, nil
}

// dropUndefined removes bars whose indicator columns are not all defined,
// mirroring the post-indicator cleaning step.
func dropUndefined(series []types.FeatureBar) []types.FeatureBar {
	cleaned := make([]types.FeatureBar, 0, len(series))

	for _, b := range series {
		if b.HasFeatures() {
			cleaned = append(cleaned, b)
		}
	}

	return cleaned
}
