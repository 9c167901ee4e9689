package backtest

import (
	"github.com/rxtech-lab/argo-screener/internal/types"
)

// Simulator scans a feature series for entry signals and materialises
// fixed-horizon trades: buy at the open of the bar after the signal, sell at
// the open HoldingDays trading days later.
//
// The simulator keeps no position state. Every index is evaluated
// independently, so trades whose holding windows overlap are all emitted.
// That changes the aggregate statistics versus a one-position-at-a-time
// variant and is intended behavior.
type Simulator struct {
	config   Config
	detector *Detector
}

// NewSimulator creates a Simulator with the given strategy parameters.
func NewSimulator(config Config) *Simulator {
	return &Simulator{
		config:   config,
		detector: NewDetector(config),
	}
}

// Simulate walks the series and returns the resulting trade log in signal
// order. A series too short for a single full trade yields an empty log.
func (s *Simulator) Simulate(series []types.FeatureBar, symbol string) []types.TradeRecord {
	var trades []types.TradeRecord

	// The upper bound alone keeps every exit index in range; the last
	// evaluated signal bar leaves exactly an entry bar plus the holding
	// window after it.
	last := len(series) - s.config.minBars()

	for i := 1; i <= last; i++ {
		if !s.detector.Detect(series, i) {
			continue
		}

		entry := series[i+1]
		exit := series[i+1+s.config.HoldingDays]

		trades = append(trades, types.NewTradeRecord(
			symbol,
			entry.Time, entry.Open,
			exit.Time, exit.Open,
		))
	}

	return trades
}
