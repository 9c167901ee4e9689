package backtest

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/argo-screener/internal/types"
)

type SimulatorTestSuite struct {
	suite.Suite
	simulator *Simulator
}

func TestSimulatorSuite(t *testing.T) {
	suite.Run(t, new(SimulatorTestSuite))
}

func (suite *SimulatorTestSuite) SetupTest() {
	suite.simulator = NewSimulator(DefaultConfig())
}

// scenarioSeries is a 10-bar series with exactly one signal at index 2:
// RSI oversold and a fresh 20/50 cross. Entry is bar 3's open, exit is
// bar 8's open (five trading days later).
func scenarioSeries(entryOpen, exitOpen float64) []types.FeatureBar {
	return featureSeries([]featureSpec{
		{open: 90, rsi: 50, fast: 100, slow: 100},
		{open: 95, rsi: 40, fast: 99, slow: 100},
		{open: 98, rsi: 25, fast: 101, slow: 100}, // signal bar
		{open: entryOpen, rsi: 50, fast: 101, slow: 100},
		{open: 101, rsi: 50, fast: 101, slow: 100},
		{open: 102, rsi: 50, fast: 101, slow: 100},
		{open: 103, rsi: 50, fast: 101, slow: 100},
		{open: 104, rsi: 50, fast: 101, slow: 100},
		{open: exitOpen, rsi: 50, fast: 101, slow: 100},
		{open: 111, rsi: 50, fast: 101, slow: 100},
	})
}

func (suite *SimulatorTestSuite) TestSeriesTooShortYieldsNoTrades() {
	series := featureSeries([]featureSpec{
		{open: 100, rsi: 25, fast: 99, slow: 100},
		{open: 100, rsi: 25, fast: 101, slow: 100},
		{open: 100, rsi: 25, fast: 101, slow: 100},
		{open: 100, rsi: 25, fast: 101, slow: 100},
		{open: 100, rsi: 25, fast: 101, slow: 100},
		{open: 100, rsi: 25, fast: 101, slow: 100},
	})

	suite.Empty(suite.simulator.Simulate(series, "TEST"))
	suite.Empty(suite.simulator.Simulate(nil, "TEST"))
}

func (suite *SimulatorTestSuite) TestWinningScenario() {
	trades := suite.simulator.Simulate(scenarioSeries(100, 110), "RELIANCE")
	suite.Require().Len(trades, 1)

	trade := trades[0]
	suite.Equal("RELIANCE", trade.Symbol)
	suite.InDelta(100.0, trade.EntryPrice, 1e-9)
	suite.InDelta(110.0, trade.ExitPrice, 1e-9)
	suite.InDelta(10.0, trade.ReturnPct, 1e-9)
	suite.Equal(types.OutcomeWin, trade.Outcome)

	// Entry is the bar after the signal; exit five trading days later.
	series := scenarioSeries(100, 110)
	suite.Equal(series[3].Time, trade.EntryTime)
	suite.Equal(series[8].Time, trade.ExitTime)
}

func (suite *SimulatorTestSuite) TestLosingScenario() {
	trades := suite.simulator.Simulate(scenarioSeries(100, 95), "RELIANCE")
	suite.Require().Len(trades, 1)
	suite.InDelta(-5.0, trades[0].ReturnPct, 1e-9)
	suite.Equal(types.OutcomeLoss, trades[0].Outcome)
}

func (suite *SimulatorTestSuite) TestFlatExitIsLoss() {
	trades := suite.simulator.Simulate(scenarioSeries(100, 100), "RELIANCE")
	suite.Require().Len(trades, 1)
	suite.Zero(trades[0].ReturnPct)
	suite.Equal(types.OutcomeLoss, trades[0].Outcome)
}

func (suite *SimulatorTestSuite) TestOverlappingWindowsBothTrade() {
	// Signals at indices 1 and 3: the fast average dips back under the slow
	// one at index 2 and crosses again, with RSI oversold throughout. The
	// two holding windows overlap; both trades are still emitted.
	series := featureSeries([]featureSpec{
		{open: 90, rsi: 25, fast: 99, slow: 100},
		{open: 91, rsi: 25, fast: 101, slow: 100}, // first signal
		{open: 92, rsi: 25, fast: 99, slow: 100},
		{open: 93, rsi: 25, fast: 101, slow: 100}, // second signal
		{open: 94, rsi: 25, fast: 101, slow: 100},
		{open: 95, rsi: 25, fast: 101, slow: 100},
		{open: 96, rsi: 25, fast: 101, slow: 100},
		{open: 97, rsi: 25, fast: 101, slow: 100},
		{open: 98, rsi: 25, fast: 101, slow: 100},
		{open: 99, rsi: 25, fast: 101, slow: 100},
	})

	trades := suite.simulator.Simulate(series, "TEST")
	suite.Require().Len(trades, 2)

	// First trade: entry bar 2, exit bar 7.
	suite.InDelta(92.0, trades[0].EntryPrice, 1e-9)
	suite.InDelta(97.0, trades[0].ExitPrice, 1e-9)

	// Second trade: entry bar 4, exit bar 9, inside the first's window.
	suite.InDelta(94.0, trades[1].EntryPrice, 1e-9)
	suite.InDelta(99.0, trades[1].ExitPrice, 1e-9)
}

func (suite *SimulatorTestSuite) TestSignalTooCloseToEndIsNotEvaluated() {
	// The only would-be signal sits past the last index that leaves room
	// for an entry bar plus the holding window, so nothing trades.
	series := featureSeries([]featureSpec{
		{open: 90, rsi: 50, fast: 100, slow: 100},
		{open: 91, rsi: 50, fast: 99, slow: 100},
		{open: 92, rsi: 50, fast: 98, slow: 100},
		{open: 93, rsi: 50, fast: 97, slow: 100},
		{open: 94, rsi: 50, fast: 96, slow: 100},
		{open: 95, rsi: 50, fast: 95, slow: 100},
		{open: 96, rsi: 50, fast: 94, slow: 100},
		{open: 97, rsi: 50, fast: 93, slow: 100},
		{open: 98, rsi: 25, fast: 92, slow: 100},
		{open: 99, rsi: 25, fast: 101, slow: 100}, // cross, but at len-1
	})

	suite.Empty(suite.simulator.Simulate(series, "TEST"))
}
