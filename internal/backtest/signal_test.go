package backtest

import (
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/argo-screener/internal/types"
)

// featureSpec describes one fully-defined feature bar for tests.
type featureSpec struct {
	open float64
	rsi  float64
	fast float64
	slow float64
}

// featureSeries builds a daily feature series from specs. Every indicator
// column is defined; use undefinedAt to blank bars out afterwards.
func featureSeries(specs []featureSpec) []types.FeatureBar {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	series := make([]types.FeatureBar, len(specs))

	for i, spec := range specs {
		series[i] = types.FeatureBar{
			PriceBar: types.PriceBar{
				Symbol: "TEST",
				Time:   start.AddDate(0, 0, i),
				Open:   spec.open,
				Close:  spec.open,
			},
			RSI:    optional.Some(spec.rsi),
			FastMA: optional.Some(spec.fast),
			SlowMA: optional.Some(spec.slow),
		}
	}

	return series
}

// undefinedAt blanks out every indicator column of the bar at index.
func undefinedAt(series []types.FeatureBar, index int) []types.FeatureBar {
	series[index].RSI = optional.None[float64]()
	series[index].FastMA = optional.None[float64]()
	series[index].SlowMA = optional.None[float64]()

	return series
}

type DetectorTestSuite struct {
	suite.Suite
	detector *Detector
}

func TestDetectorSuite(t *testing.T) {
	suite.Run(t, new(DetectorTestSuite))
}

func (suite *DetectorTestSuite) SetupTest() {
	suite.detector = NewDetector(DefaultConfig())
}

func (suite *DetectorTestSuite) TestRSIAtOrAboveThresholdNeverTriggers() {
	// Perfect crossover, but RSI is not oversold.
	series := featureSeries([]featureSpec{
		{open: 100, rsi: 30, fast: 99, slow: 100},
		{open: 100, rsi: 30, fast: 101, slow: 100},
	})
	suite.False(suite.detector.Detect(series, 1))

	series = featureSeries([]featureSpec{
		{open: 100, rsi: 55, fast: 99, slow: 100},
		{open: 100, rsi: 55, fast: 101, slow: 100},
	})
	suite.False(suite.detector.Detect(series, 1))
}

func (suite *DetectorTestSuite) TestFastBelowSlowNeverTriggers() {
	// Deeply oversold, but the fast average never clears the slow one.
	series := featureSeries([]featureSpec{
		{open: 100, rsi: 10, fast: 95, slow: 100},
		{open: 100, rsi: 10, fast: 97, slow: 100},
	})
	suite.False(suite.detector.Detect(series, 1))

	// Equality today is still not a cross.
	series = featureSeries([]featureSpec{
		{open: 100, rsi: 10, fast: 95, slow: 100},
		{open: 100, rsi: 10, fast: 100, slow: 100},
	})
	suite.False(suite.detector.Detect(series, 1))
}

func (suite *DetectorTestSuite) TestEqualityThenRiseCounts() {
	// Prior-day equality counts as not-yet-crossed, so this is a fresh cross.
	series := featureSeries([]featureSpec{
		{open: 100, rsi: 28, fast: 100, slow: 100},
		{open: 100, rsi: 28, fast: 101, slow: 100},
	})
	suite.True(suite.detector.Detect(series, 1))
}

func (suite *DetectorTestSuite) TestAlreadyAboveDoesNotRetrigger() {
	series := featureSeries([]featureSpec{
		{open: 100, rsi: 28, fast: 101, slow: 100},
		{open: 100, rsi: 28, fast: 102, slow: 100},
	})
	suite.False(suite.detector.Detect(series, 1))
}

func (suite *DetectorTestSuite) TestFreshCrossWithOversoldRSI() {
	series := featureSeries([]featureSpec{
		{open: 100, rsi: 35, fast: 99, slow: 100},
		{open: 100, rsi: 25, fast: 101, slow: 100},
	})
	suite.True(suite.detector.Detect(series, 1))
}

func (suite *DetectorTestSuite) TestUndefinedFeaturesMeanNoSignal() {
	series := featureSeries([]featureSpec{
		{open: 100, rsi: 25, fast: 99, slow: 100},
		{open: 100, rsi: 25, fast: 101, slow: 100},
	})
	suite.False(suite.detector.Detect(undefinedAt(series, 1), 1))

	series = featureSeries([]featureSpec{
		{open: 100, rsi: 25, fast: 99, slow: 100},
		{open: 100, rsi: 25, fast: 101, slow: 100},
	})
	suite.False(suite.detector.Detect(undefinedAt(series, 0), 1))
}

func (suite *DetectorTestSuite) TestIndexBounds() {
	series := featureSeries([]featureSpec{
		{open: 100, rsi: 25, fast: 99, slow: 100},
		{open: 100, rsi: 25, fast: 101, slow: 100},
	})

	// Index 0 has no prior bar to compare against.
	suite.False(suite.detector.Detect(series, 0))
	suite.False(suite.detector.Detect(series, -1))
	suite.False(suite.detector.Detect(series, len(series)))
	suite.False(suite.detector.Detect(nil, 1))
}
