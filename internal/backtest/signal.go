package backtest

import (
	"github.com/rxtech-lab/argo-screener/internal/types"
)

// Detector evaluates the RSI + moving-average crossover entry condition.
type Detector struct {
	config Config
}

// NewDetector creates a Detector with the given strategy parameters.
func NewDetector(config Config) *Detector {
	return &Detector{config: config}
}

// Detect reports whether the entry condition holds at index:
// the RSI is below the oversold threshold and the fast moving average crossed
// above the slow one between index-1 and index. Equality on the prior day
// still counts as not-yet-crossed, so an equal-then-rising pair triggers while
// two days already above does not re-trigger.
//
// An out-of-range index or an undefined indicator value on either bar means
// no signal, never an error.
func (d *Detector) Detect(series []types.FeatureBar, index int) bool {
	if index < 1 || index >= len(series) {
		return false
	}

	today := series[index]
	yesterday := series[index-1]

	if !today.HasFeatures() || !yesterday.HasFeatures() {
		return false
	}

	rsiOK := today.RSI.Unwrap() < d.config.RSIThreshold
	crossOK := today.FastMA.Unwrap() > today.SlowMA.Unwrap() &&
		yesterday.FastMA.Unwrap() <= yesterday.SlowMA.Unwrap()

	return rsiOK && crossOK
}
