// Package indicator derives technical indicator columns from daily price
// series. Computations are whole-series: each function returns a column
// aligned 1:1 with its input, with None entries where the rolling window has
// not filled yet.
package indicator

import (
	"github.com/rxtech-lab/argo-screener/internal/types"
	"github.com/rxtech-lab/argo-screener/pkg/errors"
)

// Provider derives feature-augmented bars from raw price history.
type Provider struct {
	rsiPeriod  int
	fastPeriod int
	slowPeriod int
}

// NewProvider creates a Provider with the given rolling windows.
func NewProvider(rsiPeriod, fastPeriod, slowPeriod int) *Provider {
	return &Provider{
		rsiPeriod:  rsiPeriod,
		fastPeriod: fastPeriod,
		slowPeriod: slowPeriod,
	}
}

// Compute returns a feature series aligned 1:1 with bars. Leading entries
// carry None indicator values until every window has filled. An empty input
// is a construction failure: there is no close data to compute from.
func (p *Provider) Compute(bars []types.PriceBar) ([]types.FeatureBar, error) {
	if len(bars) == 0 {
		return nil, errors.New(errors.ErrCodeMissingColumn, "no close data to compute indicators from")
	}

	rsi, err := RSISeries(bars, p.rsiPeriod)
	if err != nil {
		return nil, err
	}

	fast, err := SMASeries(bars, p.fastPeriod)
	if err != nil {
		return nil, err
	}

	slow, err := SMASeries(bars, p.slowPeriod)
	if err != nil {
		return nil, err
	}

	features := make([]types.FeatureBar, len(bars))
	for i := range bars {
		features[i] = types.FeatureBar{
			PriceBar: bars[i],
			RSI:      rsi[i],
			FastMA:   fast[i],
			SlowMA:   slow[i],
		}
	}

	return features, nil
}
