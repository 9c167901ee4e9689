package indicator

import (
	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-screener/internal/types"
	"github.com/rxtech-lab/argo-screener/pkg/errors"
)

// RSISeries computes the Relative Strength Index of the close using Wilder's
// smoothing. The result is aligned 1:1 with the input; the first period
// entries are None because the smoothing needs period+1 closes to seed.
func RSISeries(bars []types.PriceBar, period int) ([]optional.Option[float64], error) {
	if period <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "rsi period must be a positive integer, got %d", period)
	}

	out := make([]optional.Option[float64], len(bars))
	for i := range out {
		out[i] = optional.None[float64]()
	}

	if len(bars) <= period {
		return out, nil
	}

	// Per-bar gains and losses. Index 0 has no prior close and stays zero.
	gains := make([]float64, len(bars))
	losses := make([]float64, len(bars))

	for i := 1; i < len(bars); i++ {
		change := bars[i].Close - bars[i-1].Close
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	// Seed with the plain average of the first period changes.
	var avgGain, avgLoss float64

	for i := 1; i <= period; i++ {
		avgGain += gains[i]
		avgLoss += losses[i]
	}

	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = optional.Some(rsiFromAverages(avgGain, avgLoss))

	// Subsequent bars use Wilder's smoothing.
	for i := period + 1; i < len(bars); i++ {
		avgGain = (avgGain*float64(period-1) + gains[i]) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + losses[i]) / float64(period)
		out[i] = optional.Some(rsiFromAverages(avgGain, avgLoss))
	}

	return out, nil
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100 // Perfect uptrend
	}

	rs := avgGain / avgLoss

	return 100 - (100 / (1 + rs))
}
