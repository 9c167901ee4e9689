package indicator

import (
	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-screener/internal/types"
	"github.com/rxtech-lab/argo-screener/pkg/errors"
)

// SMASeries computes the simple moving average of the close over a trailing
// window. The result is aligned 1:1 with the input; entries before the window
// has filled are None.
func SMASeries(bars []types.PriceBar, period int) ([]optional.Option[float64], error) {
	if period <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "sma period must be a positive integer, got %d", period)
	}

	out := make([]optional.Option[float64], len(bars))
	for i := range out {
		out[i] = optional.None[float64]()
	}

	var sum float64

	for i := range bars {
		sum += bars[i].Close
		if i >= period {
			sum -= bars[i-period].Close
		}

		if i >= period-1 {
			out[i] = optional.Some(sum / float64(period))
		}
	}

	return out, nil
}
