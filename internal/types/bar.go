package types

import (
	"time"

	"github.com/moznion/go-optional"
)

// PriceBar is a single daily OHLCV bar for one instrument.
type PriceBar struct {
	Symbol string    `csv:"symbol"`
	Time   time.Time `csv:"time"`
	Open   float64   `csv:"open"`
	High   float64   `csv:"high"`
	Low    float64   `csv:"low"`
	Close  float64   `csv:"close"`
	Volume float64   `csv:"volume"`
}

// FeatureBar is a PriceBar augmented with indicator columns. A column is None
// until its rolling window has filled, so the first bars of any series carry
// undefined values.
type FeatureBar struct {
	PriceBar

	// RSI is the Relative Strength Index of the close.
	RSI optional.Option[float64]
	// FastMA is the faster simple moving average of the close.
	FastMA optional.Option[float64]
	// SlowMA is the slower simple moving average of the close.
	SlowMA optional.Option[float64]
}

// HasFeatures reports whether every indicator column is defined.
func (b FeatureBar) HasFeatures() bool {
	return b.RSI.IsSome() && b.FastMA.IsSome() && b.SlowMA.IsSome()
}
