package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Outcome classifies a closed trade.
type Outcome string

const (
	OutcomeWin  Outcome = "Win"
	OutcomeLoss Outcome = "Loss"
)

// TradeRecord is one simulated round trip: buy at the entry bar's open, sell
// at the exit bar's open. Records are immutable once created.
type TradeRecord struct {
	Symbol     string    `csv:"symbol" yaml:"symbol"`
	EntryTime  time.Time `csv:"entry_time" yaml:"entry_time"`
	EntryPrice float64   `csv:"entry_price" yaml:"entry_price"`
	ExitTime   time.Time `csv:"exit_time" yaml:"exit_time"`
	ExitPrice  float64   `csv:"exit_price" yaml:"exit_price"`
	ReturnPct  float64   `csv:"return_pct" yaml:"return_pct"`
	Outcome    Outcome   `csv:"outcome" yaml:"outcome"`
}

// NewTradeRecord prices a round trip and classifies its outcome. A flat exit
// (zero return) counts as a loss, not a draw.
func NewTradeRecord(symbol string, entryTime time.Time, entryPrice float64, exitTime time.Time, exitPrice float64) TradeRecord {
	entry := decimal.NewFromFloat(entryPrice)
	exit := decimal.NewFromFloat(exitPrice)
	returnPct := exit.Sub(entry).Div(entry).Mul(decimal.NewFromInt(100)).InexactFloat64()

	outcome := OutcomeLoss
	if returnPct > 0 {
		outcome = OutcomeWin
	}

	return TradeRecord{
		Symbol:     symbol,
		EntryTime:  entryTime,
		EntryPrice: entryPrice,
		ExitTime:   exitTime,
		ExitPrice:  exitPrice,
		ReturnPct:  returnPct,
		Outcome:    outcome,
	}
}
