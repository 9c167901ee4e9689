package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/argo-screener/internal/types"
)

type AggregateTestSuite struct {
	suite.Suite
}

func TestAggregateSuite(t *testing.T) {
	suite.Run(t, new(AggregateTestSuite))
}

func tradeWithReturn(returnPct float64) types.TradeRecord {
	entryTime := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)
	entryPrice := 100.0
	exitPrice := entryPrice * (1 + returnPct/100)

	return types.NewTradeRecord("TEST", entryTime, entryPrice, entryTime.AddDate(0, 0, 7), exitPrice)
}

func (suite *AggregateTestSuite) TestEmptyTradeLog() {
	summary := Aggregate("TEST", nil)
	suite.Equal("TEST", summary.Symbol)
	suite.Zero(summary.TotalTrades)
	suite.Zero(summary.WinRatioPct)
	suite.Zero(summary.AvgReturnPct)
	suite.Empty(summary.Trades)
}

func (suite *AggregateTestSuite) TestWinRatioAndMeanReturn() {
	trades := []types.TradeRecord{
		tradeWithReturn(10),
		tradeWithReturn(-5),
		tradeWithReturn(4),
		tradeWithReturn(-1),
	}

	summary := Aggregate("TEST", trades)
	suite.Equal(4, summary.TotalTrades)
	suite.InDelta(50.0, summary.WinRatioPct, 1e-9)
	suite.InDelta(2.0, summary.AvgReturnPct, 1e-9)
	suite.Equal(trades, summary.Trades)
}

func (suite *AggregateTestSuite) TestAllWins() {
	trades := []types.TradeRecord{
		tradeWithReturn(1),
		tradeWithReturn(2),
		tradeWithReturn(3),
	}

	summary := Aggregate("TEST", trades)
	suite.InDelta(100.0, summary.WinRatioPct, 1e-9)
	suite.InDelta(2.0, summary.AvgReturnPct, 1e-9)
}

func (suite *AggregateTestSuite) TestFlatTradesCountAsLosses() {
	trades := []types.TradeRecord{
		tradeWithReturn(0),
		tradeWithReturn(8),
	}

	summary := Aggregate("TEST", trades)
	suite.Equal(2, summary.TotalTrades)
	suite.InDelta(50.0, summary.WinRatioPct, 1e-9)
	suite.InDelta(4.0, summary.AvgReturnPct, 1e-9)
}
