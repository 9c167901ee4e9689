package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type TradeTestSuite struct {
	suite.Suite
}

func TestTradeSuite(t *testing.T) {
	suite.Run(t, new(TradeTestSuite))
}

func (suite *TradeTestSuite) entryExit() (time.Time, time.Time) {
	entry := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	return entry, entry.AddDate(0, 0, 7)
}

func (suite *TradeTestSuite) TestWinningTrade() {
	entryTime, exitTime := suite.entryExit()

	trade := NewTradeRecord("RELIANCE", entryTime, 100.0, exitTime, 110.0)
	suite.InDelta(10.0, trade.ReturnPct, 1e-9)
	suite.Equal(OutcomeWin, trade.Outcome)
	suite.Equal("RELIANCE", trade.Symbol)
	suite.Equal(entryTime, trade.EntryTime)
	suite.Equal(exitTime, trade.ExitTime)
}

func (suite *TradeTestSuite) TestLosingTrade() {
	entryTime, exitTime := suite.entryExit()

	trade := NewTradeRecord("INFY", entryTime, 100.0, exitTime, 95.0)
	suite.InDelta(-5.0, trade.ReturnPct, 1e-9)
	suite.Equal(OutcomeLoss, trade.Outcome)
}

func (suite *TradeTestSuite) TestFlatTradeIsLoss() {
	entryTime, exitTime := suite.entryExit()

	// Zero return is classified as a loss, not a draw.
	trade := NewTradeRecord("TCS", entryTime, 250.0, exitTime, 250.0)
	suite.Zero(trade.ReturnPct)
	suite.Equal(OutcomeLoss, trade.Outcome)
}

func (suite *TradeTestSuite) TestReturnIsExact() {
	entryTime, exitTime := suite.entryExit()

	// 80 -> 82.4 should come out as exactly 3%, even though 82.4 is not
	// exactly representable as a float.
	trade := NewTradeRecord("TCS", entryTime, 80.0, exitTime, 82.4)
	suite.InDelta(3.0, trade.ReturnPct, 1e-9)
	suite.Equal(OutcomeWin, trade.Outcome)
}
