package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"

	"github.com/rxtech-lab/argo-screener/internal/logger"
	"github.com/rxtech-lab/argo-screener/internal/types"
)

type ReportTestSuite struct {
	suite.Suite
	dir    string
	writer *Writer
}

func TestReportSuite(t *testing.T) {
	suite.Run(t, new(ReportTestSuite))
}

func (suite *ReportTestSuite) SetupTest() {
	suite.dir = filepath.Join(suite.T().TempDir(), "results")
	suite.writer = NewWriter(suite.dir, logger.NewNopLogger())
}

func (suite *ReportTestSuite) sampleSummaries() ([]types.BacktestSummary, types.BacktestSummary) {
	entry := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	winner := types.NewTradeRecord("AAPL", entry, 100, entry.AddDate(0, 0, 7), 110)
	loser := types.NewTradeRecord("MSFT", entry, 400, entry.AddDate(0, 0, 7), 390)

	summaries := []types.BacktestSummary{
		{Symbol: "AAPL", TotalTrades: 1, WinRatioPct: 100, AvgReturnPct: 10, Trades: []types.TradeRecord{winner}},
		{Symbol: "MSFT", TotalTrades: 1, WinRatioPct: 0, AvgReturnPct: -2.5, Trades: []types.TradeRecord{loser}},
	}
	combined := types.BacktestSummary{
		Symbol:       types.CombinedSymbol,
		TotalTrades:  2,
		WinRatioPct:  50,
		AvgReturnPct: 3.75,
		Trades:       []types.TradeRecord{winner, loser},
	}

	return summaries, combined
}

func (suite *ReportTestSuite) TestWriteRoundTrip() {
	summaries, combined := suite.sampleSummaries()

	suite.Require().NoError(suite.writer.Write("run-1", summaries, combined))

	// Trade log: one row per per-symbol trade, combined not duplicated.
	rows, err := parquet.ReadFile[TradeRow](filepath.Join(suite.dir, "trades.parquet"))
	suite.Require().NoError(err)
	suite.Require().Len(rows, 2)

	suite.Equal("run-1", rows[0].RunID)
	suite.Equal("AAPL", rows[0].Symbol)
	suite.InDelta(10.0, rows[0].ReturnPct, 1e-9)
	suite.Equal(string(types.OutcomeWin), rows[0].Outcome)
	suite.True(summaries[0].Trades[0].EntryTime.Equal(rows[0].EntryTime))
	suite.True(summaries[0].Trades[0].ExitTime.Equal(rows[0].ExitTime))

	suite.Equal("MSFT", rows[1].Symbol)
	suite.Equal(string(types.OutcomeLoss), rows[1].Outcome)

	// Summary file: per-symbol entries plus the combined one.
	data, err := os.ReadFile(filepath.Join(suite.dir, "summary.yaml"))
	suite.Require().NoError(err)

	var decoded []types.BacktestSummary

	suite.Require().NoError(yaml.Unmarshal(data, &decoded))
	suite.Require().Len(decoded, 3)
	suite.Equal("AAPL", decoded[0].Symbol)
	suite.Equal(types.CombinedSymbol, decoded[2].Symbol)
	suite.InDelta(50.0, decoded[2].WinRatioPct, 1e-9)
}

func (suite *ReportTestSuite) TestWriteEmptyRun() {
	combined := types.BacktestSummary{Symbol: types.CombinedSymbol}

	suite.Require().NoError(suite.writer.Write("run-2", nil, combined))

	rows, err := parquet.ReadFile[TradeRow](filepath.Join(suite.dir, "trades.parquet"))
	suite.Require().NoError(err)
	suite.Empty(rows)
}
