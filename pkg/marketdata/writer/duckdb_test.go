package writer

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/argo-screener/internal/types"
)

type DuckDBWriterTestSuite struct {
	suite.Suite
	outputPath string
	writer     BarWriter
}

func TestDuckDBWriterSuite(t *testing.T) {
	suite.Run(t, new(DuckDBWriterTestSuite))
}

func (suite *DuckDBWriterTestSuite) SetupTest() {
	suite.outputPath = filepath.Join(suite.T().TempDir(), "bars.parquet")
	suite.writer = NewDuckDBWriter(suite.outputPath)
}

func (suite *DuckDBWriterTestSuite) TearDownTest() {
	suite.writer.Close()
}

func sampleBar(day int, close float64) types.PriceBar {
	return types.PriceBar{
		Symbol: "AAPL",
		Time:   time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
		Open:   close - 1,
		High:   close + 1,
		Low:    close - 2,
		Close:  close,
		Volume: 1000,
	}
}

func (suite *DuckDBWriterTestSuite) TestWriteAndFinalize() {
	suite.Require().NoError(suite.writer.Initialize())

	suite.Require().NoError(suite.writer.Write(sampleBar(2, 186.5)))
	suite.Require().NoError(suite.writer.Write(sampleBar(3, 187.25)))

	path, err := suite.writer.Finalize()
	suite.Require().NoError(err)
	suite.Equal(suite.outputPath, path)

	_, err = os.Stat(path)
	suite.Require().NoError(err)

	// Read the exported file back through DuckDB.
	db, err := sql.Open("duckdb", ":memory:")
	suite.Require().NoError(err)

	defer db.Close()

	var count int

	err = db.QueryRow("SELECT COUNT(*) FROM read_parquet(?)", path).Scan(&count)
	suite.Require().NoError(err)
	suite.Equal(2, count)

	var close float64

	err = db.QueryRow("SELECT close FROM read_parquet(?) ORDER BY time LIMIT 1", path).Scan(&close)
	suite.Require().NoError(err)
	suite.InDelta(186.5, close, 1e-9)
}

func (suite *DuckDBWriterTestSuite) TestWriteBeforeInitializeFails() {
	err := suite.writer.Write(sampleBar(2, 186.5))
	suite.Error(err)
}

func (suite *DuckDBWriterTestSuite) TestFinalizeBeforeInitializeFails() {
	_, err := suite.writer.Finalize()
	suite.Error(err)
}

func (suite *DuckDBWriterTestSuite) TestGetOutputPath() {
	suite.Equal(suite.outputPath, suite.writer.GetOutputPath())
}
