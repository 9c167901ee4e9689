package datasource

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/rxtech-lab/argo-screener/internal/logger"
	"github.com/rxtech-lab/argo-screener/internal/types"
	"github.com/rxtech-lab/argo-screener/pkg/errors"
)

// requiredColumns are the bar columns every data file must carry.
var requiredColumns = []string{"time", "symbol", "open", "high", "low", "close", "volume"}

type DuckDBDataSource struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDataSource creates a DuckDB-backed data source. The path parameter is
// the DuckDB database file location; use ":memory:" for an ephemeral store.
// This is distinct from Initialize() which loads bar data into the database.
func NewDataSource(path string, logger *logger.Logger) (DataSource, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open duckdb", err)
	}

	_, err = db.Exec(`
		SET memory_limit='4GB';
		SET threads=4;
	`)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to configure duckdb", err)
	}

	return &DuckDBDataSource{
		db:     db,
		logger: logger,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Initialize implements DataSource. The file format is inferred from the
// extension: .parquet uses read_parquet, everything else read_csv_auto.
// Glob patterns pass straight through to DuckDB, so one view can span many
// downloaded files.
func (d *DuckDBDataSource) Initialize(path string) error {
	d.logger.Debug("Initializing DuckDB data source", zap.String("path", path))

	_, err := d.db.Exec(`DROP VIEW IF EXISTS bars;`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to drop existing view", err)
	}

	reader := "read_csv_auto"
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		reader = "read_parquet"
	}

	// Raw SQL: squirrel does not support CREATE VIEW.
	query := fmt.Sprintf(`CREATE VIEW bars AS SELECT * FROM %s('%s');`, reader, path)

	_, err = d.db.Exec(query)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to load bar data from %s", path)
	}

	return d.checkColumns()
}

// checkColumns verifies the view carries the full bar schema.
func (d *DuckDBDataSource) checkColumns() error {
	rows, err := d.db.Query("SELECT * FROM bars LIMIT 0")
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to inspect bar columns", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to read bar columns", err)
	}

	present := make(map[string]bool, len(columns))
	for _, col := range columns {
		present[strings.ToLower(col)] = true
	}

	for _, col := range requiredColumns {
		if !present[col] {
			return errors.Newf(errors.ErrCodeMissingColumn, "bar data is missing required column %q", col)
		}
	}

	return nil
}

// Symbols implements DataSource.
func (d *DuckDBDataSource) Symbols() ([]string, error) {
	rows, err := d.db.Query("SELECT DISTINCT symbol FROM bars ORDER BY symbol")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to list symbols", err)
	}
	defer rows.Close()

	var symbols []string

	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan symbol", err)
		}

		symbols = append(symbols, symbol)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating symbols", err)
	}

	return symbols, nil
}

// Read implements DataSource. Bars with a null close are dropped here so the
// engine only ever sees usable rows.
func (d *DuckDBDataSource) Read(symbol string) ([]types.PriceBar, error) {
	d.logger.Debug("Reading bars for symbol", zap.String("symbol", symbol))

	query, args, err := d.sq.
		Select("time", "symbol", "open", "high", "low", "close", "volume").
		From("bars").
		Where(squirrel.And{
			squirrel.Eq{"symbol": symbol},
			squirrel.NotEq{"close": nil},
		}).
		OrderBy("time ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	stmt, err := d.db.Prepare(query)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to prepare query", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query(args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query bars", err)
	}
	defer rows.Close()

	result := make([]types.PriceBar, 0, 1000)

	for rows.Next() {
		var (
			timestamp                      time.Time
			symbolResult                   string
			open, high, low, close, volume float64
		)

		err := rows.Scan(&timestamp, &symbolResult, &open, &high, &low, &close, &volume)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan row", err)
		}

		result = append(result, types.PriceBar{
			Symbol: symbolResult,
			Time:   timestamp,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  close,
			Volume: volume,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating rows", err)
	}

	if len(result) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "no bars found for symbol %s", symbol)
	}

	return result, nil
}

// Count implements DataSource.
func (d *DuckDBDataSource) Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error) {
	query := "SELECT COUNT(*) FROM bars"

	var params []interface{}

	paramCount := 0

	if start.IsSome() {
		paramCount++
		query += fmt.Sprintf(" WHERE time >= $%d", paramCount)
		params = append(params, start.Unwrap())
	}

	if end.IsSome() {
		paramCount++
		if paramCount == 1 {
			query += " WHERE"
		} else {
			query += " AND"
		}

		query += fmt.Sprintf(" time <= $%d", paramCount)
		params = append(params, end.Unwrap())
	}

	var count int

	err := d.db.QueryRow(query, params...).Scan(&count)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count bars", err)
	}

	return count, nil
}

// Close implements DataSource.
func (d *DuckDBDataSource) Close() error {
	if d.db != nil {
		return d.db.Close()
	}

	return nil
}
