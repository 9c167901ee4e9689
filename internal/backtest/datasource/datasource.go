package datasource

import (
	"time"

	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-screener/internal/types"
)

// DataSource provides daily bars for the backtest engine. Initialize points
// the source at a bar file; Read returns one symbol's history in
// chronological order with null closes already dropped.
type DataSource interface {
	// Initialize loads market data from the given parquet or CSV file path.
	Initialize(path string) error
	// Symbols returns all distinct symbols present in the data.
	Symbols() ([]string, error)
	// Read returns the full daily history for a symbol, oldest first.
	Read(symbol string) ([]types.PriceBar, error)
	// Count returns the number of bars within the optional time range.
	Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error)
	// Close releases the underlying database handle.
	Close() error
}
