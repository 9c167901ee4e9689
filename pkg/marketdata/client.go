package marketdata

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rxtech-lab/argo-screener/internal/types"
	"github.com/rxtech-lab/argo-screener/pkg/errors"
	"github.com/rxtech-lab/argo-screener/pkg/marketdata/provider"
	"github.com/rxtech-lab/argo-screener/pkg/marketdata/writer"
)

// WriterType defines the type of market data writer.
type WriterType string

const (
	WriterDuckDB WriterType = "duckdb"
)

// ClientConfig holds the configuration for the market data client.
type ClientConfig struct {
	ProviderType    provider.ProviderType `validate:"required,oneof=alpaca polygon"`
	WriterType      WriterType            `validate:"required,oneof=duckdb"`
	DataPath        string                `validate:"required"`
	PolygonAPIKey   string                `validate:"required_if=ProviderType polygon"`
	AlpacaAPIKey    string                `validate:"required_if=ProviderType alpaca"`
	AlpacaAPISecret string                `validate:"required_if=ProviderType alpaca"`
}

// DownloadParams holds the parameters for a daily bar download request.
type DownloadParams struct {
	Symbol    string    `validate:"required"`
	StartDate time.Time `validate:"required"`
	EndDate   time.Time `validate:"required,gtfield=StartDate"`
}

// Client downloads daily bars from a provider and stores them using writers.
type Client struct {
	provider   provider.Provider
	config     ClientConfig
	validate   *validator.Validate
	onProgress provider.OnDownloadProgress
}

// NewClient creates a new market data client with the given configuration.
func NewClient(config ClientConfig, onProgress provider.OnDownloadProgress) (*Client, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid client configuration", err)
	}

	var marketProvider provider.Provider

	var err error

	switch config.ProviderType {
	case provider.ProviderAlpaca:
		marketProvider, err = provider.NewAlpacaClient(provider.AlpacaCredentials{
			APIKey:    config.AlpacaAPIKey,
			APISecret: config.AlpacaAPISecret,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidProvider, "failed to create Alpaca client", err)
		}
	case provider.ProviderPolygon:
		marketProvider, err = provider.NewPolygonClient(config.PolygonAPIKey)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidProvider, "failed to create Polygon client", err)
		}
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported provider type: %s", config.ProviderType)
	}

	return &Client{
		provider:   marketProvider,
		config:     config,
		validate:   validate,
		onProgress: onProgress,
	}, nil
}

// FetchDaily returns daily bars for the symbol straight from the provider
// without persisting them. Used by the live signal check.
func (c *Client) FetchDaily(ctx context.Context, symbol string, startDate time.Time, endDate time.Time) ([]types.PriceBar, error) {
	if !endDate.After(startDate) {
		return nil, errors.Newf(errors.ErrCodeInvalidDateRange, "end date %s is not after start date %s",
			endDate.Format("2006-01-02"), startDate.Format("2006-01-02"))
	}

	return c.provider.FetchDaily(ctx, symbol, startDate, endDate)
}

// Download initiates a daily bar download with the given parameters.
// The context can be used to cancel the download operation.
func (c *Client) Download(ctx context.Context, params DownloadParams) error {
	if err := c.validate.Struct(params); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDateRange, "invalid download parameters", err)
	}

	marketWriter, err := c.setupWriter(params)
	if err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to setup writer", err)
	}

	defer func() {
		if cerr := marketWriter.Close(); cerr != nil {
			// Log only; the download itself already succeeded or failed.
			fmt.Printf("Warning: failed to close writer: %v\n", cerr)
		}
	}()

	c.provider.ConfigWriter(marketWriter)

	_, err = c.provider.Download(
		ctx,
		params.Symbol,
		params.StartDate,
		params.EndDate,
		c.onProgress,
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "download failed", err)
	}

	return nil
}

// setupWriter initializes the appropriate market data writer based on configuration.
func (c *Client) setupWriter(params DownloadParams) (writer.BarWriter, error) {
	switch c.config.WriterType {
	case WriterDuckDB:
		// Filename: SYMBOL_START_END_daily.parquet
		outputFileName := fmt.Sprintf("%s_%s_%s_daily.parquet",
			params.Symbol,
			params.StartDate.Format("2006-01-02"),
			params.EndDate.Format("2006-01-02"))
		outputPath := filepath.Join(c.config.DataPath, outputFileName)

		if _, err := os.Stat(c.config.DataPath); os.IsNotExist(err) {
			os.MkdirAll(c.config.DataPath, 0755)
		}

		duckdbWriter := writer.NewDuckDBWriter(outputPath)

		err := duckdbWriter.Initialize()
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err, "failed to initialize DuckDB writer at %s", outputPath)
		}

		return duckdbWriter, nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "unsupported writer type: %s", c.config.WriterType)
	}
}
