package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/rxtech-lab/argo-screener/internal/types"
	"github.com/rxtech-lab/argo-screener/pkg/errors"
	"github.com/rxtech-lab/argo-screener/pkg/marketdata/writer"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderAlpaca  ProviderType = "alpaca"
	ProviderPolygon ProviderType = "polygon"
)

type OnDownloadProgress = func(current float64, total float64, message string)

type Provider interface {
	// ConfigWriter configures the writer the provider persists bars through.
	// It could be a file, a database, etc.
	ConfigWriter(writer writer.BarWriter)
	// FetchDaily returns daily bars for the symbol over the date range,
	// oldest first. The context can be used to cancel the request.
	FetchDaily(ctx context.Context, symbol string, startDate time.Time, endDate time.Time) ([]types.PriceBar, error)
	// Download fetches daily bars for the symbol and persists them through
	// the configured writer. Returns the output file path.
	Download(ctx context.Context, symbol string, startDate time.Time, endDate time.Time, onProgress OnDownloadProgress) (path string, err error)
}

// AlpacaCredentials holds the API key pair for the Alpaca market data API.
type AlpacaCredentials struct {
	APIKey    string
	APISecret string
}

// NewProvider creates a market data provider of the given type. The config
// argument is provider specific: AlpacaCredentials for alpaca, an API key
// string for polygon.
func NewProvider(providerType ProviderType, config any) (Provider, error) {
	switch providerType {
	case ProviderAlpaca:
		creds, ok := config.(AlpacaCredentials)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidProvider, "alpaca provider requires AlpacaCredentials config")
		}

		return NewAlpacaClient(creds)
	case ProviderPolygon:
		apiKey, ok := config.(string)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidProvider, "polygon provider requires API key string config")
		}

		return NewPolygonClient(apiKey)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported market data provider: %s", providerType)
	}
}

// writeBars persists fetched bars through the writer with progress reporting.
// The writer lifecycle (Initialize/Finalize/Close) belongs to the caller.
func writeBars(w writer.BarWriter, bars []types.PriceBar, symbol string, onProgress OnDownloadProgress) error {
	total := len(bars)
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription(fmt.Sprintf("Writing %s", symbol)),
		progressbar.OptionShowCount())

	for i, b := range bars {
		if err := w.Write(b); err != nil {
			return errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err, "failed to write bar for %s", symbol)
		}

		if onProgress != nil {
			onProgress(float64(i+1), float64(total), fmt.Sprintf("Writing %s", symbol))
		}

		if (i+1)%100 == 0 {
			bar.Set(i + 1)
		}
	}

	bar.Finish()

	return nil
}
