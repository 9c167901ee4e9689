package provider

import (
	"context"
	"strings"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"github.com/rxtech-lab/argo-screener/internal/types"
	"github.com/rxtech-lab/argo-screener/pkg/errors"
	"github.com/rxtech-lab/argo-screener/pkg/marketdata/writer"
)

type AlpacaClient struct {
	client *marketdata.Client
	writer writer.BarWriter
}

func NewAlpacaClient(creds AlpacaCredentials) (Provider, error) {
	if creds.APIKey == "" || creds.APISecret == "" {
		return nil, errors.New(errors.ErrCodeInvalidProvider, "alpaca API key and secret are required")
	}

	client := marketdata.NewClient(marketdata.ClientOpts{
		APIKey:    creds.APIKey,
		APISecret: creds.APISecret,
	})

	return &AlpacaClient{
		client: client,
		writer: nil,
	}, nil
}

func (c *AlpacaClient) ConfigWriter(w writer.BarWriter) {
	c.writer = w
}

// FetchDaily implements Provider.
func (c *AlpacaClient) FetchDaily(ctx context.Context, symbol string, startDate time.Time, endDate time.Time) ([]types.PriceBar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	alpacaBars, err := c.client.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame: marketdata.OneDay,
		Start:     startDate,
		End:       endDate,
	})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "alpaca GetBars failed for %s", symbol)
	}

	bars := make([]types.PriceBar, 0, len(alpacaBars))
	for _, ab := range alpacaBars {
		bars = append(bars, types.PriceBar{
			Symbol: strings.ToUpper(symbol),
			Time:   ab.Timestamp,
			Open:   ab.Open,
			High:   ab.High,
			Low:    ab.Low,
			Close:  ab.Close,
			Volume: float64(ab.Volume),
		})
	}

	return bars, nil
}

// Download implements Provider.
func (c *AlpacaClient) Download(ctx context.Context, symbol string, startDate time.Time, endDate time.Time, onProgress OnDownloadProgress) (path string, err error) {
	if c.writer == nil {
		return "", errors.New(errors.ErrCodeMarketDataWriteFailed, "no writer configured for AlpacaClient. Call ConfigWriter first")
	}

	bars, err := c.FetchDaily(ctx, symbol, startDate, endDate)
	if err != nil {
		return "", err
	}

	if err := writeBars(c.writer, bars, symbol, onProgress); err != nil {
		return "", err
	}

	outputPath, err := c.writer.Finalize()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to finalize writer", err)
	}

	return outputPath, nil
}
