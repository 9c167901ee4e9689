package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/rxtech-lab/argo-screener/internal/logger"
	"github.com/rxtech-lab/argo-screener/pkg/marketdata"
	"github.com/rxtech-lab/argo-screener/pkg/marketdata/provider"
)

// downloadAction sets up the market data client and downloads daily bars for
// one symbol into a local Parquet file.
func downloadAction(ctx context.Context, cmd *cli.Command) error {
	appLogger, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer appLogger.Sync()

	symbol := cmd.String("symbol")
	startDate := cmd.Timestamp("start")
	endDate := cmd.Timestamp("end")

	clientConfig := marketdata.ClientConfig{
		ProviderType:    provider.ProviderType(cmd.String("provider")),
		WriterType:      marketdata.WriterType(cmd.String("writer")),
		DataPath:        cmd.String("data"),
		PolygonAPIKey:   os.Getenv("POLYGON_API_KEY"),
		AlpacaAPIKey:    os.Getenv("ALPACA_API_KEY"),
		AlpacaAPISecret: os.Getenv("ALPACA_API_SECRET"),
	}

	client, err := marketdata.NewClient(clientConfig, nil)
	if err != nil {
		return fmt.Errorf("failed to create market data client: %w", err)
	}

	downloadParams := marketdata.DownloadParams{
		Symbol:    symbol,
		StartDate: startDate,
		EndDate:   endDate,
	}

	appLogger.Info("Starting download",
		zap.String("symbol", symbol),
		zap.String("start", startDate.Format("2006-01-02")),
		zap.String("end", endDate.Format("2006-01-02")),
		zap.String("provider", cmd.String("provider")))

	if err := client.Download(ctx, downloadParams); err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	appLogger.Info("Download completed successfully")

	return nil
}

func downloadCommand() *cli.Command {
	return &cli.Command{
		Name:  "download",
		Usage: "Download historical daily bars",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "symbol",
				Aliases:  []string{"s"},
				Usage:    "Stock ticker symbol",
				Required: true,
			},
			&cli.TimestampFlag{
				Name:    "start",
				Usage:   "Start date in `YYYY-MM-DD` format (or other RFC3339 compatible)",
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02"},
				},
				Required: true,
			},
			&cli.TimestampFlag{
				Name:     "end",
				Usage:    "End date in `YYYY-MM-DD` format (or other RFC3339 compatible). Defaults to today.",
				Value:    time.Now(),
				Required: false,
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02"},
				},
			},
			&cli.StringFlag{
				Name:     "provider",
				Aliases:  []string{"p"},
				Usage:    fmt.Sprintf("Data provider to use (e.g., %s, %s)", provider.ProviderAlpaca, provider.ProviderPolygon),
				Value:    string(provider.ProviderAlpaca),
				Required: false,
			},
			&cli.StringFlag{
				Name:     "writer",
				Aliases:  []string{"w"},
				Usage:    fmt.Sprintf("Data writer format (e.g., %s)", marketdata.WriterDuckDB),
				Value:    string(marketdata.WriterDuckDB),
				Required: false,
			},
			&cli.StringFlag{
				Name:     "data",
				Aliases:  []string{"d"},
				Usage:    "Path to the data output directory",
				Value:    "data",
				Required: false,
			},
		},
		Action: downloadAction,
	}
}
