package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/rxtech-lab/argo-screener/internal/backtest"
	"github.com/rxtech-lab/argo-screener/internal/logger"
	"github.com/rxtech-lab/argo-screener/pkg/marketdata"
	"github.com/rxtech-lab/argo-screener/pkg/marketdata/provider"
)

// liveAction fetches recent daily bars for each symbol and reports whether
// the entry condition fired on the latest bar.
func liveAction(ctx context.Context, cmd *cli.Command) error {
	appLogger, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer appLogger.Sync()

	config := backtest.DefaultConfig()

	if path := cmd.String("config"); path != "" {
		config, err = backtest.LoadConfig(path)
		if err != nil {
			return fmt.Errorf("failed to load strategy config: %w", err)
		}
	}

	engine, err := backtest.NewEngine(config, appLogger)
	if err != nil {
		return err
	}

	clientConfig := marketdata.ClientConfig{
		ProviderType:    provider.ProviderType(cmd.String("provider")),
		WriterType:      marketdata.WriterDuckDB,
		DataPath:        cmd.String("data"),
		PolygonAPIKey:   os.Getenv("POLYGON_API_KEY"),
		AlpacaAPIKey:    os.Getenv("ALPACA_API_KEY"),
		AlpacaAPISecret: os.Getenv("ALPACA_API_SECRET"),
	}

	client, err := marketdata.NewClient(clientConfig, nil)
	if err != nil {
		return fmt.Errorf("failed to create market data client: %w", err)
	}

	end := time.Now()
	start := end.AddDate(0, 0, -int(cmd.Int("lookback")))

	for _, symbol := range cmd.StringSlice("symbol") {
		bars, err := client.FetchDaily(ctx, symbol, start, end)
		if err != nil {
			appLogger.Warn("skipping symbol, fetch failed",
				zap.String("symbol", symbol),
				zap.Error(err))

			continue
		}

		features, err := engine.Features(bars)
		if err != nil {
			appLogger.Warn("skipping symbol, indicator computation failed",
				zap.String("symbol", symbol),
				zap.Error(err))

			continue
		}

		snapshot := engine.CheckLatestSignal(features)
		if snapshot.IsNone() {
			appLogger.Warn("not enough history to evaluate the signal",
				zap.String("symbol", symbol),
				zap.Int("bars", len(bars)))

			continue
		}

		snap := snapshot.Unwrap()
		appLogger.Info("signal check",
			zap.String("symbol", symbol),
			zap.Time("bar_time", snap.Time),
			zap.Bool("triggered", snap.Triggered),
			zap.Float64("rsi", snap.RSI),
			zap.Float64("fast_ma", snap.FastMA),
			zap.Float64("slow_ma", snap.SlowMA))
	}

	return nil
}

func liveCommand() *cli.Command {
	return &cli.Command{
		Name:  "live",
		Usage: "Check whether the entry condition fired on the latest daily bar",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     "symbol",
				Aliases:  []string{"s"},
				Usage:    "Symbol to check (repeatable)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "provider",
				Aliases:  []string{"p"},
				Usage:    fmt.Sprintf("Data provider to use (e.g., %s, %s)", provider.ProviderAlpaca, provider.ProviderPolygon),
				Value:    string(provider.ProviderAlpaca),
				Required: false,
			},
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "Path to the strategy YAML config. Defaults apply when omitted.",
				Required: false,
			},
			&cli.StringFlag{
				Name:     "data",
				Aliases:  []string{"d"},
				Usage:    "Path to the data directory",
				Value:    "data",
				Required: false,
			},
			&cli.IntFlag{
				Name:     "lookback",
				Aliases:  []string{"l"},
				Usage:    "Calendar days of history to fetch for indicator warm-up",
				Value:    400,
				Required: false,
			},
		},
		Action: liveAction,
	}
}
