package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/rxtech-lab/argo-screener/internal/backtest"
	"github.com/rxtech-lab/argo-screener/internal/backtest/datasource"
	"github.com/rxtech-lab/argo-screener/internal/logger"
	"github.com/rxtech-lab/argo-screener/internal/report"
	"github.com/rxtech-lab/argo-screener/internal/types"
)

// sourceFromDataSource adapts a local bar store to the engine's Source.
type sourceFromDataSource struct {
	ds datasource.DataSource
}

func (s *sourceFromDataSource) Fetch(ctx context.Context, symbol string) ([]types.PriceBar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return s.ds.Read(symbol)
}

// backtestAction loads bars from a local file, runs the strategy over every
// requested symbol, and writes the trade log and summaries to the results
// directory.
func backtestAction(ctx context.Context, cmd *cli.Command) error {
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

	source, err := datasource.NewDataSource(":memory:", appLogger)
	if err != nil {
		return err
	}
	defer source.Close()

	if err := source.Initialize(cmd.String("data")); err != nil {
		return err
	}

	symbols := cmd.StringSlice("symbol")
	if len(symbols) == 0 {
		symbols, err = source.Symbols()
		if err != nil {
			return err
		}
	}

	appLogger.Info("Starting backtest",
		zap.Int("symbols", len(symbols)),
		zap.String("data", cmd.String("data")))

	result, err := engine.RunUniverse(ctx, symbols, &sourceFromDataSource{ds: source})
	if err != nil {
		return err
	}

	writer := report.NewWriter(cmd.String("results"), appLogger)
	if err := writer.Write(result.RunID, result.Summaries, result.Combined); err != nil {
		return err
	}

	appLogger.Info("Backtest complete",
		zap.String("run_id", result.RunID),
		zap.Int("symbols_with_results", len(result.Summaries)),
		zap.Int("total_trades", result.Combined.TotalTrades),
		zap.Float64("win_ratio_pct", result.Combined.WinRatioPct),
		zap.Float64("avg_return_pct", result.Combined.AvgReturnPct))

	return nil
}

func backtestCommand() *cli.Command {
	return &cli.Command{
		Name:  "backtest",
		Usage: "Backtest the strategy over historical daily bars",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "data",
				Aliases:  []string{"d"},
				Usage:    "Path or glob of bar files (parquet or CSV), e.g. data/*.parquet",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "Path to the strategy YAML config. Defaults apply when omitted.",
				Required: false,
			},
			&cli.StringSliceFlag{
				Name:     "symbol",
				Aliases:  []string{"s"},
				Usage:    "Symbol to backtest (repeatable). Defaults to every symbol in the data file.",
				Required: false,
			},
			&cli.StringFlag{
				Name:     "results",
				Aliases:  []string{"r"},
				Usage:    "Directory for the trade log and summary output",
				Value:    "results",
				Required: false,
			},
		},
		Action: backtestAction,
	}
}
