package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/rxtech-lab/argo-screener/internal/version"
)

func main() {
	cmd := &cli.Command{
		Name:    "screener",
		Usage:   "Backtest and live-check an oversold RSI + moving-average crossover strategy on daily bars",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			backtestCommand(),
			liveCommand(),
			downloadCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
