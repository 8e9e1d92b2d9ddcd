package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version   kong.VersionFlag `short:"v" help:"Show version"`
	Frequency FrequencyCmd     `cmd:"" help:"Show number frequencies and hot/cold classes"`
	Generate  GenerateCmd      `cmd:"" help:"Generate games under sum and even-count constraints"`
	Backtest  BacktestCmd      `cmd:"" help:"Score a game or pool against past draws"`
	Compare   CompareCmd       `cmd:"" help:"Rank hot-heavy, balanced and cold-heavy strategies"`
	Pool      PoolCmd          `cmd:"" help:"Pick games that best cover a pool of numbers"`
	Analyze   AnalyzeCmd       `cmd:"" help:"Run every step and export the results"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("lotofacil"),
		kong.Description("Historical statistics and game generation for Lotofácil draws"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
