package main

import (
	"fmt"
	"os"

	"github.com/lox/lotofacil/cmd/lotofacil/shared"
	"github.com/lox/lotofacil/internal/analysis"
	"github.com/lox/lotofacil/internal/backtest"
	"github.com/lox/lotofacil/internal/classify"
	"github.com/lox/lotofacil/internal/coverage"
	"github.com/lox/lotofacil/internal/export"
	"github.com/lox/lotofacil/internal/frequency"
	"github.com/lox/lotofacil/internal/generator"
	"github.com/lox/lotofacil/internal/randutil"
	"github.com/lox/lotofacil/internal/strategy"
	"github.com/lox/lotofacil/lotto"
)

func (s *session) classify() (*frequency.Analysis, classify.Classification, error) {
	a, err := frequency.Compute(s.window())
	if err != nil {
		return nil, classify.Classification{}, err
	}
	cls, err := classify.Classify(a, s.cfg.Analysis.Hot, s.cfg.Analysis.Cold)
	return a, cls, err
}

func (s *session) export(path string, table export.Table) error {
	if path == "" {
		return nil
	}
	if err := export.WriteFile(path, table); err != nil {
		return err
	}
	s.logger.Info().Str("path", path).Msg("Wrote CSV")
	return nil
}

// FrequencyCmd prints the frequency table
type FrequencyCmd struct {
	Out string `short:"o" help:"Also write the table to this CSV file" type:"path"`
}

func (c *FrequencyCmd) Run(g *Globals) error {
	logger := g.logger()
	ctx, cancel := shared.SignalContext(logger)
	defer cancel()

	s, err := g.open(ctx, logger)
	if err != nil {
		return err
	}
	a, cls, err := s.classify()
	if err != nil {
		return err
	}
	s.printer.Frequency(a, cls)
	return s.export(c.Out, export.Frequency(a, cls))
}

// GenerateCmd draws games from a strategy base
type GenerateCmd struct {
	Strategy string `short:"s" enum:"all,hot-heavy,balanced,cold-heavy" default:"all" help:"Base to draw numbers from (${enum})"`
	Out      string `short:"o" help:"Also write the games to this CSV file" type:"path"`
}

func (c *GenerateCmd) Run(g *Globals) error {
	logger := g.logger()
	ctx, cancel := shared.SignalContext(logger)
	defer cancel()

	s, err := g.open(ctx, logger)
	if err != nil {
		return err
	}
	_, cls, err := s.classify()
	if err != nil {
		return err
	}

	st, err := strategy.ByName(c.Strategy, s.cfg.Analysis.Mix)
	if err != nil {
		return err
	}
	seed := randutil.Seed(s.cfg.Analysis.Seed)
	s.logger.Info().Int64("seed", seed).Str("strategy", st.Name()).Msg("Generating games")

	gen := generator.New(
		randutil.Stream(seed, st.Name()),
		generator.WithAttemptFactor(s.cfg.Analysis.MaxAttemptsFactor),
		generator.WithLogger(s.logger),
	)
	res, err := gen.Generate(st.Base(cls), s.cfg.Analysis.Quantity, s.cfg.Analysis.Constraints())
	if err != nil {
		return err
	}

	var results []*backtest.Result
	if len(res.Games) > 0 {
		if results, err = backtest.RunAll(res.Games, s.window()); err != nil {
			return err
		}
	}
	s.printer.Games(res, results)
	return s.export(c.Out, export.Games(res.Games, results))
}

// BacktestCmd scores a single game or a pool
type BacktestCmd struct {
	Game string `short:"g" xor:"candidate" required:"" help:"Comma-separated 15 numbers"`
	Pool string `short:"p" xor:"candidate" required:"" help:"Comma-separated 15 to 20 numbers"`
}

func (c *BacktestCmd) Run(g *Globals) error {
	var (
		candidate lotto.Set
		err       error
	)
	if c.Game != "" {
		candidate, err = lotto.ParseGame(c.Game)
	} else {
		candidate, err = lotto.ParsePool(c.Pool, lotto.MinPoolSize)
	}
	if err != nil {
		return err
	}

	logger := g.logger()
	ctx, cancel := shared.SignalContext(logger)
	defer cancel()

	s, err := g.open(ctx, logger)
	if err != nil {
		return err
	}
	r, err := backtest.Run(candidate, s.window())
	if err != nil {
		return err
	}
	s.printer.Backtest([]*backtest.Result{r})
	return nil
}

// CompareCmd ranks the builtin strategies
type CompareCmd struct {
	Out string `short:"o" help:"Also write the ranking to this CSV file" type:"path"`
}

func (c *CompareCmd) Run(g *Globals) error {
	logger := g.logger()
	ctx, cancel := shared.SignalContext(logger)
	defer cancel()

	s, err := g.open(ctx, logger)
	if err != nil {
		return err
	}
	_, cls, err := s.classify()
	if err != nil {
		return err
	}

	seed := randutil.Seed(s.cfg.Analysis.Seed)
	s.logger.Info().Int64("seed", seed).Msg("Comparing strategies")

	cmp, err := strategy.Compare(ctx, cls, s.window(), strategy.Builtin(s.cfg.Analysis.Mix), strategy.Options{
		Quantity:      s.cfg.Analysis.Quantity,
		Constraints:   s.cfg.Analysis.Constraints(),
		AttemptFactor: s.cfg.Analysis.MaxAttemptsFactor,
		Seed:          seed,
		Logger:        s.logger,
	})
	if err != nil {
		return err
	}
	s.printer.Comparison(cmp)
	return s.export(c.Out, export.Strategies(cmp))
}

// PoolCmd runs the coverage optimizer. It needs no draw history.
type PoolCmd struct {
	Pool   string `short:"p" required:"" help:"Comma-separated 16 to 20 numbers"`
	Target *int   `short:"t" help:"Games to select (default from config)"`
	Out    string `short:"o" help:"Also write the games to this CSV file" type:"path"`
}

func (c *PoolCmd) Run(g *Globals) error {
	logger := g.logger()

	cfg, err := g.settings()
	if err != nil {
		return err
	}
	pool, err := lotto.ParsePool(c.Pool, lotto.MinCoveragePool)
	if err != nil {
		return err
	}
	target := cfg.Analysis.CoverageTarget
	if c.Target != nil {
		target = *c.Target
	}

	logger.Debug().Int("pool_size", pool.Len()).Int("candidates", coverage.Candidates(pool.Len())).Msg("Enumerating pool")
	sel, err := coverage.Optimize(pool, target)
	if err != nil {
		return err
	}

	s := &session{cfg: cfg, logger: logger}
	g.printer().Coverage(sel)
	return s.export(c.Out, export.Coverage(sel))
}

// AnalyzeCmd runs a full pass
type AnalyzeCmd struct {
	Pool string `short:"p" help:"Comma-separated 16 to 20 numbers for coverage selection"`
	Out  string `short:"o" help:"Directory to write CSV tables into" type:"existingdir"`
	JSON bool   `help:"Print the report as JSON instead of tables"`
}

func (c *AnalyzeCmd) Run(g *Globals) error {
	var pool lotto.Set
	if c.Pool != "" {
		p, err := lotto.ParsePool(c.Pool, lotto.MinCoveragePool)
		if err != nil {
			return err
		}
		pool = p
	}

	logger := g.logger()
	ctx, cancel := shared.SignalContext(logger)
	defer cancel()

	s, err := g.open(ctx, logger)
	if err != nil {
		return err
	}

	pass, err := analysis.Run(ctx, s.history, analysis.Options{
		Settings: s.cfg.Analysis,
		Pool:     pool,
		Logger:   s.logger,
	})
	if err != nil {
		return err
	}

	if c.Out != "" {
		paths, err := pass.WriteCSV(c.Out)
		if err != nil {
			return err
		}
		for _, p := range paths {
			s.logger.Info().Str("path", p).Msg("Wrote CSV")
		}
	}

	if c.JSON {
		return pass.WriteJSON(os.Stdout)
	}

	s.printer.Frequency(pass.Frequency, pass.Classification)
	fmt.Println()
	s.printer.Games(pass.Generation, pass.Backtests)
	fmt.Println()
	s.printer.Comparison(pass.Comparison)
	if pass.Coverage != nil {
		fmt.Println()
		s.printer.Coverage(pass.Coverage)
	}
	return nil
}
