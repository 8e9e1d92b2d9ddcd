// Package analysis runs a complete pass over a draw history: frequency,
// classification, generation, backtesting, strategy comparison and, when a
// pool is given, coverage selection.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lox/lotofacil/internal/backtest"
	"github.com/lox/lotofacil/internal/classify"
	"github.com/lox/lotofacil/internal/config"
	"github.com/lox/lotofacil/internal/coverage"
	"github.com/lox/lotofacil/internal/frequency"
	"github.com/lox/lotofacil/internal/generator"
	"github.com/lox/lotofacil/internal/randutil"
	"github.com/lox/lotofacil/internal/strategy"
	"github.com/lox/lotofacil/lotto"
)

// Options configure a pass
type Options struct {
	Settings config.Analysis

	// Base supplies the numbers the headline games are drawn from.
	// Defaults to all 25 numbers.
	Base strategy.Strategy

	// Strategies to compare. Defaults to the builtin three.
	Strategies []strategy.Strategy

	// Pool enables coverage selection when non-empty
	Pool lotto.Set

	Clock  quartz.Clock
	Logger zerolog.Logger
}

// Pass holds every intermediate result of one run
type Pass struct {
	RunID      string
	Seed       int64
	StartedAt  time.Time
	FinishedAt time.Time

	Window         lotto.History
	Frequency      *frequency.Analysis
	Classification classify.Classification
	Base           lotto.Set
	BaseErr        error // set when Base held fewer than 15 numbers
	Generation     generator.Result
	Backtests      []*backtest.Result
	Comparison     *strategy.Comparison
	Coverage       *coverage.Selection // nil without a pool
}

// Run executes a pass over h. Settings are validated first; nothing is
// computed for an invalid configuration.
func Run(ctx context.Context, h lotto.History, opts Options) (*Pass, error) {
	cfg := config.Default()
	cfg.Analysis = opts.Settings
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Pool != 0 {
		if err := coverage.Validate(opts.Pool, opts.Settings.CoverageTarget); err != nil {
			return nil, err
		}
	}
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.Base == nil {
		opts.Base = strategy.Universe{}
	}
	if opts.Strategies == nil {
		opts.Strategies = strategy.Builtin(opts.Settings.Mix)
	}

	p := &Pass{
		RunID:     uuid.NewString(),
		Seed:      randutil.Seed(opts.Settings.Seed),
		StartedAt: opts.Clock.Now(),
		Window:    h.Window(opts.Settings.Window),
	}
	logger := opts.Logger.With().Str("run_id", p.RunID).Logger()
	logger.Info().
		Int64("seed", p.Seed).
		Int("draws", p.Window.Len()).
		Int("window", opts.Settings.Window).
		Msg("Starting analysis")

	var err error
	if p.Frequency, err = frequency.Compute(p.Window); err != nil {
		return nil, err
	}
	if p.Classification, err = classify.Classify(p.Frequency, opts.Settings.Hot, opts.Settings.Cold); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.Base = opts.Base.Base(p.Classification)
	gen := generator.New(
		randutil.Stream(p.Seed, opts.Base.Name()),
		generator.WithAttemptFactor(opts.Settings.MaxAttemptsFactor),
		generator.WithLogger(logger),
	)
	p.Generation, err = gen.Generate(p.Base, opts.Settings.Quantity, opts.Settings.Constraints())
	switch {
	case errors.Is(err, lotto.ErrInsufficientBase):
		p.BaseErr = fmt.Errorf("generate from %s: %w", opts.Base.Name(), err)
		p.Generation = generator.Result{Requested: opts.Settings.Quantity}
		logger.Warn().Err(err).Str("strategy", opts.Base.Name()).Msg("Base too small, no games generated")
	case err != nil:
		return nil, fmt.Errorf("generate from %s: %w", opts.Base.Name(), err)
	}
	if len(p.Generation.Games) > 0 {
		if p.Backtests, err = backtest.RunAll(p.Generation.Games, p.Window); err != nil {
			return nil, err
		}
	}

	p.Comparison, err = strategy.Compare(ctx, p.Classification, p.Window, opts.Strategies, strategy.Options{
		Quantity:      opts.Settings.Quantity,
		Constraints:   opts.Settings.Constraints(),
		AttemptFactor: opts.Settings.MaxAttemptsFactor,
		Seed:          p.Seed,
		Logger:        logger,
	})
	if err != nil {
		return nil, err
	}

	if opts.Pool != 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if p.Coverage, err = coverage.Optimize(opts.Pool, opts.Settings.CoverageTarget); err != nil {
			return nil, err
		}
	}

	p.FinishedAt = opts.Clock.Now()
	logger.Info().
		Int("games", len(p.Generation.Games)).
		Int("shortfall", p.Generation.Shortfall()).
		Dur("elapsed", p.FinishedAt.Sub(p.StartedAt)).
		Msg("Analysis complete")
	return p, nil
}
