package strategy

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lox/lotofacil/internal/backtest"
	"github.com/lox/lotofacil/internal/classify"
	"github.com/lox/lotofacil/internal/generator"
	"github.com/lox/lotofacil/internal/randutil"
	"github.com/lox/lotofacil/lotto"
)

// Status of a strategy in a comparison
type Status string

const (
	StatusRanked  Status = "ranked"  // games generated and backtested
	StatusEmpty   Status = "empty"   // base was valid but no game met the constraints
	StatusSkipped Status = "skipped" // base had fewer than 15 numbers
)

// Options are shared by every strategy in a comparison
type Options struct {
	Quantity      int
	Constraints   generator.Constraints
	AttemptFactor int
	Seed          int64
	Logger        zerolog.Logger
}

// Outcome is one strategy's line in a comparison
type Outcome struct {
	Strategy  string
	Base      lotto.Set
	Status    Status
	Games     []lotto.Set
	Results   []*backtest.Result
	Summary   backtest.Summary
	Score     float64 // mean of the per-game mean match counts
	Attempts  int
	Shortfall int
	Err       error // set when skipped
}

// Comparison ranks outcomes by score. It reports which base performed best
// over the window, not which will perform best next.
type Comparison struct {
	Outcomes []Outcome
	Draws    int
}

// Best returns the top ranked outcome
func (c *Comparison) Best() (Outcome, bool) {
	if len(c.Outcomes) == 0 || c.Outcomes[0].Status != StatusRanked {
		return Outcome{}, false
	}
	return c.Outcomes[0], true
}

// Compare runs every strategy against h concurrently. A strategy whose base
// is too small is recorded as skipped and the rest continue. Each strategy
// draws from its own random stream derived from opts.Seed, so a fixed seed
// reproduces the whole table.
func Compare(ctx context.Context, cls classify.Classification, h lotto.History, strategies []Strategy, opts Options) (*Comparison, error) {
	if h.Len() == 0 {
		return nil, fmt.Errorf("comparison over empty window: %w", lotto.ErrInvalidInput)
	}
	if err := opts.Constraints.Validate(); err != nil {
		return nil, err
	}
	if opts.Quantity < 1 {
		return nil, lotto.Invalid("quantity", opts.Quantity, "must be at least 1")
	}

	// Strategies share nothing but read-only inputs; each has its own stream
	outcomes := make([]Outcome, len(strategies))
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range strategies {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			out, err := run(s, cls, h, opts)
			if err != nil {
				return fmt.Errorf("strategy %s: %w", s.Name(), err)
			}

			opts.Logger.Info().
				Str("strategy", out.Strategy).
				Str("status", string(out.Status)).
				Int("base_size", out.Base.Len()).
				Int("games", len(out.Games)).
				Float64("score", out.Score).
				Msg("Strategy evaluated")

			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cmp := &Comparison{Draws: h.Len(), Outcomes: outcomes}
	sort.SliceStable(cmp.Outcomes, func(i, j int) bool {
		a, b := cmp.Outcomes[i], cmp.Outcomes[j]
		if ra, rb := statusRank(a.Status), statusRank(b.Status); ra != rb {
			return ra < rb
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.Strategy < b.Strategy
	})

	return cmp, nil
}

func run(s Strategy, cls classify.Classification, h lotto.History, opts Options) (Outcome, error) {
	out := Outcome{
		Strategy: s.Name(),
		Base:     s.Base(cls),
	}

	gen := generator.New(
		randutil.Stream(opts.Seed, s.Name()),
		generator.WithAttemptFactor(opts.AttemptFactor),
		generator.WithLogger(opts.Logger.With().Str("strategy", s.Name()).Logger()),
	)

	res, err := gen.Generate(out.Base, opts.Quantity, opts.Constraints)
	if errors.Is(err, lotto.ErrInsufficientBase) {
		out.Status = StatusSkipped
		out.Err = err
		return out, nil
	}
	if err != nil {
		return out, err
	}

	out.Games = res.Games
	out.Attempts = res.Attempts
	out.Shortfall = res.Shortfall()
	if len(res.Games) == 0 {
		out.Status = StatusEmpty
		return out, nil
	}

	out.Results, err = backtest.RunAll(res.Games, h)
	if err != nil {
		return out, err
	}
	out.Summary = backtest.Summarize(out.Results)
	out.Score = out.Summary.Mean()
	out.Status = StatusRanked
	return out, nil
}

func statusRank(s Status) int {
	switch s {
	case StatusRanked:
		return 0
	case StatusEmpty:
		return 1
	default:
		return 2
	}
}
