// Package generator produces random 15-number games from a candidate base
// by rejection sampling against sum and parity constraints.
package generator

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/lox/lotofacil/lotto"
)

// DefaultAttemptFactor is multiplied by the requested quantity to give the
// attempt budget
const DefaultAttemptFactor = 2000

// Generator draws games from a base using an injected random source
type Generator struct {
	rng           *rand.Rand
	attemptFactor int
	maxAttempts   int // overrides attemptFactor when > 0
	logger        zerolog.Logger
}

// Option configures a Generator
type Option func(*Generator)

// WithAttemptFactor sets the per-game attempt budget
func WithAttemptFactor(factor int) Option {
	return func(g *Generator) {
		if factor > 0 {
			g.attemptFactor = factor
		}
	}
}

// WithMaxAttempts sets an absolute attempt budget for each Generate call
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		g.maxAttempts = n
	}
}

// WithLogger attaches a logger
func WithLogger(logger zerolog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// New creates a generator. rng must not be nil.
func New(rng *rand.Rand, opts ...Option) *Generator {
	g := &Generator{
		rng:           rng,
		attemptFactor: DefaultAttemptFactor,
		logger:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Result holds the accepted games of one Generate call
type Result struct {
	Games      []lotto.Set // in acceptance order
	Requested  int
	Attempts   int
	Rejected   int // failed the constraints
	Duplicates int // repeated an accepted game
}

// Shortfall is how many games the attempt budget could not produce
func (r Result) Shortfall() int {
	return r.Requested - len(r.Games)
}

// Budget returns the attempt budget for quantity games
func (g *Generator) Budget(quantity int) int {
	if g.maxAttempts > 0 {
		return g.maxAttempts
	}
	return quantity * g.attemptFactor
}

// Generate samples up to quantity distinct games from base that satisfy c.
// A base smaller than 15 numbers fails with ErrInsufficientBase before any
// sampling. Running out of attempts is not an error: the result carries
// fewer games and a positive Shortfall.
func (g *Generator) Generate(base lotto.Set, quantity int, c Constraints) (Result, error) {
	if quantity < 1 {
		return Result{}, lotto.Invalid("quantity", quantity, "must be at least 1")
	}
	if base.Len() < lotto.DrawSize {
		return Result{}, fmt.Errorf("base of %d numbers: %w", base.Len(), lotto.ErrInsufficientBase)
	}
	if err := c.Validate(); err != nil {
		return Result{}, err
	}

	res := Result{
		Requested: quantity,
		Games:     make([]lotto.Set, 0, quantity),
	}
	seen := make(map[lotto.Set]struct{}, quantity)
	pool := base.Numbers()
	budget := g.Budget(quantity)

	for res.Attempts < budget && len(res.Games) < quantity {
		res.Attempts++
		game := g.sample(pool)

		if !c.Allows(game) {
			res.Rejected++
			continue
		}
		if _, dup := seen[game]; dup {
			res.Duplicates++
			continue
		}
		seen[game] = struct{}{}
		res.Games = append(res.Games, game)
	}

	if res.Shortfall() > 0 {
		g.logger.Warn().
			Int("requested", quantity).
			Int("generated", len(res.Games)).
			Int("attempts", res.Attempts).
			Msg("Attempt budget exhausted before reaching requested quantity")
	} else {
		g.logger.Debug().
			Int("generated", len(res.Games)).
			Int("attempts", res.Attempts).
			Msg("Generated games")
	}

	return res, nil
}

// sample picks 15 distinct numbers uniformly from pool using a partial
// Fisher-Yates shuffle. pool is permuted in place.
func (g *Generator) sample(pool []int) lotto.Set {
	var game lotto.Set
	for i := 0; i < lotto.DrawSize; i++ {
		j := i + g.rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
		game.Add(pool[i])
	}
	return game
}
