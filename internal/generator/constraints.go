package generator

import "github.com/lox/lotofacil/lotto"

// Constraints bound the sum and the even count of a game, inclusive
type Constraints struct {
	SumMin  int
	SumMax  int
	EvenMin int
	EvenMax int
}

// DefaultConstraints returns the bounds used when none are configured
func DefaultConstraints() Constraints {
	return Constraints{
		SumMin:  180,
		SumMax:  210,
		EvenMin: 6,
		EvenMax: 9,
	}
}

// Validate checks the bounds are well-formed. Bounds that no game can meet
// are allowed; generation simply returns nothing.
func (c Constraints) Validate() error {
	if c.SumMin < 0 {
		return lotto.Invalid("sum min", c.SumMin, "must not be negative")
	}
	if c.SumMin > c.SumMax {
		return lotto.Invalid("sum max", c.SumMax, "must be at least sum min %d", c.SumMin)
	}
	if c.EvenMin < 0 || c.EvenMin > lotto.DrawSize {
		return lotto.Invalid("even min", c.EvenMin, "must be between 0 and %d", lotto.DrawSize)
	}
	if c.EvenMax < c.EvenMin || c.EvenMax > lotto.DrawSize {
		return lotto.Invalid("even max", c.EvenMax, "must be between even min %d and %d", c.EvenMin, lotto.DrawSize)
	}
	return nil
}

// Allows reports whether game satisfies every bound
func (c Constraints) Allows(game lotto.Set) bool {
	sum := game.Sum()
	if sum < c.SumMin || sum > c.SumMax {
		return false
	}
	evens := game.Evens()
	return evens >= c.EvenMin && evens <= c.EvenMax
}
