// Package strategy compares ways of building a candidate base from a hot/cold
// classification by generating games from each base and backtesting them.
package strategy

import (
	"fmt"
	"sort"

	"github.com/lox/lotofacil/internal/classify"
	"github.com/lox/lotofacil/lotto"
)

// DefaultMix is how many numbers a heavy strategy borrows from the other set
const DefaultMix = 5

// Strategy builds a candidate base from a classification
type Strategy interface {
	// Name returns the name of this strategy for reports and RNG streams
	Name() string

	// Base returns the numbers games may be drawn from
	Base(c classify.Classification) lotto.Set
}

// HotHeavy takes every hot number plus the first Mix cold numbers
type HotHeavy struct {
	Mix int
}

func (s HotHeavy) Name() string {
	return "hot-heavy"
}

func (s HotHeavy) Base(c classify.Classification) lotto.Set {
	return lotto.MustSet(c.Hot...).Union(lotto.MustSet(head(c.Cold, s.Mix)...))
}

// Balanced takes the first half of the hot numbers and the first half of the
// cold numbers, rounding each half up
type Balanced struct{}

func (s Balanced) Name() string {
	return "balanced"
}

func (s Balanced) Base(c classify.Classification) lotto.Set {
	hot := head(c.Hot, (len(c.Hot)+1)/2)
	cold := head(c.Cold, (len(c.Cold)+1)/2)
	return lotto.MustSet(hot...).Union(lotto.MustSet(cold...))
}

// ColdHeavy takes every cold number plus the first Mix hot numbers
type ColdHeavy struct {
	Mix int
}

func (s ColdHeavy) Name() string {
	return "cold-heavy"
}

func (s ColdHeavy) Base(c classify.Classification) lotto.Set {
	return lotto.MustSet(c.Cold...).Union(lotto.MustSet(head(c.Hot, s.Mix)...))
}

// Universe uses all 25 numbers, ignoring the classification
type Universe struct{}

func (s Universe) Name() string {
	return "all"
}

func (s Universe) Base(classify.Classification) lotto.Set {
	return lotto.All()
}

// Builtin returns the three classification strategies
func Builtin(mix int) []Strategy {
	return []Strategy{HotHeavy{Mix: mix}, Balanced{}, ColdHeavy{Mix: mix}}
}

// ByName resolves a strategy name. "all" yields the whole universe.
func ByName(name string, mix int) (Strategy, error) {
	candidates := append(Builtin(mix), Universe{})
	for _, s := range candidates {
		if s.Name() == name {
			return s, nil
		}
	}
	return nil, lotto.Invalid("strategy", name, "must be one of %s", names(candidates))
}

func head(nums []int, k int) []int {
	if k < 0 {
		k = 0
	}
	return nums[:min(k, len(nums))]
}

func names(strategies []Strategy) string {
	out := make([]string, len(strategies))
	for i, s := range strategies {
		out[i] = s.Name()
	}
	sort.Strings(out)
	return fmt.Sprintf("%v", out)
}
