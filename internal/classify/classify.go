// Package classify ranks numbers by score and partitions them into hot and
// cold sets.
//
// Hot takes the head of the ranking (score descending, lower number first on
// ties). Cold is read from the numbers outside Hot in ascending score order,
// lower number first on ties; only when hot+cold > 25 does it continue into
// Hot, coldest first. The sets are therefore disjoint whenever
// hot+cold <= 25 and overlap in exactly hot+cold-25 numbers otherwise.
package classify

import (
	"sort"

	"github.com/lox/lotofacil/lotto"
)

// Scores provides a score for each number 1-25
type Scores interface {
	Score(n int) float64
}

// Label describes which set a number fell into
type Label string

const (
	Hot     Label = "hot"
	Cold    Label = "cold"
	Neutral Label = "neutral"
	Both    Label = "hot+cold"
)

// Classification is the result of ranking a score table
type Classification struct {
	Ranking []int // all numbers, hottest first
	Hot     []int // hottest first
	Cold    []int // coldest first
}

// Classify ranks the 25 numbers and takes the hot and cold sets.
// hot and cold must each lie in [1,25].
func Classify(scores Scores, hot, cold int) (Classification, error) {
	if hot < 1 || hot > lotto.Universe {
		return Classification{}, lotto.Invalid("hot count", hot, "must be between 1 and %d", lotto.Universe)
	}
	if cold < 1 || cold > lotto.Universe {
		return Classification{}, lotto.Invalid("cold count", cold, "must be between 1 and %d", lotto.Universe)
	}

	ranking := Rank(scores)
	hotSet := lotto.MustSet(ranking[:hot]...)

	ascending := Ascending(scores)
	order := make([]int, 0, lotto.Universe)
	for _, n := range ascending {
		if !hotSet.Has(n) {
			order = append(order, n)
		}
	}
	for _, n := range ascending {
		if hotSet.Has(n) {
			order = append(order, n)
		}
	}

	return Classification{
		Ranking: ranking,
		Hot:     append([]int(nil), ranking[:hot]...),
		Cold:    order[:cold:cold],
	}, nil
}

// Rank returns 1-25 ordered by score descending, lower number first on ties
func Rank(scores Scores) []int {
	ranking := lotto.All().Numbers()
	sort.SliceStable(ranking, func(i, j int) bool {
		return scores.Score(ranking[i]) > scores.Score(ranking[j])
	})
	return ranking
}

// Ascending returns 1-25 ordered by score ascending, lower number first on
// ties
func Ascending(scores Scores) []int {
	order := lotto.All().Numbers()
	sort.SliceStable(order, func(i, j int) bool {
		return scores.Score(order[i]) < scores.Score(order[j])
	})
	return order
}

// HotSet returns the hot numbers as a set
func (c Classification) HotSet() lotto.Set {
	return lotto.MustSet(c.Hot...)
}

// ColdSet returns the cold numbers as a set
func (c Classification) ColdSet() lotto.Set {
	return lotto.MustSet(c.Cold...)
}

// NeutralSet returns the numbers in neither set
func (c Classification) NeutralSet() lotto.Set {
	return lotto.All().Minus(c.HotSet()).Minus(c.ColdSet())
}

// Label returns the class of n
func (c Classification) Label(n int) Label {
	hot, cold := c.HotSet().Has(n), c.ColdSet().Has(n)
	switch {
	case hot && cold:
		return Both
	case hot:
		return Hot
	case cold:
		return Cold
	default:
		return Neutral
	}
}
