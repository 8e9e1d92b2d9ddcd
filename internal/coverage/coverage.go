// Package coverage selects 15-number games from a 16-20 number pool
// ("bolão") so that the selection jointly covers as many of the pool's
// numbers and number pairs as possible.
//
// Selection is greedy: every step takes the remaining combination with the
// highest 2×(new numbers) + 1×(new pairs), ties going to the combination
// enumerated first. It is a heuristic, not a minimum cover.
package coverage

import (
	"gonum.org/v1/gonum/stat/combin"

	"github.com/lox/lotofacil/lotto"
)

// Score weights
const (
	NumberWeight = 2
	PairWeight   = 1
)

// Pick is one selected game and what it added
type Pick struct {
	Game       lotto.Set
	NewNumbers int
	NewPairs   int
	Score      int
}

// Selection is the outcome of Optimize
type Selection struct {
	Pool           lotto.Set
	Picks          []Pick
	Candidates     int // C(P,15)
	NumbersCovered int
	PairsCovered   int
	TotalPairs     int // C(P,2)
}

// Games returns the selected games in pick order
func (s *Selection) Games() []lotto.Set {
	games := make([]lotto.Set, len(s.Picks))
	for i, p := range s.Picks {
		games[i] = p.Game
	}
	return games
}

// NumberCoverage returns covered numbers / pool size
func (s *Selection) NumberCoverage() float64 {
	return float64(s.NumbersCovered) / float64(s.Pool.Len())
}

// PairCoverage returns covered pairs / pool pairs
func (s *Selection) PairCoverage() float64 {
	if s.TotalPairs == 0 {
		return 0
	}
	return float64(s.PairsCovered) / float64(s.TotalPairs)
}

// Candidates returns the number of 15-number games a pool of size p holds
func Candidates(p int) int {
	return combin.Binomial(p, lotto.DrawSize)
}

// Validate checks the pool size and target before any enumeration
func Validate(pool lotto.Set, target int) error {
	p := pool.Len()
	if p < lotto.MinCoveragePool || p > lotto.MaxPoolSize {
		return lotto.Invalid("pool", p, "must contain between %d and %d numbers", lotto.MinCoveragePool, lotto.MaxPoolSize)
	}
	if limit := Candidates(p); target < 1 || target > limit {
		return lotto.Invalid("coverage target", target, "must be between 1 and %d for a pool of %d", limit, p)
	}
	return nil
}

// Enumerate lists every 15-number subset of pool in lexicographic order of
// the pool's ascending numbers
func Enumerate(pool lotto.Set) []lotto.Set {
	nums := pool.Numbers()
	gen := combin.NewCombinationGenerator(len(nums), lotto.DrawSize)
	out := make([]lotto.Set, 0, Candidates(len(nums)))
	idx := make([]int, lotto.DrawSize)
	for gen.Next() {
		var game lotto.Set
		for _, i := range gen.Combination(idx) {
			game.Add(nums[i])
		}
		out = append(out, game)
	}
	return out
}

// pairSet tracks covered unordered pairs: partners[a] holds every b > a
// already seen together with a
type pairSet [lotto.MaxNumber + 1]lotto.Set

// fresh counts the pairs of game not yet covered
func (p *pairSet) fresh(game lotto.Set) int {
	n := 0
	rest := game
	for _, a := range game.Numbers() {
		rest = rest.Minus(lotto.Single(a))
		n += rest.Minus(p[a]).Len()
	}
	return n
}

// add marks every pair of game as covered
func (p *pairSet) add(game lotto.Set) {
	rest := game
	for _, a := range game.Numbers() {
		rest = rest.Minus(lotto.Single(a))
		p[a] = p[a].Union(rest)
	}
}

func (p *pairSet) count() int {
	n := 0
	for _, partners := range p {
		n += partners.Len()
	}
	return n
}

// Optimize greedily selects up to target games from pool
func Optimize(pool lotto.Set, target int) (*Selection, error) {
	if err := Validate(pool, target); err != nil {
		return nil, err
	}

	candidates := Enumerate(pool)
	taken := make([]bool, len(candidates))

	sel := &Selection{
		Pool:       pool,
		Candidates: len(candidates),
		TotalPairs: combin.Binomial(pool.Len(), 2),
		Picks:      make([]Pick, 0, target),
	}

	var covered lotto.Set
	var pairs pairSet

	for len(sel.Picks) < target {
		best := -1
		var bestPick Pick
		for i, game := range candidates {
			if taken[i] {
				continue
			}
			newNumbers := game.Minus(covered).Len()
			newPairs := pairs.fresh(game)
			score := NumberWeight*newNumbers + PairWeight*newPairs
			if best < 0 || score > bestPick.Score {
				best = i
				bestPick = Pick{Game: game, NewNumbers: newNumbers, NewPairs: newPairs, Score: score}
			}
		}
		if best < 0 {
			break
		}

		taken[best] = true
		covered = covered.Union(bestPick.Game)
		pairs.add(bestPick.Game)
		sel.Picks = append(sel.Picks, bestPick)
	}

	sel.NumbersCovered = covered.Len()
	sel.PairsCovered = pairs.count()
	return sel, nil
}
