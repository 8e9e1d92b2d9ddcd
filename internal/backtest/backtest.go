// Package backtest scores games and pools against historical draws by
// intersection size.
//
// The figures describe how a candidate would have matched past draws. They
// say nothing about future draws.
package backtest

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/lox/lotofacil/lotto"
)

// PrizeMin is the smallest match count that wins a prize
const PrizeMin = 11

// Result is the match record of one candidate over a window
type Result struct {
	Candidate    lotto.Set
	Matches      []int       // per draw, oldest first
	Distribution map[int]int // match count → number of draws
	Mean         float64
	StdDev       float64
	Median       float64
	Min          int
	Max          int
}

// Run backtests candidate against every draw of h.
// Returns ErrInvalidInput when h is empty or the candidate is empty.
func Run(candidate lotto.Set, h lotto.History) (*Result, error) {
	if h.Len() == 0 {
		return nil, fmt.Errorf("backtest over empty window: %w", lotto.ErrInvalidInput)
	}
	if candidate.Len() == 0 {
		return nil, lotto.Invalid("candidate", candidate.Len(), "must contain at least one number")
	}

	r := &Result{
		Candidate:    candidate,
		Matches:      make([]int, h.Len()),
		Distribution: make(map[int]int),
		Min:          lotto.DrawSize,
	}

	data := make(stats.Float64Data, h.Len())
	for i, d := range h.Draws() {
		m := candidate.Matches(d.Numbers)
		r.Matches[i] = m
		r.Distribution[m]++
		r.Min = min(r.Min, m)
		r.Max = max(r.Max, m)
		data[i] = float64(m)
	}

	var err error
	if r.Mean, err = data.Mean(); err != nil {
		return nil, fmt.Errorf("mean: %w", err)
	}
	if r.StdDev, err = data.StandardDeviation(); err != nil {
		return nil, fmt.Errorf("standard deviation: %w", err)
	}
	if r.Median, err = data.Median(); err != nil {
		return nil, fmt.Errorf("median: %w", err)
	}

	return r, nil
}

// RunAll backtests each candidate in order
func RunAll(candidates []lotto.Set, h lotto.History) ([]*Result, error) {
	results := make([]*Result, 0, len(candidates))
	for i, c := range candidates {
		r, err := Run(c, h)
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i+1, err)
		}
		results = append(results, r)
	}
	return results, nil
}

// Draws returns how many draws were scored
func (r *Result) Draws() int {
	return len(r.Matches)
}

// Hits returns how many draws matched exactly k numbers
func (r *Result) Hits(k int) int {
	return r.Distribution[k]
}

// PrizeHits returns how many draws reached a prize tier (11+ matches)
func (r *Result) PrizeHits() int {
	total := 0
	for k := PrizeMin; k <= lotto.DrawSize; k++ {
		total += r.Distribution[k]
	}
	return total
}

// Tiers returns the draw counts for 11, 12, 13, 14 and 15 matches
func (r *Result) Tiers() [lotto.DrawSize - PrizeMin + 1]int {
	var tiers [lotto.DrawSize - PrizeMin + 1]int
	for k := PrizeMin; k <= lotto.DrawSize; k++ {
		tiers[k-PrizeMin] = r.Distribution[k]
	}
	return tiers
}
