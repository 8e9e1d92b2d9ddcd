// Package frequency computes per-number occurrence counts, empirical scores
// and gaps over a window of draws.
package frequency

import (
	"fmt"
	"math"

	"github.com/lox/lotofacil/lotto"
)

// Table maps number → occurrence count. Index 0 is unused, 1-25 are numbers.
type Table [lotto.MaxNumber + 1]int

// Count tallies how often each number appears in h. The table is total:
// numbers never drawn have count 0.
func Count(h lotto.History) Table {
	var t Table
	for _, d := range h.Draws() {
		for _, n := range d.Numbers.Numbers() {
			t[n]++
		}
	}
	return t
}

// Total returns the sum of all counts
func (t Table) Total() int {
	total := 0
	for n := lotto.MinNumber; n <= lotto.MaxNumber; n++ {
		total += t[n]
	}
	return total
}

// Analysis is the frequency view of one window
type Analysis struct {
	Draws  int
	Counts Table
	Scores [lotto.MaxNumber + 1]float64 // count / draws
	Gaps   [lotto.MaxNumber + 1]int     // draws since last seen, Draws if never
}

// Compute builds counts, scores and gaps for h.
// Returns ErrInvalidInput for an empty window.
func Compute(h lotto.History) (*Analysis, error) {
	if h.Len() == 0 {
		return nil, fmt.Errorf("frequency over empty window: %w", lotto.ErrInvalidInput)
	}

	a := &Analysis{
		Draws:  h.Len(),
		Counts: Count(h),
	}

	total := float64(a.Draws)
	for n := lotto.MinNumber; n <= lotto.MaxNumber; n++ {
		a.Scores[n] = float64(a.Counts[n]) / total
		a.Gaps[n] = a.Draws
	}

	// Walk newest to oldest; the first sighting fixes the gap
	var seen lotto.Set
	draws := h.Draws()
	for age := 0; age < len(draws) && seen != lotto.All(); age++ {
		fresh := draws[len(draws)-1-age].Numbers.Minus(seen)
		for _, n := range fresh.Numbers() {
			a.Gaps[n] = age
		}
		seen = seen.Union(fresh)
	}

	return a, nil
}

// Score returns the score of n
func (a *Analysis) Score(n int) float64 {
	return a.Scores[n]
}

// ScoreTable returns the scores indexed by number (index 0 unused)
func (a *Analysis) ScoreTable() []float64 {
	return a.Scores[:]
}

// ScoreSum returns the sum of all 25 scores (15 for a well-formed history)
func (a *Analysis) ScoreSum() float64 {
	sum := 0.0
	for n := lotto.MinNumber; n <= lotto.MaxNumber; n++ {
		sum += a.Scores[n]
	}
	return sum
}

// Validate checks the accounting invariants of the analysis
func (a *Analysis) Validate() error {
	if a.Draws <= 0 {
		return fmt.Errorf("invalid draw count: %d", a.Draws)
	}
	if total, want := a.Counts.Total(), lotto.DrawSize*a.Draws; total != want {
		return fmt.Errorf("count total (%d) does not match %d draws × %d numbers", total, a.Draws, lotto.DrawSize)
	}
	for n := lotto.MinNumber; n <= lotto.MaxNumber; n++ {
		if s := a.Scores[n]; s < 0 || s > 1 || math.IsNaN(s) {
			return fmt.Errorf("score of %d out of range: %f", n, s)
		}
		if g := a.Gaps[n]; g < 0 || g > a.Draws {
			return fmt.Errorf("gap of %d out of range: %d", n, g)
		}
	}
	return nil
}
