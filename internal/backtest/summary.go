package backtest

import (
	"math"
)

// Summary aggregates the per-candidate means of many backtests
type Summary struct {
	Candidates int
	SumMean    float64
	SumMean2   float64 // Sum of squares for variance calculation
	BestMean   float64
	WorstMean  float64
	BestMax    int
	PrizeHits  int // draws at 11+ matches across all candidates
}

// Add incorporates one candidate's result
func (s *Summary) Add(r *Result) {
	if s.Candidates == 0 || r.Mean > s.BestMean {
		s.BestMean = r.Mean
	}
	if s.Candidates == 0 || r.Mean < s.WorstMean {
		s.WorstMean = r.Mean
	}
	s.Candidates++
	s.SumMean += r.Mean
	s.SumMean2 += r.Mean * r.Mean
	s.BestMax = max(s.BestMax, r.Max)
	s.PrizeHits += r.PrizeHits()
}

// Summarize builds a Summary from results
func Summarize(results []*Result) Summary {
	var s Summary
	for _, r := range results {
		s.Add(r)
	}
	return s
}

// Mean returns the mean of the candidate means
func (s *Summary) Mean() float64 {
	if s.Candidates == 0 {
		return 0
	}
	return s.SumMean / float64(s.Candidates)
}

// Variance returns the sample variance of the candidate means
func (s *Summary) Variance() float64 {
	if s.Candidates < 2 {
		return 0
	}
	mean := s.Mean()
	v := (s.SumMean2 - float64(s.Candidates)*mean*mean) / float64(s.Candidates-1)
	return math.Max(v, 0)
}

// StdDev returns the sample standard deviation of the candidate means
func (s *Summary) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Summary) StdError() float64 {
	if s.Candidates == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Candidates))
}

// ConfidenceInterval95 returns the 95% confidence interval of the mean
func (s *Summary) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}
