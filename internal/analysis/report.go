package analysis

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/lox/lotofacil/internal/export"
	"github.com/lox/lotofacil/internal/render"
	"github.com/lox/lotofacil/internal/strategy"
)

// Report is the JSON form of a pass
type Report struct {
	RunID      string          `json:"run_id"`
	Metadata   ReportMetadata  `json:"metadata"`
	Numbers    []NumberStats   `json:"numbers"`
	Hot        []int           `json:"hot"`
	Cold       []int           `json:"cold"`
	Games      []GameStats     `json:"games"`
	Strategies []StrategyStats `json:"strategies"`
	Coverage   *CoverageStats  `json:"coverage,omitempty"`
	Disclaimer string          `json:"disclaimer"`
}

// ReportMetadata describes the run itself
type ReportMetadata struct {
	Seed            int64     `json:"seed"`
	Draws           int       `json:"draws"`
	FirstContest    int       `json:"first_contest,omitempty"`
	LastContest     int       `json:"last_contest,omitempty"`
	StartTime       time.Time `json:"start_time"`
	DurationSeconds float64   `json:"duration_seconds"`
	Requested       int       `json:"games_requested"`
	Attempts        int       `json:"attempts"`
	Shortfall       int       `json:"shortfall"`
	BaseError       string    `json:"base_error,omitempty"`
}

// NumberStats is one row of the frequency table
type NumberStats struct {
	Number int     `json:"number"`
	Count  int     `json:"count"`
	Score  float64 `json:"score"`
	Gap    int     `json:"gap"`
	Class  string  `json:"class"`
}

// GameStats is a generated game with its backtest
type GameStats struct {
	Numbers      []int       `json:"numbers"`
	Sum          int         `json:"sum"`
	Evens        int         `json:"evens"`
	Mean         float64     `json:"mean"`
	StdDev       float64     `json:"std_dev"`
	Min          int         `json:"min"`
	Max          int         `json:"max"`
	Distribution map[int]int `json:"distribution"`
	PrizeTiers   []int       `json:"prize_tiers"` // 11..15 matches
}

// StrategyStats is one row of the comparison
type StrategyStats struct {
	Rank     int     `json:"rank,omitempty"`
	Strategy string  `json:"strategy"`
	Base     []int   `json:"base"`
	Games    int     `json:"games"`
	Score    float64 `json:"score"`
	CI95Low  float64 `json:"ci_95_low"`
	CI95High float64 `json:"ci_95_high"`
	Status   string  `json:"status"`
	Reason   string  `json:"reason,omitempty"`
}

// CoverageStats summarizes the pool selection
type CoverageStats struct {
	Pool           []int   `json:"pool"`
	Candidates     int     `json:"candidates"`
	Games          [][]int `json:"games"`
	NumberCoverage float64 `json:"number_coverage"`
	PairCoverage   float64 `json:"pair_coverage"`
}

// Report builds the JSON view of p
func (p *Pass) Report() *Report {
	r := &Report{
		RunID: p.RunID,
		Metadata: ReportMetadata{
			Seed:            p.Seed,
			Draws:           p.Window.Len(),
			StartTime:       p.StartedAt,
			DurationSeconds: p.FinishedAt.Sub(p.StartedAt).Seconds(),
			Requested:       p.Generation.Requested,
			Attempts:        p.Generation.Attempts,
			Shortfall:       p.Generation.Shortfall(),
		},
		Hot:        p.Classification.Hot,
		Cold:       p.Classification.Cold,
		Disclaimer: render.Disclaimer,
	}
	if p.BaseErr != nil {
		r.Metadata.BaseError = p.BaseErr.Error()
	}
	if p.Window.Len() > 0 {
		r.Metadata.FirstContest = p.Window.At(0).Contest
		last, _ := p.Window.Latest()
		r.Metadata.LastContest = last.Contest
	}

	for n := 1; n < len(p.Frequency.Counts); n++ {
		r.Numbers = append(r.Numbers, NumberStats{
			Number: n,
			Count:  p.Frequency.Counts[n],
			Score:  p.Frequency.Scores[n],
			Gap:    p.Frequency.Gaps[n],
			Class:  string(p.Classification.Label(n)),
		})
	}

	for i, g := range p.Generation.Games {
		bt := p.Backtests[i]
		tiers := bt.Tiers()
		r.Games = append(r.Games, GameStats{
			Numbers:      g.Numbers(),
			Sum:          g.Sum(),
			Evens:        g.Evens(),
			Mean:         bt.Mean,
			StdDev:       bt.StdDev,
			Min:          bt.Min,
			Max:          bt.Max,
			Distribution: bt.Distribution,
			PrizeTiers:   tiers[:],
		})
	}

	rank := 0
	for _, o := range p.Comparison.Outcomes {
		s := StrategyStats{
			Strategy: o.Strategy,
			Base:     o.Base.Numbers(),
			Games:    len(o.Games),
			Status:   string(o.Status),
		}
		if o.Status == strategy.StatusRanked {
			rank++
			s.Rank = rank
			s.Score = o.Score
			s.CI95Low, s.CI95High = o.Summary.ConfidenceInterval95()
		}
		if o.Err != nil {
			s.Reason = o.Err.Error()
		}
		r.Strategies = append(r.Strategies, s)
	}

	if sel := p.Coverage; sel != nil {
		c := &CoverageStats{
			Pool:           sel.Pool.Numbers(),
			Candidates:     sel.Candidates,
			NumberCoverage: sel.NumberCoverage(),
			PairCoverage:   sel.PairCoverage(),
		}
		for _, g := range sel.Games() {
			c.Games = append(c.Games, g.Numbers())
		}
		r.Coverage = c
	}
	return r
}

// WriteJSON writes the report as indented JSON
func (p *Pass) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p.Report())
}

type namedTable struct {
	name  string
	table export.Table
}

// WriteCSV writes the frequency, games, strategies and (with a pool) coverage
// tables into dir and returns the paths written
func (p *Pass) WriteCSV(dir string) ([]string, error) {
	tables := []namedTable{
		{"frequency.csv", export.Frequency(p.Frequency, p.Classification)},
		{"games.csv", export.Games(p.Generation.Games, p.Backtests)},
		{"strategies.csv", export.Strategies(p.Comparison)},
	}
	if p.Coverage != nil {
		tables = append(tables, namedTable{"coverage.csv", export.Coverage(p.Coverage)})
	}

	var paths []string
	for _, t := range tables {
		path := filepath.Join(dir, t.name)
		if err := export.WriteFile(path, t.table); err != nil {
			return paths, fmt.Errorf("run %s: %w", p.RunID, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
