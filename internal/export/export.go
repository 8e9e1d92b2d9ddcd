// Package export writes analysis tables as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/lox/lotofacil/internal/backtest"
	"github.com/lox/lotofacil/internal/classify"
	"github.com/lox/lotofacil/internal/coverage"
	"github.com/lox/lotofacil/internal/fileutil"
	"github.com/lox/lotofacil/internal/frequency"
	"github.com/lox/lotofacil/internal/strategy"
	"github.com/lox/lotofacil/lotto"
)

// Table renders one CSV table into w
type Table func(w io.Writer) error

// WriteFile writes table to path atomically
func WriteFile(path string, table Table) error {
	if err := fileutil.WriteAtomic(path, 0o644, table); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}

func numberHeader() []string {
	cols := make([]string, lotto.DrawSize)
	for i := range cols {
		cols[i] = "n" + strconv.Itoa(i+1)
	}
	return cols
}

func numberCells(s lotto.Set) []string {
	nums := s.Numbers()
	cells := make([]string, len(nums))
	for i, n := range nums {
		cells[i] = strconv.Itoa(n)
	}
	return cells
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func writeAll(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// Games lists generated games. When results is non-nil it must align with
// games and adds the mean, min and max match columns.
func Games(games []lotto.Set, results []*backtest.Result) Table {
	return func(w io.Writer) error {
		if results != nil && len(results) != len(games) {
			return lotto.Invalid("results", len(results), "must match the %d games", len(games))
		}

		header := append([]string{"game"}, numberHeader()...)
		header = append(header, "sum", "evens")
		if results != nil {
			header = append(header, "mean", "min", "max")
		}

		rows := make([][]string, 0, len(games))
		for i, g := range games {
			row := append([]string{strconv.Itoa(i + 1)}, numberCells(g)...)
			row = append(row, strconv.Itoa(g.Sum()), strconv.Itoa(g.Evens()))
			if results != nil {
				r := results[i]
				row = append(row, ftoa(r.Mean), strconv.Itoa(r.Min), strconv.Itoa(r.Max))
			}
			rows = append(rows, row)
		}
		return writeAll(w, header, rows)
	}
}

// Strategies lists a comparison in rank order. Unranked strategies have an
// empty rank and score.
func Strategies(cmp *strategy.Comparison) Table {
	return func(w io.Writer) error {
		header := []string{"rank", "strategy", "base_size", "games", "score", "status"}
		rows := make([][]string, 0, len(cmp.Outcomes))
		rank := 0
		for _, o := range cmp.Outcomes {
			rankCell, scoreCell := "", ""
			if o.Status == strategy.StatusRanked {
				rank++
				rankCell = strconv.Itoa(rank)
				scoreCell = ftoa(o.Score)
			}
			rows = append(rows, []string{
				rankCell,
				o.Strategy,
				strconv.Itoa(o.Base.Len()),
				strconv.Itoa(len(o.Games)),
				scoreCell,
				string(o.Status),
			})
		}
		return writeAll(w, header, rows)
	}
}

// Coverage lists the games picked by the optimizer with their gains
func Coverage(sel *coverage.Selection) Table {
	return func(w io.Writer) error {
		header := append([]string{"game"}, numberHeader()...)
		header = append(header, "new_numbers", "new_pairs")

		rows := make([][]string, 0, len(sel.Picks))
		for i, p := range sel.Picks {
			row := append([]string{strconv.Itoa(i + 1)}, numberCells(p.Game)...)
			row = append(row, strconv.Itoa(p.NewNumbers), strconv.Itoa(p.NewPairs))
			rows = append(rows, row)
		}
		return writeAll(w, header, rows)
	}
}

// Frequency lists every number with its count, score, gap and class
func Frequency(a *frequency.Analysis, cls classify.Classification) Table {
	return func(w io.Writer) error {
		header := []string{"number", "count", "score", "gap", "class"}
		rows := make([][]string, 0, lotto.Universe)
		for n := lotto.MinNumber; n <= lotto.MaxNumber; n++ {
			rows = append(rows, []string{
				strconv.Itoa(n),
				strconv.Itoa(a.Counts[n]),
				ftoa(a.Scores[n]),
				strconv.Itoa(a.Gaps[n]),
				string(cls.Label(n)),
			})
		}
		return writeAll(w, header, rows)
	}
}
