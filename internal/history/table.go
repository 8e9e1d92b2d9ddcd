// Package history loads draw histories from rectangular tables (CSV or XLSX,
// local or remote) and caches them.
//
// The last 15 columns of a table are the drawn numbers; any other columns are
// metadata. Histories are returned oldest first: when the table has a
// contest column the rows are ordered by contest number, otherwise file
// order is taken as chronological.
package history

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/lox/lotofacil/lotto"
)

var (
	contestHeaders = []string{"concurso", "contest", "draw", "sorteio"}
	dateHeaders    = []string{"data", "date", "data sorteio", "data do sorteio"}
)

// TableError locates a malformed cell
type TableError struct {
	Row    int // 1-based, as in a spreadsheet
	Column int // 1-based
	Err    error
}

func (e *TableError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("row %d column %d: %v", e.Row, e.Column, e.Err)
	}
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *TableError) Unwrap() error {
	return e.Err
}

// ParseTable converts rows into a history. A first row with no numeric cell
// is treated as the header. Any malformed row fails the whole load; blank
// rows are ignored.
func ParseTable(rows [][]string) (lotto.History, error) {
	rows = trimBlank(rows)
	if len(rows) == 0 {
		return lotto.History{}, fmt.Errorf("table has no rows: %w", lotto.ErrDataUnavailable)
	}

	start := 0
	contestCol, dateCol := -1, -1
	if isHeader(rows[0]) {
		contestCol, dateCol = metadataColumns(rows[0])
		start = 1
	}

	draws := make([]lotto.Draw, 0, len(rows)-start)
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}
		d, err := parseRow(row, i+1)
		if err != nil {
			return lotto.History{}, err
		}
		if contestCol >= 0 && contestCol < len(row)-lotto.DrawSize {
			if d.Contest, err = parseInt(row[contestCol]); err != nil {
				return lotto.History{}, &TableError{Row: i + 1, Column: contestCol + 1, Err: err}
			}
		}
		if dateCol >= 0 && dateCol < len(row)-lotto.DrawSize {
			d.Date = strings.TrimSpace(row[dateCol])
		}
		draws = append(draws, d)
	}

	if len(draws) == 0 {
		return lotto.History{}, fmt.Errorf("table has no draws: %w", lotto.ErrDataUnavailable)
	}
	if contestCol >= 0 {
		sort.SliceStable(draws, func(i, j int) bool {
			return draws[i].Contest < draws[j].Contest
		})
	}
	return lotto.NewHistory(draws), nil
}

func parseRow(row []string, rowNum int) (lotto.Draw, error) {
	if len(row) < lotto.DrawSize {
		return lotto.Draw{}, &TableError{
			Row: rowNum,
			Err: lotto.Invalid("row", len(row), "must have at least %d columns", lotto.DrawSize),
		}
	}

	offset := len(row) - lotto.DrawSize
	nums := make([]int, lotto.DrawSize)
	for j, cell := range row[offset:] {
		n, err := parseInt(cell)
		if err != nil {
			return lotto.Draw{}, &TableError{Row: rowNum, Column: offset + j + 1, Err: err}
		}
		nums[j] = n
	}

	d, err := lotto.NewDraw(nums)
	if err != nil {
		return lotto.Draw{}, &TableError{Row: rowNum, Err: err}
	}
	return d, nil
}

// parseInt accepts integers written as ints, floats ("7.0") or with a
// decimal comma ("7,0")
func parseInt(cell string) (int, error) {
	s := strings.TrimSpace(cell)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, lotto.Invalid("cell", cell, "is not an integer")
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, lotto.Invalid("cell", cell, "is out of range")
	}
	return int(f), nil
}

func isHeader(row []string) bool {
	for _, cell := range row {
		if _, err := parseInt(cell); err == nil {
			return false
		}
	}
	return true
}

func metadataColumns(header []string) (contest, date int) {
	contest, date = -1, -1
	limit := len(header) - lotto.DrawSize
	for i := 0; i < limit; i++ {
		name := strings.ToLower(strings.TrimSpace(header[i]))
		if contest < 0 && matches(name, contestHeaders) {
			contest = i
		}
		if date < 0 && matches(name, dateHeaders) {
			date = i
		}
	}
	return contest, date
}

func matches(name string, candidates []string) bool {
	for _, c := range candidates {
		if name == c {
			return true
		}
	}
	return false
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func trimBlank(rows [][]string) [][]string {
	for len(rows) > 0 && isBlank(rows[0]) {
		rows = rows[1:]
	}
	return rows
}
