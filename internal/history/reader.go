package history

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/lox/lotofacil/lotto"
)

// ReadCSV reads a comma- or semicolon-delimited table. The delimiter is
// whichever appears more often in the first line.
func ReadCSV(r io.Reader) (lotto.History, error) {
	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return lotto.History{}, fmt.Errorf("read csv: %w", err)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = detectDelimiter(data)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return lotto.History{}, fmt.Errorf("parse csv: %w", err)
	}
	return ParseTable(rows)
}

// ReadXLSX reads a sheet of a workbook; an empty sheet name selects the
// first sheet
func ReadXLSX(r io.Reader, sheet string) (lotto.History, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return lotto.History{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return lotto.History{}, fmt.Errorf("workbook has no sheets: %w", lotto.ErrDataUnavailable)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return lotto.History{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return ParseTable(rows)
}

// Load reads a .csv or .xlsx file from disk
func Load(path, sheet string) (lotto.History, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return lotto.History{}, err
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return ReadXLSX(f, sheet)
	case ".csv", ".txt", "":
		return ReadCSV(f)
	default:
		return lotto.History{}, fmt.Errorf("unsupported file type %q", ext)
	}
}

func detectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}
