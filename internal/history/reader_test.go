package history

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/lox/lotofacil/lotto"
)

const sampleCSV = `Concurso;Data;B1;B2;B3;B4;B5;B6;B7;B8;B9;B10;B11;B12;B13;B14;B15
1;29/09/2003;2;3;5;6;9;10;11;13;14;16;18;20;23;24;25
2;06/10/2003;1;4;5;6;7;9;11;12;13;15;16;19;20;23;24
`

func TestReadCSVSemicolon(t *testing.T) {
	t.Parallel()

	h, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Equal(t, 2, h.Len())
	assert.Equal(t, lotto.MustSet(2, 3, 5, 6, 9, 10, 11, 13, 14, 16, 18, 20, 23, 24, 25), h.At(0).Numbers)
	assert.Equal(t, "06/10/2003", h.At(1).Date)
}

func TestReadCSVComma(t *testing.T) {
	t.Parallel()

	csv := strings.ReplaceAll(sampleCSV, ";", ",")
	h, err := ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, h.Len())
}

func workbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestReadXLSX(t *testing.T) {
	t.Parallel()

	header := []any{"Concurso", "Data Sorteio"}
	for i := 1; i <= 15; i++ {
		header = append(header, "Bola")
	}
	row := []any{1, "29/09/2003"}
	for _, n := range lotto.Range(11, 25).Numbers() {
		row = append(row, float64(n))
	}

	data := workbook(t, [][]any{header, row})
	h, err := ReadXLSX(bytes.NewReader(data), "")
	require.NoError(t, err)
	require.Equal(t, 1, h.Len())
	assert.Equal(t, lotto.Range(11, 25), h.At(0).Numbers)
	assert.Equal(t, 1, h.At(0).Contest)

	_, err = ReadXLSX(bytes.NewReader(data), "Missing")
	assert.Error(t, err)
}

func TestLoadDispatchesOnExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "draws.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSV), 0o644))

	h, err := Load(csvPath, "")
	require.NoError(t, err)
	assert.Equal(t, 2, h.Len())

	_, err = Load(filepath.Join(dir, "draws.json"), "")
	assert.Error(t, err)
}
