package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/lotofacil/internal/backtest"
	"github.com/lox/lotofacil/internal/classify"
	"github.com/lox/lotofacil/internal/coverage"
	"github.com/lox/lotofacil/internal/frequency"
	"github.com/lox/lotofacil/internal/generator"
	"github.com/lox/lotofacil/internal/strategy"
	"github.com/lox/lotofacil/lotto"
)

func sampleHistory() lotto.History {
	return lotto.NewHistory([]lotto.Draw{
		lotto.MustDraw(lotto.Range(1, 15).Numbers()...),
		lotto.MustDraw(lotto.Range(11, 25).Numbers()...),
	})
}

func TestFrequencyPlain(t *testing.T) {
	t.Parallel()

	a, err := frequency.Compute(sampleHistory())
	require.NoError(t, err)
	cls, err := classify.Classify(a, 5, 5)
	require.NoError(t, err)

	var buf bytes.Buffer
	New(&buf, true).Frequency(a, cls)

	out := buf.String()
	assert.Contains(t, out, "frequency over 2 draws")
	assert.Contains(t, out, "hot  11 12 13 14 15")
	assert.Contains(t, out, "cold 01 02 03 04 05")
	assert.NotContains(t, out, "\x1b[", "no escape codes without color")
}

func TestGamesReportsShortfall(t *testing.T) {
	t.Parallel()

	res := generator.Result{Games: []lotto.Set{lotto.Range(1, 15)}, Requested: 3, Attempts: 6000}

	var buf bytes.Buffer
	New(&buf, true).Games(res, nil)
	assert.Contains(t, buf.String(), "1 of 3 games in 6000 attempts")
	assert.Contains(t, buf.String(), "2 short")
	assert.Contains(t, buf.String(), "01 02 03")
}

func TestBacktestCarriesDisclaimer(t *testing.T) {
	t.Parallel()

	results, err := backtest.RunAll([]lotto.Set{lotto.Range(1, 15)}, sampleHistory())
	require.NoError(t, err)

	var buf bytes.Buffer
	New(&buf, true).Backtest(results)
	out := buf.String()
	assert.Contains(t, out, "mean 10.00")
	assert.Contains(t, out, "prize tiers 11:0 12:0 13:0 14:0 15:1")
	assert.Contains(t, out, Disclaimer)
}

func TestComparisonAndCoverage(t *testing.T) {
	t.Parallel()

	h := sampleHistory()
	a, err := frequency.Compute(h)
	require.NoError(t, err)
	cls, err := classify.Classify(a, 15, 15)
	require.NoError(t, err)

	cmp, err := strategy.Compare(context.Background(), cls, h, strategy.Builtin(strategy.DefaultMix), strategy.Options{
		Quantity:    2,
		Constraints: generator.Constraints{SumMin: 120, SumMax: 270, EvenMin: 0, EvenMax: 15},
		Seed:        1,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	p := New(&buf, true)
	p.Comparison(cmp)
	assert.Contains(t, buf.String(), "strategies over 2 draws")
	assert.Contains(t, buf.String(), "best ")

	sel, err := coverage.Optimize(lotto.Range(1, 16), 3)
	require.NoError(t, err)
	buf.Reset()
	p.Coverage(sel)
	assert.Contains(t, buf.String(), "numbers 16/16 (100%)")
}
