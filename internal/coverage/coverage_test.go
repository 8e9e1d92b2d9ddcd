package coverage

import (
	"testing"

	"github.com/lox/lotofacil/lotto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidates(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 16, Candidates(16))
	assert.Equal(t, 816, Candidates(18))
	assert.Equal(t, 15504, Candidates(20))
}

func TestEnumerateOrder(t *testing.T) {
	t.Parallel()

	pool := lotto.Range(1, 16)
	games := Enumerate(pool)
	require.Len(t, games, 16)

	// Lexicographic: the first combination is the 15 smallest numbers
	assert.Equal(t, lotto.Range(1, 15), games[0])
	assert.Equal(t, lotto.Range(2, 16), games[len(games)-1])

	seen := map[lotto.Set]bool{}
	for _, g := range games {
		assert.Equal(t, 15, g.Len())
		assert.True(t, pool.Contains(g))
		assert.False(t, seen[g])
		seen[g] = true
	}
}

func TestOptimizeSixteenPool(t *testing.T) {
	t.Parallel()

	pool := lotto.MustSet(1, 3, 4, 6, 8, 9, 10, 12, 14, 15, 17, 19, 20, 22, 24, 25)
	sel, err := Optimize(pool, 5)
	require.NoError(t, err)

	require.LessOrEqual(t, len(sel.Picks), 5)
	for _, g := range sel.Games() {
		assert.Equal(t, 15, g.Len())
		assert.True(t, pool.Contains(g))
	}
	assert.LessOrEqual(t, sel.NumbersCovered, pool.Len())
	assert.Equal(t, 120, sel.TotalPairs)
	assert.LessOrEqual(t, sel.PairsCovered, sel.TotalPairs)

	// The first pick covers 15 numbers and 105 pairs from scratch
	first := sel.Picks[0]
	assert.Equal(t, 15, first.NewNumbers)
	assert.Equal(t, 105, first.NewPairs)
	assert.Equal(t, 2*15+105, first.Score)

	// The second pick adds the missing number and its 14 new pairs, so a
	// 16 pool is fully covered after two games
	assert.Equal(t, 16, sel.NumbersCovered)
	assert.Equal(t, 1.0, sel.NumberCoverage())
}

func TestOptimizeIsDeterministic(t *testing.T) {
	t.Parallel()

	pool := lotto.Range(3, 20)
	a, err := Optimize(pool, 12)
	require.NoError(t, err)
	b, err := Optimize(pool, 12)
	require.NoError(t, err)
	assert.Equal(t, a.Picks, b.Picks)
	assert.Equal(t, a.PairsCovered, b.PairsCovered)
}

func TestOptimizeExhaustsCandidates(t *testing.T) {
	t.Parallel()

	sel, err := Optimize(lotto.Range(1, 16), 16)
	require.NoError(t, err)
	assert.Len(t, sel.Picks, 16)
	assert.Equal(t, 120, sel.PairsCovered)
	assert.Equal(t, 1.0, sel.PairCoverage())

	seen := map[lotto.Set]bool{}
	for _, g := range sel.Games() {
		assert.False(t, seen[g], "game picked twice")
		seen[g] = true
	}
}

func TestOptimizeScoresNeverIncrease(t *testing.T) {
	t.Parallel()

	sel, err := Optimize(lotto.Range(1, 20), 30)
	require.NoError(t, err)
	require.Len(t, sel.Picks, 30)
	for i := 1; i < len(sel.Picks); i++ {
		assert.LessOrEqual(t, sel.Picks[i].Score, sel.Picks[i-1].Score, "pick %d", i)
	}
	assert.Equal(t, 20, sel.NumbersCovered)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		pool   lotto.Set
		target int
		field  string
	}{
		{name: "fifteen pool", pool: lotto.Range(1, 15), target: 1, field: "pool"},
		{name: "twenty one pool", pool: lotto.Range(1, 21), target: 1, field: "pool"},
		{name: "zero target", pool: lotto.Range(1, 16), target: 0, field: "coverage target"},
		{name: "target above combinations", pool: lotto.Range(1, 16), target: 17, field: "coverage target"},
		{name: "valid", pool: lotto.Range(1, 20), target: 15504},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Validate(tt.pool, tt.target)
			if tt.field == "" {
				require.NoError(t, err)
				return
			}
			var verr *lotto.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}
