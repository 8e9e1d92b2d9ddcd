package strategy

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/lotofacil/internal/classify"
	"github.com/lox/lotofacil/internal/frequency"
	"github.com/lox/lotofacil/internal/generator"
	"github.com/lox/lotofacil/internal/randutil"
	"github.com/lox/lotofacil/lotto"
)

func randomHistory(t *testing.T, seed int64, n int) lotto.History {
	t.Helper()
	rng := randutil.New(seed)
	draws := make([]lotto.Draw, n)
	for i := range draws {
		perm := rng.Perm(lotto.Universe)[:lotto.DrawSize]
		nums := make([]int, len(perm))
		for j, p := range perm {
			nums[j] = p + 1
		}
		draws[i] = lotto.MustDraw(nums...)
	}
	return lotto.NewHistory(draws)
}

func classification(t *testing.T, h lotto.History, hot, cold int) classify.Classification {
	t.Helper()
	a, err := frequency.Compute(h)
	require.NoError(t, err)
	c, err := classify.Classify(a, hot, cold)
	require.NoError(t, err)
	return c
}

func openConstraints() generator.Constraints {
	return generator.Constraints{SumMin: 0, SumMax: 400, EvenMin: 0, EvenMax: 15}
}

func TestBases(t *testing.T) {
	t.Parallel()

	c := classify.Classification{
		Hot:  []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
		Cold: []int{25, 24, 23, 22, 21, 20, 19, 18, 17, 16, 15, 14, 13, 12, 11},
	}

	assert.Equal(t, lotto.Range(1, 15).Union(lotto.Range(21, 25)), HotHeavy{Mix: 5}.Base(c))
	assert.Equal(t, lotto.Range(1, 8).Union(lotto.Range(18, 25)), Balanced{}.Base(c))
	assert.Equal(t, lotto.Range(1, 5).Union(lotto.Range(11, 25)), ColdHeavy{Mix: 5}.Base(c))
	assert.Equal(t, lotto.All(), Universe{}.Base(c))
}

func TestByName(t *testing.T) {
	t.Parallel()

	s, err := ByName("cold-heavy", 3)
	require.NoError(t, err)
	assert.Equal(t, ColdHeavy{Mix: 3}, s)

	_, err = ByName("lucky", 3)
	require.ErrorIs(t, err, lotto.ErrInvalidInput)
}

func TestCompareRanksAndSkips(t *testing.T) {
	t.Parallel()

	h := randomHistory(t, 11, 60)
	// 12 hot / 12 cold: balanced gets 6+6 numbers and must be skipped
	cls := classification(t, h, 12, 12)

	cmp, err := Compare(context.Background(), cls, h, Builtin(DefaultMix), Options{
		Quantity:    8,
		Constraints: openConstraints(),
		Seed:        99,
		Logger:      zerolog.Nop(),
	})
	require.NoError(t, err)
	require.Len(t, cmp.Outcomes, 3)
	assert.Equal(t, 60, cmp.Draws)

	last := cmp.Outcomes[2]
	assert.Equal(t, "balanced", last.Strategy)
	assert.Equal(t, StatusSkipped, last.Status)
	require.ErrorIs(t, last.Err, lotto.ErrInsufficientBase)

	for _, o := range cmp.Outcomes[:2] {
		assert.Equal(t, StatusRanked, o.Status)
		assert.Len(t, o.Games, 8)
		assert.Len(t, o.Results, 8)
		assert.Greater(t, o.Score, 0.0)
	}
	assert.GreaterOrEqual(t, cmp.Outcomes[0].Score, cmp.Outcomes[1].Score)

	best, ok := cmp.Best()
	require.True(t, ok)
	assert.Equal(t, cmp.Outcomes[0].Strategy, best.Strategy)
}

func TestCompareScoreIsMeanOfMeans(t *testing.T) {
	t.Parallel()

	h := randomHistory(t, 4, 30)
	cls := classification(t, h, 15, 15)

	cmp, err := Compare(context.Background(), cls, h, []Strategy{HotHeavy{Mix: 5}}, Options{
		Quantity:    5,
		Constraints: openConstraints(),
		Seed:        1,
		Logger:      zerolog.Nop(),
	})
	require.NoError(t, err)

	o := cmp.Outcomes[0]
	sum := 0.0
	for _, r := range o.Results {
		sum += r.Mean
	}
	assert.InDelta(t, sum/float64(len(o.Results)), o.Score, 1e-9)
}

func TestCompareIsReproducible(t *testing.T) {
	t.Parallel()

	h := randomHistory(t, 21, 40)
	cls := classification(t, h, 15, 15)
	opts := Options{Quantity: 6, Constraints: generator.DefaultConstraints(), Seed: 77, Logger: zerolog.Nop()}

	a, err := Compare(context.Background(), cls, h, Builtin(DefaultMix), opts)
	require.NoError(t, err)
	b, err := Compare(context.Background(), cls, h, Builtin(DefaultMix), opts)
	require.NoError(t, err)

	require.Len(t, a.Outcomes, 3)
	for i := range a.Outcomes {
		assert.Equal(t, a.Outcomes[i].Strategy, b.Outcomes[i].Strategy)
		assert.Equal(t, a.Outcomes[i].Games, b.Outcomes[i].Games)
		assert.Equal(t, a.Outcomes[i].Score, b.Outcomes[i].Score)
	}
}

func TestCompareUnsatisfiableIsEmptyNotError(t *testing.T) {
	t.Parallel()

	h := randomHistory(t, 8, 10)
	cls := classification(t, h, 15, 15)

	cmp, err := Compare(context.Background(), cls, h, []Strategy{Universe{}}, Options{
		Quantity:      2,
		Constraints:   generator.Constraints{SumMin: 400, SumMax: 500, EvenMin: 0, EvenMax: 15},
		AttemptFactor: 10,
		Logger:        zerolog.Nop(),
	})
	require.NoError(t, err)
	o := cmp.Outcomes[0]
	assert.Equal(t, StatusEmpty, o.Status)
	assert.Equal(t, 2, o.Shortfall)
	assert.Equal(t, 20, o.Attempts)

	_, ok := cmp.Best()
	assert.False(t, ok)
}

func TestCompareHonoursCancellation(t *testing.T) {
	t.Parallel()

	h := randomHistory(t, 8, 10)
	cls := classification(t, h, 15, 15)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Compare(ctx, cls, h, Builtin(DefaultMix), Options{Quantity: 1, Constraints: openConstraints(), Logger: zerolog.Nop()})
	require.ErrorIs(t, err, context.Canceled)
}
