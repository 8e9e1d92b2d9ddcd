package lotto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetOperations(t *testing.T) {
	t.Parallel()

	s := MustSet(1, 2, 3, 24, 25)
	assert.Equal(t, 5, s.Len())
	assert.True(t, s.Has(1))
	assert.True(t, s.Has(25))
	assert.False(t, s.Has(4))
	assert.False(t, s.Has(0))
	assert.False(t, s.Has(26))
	assert.Equal(t, []int{1, 2, 3, 24, 25}, s.Numbers())
	assert.Equal(t, 55, s.Sum())
	assert.Equal(t, 2, s.Evens()) // 2 and 24
	assert.Equal(t, "01 02 03 24 25", s.String())
}

func TestSetAlgebra(t *testing.T) {
	t.Parallel()

	a := Range(1, 15)
	b := Range(11, 25)

	assert.Equal(t, 5, a.Matches(b))
	assert.Equal(t, Range(11, 15), a.Intersect(b))
	assert.Equal(t, All(), a.Union(b))
	assert.Equal(t, Range(1, 10), a.Minus(b))
	assert.True(t, All().Contains(a))
	assert.False(t, a.Contains(b))
	assert.Equal(t, Universe, All().Len())
	assert.Equal(t, 325, All().Sum())
	assert.Equal(t, 12, All().Evens())
}

func TestNewSetRejectsOutOfRange(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 26, -3} {
		_, err := NewSet(1, n)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidInput))

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, n, verr.Value)
	}
}

func TestNewSetCollapsesDuplicates(t *testing.T) {
	t.Parallel()

	s, err := NewSet(5, 5, 7)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 7}, s.Numbers())
}

func TestRangeClamps(t *testing.T) {
	t.Parallel()

	assert.Equal(t, All(), Range(-10, 40))
	assert.Equal(t, Set(0), Range(10, 5))
}
