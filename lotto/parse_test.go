package lotto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		minSize   int
		want      []int
		wantField string
	}{
		{
			name:    "sixteen numbers with spaces",
			input:   " 1, 2,3,4,5,6,7,8,9,10,11,12,13,14,15, 16 ",
			minSize: MinCoveragePool,
			want:    Range(1, 16).Numbers(),
		},
		{
			name:    "duplicates collapse before counting",
			input:   "16,1,2,3,4,5,6,7,8,9,10,11,12,13,14,15,16,1",
			minSize: MinCoveragePool,
			want:    Range(1, 16).Numbers(),
		},
		{
			name:      "fifteen rejected for optimizer",
			input:     "1,2,3,4,5,6,7,8,9,10,11,12,13,14,15",
			minSize:   MinCoveragePool,
			wantField: "pool",
		},
		{
			name:    "fifteen accepted for generic pool",
			input:   "1,2,3,4,5,6,7,8,9,10,11,12,13,14,15",
			minSize: MinPoolSize,
			want:    Range(1, 15).Numbers(),
		},
		{
			name:      "too many",
			input:     "1,2,3,4,5,6,7,8,9,10,11,12,13,14,15,16,17,18,19,20,21",
			minSize:   MinCoveragePool,
			wantField: "pool",
		},
		{
			name:      "out of range",
			input:     "0,1,2,3,4,5,6,7,8,9,10,11,12,13,14,15",
			minSize:   MinCoveragePool,
			wantField: "pool",
		},
		{
			name:      "not a number",
			input:     "1,2,x",
			minSize:   MinCoveragePool,
			wantField: "pool",
		},
		{
			name:      "empty",
			input:     "   ",
			minSize:   MinCoveragePool,
			wantField: "pool",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParsePool(tt.input, tt.minSize)
			if tt.wantField != "" {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantField, verr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Numbers())
		})
	}
}

func TestParseGame(t *testing.T) {
	t.Parallel()

	g, err := ParseGame("15,14,13,12,11,10,9,8,7,6,5,4,3,2,1")
	require.NoError(t, err)
	assert.Equal(t, Range(1, 15), g)

	_, err = ParseGame("1,2,3")
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "exactly 15")
}
