package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrix(t *testing.T) {
	vectors := [][]float64{
		{1, 0},
		{0, 1},
		{1, 1},
	}

	m, err := Matrix(vectors)
	require.NoError(t, err)
	require.Len(t, m, 3)

	for i := range m {
		require.Len(t, m[i], 3)
		assert.InDelta(t, 1.0, m[i][i], 1e-9, "diagonal at %d", i)
	}

	// Symmetry
	for i := range m {
		for j := range m {
			assert.InDelta(t, m[i][j], m[j][i], 1e-9, "asymmetry at %d,%d", i, j)
		}
	}

	assert.InDelta(t, 0.0, m[0][1], 1e-9)
	assert.InDelta(t, 0.7071067811865475, m[0][2], 1e-9)
	assert.InDelta(t, 0.7071067811865475, m[1][2], 1e-9)
}

func TestMatrix_Empty(t *testing.T) {
	m, err := Matrix(nil)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestMatrix_ErrorNamesBothPositions(t *testing.T) {
	vectors := [][]float64{
		{1, 0},
		{0, 0},
	}

	m, err := Matrix(vectors)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDegenerateVector)
	assert.Contains(t, err.Error(), "vectors 0 and 1")
	assert.Nil(t, m)
}
