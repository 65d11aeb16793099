package rank

import "fmt"

// Matrix computes the full pairwise similarity matrix for a set of
// vectors, diagonal included. The first invalid pair fails the whole
// call with both positions named.
func Matrix(vectors [][]float64) ([][]float64, error) {
	m := make([][]float64, len(vectors))
	for i := range vectors {
		m[i] = make([]float64, len(vectors))
		for j := range vectors {
			score, err := Similarity(vectors[i], vectors[j])
			if err != nil {
				return nil, fmt.Errorf("vectors %d and %d: %w", i, j, err)
			}
			m[i][j] = score
		}
	}
	return m, nil
}
