package rank

import (
	"fmt"
	"math"
)

// Similarity computes the cosine similarity of two vectors: the dot
// product divided by the product of the norms, equal to 1 minus the
// cosine distance. The result lies in [-1, 1]; for the embedding
// spaces in use it lands in [0, 1].
//
// Both vectors must have the same length, and neither may have zero
// norm. Errors wrap ErrDimensionMismatch and ErrDegenerateVector and
// name the offending side.
func Similarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: len(a)=%d len(b)=%d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 {
		return 0, fmt.Errorf("%w: a", ErrDegenerateVector)
	}
	if normB == 0 {
		return 0, fmt.Errorf("%w: b", ErrDegenerateVector)
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
