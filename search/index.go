package search

import (
	"fmt"
	"sync"

	"github.com/semasia/passage/core"
	"github.com/semasia/passage/rank"
)

// Result pairs a chunk with its similarity score for a query.
type Result struct {
	Chunk core.Chunk
	Score float64
}

// Index holds chunks and their embedding vectors in insertion order.
// It is safe for concurrent use.
type Index struct {
	mu      sync.RWMutex
	chunks  []core.Chunk
	vectors [][]float64
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{}
}

// Add appends a chunk and its vector to the index. Every vector must
// have the same dimensionality as the first one added.
func (ix *Index) Add(chunk core.Chunk, vector []float64) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if len(ix.vectors) > 0 && len(vector) != len(ix.vectors[0]) {
		return fmt.Errorf("%w: index has %d dimensions, vector has %d",
			rank.ErrDimensionMismatch, len(ix.vectors[0]), len(vector))
	}

	ix.chunks = append(ix.chunks, chunk)
	ix.vectors = append(ix.vectors, vector)
	return nil
}

// Search ranks the indexed chunks against the query vector and returns
// the top k matches in descending score order.
func (ix *Index) Search(query []float64, k int) ([]Result, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	matches, err := rank.TopK(query, ix.vectors, k)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(matches))
	for i, match := range matches {
		results[i] = Result{Chunk: ix.chunks[match.Index], Score: match.Score}
	}
	return results, nil
}

// Len returns the number of indexed chunks.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.chunks)
}

// Dimensions returns the vector dimensionality, or 0 for an empty index.
func (ix *Index) Dimensions() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if len(ix.vectors) == 0 {
		return 0
	}
	return len(ix.vectors[0])
}
