package search

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semasia/passage/ai/mock"
	"github.com/semasia/passage/core"
)

func buildTestIndex(t *testing.T) *Index {
	index := NewIndex()

	entries := []struct {
		text   string
		vector []float64
	}{
		{"[Ada Lovelace] Lovelace wrote the first published program.", []float64{0.9, 0.1, 0.0}},
		{"[Ada Lovelace] Her notes describe the Analytical Engine.", []float64{0.85, 0.15, 0.0}},
		{"[Bread] Sourdough needs a long, slow fermentation.", []float64{0.1, 0.1, 0.8}},
	}
	for i, entry := range entries {
		require.NoError(t, index.Add(core.Chunk{Seq: i, Text: entry.text}, entry.vector))
	}

	return index
}

func TestNewSearcher(t *testing.T) {
	index := NewIndex()
	embedder := mock.NewMockEmbedder()

	t.Run("valid configuration", func(t *testing.T) {
		searcher, err := NewSearcher(index, embedder)
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("with custom logger", func(t *testing.T) {
		logger := slog.Default()
		searcher, err := NewSearcher(index, embedder, WithLogger(logger))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		searcher, err := NewSearcher(index, embedder, WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("nil index", func(t *testing.T) {
		_, err := NewSearcher(nil, embedder)
		assert.Equal(t, ErrIndexRequired, err)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewSearcher(index, nil)
		assert.Equal(t, ErrEmbedderRequired, err)
	})
}

func TestSearch_RanksBySimilarity(t *testing.T) {
	index := buildTestIndex(t)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float64, error) {
		// Close to the two Lovelace chunks, far from the bread chunk
		return []float64{0.88, 0.12, 0.0}, nil
	}

	searcher, err := NewSearcher(index, embedder)
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), "who wrote the first program", 10)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i := 0; i < len(results)-1; i++ {
		assert.GreaterOrEqual(t, results[i].Score, results[i+1].Score)
	}
	assert.Contains(t, results[0].Chunk.Text, "Lovelace")
	assert.Contains(t, results[2].Chunk.Text, "Sourdough")
}

func TestSearch_LimitsToK(t *testing.T) {
	index := buildTestIndex(t)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float64, error) {
		return []float64{0.9, 0.1, 0.0}, nil
	}

	searcher, err := NewSearcher(index, embedder)
	require.NoError(t, err)

	results, err := searcher.Search(context.Background(), "query", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearch_EmptyQuery(t *testing.T) {
	index := buildTestIndex(t)
	searcher, err := NewSearcher(index, mock.NewMockEmbedder())
	require.NoError(t, err)

	_, err = searcher.Search(context.Background(), "", 10)
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, err = searcher.Search(context.Background(), "   \t\n", 10)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestSearch_EmptyIndex(t *testing.T) {
	searcher, err := NewSearcher(NewIndex(), mock.NewMockEmbedder())
	require.NoError(t, err)

	_, err = searcher.Search(context.Background(), "anything", 10)
	assert.ErrorIs(t, err, ErrEmptyIndex)
}

func TestSearch_EmbeddingError(t *testing.T) {
	index := buildTestIndex(t)

	expectedErr := errors.New("embedding service down")
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float64, error) {
		return nil, expectedErr
	}

	searcher, err := NewSearcher(index, embedder)
	require.NoError(t, err)

	_, err = searcher.Search(context.Background(), "query", 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
}

func TestSearchWithMonitor(t *testing.T) {
	index := buildTestIndex(t)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float64, error) {
		return []float64{0.9, 0.1, 0.0}, nil
	}

	searcher, err := NewSearcher(index, embedder)
	require.NoError(t, err)

	monitor := &testMonitor{}

	results, err := searcher.SearchWithMonitor(context.Background(), "test query", 2, monitor)
	require.NoError(t, err)
	assert.NotEmpty(t, results)

	assert.True(t, monitor.startCalled)
	assert.Equal(t, "test query", monitor.startQuery)
	assert.Equal(t, 2, monitor.startK)
	assert.True(t, monitor.completeCalled)
	assert.Equal(t, results, monitor.results)
	assert.NoError(t, monitor.err)
}

func TestSearchWithMonitor_EmbeddingError(t *testing.T) {
	index := buildTestIndex(t)

	expectedErr := errors.New("embedding service down")
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float64, error) {
		return nil, expectedErr
	}

	searcher, err := NewSearcher(index, embedder)
	require.NoError(t, err)

	monitor := &testMonitor{}

	_, err = searcher.SearchWithMonitor(context.Background(), "query", 10, monitor)
	require.Error(t, err)

	assert.True(t, monitor.startCalled)
	assert.False(t, monitor.completeCalled)
	assert.ErrorIs(t, monitor.err, expectedErr)
}

func TestSearchWithMonitor_ValidationSkipsMonitor(t *testing.T) {
	searcher, err := NewSearcher(NewIndex(), mock.NewMockEmbedder())
	require.NoError(t, err)

	monitor := &testMonitor{}

	_, err = searcher.SearchWithMonitor(context.Background(), "", 10, monitor)
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.False(t, monitor.startCalled, "rejected queries should not reach the monitor")
}

// testMonitor is a simple test implementation of SearchMonitor
type testMonitor struct {
	startCalled    bool
	startQuery     string
	startK         int
	completeCalled bool
	results        []Result
	err            error
}

func (m *testMonitor) OnSearchStart(query string, k int) {
	m.startCalled = true
	m.startQuery = query
	m.startK = k
}

func (m *testMonitor) OnSearchComplete(results []Result) {
	m.completeCalled = true
	m.results = results
}

func (m *testMonitor) OnSearchError(err error) {
	m.err = err
}
