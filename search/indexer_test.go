package search

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semasia/passage/ai/mock"
	"github.com/semasia/passage/core"
	"github.com/semasia/passage/rank"
	"github.com/semasia/passage/storage"
	"github.com/semasia/passage/storage/badger"
)

func setupChunkRepository(t *testing.T) storage.ChunkRepository {
	docRepo, chunkRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)

	t.Cleanup(func() {
		chunkRepo.Close()
		docRepo.Close()
		backend.Close()
	})

	return chunkRepo
}

func storeChunks(t *testing.T, repo storage.ChunkRepository, docID core.ID, texts ...string) {
	chunks := make([]*core.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = &core.Chunk{Seq: i, Text: text}
	}
	require.NoError(t, repo.PutChunks(context.Background(), docID, chunks))
}

func testConfig() *IndexerConfig {
	return &IndexerConfig{
		BatchSize:      3,
		Workers:        2,
		MaxRetries:     3,
		RetryDelay:     10 * time.Millisecond,
		ReportInterval: 3,
	}
}

func TestNewIndexer(t *testing.T) {
	chunkRepo := setupChunkRepository(t)
	embedder := mock.NewMockEmbedder()

	t.Run("valid configuration", func(t *testing.T) {
		indexer, err := NewIndexer(chunkRepo, embedder, testConfig(), io.Discard)
		require.NoError(t, err)
		assert.NotNil(t, indexer)
	})

	t.Run("nil config uses defaults", func(t *testing.T) {
		indexer, err := NewIndexer(chunkRepo, embedder, nil, io.Discard)
		require.NoError(t, err)
		assert.NotNil(t, indexer)
	})

	t.Run("nil progress writer discards output", func(t *testing.T) {
		indexer, err := NewIndexer(chunkRepo, embedder, testConfig(), nil)
		require.NoError(t, err)
		assert.NotNil(t, indexer)
	})

	t.Run("nil chunk repository", func(t *testing.T) {
		_, err := NewIndexer(nil, embedder, testConfig(), io.Discard)
		assert.Equal(t, ErrChunkRepositoryRequired, err)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewIndexer(chunkRepo, nil, testConfig(), io.Discard)
		assert.Equal(t, ErrEmbedderRequired, err)
	})
}

func TestDefaultIndexerConfig(t *testing.T) {
	config := DefaultIndexerConfig()

	assert.Greater(t, config.BatchSize, 0, "batch size should be positive")
	assert.Greater(t, config.Workers, 0, "workers should be positive")
	assert.Greater(t, config.MaxRetries, 0, "max retries should be positive")
	assert.Greater(t, config.RetryDelay, time.Duration(0), "retry delay should be positive")
	assert.Greater(t, config.ReportInterval, 0, "report interval should be positive")
}

func TestIndexerBuild(t *testing.T) {
	chunkRepo := setupChunkRepository(t)
	storeChunks(t, chunkRepo, core.ID(1), "alpha", "bravo", "charlie", "delta", "echo")
	storeChunks(t, chunkRepo, core.ID(2), "foxtrot", "golf", "hotel", "india", "juliett")

	var buf bytes.Buffer
	embedder := mock.NewMockEmbedder()

	indexer, err := NewIndexer(chunkRepo, embedder, testConfig(), &buf)
	require.NoError(t, err)

	index, err := indexer.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, index.Len())
	assert.Equal(t, 384, index.Dimensions())

	output := buf.String()
	assert.Contains(t, output, "10/10", "should show completion")
}

func TestIndexerBuild_AlignsVectorsWithChunks(t *testing.T) {
	chunkRepo := setupChunkRepository(t)

	texts := make([]string, 20)
	for i := 0; i < 20; i++ {
		texts[i] = fmt.Sprintf("chunk %02d", i)
	}
	storeChunks(t, chunkRepo, core.ID(7), texts...)

	embedder := mock.NewMockEmbedder()
	config := &IndexerConfig{
		BatchSize:      3,
		Workers:        4,
		MaxRetries:     1,
		RetryDelay:     time.Millisecond,
		ReportInterval: 5,
	}

	indexer, err := NewIndexer(chunkRepo, embedder, config, io.Discard)
	require.NoError(t, err)

	index, err := indexer.Build(context.Background())
	require.NoError(t, err)
	require.Equal(t, 20, index.Len())

	// The mock embedder is deterministic per text, so querying with one
	// chunk's own embedding must rank that chunk first with a perfect
	// score. Batches complete out of order across workers; this fails
	// if a vector lands in the wrong slot.
	query, err := embedder.EmbedText(context.Background(), "chunk 13")
	require.NoError(t, err)

	results, err := index.Search(query, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "chunk 13", results[0].Chunk.Text)
	assert.InDelta(t, 1.0, results[0].Score, 1e-6)
}

func TestIndexerBuild_EmptyStore(t *testing.T) {
	chunkRepo := setupChunkRepository(t)

	var buf bytes.Buffer
	embedder := mock.NewMockEmbedder()

	indexer, err := NewIndexer(chunkRepo, embedder, testConfig(), &buf)
	require.NoError(t, err)

	index, err := indexer.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, index.Len())
	assert.Contains(t, buf.String(), "No chunks", "should report empty store")
}

func TestIndexerBuild_EmbeddingError(t *testing.T) {
	chunkRepo := setupChunkRepository(t)
	storeChunks(t, chunkRepo, core.ID(1), "alpha", "bravo")

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float64, error) {
		return nil, errors.New("persistent error")
	}

	config := testConfig()
	config.MaxRetries = 2

	indexer, err := NewIndexer(chunkRepo, embedder, config, io.Discard)
	require.NoError(t, err)

	_, err = indexer.Build(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persistent error")
}

func TestIndexerBuild_CountMismatch(t *testing.T) {
	chunkRepo := setupChunkRepository(t)
	storeChunks(t, chunkRepo, core.ID(1), "alpha", "bravo", "charlie")

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float64, error) {
		return [][]float64{{1, 0, 0}}, nil // Always one vector, whatever was asked
	}

	indexer, err := NewIndexer(chunkRepo, embedder, testConfig(), io.Discard)
	require.NoError(t, err)

	_, err = indexer.Build(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding count mismatch")
}

func TestIndexerBuild_InconsistentDimensions(t *testing.T) {
	chunkRepo := setupChunkRepository(t)
	storeChunks(t, chunkRepo, core.ID(1), "regular", "short one")

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float64, error) {
		out := make([][]float64, len(texts))
		for i, text := range texts {
			if strings.Contains(text, "short") {
				out[i] = []float64{1, 0}
			} else {
				out[i] = []float64{1, 0, 0}
			}
		}
		return out, nil
	}

	config := testConfig()
	config.BatchSize = 1

	indexer, err := NewIndexer(chunkRepo, embedder, config, io.Discard)
	require.NoError(t, err)

	_, err = indexer.Build(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, rank.ErrDimensionMismatch)
}

func TestIndexerBuild_ContextCancellation(t *testing.T) {
	chunkRepo := setupChunkRepository(t)

	texts := make([]string, 10)
	for i := 0; i < 10; i++ {
		texts[i] = fmt.Sprintf("chunk %d", i)
	}
	storeChunks(t, chunkRepo, core.ID(1), texts...)

	ctx, cancel := context.WithCancel(context.Background())

	callCount := 0
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float64, error) {
		callCount++
		if callCount == 2 {
			cancel()
		}
		result := make([][]float64, len(texts))
		for i := range result {
			result[i] = []float64{1.0, 0.0, 0.0}
		}
		return result, nil
	}

	config := testConfig()
	config.Workers = 1

	indexer, err := NewIndexer(chunkRepo, embedder, config, io.Discard)
	require.NoError(t, err)

	_, err = indexer.Build(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIndexerBuild_ProgressOutput(t *testing.T) {
	chunkRepo := setupChunkRepository(t)

	texts := make([]string, 25)
	for i := 0; i < 25; i++ {
		texts[i] = fmt.Sprintf("chunk %d", i)
	}
	storeChunks(t, chunkRepo, core.ID(1), texts...)

	var buf bytes.Buffer
	embedder := mock.NewMockEmbedder()
	config := &IndexerConfig{
		BatchSize:      5,
		Workers:        2,
		MaxRetries:     3,
		RetryDelay:     10 * time.Millisecond,
		ReportInterval: 10,
	}

	indexer, err := NewIndexer(chunkRepo, embedder, config, &buf)
	require.NoError(t, err)

	_, err = indexer.Build(context.Background())
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Progress:", "should show progress")
	assert.Contains(t, output, "25/25", "should show final count")
}
