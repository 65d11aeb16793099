// Copyright 2025 Semasia Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package search

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/semasia/passage/ai"
	"github.com/semasia/passage/core"
	"github.com/semasia/passage/storage"
)

// IndexerConfig holds configuration for the indexing process.
type IndexerConfig struct {
	// BatchSize is the number of chunks sent per embedding request.
	BatchSize int

	// Workers is the number of concurrent embedding requests.
	Workers int

	// MaxRetries is the maximum number of attempts per batch.
	MaxRetries int

	// RetryDelay is the initial delay between retries (doubles each attempt).
	RetryDelay time.Duration

	// ReportInterval is how often to report progress (in chunks).
	ReportInterval int
}

// DefaultIndexerConfig returns a config with sensible defaults.
func DefaultIndexerConfig() *IndexerConfig {
	return &IndexerConfig{
		BatchSize:      32,
		Workers:        4,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
		ReportInterval: 100,
	}
}

// Indexer embeds every stored chunk and builds an in-memory Index.
type Indexer struct {
	chunks   storage.ChunkRepository
	embedder ai.Embedder
	config   *IndexerConfig
	progress io.Writer
	logger   *slog.Logger
}

// NewIndexer creates an indexer over the given chunk repository and
// embedder. A nil config uses DefaultIndexerConfig; a nil progress
// writer discards progress output.
func NewIndexer(chunks storage.ChunkRepository, embedder ai.Embedder, config *IndexerConfig, progress io.Writer) (*Indexer, error) {
	if chunks == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultIndexerConfig()
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Indexer{
		chunks:   chunks,
		embedder: embedder,
		config:   config,
		progress: progress,
		logger:   slog.Default().With("component", "indexer"),
	}, nil
}

// Build loads every chunk from the repository, embeds them in
// concurrent batches, and returns the populated index. Chunks keep
// their storage order, which is document order. The first batch
// failure cancels the remaining work.
func (r *Indexer) Build(ctx context.Context) (*Index, error) {
	var all []*core.Chunk
	err := r.chunks.ForEachChunk(ctx, func(chunk *core.Chunk) error {
		all = append(all, chunk)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load chunks: %w", err)
	}

	index := NewIndex()
	total := len(all)
	if total == 0 {
		fmt.Fprintf(r.progress, "No chunks to index\n")
		return index, nil
	}

	fmt.Fprintf(r.progress, "Indexing %d chunks (batch size: %d, workers: %d)\n",
		total, r.config.BatchSize, r.config.Workers)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	pool, err := ants.NewPool(r.config.Workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	buildCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Batches complete out of order, so each writes its vectors into
	// the slots for its own chunk positions.
	vectors := make([][]float64, total)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
	}

	for start := 0; start < total; start += r.config.BatchSize {
		end := start + r.config.BatchSize
		if end > total {
			end = total
		}
		batch := all[start:end]
		offset := start

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			texts := make([]string, len(batch))
			for i, chunk := range batch {
				texts[i] = chunk.Text
			}

			var embeddings [][]float64
			err := RetryWithBackoff(buildCtx, func() error {
				var embedErr error
				embeddings, embedErr = r.embedder.EmbedTexts(buildCtx, texts)
				return embedErr
			}, r.config.MaxRetries, r.config.RetryDelay)
			if err != nil {
				fail(fmt.Errorf("failed to embed batch at chunk %d: %w", offset, err))
				return
			}

			if len(embeddings) != len(batch) {
				fail(fmt.Errorf("embedding count mismatch: expected %d, got %d",
					len(batch), len(embeddings)))
				return
			}

			for i, vector := range embeddings {
				vectors[offset+i] = vector
			}
			tracker.Increment(len(batch))
		})
		if submitErr != nil {
			wg.Done()
			fail(fmt.Errorf("failed to submit batch: %w", submitErr))
			break
		}
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i, chunk := range all {
		if err := index.Add(*chunk, vectors[i]); err != nil {
			return nil, fmt.Errorf("chunk %d: %w", i, err)
		}
	}

	tracker.Finish()
	elapsed := tracker.Elapsed()
	rate := float64(total) / elapsed.Seconds()
	fmt.Fprintf(r.progress, "Indexed %d chunks in %v (%.1f chunks/s)\n",
		total, elapsed.Round(time.Millisecond), rate)
	r.logger.Info("index built", "chunks", total, "dimensions", index.Dimensions())

	return index, nil
}
