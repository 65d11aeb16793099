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


package passage

import (
	"io"
	"log/slog"

	"github.com/semasia/passage/ai"
	"github.com/semasia/passage/ai/openai"
	"github.com/semasia/passage/ingest"
	"github.com/semasia/passage/search"
	"github.com/semasia/passage/storage"
	"github.com/semasia/passage/storage/badger"
)

// Library bundles the document store and the embedding provider behind
// one handle. It is the entry point for embedding applications.
type Library struct {
	backend   *badger.Backend
	documents storage.DocumentRepository
	chunks    storage.ChunkRepository
	provider  ai.Provider
	logger    *slog.Logger
}

// LibraryOption configures a Library.
type LibraryOption func(*libraryOptions)

type libraryOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
	inMemory bool
}

// WithAIConfig sets the embedding service configuration.
func WithAIConfig(cfg *ai.Config) LibraryOption {
	return func(o *libraryOptions) {
		o.aiConfig = cfg
	}
}

// WithProvider supplies a pre-built provider instead of constructing
// one from config. Useful for injecting a mock.
func WithProvider(provider ai.Provider) LibraryOption {
	return func(o *libraryOptions) {
		o.provider = provider
	}
}

// WithInMemory opens the store in memory, ignoring filePath.
func WithInMemory() LibraryOption {
	return func(o *libraryOptions) {
		o.inMemory = true
	}
}

func NewLibrary(filePath string, opts ...LibraryOption) (*Library, error) {
	// Apply options
	options := &libraryOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create document repository
	documents, err := badger.NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create chunk repository
	chunks, err := badger.NewChunkRepository(backend)
	if err != nil {
		documents.Close()
		backend.Close()
		return nil, err
	}

	// Create embedding provider unless one was injected
	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			chunks.Close()
			documents.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Library{
		backend:   backend,
		documents: documents,
		chunks:    chunks,
		provider:  provider,
		logger:    slog.Default(),
	}, nil
}

func (l *Library) Close() error {
	// Close embedding provider first
	if err := l.provider.Close(); err != nil {
		l.logger.Error("error closing embedding provider", "err", err)
	}

	// Close repositories
	if err := l.chunks.Close(); err != nil {
		l.logger.Error("error closing chunk repository", "err", err)
		return err
	}
	if err := l.documents.Close(); err != nil {
		l.logger.Error("error closing document repository", "err", err)
		return err
	}

	// Close backend
	if err := l.backend.Close(); err != nil {
		l.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (l *Library) Documents() storage.DocumentRepository {
	return l.documents
}

func (l *Library) Chunks() storage.ChunkRepository {
	return l.chunks
}

func (l *Library) Provider() ai.Provider {
	return l.provider
}

func (l *Library) NewPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	return ingest.NewPipeline(l.documents, l.chunks, opts...)
}

func (l *Library) NewIndexer(config *search.IndexerConfig, progress io.Writer) (*search.Indexer, error) {
	return search.NewIndexer(l.chunks, l.provider.Embedder(), config, progress)
}

func (l *Library) NewSearcher(index *search.Index, opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(index, l.provider.Embedder(), opts...)
}
