package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/semasia/passage/chunker"
	"github.com/semasia/passage/core"
	"github.com/semasia/passage/storage"
)

// Pipeline orchestrates the ingestion of documents.
// It validates, splits, and stores each document along with its chunks.
type Pipeline struct {
	documents storage.DocumentRepository
	chunks    storage.ChunkRepository
	splitter  *chunker.Splitter
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithSplitter sets a custom chunker.
// Default is a splitter with chunker defaults.
func WithSplitter(splitter *chunker.Splitter) Option {
	return func(p *Pipeline) error {
		if splitter == nil {
			return chunker.ErrConfiguration
		}
		p.splitter = splitter
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	documents storage.DocumentRepository,
	chunks storage.ChunkRepository,
	opts ...Option,
) (*Pipeline, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if chunks == nil {
		return nil, ErrChunkRepositoryRequired
	}

	splitter, err := chunker.New()
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		documents: documents,
		chunks:    chunks,
		splitter:  splitter,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			return nil, optErr
		}
	}

	return p, nil
}

// Ingest stores a document and its chunks, returning the stored document
// and the number of chunks written.
//
// The document ID is derived from title and text when unset, so ingesting
// identical content is idempotent. Splitting happens before any write, so
// chunker configuration errors leave the store untouched.
func (p *Pipeline) Ingest(ctx context.Context, doc *core.Document) (*core.Document, int, error) {
	if doc == nil {
		return nil, 0, core.ErrInvalidDocument
	}

	if doc.Id == 0 {
		doc.Id = core.DocumentID(doc.Title, doc.Text)
	}
	if doc.FetchedAt.IsZero() {
		doc.FetchedAt = time.Now().UTC()
	}

	if err := core.ValidateDocument(doc); err != nil {
		return nil, 0, err
	}

	pieces, err := p.splitter.Split(doc.Text, doc.Title)
	if err != nil {
		return nil, 0, err
	}

	stored, err := p.documents.PutDocument(ctx, doc)
	if err != nil {
		return nil, 0, err
	}

	chunks := make([]*core.Chunk, len(pieces))
	for i, text := range pieces {
		chunks[i] = &core.Chunk{
			DocumentId: stored.Id,
			Seq:        i,
			Text:       text,
		}
	}

	if err := p.chunks.PutChunks(ctx, stored.Id, chunks); err != nil {
		return nil, 0, err
	}

	p.logger.Info("ingested document",
		"id", stored.Id,
		"title", stored.Title,
		"chunks", len(chunks))

	return stored, len(chunks), nil
}
