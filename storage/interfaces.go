package storage

import (
	"context"

	"github.com/semasia/passage/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// DocumentRepository provides operations for managing documents.
type DocumentRepository interface {
	Repository
	// PutDocument stores a document, overwriting any existing record
	// with the same ID. Also maintains the title index.
	// Sets FetchedAt if not already set.
	PutDocument(ctx context.Context, doc *core.Document) (*core.Document, error)

	// GetDocument retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.Document, error)

	// GetDocumentByTitle retrieves a document by its exact title.
	// Returns ErrNotFound if no document has that title.
	GetDocumentByTitle(ctx context.Context, title string) (*core.Document, error)

	// ListDocuments retrieves all stored documents, ordered by ID.
	ListDocuments(ctx context.Context) ([]*core.Document, error)

	// DeleteDocument removes a document, its title index entry, and all
	// of its chunks. Returns ErrNotFound if the document doesn't exist.
	DeleteDocument(ctx context.Context, id core.ID) error
}

// ChunkRepository provides operations for managing document chunks.
type ChunkRepository interface {
	Repository
	// PutChunks stores the chunks of a document, replacing any chunks
	// previously stored for that document.
	PutChunks(ctx context.Context, docID core.ID, chunks []*core.Chunk) error

	// GetChunks retrieves all chunks of a document in sequence order.
	// Returns an empty slice if the document has no chunks.
	GetChunks(ctx context.Context, docID core.ID) ([]*core.Chunk, error)

	// ForEachChunk iterates over every stored chunk in document and
	// sequence order. Iteration stops at the first error from fn.
	ForEachChunk(ctx context.Context, fn func(chunk *core.Chunk) error) error

	// CountChunks returns the total number of stored chunks.
	CountChunks(ctx context.Context) (int, error)

	// DeleteChunks removes all chunks belonging to a document.
	// Removing chunks for a document that has none is not an error.
	DeleteChunks(ctx context.Context, docID core.ID) error
}
