package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated by content-based hashing, so identical content
// always maps to the same ID.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// DocumentID derives the canonical ID for a document from its title and
// text, making re-ingestion of identical content idempotent.
func DocumentID(title, text string) ID {
	return IDFromContent(title + "\n" + text)
}

// Document is one unit of source text in the corpus: a fetched article,
// an extracted file, or text supplied directly by the caller.
type Document struct {
	Id        ID
	Title     string
	Source    string    // Provenance: URL or file path; empty for direct input
	FetchedAt time.Time // When the document entered the corpus
	Text      string
}

// Chunk is a bounded segment of a document produced by the splitter.
// Its identity is the composite (DocumentId, Seq); Seq is the chunk's
// position in document order, assigned at ingestion.
type Chunk struct {
	DocumentId ID
	Seq        int
	Text       string
}
