// Package ingest turns raw document text into stored documents and chunks.
//
// The Pipeline type manages the ingestion workflow for documents:
//   - Validating and identifying the document
//   - Splitting text into bounded overlapping chunks
//   - Storing the document and replacing its chunk set
//
// Ingestion is idempotent per document: identical content maps to the
// same content-hash ID and overwrites in place.
package ingest
