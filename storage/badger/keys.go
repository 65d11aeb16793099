package badger

import (
	"encoding/binary"

	"github.com/semasia/passage/core"
)

// Key prefixes for different data types
const (
	documentRecordPrefix = "docrec"
	documentTitlePrefix  = "doctit"
	chunkRecordPrefix    = "chkrec"
)

// makeDocumentKey generates a key for a document by ID.
// The ID is written in BigEndian order so lexicographic sort matches
// numeric ID order during prefix scans.
func makeDocumentKey(id core.ID) []byte {
	prefix := documentRecordPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeTitleKey generates a key for the title index.
// Format: prefix:title
func makeTitleKey(title string) []byte {
	prefix := documentTitlePrefix + ":"
	totalSize := len(prefix) + len(title)
	buf := make([]byte, totalSize)
	offset := copy(buf, []byte(prefix))
	copy(buf[offset:], []byte(title))
	return buf
}

// makeChunkKey generates a composite key for a chunk record.
// Format: prefix:documentID:seq
func makeChunkKey(docID core.ID, seq int) []byte {
	prefix := chunkRecordPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for documentID + 8 bytes for seq
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(docID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(seq))
	return buf
}

// makePartialChunkKey generates a partial key for scanning a document's chunks.
// Format: prefix:documentID
func makePartialChunkKey(docID core.ID) []byte {
	prefix := chunkRecordPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for documentID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(docID))
	return buf
}
