package chunker

import (
	"fmt"
	"strings"
)

// Default bounds, in bytes.
const (
	DefaultMaxLength = 1000
	DefaultOverlap   = 100
)

// Splitter divides text into sentence-aligned chunks. It is stateless
// after construction and safe for concurrent use.
type Splitter struct {
	maxLength int
	overlap   int
}

// Option configures a Splitter.
type Option func(*Splitter)

// WithMaxLength sets the maximum chunk length in bytes, including any
// title prefix. Default is DefaultMaxLength.
func WithMaxLength(n int) Option {
	return func(s *Splitter) {
		s.maxLength = n
	}
}

// WithOverlap sets the overlap budget in bytes: the seed carried from
// the end of one chunk into the start of the next never exceeds it.
// Default is DefaultOverlap.
func WithOverlap(n int) Option {
	return func(s *Splitter) {
		s.overlap = n
	}
}

// New creates a Splitter, validating the configured bounds.
func New(opts ...Option) (*Splitter, error) {
	s := &Splitter{
		maxLength: DefaultMaxLength,
		overlap:   DefaultOverlap,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.maxLength <= 0 {
		return nil, fmt.Errorf("%w: max length must be positive, got %d", ErrConfiguration, s.maxLength)
	}
	if s.overlap < 0 {
		return nil, fmt.Errorf("%w: overlap cannot be negative, got %d", ErrConfiguration, s.overlap)
	}
	if s.overlap >= s.maxLength {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than max length %d", ErrConfiguration, s.overlap, s.maxLength)
	}

	return s, nil
}

// Split divides text into chunks in document order. When title is
// non-empty every chunk is prefixed with "[<title>] ", and the prefix
// counts against the length budget. Empty text yields no chunks.
//
// Sentences accumulate greedily into a chunk while it stays under the
// usable budget; on overflow the chunk is closed and the next one is
// seeded with a suffix of its sentences whose combined length fits the
// overlap budget. The seed is carried without re-checking the budget,
// which is one of the two ways a chunk can exceed the max length (the
// other being a lone oversized sentence).
func (s *Splitter) Split(text, title string) ([]string, error) {
	prefix := ""
	if title != "" {
		prefix = "[" + title + "] "
	}
	usable := s.maxLength - len(prefix)
	if usable <= 0 {
		return nil, fmt.Errorf("%w: title prefix %q leaves no room under max length %d", ErrConfiguration, prefix, s.maxLength)
	}

	sentences := splitSentences(text)

	var chunks []string
	var buffer string
	var bufferSentences []string

	for _, sentence := range sentences {
		if len(buffer)+len(sentence)+1 < usable {
			if buffer == "" {
				buffer = sentence
			} else {
				buffer += " " + sentence
			}
			bufferSentences = append(bufferSentences, sentence)
			continue
		}

		if buffer != "" {
			chunks = append(chunks, prefix+strings.TrimSpace(buffer))
		}

		seed, seedSentences := overlapSeed(bufferSentences, s.overlap)
		if seed == "" {
			buffer = sentence
		} else {
			buffer = seed + " " + sentence
		}
		bufferSentences = append(seedSentences, sentence)
	}

	if buffer != "" {
		chunks = append(chunks, prefix+strings.TrimSpace(buffer))
	}

	return chunks, nil
}

// splitSentences cuts text at every literal ". ", drops fragments that
// are empty after trimming, and restores the period the delimiter
// consumed. The final fragment keeps its own terminator; it only gains
// a period when it has none.
func splitSentences(text string) []string {
	normalized := strings.ReplaceAll(text, "\n", " ")
	fragments := strings.Split(normalized, ". ")

	sentences := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		sentences = append(sentences, fragment)
	}

	for i, sentence := range sentences {
		if i < len(sentences)-1 || !strings.HasSuffix(sentence, ".") {
			sentences[i] = sentence + "."
		}
	}

	return sentences
}

// overlapSeed walks the closed chunk's sentences newest-first,
// collecting as many as fit the overlap budget, and returns them in
// their original order. The walk stops at the first sentence that
// would overflow, so the seed is always a contiguous suffix.
func overlapSeed(sentences []string, overlap int) (string, []string) {
	var seed string
	var kept []string

	for i := len(sentences) - 1; i >= 0; i-- {
		sentence := sentences[i]
		if len(seed)+len(sentence)+1 > overlap {
			break
		}
		if seed == "" {
			seed = sentence
		} else {
			seed = sentence + " " + seed
		}
		kept = append([]string{sentence}, kept...)
	}

	return seed, kept
}
