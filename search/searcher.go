package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/semasia/passage/ai"
)

// Searcher answers natural-language queries against a built index.
type Searcher struct {
	index    *Index
	embedder ai.Embedder
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher over the given index.
func NewSearcher(index *Index, embedder ai.Embedder, opts ...Option) (*Searcher, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		index:    index,
		embedder: embedder,
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search embeds the query and returns up to k chunks ranked by cosine
// similarity, best first.
func (s *Searcher) Search(ctx context.Context, query string, k int) ([]Result, error) {
	return s.SearchWithMonitor(ctx, query, k, nil)
}

// SearchWithMonitor searches with monitoring. The monitor receives
// callbacks as the query moves through embedding and ranking.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, k int, monitor SearchMonitor) ([]Result, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if s.index.Len() == 0 {
		return nil, ErrEmptyIndex
	}

	monitor.OnSearchStart(query, k)

	embedding, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		monitor.OnSearchError(err)
		return nil, err
	}

	results, err := s.index.Search(embedding, k)
	if err != nil {
		s.logger.Error("error ranking query against index", "err", err)
		monitor.OnSearchError(err)
		return nil, err
	}

	monitor.OnSearchComplete(results)
	return results, nil
}
