package search

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track queries and results as they flow
// through a Searcher.
type SearchMonitor interface {
	// OnSearchStart is called after validation, before the query is embedded.
	OnSearchStart(query string, k int)

	// OnSearchComplete is called with the ranked results.
	OnSearchComplete(results []Result)

	// OnSearchError is called when embedding or ranking fails.
	OnSearchError(err error)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) OnSearchStart(_ string, _ int) {}
func (n *noopMonitor) OnSearchComplete(_ []Result)   {}
func (n *noopMonitor) OnSearchError(_ error)         {}
