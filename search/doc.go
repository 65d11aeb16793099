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


// Package search provides semantic search over stored chunks.
//
// The Indexer embeds every chunk in the store through concurrent,
// retried batches and builds an in-memory Index that preserves
// document order. The Searcher embeds a query and ranks the indexed
// chunks by cosine similarity, returning the top k matches.
//
// Typical usage:
//
//	indexer, err := search.NewIndexer(chunks, provider.Embedder(), nil, os.Stdout)
//	if err != nil { ... }
//	index, err := indexer.Build(ctx)
//	if err != nil { ... }
//
//	searcher, err := search.NewSearcher(index, provider.Embedder())
//	if err != nil { ... }
//	results, err := searcher.Search(ctx, "analytical engine", 5)
//
// Embedding vectors live only in the index. Rebuilding after ingestion
// re-embeds the store from scratch.
package search
