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


package rank

import (
	"cmp"
	"fmt"
	"slices"
)

// Match pairs a candidate's position in the input sequence with its
// similarity score. Callers join Index back to whatever payload they
// associated with each candidate vector.
type Match struct {
	Index int
	Score float64
}

// TopK scores every candidate against the query and returns the k best
// matches in descending score order. Candidates with equal scores keep
// their input order. The result length is min(k, len(candidates)); a
// k of zero or below yields an empty result.
//
// A single bad candidate fails the whole call rather than being
// skipped, so a misleading top-k can never be returned silently. The
// error names the candidate by position; a zero-norm query is reported
// before any candidate is scored. Callers wanting lenient behavior
// must pre-filter.
func TopK(query []float64, candidates [][]float64, k int) ([]Match, error) {
	if k <= 0 || len(candidates) == 0 {
		return nil, nil
	}

	var queryNorm float64
	for _, v := range query {
		queryNorm += v * v
	}
	if queryNorm == 0 {
		return nil, fmt.Errorf("query: %w", ErrDegenerateVector)
	}

	matches := make([]Match, 0, len(candidates))
	for i, candidate := range candidates {
		score, err := Similarity(query, candidate)
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}
		matches = append(matches, Match{Index: i, Score: score})
	}

	slices.SortStableFunc(matches, func(a, b Match) int {
		return cmp.Compare(b.Score, a.Score)
	})

	if k < len(matches) {
		matches = matches[:k]
	}
	return matches, nil
}
