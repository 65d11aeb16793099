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


// Package rank implements cosine-similarity scoring and brute-force
// top-k retrieval over embedding vectors.
//
// All functions are pure and synchronous: they read only their
// arguments, allocate only call-local data, and may be invoked
// concurrently without coordination. Ranking is a linear scan with a
// stable descending sort; candidates with equal scores keep their
// input order. There is no partial-result mode: a dimension mismatch
// or zero-norm vector anywhere in a call fails the whole call.
package rank
