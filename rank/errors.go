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

import "errors"

var (
	// ErrDimensionMismatch is returned when two vectors of unequal
	// length are compared.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrDegenerateVector is returned when a zero-norm vector enters a
	// similarity computation; cosine similarity is undefined for it.
	ErrDegenerateVector = errors.New("degenerate zero-norm vector")
)
