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


package wiki

import "errors"

var (
	// ErrArticleNotFound indicates that no article exists for the title.
	ErrArticleNotFound = errors.New("article not found")

	// ErrFetchFailed indicates that the article request failed.
	ErrFetchFailed = errors.New("article fetch failed")

	// ErrEmptyArticle indicates that no usable text survived cleaning.
	ErrEmptyArticle = errors.New("article has no usable text")
)
