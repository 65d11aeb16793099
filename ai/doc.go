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


// Package ai provides abstractions for the embedding services used in Passage.
//
// The core retrieval code depends on these interfaces rather than on any
// concrete client, so business logic never couples to a specific vendor,
// model name, or vector dimensionality.
//
// # Design
//
// Two interfaces cover the surface:
//
//   - Embedder: generates vector embeddings from text
//   - Provider: owns an Embedder's configuration and lifecycle
//
// Vectors are []float64 throughout. Similarity scoring is specified
// against double-precision arithmetic, so providers whose wire format is
// float32 widen at the adapter boundary.
//
// # Implementation Packages
//
//   - ai/openai: production implementation for OpenAI-compatible APIs
//   - ai/mock: deterministic in-process implementation for tests and offline runs
//
// # Constructor Return Type Pattern
//
// Production constructors (openai.NewProvider, openai.NewEmbedder) return
// INTERFACE types to enforce abstraction and prevent accidental coupling
// to concrete implementations.
//
//	provider, err := openai.NewProvider(config)  // returns ai.Provider
//
// Test utility constructors (mock.NewMockEmbedder) return CONCRETE types
// to enable behavior injection via function fields and call-count
// assertions.
//
//	mockEmbed := mock.NewMockEmbedder()  // returns *mock.MockEmbedder
//	mockEmbed.EmbedTextFunc = ...        // needs concrete type
//	count := mockEmbed.CallCount()       // test assertion
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithBaseURL("http://localhost:11434"))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, "Hello world")
package ai
