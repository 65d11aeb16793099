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


// Package wiki fetches Wikipedia articles and reduces them to plain text.
//
// Articles are retrieved from the regular wiki page endpoint rather than
// the API, and cleaned with a regex pipeline instead of a DOM parser.
// That keeps the dependency surface small at the cost of fidelity on
// unusual markup, which is acceptable for paragraph extraction.
//
//	client := wiki.NewClient(wiki.WithLanguage("en"))
//	article, err := client.FetchArticle(ctx, "Ada Lovelace")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(article.Text)
package wiki
