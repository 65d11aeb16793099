package search

import "strings"

// Stop words ignored when matching query words against chunk text
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true,
}

// contentWords splits text into lowercased words with surrounding
// punctuation trimmed, dropping stop words.
func contentWords(text string) []string {
	words := strings.Fields(text)
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}"))
		if cleaned != "" && !stopWords[cleaned] {
			filtered = append(filtered, cleaned)
		}
	}

	return filtered
}

// MatchesAllWords reports whether every content word of the query appears
// in text. Stop words and surrounding punctuation are ignored. A query
// with no content words matches nothing.
func MatchesAllWords(text, query string) bool {
	queryWords := contentWords(query)
	if len(queryWords) == 0 {
		return false
	}

	textWords := contentWords(text)
	seen := make(map[string]bool, len(textWords))
	for _, word := range textWords {
		seen[word] = true
	}

	for _, word := range queryWords {
		if !seen[word] {
			return false
		}
	}

	return true
}
