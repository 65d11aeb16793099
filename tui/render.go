package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// scoreBarWidth is the character width of the similarity bar.
const scoreBarWidth = 30

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	scoreStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)

	wordRe     = regexp.MustCompile(`\p{L}+`)
	sentenceRe = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)
)

func (m Model) renderCurrentResult() string {
	if len(m.results) == 0 {
		return "No results yet."
	}
	r := m.results[m.cursor]
	title := fmt.Sprintf("Result %d/%d", m.cursor+1, len(m.results))
	score := scoreStyle.Render(fmt.Sprintf("[%s] %.1f%% (%s)",
		ScoreBar(r.Score, scoreBarWidth), r.Score*100, InterpretScore(r.Score)))
	body := highlightBestSentence(r.Chunk.Text, m.lastQuery)
	return title + "\n" + score + "\n\n" + body
}

// ScoreBar renders a fixed-width bar filled in proportion to score.
// Scores outside [0, 1] clamp to an empty or full bar.
func ScoreBar(score float64, width int) string {
	filled := int(score * float64(width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// InterpretScore classifies a cosine similarity into a coarse band.
func InterpretScore(score float64) string {
	switch {
	case score > 0.8:
		return "highly similar"
	case score > 0.5:
		return "moderately similar"
	default:
		return "weakly similar"
	}
}

// highlightBestSentence emphasizes the sentence sharing the most words
// with the query. Falls back to the unmodified text when the chunk has
// no sentence punctuation or the query has no words.
func highlightBestSentence(text, query string) string {
	sentences := sentenceRe.FindAllString(text, -1)
	if len(sentences) == 0 {
		return text
	}
	best := bestSentence(sentences, query)
	if best < 0 {
		return text
	}
	for i := range sentences {
		sentence := strings.TrimSpace(sentences[i])
		if i == best {
			sentences[i] = highlightStyle.Render(sentence)
		} else {
			sentences[i] = sentence
		}
	}
	return strings.Join(sentences, " ")
}

// bestSentence returns the index of the sentence with the largest word
// overlap with the query, or -1 when the query has no words. Ties keep
// the earliest sentence.
func bestSentence(sentences []string, query string) int {
	queryTokens := tokenSet(query)
	if len(queryTokens) == 0 {
		return -1
	}

	bestIdx := 0
	bestScore := -1
	for i, sentence := range sentences {
		score := 0
		for token := range tokenSet(sentence) {
			if _, ok := queryTokens[token]; ok {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	return bestIdx
}

func tokenSet(s string) map[string]struct{} {
	tokens := wordRe.FindAllString(strings.ToLower(s), -1)
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}
