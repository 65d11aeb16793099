package wiki

import (
	"html"
	"regexp"
	"strings"
)

// minParagraphLength filters out stub paragraphs, image captions, and
// coordinate lines that survive tag stripping.
const minParagraphLength = 50

// Pre-compiled regular expressions for HTML cleaning.
var (
	contentStart = regexp.MustCompile(`(?i)<div[^>]+id="mw-content-text"`)
	contentEnd   = regexp.MustCompile(`(?i)<div[^>]+class="printfooter|<div[^>]+id="catlinks"`)
	tableTag     = regexp.MustCompile(`(?is)<table[^>]*>.*?</table>`)
	styleTag     = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	scriptTag    = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	supTag       = regexp.MustCompile(`(?is)<sup[^>]*>.*?</sup>`)
	spanTag      = regexp.MustCompile(`(?is)<span[^>]*>.*?</span>`)
	paragraphTag = regexp.MustCompile(`(?is)<p[^>]*>(.*?)</p>`)
	allTags      = regexp.MustCompile(`<[^>]+>`)
	multiSpaces  = regexp.MustCompile(`\s+`)
)

// extractParagraphs pulls readable paragraphs out of a wiki page body.
// It narrows the document to the main content container, drops markup
// that never carries prose, and keeps paragraphs long enough to matter.
func extractParagraphs(body string) []string {
	content := sliceContent(body)

	// Drop elements that hold navigation, references, and styling
	content = tableTag.ReplaceAllString(content, "")
	content = styleTag.ReplaceAllString(content, "")
	content = scriptTag.ReplaceAllString(content, "")
	content = supTag.ReplaceAllString(content, "")
	content = spanTag.ReplaceAllString(content, "")

	var paragraphs []string
	for _, match := range paragraphTag.FindAllStringSubmatch(content, -1) {
		text := cleanParagraph(match[1])
		if len(text) > minParagraphLength {
			paragraphs = append(paragraphs, text)
		}
	}
	return paragraphs
}

// sliceContent narrows the page to the mw-content-text container.
// The closing tag cannot be matched by regex, so the slice runs to the
// printfooter or category links marker that follows the article body.
func sliceContent(body string) string {
	if loc := contentStart.FindStringIndex(body); loc != nil {
		body = body[loc[0]:]
	}
	if loc := contentEnd.FindStringIndex(body); loc != nil {
		body = body[:loc[0]]
	}
	return body
}

// cleanParagraph strips remaining tags and normalizes whitespace.
func cleanParagraph(text string) string {
	text = allTags.ReplaceAllString(text, "")
	text = html.UnescapeString(text)
	text = multiSpaces.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
