package wiki

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleFixture = `<!DOCTYPE html>
<html>
<head><title>Ada Lovelace - Wikipedia</title></head>
<body>
<nav><p>This navigation paragraph is long enough to pass the filter but sits outside the content area.</p></nav>
<div id="mw-content-text" class="mw-body-content">
<style>.infobox { border: 1px; }</style>
<script>console.log("tracking");</script>
<table class="infobox"><tr><td>Tabular biography data long enough to pass the length filter if leaked.</td></tr></table>
<p>Ada Lovelace was an English mathematician and writer, chiefly known for her work on the Analytical Engine.</p>
<p>Short stub.</p>
<p>Her notes contain what is regarded<sup>[1]</sup> as the first computer program, an algorithm for the Engine<span class="ref">note</span>.</p>
<p>Lovelace corresponded with Charles Babbage &amp; other scientists throughout her adult life.</p>
<p>Multiple    spaces
and newlines   should collapse into single spaces within this long paragraph.</p>
</div>
<div class="printfooter">Retrieved from wikipedia</div>
<p>Footer boilerplate paragraph that is definitely long enough to pass the length filter.</p>
</body>
</html>`

func TestExtractParagraphs(t *testing.T) {
	paragraphs := extractParagraphs(articleFixture)
	require.Len(t, paragraphs, 4)

	assert.Equal(t, "Ada Lovelace was an English mathematician and writer, chiefly known for her work on the Analytical Engine.", paragraphs[0])
	assert.Equal(t, "Her notes contain what is regarded as the first computer program, an algorithm for the Engine.", paragraphs[1])
	assert.Equal(t, "Lovelace corresponded with Charles Babbage & other scientists throughout her adult life.", paragraphs[2])
	assert.Equal(t, "Multiple spaces and newlines should collapse into single spaces within this long paragraph.", paragraphs[3])
}

func TestExtractParagraphs_DropsNonProse(t *testing.T) {
	paragraphs := extractParagraphs(articleFixture)
	joined := ""
	for _, p := range paragraphs {
		joined += p + "\n"
	}

	assert.NotContains(t, joined, "navigation paragraph")
	assert.NotContains(t, joined, "Tabular biography")
	assert.NotContains(t, joined, "Short stub")
	assert.NotContains(t, joined, "Footer boilerplate")
	assert.NotContains(t, joined, "[1]")
	assert.NotContains(t, joined, "tracking")
}

func TestExtractParagraphs_NoContentMarker(t *testing.T) {
	// Pages without the content container fall back to the whole body
	body := `<html><body><p>A plain page paragraph that is comfortably longer than fifty characters.</p></body></html>`

	paragraphs := extractParagraphs(body)
	require.Len(t, paragraphs, 1)
	assert.Equal(t, "A plain page paragraph that is comfortably longer than fifty characters.", paragraphs[0])
}

func TestExtractParagraphs_Empty(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"no paragraphs", `<div id="mw-content-text"><table><tr><td>only tables</td></tr></table></div>`},
		{"only short paragraphs", `<div id="mw-content-text"><p>Too short.</p><p>Also short.</p></div>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, extractParagraphs(tt.body))
		})
	}
}
