package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var _ Strategy = (*HeuristicStrategy)(nil)

const testKeywords = "wohnung|zimmer|wohnen|angebot|miet|bewerb|apartment|frei"

func TestHeuristicExtractMatchesHousingAnchor(t *testing.T) {
	markup := `<html><body>
		<div id="content">
			<a href="/wohnen/angebot/123">Zimmer frei</a>
			<a href="/impressum">Impressum</a>
		</div>
	</body></html>`

	strategy, err := NewHeuristicStrategy(testKeywords)
	assert.NoError(t, err)

	offers := strategy.Extract(parseDoc(t, markup), mustParseURL(t, "https://housing.example.org"))
	assert.Len(t, offers, 1)
	assert.Equal(t, "https://housing.example.org/wohnen/angebot/123", offers[0].ID)
	assert.Equal(t, "Zimmer frei", offers[0].Title)
}

func TestHeuristicExtractMatchesKeywordInHrefOnly(t *testing.T) {
	// The anchor text says nothing, but the href carries a housing term.
	markup := `<main><a href="/wohnungsangebote/55">Details</a></main>`

	strategy, err := NewHeuristicStrategy(testKeywords)
	assert.NoError(t, err)

	offers := strategy.Extract(parseDoc(t, markup), mustParseURL(t, "https://housing.example.org"))
	assert.Len(t, offers, 1)
	assert.Equal(t, "Details", offers[0].Title)
}

func TestHeuristicExtractSkipsExternalAnchors(t *testing.T) {
	markup := `<main>
		<a href="https://elsewhere.example.com/wohnung/1">Wohnung extern</a>
		<a href="https://housing.example.org/wohnen/2">Wohnung intern</a>
	</main>`

	strategy, err := NewHeuristicStrategy(testKeywords)
	assert.NoError(t, err)

	offers := strategy.Extract(parseDoc(t, markup), mustParseURL(t, "https://housing.example.org"))
	assert.Len(t, offers, 1)
	assert.Equal(t, "https://housing.example.org/wohnen/2", offers[0].ID)
}

func TestHeuristicExtractCaseInsensitiveKeywords(t *testing.T) {
	markup := `<main><a href="/angebote/9">WOHNUNG IM ZENTRUM</a></main>`

	strategy, err := NewHeuristicStrategy(testKeywords)
	assert.NoError(t, err)

	offers := strategy.Extract(parseDoc(t, markup), mustParseURL(t, "https://housing.example.org"))
	assert.Len(t, offers, 1)
}

func TestHeuristicExtractWholeDocumentFallback(t *testing.T) {
	// No content container at all; the whole document is scanned.
	markup := `<div class="odd-wrapper"><a href="/wohnen/angebot/3">Zimmer</a></div>`

	strategy, err := NewHeuristicStrategy(testKeywords)
	assert.NoError(t, err)

	offers := strategy.Extract(parseDoc(t, markup), mustParseURL(t, "https://housing.example.org"))
	assert.Len(t, offers, 1)
}

func TestHeuristicExtractTitleFallsBackToURL(t *testing.T) {
	markup := `<main><a href="/wohnen/angebot/4"></a></main>`

	strategy, err := NewHeuristicStrategy(testKeywords)
	assert.NoError(t, err)

	offers := strategy.Extract(parseDoc(t, markup), mustParseURL(t, "https://housing.example.org"))
	assert.Len(t, offers, 1)
	assert.Equal(t, "https://housing.example.org/wohnen/angebot/4", offers[0].Title)
}

func TestHeuristicExtractInvalidPattern(t *testing.T) {
	_, err := NewHeuristicStrategy("([unclosed")
	assert.Error(t, err)
}
