package extract

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
)

var _ Strategy = (*StructuralStrategy)(nil)

func parseDoc(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	assert.NoError(t, err)
	return doc
}

func mustParseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	assert.NoError(t, err)
	return u
}

func TestStructuralExtract(t *testing.T) {
	markup := `<html><body>
		<ul class="offers-list">
			<li class="teaser" data-teaser-link="/wohnen/angebot/101">
				<span class="sublocation">Endenich</span>
				<h3 class="headline">Single apartment, 24qm</h3>
			</li>
			<li class="teaser" data-teaser-link="https://housing.example.org/wohnen/angebot/102">
				<h3 class="headline">Shared flat room</h3>
			</li>
		</ul>
	</body></html>`

	strategy := NewStructuralStrategy(DefaultStructuralConfig())
	base := mustParseURL(t, "https://housing.example.org")

	offers := strategy.Extract(parseDoc(t, markup), base)
	assert.Len(t, offers, 2)

	assert.Equal(t, "https://housing.example.org/wohnen/angebot/101", offers[0].ID)
	assert.Equal(t, offers[0].ID, offers[0].URL)
	assert.Equal(t, "Endenich: Single apartment, 24qm", offers[0].Title)

	assert.Equal(t, "https://housing.example.org/wohnen/angebot/102", offers[1].ID)
	assert.Equal(t, "Shared flat room", offers[1].Title)
}

func TestStructuralExtractTitleFallsBackToID(t *testing.T) {
	markup := `<ul class="offers-list">
		<li class="teaser" data-teaser-link="/wohnen/angebot/7"></li>
	</ul>`

	strategy := NewStructuralStrategy(DefaultStructuralConfig())
	offers := strategy.Extract(parseDoc(t, markup), mustParseURL(t, "https://housing.example.org"))

	assert.Len(t, offers, 1)
	assert.Equal(t, "https://housing.example.org/wohnen/angebot/7", offers[0].Title)
}

func TestStructuralExtractSkipsTeasersWithoutLink(t *testing.T) {
	markup := `<ul class="offers-list">
		<li class="teaser"><h3 class="headline">No link here</h3></li>
		<li class="teaser" data-teaser-link="  "><h3 class="headline">Blank link</h3></li>
		<li class="teaser" data-teaser-link="/wohnen/angebot/1"><h3 class="headline">Valid</h3></li>
	</ul>`

	strategy := NewStructuralStrategy(DefaultStructuralConfig())
	offers := strategy.Extract(parseDoc(t, markup), mustParseURL(t, "https://housing.example.org"))

	assert.Len(t, offers, 1)
	assert.Equal(t, "Valid", offers[0].Title)
}

func TestStructuralExtractDeduplicatesFirstWins(t *testing.T) {
	markup := `<ul class="offers-list">
		<li class="teaser" data-teaser-link="/wohnen/angebot/1"><h3 class="headline">First</h3></li>
		<li class="teaser" data-teaser-link="/wohnen/angebot/1"><h3 class="headline">Second</h3></li>
	</ul>`

	strategy := NewStructuralStrategy(DefaultStructuralConfig())
	offers := strategy.Extract(parseDoc(t, markup), mustParseURL(t, "https://housing.example.org"))

	assert.Len(t, offers, 1)
	assert.Equal(t, "First", offers[0].Title)
}

func TestStructuralExtractEmptyOnDriftedMarkup(t *testing.T) {
	markup := `<div class="completely-different"><a href="/wohnen/angebot/1">Offer</a></div>`

	strategy := NewStructuralStrategy(DefaultStructuralConfig())
	offers := strategy.Extract(parseDoc(t, markup), mustParseURL(t, "https://housing.example.org"))

	assert.Empty(t, offers)
}
