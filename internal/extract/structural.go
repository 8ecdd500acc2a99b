package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StructuralConfig contains the selectors identifying listing teasers on the
// source page.
type StructuralConfig struct {
	// TeaserSelector matches one element per listing card
	TeaserSelector string
	// LinkAttr is the data attribute on the teaser holding the listing link
	LinkAttr string
	// LocationSelector matches the sub-location label inside a teaser
	LocationSelector string
	// HeadlineSelector matches the headline label inside a teaser
	HeadlineSelector string
}

// DefaultStructuralConfig returns the selectors for the current page layout
func DefaultStructuralConfig() StructuralConfig {
	return StructuralConfig{
		TeaserSelector:   "ul.offers-list li.teaser",
		LinkAttr:         "data-teaser-link",
		LocationSelector: ".sublocation",
		HeadlineSelector: ".headline",
	}
}

// StructuralStrategy extracts offers from the known teaser markup. It is the
// primary strategy and yields nothing when the page layout drifted away from
// the configured selectors.
type StructuralStrategy struct {
	cfg StructuralConfig
}

// NewStructuralStrategy creates a structural strategy with the given selectors
func NewStructuralStrategy(cfg StructuralConfig) *StructuralStrategy {
	return &StructuralStrategy{cfg: cfg}
}

// Name returns the strategy name
func (s *StructuralStrategy) Name() string {
	return "structural"
}

// Extract returns one offer per teaser element carrying a resolvable link.
// The title is "<location>: <headline>" when a location is present, the
// headline alone otherwise, and the id itself when neither label has text.
func (s *StructuralStrategy) Extract(doc *goquery.Document, base *url.URL) []Offer {
	set := newOfferSet()

	doc.Find(s.cfg.TeaserSelector).Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr(s.cfg.LinkAttr)
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		id := resolveURL(base, href)
		if id == "" {
			return
		}

		location := strings.TrimSpace(sel.Find(s.cfg.LocationSelector).First().Text())
		headline := strings.TrimSpace(sel.Find(s.cfg.HeadlineSelector).First().Text())

		title := headline
		switch {
		case location != "" && headline != "":
			title = location + ": " + headline
		case location != "":
			title = location
		}
		if title == "" {
			title = id
		}

		set.add(Offer{ID: id, Title: title, URL: id})
	})

	return set.offers()
}
