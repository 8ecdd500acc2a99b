package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Offer represents one housing listing extracted from the source page. The
// canonical absolute URL is the sole identity; Title is display-only and may
// fall back to the URL when the page carries no usable text.
type Offer struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Strategy extracts offers from a parsed document. Returning an empty slice
// means the strategy found nothing; it is never an error.
type Strategy interface {
	// Name returns the strategy name for logging
	Name() string

	// Extract returns deduplicated offers in document order
	Extract(doc *goquery.Document, base *url.URL) []Offer
}

// offerSet accumulates offers keyed by id; the first occurrence wins and the
// output keeps insertion order.
type offerSet struct {
	byID  map[string]struct{}
	order []Offer
}

func newOfferSet() *offerSet {
	return &offerSet{byID: make(map[string]struct{})}
}

func (s *offerSet) add(o Offer) {
	if _, ok := s.byID[o.ID]; ok {
		return
	}
	s.byID[o.ID] = struct{}{}
	s.order = append(s.order, o)
}

func (s *offerSet) offers() []Offer {
	return s.order
}

// resolveURL resolves href against base into the canonical absolute URL used
// as offer identity. Fragments are dropped so anchors within one listing page
// cannot mint distinct ids. Non-http(s) references resolve to "".
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	abs := base.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return ""
	}
	abs.Fragment = ""
	return abs.String()
}
