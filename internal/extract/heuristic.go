package extract

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// defaultContainers is the priority order of generic content containers
// searched for candidate anchors before falling back to the whole document.
var defaultContainers = []string{"main", "#content", ".content", "#main", "article"}

// HeuristicStrategy is the fallback when the structural markup drifted. It
// scans content containers for internal anchors whose text or href mention
// housing/application terms.
type HeuristicStrategy struct {
	containers []string
	keywords   *regexp.Regexp
}

// NewHeuristicStrategy compiles the case-insensitive keyword pattern and
// returns the fallback strategy.
func NewHeuristicStrategy(keywordPattern string) (*HeuristicStrategy, error) {
	re, err := regexp.Compile("(?i)" + keywordPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid keyword pattern %q: %w", keywordPattern, err)
	}
	return &HeuristicStrategy{
		containers: defaultContainers,
		keywords:   re,
	}, nil
}

// Name returns the strategy name
func (h *HeuristicStrategy) Name() string {
	return "heuristic"
}

// Extract returns offers for anchors that are internal to the source site and
// match the keyword pattern. The first container yielding any anchors is
// used; when none do, the whole document is scanned.
func (h *HeuristicStrategy) Extract(doc *goquery.Document, base *url.URL) []Offer {
	anchors := h.findAnchors(doc)
	set := newOfferSet()

	anchors.Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" || !h.internal(base, href) {
			return
		}

		id := resolveURL(base, href)
		if id == "" {
			return
		}

		text := strings.TrimSpace(sel.Text())
		if !h.keywords.MatchString(text + " " + href) {
			return
		}

		title := text
		if title == "" {
			title = id
		}
		set.add(Offer{ID: id, Title: title, URL: id})
	})

	return set.offers()
}

// findAnchors returns anchors from the first matching content container, or
// all anchors in the document as a last resort.
func (h *HeuristicStrategy) findAnchors(doc *goquery.Document) *goquery.Selection {
	for _, container := range h.containers {
		anchors := doc.Find(container + " a[href]")
		if anchors.Length() > 0 {
			return anchors
		}
	}
	return doc.Find("a[href]")
}

// internal reports whether the raw href targets the source site: either a
// root-relative path or a reference naming the source host.
func (h *HeuristicStrategy) internal(base *url.URL, href string) bool {
	if strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "//") {
		return true
	}
	return strings.Contains(href, base.Host)
}
